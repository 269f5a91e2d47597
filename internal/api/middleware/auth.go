package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// HeaderClientID заголовок с идентификатором клиента
// Аутентификацию выполняет API-гейтвей, сюда приходит уже проверенный ID
const HeaderClientID = "X-Client-ID"

type contextKey string

const clientIDKey contextKey = "clientID"

// Auth middleware извлекает ID клиента из заголовка и кладет его в контекст
// Запросы без валидного заголовка отклоняются с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIDStr := r.Header.Get(HeaderClientID)
		if clientIDStr == "" {
			respondUnauthorized(w, "falta el encabezado X-Client-ID")
			return
		}

		clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
		if err != nil || clientID <= 0 {
			respondUnauthorized(w, "encabezado X-Client-ID inválido")
			return
		}

		ctx := context.WithValue(r.Context(), clientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientID возвращает ID клиента из контекста
func GetClientID(ctx context.Context) (int64, bool) {
	clientID, ok := ctx.Value(clientIDKey).(int64)
	return clientID, ok
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
