package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/agendafacil/AF-SchedulingService/pkg/metrics"
)

// statusRecorder перехватывает статус ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware собирает метрики HTTP запросов: счетчик и длительность
// В качестве endpoint используется шаблон маршрута mux, а не конкретный URL,
// чтобы не раздувать кардинальность лейблов
// Имя сервиса уходит в метрики константным лейблом при регистрации
func MetricsMiddleware(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					endpoint = tmpl
				}
			}

			m.ObserveHTTPRequest(
				r.Method,
				endpoint,
				strconv.Itoa(recorder.status),
				time.Since(start),
			)
		})
	}
}
