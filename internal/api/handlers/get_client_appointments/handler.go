package get_client_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendafacil/AF-SchedulingService/internal/api/handlers"
	"github.com/agendafacil/AF-SchedulingService/internal/api/middleware"
	"github.com/agendafacil/AF-SchedulingService/internal/service/appointments"
	"github.com/agendafacil/AF-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidClientID = "ID de cliente inválido"
	msgMissingClientID = "falta el ID del cliente"
	msgInvalidStatus   = "estado de cita inválido"
	msgForbidden       = "acceso denegado"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/appointments
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем clientId из URL
	vars := mux.Vars(r)
	clientIDStr := vars["clientId"]

	pathClientID, err := strconv.ParseInt(clientIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{id}/appointments - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	// Получаем clientID из контекста (через middleware Auth)
	authClientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{id}/appointments - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	// Клиент может смотреть только свою историю
	if pathClientID != authClientID {
		h.logger.Warn("GET /clients/{id}/appointments - Access denied: path_client_id=%d, auth_client_id=%d",
			pathClientID, authClientID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Формируем запрос к сервису
	req := &models.GetClientAppointmentsRequest{
		ClientID: pathClientID,
	}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	// Получаем историю записей
	result, err := h.service.GetClientAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /clients/{id}/appointments - Invalid status: client_id=%d", pathClientID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /clients/{id}/appointments - Failed to get appointments: client_id=%d, error=%v",
				pathClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/appointments - Appointments retrieved successfully: client_id=%d, count=%d",
		pathClientID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
