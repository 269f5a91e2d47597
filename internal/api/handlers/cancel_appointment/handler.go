package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendafacil/AF-SchedulingService/internal/api/handlers"
	"github.com/agendafacil/AF-SchedulingService/internal/api/middleware"
	"github.com/agendafacil/AF-SchedulingService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "ID de cita inválido"
	msgInvalidRequestBody   = "cuerpo de la solicitud inválido"
	msgMissingClientID      = "falta el ID del cliente"
	msgNotFound             = "cita no encontrada"
	msgForbidden            = "acceso denegado"
	msgCannotCancel         = "la cita no puede ser cancelada"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем appointmentId из URL
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Получаем clientID из контекста (через middleware Auth)
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	// Декодируем body
	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Отменяем запись
	err = h.service.Cancel(r.Context(), appointmentID, req.ToServiceRequest(clientID))
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Access denied: appointment_id=%d, client_id=%d",
				appointmentID, clientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrCannotCancel):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Cannot cancel: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled successfully: appointment_id=%d, client_id=%d",
		appointmentID, clientID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
