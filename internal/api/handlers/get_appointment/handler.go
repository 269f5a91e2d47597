package get_appointment

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
	msgNotFound             = "cita no encontrada"
	msgMissingClientID      = "falta el ID del cliente"
	msgForbidden            = "acceso denegado"
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

// Handle GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем appointmentId из URL
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Получаем clientID из контекста (через middleware Auth)
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments/{id} - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	// Получаем запись (сервис сам проверит права доступа)
	appointment, err := h.service.GetByID(r.Context(), appointmentID, clientID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /appointments/{id} - Access denied: appointment_id=%d, client_id=%d",
				appointmentID, clientID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /appointments/{id} - Failed to get appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{id} - Appointment retrieved successfully: appointment_id=%d, client_id=%d",
		appointmentID, clientID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
