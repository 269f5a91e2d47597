package get_branch_appointments

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
	msgInvalidBranchID = "ID de sucursal inválido"
	msgMissingClientID = "falta el ID del cliente"
	msgInvalidParams   = "parámetros de consulta inválidos"
	msgBranchNotFound  = "sucursal no encontrada"
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

// Handle GET /api/v1/branches/{branchId}/appointments
// Query params: employeeId, status, date, startDate, endDate, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем branchId из URL
	vars := mux.Vars(r)
	branchIDStr := vars["branchId"]

	branchID, err := strconv.ParseInt(branchIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/appointments - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	// Получаем clientID из контекста (через middleware Auth)
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("GET /branches/{id}/appointments - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	// Формируем запрос к сервису из query параметров
	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		branchID,
		clientID,
		query.Get("employeeId"),
		query.Get("status"),
		query.Get("date"),
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем записи филиала (сервис сам проверит права менеджера)
	result, err := h.service.GetBranchAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/appointments - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /branches/{id}/appointments - Access denied: branch_id=%d, client_id=%d",
				branchID, clientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/appointments - Invalid parameters: branch_id=%d", branchID)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /branches/{id}/appointments - Failed to get appointments: branch_id=%d, error=%v",
				branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/appointments - Appointments retrieved successfully: branch_id=%d, count=%d",
		branchID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
