package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendafacil/AF-SchedulingService/internal/api/handlers"
	"github.com/agendafacil/AF-SchedulingService/internal/api/middleware"
	"github.com/agendafacil/AF-SchedulingService/internal/service/schedule"
	"github.com/agendafacil/AF-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidBranchID    = "ID de sucursal inválido"
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidWeekday     = "día de la semana inválido"
	msgInvalidEmployeeID  = "ID de empleado inválido"
	msgMissingClientID    = "falta el ID del cliente"
	msgBranchNotFound     = "sucursal no encontrada"
	msgRuleNotFound       = "regla de horario no encontrada"
	msgForbidden          = "acceso denegado"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/branches/{branchId}/schedule
// Создает или обновляет правило на день недели
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /branches/{id}/schedule - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("PUT /branches/{id}/schedule - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	var req UpsertDayRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /branches/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertDayRule(r.Context(), req.ToServiceRequest(branchID, clientID))
	if err != nil {
		h.respondServiceError(w, "PUT /branches/{id}/schedule", branchID, clientID, err)
		return
	}

	h.logger.Info("PUT /branches/{id}/schedule - Day rule upserted: branch_id=%d, weekday=%d, client_id=%d",
		branchID, req.Weekday, clientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/branches/{branchId}/schedule/{weekday}
// Удаляет правило на день недели - день становится закрытым
// Query params: employeeId (опционально)
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /branches/{id}/schedule/{weekday} - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	weekday, err := strconv.Atoi(vars["weekday"])
	if err != nil {
		h.logger.Warn("DELETE /branches/{id}/schedule/{weekday} - Invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /branches/{id}/schedule/{weekday} - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	var employeeID *int64
	if employeeIDStr := r.URL.Query().Get("employeeId"); employeeIDStr != "" {
		id, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("DELETE /branches/{id}/schedule/{weekday} - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = &id
	}

	req := &models.DeleteDayRuleRequest{
		ClientID:   clientID,
		BranchID:   branchID,
		EmployeeID: employeeID,
		Weekday:    weekday,
	}

	if err := h.service.DeleteDayRule(r.Context(), req); err != nil {
		if errors.Is(err, schedule.ErrDayRuleNotFound) {
			h.logger.Warn("DELETE /branches/{id}/schedule/{weekday} - Rule not found: branch_id=%d, weekday=%d",
				branchID, weekday)
			handlers.RespondNotFound(w, msgRuleNotFound)
			return
		}
		h.respondServiceError(w, "DELETE /branches/{id}/schedule/{weekday}", branchID, clientID, err)
		return
	}

	h.logger.Info("DELETE /branches/{id}/schedule/{weekday} - Day rule deleted: branch_id=%d, weekday=%d, client_id=%d",
		branchID, weekday, clientID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

// respondServiceError обрабатывает общие ошибки сервиса расписаний
func (h *Handler) respondServiceError(w http.ResponseWriter, route string, branchID, clientID int64, err error) {
	switch {
	case errors.Is(err, schedule.ErrBranchNotFound):
		h.logger.Warn("%s - Branch not found: branch_id=%d", route, branchID)
		handlers.RespondNotFound(w, msgBranchNotFound)

	case errors.Is(err, schedule.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: branch_id=%d, client_id=%d", route, branchID, clientID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, schedule.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: branch_id=%d, error=%v", route, branchID, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Service error: branch_id=%d, error=%v", route, branchID, err)
		handlers.RespondInternalError(w)
	}
}
