package get_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendafacil/AF-SchedulingService/internal/api/handlers"
	"github.com/agendafacil/AF-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidBranchID   = "ID de sucursal inválido"
	msgInvalidEmployeeID = "ID de empleado inválido"
	msgNotFound          = "horario no encontrado"
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

// Handle GET /api/v1/branches/{branchId}/schedule
// Query params: employeeId (опционально - расписание сотрудника вместо филиала)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/schedule - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	var employeeID *int64
	if employeeIDStr := r.URL.Query().Get("employeeId"); employeeIDStr != "" {
		id, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /branches/{id}/schedule - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = &id
	}

	result, err := h.service.GetSchedule(r.Context(), branchID, employeeID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrScheduleNotFound):
			h.logger.Warn("GET /branches/{id}/schedule - Schedule not found: branch_id=%d, employee_id=%v",
				branchID, employeeID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /branches/{id}/schedule - Failed to get schedule: branch_id=%d, error=%v",
				branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/schedule - Schedule retrieved successfully: branch_id=%d, rules_count=%d",
		branchID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
