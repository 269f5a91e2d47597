package manage_blackouts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendafacil/AF-SchedulingService/internal/api/handlers"
	"github.com/agendafacil/AF-SchedulingService/internal/api/middleware"
	"github.com/agendafacil/AF-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidBranchID    = "ID de sucursal inválido"
	msgInvalidEmployeeID  = "ID de empleado inválido"
	msgInvalidBlackoutID  = "ID de período inválido"
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidDate        = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgMissingClientID    = "falta el ID del cliente"
	msgBranchNotFound     = "sucursal no encontrada"
	msgBlackoutNotFound   = "período de indisponibilidad no encontrado"
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

// HandleCreate POST /api/v1/branches/{branchId}/blackouts
// Создает период недоступности сотрудника или всего филиала
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /branches/{id}/blackouts - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("POST /branches/{id}/blackouts - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	var req CreateBlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /branches/{id}/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(branchID, clientID)
	if err != nil {
		h.logger.Warn("POST /branches/{id}/blackouts - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CreateBlackout(r.Context(), serviceReq)
	if err != nil {
		h.respondServiceError(w, "POST /branches/{id}/blackouts", branchID, clientID, err)
		return
	}

	h.logger.Info("POST /branches/{id}/blackouts - Blackout created: blackout_id=%d, branch_id=%d, client_id=%d",
		result.ID, branchID, clientID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/branches/{branchId}/employees/{employeeId}/blackouts
// Возвращает периоды недоступности сотрудника
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/employees/{id}/blackouts - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/employees/{id}/blackouts - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("GET /branches/{id}/employees/{id}/blackouts - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	result, err := h.service.GetEmployeeBlackouts(r.Context(), branchID, employeeID, clientID)
	if err != nil {
		h.respondServiceError(w, "GET /branches/{id}/employees/{id}/blackouts", branchID, clientID, err)
		return
	}

	h.logger.Info("GET /branches/{id}/employees/{id}/blackouts - Blackouts retrieved: branch_id=%d, employee_id=%d, count=%d",
		branchID, employeeID, len(result.Blackouts))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/blackouts/{blackoutId}
// Удаляет период недоступности
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	blackoutID, err := strconv.ParseInt(vars["blackoutId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /blackouts/{id} - Invalid blackout ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlackoutID)
		return
	}

	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /blackouts/{id} - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	if err := h.service.DeleteBlackout(r.Context(), blackoutID, clientID); err != nil {
		if errors.Is(err, schedule.ErrBlackoutNotFound) {
			h.logger.Warn("DELETE /blackouts/{id} - Blackout not found: blackout_id=%d", blackoutID)
			handlers.RespondNotFound(w, msgBlackoutNotFound)
			return
		}
		h.respondServiceError(w, "DELETE /blackouts/{id}", blackoutID, clientID, err)
		return
	}

	h.logger.Info("DELETE /blackouts/{id} - Blackout deleted: blackout_id=%d, client_id=%d", blackoutID, clientID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

// respondServiceError обрабатывает общие ошибки сервиса расписаний
func (h *Handler) respondServiceError(w http.ResponseWriter, route string, id, clientID int64, err error) {
	switch {
	case errors.Is(err, schedule.ErrBranchNotFound):
		h.logger.Warn("%s - Branch not found: id=%d", route, id)
		handlers.RespondNotFound(w, msgBranchNotFound)

	case errors.Is(err, schedule.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: id=%d, client_id=%d", route, id, clientID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, schedule.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: id=%d, error=%v", route, id, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Service error: id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
