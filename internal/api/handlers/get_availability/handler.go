package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendafacil/AF-SchedulingService/internal/api/handlers"
	getAvailability "github.com/agendafacil/AF-SchedulingService/internal/usecase/get_availability"
)

const (
	msgInvalidBranchID    = "ID de sucursal inválido"
	msgInvalidServiceID   = "ID de servicio inválido"
	msgInvalidEmployeeID  = "ID de empleado inválido"
	msgMissingServiceID   = "el ID de servicio es obligatorio"
	msgMissingDate        = "la fecha es obligatoria"
	msgInvalidDate        = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgBranchNotFound     = "sucursal no encontrada"
	msgServiceNotFound    = "servicio no encontrado"
	msgServiceNotAtBranch = "el servicio no está disponible en esta sucursal"
	msgEmployeeNotFound   = "el empleado no ofrece este servicio"
	msgNoEmployees        = "ningún empleado ofrece este servicio"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/availability
// Query params: serviceId (required), date (required, YYYY-MM-DD), employeeId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем branchId из URL
	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/availability - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /branches/{id}/availability - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем employeeId из query параметров (опционально)
	var employeeID *int64
	if employeeIDStr := r.URL.Query().Get("employeeId"); employeeIDStr != "" {
		id, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /branches/{id}/availability - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = &id
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /branches/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(branchID, serviceID, employeeID, dateStr)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/availability - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /branches/{id}/availability - Service not found: branch_id=%d, service_id=%d",
				branchID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotAtBranch):
			h.logger.Warn("GET /branches/{id}/availability - Service not at branch: branch_id=%d, service_id=%d",
				branchID, serviceID)
			handlers.RespondBadRequest(w, msgServiceNotAtBranch)

		case errors.Is(err, getAvailability.ErrEmployeeNotEligible):
			h.logger.Warn("GET /branches/{id}/availability - Employee not eligible: branch_id=%d, employee_id=%v",
				branchID, employeeID)
			handlers.RespondBadRequest(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailability.ErrNoEligibleEmployees):
			h.logger.Warn("GET /branches/{id}/availability - No eligible employees: branch_id=%d, service_id=%d",
				branchID, serviceID)
			handlers.RespondBadRequest(w, msgNoEmployees)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /branches/{id}/availability - Failed to get availability: branch_id=%d, service_id=%d, error=%v",
				branchID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /branches/{id}/availability - Availability retrieved: branch_id=%d, service_id=%d, slots_count=%d",
		branchID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
