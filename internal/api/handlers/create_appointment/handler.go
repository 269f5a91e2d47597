package create_appointment

import (
	"errors"
	"net/http"

	"github.com/agendafacil/AF-SchedulingService/internal/api/handlers"
	"github.com/agendafacil/AF-SchedulingService/internal/api/middleware"
	createAppointment "github.com/agendafacil/AF-SchedulingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidDate        = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgInvalidTime        = "formato de hora inválido, se espera HH:MM"
	msgMissingClientID    = "falta el ID del cliente"
	msgBranchNotFound     = "sucursal no encontrada"
	msgServiceNotFound    = "servicio no encontrado"
	msgServiceNotAtBranch = "el servicio no está disponible en esta sucursal"
	msgEmployeeNotFound   = "el empleado no ofrece este servicio"
	msgNoEmployees        = "ningún empleado ofrece este servicio"
	msgPastDate           = "la fecha ya pasó"
	msgTooLateToBook      = "es demasiado tarde para reservar esta hora"
	msgClosedDay          = "la sucursal no atiende ese día"
	msgOutsideHours       = "el horario solicitado está fuera del horario de atención"
	msgDuringBreak        = "el horario solicitado coincide con el descanso"
	msgBlackedOut         = "el recurso no está disponible en esa fecha"
	msgResourceBusy       = "el recurso está siendo reservado, intente de nuevo"
	msgSlotConflict       = "no hay suficientes minutos disponibles desde esta hora"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем clientID из контекста (через middleware Auth)
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if req.StartTime != "" && len(req.Date) == 10 {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: client_id=%d, branch_id=%d, time=%s",
				clientID, req.BranchID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrResourceBusy):
			h.logger.Warn("POST /appointments - Resource busy: client_id=%d, branch_id=%d", clientID, req.BranchID)
			handlers.RespondError(w, http.StatusConflict, msgResourceBusy)

		case errors.Is(err, createAppointment.ErrResourceBlackedOut):
			h.logger.Warn("POST /appointments - Resource blacked out: client_id=%d, branch_id=%d", clientID, req.BranchID)
			handlers.RespondError(w, http.StatusConflict, msgBlackedOut)

		case errors.Is(err, createAppointment.ErrBranchNotFound):
			h.logger.Warn("POST /appointments - Branch not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: branch_id=%d, service_id=%d",
				req.BranchID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotAtBranch):
			h.logger.Warn("POST /appointments - Service not at branch: branch_id=%d, service_id=%d",
				req.BranchID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotAtBranch)

		case errors.Is(err, createAppointment.ErrEmployeeNotEligible):
			h.logger.Warn("POST /appointments - Employee not eligible: branch_id=%d, employee_id=%v",
				req.BranchID, req.EmployeeID)
			handlers.RespondBadRequest(w, msgEmployeeNotFound)

		case errors.Is(err, createAppointment.ErrNoEligibleEmployees):
			h.logger.Warn("POST /appointments - No eligible employees: branch_id=%d, service_id=%d",
				req.BranchID, req.ServiceID)
			handlers.RespondBadRequest(w, msgNoEmployees)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Past date: client_id=%d, date=%s", clientID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: client_id=%d, time=%s", clientID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrClosedDay):
			h.logger.Warn("POST /appointments - Closed day: branch_id=%d, date=%s", req.BranchID, req.Date)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgClosedDay)

		case errors.Is(err, createAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("POST /appointments - Outside business hours: branch_id=%d, time=%s",
				req.BranchID, req.StartTime)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrDuringBreak):
			h.logger.Warn("POST /appointments - During break: branch_id=%d, time=%s", req.BranchID, req.StartTime)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgDuringBreak)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, branch_id=%d, error=%v",
				clientID, req.BranchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, client_id=%d, branch_id=%d, employee_id=%d",
		result.ID, clientID, req.BranchID, result.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
