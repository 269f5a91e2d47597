package models

import (
	"errors"
	"time"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	ClientID           int64  `json:"clientId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	ClientID int64  `json:"clientId"`
	Status   string `json:"status"`
}

// GetClientAppointmentsRequest запрос на получение записей клиента
type GetClientAppointmentsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetBranchAppointmentsRequest запрос на получение записей филиала
type GetBranchAppointmentsRequest struct {
	ClientID        int64      `json:"clientId"`
	BranchID        int64      `json:"branchId"`
	EmployeeID      *int64     `json:"employeeId,omitempty"`      // Фильтр по сотруднику (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBranchAppointmentsRequest) ToDomainFilter() (domain.BranchAppointmentsFilter, error) {
	filter := domain.BranchAppointmentsFilter{
		BranchID:        r.BranchID,
		EmployeeID:      r.EmployeeID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	BranchID        int64  `json:"branchId"`
	EmployeeID      int64  `json:"employeeId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`      // "2026-09-15"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`   // "10:45"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные услуги
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		ClientID:           a.ClientID,
		BranchID:           a.BranchID,
		EmployeeID:         a.EmployeeID,
		ServiceID:          a.ServiceID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	// Конец интервала вычисляем арифметически; при некорректных данных оставляем пустым
	if endTime, err := a.EndTime(); err == nil {
		resp.EndTime = endTime.String()
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appointment := range appointments {
		if apptResp := FromDomainAppointment(appointment); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	// Валидируем статус
	validStatuses := []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByClient,
		domain.StatusCancelledByBranch,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
