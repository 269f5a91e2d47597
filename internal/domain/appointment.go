package domain

import (
	"time"

	"github.com/agendafacil/AF-SchedulingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending           AppointmentStatus = "pending"
	StatusConfirmed         AppointmentStatus = "confirmed"
	StatusCompleted         AppointmentStatus = "completed"
	StatusCancelledByClient AppointmentStatus = "cancelled_by_client"
	StatusCancelledByBranch AppointmentStatus = "cancelled_by_branch"
	StatusNoShow            AppointmentStatus = "no_show"
)

// Appointment represents a scheduled service appointment in the system
type Appointment struct {
	ID              int64
	ClientID        int64
	BranchID        int64
	EmployeeID      int64 // сотрудник, оказывающий услугу (ресурс = сотрудник + филиал)
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Occupies returns true if the appointment blocks its time interval
// on the calendar. Only pending and confirmed appointments occupy slots.
func (a *Appointment) Occupies() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// EndTime returns the computed end of the appointment interval
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByClient || a.Status == StatusCancelledByBranch
}

// BranchAppointmentsFilter фильтр для получения записей филиала
type BranchAppointmentsFilter struct {
	BranchID        int64              // Обязательный параметр
	EmployeeID      *int64             // Фильтр по сотруднику (опционально, если nil - все сотрудники)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и no-show записи
}
