package get_availability

import (
	"context"
	"time"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	"github.com/agendafacil/AF-SchedulingService/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByBranchWithFilter получает записи филиала на конкретную дату
	GetByBranchWithFilter(ctx context.Context, filter domain.BranchAppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	// GetWeeklySchedule получает расписание филиала (employeeID == nil) или сотрудника
	GetWeeklySchedule(ctx context.Context, branchID int64, employeeID *int64) (*domain.WeeklySchedule, error)
	// GetScheduleWithFallback получает расписание сотрудника с откатом к расписанию филиала
	GetScheduleWithFallback(ctx context.Context, branchID, employeeID int64) (*domain.WeeklySchedule, error)
}

// BlackoutRepository интерфейс репозитория периодов недоступности
type BlackoutRepository interface {
	// GetForDate получает все периоды недоступности филиала, действующие на дату
	GetForDate(ctx context.Context, branchID int64, date time.Time) ([]*domain.BlackoutPeriod, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetBranch(ctx context.Context, branchID int64) (*catalogservice.Branch, error)
	GetService(ctx context.Context, branchID, serviceID int64) (*catalogservice.Service, error)
	GetEligibleEmployees(ctx context.Context, branchID, serviceID int64) ([]catalogservice.Employee, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
