package create_appointment

import (
	"context"
	"time"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	"github.com/agendafacil/AF-SchedulingService/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByBranchWithFilter(ctx context.Context, filter domain.BranchAppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	GetWeeklySchedule(ctx context.Context, branchID int64, employeeID *int64) (*domain.WeeklySchedule, error)
	GetScheduleWithFallback(ctx context.Context, branchID int64, employeeID int64) (*domain.WeeklySchedule, error)
}

// BlackoutRepository интерфейс репозитория периодов недоступности
type BlackoutRepository interface {
	GetForDate(ctx context.Context, branchID int64, date time.Time) ([]*domain.BlackoutPeriod, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetBranch(ctx context.Context, branchID int64) (*catalogservice.Branch, error)
	GetService(ctx context.Context, branchID, serviceID int64) (*catalogservice.Service, error)
	GetEligibleEmployees(ctx context.Context, branchID, serviceID int64) ([]catalogservice.Employee, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker интерфейс advisory-блокировки ресурса на дату
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
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
