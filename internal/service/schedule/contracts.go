package schedule

import (
	"context"
	"time"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	"github.com/agendafacil/AF-SchedulingService/internal/integrations/catalogservice"
)

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	GetWeeklySchedule(ctx context.Context, branchID int64, employeeID *int64) (*domain.WeeklySchedule, error)
	UpsertDayRule(ctx context.Context, branchID int64, employeeID *int64, weekday time.Weekday, rule *domain.DayRule) error
	DeleteDayRule(ctx context.Context, branchID int64, employeeID *int64, weekday time.Weekday) error
}

// BlackoutRepository интерфейс репозитория периодов недоступности
type BlackoutRepository interface {
	Create(ctx context.Context, period *domain.BlackoutPeriod) (*domain.BlackoutPeriod, error)
	GetByID(ctx context.Context, id int64) (*domain.BlackoutPeriod, error)
	GetByEmployee(ctx context.Context, branchID, employeeID int64) ([]*domain.BlackoutPeriod, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetBranch(ctx context.Context, branchID int64) (*catalogservice.Branch, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
