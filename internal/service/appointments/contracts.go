package appointments

import (
	"context"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	"github.com/agendafacil/AF-SchedulingService/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByBranchWithFilter(ctx context.Context, filter domain.BranchAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error
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
