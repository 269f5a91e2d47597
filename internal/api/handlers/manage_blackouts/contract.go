package manage_blackouts

import (
	"context"

	"github.com/agendafacil/AF-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateBlackout(ctx context.Context, req *models.CreateBlackoutRequest) (*models.BlackoutResponse, error)
	GetEmployeeBlackouts(ctx context.Context, branchID, employeeID, clientID int64) (*models.BlackoutListResponse, error)
	DeleteBlackout(ctx context.Context, blackoutID, clientID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
