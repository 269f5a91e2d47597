package update_schedule

import (
	"context"

	"github.com/agendafacil/AF-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertDayRule(ctx context.Context, req *models.UpsertDayRuleRequest) (*models.ScheduleResponse, error)
	DeleteDayRule(ctx context.Context, req *models.DeleteDayRuleRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
