package update_schedule

import (
	"github.com/agendafacil/AF-SchedulingService/internal/service/schedule/models"
)

// UpsertDayRuleRequest HTTP request model
type UpsertDayRuleRequest struct {
	EmployeeID *int64  `json:"employeeId,omitempty"` // nil - расписание филиала
	Weekday    int     `json:"weekday"`              // 0 = воскресенье ... 6 = суббота
	Opens      string  `json:"opens"`                // "09:00"
	Closes     string  `json:"closes"`               // "18:00"
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertDayRuleRequest) ToServiceRequest(branchID, clientID int64) *models.UpsertDayRuleRequest {
	return &models.UpsertDayRuleRequest{
		ClientID:   clientID,
		BranchID:   branchID,
		EmployeeID: r.EmployeeID,
		Weekday:    r.Weekday,
		Opens:      r.Opens,
		Closes:     r.Closes,
		BreakStart: r.BreakStart,
		BreakEnd:   r.BreakEnd,
	}
}
