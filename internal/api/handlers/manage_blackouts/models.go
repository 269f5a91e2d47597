package manage_blackouts

import (
	"time"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	"github.com/agendafacil/AF-SchedulingService/internal/service/schedule/models"
)

// CreateBlackoutRequest HTTP request model
type CreateBlackoutRequest struct {
	EmployeeID *int64 `json:"employeeId,omitempty"` // nil - закрытие филиала целиком
	DateStart  string `json:"dateStart"`            // "2026-09-01"
	DateEnd    string `json:"dateEnd"`              // "2026-09-14"
	Reason     string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса (с парсингом дат)
func (r *CreateBlackoutRequest) ToServiceRequest(branchID, clientID int64) (*models.CreateBlackoutRequest, error) {
	dateStart, err := time.Parse(domain.DateFormat, r.DateStart)
	if err != nil {
		return nil, err
	}

	dateEnd, err := time.Parse(domain.DateFormat, r.DateEnd)
	if err != nil {
		return nil, err
	}

	return &models.CreateBlackoutRequest{
		ClientID:   clientID,
		BranchID:   branchID,
		EmployeeID: r.EmployeeID,
		DateStart:  dateStart,
		DateEnd:    dateEnd,
		Reason:     r.Reason,
	}, nil
}
