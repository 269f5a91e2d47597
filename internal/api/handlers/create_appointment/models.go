package create_appointment

import (
	"time"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	createAppointment "github.com/agendafacil/AF-SchedulingService/internal/usecase/create_appointment"
	"github.com/agendafacil/AF-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	BranchID   int64   `json:"branchId"`
	ServiceID  int64   `json:"serviceId"`
	EmployeeID *int64  `json:"employeeId,omitempty"` // nil - назначить автоматически
	Date       string  `json:"date"`                 // "2026-09-15"
	StartTime  string  `json:"horaInicio"`           // "10:00"
	Notes      *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	BranchID        int64   `json:"branchId"`
	EmployeeID      int64   `json:"employeeId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"horaInicio"`
	EndTime         string  `json:"horaFin"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:   clientID,
		BranchID:   r.BranchID,
		ServiceID:  r.ServiceID,
		EmployeeID: r.EmployeeID,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		BranchID:        resp.BranchID,
		EmployeeID:      resp.EmployeeID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
