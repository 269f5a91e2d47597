package get_availability

import (
	"time"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	getAvailability "github.com/agendafacil/AF-SchedulingService/internal/usecase/get_availability"
)

// SlotResponse кандидат на начало бронирования в сетке рабочего дня
type SlotResponse struct {
	HoraInicio string `json:"horaInicio"` // "09:00"
	HoraFin    string `json:"horaFin"`    // "09:45"
	Disponible bool   `json:"disponible"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date               string         `json:"date"` // "2026-09-15"
	BranchID           int64          `json:"branchId"`
	ServiceID          int64          `json:"serviceId"`
	EmployeeID         *int64         `json:"employeeId,omitempty"`
	DurationMinutes    int            `json:"durationMinutes"`
	GranularityMinutes int            `json:"granularityMinutes"`
	Slots              []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP параметры в модель use case
func ToUseCaseRequest(branchID, serviceID int64, employeeID *int64, dateStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		BranchID:   branchID,
		ServiceID:  serviceID,
		EmployeeID: employeeID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			HoraInicio: slot.Start.String(),
			HoraFin:    slot.End.String(),
			Disponible: slot.Available,
		}
	}

	return &AvailabilityResponse{
		Date:               resp.Date.Format(domain.DateFormat),
		BranchID:           resp.BranchID,
		ServiceID:          resp.ServiceID,
		EmployeeID:         resp.EmployeeID,
		DurationMinutes:    resp.DurationMinutes,
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              slots,
	}
}
