package cancel_appointment

import (
	"github.com/agendafacil/AF-SchedulingService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(clientID int64) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		ClientID:           clientID,
		CancellationReason: r.CancellationReason,
	}
}
