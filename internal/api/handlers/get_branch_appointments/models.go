package get_branch_appointments

import (
	"strconv"
	"time"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	"github.com/agendafacil/AF-SchedulingService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров
// startDate/endDate парсятся как YYYY-MM-DD; date - сокращение для периода из одного дня
func ToServiceRequest(
	branchID, clientID int64,
	employeeIDStr, statusStr, dateStr, startDateStr, endDateStr, includeInactiveStr string,
) (*models.GetBranchAppointmentsRequest, error) {
	req := &models.GetBranchAppointmentsRequest{
		ClientID: clientID,
		BranchID: branchID,
	}

	if employeeIDStr != "" {
		employeeID, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.EmployeeID = &employeeID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if startDateStr != "" {
			startDate, err := time.Parse(domain.DateFormat, startDateStr)
			if err != nil {
				return nil, err
			}
			req.StartDate = &startDate
		}
		if endDateStr != "" {
			endDate, err := time.Parse(domain.DateFormat, endDateStr)
			if err != nil {
				return nil, err
			}
			req.EndDate = &endDate
		}
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
