package get_availability

import (
	"fmt"

	"github.com/agendafacil/AF-SchedulingService/internal/integrations/catalogservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateServiceAtBranch проверяет, что услуга оказывается в указанном филиале
func validateServiceAtBranch(service *catalogservice.Service, branchID int64) error {
	for _, id := range service.BranchIDs {
		if id == branchID {
			return nil
		}
	}
	return ErrServiceNotAtBranch
}

// selectEmployees выбирает сотрудников для расчёта доступности:
// конкретного (с проверкой, что он оказывает услугу) либо всех подходящих
func selectEmployees(eligible []catalogservice.Employee, employeeID *int64) ([]catalogservice.Employee, error) {
	if employeeID == nil {
		return eligible, nil
	}

	for _, emp := range eligible {
		if emp.ID == *employeeID {
			return []catalogservice.Employee{emp}, nil
		}
	}

	return nil, ErrEmployeeNotEligible
}
