package get_availability

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("branch not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceNotAtBranch возвращается, когда услуга не оказывается в этом филиале
	ErrServiceNotAtBranch = errors.New("service is not available at this branch")

	// ErrEmployeeNotEligible возвращается, когда сотрудник не оказывает эту услугу
	ErrEmployeeNotEligible = errors.New("employee does not provide this service")

	// ErrNoEligibleEmployees возвращается, когда услугу не оказывает ни один сотрудник
	ErrNoEligibleEmployees = errors.New("no eligible employees for service")

	// ErrInvalidSchedule возвращается при нарушении инвариантов расписания
	// (ошибка конфигурации: opens >= closes и т.п.), никогда не маскируется пустым результатом
	ErrInvalidSchedule = errors.New("invalid schedule configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
