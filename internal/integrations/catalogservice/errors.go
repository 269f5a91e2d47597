package catalogservice

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("branch not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrNoEligibleEmployees возвращается, когда на услугу не назначен ни один сотрудник
	ErrNoEligibleEmployees = errors.New("no eligible employees for service")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
