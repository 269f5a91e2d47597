package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при попытке записаться на прошедшую дату
	ErrInvalidDate = errors.New("appointment date is in the past")

	// ErrTooLateToBook возвращается, когда до начала записи осталось меньше минимального интервала
	ErrTooLateToBook = errors.New("too late to book this time")

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

	// ErrClosedDay возвращается, когда филиал или сотрудник не работает в этот день
	ErrClosedDay = errors.New("closed on this day")

	// ErrOutsideBusinessHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("interval is outside business hours")

	// ErrDuringBreak возвращается, когда интервал пересекается с перерывом
	ErrDuringBreak = errors.New("interval overlaps a break")

	// ErrResourceBlackedOut возвращается, когда на дату действует период недоступности
	ErrResourceBlackedOut = errors.New("resource is blacked out on this date")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующей записью
	ErrSlotConflict = errors.New("interval conflicts with an existing appointment")

	// ErrResourceBusy возвращается, когда ресурс заблокирован конкурентной операцией
	ErrResourceBusy = errors.New("resource is locked by a concurrent operation")

	// ErrInvalidSchedule возвращается при нарушении инвариантов расписания
	ErrInvalidSchedule = errors.New("invalid schedule configuration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
