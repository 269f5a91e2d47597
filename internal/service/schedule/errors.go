package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrDayRuleNotFound возвращается, когда правило на день не найдено
	ErrDayRuleNotFound = errors.New("day rule not found")

	// ErrBlackoutNotFound возвращается, когда период недоступности не найден
	ErrBlackoutNotFound = errors.New("blackout period not found")

	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("branch not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
