package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда для ресурса нет ни одной строки расписания
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrDayRuleNotFound возвращается, когда правило на день недели не найдено
	ErrDayRuleNotFound = errors.New("schedule.repository: day rule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
