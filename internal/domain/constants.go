package domain

// Default configuration values
const (
	// DefaultGranularityMinutes шаг атомарных слотов
	// Делит час нацело, чтобы слоты начинались в привычное для людей время
	DefaultGranularityMinutes = 30

	DefaultMinNoticeMinutes = 60 // минимум за час до начала при записи на сегодня
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxNotesLength            = 500
	MaxCancellationReasonLen  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы записей, занимающих календарь
// Используется при подсчёте занятости слотов
var OccupyingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы записей, не блокирующих новые бронирования
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusCancelledByBranch,
	StatusNoShow,
}
