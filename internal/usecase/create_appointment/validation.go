package create_appointment

import (
	"fmt"
	"time"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	"github.com/agendafacil/AF-SchedulingService/internal/integrations/catalogservice"
	"github.com/agendafacil/AF-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

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

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(date time.Time, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateNotice проверяет, что запись не нарушает минимальный интервал до начала
func validateNotice(
	date time.Time,
	startTime types.TimeString,
	now time.Time,
	minNoticeMinutes int,
) error {
	// Если дата записи не сегодня, проверка не нужна
	if !isSameDay(date, now) {
		return nil
	}

	// Вычисляем минимальное допустимое время
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		// Окно уведомления уходит за полночь: сегодня уже не осталось времени,
		// удовлетворяющего минимальному интервалу
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
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

// validateInterval повторяет на пути записи те же проверки, по которым
// строится доступность на пути чтения. Порядок фиксирован: рабочий день,
// рабочие часы, перерыв, недоступность, конфликт с существующими записями.
// Первое нарушение определяет причину отказа.
func validateInterval(
	rule *domain.DayRule,
	blackedOut bool,
	booked []*domain.Appointment,
	start, end types.TimeString,
) error {
	if rule == nil {
		return ErrClosedDay
	}

	if err := rule.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	if start.IsBefore(rule.Opens) || end.IsAfter(rule.Closes) {
		return ErrOutsideBusinessHours
	}

	if rule.HasBreak && rule.BreakStart != nil && rule.BreakEnd != nil {
		if intervalsOverlap(start, end, *rule.BreakStart, *rule.BreakEnd) {
			return ErrDuringBreak
		}
	}

	if blackedOut {
		return ErrResourceBlackedOut
	}

	for _, appt := range booked {
		// Отменённые, no-show и завершённые записи календарь не занимают
		if !appt.Occupies() {
			continue
		}

		apptEnd, err := appt.StartTime.AddMinutes(appt.DurationMinutes)
		if err != nil {
			continue
		}

		if intervalsOverlap(start, end, appt.StartTime, apptEnd) {
			return ErrSlotConflict
		}
	}

	return nil
}

// intervalsOverlap проверяет реальное пересечение интервалов [aStart, aEnd) и [bStart, bEnd)
// Используются строгие неравенства: интервалы, граничащие по одной точке, не пересекаются
func intervalsOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// getServicePrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0.0
func getServicePrice(service *catalogservice.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
