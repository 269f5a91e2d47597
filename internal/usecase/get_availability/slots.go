package get_availability

import (
	"time"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	"github.com/agendafacil/AF-SchedulingService/pkg/types"
)

// computeAtomicSlots строит последовательность атомарных слотов ресурса на день
// Слоты генерируются с шагом granularityMinutes от opens до closes;
// последний слот должен полностью помещаться до закрытия.
//
// Слот помечается занятым, если его интервал реально пересекается с перерывом
// или с активной записью. Касание границ пересечением не считается:
// слот 11:30-12:00 и запись 11:00-11:30 не конфликтуют.
//
// Пустая последовательность - валидный результат: день закрыт (rule == nil)
// или ресурс в отпуске/филиал закрыт (blackedOut).
// Некорректное правило (opens >= closes) - ошибка конфигурации, не пустой результат.
func computeAtomicSlots(
	rule *domain.DayRule,
	blackedOut bool,
	booked []*domain.Appointment,
	granularityMinutes int,
) ([]domain.AtomicSlot, error) {
	if rule == nil || blackedOut {
		return []domain.AtomicSlot{}, nil
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	slots := make([]domain.AtomicSlot, 0)
	current := rule.Opens

	for current.IsBefore(rule.Closes) {
		slotEnd, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(rule.Closes) {
			break
		}

		slots = append(slots, domain.AtomicSlot{
			Start: current,
			End:   slotEnd,
			Free:  isSlotFree(current, slotEnd, rule, booked),
		})

		current = slotEnd
	}

	return slots, nil
}

// isSlotFree проверяет, свободен ли интервал [start, end) от перерыва и записей
func isSlotFree(start, end types.TimeString, rule *domain.DayRule, booked []*domain.Appointment) bool {
	if rule.HasBreak && rule.BreakStart != nil && rule.BreakEnd != nil {
		if intervalsOverlap(start, end, *rule.BreakStart, *rule.BreakEnd) {
			return false
		}
	}

	for _, appt := range booked {
		// Отменённые, no-show и завершённые записи календарь не занимают
		if !appt.Occupies() {
			continue
		}

		apptEnd, err := appt.StartTime.AddMinutes(appt.DurationMinutes)
		if err != nil {
			// Запись с некорректным временем пропускаем
			continue
		}

		if intervalsOverlap(start, end, appt.StartTime, apptEnd) {
			return false
		}
	}

	return true
}

// intervalsOverlap проверяет реальное пересечение интервалов [aStart, aEnd) и [bStart, bEnd)
// Используются строгие неравенства: интервалы, граничащие по одной точке, не пересекаются
func intervalsOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// computeBookableStarts определяет, с каких атомарных слотов можно начать
// бронирование длительностью durationMinutes
//
// Начало в позиции i допустимо, когда slotsNeeded = ceil(duration/granularity)
// слотов начиная с i существуют, свободны и смежны по времени (конец каждого
// совпадает с началом следующего - проверка по времени, а не по индексам).
// Конец бронирования вычисляется арифметически: start + duration,
// поэтому длительность, не кратная шагу сетки, не искажает время окончания.
func computeBookableStarts(
	atomicSlots []domain.AtomicSlot,
	durationMinutes int,
	granularityMinutes int,
) []domain.BookableStart {
	starts := make([]domain.BookableStart, 0)
	slotsNeeded := domain.SlotsNeeded(durationMinutes, granularityMinutes)

	for i := range atomicSlots {
		if i+slotsNeeded > len(atomicSlots) {
			break
		}

		if !runIsFreeAndContiguous(atomicSlots[i : i+slotsNeeded]) {
			continue
		}

		end, err := atomicSlots[i].Start.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}

		starts = append(starts, domain.BookableStart{
			Start: atomicSlots[i].Start,
			End:   end,
		})
	}

	return starts
}

// runIsFreeAndContiguous проверяет, что все слоты свободны и идут встык по времени
func runIsFreeAndContiguous(run []domain.AtomicSlot) bool {
	for j := range run {
		if !run[j].Free {
			return false
		}
		if j > 0 && run[j-1].End != run[j].Start {
			return false
		}
	}
	return true
}

// applyMinNotice удаляет из доступных начал те, что раньше минимального
// интервала от текущего момента. Если окно уведомления уходит за полночь,
// на сегодня не остаётся ни одного допустимого начала - путь чтения обязан
// показывать то же, что путь записи отвергнет по notice-проверке.
func applyMinNotice(starts map[types.TimeString]bool, now time.Time, minNoticeMinutes int) {
	minAllowed, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if err != nil {
		for start := range starts {
			delete(starts, start)
		}
		return
	}

	for start := range starts {
		if start.IsBefore(minAllowed) {
			delete(starts, start)
		}
	}
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
