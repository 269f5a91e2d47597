package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/agendafacil/AF-SchedulingService/pkg/types"
)

// ErrInvalidDayRule возвращается при нарушении инвариантов расписания дня
// (opens >= closes, перерыв вне рабочего интервала и т.п.)
// Это ошибка конфигурации бизнеса, она не должна молча приводиться к валидному виду
var ErrInvalidDayRule = errors.New("invalid day rule")

// DayRule represents the working hours of a branch or an employee for one
// day of the week, with an optional single break interval.
type DayRule struct {
	Opens    types.TimeString
	Closes   types.TimeString
	HasBreak bool
	// BreakStart и BreakEnd либо оба заданы (HasBreak=true), либо оба nil
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
}

// Validate проверяет инварианты правила:
// opens < closes; если есть перерыв: opens <= breakStart < breakEnd <= closes
func (r *DayRule) Validate() error {
	if err := r.Opens.Validate(); err != nil {
		return fmt.Errorf("%w: opens: %v", ErrInvalidDayRule, err)
	}
	if err := r.Closes.Validate(); err != nil {
		return fmt.Errorf("%w: closes: %v", ErrInvalidDayRule, err)
	}
	if !r.Opens.IsBefore(r.Closes) {
		return fmt.Errorf("%w: opens %s must be before closes %s", ErrInvalidDayRule, r.Opens, r.Closes)
	}

	if !r.HasBreak {
		if r.BreakStart != nil || r.BreakEnd != nil {
			return fmt.Errorf("%w: break interval set without hasBreak", ErrInvalidDayRule)
		}
		return nil
	}

	if r.BreakStart == nil || r.BreakEnd == nil {
		return fmt.Errorf("%w: hasBreak requires both breakStart and breakEnd", ErrInvalidDayRule)
	}
	if err := r.BreakStart.Validate(); err != nil {
		return fmt.Errorf("%w: breakStart: %v", ErrInvalidDayRule, err)
	}
	if err := r.BreakEnd.Validate(); err != nil {
		return fmt.Errorf("%w: breakEnd: %v", ErrInvalidDayRule, err)
	}
	if r.BreakStart.IsBefore(r.Opens) {
		return fmt.Errorf("%w: breakStart %s before opens %s", ErrInvalidDayRule, *r.BreakStart, r.Opens)
	}
	if !r.BreakStart.IsBefore(*r.BreakEnd) {
		return fmt.Errorf("%w: breakStart %s must be before breakEnd %s", ErrInvalidDayRule, *r.BreakStart, *r.BreakEnd)
	}
	if r.BreakEnd.IsAfter(r.Closes) {
		return fmt.Errorf("%w: breakEnd %s after closes %s", ErrInvalidDayRule, *r.BreakEnd, r.Closes)
	}

	return nil
}

// WeeklySchedule represents a recurring weekly working-hours table.
// A missing weekday entry means the resource is closed that day.
type WeeklySchedule struct {
	Rules map[time.Weekday]*DayRule
}

// NewWeeklySchedule создает пустое недельное расписание (все дни закрыты)
func NewWeeklySchedule() *WeeklySchedule {
	return &WeeklySchedule{Rules: make(map[time.Weekday]*DayRule)}
}

// RuleFor возвращает правило на день недели указанной даты
// nil означает, что день закрыт
func (s *WeeklySchedule) RuleFor(date time.Time) *DayRule {
	if s == nil || s.Rules == nil {
		return nil
	}
	return s.Rules[date.Weekday()]
}

// IntersectDayRules возвращает эффективное правило ресурса (сотрудник + филиал):
// открытие - максимум из двух, закрытие - минимум.
// Если у обоих задан перерыв, действует перерыв сотрудника (модель одного перерыва в день).
// Возвращает nil, если пересечение пустое или одно из правил отсутствует.
func IntersectDayRules(branch, employee *DayRule) *DayRule {
	if branch == nil || employee == nil {
		return nil
	}

	opens := branch.Opens
	if employee.Opens.IsAfter(opens) {
		opens = employee.Opens
	}
	closes := branch.Closes
	if employee.Closes.IsBefore(closes) {
		closes = employee.Closes
	}
	if !opens.IsBefore(closes) {
		return nil
	}

	effective := &DayRule{Opens: opens, Closes: closes}

	source := branch
	if employee.HasBreak {
		source = employee
	}
	if source.HasBreak && source.BreakStart != nil && source.BreakEnd != nil {
		// Перерыв усекается до эффективного рабочего интервала
		bs := *source.BreakStart
		be := *source.BreakEnd
		if bs.IsBefore(opens) {
			bs = opens
		}
		if be.IsAfter(closes) {
			be = closes
		}
		if bs.IsBefore(be) {
			effective.HasBreak = true
			effective.BreakStart = &bs
			effective.BreakEnd = &be
		}
	}

	return effective
}
