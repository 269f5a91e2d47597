package models

import (
	"time"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	"github.com/agendafacil/AF-SchedulingService/pkg/types"
)

// Request модели

// UpsertDayRuleRequest запрос на создание или обновление правила на день недели
type UpsertDayRuleRequest struct {
	ClientID   int64   `json:"clientId"`
	BranchID   int64   `json:"branchId"`
	EmployeeID *int64  `json:"employeeId,omitempty"` // nil - расписание филиала
	Weekday    int     `json:"weekday"`              // 0 = воскресенье ... 6 = суббота
	Opens      string  `json:"opens"`                // "09:00"
	Closes     string  `json:"closes"`               // "18:00"
	BreakStart *string `json:"breakStart,omitempty"` // "13:00" (опционально)
	BreakEnd   *string `json:"breakEnd,omitempty"`   // "14:00" (опционально)
}

// ToDayRule конвертирует request в domain правило с валидацией инвариантов
func (r *UpsertDayRuleRequest) ToDayRule() (*domain.DayRule, error) {
	opens, err := types.NewTimeStringFromString(r.Opens)
	if err != nil {
		return nil, err
	}

	closes, err := types.NewTimeStringFromString(r.Closes)
	if err != nil {
		return nil, err
	}

	rule := &domain.DayRule{
		Opens:  opens,
		Closes: closes,
	}

	if r.BreakStart != nil && r.BreakEnd != nil {
		breakStart, err := types.NewTimeStringFromString(*r.BreakStart)
		if err != nil {
			return nil, err
		}
		breakEnd, err := types.NewTimeStringFromString(*r.BreakEnd)
		if err != nil {
			return nil, err
		}
		rule.HasBreak = true
		rule.BreakStart = &breakStart
		rule.BreakEnd = &breakEnd
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	return rule, nil
}

// DeleteDayRuleRequest запрос на удаление правила (день становится закрытым)
type DeleteDayRuleRequest struct {
	ClientID   int64  `json:"clientId"`
	BranchID   int64  `json:"branchId"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
	Weekday    int    `json:"weekday"`
}

// CreateBlackoutRequest запрос на создание периода недоступности
type CreateBlackoutRequest struct {
	ClientID   int64     `json:"clientId"`
	BranchID   int64     `json:"branchId"`
	EmployeeID *int64    `json:"employeeId,omitempty"` // nil - закрытие филиала целиком
	DateStart  time.Time `json:"dateStart"`
	DateEnd    time.Time `json:"dateEnd"`
	Reason     string    `json:"reason"`
}

// ToDomainBlackout конвертирует request в domain модель
func (r *CreateBlackoutRequest) ToDomainBlackout() *domain.BlackoutPeriod {
	return &domain.BlackoutPeriod{
		BranchID:   r.BranchID,
		EmployeeID: r.EmployeeID,
		DateStart:  r.DateStart,
		DateEnd:    r.DateEnd,
		Reason:     r.Reason,
	}
}

// Response модели

// DayRuleResponse правило на день недели
type DayRuleResponse struct {
	Weekday    int     `json:"weekday"`
	Opens      string  `json:"opens"`
	Closes     string  `json:"closes"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// ScheduleResponse недельное расписание ресурса
type ScheduleResponse struct {
	BranchID   int64             `json:"branchId"`
	EmployeeID *int64            `json:"employeeId,omitempty"`
	Rules      []DayRuleResponse `json:"rules"`
}

// BlackoutResponse период недоступности
type BlackoutResponse struct {
	ID         int64     `json:"id"`
	BranchID   int64     `json:"branchId"`
	EmployeeID *int64    `json:"employeeId,omitempty"`
	DateStart  string    `json:"dateStart"` // "2026-09-01"
	DateEnd    string    `json:"dateEnd"`   // "2026-09-14"
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BlackoutListResponse список периодов недоступности
type BlackoutListResponse struct {
	Blackouts []BlackoutResponse `json:"blackouts"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain расписание в DTO
// Дни без правила в ответ не попадают - ресурс в эти дни закрыт
func FromDomainSchedule(branchID int64, employeeID *int64, schedule *domain.WeeklySchedule) *ScheduleResponse {
	resp := &ScheduleResponse{
		BranchID:   branchID,
		EmployeeID: employeeID,
		Rules:      make([]DayRuleResponse, 0, len(schedule.Rules)),
	}

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		rule, ok := schedule.Rules[weekday]
		if !ok || rule == nil {
			continue
		}

		ruleResp := DayRuleResponse{
			Weekday: int(weekday),
			Opens:   rule.Opens.String(),
			Closes:  rule.Closes.String(),
		}
		if rule.HasBreak && rule.BreakStart != nil && rule.BreakEnd != nil {
			bs := rule.BreakStart.String()
			be := rule.BreakEnd.String()
			ruleResp.BreakStart = &bs
			ruleResp.BreakEnd = &be
		}

		resp.Rules = append(resp.Rules, ruleResp)
	}

	return resp
}

// FromDomainBlackout конвертирует domain период недоступности в DTO
func FromDomainBlackout(b *domain.BlackoutPeriod) *BlackoutResponse {
	if b == nil {
		return nil
	}

	return &BlackoutResponse{
		ID:         b.ID,
		BranchID:   b.BranchID,
		EmployeeID: b.EmployeeID,
		DateStart:  b.DateStart.Format(domain.DateFormat),
		DateEnd:    b.DateEnd.Format(domain.DateFormat),
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt,
	}
}

// FromDomainBlackoutList конвертирует список domain периодов в DTO
func FromDomainBlackoutList(periods []*domain.BlackoutPeriod) *BlackoutListResponse {
	resp := &BlackoutListResponse{
		Blackouts: make([]BlackoutResponse, 0, len(periods)),
	}

	for _, period := range periods {
		if blackoutResp := FromDomainBlackout(period); blackoutResp != nil {
			resp.Blackouts = append(resp.Blackouts, *blackoutResp)
		}
	}

	return resp
}
