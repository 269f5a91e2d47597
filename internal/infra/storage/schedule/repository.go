package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	"github.com/agendafacil/AF-SchedulingService/pkg/dbmetrics"
	"github.com/agendafacil/AF-SchedulingService/pkg/psqlbuilder"
	"github.com/agendafacil/AF-SchedulingService/pkg/types"
)

// Repository репозиторий недельных расписаний филиалов и сотрудников
// Строки хранятся по ключу (branch_id, employee_id, weekday);
// employee_id IS NULL означает расписание самого филиала
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklySchedule получает недельное расписание ресурса
// employeeID == nil - расписание филиала
// Возвращает ErrScheduleNotFound, если нет ни одной строки
func (r *Repository) GetWeeklySchedule(ctx context.Context, branchID int64, employeeID *int64) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"weekday",
		"opens",
		"closes",
		"has_break",
		"break_start",
		"break_end",
	).
		From("weekly_schedules").
		Where(squirrel.Eq{"branch_id": branchID}).
		OrderBy("weekday ASC")

	if employeeID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"employee_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"employee_id": *employeeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedule := domain.NewWeeklySchedule()
	found := false

	for rows.Next() {
		var (
			weekday              int
			opens, closes        types.TimeString
			hasBreak             bool
			breakStart, breakEnd sql.NullString
		)

		if err := rows.Scan(&weekday, &opens, &closes, &hasBreak, &breakStart, &breakEnd); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklySchedule - scan row: %v", ErrScanRow, err)
		}

		rule := &domain.DayRule{
			Opens:    opens,
			Closes:   closes,
			HasBreak: hasBreak,
		}
		if hasBreak && breakStart.Valid && breakEnd.Valid {
			bs := types.TimeString(breakStart.String)
			be := types.TimeString(breakEnd.String)
			rule.BreakStart = &bs
			rule.BreakEnd = &be
		}

		schedule.Rules[time.Weekday(weekday)] = rule
		found = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - rows error: %v", ErrScanRow, err)
	}

	if !found {
		return nil, ErrScheduleNotFound
	}

	return schedule, nil
}

// GetScheduleWithFallback получает расписание сотрудника с откатом к расписанию филиала
// Приоритет применения:
// 1. Персональное расписание сотрудника (branch_id, employee_id)
// 2. Расписание филиала (branch_id, NULL)
//
// Если расписание не найдено ни на одном уровне, возвращает ErrScheduleNotFound
func (r *Repository) GetScheduleWithFallback(ctx context.Context, branchID, employeeID int64) (*domain.WeeklySchedule, error) {
	schedule, err := r.GetWeeklySchedule(ctx, branchID, &employeeID)
	if err == nil {
		return schedule, nil
	}
	if err != ErrScheduleNotFound {
		return nil, fmt.Errorf("%w: GetScheduleWithFallback - employee level: %v", ErrExecQuery, err)
	}

	schedule, err = r.GetWeeklySchedule(ctx, branchID, nil)
	if err == nil {
		return schedule, nil
	}
	if err != ErrScheduleNotFound {
		return nil, fmt.Errorf("%w: GetScheduleWithFallback - branch level: %v", ErrExecQuery, err)
	}

	return nil, ErrScheduleNotFound
}

// UpsertDayRule создает или обновляет правило на день недели
func (r *Repository) UpsertDayRule(ctx context.Context, branchID int64, employeeID *int64, weekday time.Weekday, rule *domain.DayRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var breakStart, breakEnd interface{}
	if rule.HasBreak && rule.BreakStart != nil && rule.BreakEnd != nil {
		breakStart = string(*rule.BreakStart)
		breakEnd = string(*rule.BreakEnd)
	}

	query, args, err := psqlbuilder.Insert("weekly_schedules").
		Columns(
			"branch_id",
			"employee_id",
			"weekday",
			"opens",
			"closes",
			"has_break",
			"break_start",
			"break_end",
		).
		Values(
			branchID,
			employeeID,
			int(weekday),
			rule.Opens,
			rule.Closes,
			rule.HasBreak,
			breakStart,
			breakEnd,
		).
		Suffix(`ON CONFLICT (branch_id, employee_id, weekday) DO UPDATE SET
			opens = EXCLUDED.opens,
			closes = EXCLUDED.closes,
			has_break = EXCLUDED.has_break,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertDayRule - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertDayRule - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteDayRule удаляет правило на день недели (день становится закрытым)
func (r *Repository) DeleteDayRule(ctx context.Context, branchID int64, employeeID *int64, weekday time.Weekday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("weekly_schedules").
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.Eq{"weekday": int(weekday)})

	if employeeID == nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"employee_id": nil})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"employee_id": *employeeID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteDayRule - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteDayRule - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteDayRule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDayRuleNotFound
	}

	return nil
}
