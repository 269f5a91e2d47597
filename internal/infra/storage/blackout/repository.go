package blackout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	"github.com/agendafacil/AF-SchedulingService/pkg/dbmetrics"
	"github.com/agendafacil/AF-SchedulingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var blackoutColumns = []string{
	"id",
	"branch_id",
	"employee_id",
	"date_start",
	"date_end",
	"reason",
	"created_at",
}

// Repository репозиторий периодов недоступности
// Хранит отпуска и больничные сотрудников (employee_id задан)
// и закрытия филиала целиком (employee_id IS NULL)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория периодов недоступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает период недоступности
func (r *Repository) Create(ctx context.Context, period *domain.BlackoutPeriod) (*domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blackout_periods").
		Columns("branch_id", "employee_id", "date_start", "date_end", "reason").
		Values(period.BranchID, period.EmployeeID, period.DateStart, period.DateEnd, period.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&period.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	period.CreatedAt = createdAt.Time

	return period, nil
}

// GetForDate получает все периоды недоступности филиала, действующие на дату
// Включает как закрытия филиала, так и персональные периоды всех сотрудников
func (r *Repository) GetForDate(ctx context.Context, branchID int64, date time.Time) ([]*domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blackoutColumns...).
		From("blackout_periods").
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.LtOrEq{"date_start": date}).
		Where(squirrel.GtOrEq{"date_end": date}).
		OrderBy("date_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlackouts(rows)
}

// GetByID получает период недоступности по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blackoutColumns...).
		From("blackout_periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var period domain.BlackoutPeriod
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&period.ID,
		&period.BranchID,
		&period.EmployeeID,
		&period.DateStart,
		&period.DateEnd,
		&period.Reason,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlackoutNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}

	period.CreatedAt = createdAt.Time

	return &period, nil
}

// GetByEmployee получает периоды недоступности сотрудника
func (r *Repository) GetByEmployee(ctx context.Context, branchID, employeeID int64) ([]*domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blackoutColumns...).
		From("blackout_periods").
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("date_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployee - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployee - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlackouts(rows)
}

// Delete удаляет период недоступности
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blackout_periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlackoutNotFound
	}

	return nil
}

func scanBlackouts(rows *sql.Rows) ([]*domain.BlackoutPeriod, error) {
	periods := make([]*domain.BlackoutPeriod, 0)

	for rows.Next() {
		var period domain.BlackoutPeriod
		var createdAt sql.NullTime

		err := rows.Scan(
			&period.ID,
			&period.BranchID,
			&period.EmployeeID,
			&period.DateStart,
			&period.DateEnd,
			&period.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlackouts - scan row: %v", ErrScanRow, err)
		}

		period.CreatedAt = createdAt.Time
		periods = append(periods, &period)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlackouts - rows error: %v", ErrScanRow, err)
	}

	return periods, nil
}
