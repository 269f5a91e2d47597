package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendafacil/AF-SchedulingService/pkg/dbmetrics"
)

// fakeTx транзакция, у которой Commit возвращает заданную ошибку
type fakeTx struct {
	commitErr error
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error   { return t.commitErr }
func (t *fakeTx) Rollback() error { return nil }

// fakeBeginner считает открытые транзакции
type fakeBeginner struct {
	beginCalls int
	commitErr  error
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.beginCalls++
	return &fakeTx{commitErr: b.commitErr}, nil
}

func TestDoSerializable(t *testing.T) {
	noop := func(ctx context.Context) error { return nil }

	t.Run("serialization failure at commit is retried", func(t *testing.T) {
		db := &fakeBeginner{commitErr: &pq.Error{Code: "40001"}}
		m := NewTransactionManager(db)

		err := m.DoSerializable(context.Background(), noop)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTransaction)
		assert.Equal(t, maxSerializableRetries, db.beginCalls)
	})

	t.Run("other commit error is not retried", func(t *testing.T) {
		db := &fakeBeginner{commitErr: errors.New("connection reset")}
		m := NewTransactionManager(db)

		err := m.DoSerializable(context.Background(), noop)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTransaction)
		assert.Equal(t, 1, db.beginCalls)
	})

	t.Run("successful commit runs once", func(t *testing.T) {
		db := &fakeBeginner{}
		m := NewTransactionManager(db)

		require.NoError(t, m.DoSerializable(context.Background(), noop))
		assert.Equal(t, 1, db.beginCalls)
	})

	t.Run("fn error rolls back without retry", func(t *testing.T) {
		db := &fakeBeginner{}
		m := NewTransactionManager(db)
		fnErr := errors.New("business rejection")

		err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
			return fnErr
		})
		assert.ErrorIs(t, err, fnErr)
		assert.Equal(t, 1, db.beginCalls)
	})
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, isSerializationFailure(&pq.Error{Code: "40001"}))
	assert.False(t, isSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, isSerializationFailure(errors.New("40001")))

	// Обёртка ошибки коммита сохраняет цепочку до *pq.Error
	wrapped := fmt.Errorf("%w: commit: %w", ErrTransaction, &pq.Error{Code: "40001"})
	assert.True(t, isSerializationFailure(wrapped))
}
