package reservation

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingExecutor struct {
	queryErr error
}

func (f *failingExecutor) QueryContext(_ context.Context, _ string, _ ...interface{}) (*sql.Rows, error) {
	return nil, f.queryErr
}

func (f *failingExecutor) QueryRowContext(_ context.Context, _ string, _ ...interface{}) *sql.Row {
	return nil
}

func (f *failingExecutor) ExecContext(_ context.Context, _ string, _ ...interface{}) (sql.Result, error) {
	return nil, f.queryErr
}

// Ошибка драйвера должна оставаться в цепочке после оборачивания:
// менеджер транзакций распознаёт serialization_failure через errors.As
func TestGetByTableAndDate_KeepsDriverErrorInChain(t *testing.T) {
	cause := &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
	repo := NewRepository(&failingExecutor{queryErr: cause})

	_, err := repo.GetByTableAndDate(context.Background(), 5, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrExecQuery)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestUpdateStatus_KeepsDriverErrorInChain(t *testing.T) {
	cause := &pq.Error{Code: "40001"}
	repo := NewRepository(&failingExecutor{queryErr: cause})

	err := repo.UpdateStatus(context.Background(), 1, "cancelled")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrExecQuery)

	var pqErr *pq.Error
	assert.True(t, errors.As(err, &pqErr))
}
