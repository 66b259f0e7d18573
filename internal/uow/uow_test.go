package uow

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/kirinyoku/theatre-go/internal/repository/postgres"
)

func TestDoRunsHooksAfterCommit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBeginTx(postgres.DefaultTxOptions)
	mock.ExpectExec("UPDATE plays").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	u := NewUoW(postgres.NewStore(mock))

	var calls []string
	err = u.Do(context.Background(), func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error {
		after(func(context.Context) { calls = append(calls, "hook") })
		_, err := tx.Exec(ctx, "UPDATE plays SET title = 'x'")
		calls = append(calls, "exec")
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"exec", "hook"}, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSkipsHooksOnRollback(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBeginTx(postgres.DefaultTxOptions)
	mock.ExpectRollback()

	u := NewUoW(postgres.NewStore(mock))
	boom := errors.New("boom")

	ran := false
	err = u.Do(context.Background(), func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error {
		after(func(context.Context) { ran = true })
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, ran)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoHookContextSurvivesCancel(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBeginTx(postgres.DefaultTxOptions)
	mock.ExpectCommit()

	u := NewUoW(postgres.NewStore(mock))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cancellable bool
	err = u.Do(ctx, func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error {
		after(func(ctx context.Context) { cancellable = ctx.Done() != nil })
		return nil
	})
	require.NoError(t, err)
	assert.False(t, cancellable)
}
