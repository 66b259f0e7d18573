//go:build integration

package reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/theatre-go/internal/domain"
	"github.com/kirinyoku/theatre-go/internal/postgres"
	postgresrepo "github.com/kirinyoku/theatre-go/internal/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("theatre"),
		tcpostgres.WithUsername("theatre"),
		tcpostgres.WithPassword("theatre"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func TestCreateConcurrentSameSeat(t *testing.T) {
	pool := newPostgres(t)
	ctx := context.Background()

	var perfID int64
	err := pool.QueryRow(ctx, `
		WITH h AS (
			INSERT INTO theatre_halls (name, rows, seats_in_row) VALUES ('Blue', 5, 10) RETURNING id
		), p AS (
			INSERT INTO plays (title, description) VALUES ('Hamlet', '') RETURNING id
		)
		INSERT INTO performances (play_id, theatre_hall_id, show_time)
		SELECT p.id, h.id, $1 FROM p, h
		RETURNING id`,
		time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC),
	).Scan(&perfID)
	require.NoError(t, err)

	svc := New(postgresrepo.NewStore(pool), nil, nil, Config{})

	const callers = 8
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, callers)
	)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			// everyone wants (1, 1); each also wants a seat nobody else asks for
			_, errs[i] = svc.Create(ctx, int64(100+i), []domain.TicketRequest{
				{PerformanceID: perfID, Row: 1, Seat: 1},
				{PerformanceID: perfID, Row: 2, Seat: i + 1},
			})
		}()
	}
	close(start)
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), "unexpected error: %v", err)
		assert.ErrorIs(t, err, ErrSeatTaken)
	}
	assert.Equal(t, 1, won)

	// losers left nothing behind, not even their uncontested seat
	var tickets, reservations int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets WHERE performance_id = $1`, perfID).Scan(&tickets))
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&reservations))
	assert.Equal(t, 2, tickets)
	assert.Equal(t, 1, reservations)

	list, err := svc.store.Query().ListPerformances(ctx, domain.PerformanceFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 48, list[0].TicketsAvailable)
}
