package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kirinyoku/theatre-go/internal/domain"
	postgresrepo "github.com/kirinyoku/theatre-go/internal/repository/postgres"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var perfColumns = []string{"id", "show_time", "title", "image", "name", "total", "available"}

func newService(t *testing.T) (pgxmock.PgxPoolIface, *Service) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, New(postgresrepo.NewStore(mock))
}

func TestListPerformancesAvailability(t *testing.T) {
	mock, svc := newService(t)
	show := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)

	mock.ExpectQuery("LEFT JOIN tickets").
		WillReturnRows(pgxmock.NewRows(perfColumns).
			AddRow(int64(1), show, "Hamlet", (*string)(nil), "Blue", 50, 50).
			AddRow(int64(2), show, "Hamlet", (*string)(nil), "Red", 50, 0))

	got, err := svc.ListPerformances(context.Background(), domain.PerformanceFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 50, got[0].TicketsAvailable)
	assert.Equal(t, 0, got[1].TicketsAvailable)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPerformancesNegativeIsInvariantError(t *testing.T) {
	mock, svc := newService(t)

	mock.ExpectQuery("LEFT JOIN tickets").
		WillReturnRows(pgxmock.NewRows(perfColumns).
			AddRow(int64(4), time.Now(), "Hamlet", (*string)(nil), "Blue", 50, -1))

	_, err := svc.ListPerformances(context.Background(), domain.PerformanceFilter{})

	var inv AvailabilityInvariantError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, int64(4), inv.PerformanceID)
	assert.Equal(t, -1, inv.Available)
}

func TestGetPerformanceNotFound(t *testing.T) {
	mock, svc := newService(t)

	mock.ExpectQuery("WHERE p.id = \\$1").
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "show_time", "id", "title", "image", "id", "name", "rows", "seats_in_row",
		}))

	_, err := svc.GetPerformance(context.Background(), 9)
	require.ErrorIs(t, err, ErrPerformanceNotFound)
}

func TestGetPlayNotFound(t *testing.T) {
	mock, svc := newService(t)

	mock.ExpectQuery("FROM plays WHERE id = \\$1").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "description", "image"}))

	_, err := svc.GetPlay(context.Background(), 3)
	require.ErrorIs(t, err, ErrPlayNotFound)
}

func TestListHallsTotalSeating(t *testing.T) {
	mock, svc := newService(t)

	mock.ExpectQuery("FROM theatre_halls ORDER BY name").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "rows", "seats_in_row"}).
			AddRow(int64(1), "Blue", 5, 10))

	got, err := svc.ListHalls(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 50, got[0].TotalSeating())
}
