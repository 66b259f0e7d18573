package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kirinyoku/theatre-go/internal/domain"
	"github.com/kirinyoku/theatre-go/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *Store) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewStore(mock)
}

func hallRows(perfID int64, rows, seats int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "id", "name", "rows", "seats_in_row"}).
		AddRow(perfID, int64(1), "Blue", rows, seats)
}

func TestCreateWithTickets(t *testing.T) {
	mock, store := newMockStore(t)
	created := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

	mock.ExpectBeginTx(DefaultTxOptions)
	mock.ExpectQuery("FROM performances p\\s+JOIN theatre_halls h").
		WithArgs([]int64{3}).
		WillReturnRows(hallRows(3, 5, 10))
	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), created))
	mock.ExpectQuery("INSERT INTO tickets").
		WithArgs(int64(11), []int64{3, 3}, []int32{3, 3}, []int32{7, 8}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "performance_id", "row", "seat"}).
			AddRow(int64(100), int64(3), 3, 7).
			AddRow(int64(101), int64(3), 3, 8))
	mock.ExpectCommit()

	res, err := store.Reservations().CreateWithTickets(context.Background(), 7, []domain.TicketRequest{
		{PerformanceID: 3, Row: 3, Seat: 7},
		{PerformanceID: 3, Row: 3, Seat: 8},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11), res.ID)
	assert.Equal(t, int64(7), res.UserID)
	assert.Equal(t, created, res.CreatedAt)
	require.Len(t, res.Tickets, 2)
	assert.Equal(t, int64(100), res.Tickets[0].ID)
	assert.Equal(t, 8, res.Tickets[1].Seat)
	require.NotNil(t, res.Tickets[0].ReservationID)
	assert.Equal(t, int64(11), *res.Tickets[0].ReservationID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTicketsRejectsSeatOutsideHall(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectBeginTx(DefaultTxOptions)
	mock.ExpectQuery("FROM performances p\\s+JOIN theatre_halls h").
		WithArgs([]int64{3}).
		WillReturnRows(hallRows(3, 5, 10))
	mock.ExpectRollback()

	_, err := store.Reservations().CreateWithTickets(context.Background(), 7, []domain.TicketRequest{
		{PerformanceID: 3, Row: 1, Seat: 1},
		{PerformanceID: 3, Row: 6, Seat: 1},
	})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "row", ve.Fields[0].Field)
	assert.Contains(t, ve.Fields[0].Message, "(1, 5)")

	// nothing was inserted: the reservation insert was never reached
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTicketsSeatTaken(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectBeginTx(DefaultTxOptions)
	mock.ExpectQuery("FROM performances p\\s+JOIN theatre_halls h").
		WithArgs([]int64{3}).
		WillReturnRows(hallRows(3, 5, 10))
	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(12), time.Now()))
	mock.ExpectQuery("INSERT INTO tickets").
		WithArgs(int64(12), []int64{3}, []int32{3}, []int32{7}).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "unique_ticket"})
	mock.ExpectRollback()

	res, err := store.Reservations().CreateWithTickets(context.Background(), 7, []domain.TicketRequest{
		{PerformanceID: 3, Row: 3, Seat: 7},
	})
	assert.Nil(t, res)
	require.ErrorIs(t, err, repository.ErrConflict)
	assert.Contains(t, err.Error(), "unique_ticket")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTicketsSerializationFailureIsConflict(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectBeginTx(DefaultTxOptions)
	mock.ExpectQuery("FROM performances p\\s+JOIN theatre_halls h").
		WillReturnRows(hallRows(3, 5, 10))
	mock.ExpectQuery("INSERT INTO reservations").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(12), time.Now()))
	mock.ExpectQuery("INSERT INTO tickets").
		WillReturnRows(pgxmock.NewRows([]string{"id", "performance_id", "row", "seat"}).
			AddRow(int64(100), int64(3), 3, 7))
	mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: "40001"})

	_, err := store.Reservations().CreateWithTickets(context.Background(), 7, []domain.TicketRequest{
		{PerformanceID: 3, Row: 3, Seat: 7},
	})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestCreateWithTicketsUnknownPerformance(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectBeginTx(DefaultTxOptions)
	mock.ExpectQuery("FROM performances p\\s+JOIN theatre_halls h").
		WithArgs([]int64{3, 99}).
		WillReturnRows(hallRows(3, 5, 10))
	mock.ExpectRollback()

	_, err := store.Reservations().CreateWithTickets(context.Background(), 7, []domain.TicketRequest{
		{PerformanceID: 3, Row: 1, Seat: 1},
		{PerformanceID: 99, Row: 1, Seat: 1},
		{PerformanceID: 3, Row: 1, Seat: 2},
	})
	require.ErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), "performance 99")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTicketsEmpty(t *testing.T) {
	mock, store := newMockStore(t)

	// bound to a transaction: no BEGIN of its own, and no statement at all
	_, err := store.Reservations().With(mock).CreateWithTickets(context.Background(), 7, nil)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, map[string]string{"tickets": "this list may not be empty"}, ve.FieldMap())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateDBErr(t *testing.T) {
	assert.Nil(t, translateDBErr(nil))
	assert.ErrorIs(t, translateDBErr(&pgconn.PgError{Code: "23505"}), repository.ErrConflict)
	assert.ErrorIs(t, translateDBErr(&pgconn.PgError{Code: "40P01"}), repository.ErrConflict)
	assert.ErrorIs(t, translateDBErr(&pgconn.PgError{Code: "23503"}), repository.ErrNotFound)
	assert.ErrorIs(t, translateDBErr(&pgconn.PgError{Code: "23503"}), repository.ErrMissingReference)
	assert.NotErrorIs(t, translateDBErr(pgx.ErrNoRows), repository.ErrMissingReference)

	other := errors.New("boom")
	assert.Equal(t, other, translateDBErr(other))

	err := wrapDBErr("op.Name", &pgconn.PgError{Code: "23505", ConstraintName: "theatre_halls_name_key"})
	assert.EqualError(t, err, "op.Name:conflict: theatre_halls_name_key")
}
