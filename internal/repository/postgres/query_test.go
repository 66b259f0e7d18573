package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/kirinyoku/theatre-go/internal/domain"
	"github.com/kirinyoku/theatre-go/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestListPerformances(t *testing.T) {
	mock, store := newMockStore(t)

	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	playID := int64(4)
	show := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)

	mock.ExpectQuery("LEFT JOIN tickets t ON t.performance_id = p.id").
		WithArgs(&day, &playID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "show_time", "title", "image", "name", "total", "available",
		}).
			AddRow(int64(1), show, "Hamlet", strPtr("uploads/plays/hamlet.jpg"), "Blue", 50, 49).
			AddRow(int64(2), show.Add(time.Hour), "Hamlet", (*string)(nil), "Red", 20, 20))

	got, err := store.Query().ListPerformances(context.Background(), domain.PerformanceFilter{
		Date:   &day,
		PlayID: &playID,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, domain.PerformanceListItem{
		ID:                      1,
		ShowTime:                show,
		PlayTitle:               "Hamlet",
		PlayImage:               strPtr("uploads/plays/hamlet.jpg"),
		TheatreHallName:         "Blue",
		TheatreHallTotalSeating: 50,
		TicketsAvailable:        49,
	}, got[0])
	assert.Nil(t, got[1].PlayImage)
	assert.Equal(t, 20, got[1].TicketsAvailable)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPlaysFilters(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("FROM plays pl").
		WithArgs(`50\% off\_sale`, []int64{1, 3}, []int64{}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "image"}).
			AddRow(int64(5), "50% off_sale", (*string)(nil)).
			AddRow(int64(6), "The 50% off_sale returns", (*string)(nil)))
	mock.ExpectQuery("FROM play_genres pg").
		WithArgs([]int64{5, 6}).
		WillReturnRows(pgxmock.NewRows([]string{"play_id", "name"}).
			AddRow(int64(5), "Comedy").
			AddRow(int64(6), "Comedy").
			AddRow(int64(5), "Drama"))
	mock.ExpectQuery("FROM play_actors pa").
		WithArgs([]int64{5, 6}).
		WillReturnRows(pgxmock.NewRows([]string{"play_id", "first_name", "last_name"}).
			AddRow(int64(6), "Judi", "Dench"))

	got, err := store.Query().ListPlays(context.Background(), domain.PlayFilter{
		Title:    "50% off_sale",
		GenreIDs: []int64{1, 3},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, []string{"Comedy", "Drama"}, got[0].Genres)
	assert.Equal(t, []string{}, got[0].Actors)
	assert.Equal(t, []string{"Comedy"}, got[1].Genres)
	assert.Equal(t, []string{"Judi Dench"}, got[1].Actors)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPlaysEmpty(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("FROM plays pl").
		WithArgs("", []int64{}, []int64{2}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "image"}))

	got, err := store.Query().ListPlays(context.Background(), domain.PlayFilter{ActorIDs: []int64{2}})
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPerformance(t *testing.T) {
	mock, store := newMockStore(t)
	show := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)

	mock.ExpectQuery("WHERE p.id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "show_time", "id", "title", "image", "id", "name", "rows", "seats_in_row",
		}).AddRow(int64(1), show, int64(4), "Hamlet", (*string)(nil), int64(2), "Blue", 5, 10))
	mock.ExpectQuery("FROM play_genres pg").
		WithArgs([]int64{4}).
		WillReturnRows(pgxmock.NewRows([]string{"play_id", "name"}).AddRow(int64(4), "Tragedy"))
	mock.ExpectQuery("FROM play_actors pa").
		WithArgs([]int64{4}).
		WillReturnRows(pgxmock.NewRows([]string{"play_id", "first_name", "last_name"}))
	mock.ExpectQuery("SELECT row, seat FROM tickets").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"row", "seat"}).AddRow(1, 2).AddRow(3, 7))

	got, err := store.Query().GetPerformance(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Hamlet", got.Play.Title)
	assert.Equal(t, []string{"Tragedy"}, got.Play.Genres)
	assert.Equal(t, 50, got.TheatreHall.TotalSeating())
	assert.Equal(t, []domain.Seat{{Row: 1, Seat: 2}, {Row: 3, Seat: 7}}, got.TakenPlaces)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPerformanceNotFound(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("WHERE p.id = \\$1").
		WithArgs(int64(8)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "show_time", "id", "title", "image", "id", "name", "rows", "seats_in_row",
		}))

	_, err := store.Query().GetPerformance(context.Background(), 8)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListReservations(t *testing.T) {
	mock, store := newMockStore(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	show := now.Add(48 * time.Hour)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reservations").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT id, created_at FROM reservations").
		WithArgs(int64(7), 2, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(12), now).
			AddRow(int64(11), now.Add(-time.Hour)))
	mock.ExpectQuery("WITH perf AS").
		WithArgs([]int64{12, 11}).
		WillReturnRows(pgxmock.NewRows([]string{
			"reservation_id", "id", "row", "seat",
			"id", "show_time", "title", "image", "name", "total", "available",
		}).
			AddRow(int64(11), int64(100), 1, 1, int64(3), show, "Hamlet", (*string)(nil), "Blue", 50, 47).
			AddRow(int64(12), int64(101), 2, 5, int64(3), show, "Hamlet", (*string)(nil), "Blue", 50, 47).
			AddRow(int64(12), int64(102), 2, 6, int64(3), show, "Hamlet", (*string)(nil), "Blue", 50, 47))

	got, total, err := store.Query().ListReservations(context.Background(), 7, 2, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	require.Len(t, got, 2)
	assert.Equal(t, int64(12), got[0].ID)
	require.Len(t, got[0].Tickets, 2)
	assert.Equal(t, 47, got[0].Tickets[0].Performance.TicketsAvailable)
	require.Len(t, got[1].Tickets, 1)
	assert.Equal(t, int64(100), got[1].Tickets[0].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
	assert.Equal(t, "hamlet", escapeLike("hamlet"))
}
