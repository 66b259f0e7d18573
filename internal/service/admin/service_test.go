package admin

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kirinyoku/theatre-go/internal/domain"
	postgresrepo "github.com/kirinyoku/theatre-go/internal/repository/postgres"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memImages struct {
	keys []string
	body string
}

func (m *memImages) Save(_ context.Context, key string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.keys = append(m.keys, key)
	m.body = string(b)
	return "/media/" + key, nil
}

type recorder struct {
	events []string
}

func (r *recorder) PublishPerformanceChanged(_ context.Context, reason string, _ int64) error {
	r.events = append(r.events, reason)
	return nil
}

func newService(t *testing.T) (pgxmock.PgxPoolIface, *Service, *memImages, *recorder) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	images := &memImages{}
	rec := &recorder{}

	return mock, New(postgresrepo.NewStore(mock), images, rec), images, rec
}

func TestCreateHallConflict(t *testing.T) {
	mock, svc, _, _ := newService(t)

	mock.ExpectQuery("INSERT INTO theatre_halls").
		WithArgs("Blue", 5, 10).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "theatre_halls_name_key"})

	_, err := svc.CreateHall(context.Background(), " Blue ", 5, 10)
	require.ErrorIs(t, err, ErrHallConflict)
}

func TestCreateHallRejectsBadDimensions(t *testing.T) {
	mock, svc, _, _ := newService(t)

	_, err := svc.CreateHall(context.Background(), "Blue", 0, -1)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.FieldMap(), "rows")
	assert.Contains(t, ve.FieldMap(), "seats_in_row")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePlayDedupesIDs(t *testing.T) {
	mock, svc, _, _ := newService(t)

	mock.ExpectBeginTx(postgresrepo.DefaultTxOptions)
	mock.ExpectQuery("INSERT INTO plays").
		WithArgs("Hamlet", "").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectExec("INSERT INTO play_genres").
		WithArgs(int64(2), []int64{1, 3}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	p, err := svc.CreatePlay(context.Background(), domain.Play{
		Title:    "Hamlet",
		GenreIDs: []int64{3, 1, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.ID)
	assert.Equal(t, []int64{1, 3}, p.GenreIDs)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePlayUnknownActor(t *testing.T) {
	mock, svc, _, _ := newService(t)

	mock.ExpectBeginTx(postgresrepo.DefaultTxOptions)
	mock.ExpectQuery("INSERT INTO plays").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectExec("INSERT INTO play_actors").
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	_, err := svc.CreatePlay(context.Background(), domain.Play{Title: "Hamlet", ActorIDs: []int64{99}})
	require.ErrorIs(t, err, ErrUnknownReference)
}

func TestUploadPlayImage(t *testing.T) {
	mock, svc, images, _ := newService(t)

	mock.ExpectQuery("FROM plays WHERE id = \\$1").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "description", "image"}).
			AddRow(int64(2), "King Lear", "", (*string)(nil)))
	mock.ExpectQuery("FROM play_genres pg").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))
	mock.ExpectQuery("FROM play_actors pa").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "first_name", "last_name"}))
	mock.ExpectExec("UPDATE plays SET image").
		WithArgs(int64(2), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ref, err := svc.UploadPlayImage(context.Background(), 2, "lear.PNG", strings.NewReader("img"))
	require.NoError(t, err)

	require.Len(t, images.keys, 1)
	assert.True(t, strings.HasPrefix(images.keys[0], "uploads/plays/king-lear-"))
	assert.True(t, strings.HasSuffix(images.keys[0], ".png"))
	assert.Equal(t, "/media/"+images.keys[0], ref)
	assert.Equal(t, "img", images.body)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadPlayImageUnknownPlay(t *testing.T) {
	mock, svc, images, _ := newService(t)

	mock.ExpectQuery("FROM plays WHERE id = \\$1").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "description", "image"}))

	_, err := svc.UploadPlayImage(context.Background(), 2, "a.png", strings.NewReader("img"))
	require.ErrorIs(t, err, ErrPlayNotFound)
	assert.Empty(t, images.keys)
}

func TestCreatePerformancePublishes(t *testing.T) {
	mock, svc, _, rec := newService(t)
	show := time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC)

	mock.ExpectBeginTx(postgresrepo.DefaultTxOptions)
	mock.ExpectQuery("INSERT INTO performances").
		WithArgs(int64(1), int64(2), show).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(8)))
	mock.ExpectCommit()

	p, err := svc.CreatePerformance(context.Background(), domain.Performance{PlayID: 1, TheatreHallID: 2, ShowTime: show})
	require.NoError(t, err)
	assert.Equal(t, int64(8), p.ID)
	assert.Equal(t, []string{"created"}, rec.events)
}

func TestUpdatePerformanceHallTooSmall(t *testing.T) {
	mock, svc, _, rec := newService(t)

	mock.ExpectBeginTx(postgresrepo.DefaultTxOptions)
	mock.ExpectQuery("FROM theatre_halls WHERE id = \\$1").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "rows", "seats_in_row"}).
			AddRow(int64(3), "Small", 2, 2))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tickets").
		WithArgs(int64(8), 2, 2).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectRollback()

	err := svc.UpdatePerformance(context.Background(), domain.Performance{
		ID: 8, PlayID: 1, TheatreHallID: 3, ShowTime: time.Now(),
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.FieldMap(), "theatre_hall")
	assert.Empty(t, rec.events)

	require.NoError(t, mock.ExpectationsWereMet())
}

func expectHallFits(mock pgxmock.PgxPoolIface) {
	mock.ExpectBeginTx(postgresrepo.DefaultTxOptions)
	mock.ExpectQuery("FROM theatre_halls WHERE id = \\$1").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "rows", "seats_in_row"}).
			AddRow(int64(3), "Blue", 5, 10))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tickets").
		WithArgs(int64(8), 5, 10).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
}

func TestUpdatePerformanceUnknownPlay(t *testing.T) {
	mock, svc, _, rec := newService(t)
	show := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)

	expectHallFits(mock)
	mock.ExpectExec("UPDATE performances").
		WithArgs(int64(8), int64(404), int64(3), show).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "performances_play_id_fkey"})
	mock.ExpectRollback()

	err := svc.UpdatePerformance(context.Background(), domain.Performance{
		ID: 8, PlayID: 404, TheatreHallID: 3, ShowTime: show,
	})
	require.ErrorIs(t, err, ErrUnknownReference)
	assert.NotErrorIs(t, err, ErrPerformanceNotFound)
	assert.Empty(t, rec.events)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePerformanceMissing(t *testing.T) {
	mock, svc, _, rec := newService(t)
	show := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)

	expectHallFits(mock)
	mock.ExpectExec("UPDATE performances").
		WithArgs(int64(8), int64(1), int64(3), show).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := svc.UpdatePerformance(context.Background(), domain.Performance{
		ID: 8, PlayID: 1, TheatreHallID: 3, ShowTime: show,
	})
	require.ErrorIs(t, err, ErrPerformanceNotFound)
	assert.Empty(t, rec.events)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePerformanceNotFound(t *testing.T) {
	mock, svc, _, rec := newService(t)

	mock.ExpectBeginTx(postgresrepo.DefaultTxOptions)
	mock.ExpectExec("DELETE FROM performances").
		WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err := svc.DeletePerformance(context.Background(), 8)
	require.ErrorIs(t, err, ErrPerformanceNotFound)
	assert.Empty(t, rec.events)
}
