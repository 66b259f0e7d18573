package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kirinyoku/theatre-go/internal/domain"
)

type QueryRepo struct {
	pool Pool
	db   DB
}

func (r *QueryRepo) With(db DB) *QueryRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *QueryRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *QueryRepo) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	const op = "postgres.QueryRepo.ListGenres"

	rows, err := r.handle().Query(ctx, `SELECT id, name FROM genres ORDER BY name, id`)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Genre, error) {
		var g domain.Genre
		err := row.Scan(&g.ID, &g.Name)
		return g, err
	})
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *QueryRepo) ListActors(ctx context.Context) ([]domain.Actor, error) {
	const op = "postgres.QueryRepo.ListActors"

	rows, err := r.handle().Query(ctx,
		`SELECT id, first_name, last_name FROM actors ORDER BY first_name, id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := pgx.CollectRows(rows, scanActor)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *QueryRepo) ListHalls(ctx context.Context) ([]domain.TheatreHall, error) {
	const op = "postgres.QueryRepo.ListHalls"

	rows, err := r.handle().Query(ctx,
		`SELECT id, name, rows, seats_in_row FROM theatre_halls ORDER BY name`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := pgx.CollectRows(rows, scanHall)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// ListPlays returns plays matching every non-empty filter dimension. A play
// matches a genre or actor filter if it has any of the listed ids.
func (r *QueryRepo) ListPlays(ctx context.Context, f domain.PlayFilter) ([]domain.PlayListItem, error) {
	const op = "postgres.QueryRepo.ListPlays"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT pl.id, pl.title, pl.image
		 FROM plays pl
		 WHERE ($1::text = '' OR pl.title ILIKE '%' || $1::text || '%' ESCAPE '\')
		   AND (cardinality($2::bigint[]) = 0 OR EXISTS (
		        SELECT 1 FROM play_genres pg
		        WHERE pg.play_id = pl.id AND pg.genre_id = ANY($2)))
		   AND (cardinality($3::bigint[]) = 0 OR EXISTS (
		        SELECT 1 FROM play_actors pa
		        WHERE pa.play_id = pl.id AND pa.actor_id = ANY($3)))
		 ORDER BY pl.title, pl.id`,
		escapeLike(f.Title), nonNil(f.GenreIDs), nonNil(f.ActorIDs),
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	plays, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PlayListItem, error) {
		var p domain.PlayListItem
		err := row.Scan(&p.ID, &p.Title, &p.Image)
		return p, err
	})
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	if len(plays) == 0 {
		return plays, nil
	}

	if err := r.attachNames(ctx, db, plays); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return plays, nil
}

// attachNames fills genre names and actor full names for plays with one
// query per relation.
func (r *QueryRepo) attachNames(ctx context.Context, db DB, plays []domain.PlayListItem) error {
	ids := make([]int64, len(plays))
	idx := make(map[int64]int, len(plays))
	for i, p := range plays {
		ids[i] = p.ID
		idx[p.ID] = i
		plays[i].Genres = []string{}
		plays[i].Actors = []string{}
	}

	rows, err := db.Query(ctx,
		`SELECT pg.play_id, g.name
		 FROM play_genres pg
		 JOIN genres g ON g.id = pg.genre_id
		 WHERE pg.play_id = ANY($1)
		 ORDER BY g.name`,
		ids,
	)
	if err != nil {
		return err
	}

	var playID int64
	var name string
	if _, err := pgx.ForEachRow(rows, []any{&playID, &name}, func() error {
		i := idx[playID]
		plays[i].Genres = append(plays[i].Genres, name)
		return nil
	}); err != nil {
		return err
	}

	rows, err = db.Query(ctx,
		`SELECT pa.play_id, a.first_name, a.last_name
		 FROM play_actors pa
		 JOIN actors a ON a.id = pa.actor_id
		 WHERE pa.play_id = ANY($1)
		 ORDER BY a.first_name, a.last_name`,
		ids,
	)
	if err != nil {
		return err
	}

	var a domain.Actor
	_, err = pgx.ForEachRow(rows, []any{&playID, &a.FirstName, &a.LastName}, func() error {
		i := idx[playID]
		plays[i].Actors = append(plays[i].Actors, a.FullName())
		return nil
	})

	return err
}

// GetPlay retrieves a play with its genres and actors.
//
// Returns:
//   - *domain.PlayDetail: the play when found.
//   - error: repository.ErrNotFound if the play is not found.
func (r *QueryRepo) GetPlay(ctx context.Context, id int64) (*domain.PlayDetail, error) {
	const op = "postgres.QueryRepo.GetPlay"

	db := r.handle()

	p := domain.PlayDetail{Genres: []domain.Genre{}, Actors: []domain.Actor{}}
	if err := db.QueryRow(ctx,
		`SELECT id, title, description, image FROM plays WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Image); err != nil {
		return nil, wrapDBErr(op, err)
	}

	rows, err := db.Query(ctx,
		`SELECT g.id, g.name
		 FROM play_genres pg
		 JOIN genres g ON g.id = pg.genre_id
		 WHERE pg.play_id = $1
		 ORDER BY g.name`,
		id,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	genres, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Genre, error) {
		var g domain.Genre
		err := row.Scan(&g.ID, &g.Name)
		return g, err
	})
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	p.Genres = append(p.Genres, genres...)

	rows, err = db.Query(ctx,
		`SELECT a.id, a.first_name, a.last_name
		 FROM play_actors pa
		 JOIN actors a ON a.id = pa.actor_id
		 WHERE pa.play_id = $1
		 ORDER BY a.first_name`,
		id,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	actors, err := pgx.CollectRows(rows, scanActor)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	p.Actors = append(p.Actors, actors...)

	return &p, nil
}

// ListPerformances lists performances with their open-seat counts. The
// counts come from a single aggregate query over all returned rows.
func (r *QueryRepo) ListPerformances(
	ctx context.Context,
	f domain.PerformanceFilter,
) ([]domain.PerformanceListItem, error) {
	const op = "postgres.QueryRepo.ListPerformances"

	rows, err := r.handle().Query(ctx,
		`SELECT p.id, p.show_time, pl.title, pl.image, h.name,
		        h.rows * h.seats_in_row,
		        h.rows * h.seats_in_row - COUNT(t.id)
		 FROM performances p
		 JOIN plays pl ON pl.id = p.play_id
		 JOIN theatre_halls h ON h.id = p.theatre_hall_id
		 LEFT JOIN tickets t ON t.performance_id = p.id
		 WHERE ($1::date IS NULL OR (p.show_time AT TIME ZONE 'UTC')::date = $1::date)
		   AND ($2::bigint IS NULL OR p.play_id = $2)
		 GROUP BY p.id, pl.id, h.id
		 ORDER BY p.show_time, p.id`,
		f.Date, f.PlayID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := pgx.CollectRows(rows, scanPerformanceListItem)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// GetPerformance retrieves a performance with its play, hall and the seats
// already taken.
//
// Returns:
//   - *domain.PerformanceDetail: the performance when found.
//   - error: repository.ErrNotFound if the performance is not found.
func (r *QueryRepo) GetPerformance(ctx context.Context, id int64) (*domain.PerformanceDetail, error) {
	const op = "postgres.QueryRepo.GetPerformance"

	db := r.handle()

	d := domain.PerformanceDetail{TakenPlaces: []domain.Seat{}}
	if err := db.QueryRow(ctx,
		`SELECT p.id, p.show_time,
		        pl.id, pl.title, pl.image,
		        h.id, h.name, h.rows, h.seats_in_row
		 FROM performances p
		 JOIN plays pl ON pl.id = p.play_id
		 JOIN theatre_halls h ON h.id = p.theatre_hall_id
		 WHERE p.id = $1`,
		id,
	).Scan(
		&d.ID, &d.ShowTime,
		&d.Play.ID, &d.Play.Title, &d.Play.Image,
		&d.TheatreHall.ID, &d.TheatreHall.Name, &d.TheatreHall.Rows, &d.TheatreHall.SeatsInRow,
	); err != nil {
		return nil, wrapDBErr(op, err)
	}

	plays := []domain.PlayListItem{d.Play}
	if err := r.attachNames(ctx, db, plays); err != nil {
		return nil, wrapDBErr(op, err)
	}
	d.Play = plays[0]

	rows, err := db.Query(ctx,
		`SELECT row, seat FROM tickets WHERE performance_id = $1 ORDER BY row, seat`,
		id,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	taken, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Seat, error) {
		var s domain.Seat
		err := row.Scan(&s.Row, &s.Seat)
		return s, err
	})
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	d.TakenPlaces = append(d.TakenPlaces, taken...)

	return &d, nil
}

// HallsForPerformances returns the hall of every requested performance that
// exists, keyed by performance id.
func (r *QueryRepo) HallsForPerformances(
	ctx context.Context,
	performanceIDs []int64,
) (map[int64]domain.TheatreHall, error) {
	const op = "postgres.QueryRepo.HallsForPerformances"

	rows, err := r.handle().Query(ctx,
		`SELECT p.id, h.id, h.name, h.rows, h.seats_in_row
		 FROM performances p
		 JOIN theatre_halls h ON h.id = p.theatre_hall_id
		 WHERE p.id = ANY($1)`,
		performanceIDs,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out := make(map[int64]domain.TheatreHall, len(performanceIDs))
	var perfID int64
	var h domain.TheatreHall
	if _, err := pgx.ForEachRow(rows, []any{&perfID, &h.ID, &h.Name, &h.Rows, &h.SeatsInRow}, func() error {
		out[perfID] = h
		return nil
	}); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// GetHall retrieves a theatre hall by its ID.
func (r *QueryRepo) GetHall(ctx context.Context, id int64) (*domain.TheatreHall, error) {
	const op = "postgres.QueryRepo.GetHall"

	var h domain.TheatreHall
	if err := r.handle().QueryRow(ctx,
		`SELECT id, name, rows, seats_in_row FROM theatre_halls WHERE id = $1`,
		id,
	).Scan(&h.ID, &h.Name, &h.Rows, &h.SeatsInRow); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &h, nil
}

// CountTicketsOutside counts tickets of a performance that would not fit in
// a hall with the given dimensions.
func (r *QueryRepo) CountTicketsOutside(
	ctx context.Context,
	performanceID int64,
	rows, seatsInRow int,
) (int, error) {
	const op = "postgres.QueryRepo.CountTicketsOutside"

	var n int
	if err := r.handle().QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets
		 WHERE performance_id = $1 AND (row > $2 OR seat > $3)`,
		performanceID, rows, seatsInRow,
	).Scan(&n); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return n, nil
}

// ListReservations lists a user's reservations, newest first, with each
// ticket's performance summary.
func (r *QueryRepo) ListReservations(
	ctx context.Context,
	userID int64,
	limit, offset int,
) ([]domain.ReservationWithTickets, int, error) {
	const op = "postgres.QueryRepo.ListReservations"

	db := r.handle()

	var total int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reservations WHERE user_id = $1`,
		userID,
	).Scan(&total); err != nil {
		return nil, 0, wrapDBErr(op, err)
	}

	rows, err := db.Query(ctx,
		`SELECT id, created_at FROM reservations
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, wrapDBErr(op, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ReservationWithTickets, error) {
		res := domain.ReservationWithTickets{Tickets: []domain.ReservationTicket{}}
		err := row.Scan(&res.ID, &res.CreatedAt)
		return res, err
	})
	if err != nil {
		return nil, 0, wrapDBErr(op, err)
	}

	if len(out) == 0 {
		return out, total, nil
	}

	ids := make([]int64, len(out))
	idx := make(map[int64]int, len(out))
	for i, res := range out {
		ids[i] = res.ID
		idx[res.ID] = i
	}

	rows, err = db.Query(ctx,
		`WITH perf AS (
		     SELECT p.id, p.show_time, pl.title, pl.image, h.name,
		            h.rows * h.seats_in_row AS total,
		            h.rows * h.seats_in_row - COUNT(t.id) AS available
		     FROM performances p
		     JOIN plays pl ON pl.id = p.play_id
		     JOIN theatre_halls h ON h.id = p.theatre_hall_id
		     LEFT JOIN tickets t ON t.performance_id = p.id
		     WHERE p.id IN (SELECT performance_id FROM tickets WHERE reservation_id = ANY($1))
		     GROUP BY p.id, pl.id, h.id
		 )
		 SELECT t.reservation_id, t.id, t.row, t.seat,
		        perf.id, perf.show_time, perf.title, perf.image, perf.name,
		        perf.total, perf.available
		 FROM tickets t
		 JOIN perf ON perf.id = t.performance_id
		 WHERE t.reservation_id = ANY($1)
		 ORDER BY t.row, t.seat`,
		ids,
	)
	if err != nil {
		return nil, 0, wrapDBErr(op, err)
	}

	var resID int64
	var t domain.ReservationTicket
	if _, err := pgx.ForEachRow(rows, []any{
		&resID, &t.ID, &t.Row, &t.Seat,
		&t.Performance.ID, &t.Performance.ShowTime, &t.Performance.PlayTitle,
		&t.Performance.PlayImage, &t.Performance.TheatreHallName,
		&t.Performance.TheatreHallTotalSeating, &t.Performance.TicketsAvailable,
	}, func() error {
		i := idx[resID]
		out[i].Tickets = append(out[i].Tickets, t)
		return nil
	}); err != nil {
		return nil, 0, wrapDBErr(op, err)
	}

	return out, total, nil
}

func scanActor(row pgx.CollectableRow) (domain.Actor, error) {
	var a domain.Actor
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName)
	return a, err
}

func scanHall(row pgx.CollectableRow) (domain.TheatreHall, error) {
	var h domain.TheatreHall
	err := row.Scan(&h.ID, &h.Name, &h.Rows, &h.SeatsInRow)
	return h, err
}

func scanPerformanceListItem(row pgx.CollectableRow) (domain.PerformanceListItem, error) {
	var p domain.PerformanceListItem
	err := row.Scan(
		&p.ID,
		&p.ShowTime,
		&p.PlayTitle,
		&p.PlayImage,
		&p.TheatreHallName,
		&p.TheatreHallTotalSeating,
		&p.TicketsAvailable,
	)
	return p, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
