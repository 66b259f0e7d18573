package postgres

import (
	"context"
	"time"

	"github.com/kirinyoku/theatre-go/internal/domain"
	"github.com/kirinyoku/theatre-go/internal/repository"
)

// CatalogRepo holds the administrator write paths for catalog entities.
type CatalogRepo struct {
	pool Pool
	db   DB
}

func (r *CatalogRepo) With(db DB) *CatalogRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CatalogRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *CatalogRepo) CreateGenre(ctx context.Context, name string) (int64, error) {
	const op = "postgres.CatalogRepo.CreateGenre"

	var id int64
	if err := r.handle().QueryRow(ctx,
		`INSERT INTO genres(name) VALUES ($1) RETURNING id`,
		name,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *CatalogRepo) CreateActor(ctx context.Context, firstName, lastName string) (int64, error) {
	const op = "postgres.CatalogRepo.CreateActor"

	var id int64
	if err := r.handle().QueryRow(ctx,
		`INSERT INTO actors(first_name, last_name) VALUES ($1, $2) RETURNING id`,
		firstName, lastName,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// CreateHall inserts a theatre hall. A duplicate name yields
// repository.ErrConflict.
func (r *CatalogRepo) CreateHall(ctx context.Context, name string, rows, seatsInRow int) (int64, error) {
	const op = "postgres.CatalogRepo.CreateHall"

	var id int64
	if err := r.handle().QueryRow(ctx,
		`INSERT INTO theatre_halls(name, rows, seats_in_row)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		name, rows, seatsInRow,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// CreatePlay inserts a play and links it to genres and actors. Unknown genre
// or actor ids yield repository.ErrNotFound.
func (r *CatalogRepo) CreatePlay(ctx context.Context, p domain.Play) (int64, error) {
	const op = "postgres.CatalogRepo.CreatePlay"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO plays(title, description)
		 VALUES ($1, $2)
		 RETURNING id`,
		p.Title, p.Description,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	if len(p.GenreIDs) > 0 {
		if _, err := db.Exec(ctx,
			`INSERT INTO play_genres(play_id, genre_id)
			 SELECT $1, g FROM unnest($2::bigint[]) AS g
			 ON CONFLICT DO NOTHING`,
			id, p.GenreIDs,
		); err != nil {
			return 0, wrapDBErr(op, err)
		}
	}

	if len(p.ActorIDs) > 0 {
		if _, err := db.Exec(ctx,
			`INSERT INTO play_actors(play_id, actor_id)
			 SELECT $1, a FROM unnest($2::bigint[]) AS a
			 ON CONFLICT DO NOTHING`,
			id, p.ActorIDs,
		); err != nil {
			return 0, wrapDBErr(op, err)
		}
	}

	return id, nil
}

// SetPlayImage stores an image reference on a play.
func (r *CatalogRepo) SetPlayImage(ctx context.Context, playID int64, image string) error {
	const op = "postgres.CatalogRepo.SetPlayImage"

	tag, err := r.handle().Exec(ctx,
		`UPDATE plays SET image = $2 WHERE id = $1`,
		playID, image,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}

func (r *CatalogRepo) CreatePerformance(
	ctx context.Context,
	playID, hallID int64,
	showTime time.Time,
) (int64, error) {
	const op = "postgres.CatalogRepo.CreatePerformance"

	var id int64
	if err := r.handle().QueryRow(ctx,
		`INSERT INTO performances(play_id, theatre_hall_id, show_time)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		playID, hallID, showTime,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *CatalogRepo) UpdatePerformance(ctx context.Context, p domain.Performance) error {
	const op = "postgres.CatalogRepo.UpdatePerformance"

	tag, err := r.handle().Exec(ctx,
		`UPDATE performances
		 SET play_id = $2, theatre_hall_id = $3, show_time = $4
		 WHERE id = $1`,
		p.ID, p.PlayID, p.TheatreHallID, p.ShowTime,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}

// DeletePerformance removes a performance; its tickets go with it.
func (r *CatalogRepo) DeletePerformance(ctx context.Context, id int64) error {
	const op = "postgres.CatalogRepo.DeletePerformance"

	tag, err := r.handle().Exec(ctx, `DELETE FROM performances WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}
