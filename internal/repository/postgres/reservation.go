package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kirinyoku/theatre-go/internal/domain"
	"github.com/kirinyoku/theatre-go/internal/repository"
)

type ReservationRepo struct {
	pool Pool
	db   DB
}

func (r *ReservationRepo) With(db DB) *ReservationRepo {
	cp := *r
	cp.db = db
	return &cp
}

// CreateWithTickets creates a reservation owned by userID together with one
// ticket per request, all in one transaction. When bound to a transaction
// with With, it runs inside it; otherwise it opens its own.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - userID: owner of the reservation.
//   - requests: seats to book; must not be empty.
//
// Returns:
//   - *domain.Reservation: the reservation with its tickets.
//   - error: *domain.ValidationError if a seat is outside its hall.
//   - error: repository.ErrNotFound if a performance does not exist.
//   - error: repository.ErrConflict if a seat is already taken or the
//     transaction lost a race with a concurrent one.
func (r *ReservationRepo) CreateWithTickets(
	ctx context.Context,
	userID int64,
	requests []domain.TicketRequest,
) (*domain.Reservation, error) {
	const op = "postgres.ReservationRepo.CreateWithTickets"

	if r.db != nil {
		res, err := r.createCore(ctx, r.db, userID, requests)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		return res, nil
	}

	tx, err := r.pool.BeginTx(ctx, DefaultTxOptions)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer tx.Rollback(ctx)

	res, err := r.createCore(ctx, tx, userID, requests)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return res, nil
}

func (r *ReservationRepo) createCore(
	ctx context.Context,
	db DB,
	userID int64,
	requests []domain.TicketRequest,
) (*domain.Reservation, error) {
	const op = "postgres.ReservationRepo.createCore"

	if len(requests) == 0 {
		return nil, domain.NewValidationError("tickets", "this list may not be empty")
	}

	halls, err := (&QueryRepo{db: db}).HallsForPerformances(ctx, performanceIDs(requests))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	tickets := make([]domain.Ticket, 0, len(requests))
	for _, req := range requests {
		hall, ok := halls[req.PerformanceID]
		if !ok {
			return nil, fmt.Errorf("%s: performance %d: %w", op, req.PerformanceID, repository.ErrNotFound)
		}

		t, err := domain.NewTicket(req.PerformanceID, req.Row, req.Seat, hall)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		tickets = append(tickets, t)
	}

	res := domain.Reservation{UserID: userID}
	if err := db.QueryRow(ctx,
		`INSERT INTO reservations(user_id)
		 VALUES ($1)
		 RETURNING id, created_at`,
		userID,
	).Scan(&res.ID, &res.CreatedAt); err != nil {
		return nil, wrapDBErr(op, err)
	}

	perfIDs := make([]int64, len(tickets))
	rowNums := make([]int32, len(tickets))
	seatNums := make([]int32, len(tickets))
	for i, t := range tickets {
		perfIDs[i] = t.PerformanceID
		rowNums[i] = int32(t.Row)
		seatNums[i] = int32(t.Seat)
	}

	rows, err := db.Query(ctx,
		`INSERT INTO tickets(reservation_id, performance_id, row, seat)
		 SELECT $1, t.performance_id, t.row, t.seat
		 FROM unnest($2::bigint[], $3::int[], $4::int[]) AS t(performance_id, row, seat)
		 RETURNING id, performance_id, row, seat`,
		res.ID, perfIDs, rowNums, seatNums,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	res.Tickets, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Ticket, error) {
		t := domain.Ticket{ReservationID: &res.ID}
		err := row.Scan(&t.ID, &t.PerformanceID, &t.Row, &t.Seat)
		return t, err
	})
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	if len(res.Tickets) != len(tickets) {
		return nil, fmt.Errorf("%s: inserted %d of %d tickets: %w", op, len(res.Tickets), len(tickets), repository.ErrConflict)
	}

	return &res, nil
}

func performanceIDs(requests []domain.TicketRequest) []int64 {
	seen := make(map[int64]struct{}, len(requests))
	out := make([]int64, 0, len(requests))
	for _, req := range requests {
		if _, ok := seen[req.PerformanceID]; ok {
			continue
		}
		seen[req.PerformanceID] = struct{}{}
		out = append(out, req.PerformanceID)
	}

	return out
}
