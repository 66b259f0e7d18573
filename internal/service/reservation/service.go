package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirinyoku/theatre-go/internal/domain"
	"github.com/kirinyoku/theatre-go/internal/repository"
	postgresrepo "github.com/kirinyoku/theatre-go/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/theatre-go/internal/repository/redis"
	"github.com/kirinyoku/theatre-go/internal/uow"
)

// Notifier is told about performances whose availability changed.
type Notifier interface {
	PublishPerformanceChanged(ctx context.Context, reason string, performanceID int64) error
}

// Limiter throttles reservation attempts per user.
type Limiter interface {
	Allow(ctx context.Context, userID int64) (redisrepo.RateDecision, error)
}

type Config struct {
	DefaultPage int
	MaxPage     int
}

type Service struct {
	store    *postgresrepo.Store
	notifier Notifier
	limiter  Limiter
	uow      *uow.UoW
	cfg      Config
}

func New(store *postgresrepo.Store, notifier Notifier, limiter Limiter, cfg Config) *Service {
	if cfg.DefaultPage <= 0 {
		cfg.DefaultPage = 10
	}

	if cfg.MaxPage <= 0 || cfg.MaxPage < cfg.DefaultPage {
		cfg.MaxPage = 100
	}

	return &Service{
		store:    store,
		notifier: notifier,
		limiter:  limiter,
		uow:      uow.NewUoW(store),
		cfg:      cfg,
	}
}

// Create books every requested seat for userID as one reservation, or none
// of them.
//
// Parameters:
//   - ctx: request-scoped context.
//   - userID: the authenticated caller.
//   - tickets: seats to book.
//
// Returns:
//   - *domain.Reservation: the stored reservation with its tickets.
//   - error: *domain.ValidationError for an empty list, a seat outside its
//     hall, or a seat already taken (wrapping reservation.ErrSeatTaken).
//   - error: reservation.ErrPerformanceNotFound for an unknown performance.
//   - error: reservation.RateLimitedError when the caller is throttled.
func (s *Service) Create(
	ctx context.Context,
	userID int64,
	tickets []domain.TicketRequest,
) (*domain.Reservation, error) {
	const op = "service.reservation.Create"

	if len(tickets) == 0 {
		return nil, domain.NewValidationError("tickets", "this list may not be empty")
	}

	if s.limiter != nil {
		d, err := s.limiter.Allow(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !d.Allowed {
			return nil, RateLimitedError{RetryAfter: d.RetryAfter}
		}
	}

	if err := s.validate(ctx, tickets); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	var res *domain.Reservation

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		r, err := s.store.Reservations().
			With(tx).
			CreateWithTickets(ctx, userID, tickets)
		if err != nil {
			return err
		}

		res = r

		after(func(ctx context.Context) {
			if s.notifier == nil {
				return
			}
			for _, id := range distinctPerformances(tickets) {
				_ = s.notifier.PublishPerformanceChanged(ctx, "reserved", id)
			}
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, mapCreateErr(err))
	}

	return res, nil
}

// validate checks each requested seat against its performance's hall,
// collecting every failure.
func (s *Service) validate(ctx context.Context, tickets []domain.TicketRequest) error {
	ids := distinctPerformances(tickets)

	halls, err := s.store.Query().HallsForPerformances(ctx, ids)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if _, ok := halls[id]; !ok {
			return fmt.Errorf("performance %d: %w", id, ErrPerformanceNotFound)
		}
	}

	var verr *domain.ValidationError
	for i, t := range tickets {
		fe := domain.ValidateSeat(t.Row, t.Seat, halls[t.PerformanceID])
		if fe == nil {
			continue
		}

		field := fmt.Sprintf("tickets[%d].%s", i, fe.Field)
		if verr == nil {
			verr = domain.NewValidationError(field, fe.Message)
		} else {
			verr.Add(field, fe.Message)
		}
	}

	if verr != nil {
		return verr
	}

	return nil
}

func mapCreateErr(err error) error {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		return verr
	case errors.Is(err, repository.ErrConflict):
		return &domain.ValidationError{
			Fields: []domain.FieldError{{Field: "tickets", Message: "one or more seats are already taken"}},
			Err:    ErrSeatTaken,
		}
	case errors.Is(err, repository.ErrNotFound):
		return ErrPerformanceNotFound
	default:
		return err
	}
}

// Page is one slice of a user's reservations.
type Page struct {
	Items  []domain.ReservationWithTickets
	Total  int
	Limit  int
	Offset int
}

// List returns the caller's reservations, newest first. The limit falls
// back to the default page size and is capped at the maximum.
func (s *Service) List(ctx context.Context, userID int64, limit, offset int) (Page, error) {
	const op = "service.reservation.List"

	if limit <= 0 {
		limit = s.cfg.DefaultPage
	}

	if limit > s.cfg.MaxPage {
		limit = s.cfg.MaxPage
	}

	if offset < 0 {
		offset = 0
	}

	items, total, err := s.store.Query().ListReservations(ctx, userID, limit, offset)
	if err != nil {
		return Page{}, fmt.Errorf("%s:%w", op, err)
	}

	return Page{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func distinctPerformances(tickets []domain.TicketRequest) []int64 {
	seen := make(map[int64]struct{}, len(tickets))
	out := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		if _, ok := seen[t.PerformanceID]; ok {
			continue
		}
		seen[t.PerformanceID] = struct{}{}
		out = append(out, t.PerformanceID)
	}

	return out
}
