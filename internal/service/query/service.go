package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirinyoku/theatre-go/internal/domain"
	"github.com/kirinyoku/theatre-go/internal/repository"
	postgresrepo "github.com/kirinyoku/theatre-go/internal/repository/postgres"
)

// Service is the read side of the catalog. Every call goes to the database.
type Service struct {
	store *postgresrepo.Store
}

func New(store *postgresrepo.Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	const op = "service.query.ListGenres"

	out, err := s.store.Query().ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) ListActors(ctx context.Context) ([]domain.Actor, error) {
	const op = "service.query.ListActors"

	out, err := s.store.Query().ListActors(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) ListHalls(ctx context.Context) ([]domain.TheatreHall, error) {
	const op = "service.query.ListHalls"

	out, err := s.store.Query().ListHalls(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) ListPlays(ctx context.Context, f domain.PlayFilter) ([]domain.PlayListItem, error) {
	const op = "service.query.ListPlays"

	out, err := s.store.Query().ListPlays(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// GetPlay retrieves a play with its genres and actors.
//
// Returns:
//   - error: query.ErrPlayNotFound if the play does not exist.
func (s *Service) GetPlay(ctx context.Context, id int64) (*domain.PlayDetail, error) {
	const op = "service.query.GetPlay"

	p, err := s.store.Query().GetPlay(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrPlayNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return p, nil
}

// ListPerformances lists performances with tickets_available for each.
//
// Returns:
//   - []domain.PerformanceListItem: matching performances by show time.
//   - error: query.AvailabilityInvariantError if any performance has more
//     tickets than its hall has seats.
func (s *Service) ListPerformances(
	ctx context.Context,
	f domain.PerformanceFilter,
) ([]domain.PerformanceListItem, error) {
	const op = "service.query.ListPerformances"

	out, err := s.store.Query().ListPerformances(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	for _, p := range out {
		if err := checkAvailability(p); err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
	}

	return out, nil
}

// GetPerformance retrieves a performance with the seats already taken.
//
// Returns:
//   - error: query.ErrPerformanceNotFound if the performance does not exist.
func (s *Service) GetPerformance(ctx context.Context, id int64) (*domain.PerformanceDetail, error) {
	const op = "service.query.GetPerformance"

	p, err := s.store.Query().GetPerformance(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrPerformanceNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if avail := domain.TicketsAvailable(p.TheatreHall, len(p.TakenPlaces)); avail < 0 {
		return nil, fmt.Errorf("%s:%w", op, AvailabilityInvariantError{PerformanceID: p.ID, Available: avail})
	}

	return p, nil
}

func checkAvailability(p domain.PerformanceListItem) error {
	if p.TicketsAvailable < 0 {
		return AvailabilityInvariantError{PerformanceID: p.ID, Available: p.TicketsAvailable}
	}

	return nil
}
