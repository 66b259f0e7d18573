package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/kirinyoku/theatre-go/internal/domain"
	"github.com/kirinyoku/theatre-go/internal/repository"
	postgresrepo "github.com/kirinyoku/theatre-go/internal/repository/postgres"
	"github.com/kirinyoku/theatre-go/internal/storage"
	"github.com/kirinyoku/theatre-go/internal/uow"
)

// Notifier is told about performances that were created, changed or removed.
type Notifier interface {
	PublishPerformanceChanged(ctx context.Context, reason string, performanceID int64) error
}

type Service struct {
	store    *postgresrepo.Store
	images   storage.ImageStore
	notifier Notifier
	uow      *uow.UoW
}

func New(store *postgresrepo.Store, images storage.ImageStore, notifier Notifier) *Service {
	return &Service{
		store:    store,
		images:   images,
		notifier: notifier,
		uow:      uow.NewUoW(store),
	}
}

func (s *Service) CreateGenre(ctx context.Context, name string) (domain.Genre, error) {
	const op = "service.admin.CreateGenre"

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Genre{}, domain.NewValidationError("name", "this field may not be blank")
	}

	id, err := s.store.Catalog().CreateGenre(ctx, name)
	if err != nil {
		return domain.Genre{}, fmt.Errorf("%s:%w", op, err)
	}

	return domain.Genre{ID: id, Name: name}, nil
}

func (s *Service) CreateActor(ctx context.Context, firstName, lastName string) (domain.Actor, error) {
	const op = "service.admin.CreateActor"

	a := domain.Actor{FirstName: strings.TrimSpace(firstName), LastName: strings.TrimSpace(lastName)}

	var verr *domain.ValidationError
	if a.FirstName == "" {
		verr = domain.NewValidationError("first_name", "this field may not be blank")
	}
	if a.LastName == "" {
		if verr == nil {
			verr = domain.NewValidationError("last_name", "this field may not be blank")
		} else {
			verr.Add("last_name", "this field may not be blank")
		}
	}
	if verr != nil {
		return domain.Actor{}, verr
	}

	id, err := s.store.Catalog().CreateActor(ctx, a.FirstName, a.LastName)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%s:%w", op, err)
	}
	a.ID = id

	return a, nil
}

// CreateHall creates a theatre hall with a fixed rows × seats grid.
//
// Returns:
//   - error: *domain.ValidationError if a dimension is not positive.
//   - error: admin.ErrHallConflict if the name is taken.
func (s *Service) CreateHall(ctx context.Context, name string, rows, seatsInRow int) (domain.TheatreHall, error) {
	const op = "service.admin.CreateHall"

	h := domain.TheatreHall{Name: strings.TrimSpace(name), Rows: rows, SeatsInRow: seatsInRow}
	if err := validateHall(h); err != nil {
		return domain.TheatreHall{}, err
	}

	id, err := s.store.Catalog().CreateHall(ctx, h.Name, h.Rows, h.SeatsInRow)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return domain.TheatreHall{}, fmt.Errorf("%s:%w", op, ErrHallConflict)
		}
		return domain.TheatreHall{}, fmt.Errorf("%s:%w", op, err)
	}
	h.ID = id

	return h, nil
}

func validateHall(h domain.TheatreHall) error {
	var verr *domain.ValidationError
	add := func(field, msg string) {
		if verr == nil {
			verr = domain.NewValidationError(field, msg)
			return
		}
		verr.Add(field, msg)
	}

	if h.Name == "" {
		add("name", "this field may not be blank")
	}
	if h.Rows < 1 {
		add("rows", "ensure this value is greater than or equal to 1")
	}
	if h.SeatsInRow < 1 {
		add("seats_in_row", "ensure this value is greater than or equal to 1")
	}

	if verr != nil {
		return verr
	}

	return nil
}

// CreatePlay stores a play and its genre and actor links in one
// transaction. Repeated ids are collapsed.
//
// Returns:
//   - error: admin.ErrUnknownReference if a genre or actor does not exist.
func (s *Service) CreatePlay(ctx context.Context, p domain.Play) (domain.Play, error) {
	const op = "service.admin.CreatePlay"

	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return domain.Play{}, domain.NewValidationError("title", "this field may not be blank")
	}

	p.GenreIDs = dedupe(p.GenreIDs)
	p.ActorIDs = dedupe(p.ActorIDs)

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		id, err := s.store.Catalog().With(tx).CreatePlay(ctx, p)
		if err != nil {
			return err
		}
		p.ID = id
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Play{}, fmt.Errorf("%s:%w", op, ErrUnknownReference)
		}
		return domain.Play{}, fmt.Errorf("%s:%w", op, err)
	}

	return p, nil
}

// UploadPlayImage stores an image for a play under a generated unique name
// and records the returned reference on the play.
func (s *Service) UploadPlayImage(ctx context.Context, playID int64, filename string, r io.Reader) (string, error) {
	const op = "service.admin.UploadPlayImage"

	play, err := s.store.Query().GetPlay(ctx, playID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%s:%w", op, ErrPlayNotFound)
		}
		return "", fmt.Errorf("%s:%w", op, err)
	}

	ref, err := s.images.Save(ctx, storage.PlayImageKey(play.Title, filename), r)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	if err := s.store.Catalog().SetPlayImage(ctx, playID, ref); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%s:%w", op, ErrPlayNotFound)
		}
		return "", fmt.Errorf("%s:%w", op, err)
	}

	return ref, nil
}

// CreatePerformance schedules a play in a hall.
//
// Returns:
//   - error: admin.ErrUnknownReference if the play or hall does not exist.
func (s *Service) CreatePerformance(ctx context.Context, p domain.Performance) (domain.Performance, error) {
	const op = "service.admin.CreatePerformance"

	if p.ShowTime.IsZero() {
		return domain.Performance{}, domain.NewValidationError("show_time", "this field is required")
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		id, err := s.store.Catalog().With(tx).CreatePerformance(ctx, p.PlayID, p.TheatreHallID, p.ShowTime)
		if err != nil {
			return err
		}
		p.ID = id

		after(s.publish("created", id))
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Performance{}, fmt.Errorf("%s:%w", op, ErrUnknownReference)
		}
		return domain.Performance{}, fmt.Errorf("%s:%w", op, err)
	}

	return p, nil
}

// UpdatePerformance changes a performance's play, hall or show time. Moving
// it to a hall too small for tickets already sold is rejected.
//
// Returns:
//   - error: admin.ErrPerformanceNotFound if the performance does not exist.
//   - error: admin.ErrUnknownReference if the new play or hall does not exist.
//   - error: *domain.ValidationError on "theatre_hall" if sold seats would
//     fall outside the new hall.
func (s *Service) UpdatePerformance(ctx context.Context, p domain.Performance) error {
	const op = "service.admin.UpdatePerformance"

	if p.ShowTime.IsZero() {
		return domain.NewValidationError("show_time", "this field is required")
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		hall, err := s.store.Query().With(tx).GetHall(ctx, p.TheatreHallID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUnknownReference
			}
			return err
		}

		outside, err := s.store.Query().With(tx).CountTicketsOutside(ctx, p.ID, hall.Rows, hall.SeatsInRow)
		if err != nil {
			return err
		}
		if outside > 0 {
			return domain.NewValidationError("theatre_hall",
				fmt.Sprintf("%d sold seats do not fit in hall %q", outside, hall.Name))
		}

		if err := s.store.Catalog().With(tx).UpdatePerformance(ctx, p); err != nil {
			switch {
			case errors.Is(err, repository.ErrMissingReference):
				return ErrUnknownReference
			case errors.Is(err, repository.ErrNotFound):
				return ErrPerformanceNotFound
			}
			return err
		}

		after(s.publish("updated", p.ID))
		return nil
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return verr
		}
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrUnknownReference)
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// DeletePerformance removes a performance together with its tickets.
func (s *Service) DeletePerformance(ctx context.Context, id int64) error {
	const op = "service.admin.DeletePerformance"

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Catalog().With(tx).DeletePerformance(ctx, id); err != nil {
			return err
		}

		after(s.publish("deleted", id))
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrPerformanceNotFound)
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (s *Service) publish(reason string, id int64) uow.AfterCommit {
	return func(ctx context.Context) {
		if s.notifier != nil {
			_ = s.notifier.PublishPerformanceChanged(ctx, reason, id)
		}
	}
}

func dedupe(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
