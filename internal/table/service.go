package table

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
)

// PendingCounter reports how many pending orders reference a table.
type PendingCounter interface {
	CountPendingByTable(ctx context.Context, tableID string) (int, error)
}

type Service struct {
	repo    Repository
	pending PendingCounter
	log     *zap.Logger
}

func NewService(repo Repository, pending PendingCounter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, pending: pending, log: log.Named("table")}
}

func (s *Service) Create(ctx context.Context, req CreateTableRequest) (*Table, error) {
	t := Table{ID: uuid.NewString(), Number: req.Number, Capacity: req.Capacity, Status: StatusAvailable}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &t); err != nil {
		if errors.Is(err, ErrDuplicateNumber) {
			return nil, apperr.Validation("table %d already exists", t.Number)
		}
		return nil, apperr.Persistence("create table", err)
	}
	s.log.Info("table created", zap.String("id", t.ID), zap.Int("number", t.Number))
	return &t, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Table, error) {
	t, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("table", id)
	}
	if err != nil {
		return nil, apperr.Persistence("get table", err)
	}
	return t, nil
}

func (s *Service) List(ctx context.Context) ([]Table, error) {
	ts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Persistence("list tables", err)
	}
	return ts, nil
}

// SetStatus switches a table between Available and Reserved. Occupied is
// entered only by seating an order; an Occupied table can be released by hand
// once no pending order references it (e.g. after a cancellation).
func (s *Service) SetStatus(ctx context.Context, id string, st Status) (*Table, error) {
	if st != StatusAvailable && st != StatusReserved {
		return nil, apperr.Validation("status must be Available or Reserved")
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status == StatusOccupied {
		n, err := s.pending.CountPendingByTable(ctx, id)
		if err != nil {
			return nil, apperr.Persistence("count pending orders", err)
		}
		if n > 0 {
			return nil, apperr.Validation("%s has a pending order; complete it first", t.Label())
		}
	}
	if err := s.repo.SetStatus(ctx, id, st); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("table", id)
		}
		return nil, apperr.Persistence("set table status", err)
	}
	t.Status = st
	return t, nil
}

// Delete removes a table that no pending order references.
func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrHasPendingOrder) {
		return apperr.Validation("table has a pending order")
	}
	if err != nil {
		return apperr.Persistence("delete table", err)
	}
	if !ok {
		return apperr.NotFound("table", id)
	}
	s.log.Info("table deleted", zap.String("id", id))
	return nil
}
