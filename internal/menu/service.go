package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
)

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log.Named("menu")}
}

func (s *Service) Create(ctx context.Context, req CreateMenuItemRequest) (*MenuItem, error) {
	m := req.ToItem()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.ID = uuid.NewString()
	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, apperr.Persistence("create menu item", err)
	}
	s.log.Info("menu item created", zap.String("id", m.ID), zap.String("name", m.Name))
	return &m, nil
}

func (s *Service) Update(ctx context.Context, id string, req CreateMenuItemRequest) (*MenuItem, error) {
	m := req.ToItem()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.ID = id
	if err := s.repo.Update(ctx, &m); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("menu item", id)
		}
		return nil, apperr.Persistence("update menu item", err)
	}
	return &m, nil
}

func (s *Service) Get(ctx context.Context, id string) (*MenuItem, error) {
	m, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("menu item", id)
	}
	if err != nil {
		return nil, apperr.Persistence("get menu item", err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, category string) ([]MenuItem, error) {
	if category == "All" {
		category = ""
	}
	items, err := s.repo.List(ctx, Query{Category: category})
	if err != nil {
		return nil, apperr.Persistence("list menu items", err)
	}
	return items, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	cs, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, apperr.Persistence("list categories", err)
	}
	return cs, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperr.Persistence("delete menu item", err)
	}
	if !ok {
		return apperr.NotFound("menu item", id)
	}
	s.log.Info("menu item deleted", zap.String("id", id))
	return nil
}
