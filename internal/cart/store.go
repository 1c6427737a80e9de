package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
	"github.com/MikeMC777/restaurant-pos/internal/menu"
	"github.com/MikeMC777/restaurant-pos/internal/order"
)

var ErrNotFound = errors.New("cart not found")

// View is the JSON shape of an open cart.
// swagger:model CartView
type View struct {
	ID        string           `json:"id"`
	Items     []order.LineItem `json:"items"`
	Total     decimal.Decimal  `json:"total"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type entry struct {
	c         *Composer
	updatedAt time.Time
}

// Store keeps the open carts of POS terminals in memory.
type Store struct {
	mu    sync.Mutex
	carts map[string]*entry
}

func NewStore() *Store { return &Store{carts: map[string]*entry{}} }

func (s *Store) New() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	e := &entry{c: New(), updatedAt: time.Now()}
	s.carts[id] = e
	return e.view(id)
}

func (s *Store) Get(id string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[id]
	if !ok {
		return View{}, ErrNotFound
	}
	return e.view(id), nil
}

// Update applies fn to a copy of the cart and keeps the copy only if fn succeeds.
func (s *Store) Update(id string, fn func(c *Composer) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[id]
	if !ok {
		return View{}, ErrNotFound
	}
	next := e.c.Clone()
	if err := fn(next); err != nil {
		return View{}, err
	}
	e.c, e.updatedAt = next, time.Now()
	return e.view(id), nil
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.carts[id]
	delete(s.carts, id)
	return ok
}

func (e *entry) view(id string) View {
	return View{ID: id, Items: e.c.Items(), Total: e.c.Total(), UpdatedAt: e.updatedAt}
}

// MenuLookup resolves menu items for pricing.
type MenuLookup interface {
	GetByID(ctx context.Context, id string) (*menu.MenuItem, error)
}

// Service exposes the cart operations over the store.
type Service struct {
	store *Store
	menu  MenuLookup
	log   *zap.Logger
}

func NewService(store *Store, menu MenuLookup, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, menu: menu, log: log.Named("cart")}
}

func (s *Service) Open() View { return s.store.New() }

func (s *Service) Get(id string) (View, error) {
	v, err := s.store.Get(id)
	if err != nil {
		return View{}, apperr.NotFound("cart", id)
	}
	return v, nil
}

// AddItem adds one unit of a menu item. An empty size selects the item's
// default size.
func (s *Service) AddItem(ctx context.Context, id string, req order.AddItemRequest) (View, error) {
	item, err := s.menu.GetByID(ctx, req.MenuItemID)
	if errors.Is(err, menu.ErrNotFound) {
		return View{}, apperr.NotFound("menu item", req.MenuItemID)
	}
	if err != nil {
		return View{}, apperr.Persistence("get menu item", err)
	}
	size := req.Size
	if size == "" {
		size = menu.DefaultSize(*item)
	}
	return s.update(id, func(c *Composer) error {
		c.AddConfigured(*item, size, req.AddOns)
		return nil
	})
}

func (s *Service) AddCustomItem(id string, req order.CustomItemRequest) (View, error) {
	return s.update(id, func(c *Composer) error {
		_, err := c.AddCustomItem(req.Name, req.Price, req.Quantity)
		return err
	})
}

func (s *Service) SetQuantity(id string, index, q int) (View, error) {
	return s.update(id, func(c *Composer) error { return c.SetQuantity(index, q) })
}

func (s *Service) Clear(id string) (View, error) {
	return s.update(id, func(c *Composer) error {
		c.Clear()
		return nil
	})
}

func (s *Service) Discard(id string) error {
	if !s.store.Delete(id) {
		return apperr.NotFound("cart", id)
	}
	return nil
}

func (s *Service) update(id string, fn func(c *Composer) error) (View, error) {
	v, err := s.store.Update(id, fn)
	if errors.Is(err, ErrNotFound) {
		return View{}, apperr.NotFound("cart", id)
	}
	return v, err
}
