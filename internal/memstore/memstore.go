// Package memstore is an in-memory backend for every repository. It is used
// when no database is configured and by tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MikeMC777/restaurant-pos/internal/menu"
	"github.com/MikeMC777/restaurant-pos/internal/order"
	"github.com/MikeMC777/restaurant-pos/internal/table"
	"github.com/MikeMC777/restaurant-pos/internal/user"
)

// Store holds all collections behind one lock so multi-collection writes are atomic.
type Store struct {
	mu     sync.Mutex
	menu   map[string]menu.MenuItem
	tables map[string]table.Table
	orders map[string]order.Order
	users  map[string]user.User
	fail   map[string]error

	// Now stamps created/updated/completed times.
	Now func() time.Time
}

func New() *Store {
	return &Store{
		menu:   map[string]menu.MenuItem{},
		tables: map[string]table.Table{},
		orders: map[string]order.Order{},
		users:  map[string]user.User{},
		fail:   map[string]error{},
		Now:    time.Now,
	}
}

// FailOn makes the named operation (e.g. "orders.Complete") return err until cleared with nil.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, op)
		return
	}
	s.fail[op] = err
}

func (s *Store) Menu() *MenuRepo { return &MenuRepo{s} }
func (s *Store) Tables() *TableRepo { return &TableRepo{s} }
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s} }
func (s *Store) Users() *UserRepo { return &UserRepo{s} }

// acquire locks the store unless a failure is injected for op.
func (s *Store) acquire(op string) error {
	s.mu.Lock()
	if err := s.fail[op]; err != nil {
		s.mu.Unlock()
		return err
	}
	return nil
}

// ---- menu ----

type MenuRepo struct{ s *Store }

func (r *MenuRepo) Create(_ context.Context, m *menu.MenuItem) error {
	if err := r.s.acquire("menu.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	now := r.s.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.s.menu[m.ID] = cloneMenu(*m)
	return nil
}

func (r *MenuRepo) GetByID(_ context.Context, id string) (*menu.MenuItem, error) {
	if err := r.s.acquire("menu.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	m, ok := r.s.menu[id]
	if !ok {
		return nil, menu.ErrNotFound
	}
	m = cloneMenu(m)
	return &m, nil
}

func (r *MenuRepo) List(_ context.Context, q menu.Query) ([]menu.MenuItem, error) {
	if err := r.s.acquire("menu.List"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	cat := strings.TrimSpace(q.Category)
	out := []menu.MenuItem{}
	for _, m := range r.s.menu {
		if cat == "" || m.Category == cat {
			out = append(out, cloneMenu(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *MenuRepo) Categories(_ context.Context) ([]string, error) {
	if err := r.s.acquire("menu.Categories"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, m := range r.s.menu {
		if !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *MenuRepo) Update(_ context.Context, m *menu.MenuItem) error {
	if err := r.s.acquire("menu.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	cur, ok := r.s.menu[m.ID]
	if !ok {
		return menu.ErrNotFound
	}
	m.CreatedAt, m.UpdatedAt = cur.CreatedAt, r.s.Now()
	r.s.menu[m.ID] = cloneMenu(*m)
	return nil
}

func (r *MenuRepo) Delete(_ context.Context, id string) (bool, error) {
	if err := r.s.acquire("menu.Delete"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	_, ok := r.s.menu[id]
	delete(r.s.menu, id)
	return ok, nil
}

func cloneMenu(m menu.MenuItem) menu.MenuItem {
	m.Sizes = append([]menu.Size(nil), m.Sizes...)
	m.AddOns = append([]menu.AddOn(nil), m.AddOns...)
	return m
}

// ---- tables ----

type TableRepo struct{ s *Store }

func (r *TableRepo) Create(_ context.Context, t *table.Table) error {
	if err := r.s.acquire("tables.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, other := range r.s.tables {
		if other.Number == t.Number {
			return table.ErrDuplicateNumber
		}
	}
	now := r.s.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	r.s.tables[t.ID] = *t
	return nil
}

func (r *TableRepo) GetByID(_ context.Context, id string) (*table.Table, error) {
	if err := r.s.acquire("tables.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	t, ok := r.s.tables[id]
	if !ok {
		return nil, table.ErrNotFound
	}
	return &t, nil
}

func (r *TableRepo) List(_ context.Context) ([]table.Table, error) {
	if err := r.s.acquire("tables.List"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	out := make([]table.Table, 0, len(r.s.tables))
	for _, t := range r.s.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *TableRepo) SetStatus(_ context.Context, id string, st table.Status) error {
	if err := r.s.acquire("tables.SetStatus"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	t, ok := r.s.tables[id]
	if !ok {
		return table.ErrNotFound
	}
	t.Status, t.UpdatedAt = st, r.s.Now()
	r.s.tables[id] = t
	return nil
}

func (r *TableRepo) Delete(_ context.Context, id string) (bool, error) {
	if err := r.s.acquire("tables.Delete"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.tables[id]; !ok {
		return false, nil
	}
	for _, o := range r.s.orders {
		if o.Status == order.StatusPending && o.HasTable() && *o.TableID == id {
			return false, table.ErrHasPendingOrder
		}
	}
	delete(r.s.tables, id)
	return true, nil
}

// ---- orders ----

type OrderRepo struct{ s *Store }

func (r *OrderRepo) Create(_ context.Context, o *order.Order) error {
	if err := r.s.acquire("orders.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	r.insert(o)
	return nil
}

func (r *OrderRepo) CreateSeated(_ context.Context, o *order.Order) error {
	if err := r.s.acquire("orders.CreateSeated"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if !o.HasTable() {
		return order.ErrTableNotFound
	}
	t, ok := r.s.tables[*o.TableID]
	if !ok {
		return order.ErrTableNotFound
	}
	if t.Status != table.StatusAvailable {
		return order.ErrTableNotAvailable
	}
	t.Status, t.UpdatedAt = table.StatusOccupied, r.s.Now()
	r.s.tables[t.ID] = t
	r.insert(o)
	return nil
}

func (r *OrderRepo) CreateCompleted(_ context.Context, o *order.Order) error {
	if err := r.s.acquire("orders.CreateCompleted"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	now := r.s.Now()
	o.Status, o.CompletedAt = order.StatusCompleted, &now
	r.insert(o)
	return nil
}

func (r *OrderRepo) insert(o *order.Order) {
	now := r.s.Now()
	o.CreatedAt, o.UpdatedAt = now, now
	r.s.orders[o.ID] = cloneOrder(*o)
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*order.Order, error) {
	if err := r.s.acquire("orders.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *OrderRepo) ListCreatedSince(_ context.Context, since time.Time) ([]order.Order, error) {
	if err := r.s.acquire("orders.ListCreatedSince"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []order.Order
	for _, o := range r.s.orders {
		if !o.CreatedAt.Before(since) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *OrderRepo) FindPendingByTable(_ context.Context, tableID string) (*order.Order, error) {
	if err := r.s.acquire("orders.FindPendingByTable"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var found *order.Order
	for _, o := range r.s.orders {
		if o.Status == order.StatusPending && o.HasTable() && *o.TableID == tableID {
			if found == nil || o.CreatedAt.After(found.CreatedAt) {
				c := cloneOrder(o)
				found = &c
			}
		}
	}
	if found == nil {
		return nil, order.ErrNotFound
	}
	return found, nil
}

func (r *OrderRepo) CountPendingByTable(_ context.Context, tableID string) (int, error) {
	if err := r.s.acquire("orders.CountPendingByTable"); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	n := 0
	for _, o := range r.s.orders {
		if o.Status == order.StatusPending && o.HasTable() && *o.TableID == tableID {
			n++
		}
	}
	return n, nil
}

func (r *OrderRepo) UpdateItems(_ context.Context, id string, fn order.ItemsFunc) (*order.Order, error) {
	if err := r.s.acquire("orders.UpdateItems"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	if o.Status != order.StatusPending {
		return nil, order.ErrNotPending
	}
	items, err := fn(cloneOrder(o).Items)
	if err != nil {
		return nil, err
	}
	o.Items, o.Total, o.UpdatedAt = items, order.SumTotal(items), r.s.Now()
	r.s.orders[id] = cloneOrder(o)
	o = cloneOrder(o)
	return &o, nil
}

func (r *OrderRepo) Complete(_ context.Context, id string) (*order.Order, error) {
	if err := r.s.acquire("orders.Complete"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	if o.Status != order.StatusPending {
		return nil, order.ErrNotPending
	}
	now := r.s.Now()
	o.Status, o.CompletedAt, o.UpdatedAt = order.StatusCompleted, &now, now
	if o.HasTable() {
		if t, ok := r.s.tables[*o.TableID]; ok {
			t.Status, t.UpdatedAt = table.StatusAvailable, now
			r.s.tables[t.ID] = t
		}
	}
	r.s.orders[id] = o
	o = cloneOrder(o)
	return &o, nil
}

func (r *OrderRepo) Cancel(_ context.Context, id string) (*order.Order, error) {
	if err := r.s.acquire("orders.Cancel"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	if o.Status != order.StatusPending {
		return nil, order.ErrNotPending
	}
	o.Status, o.UpdatedAt = order.StatusCancelled, r.s.Now()
	r.s.orders[id] = o
	o = cloneOrder(o)
	return &o, nil
}

func (r *OrderRepo) Delete(_ context.Context, id string) (bool, error) {
	if err := r.s.acquire("orders.Delete"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	_, ok := r.s.orders[id]
	delete(r.s.orders, id)
	return ok, nil
}

func cloneOrder(o order.Order) order.Order {
	items := make([]order.LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		if it.AddOns != nil {
			it.AddOns = append([]string(nil), it.AddOns...)
		}
		items = append(items, it)
	}
	o.Items = items
	if o.TableID != nil {
		id := *o.TableID
		o.TableID = &id
	}
	if o.CompletedAt != nil {
		at := *o.CompletedAt
		o.CompletedAt = &at
	}
	return o
}

// ---- users ----

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *user.User) error {
	if err := r.s.acquire("users.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if strings.EqualFold(other.Email, u.Email) {
			return user.ErrAlreadyExist
		}
	}
	now := r.s.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	if err := r.s.acquire("users.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if err := r.s.acquire("users.GetByEmail"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *UserRepo) Update(_ context.Context, u *user.User, updatePassword bool) error {
	if err := r.s.acquire("users.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return user.ErrNotFound
	}
	if u.DisplayName != "" {
		cur.DisplayName = u.DisplayName
	}
	if u.PhotoURL != "" {
		cur.PhotoURL = u.PhotoURL
	}
	if updatePassword {
		cur.PasswordHash = u.PasswordHash
	}
	cur.UpdatedAt = r.s.Now()
	r.s.users[u.ID] = cur
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) (bool, error) {
	if err := r.s.acquire("users.Delete"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	_, ok := r.s.users[id]
	delete(r.s.users, id)
	return ok, nil
}

// compile-time interface checks
var (
	_ menu.Repository  = (*MenuRepo)(nil)
	_ table.Repository = (*TableRepo)(nil)
	_ order.Repository = (*OrderRepo)(nil)
	_ user.Repository  = (*UserRepo)(nil)
)
