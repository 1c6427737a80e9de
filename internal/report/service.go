package report

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
	"github.com/MikeMC777/restaurant-pos/internal/auth"
	"github.com/MikeMC777/restaurant-pos/internal/order"
	"github.com/MikeMC777/restaurant-pos/internal/table"
)

type OrderSource interface {
	ListCreatedSince(ctx context.Context, since time.Time) ([]order.Order, error)
}

type TableSource interface {
	List(ctx context.Context) ([]table.Table, error)
}

type OrderDeleter interface {
	Delete(ctx context.Context, sess auth.Session, id string) error
}

// Service fetches orders with a store-side lower bound on creation time and
// applies the upper bound and all other filters in memory.
type Service struct {
	orders  OrderSource
	tables  TableSource
	deleter OrderDeleter
	loc     *time.Location
	now     func() time.Time
	log     *zap.Logger
}

func NewService(orders OrderSource, tables TableSource, deleter OrderDeleter, loc *time.Location, log *zap.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{orders: orders, tables: tables, deleter: deleter, loc: loc, now: time.Now, log: log.Named("report")}
}

func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) rangeOf(from, to time.Time) (Range, error) {
	if from.IsZero() {
		from = s.now()
	}
	if to.IsZero() {
		to = from
	}
	rng := DayRange(from, to, s.loc)
	if rng.To.Before(rng.From) {
		return Range{}, apperr.Validation("'to' must not be before 'from'")
	}
	return rng, nil
}

func (s *Service) fetch(ctx context.Context, rng Range) ([]order.Order, error) {
	orders, err := s.orders.ListCreatedSince(ctx, rng.From)
	if err != nil {
		return nil, apperr.Persistence("list orders", err)
	}
	return orders, nil
}

func (s *Service) Sales(ctx context.Context, from, to time.Time, search string) (SalesReport, error) {
	rng, err := s.rangeOf(from, to)
	if err != nil {
		return SalesReport{}, err
	}
	orders, err := s.fetch(ctx, rng)
	if err != nil {
		return SalesReport{}, err
	}
	rep := Sales(orders, rng, search)
	s.log.Debug("sales report", zap.Int("orders", rep.Orders), zap.String("grand_total", rep.GrandTotal.StringFixed(2)))
	return rep, nil
}

func (s *Service) Orders(ctx context.Context, from, to time.Time, f ListingFilter) (OrderListing, error) {
	if f.Status != "" && f.Status != StatusAll && !order.Status(f.Status).Valid() {
		return OrderListing{}, apperr.Validation("unknown status %q", f.Status)
	}
	rng, err := s.rangeOf(from, to)
	if err != nil {
		return OrderListing{}, err
	}
	orders, err := s.fetch(ctx, rng)
	if err != nil {
		return OrderListing{}, err
	}
	numbers, err := s.tableNumbers(ctx)
	if err != nil {
		return OrderListing{}, err
	}
	return Listing(orders, numbers, rng, f), nil
}

// DeleteRow deletes the order behind a listing row and drops the row without
// re-querying.
func (s *Service) DeleteRow(ctx context.Context, sess auth.Session, l *OrderListing, orderID string) error {
	if err := s.deleter.Delete(ctx, sess, orderID); err != nil {
		return err
	}
	l.Remove(orderID)
	return nil
}

func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	now := s.now()
	day := DayRange(now, now, s.loc)
	orders, err := s.fetch(ctx, day)
	if err != nil {
		return DashboardStats{}, err
	}
	tables, err := s.tables.List(ctx)
	if err != nil {
		return DashboardStats{}, apperr.Persistence("list tables", err)
	}
	return Dashboard(orders, tables, day), nil
}

func (s *Service) tableNumbers(ctx context.Context) (map[string]int, error) {
	tables, err := s.tables.List(ctx)
	if err != nil {
		return nil, apperr.Persistence("list tables", err)
	}
	out := make(map[string]int, len(tables))
	for _, t := range tables {
		out[t.ID] = t.Number
	}
	return out, nil
}
