// Package pos drives orders through their lifecycle: placing, kitchen
// tickets, item additions, billing, cancellation and deletion.
package pos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
	"github.com/MikeMC777/restaurant-pos/internal/auth"
	"github.com/MikeMC777/restaurant-pos/internal/cart"
	"github.com/MikeMC777/restaurant-pos/internal/menu"
	"github.com/MikeMC777/restaurant-pos/internal/order"
	"github.com/MikeMC777/restaurant-pos/internal/table"
	"github.com/MikeMC777/restaurant-pos/internal/ticket"
)

// TableLookup resolves the tables an order refers to.
type TableLookup interface {
	GetByID(ctx context.Context, id string) (*table.Table, error)
}

type MenuLookup interface {
	GetByID(ctx context.Context, id string) (*menu.MenuItem, error)
}

type Service struct {
	orders  order.Repository
	tables  TableLookup
	menu    MenuLookup
	printer ticket.Dispatcher
	header  ticket.Header
	log     *zap.Logger
}

func NewService(orders order.Repository, tables TableLookup, menu MenuLookup,
	printer ticket.Dispatcher, header ticket.Header, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{orders: orders, tables: tables, menu: menu, printer: printer, header: header, log: log.Named("pos")}
}

// PlaceInput describes a new order.
type PlaceInput struct {
	Type    order.Type
	TableID string
	Items   []order.LineItem
}

// Result is the outcome of a transition.
type Result struct {
	Order   *order.Order  `json:"order"`
	Effects Effects       `json:"effects"`
	Printed []ticket.Kind `json:"printed"`
	// PrintError is set when the write succeeded but the ticket could not be delivered.
	PrintError string `json:"print_error,omitempty"`
}

// Place creates a Pending order. A Dine-in order occupies its table in the
// same write; the table must be Available.
func (s *Service) Place(ctx context.Context, sess auth.Session, in PlaceInput) (*Result, error) {
	o, err := s.newOrder(ctx, sess, in)
	if err != nil {
		return nil, err
	}
	if o.Type == order.TypeDineIn {
		err = s.orders.CreateSeated(ctx, o)
	} else {
		err = s.orders.Create(ctx, o)
	}
	switch {
	case errors.Is(err, order.ErrTableNotAvailable):
		return nil, apperr.Validation("table is not available")
	case errors.Is(err, order.ErrTableNotFound):
		return nil, apperr.NotFound("table", in.TableID)
	case err != nil:
		return nil, apperr.Persistence("place order", err)
	}
	s.log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("type", string(o.Type)),
		zap.String("total", o.Total.StringFixed(2)),
		zap.String("by", sess.UserID))
	return &Result{Order: o, Effects: EffectsOf(TransitionPlace, o), Printed: []ticket.Kind{}}, nil
}

// PlaceForKitchen places a non-Dine-in order and sends its kitchen ticket.
func (s *Service) PlaceForKitchen(ctx context.Context, sess auth.Session, in PlaceInput) (*Result, error) {
	if in.Type == order.TypeDineIn {
		return nil, apperr.Validation("dine-in kitchen tickets are printed from the table view")
	}
	res, err := s.Place(ctx, sess, in)
	if err != nil {
		return nil, err
	}
	res.Effects = EffectsOf(TransitionSendToKitchen, res.Order)
	s.emit(ctx, res, ticket.KindKitchen)
	return res, nil
}

// Checkout writes a non-Dine-in order directly as Completed and prints the
// receipt. A failed write leaves nothing stored.
func (s *Service) Checkout(ctx context.Context, sess auth.Session, in PlaceInput) (*Result, error) {
	if in.Type == order.TypeDineIn {
		return nil, apperr.Validation("dine-in orders are billed from the table view")
	}
	o, err := s.newOrder(ctx, sess, in)
	if err != nil {
		return nil, err
	}
	if err := s.orders.CreateCompleted(ctx, o); err != nil {
		return nil, apperr.Persistence("checkout order", err)
	}
	s.log.Info("order checked out",
		zap.String("order_id", o.ID),
		zap.String("type", string(o.Type)),
		zap.String("total", o.Total.StringFixed(2)),
		zap.String("by", sess.UserID))
	res := &Result{Order: o, Effects: EffectsOf(TransitionCheckout, o), Printed: []ticket.Kind{}}
	s.emit(ctx, res, ticket.KindReceipt)
	return res, nil
}

// SendToKitchen prints the kitchen ticket of a pending non-Dine-in order.
func (s *Service) SendToKitchen(ctx context.Context, sess auth.Session, id string) (*Result, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Type == order.TypeDineIn {
		return nil, apperr.Validation("dine-in kitchen tickets are printed from the table view")
	}
	if o.Status != order.StatusPending {
		return nil, apperr.Validation("order is %s", o.Status)
	}
	res := &Result{Order: o, Effects: EffectsOf(TransitionSendToKitchen, o), Printed: []ticket.Kind{}}
	s.emit(ctx, res, ticket.KindKitchen)
	return res, nil
}

// CurrentOrderForTable returns the pending order seated at a table.
func (s *Service) CurrentOrderForTable(ctx context.Context, tableID string) (*order.Order, error) {
	o, err := s.orders.FindPendingByTable(ctx, tableID)
	if errors.Is(err, order.ErrNotFound) {
		return nil, apperr.NotFound("pending order for table", tableID)
	}
	if err != nil {
		return nil, apperr.Persistence("find table order", err)
	}
	return o, nil
}

// TableKitchenTicket prints the kitchen ticket of the order seated at a table.
func (s *Service) TableKitchenTicket(ctx context.Context, sess auth.Session, tableID string) (*Result, error) {
	o, err := s.CurrentOrderForTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	res := &Result{Order: o, Effects: EffectsOf(TransitionTableKitchen, o), Printed: []ticket.Kind{}}
	s.emit(ctx, res, ticket.KindKitchen)
	return res, nil
}

// Complete bills a pending order: it becomes Completed, its table is freed in
// the same write, and the receipt is printed afterwards.
func (s *Service) Complete(ctx context.Context, sess auth.Session, id string) (*Result, error) {
	o, err := s.orders.Complete(ctx, id)
	if err != nil {
		return nil, s.transitionErr("complete order", id, err)
	}
	s.log.Info("order completed", zap.String("order_id", id), zap.String("by", sess.UserID))
	res := &Result{Order: o, Effects: EffectsOf(TransitionComplete, o), Printed: []ticket.Kind{}}
	s.emit(ctx, res, ticket.KindReceipt)
	return res, nil
}

// AppendItem adds one unit of a menu item to a pending order.
func (s *Service) AppendItem(ctx context.Context, sess auth.Session, id string, req order.AddItemRequest) (*Result, error) {
	if !sess.IsAdmin() {
		return nil, apperr.Forbidden("only admins can add items to a placed order")
	}
	item, err := s.menu.GetByID(ctx, req.MenuItemID)
	if errors.Is(err, menu.ErrNotFound) {
		return nil, apperr.NotFound("menu item", req.MenuItemID)
	}
	if err != nil {
		return nil, apperr.Persistence("get menu item", err)
	}
	size := req.Size
	if size == "" {
		size = menu.DefaultSize(*item)
	}
	return s.appendWith(ctx, id, func(c *cart.Composer) error {
		c.AddConfigured(*item, size, req.AddOns)
		return nil
	})
}

// AppendCustomItem adds an item with no menu backing to a pending order.
func (s *Service) AppendCustomItem(ctx context.Context, sess auth.Session, id string, req order.CustomItemRequest) (*Result, error) {
	if !sess.IsAdmin() {
		return nil, apperr.Forbidden("only admins can add items to a placed order")
	}
	return s.appendWith(ctx, id, func(c *cart.Composer) error {
		_, err := c.AddCustomItem(req.Name, req.Price, req.Quantity)
		return err
	})
}

func (s *Service) appendWith(ctx context.Context, id string, add func(c *cart.Composer) error) (*Result, error) {
	o, err := s.orders.UpdateItems(ctx, id, func(items []order.LineItem) ([]order.LineItem, error) {
		c := cart.FromItems(items)
		if err := add(c); err != nil {
			return nil, err
		}
		return c.Items(), nil
	})
	if err != nil {
		if apperr.Is(err, apperr.KindValidation) {
			return nil, err
		}
		return nil, s.transitionErr("add item", id, err)
	}
	return &Result{Order: o, Effects: EffectsOf(TransitionAppendItem, o), Printed: []ticket.Kind{}}, nil
}

// Cancel marks a pending order Cancelled. Its table stays as it is.
func (s *Service) Cancel(ctx context.Context, sess auth.Session, id string) (*Result, error) {
	o, err := s.orders.Cancel(ctx, id)
	if err != nil {
		return nil, s.transitionErr("cancel order", id, err)
	}
	s.log.Info("order cancelled", zap.String("order_id", id), zap.String("by", sess.UserID))
	return &Result{Order: o, Effects: EffectsOf(TransitionCancel, o), Printed: []ticket.Kind{}}, nil
}

// Delete removes an order in any state. Tables are not touched.
func (s *Service) Delete(ctx context.Context, sess auth.Session, id string) error {
	if !sess.IsAdmin() {
		return apperr.Forbidden("only admins can delete orders")
	}
	ok, err := s.orders.Delete(ctx, id)
	if err != nil {
		return apperr.Persistence("delete order", err)
	}
	if !ok {
		return apperr.NotFound("order", id)
	}
	s.log.Info("order deleted", zap.String("order_id", id), zap.String("by", sess.UserID))
	return nil
}

// Reprint sends another copy of a receipt or kitchen ticket.
func (s *Service) Reprint(ctx context.Context, sess auth.Session, id string, k ticket.Kind) (*Result, error) {
	if !k.Valid() {
		return nil, apperr.Validation("unknown ticket kind %q", k)
	}
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res := &Result{Order: o, Effects: Effects{Ticket: k}, Printed: []ticket.Kind{}}
	s.emit(ctx, res, k)
	return res, nil
}

// Render returns the ticket of kind k for an order without dispatching it.
func (s *Service) Render(ctx context.Context, id string, k ticket.Kind) (ticket.Ticket, error) {
	if !k.Valid() {
		return ticket.Ticket{}, apperr.Validation("unknown ticket kind %q", k)
	}
	o, err := s.Get(ctx, id)
	if err != nil {
		return ticket.Ticket{}, err
	}
	return ticket.Render(k, o, s.tableNumber(ctx, o), s.header), nil
}

func (s *Service) Get(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if errors.Is(err, order.ErrNotFound) {
		return nil, apperr.NotFound("order", id)
	}
	if err != nil {
		return nil, apperr.Persistence("get order", err)
	}
	return o, nil
}

func (s *Service) newOrder(ctx context.Context, sess auth.Session, in PlaceInput) (*order.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperr.Validation("cart is empty")
	}
	if !in.Type.Valid() {
		return nil, apperr.Validation("unknown order type %q", in.Type)
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, apperr.Validation("%s: quantity must be >= 1", it.Name)
		}
		if it.Price.IsNegative() {
			return nil, apperr.Validation("%s: price must be >= 0", it.Name)
		}
	}

	o := &order.Order{
		ID:        uuid.NewString(),
		Items:     cart.FromItems(in.Items).Items(),
		Status:    order.StatusPending,
		Type:      in.Type,
		CreatedBy: sess.UserID,
	}
	o.Total = order.SumTotal(o.Items)

	if in.Type != order.TypeDineIn {
		return o, nil
	}
	if in.TableID == "" {
		return nil, apperr.Validation("a table is required for dine-in orders")
	}
	t, err := s.tables.GetByID(ctx, in.TableID)
	if errors.Is(err, table.ErrNotFound) {
		return nil, apperr.NotFound("table", in.TableID)
	}
	if err != nil {
		return nil, apperr.Persistence("get table", err)
	}
	if t.Status != table.StatusAvailable {
		return nil, apperr.Validation("%s is %s", t.Label(), t.Status)
	}
	tid := t.ID
	o.TableID = &tid
	return o, nil
}

// emit renders and dispatches a ticket. A delivery failure is logged and
// reported on res; it never undoes the write that preceded it.
func (s *Service) emit(ctx context.Context, res *Result, k ticket.Kind) {
	t := ticket.Render(k, res.Order, s.tableNumber(ctx, res.Order), s.header)
	if err := s.printer.Dispatch(ctx, t); err != nil {
		s.log.Warn("ticket not delivered",
			zap.String("order_id", res.Order.ID),
			zap.String("kind", string(k)),
			zap.Error(err))
		res.PrintError = err.Error()
		return
	}
	res.Printed = append(res.Printed, k)
}

func (s *Service) tableNumber(ctx context.Context, o *order.Order) int {
	if !o.HasTable() {
		return 0
	}
	t, err := s.tables.GetByID(ctx, *o.TableID)
	if err != nil {
		return 0
	}
	return t.Number
}

func (s *Service) transitionErr(op, id string, err error) error {
	switch {
	case errors.Is(err, order.ErrNotFound):
		return apperr.NotFound("order", id)
	case errors.Is(err, order.ErrNotPending):
		return apperr.Validation("order %s is no longer pending", id)
	default:
		return apperr.Persistence(op, err)
	}
}
