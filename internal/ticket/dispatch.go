package ticket

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Dispatcher delivers a rendered ticket to its printer.
type Dispatcher interface {
	Dispatch(ctx context.Context, t Ticket) error
}

// LogDispatcher writes tickets to the log. Used when no broker is configured.
type LogDispatcher struct{ log *zap.Logger }

func NewLogDispatcher(log *zap.Logger) *LogDispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogDispatcher{log: log.Named("printer")}
}

func (d *LogDispatcher) Dispatch(_ context.Context, t Ticket) error {
	d.log.Info("ticket",
		zap.String("kind", string(t.Kind)),
		zap.String("order_id", t.OrderID),
		zap.Int("table", t.TableNumber),
		zap.String("text", t.Text))
	return nil
}

// Recorder keeps dispatched tickets in memory.
type Recorder struct {
	mu      sync.Mutex
	tickets []Ticket
	Err     error
}

func (r *Recorder) Dispatch(_ context.Context, t Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.tickets = append(r.tickets, t)
	return nil
}

func (r *Recorder) Tickets() []Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Ticket(nil), r.tickets...)
}
