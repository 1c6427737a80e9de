package pos

import (
	"github.com/MikeMC777/restaurant-pos/internal/order"
	"github.com/MikeMC777/restaurant-pos/internal/ticket"
)

type Transition string

const (
	TransitionPlace         Transition = "place"
	TransitionCheckout      Transition = "checkout"
	TransitionSendToKitchen Transition = "send_to_kitchen"
	TransitionTableKitchen  Transition = "table_kitchen_ticket"
	TransitionComplete      Transition = "complete"
	TransitionAppendItem    Transition = "append_item"
	TransitionCancel        Transition = "cancel"
	TransitionDelete        Transition = "delete"
)

// Effects lists what accompanies a transition besides the order write.
type Effects struct {
	OccupyTable bool        `json:"occupy_table,omitempty"`
	FreeTable   bool        `json:"free_table,omitempty"`
	Ticket      ticket.Kind `json:"ticket,omitempty"`
}

// EffectsOf returns the side effects of applying t to o. Tickets are emitted
// only after the write they belong to has succeeded.
func EffectsOf(t Transition, o *order.Order) Effects {
	switch t {
	case TransitionPlace:
		return Effects{OccupyTable: o.Type == order.TypeDineIn}
	case TransitionCheckout:
		return Effects{Ticket: ticket.KindReceipt}
	case TransitionSendToKitchen, TransitionTableKitchen:
		return Effects{Ticket: ticket.KindKitchen}
	case TransitionComplete:
		return Effects{FreeTable: o.HasTable(), Ticket: ticket.KindReceipt}
	default:
		// append, cancel and delete touch only the order
		return Effects{}
	}
}
