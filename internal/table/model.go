package table

import (
	"fmt"
	"time"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
)

type Status string

const (
	StatusAvailable Status = "Available"
	StatusOccupied  Status = "Occupied"
	StatusReserved  Status = "Reserved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusReserved:
		return true
	}
	return false
}

type Table struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Capacity  int       `json:"capacity"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Label is the display name, e.g. "Table 4".
func (t Table) Label() string { return Label(t.Number) }

func Label(number int) string { return fmt.Sprintf("Table %d", number) }

func (t *Table) Validate() error {
	if t.Number <= 0 {
		return apperr.Validation("table number must be positive")
	}
	if t.Capacity <= 0 {
		return apperr.Validation("capacity must be positive")
	}
	return nil
}

// CreateTableRequest payload of creation.
// swagger:model CreateTableRequest
type CreateTableRequest struct {
	Number   int `json:"number"   example:"4"`
	Capacity int `json:"capacity" example:"2"`
}

// SetStatusRequest payload of a manual status change.
// swagger:model SetStatusRequest
type SetStatusRequest struct {
	Status Status `json:"status" example:"Reserved"`
}
