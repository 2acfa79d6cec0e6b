// Package delivery tracks outbound delivery records. The lifecycle is
// externally driven; the engine only enforces that a record's status
// moves forward.
package delivery

import (
	"fmt"
	"time"

	"github.com/surgiflow/surgiflow/internal/shared"
)

// Status is the monotonic delivery lifecycle.
type Status string

const (
	StatusQueued         Status = "QUEUED"
	StatusDispatched     Status = "DISPATCHED"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
)

var statusRank = map[Status]int{
	StatusQueued:         0,
	StatusDispatched:     1,
	StatusOutForDelivery: 2,
	StatusDelivered:      3,
}

// IsValid reports whether the status is part of the lifecycle.
func (s Status) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// Before reports whether s precedes other in the lifecycle.
func (s Status) Before(other Status) bool {
	return statusRank[s] < statusRank[other]
}

// InFlight reports whether the delivery is still moving.
func (s Status) InFlight() bool {
	return s.IsValid() && s != StatusDelivered
}

// Record is one outbound delivery.
type Record struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"orderId"`
	Recipient  string    `json:"recipient"`
	Status     Status    `json:"status"`
	ETA        string    `json:"eta"`
	LastUpdate time.Time `json:"lastUpdate"`
}

var (
	// ErrMissingID indicates a record without an id.
	ErrMissingID = fmt.Errorf("%w: delivery id required", shared.ErrValidation)
	// ErrUnknownStatus indicates a status outside the lifecycle.
	ErrUnknownStatus = fmt.Errorf("%w: unknown delivery status", shared.ErrValidation)
	// ErrStatusRegression indicates an attempt to move a delivery backwards.
	ErrStatusRegression = fmt.Errorf("%w: delivery status cannot move backwards", shared.ErrValidation)
	// ErrMissingRecipient indicates a dispatch without a recipient.
	ErrMissingRecipient = fmt.Errorf("%w: recipient required", shared.ErrValidation)
)
