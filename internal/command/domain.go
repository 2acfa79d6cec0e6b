// Package command consumes structured commands produced by an external
// natural-language parser and routes them to the engine. Parsing itself
// is out of scope; the dispatcher trusts the parser's structured output
// and rejects anything unrecognized or incomplete with a no-op.
package command

import (
	"fmt"

	"github.com/surgiflow/surgiflow/internal/catalog"
	"github.com/surgiflow/surgiflow/internal/delivery"
	"github.com/surgiflow/surgiflow/internal/shared"
)

// Action enumerates the commands the engine accepts.
type Action string

const (
	ActionAdd         Action = "ADD"
	ActionRemove      Action = "REMOVE"
	ActionUpdatePrice Action = "UPDATE_PRICE"
	ActionDispatch    Action = "DISPATCH"
	ActionMoveStage   Action = "MOVE_STAGE"
	ActionLocate      Action = "LOCATE"
	ActionCheckStock  Action = "CHECK_STOCK"
	ActionUnknown     Action = "UNKNOWN"
)

// Command is the parser's structured output.
type Command struct {
	Action   Action                     `json:"action"`
	Item     string                     `json:"item"`
	Quantity int                        `json:"quantity,omitempty"`
	Price    float64                    `json:"price,omitempty"`
	Stage    catalog.ManufacturingStage `json:"stage,omitempty"`
	Target   string                     `json:"target,omitempty"`
}

// Result reports what a command did.
type Result struct {
	Action   Action              `json:"action"`
	Message  string              `json:"message"`
	Product  *catalog.Product    `json:"product,omitempty"`
	Batch    *catalog.StockBatch `json:"batch,omitempty"`
	Delivery *delivery.Record    `json:"delivery,omitempty"`
}

var (
	// ErrUnknownAction rejects commands the engine does not understand.
	ErrUnknownAction = fmt.Errorf("%w: unrecognized command action", shared.ErrValidation)
	// ErrIncomplete rejects commands missing required fields.
	ErrIncomplete = fmt.Errorf("%w: incomplete command", shared.ErrValidation)
)
