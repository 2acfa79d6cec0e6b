// Package sales commits sale transactions against the stock ledger and
// keeps the stock-neutral quotation ledger.
package sales

import (
	"fmt"
	"time"

	"github.com/surgiflow/surgiflow/internal/catalog"
	"github.com/surgiflow/surgiflow/internal/shared"
)

// GST rate applied when a transaction arrives without computed totals.
const gstRate = 0.18

// LineItem captures the product by value at sale time, decoupled from
// later catalog mutations.
type LineItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Transaction is an immutable sales record. The ledger is append-only
// and ordered newest first; dashboards and invoice listings depend on
// that ordering.
type Transaction struct {
	ID            string     `json:"id"`
	Items         []LineItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	GSTAmount     float64    `json:"gstAmount"`
	Total         float64    `json:"total"`
	CustomerName  string     `json:"customerName"`
	CustomerGSTIN string     `json:"customerGst,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
	Synced        bool       `json:"synced"`
}

// Quotation shares the transaction's line shape but never affects stock.
type Quotation struct {
	ID         string     `json:"id"`
	SetName    string     `json:"setName"`
	Items      []LineItem `json:"items"`
	Total      float64    `json:"total"`
	ValidUntil time.Time  `json:"validUntil"`
	CreatedAt  time.Time  `json:"createdAt"`
	Notes      string     `json:"notes,omitempty"`
}

var (
	// ErrEmptyItems indicates a sale or quotation without line items.
	ErrEmptyItems = fmt.Errorf("%w: at least one line item required", shared.ErrValidation)
	// ErrInvalidQuantity indicates a non-positive line quantity.
	ErrInvalidQuantity = fmt.Errorf("%w: line quantity must be > 0", shared.ErrValidation)
)
