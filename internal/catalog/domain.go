package catalog

import (
	"fmt"
	"time"

	"github.com/surgiflow/surgiflow/internal/shared"
)

// StockStatus classifies finished-goods stock against the reorder threshold.
type StockStatus string

const (
	// StatusInStock means stock sits above the reorder threshold.
	StatusInStock StockStatus = "IN_STOCK"
	// StatusLowStock means stock is positive but at or below the threshold.
	StatusLowStock StockStatus = "LOW_STOCK"
	// StatusOutOfStock means stock is exhausted.
	StatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

// ManufacturingStage is one step of the fixed production pipeline.
type ManufacturingStage string

const (
	StageForging       ManufacturingStage = "FORGING"
	StageMachining     ManufacturingStage = "MACHINING"
	StagePolishing     ManufacturingStage = "POLISHING"
	StageCleaning      ManufacturingStage = "CLEANING"
	StageQC            ManufacturingStage = "QC"
	StageSterilization ManufacturingStage = "STERILIZATION"
	// StagePacked is terminal; a packed batch folds into finished goods.
	StagePacked ManufacturingStage = "PACKED"
)

// QCStatus is the outcome of a single inspection.
type QCStatus string

const (
	QCPassed   QCStatus = "PASSED"
	QCRejected QCStatus = "REJECTED"
	QCRework   QCStatus = "REWORK"
)

// QCRecord is one entry of a batch's append-only inspection history.
type QCRecord struct {
	InspectorID string    `json:"inspectorId"`
	Timestamp   time.Time `json:"timestamp"`
	Status      QCStatus  `json:"status"`
	Notes       string    `json:"notes,omitempty"`
}

// StockBatch is a quantity of one product manufactured together. It lives
// in the in-progress set until it reaches PACKED, then moves to the owning
// product's batch list; it exists in exactly one of the two, never both.
type StockBatch struct {
	ID                string             `json:"id"`
	ProductID         string             `json:"productId"`
	MfgDate           time.Time          `json:"mfgDate"`
	Quantity          int                `json:"quantity"`
	Location          string             `json:"location"`
	Stage             ManufacturingStage `json:"stage"`
	RawMaterialSource string             `json:"rawMaterialSource,omitempty"`
	QCHistory         []QCRecord         `json:"qcHistory"`
	IsRecalled        bool               `json:"isRecalled,omitempty"`
}

// PricePoint is one entry of a product's append-only price history.
type PricePoint struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// WarehouseLocation is the physical slot of a product.
type WarehouseLocation struct {
	Aisle string `json:"aisle"`
	Rack  string `json:"rack"`
	Shelf string `json:"shelf"`
	Bin   string `json:"bin"`
}

// Identity renders the slot as a wayfinding string.
func (l WarehouseLocation) Identity() string {
	return fmt.Sprintf("%s-%s-%s-%s", l.Aisle, l.Rack, l.Shelf, l.Bin)
}

// Product is a finished-goods catalog record. StockStatus is derived from
// Stock and MinimumThreshold after every mutation and is never
// authoritative on its own.
type Product struct {
	ID                string            `json:"id"`
	SKU               string            `json:"sku"`
	Name              string            `json:"name"`
	Category          string            `json:"category"`
	Specialty         string            `json:"specialty,omitempty"`
	Stock             int               `json:"stock"`
	SafetyStock       int               `json:"safetyStock"`
	MinimumThreshold  int               `json:"minimum_threshold"`
	StockStatus       StockStatus       `json:"stock_status"`
	Price             float64           `json:"price"`
	PriceHistory      []PricePoint      `json:"priceHistory"`
	WarehouseLocation WarehouseLocation `json:"warehouseLocation"`
	WarehouseIdentity string            `json:"warehouseIdentity,omitempty"`
	Batches           []StockBatch      `json:"batches,omitempty"`
	Velocity          float64           `json:"velocity,omitempty"`
	LastUpdated       time.Time         `json:"lastUpdated"`
}

var (
	// ErrProductNotFound indicates an operation referenced an unknown product id.
	ErrProductNotFound = fmt.Errorf("product %w", shared.ErrNotFound)
	// ErrBatchNotFound indicates an unknown packed batch id.
	ErrBatchNotFound = fmt.Errorf("batch %w", shared.ErrNotFound)
	// ErrMissingID indicates a product without an id.
	ErrMissingID = fmt.Errorf("%w: product id required", shared.ErrValidation)
	// ErrInvalidPrice indicates a negative price.
	ErrInvalidPrice = fmt.Errorf("%w: price must be >= 0", shared.ErrValidation)
	// ErrEmptyIdentifier indicates a blank item reference.
	ErrEmptyIdentifier = fmt.Errorf("%w: item identifier required", shared.ErrValidation)
)
