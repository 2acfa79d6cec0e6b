package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/surgiflow/surgiflow/internal/catalog"
	"github.com/surgiflow/surgiflow/internal/delivery"
	"github.com/surgiflow/surgiflow/internal/production"
)

// Dispatcher routes structured commands to the engine services. Commands
// that cannot be honored leave no state behind.
type Dispatcher struct {
	ledger     *catalog.Service
	production *production.Service
	deliveries *delivery.Service
	logger     *slog.Logger
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(ledger *catalog.Service, prod *production.Service, deliveries *delivery.Service, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{ledger: ledger, production: prod, deliveries: deliveries, logger: logger}
}

// Execute runs one command. ADD resolves its item loosely and may create
// a product; every other item-bearing action requires an existing
// product or batch.
func (d *Dispatcher) Execute(ctx context.Context, cmd Command) (Result, error) {
	switch cmd.Action {
	case ActionAdd:
		return d.add(ctx, cmd)
	case ActionRemove:
		return d.remove(ctx, cmd)
	case ActionUpdatePrice:
		return d.updatePrice(ctx, cmd)
	case ActionDispatch:
		return d.dispatch(ctx, cmd)
	case ActionMoveStage:
		return d.moveStage(ctx, cmd)
	case ActionLocate:
		return d.locate(ctx, cmd)
	case ActionCheckStock:
		return d.checkStock(ctx, cmd)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
}

func (d *Dispatcher) add(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Item == "" || cmd.Quantity <= 0 {
		return Result{}, fmt.Errorf("%w: ADD requires item and positive quantity", ErrIncomplete)
	}
	product, created, err := d.ledger.Resolve(ctx, cmd.Item, cmd.Quantity)
	if err != nil {
		return Result{}, err
	}
	if created {
		return Result{
			Action:  cmd.Action,
			Message: fmt.Sprintf("created %s with stock %d", product.Name, product.Stock),
			Product: &product,
		}, nil
	}
	product, err = d.ledger.AdjustStock(ctx, product.ID, cmd.Quantity)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Action:  cmd.Action,
		Message: fmt.Sprintf("added %d to %s, stock now %d", cmd.Quantity, product.Name, product.Stock),
		Product: &product,
	}, nil
}

func (d *Dispatcher) remove(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Item == "" || cmd.Quantity <= 0 {
		return Result{}, fmt.Errorf("%w: REMOVE requires item and positive quantity", ErrIncomplete)
	}
	product, err := d.ledger.Lookup(ctx, cmd.Item)
	if err != nil {
		return Result{}, err
	}
	product, err = d.ledger.AdjustStock(ctx, product.ID, -cmd.Quantity)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Action:  cmd.Action,
		Message: fmt.Sprintf("removed %d from %s, stock now %d", cmd.Quantity, product.Name, product.Stock),
		Product: &product,
	}, nil
}

func (d *Dispatcher) updatePrice(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Item == "" || cmd.Price <= 0 {
		return Result{}, fmt.Errorf("%w: UPDATE_PRICE requires item and positive price", ErrIncomplete)
	}
	product, err := d.ledger.Lookup(ctx, cmd.Item)
	if err != nil {
		return Result{}, err
	}
	product, err = d.ledger.UpdatePrice(ctx, product.ID, cmd.Price)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Action:  cmd.Action,
		Message: fmt.Sprintf("price of %s set to %.2f", product.Name, product.Price),
		Product: &product,
	}, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, cmd Command) (Result, error) {
	recipient := cmd.Target
	if recipient == "" {
		recipient = cmd.Item
	}
	if recipient == "" {
		return Result{}, fmt.Errorf("%w: DISPATCH requires a recipient", ErrIncomplete)
	}
	record, err := d.deliveries.Dispatch(ctx, "", recipient)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Action:   cmd.Action,
		Message:  fmt.Sprintf("delivery %s queued for %s", record.ID, record.Recipient),
		Delivery: &record,
	}, nil
}

func (d *Dispatcher) moveStage(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Item == "" || cmd.Stage == "" {
		return Result{}, fmt.Errorf("%w: MOVE_STAGE requires item and stage", ErrIncomplete)
	}
	if !production.ValidStage(cmd.Stage) {
		return Result{}, fmt.Errorf("%w: %q", production.ErrUnknownStage, cmd.Stage)
	}
	batch, err := d.findBatch(ctx, cmd.Item)
	if err != nil {
		return Result{}, err
	}
	batch.Stage = cmd.Stage
	advanced, err := d.production.Advance(ctx, batch)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Action:  cmd.Action,
		Message: fmt.Sprintf("batch %s moved to %s", advanced.ID, advanced.Stage),
		Batch:   &advanced,
	}, nil
}

func (d *Dispatcher) locate(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Item == "" {
		return Result{}, fmt.Errorf("%w: LOCATE requires item", ErrIncomplete)
	}
	product, err := d.ledger.Lookup(ctx, cmd.Item)
	if err != nil {
		return Result{}, err
	}
	identity := product.WarehouseIdentity
	if identity == "" {
		identity = product.WarehouseLocation.Identity()
	}
	return Result{
		Action:  cmd.Action,
		Message: fmt.Sprintf("%s is at %s", product.Name, identity),
		Product: &product,
	}, nil
}

func (d *Dispatcher) checkStock(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Item == "" {
		return Result{}, fmt.Errorf("%w: CHECK_STOCK requires item", ErrIncomplete)
	}
	product, err := d.ledger.Lookup(ctx, cmd.Item)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Action:  cmd.Action,
		Message: fmt.Sprintf("%s: %d on hand (%s)", product.Name, product.Stock, product.StockStatus),
		Product: &product,
	}, nil
}

// findBatch matches an in-progress batch by id, falling back to the
// first batch (by id order) of the product the item resolves to.
func (d *Dispatcher) findBatch(ctx context.Context, item string) (catalog.StockBatch, error) {
	batches, err := d.production.List(ctx)
	if err != nil {
		return catalog.StockBatch{}, err
	}
	for _, b := range batches {
		if b.ID == item {
			return b, nil
		}
	}
	product, err := d.ledger.Lookup(ctx, item)
	if err != nil {
		return catalog.StockBatch{}, err
	}
	var best *catalog.StockBatch
	for i := range batches {
		if batches[i].ProductID != product.ID {
			continue
		}
		if best == nil || batches[i].ID < best.ID {
			best = &batches[i]
		}
	}
	if best == nil {
		return catalog.StockBatch{}, production.ErrBatchNotFound
	}
	return *best, nil
}
