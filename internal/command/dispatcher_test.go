package command

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/surgiflow/surgiflow/internal/catalog"
	"github.com/surgiflow/surgiflow/internal/delivery"
	"github.com/surgiflow/surgiflow/internal/production"
	"github.com/surgiflow/surgiflow/internal/store"
)

type fixture struct {
	dispatcher *Dispatcher
	ledger     *catalog.Service
	production *production.Service
	deliveries *delivery.Service
}

func newFixture(t *testing.T, products ...catalog.Product) fixture {
	t.Helper()
	backend := store.NewMemory()
	logger := slog.Default()
	ledger := catalog.NewService(backend, logger, catalog.ServiceConfig{})
	for _, p := range products {
		_, err := ledger.Upsert(context.Background(), p)
		require.NoError(t, err)
	}
	prod := production.NewService(backend, ledger, logger)
	deliveries := delivery.NewService(backend, logger)
	return fixture{
		dispatcher: NewDispatcher(ledger, prod, deliveries, logger),
		ledger:     ledger,
		production: prod,
		deliveries: deliveries,
	}
}

func TestExecuteUnknownAction(t *testing.T) {
	f := newFixture(t)

	_, err := f.dispatcher.Execute(context.Background(), Command{Action: ActionUnknown, Item: "scalpel"})
	require.ErrorIs(t, err, ErrUnknownAction)

	_, err = f.dispatcher.Execute(context.Background(), Command{Action: "SELL"})
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestExecuteAddExisting(t *testing.T) {
	f := newFixture(t, catalog.Product{ID: "SF-001", Name: "Micro-Scalpel Elite 45", Stock: 100, MinimumThreshold: 40})
	ctx := context.Background()

	result, err := f.dispatcher.Execute(ctx, Command{Action: ActionAdd, Item: "scalpel", Quantity: 20})
	require.NoError(t, err)
	require.NotNil(t, result.Product)
	require.Equal(t, 120, result.Product.Stock)

	// Incomplete ADD leaves everything untouched.
	_, err = f.dispatcher.Execute(ctx, Command{Action: ActionAdd, Item: "scalpel"})
	require.ErrorIs(t, err, ErrIncomplete)
	p, err := f.ledger.Get(ctx, "SF-001")
	require.NoError(t, err)
	require.Equal(t, 120, p.Stock)
}

func TestExecuteAddCreates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.dispatcher.Execute(ctx, Command{Action: ActionAdd, Item: "Bone Saw", Quantity: 25})
	require.NoError(t, err)
	require.NotNil(t, result.Product)
	require.Equal(t, "Bone Saw", result.Product.Name)
	require.Equal(t, 25, result.Product.Stock)
	require.Equal(t, "General", result.Product.Category)
}

func TestExecuteRemove(t *testing.T) {
	f := newFixture(t, catalog.Product{ID: "SF-001", Name: "Micro-Scalpel Elite 45", Stock: 10, MinimumThreshold: 40})
	ctx := context.Background()

	result, err := f.dispatcher.Execute(ctx, Command{Action: ActionRemove, Item: "scalpel", Quantity: 4})
	require.NoError(t, err)
	require.Equal(t, 6, result.Product.Stock)

	// REMOVE never creates; an unknown item is a reference error.
	_, err = f.dispatcher.Execute(ctx, Command{Action: ActionRemove, Item: "bone saw", Quantity: 1})
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
	all, err := f.ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestExecuteUpdatePrice(t *testing.T) {
	f := newFixture(t, catalog.Product{ID: "SF-001", Name: "Micro-Scalpel Elite 45", Stock: 10, Price: 12.50})
	ctx := context.Background()

	result, err := f.dispatcher.Execute(ctx, Command{Action: ActionUpdatePrice, Item: "scalpel", Price: 14})
	require.NoError(t, err)
	require.InDelta(t, 14.0, result.Product.Price, 0.0001)
	require.Len(t, result.Product.PriceHistory, 1)

	_, err = f.dispatcher.Execute(ctx, Command{Action: ActionUpdatePrice, Item: "scalpel"})
	require.ErrorIs(t, err, ErrIncomplete)
}

func TestExecuteDispatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.dispatcher.Execute(ctx, Command{Action: ActionDispatch, Target: "Mercy Hospital"})
	require.NoError(t, err)
	require.NotNil(t, result.Delivery)
	require.Equal(t, delivery.StatusQueued, result.Delivery.Status)
	require.Equal(t, "Mercy Hospital", result.Delivery.Recipient)

	// Falls back to the item field when no target is given.
	result, err = f.dispatcher.Execute(ctx, Command{Action: ActionDispatch, Item: "Cleveland Clinic"})
	require.NoError(t, err)
	require.Equal(t, "Cleveland Clinic", result.Delivery.Recipient)

	_, err = f.dispatcher.Execute(ctx, Command{Action: ActionDispatch})
	require.ErrorIs(t, err, ErrIncomplete)
}

func TestExecuteMoveStage(t *testing.T) {
	f := newFixture(t, catalog.Product{ID: "SF-001", Name: "Micro-Scalpel Elite 45", Stock: 100})
	ctx := context.Background()

	_, err := f.production.Advance(ctx, catalog.StockBatch{
		ID: "WIP-200", ProductID: "SF-001", Quantity: 50, Stage: catalog.StageForging,
	})
	require.NoError(t, err)

	// By batch id.
	result, err := f.dispatcher.Execute(ctx, Command{Action: ActionMoveStage, Item: "WIP-200", Stage: catalog.StageMachining})
	require.NoError(t, err)
	require.Equal(t, catalog.StageMachining, result.Batch.Stage)

	// By product name, resolving to that product's batch.
	result, err = f.dispatcher.Execute(ctx, Command{Action: ActionMoveStage, Item: "scalpel", Stage: catalog.StagePacked})
	require.NoError(t, err)
	require.Equal(t, "WIP-200", result.Batch.ID)

	p, err := f.ledger.Get(ctx, "SF-001")
	require.NoError(t, err)
	require.Equal(t, 150, p.Stock)

	_, err = f.dispatcher.Execute(ctx, Command{Action: ActionMoveStage, Item: "WIP-200", Stage: "SHIPPED"})
	require.ErrorIs(t, err, production.ErrUnknownStage)
}

func TestExecuteLocateAndCheckStock(t *testing.T) {
	f := newFixture(t, catalog.Product{
		ID: "SF-001", Name: "Micro-Scalpel Elite 45", Stock: 100, MinimumThreshold: 40,
		WarehouseLocation: catalog.WarehouseLocation{Aisle: "A", Rack: "01", Shelf: "02", Bin: "A1"},
	})
	ctx := context.Background()

	result, err := f.dispatcher.Execute(ctx, Command{Action: ActionLocate, Item: "scalpel"})
	require.NoError(t, err)
	require.Contains(t, result.Message, "A-01-02-A1")

	result, err = f.dispatcher.Execute(ctx, Command{Action: ActionCheckStock, Item: "scalpel"})
	require.NoError(t, err)
	require.Contains(t, result.Message, "100")
	require.Contains(t, result.Message, string(catalog.StatusInStock))
}
