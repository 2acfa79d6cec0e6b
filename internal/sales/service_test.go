package sales

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/surgiflow/surgiflow/internal/catalog"
	"github.com/surgiflow/surgiflow/internal/store"
)

func newTestService(t *testing.T, products ...catalog.Product) (*Service, *catalog.Service) {
	t.Helper()
	backend := store.NewMemory()
	ledger := catalog.NewService(backend, slog.Default(), catalog.ServiceConfig{})
	for _, p := range products {
		_, err := ledger.Upsert(context.Background(), p)
		require.NoError(t, err)
	}
	return NewService(backend, ledger, slog.Default()), ledger
}

func TestCommitSale(t *testing.T) {
	svc, ledger := newTestService(t,
		catalog.Product{ID: "SF-001", Name: "Micro-Scalpel", Stock: 10, MinimumThreshold: 5, Price: 12.50},
		catalog.Product{ID: "SF-002", Name: "Adson Forceps", Stock: 1, MinimumThreshold: 5, Price: 45},
	)
	ctx := context.Background()

	a, err := ledger.Get(ctx, "SF-001")
	require.NoError(t, err)
	b, err := ledger.Get(ctx, "SF-002")
	require.NoError(t, err)

	tx, err := svc.CommitSale(ctx, Transaction{
		Items: []LineItem{
			{Product: a, Quantity: 3},
			{Product: b, Quantity: 2},
		},
		CustomerName: "City General Hospital",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tx.ID)
	require.False(t, tx.Timestamp.IsZero())
	require.InDelta(t, 127.50, tx.Subtotal, 0.0001)
	require.InDelta(t, 127.50*gstRate, tx.GSTAmount, 0.0001)
	require.InDelta(t, 127.50*1.18, tx.Total, 0.0001)

	a, err = ledger.Get(ctx, "SF-001")
	require.NoError(t, err)
	require.Equal(t, 7, a.Stock)
	require.InDelta(t, 1.1, a.Velocity, 0.0001)

	// Oversold line clamps at zero.
	b, err = ledger.Get(ctx, "SF-002")
	require.NoError(t, err)
	require.Equal(t, 0, b.Stock)
	require.Equal(t, catalog.StatusOutOfStock, b.StockStatus)
}

func TestCommitSaleLedgerOrdering(t *testing.T) {
	svc, ledger := newTestService(t,
		catalog.Product{ID: "SF-001", Name: "Micro-Scalpel", Stock: 10, Price: 12.50},
	)
	ctx := context.Background()

	p, err := ledger.Get(ctx, "SF-001")
	require.NoError(t, err)

	first, err := svc.CommitSale(ctx, Transaction{Items: []LineItem{{Product: p, Quantity: 1}}})
	require.NoError(t, err)
	second, err := svc.CommitSale(ctx, Transaction{Items: []LineItem{{Product: p, Quantity: 1}}})
	require.NoError(t, err)

	txs, err := svc.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	require.Equal(t, second.ID, txs[0].ID)
	require.Equal(t, first.ID, txs[1].ID)
}

func TestCommitSaleValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CommitSale(ctx, Transaction{})
	require.ErrorIs(t, err, ErrEmptyItems)

	_, err = svc.CommitSale(ctx, Transaction{Items: []LineItem{{Quantity: 0}}})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCommitSalePreservesSuppliedTotals(t *testing.T) {
	svc, ledger := newTestService(t,
		catalog.Product{ID: "SF-001", Name: "Micro-Scalpel", Stock: 10, Price: 12.50},
	)
	ctx := context.Background()

	p, err := ledger.Get(ctx, "SF-001")
	require.NoError(t, err)

	tx, err := svc.CommitSale(ctx, Transaction{
		Items:    []LineItem{{Product: p, Quantity: 2}},
		Subtotal: 20,
		Total:    23.60,
	})
	require.NoError(t, err)
	require.InDelta(t, 23.60, tx.Total, 0.0001)
	require.InDelta(t, 20.0, tx.Subtotal, 0.0001)
}

func TestSaveQuotationIsStockNeutral(t *testing.T) {
	svc, ledger := newTestService(t,
		catalog.Product{ID: "SF-001", Name: "Micro-Scalpel", Stock: 10, Price: 12.50},
	)
	ctx := context.Background()

	p, err := ledger.Get(ctx, "SF-001")
	require.NoError(t, err)

	quote, err := svc.SaveQuotation(ctx, Quotation{
		SetName: "Ortho Starter Set",
		Items:   []LineItem{{Product: p, Quantity: 4}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, quote.ID)
	require.InDelta(t, 50.0, quote.Total, 0.0001)

	p, err = ledger.Get(ctx, "SF-001")
	require.NoError(t, err)
	require.Equal(t, 10, p.Stock)
	require.Zero(t, p.Velocity)

	quotes, err := svc.ListQuotations(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	_, err = svc.SaveQuotation(ctx, Quotation{SetName: "Empty"})
	require.ErrorIs(t, err, ErrEmptyItems)
}
