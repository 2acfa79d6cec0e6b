package sales

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/surgiflow/surgiflow/internal/catalog"
	"github.com/surgiflow/surgiflow/internal/store"
)

// Service validates and commits sales and quotations.
type Service struct {
	txs    *store.Collection[Transaction]
	quotes *store.Collection[Quotation]
	ledger *catalog.Service
	logger *slog.Logger
}

// NewService builds the transaction processor.
func NewService(backend store.Backend, ledger *catalog.Service, logger *slog.Logger) *Service {
	return &Service{
		txs:    store.NewCollection[Transaction](backend, store.CollectionTransactions),
		quotes: store.NewCollection[Quotation](backend, store.CollectionQuotations),
		ledger: ledger,
		logger: logger,
	}
}

// ListTransactions returns the sales ledger, newest first.
func (s *Service) ListTransactions(ctx context.Context) ([]Transaction, error) {
	return s.txs.Load(ctx)
}

// ListQuotations returns the quotation ledger, newest first.
func (s *Service) ListQuotations(ctx context.Context) ([]Quotation, error) {
	return s.quotes.Load(ctx)
}

// CommitSale appends the transaction to the head of the ledger, then
// decrements stock and bumps velocity for every line item in one product
// write. The ledger lands before the stock effect so a reader never sees
// stock reduced without its sale. Requested quantities above available
// stock clamp at zero rather than failing; oversell is an accepted
// business outcome, not an error.
func (s *Service) CommitSale(ctx context.Context, tx Transaction) (Transaction, error) {
	if len(tx.Items) == 0 {
		return Transaction{}, ErrEmptyItems
	}
	for _, item := range tx.Items {
		if item.Quantity <= 0 {
			return Transaction{}, ErrInvalidQuantity
		}
	}
	if tx.ID == "" {
		tx.ID = fmt.Sprintf("TXN-%s", uuid.NewString())
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now().UTC()
	}
	if tx.Total == 0 {
		tx.Subtotal = 0
		for _, item := range tx.Items {
			tx.Subtotal += item.Product.Price * float64(item.Quantity)
		}
		tx.GSTAmount = tx.Subtotal * gstRate
		tx.Total = tx.Subtotal + tx.GSTAmount
	}

	if _, err := s.txs.Update(ctx, func(items []Transaction) ([]Transaction, error) {
		return append([]Transaction{tx}, items...), nil
	}); err != nil {
		return Transaction{}, err
	}

	lines := make([]catalog.SaleLine, 0, len(tx.Items))
	for _, item := range tx.Items {
		lines = append(lines, catalog.SaleLine{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		})
	}
	if err := s.ledger.ApplySale(ctx, lines); err != nil {
		return Transaction{}, err
	}

	s.logger.Info("sale committed",
		slog.String("tx_id", tx.ID),
		slog.Int("lines", len(tx.Items)),
		slog.Float64("total", tx.Total))
	return tx, nil
}

// SaveQuotation prepends a quotation to its own ledger. Quotations never
// mutate stock.
func (s *Service) SaveQuotation(ctx context.Context, quote Quotation) (Quotation, error) {
	if len(quote.Items) == 0 {
		return Quotation{}, ErrEmptyItems
	}
	if quote.ID == "" {
		quote.ID = fmt.Sprintf("QT-%s", uuid.NewString())
	}
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now().UTC()
	}
	if quote.Total == 0 {
		for _, item := range quote.Items {
			quote.Total += item.Product.Price * float64(item.Quantity)
		}
	}
	if _, err := s.quotes.Update(ctx, func(items []Quotation) ([]Quotation, error) {
		return append([]Quotation{quote}, items...), nil
	}); err != nil {
		return Quotation{}, err
	}
	return quote, nil
}
