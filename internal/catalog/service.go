package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/surgiflow/surgiflow/internal/store"
)

const (
	defaultVelocityBump = 0.1
	velocityFloor       = 1.0
)

// SaleLine is a stock decrement owed to one committed sale line item.
type SaleLine struct {
	ProductID string
	Quantity  int
}

// Service owns the product collection. Every mutation recomputes the
// derived stock status and refreshes the lastUpdated stamp before
// persisting; the whole product set is rewritten atomically per call.
type Service struct {
	products     *store.Collection[Product]
	logger       *slog.Logger
	velocityBump float64
}

// ServiceConfig groups optional settings.
type ServiceConfig struct {
	// VelocityBump is added to a product's demand signal on every sale
	// line. It must be positive; every sale nudges velocity upward,
	// never downward.
	VelocityBump float64
}

// NewService builds the stock ledger over a store backend.
func NewService(backend store.Backend, logger *slog.Logger, cfg ServiceConfig) *Service {
	bump := cfg.VelocityBump
	if bump <= 0 {
		bump = defaultVelocityBump
	}
	return &Service{
		products:     store.NewCollection[Product](backend, store.CollectionProducts),
		logger:       logger,
		velocityBump: bump,
	}
}

// List returns the full catalog with status recomputed on read.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	products, err := s.products.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].StockStatus = Status(products[i].Stock, products[i].MinimumThreshold)
	}
	return products, nil
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// Upsert replaces the product with the given id, inserting when absent.
func (s *Service) Upsert(ctx context.Context, product Product) (Product, error) {
	if product.ID == "" {
		return Product{}, ErrMissingID
	}
	stamped := refresh(product, time.Now().UTC())
	_, err := s.products.Update(ctx, func(items []Product) ([]Product, error) {
		for i := range items {
			if items[i].ID == stamped.ID {
				items[i] = stamped
				return items, nil
			}
		}
		return append(items, stamped), nil
	})
	if err != nil {
		return Product{}, err
	}
	return stamped, nil
}

// AdjustStock applies a delta to a product's stock, clamping at zero.
// Negative deltas come from sales, positive ones from packed batches.
func (s *Service) AdjustStock(ctx context.Context, id string, delta int) (Product, error) {
	return s.mutate(ctx, id, func(p *Product) {
		p.Stock += delta
	})
}

// ApplyVelocityBump nudges the demand-velocity signal upward. A product
// with no signal yet starts from the floor of 1.
func (s *Service) ApplyVelocityBump(ctx context.Context, id string) (Product, error) {
	return s.mutate(ctx, id, func(p *Product) {
		bumpVelocity(p, s.velocityBump)
	})
}

// UpdatePrice sets a new price and appends it to the append-only price
// history.
func (s *Service) UpdatePrice(ctx context.Context, id string, price float64) (Product, error) {
	if price < 0 {
		return Product{}, ErrInvalidPrice
	}
	now := time.Now().UTC()
	return s.mutate(ctx, id, func(p *Product) {
		p.Price = price
		p.PriceHistory = append(p.PriceHistory, PricePoint{Price: price, Timestamp: now})
	})
}

// ApplySale applies all line decrements and velocity bumps of one
// committed sale in a single product-set write, so a reader never sees a
// partially applied sale. A line naming a product that no longer exists
// is skipped: line items carry the product by value, decoupled from
// later catalog mutations.
func (s *Service) ApplySale(ctx context.Context, lines []SaleLine) error {
	now := time.Now().UTC()
	_, err := s.products.Update(ctx, func(items []Product) ([]Product, error) {
		for _, line := range lines {
			found := false
			for i := range items {
				if items[i].ID != line.ProductID {
					continue
				}
				items[i].Stock -= line.Quantity
				bumpVelocity(&items[i], s.velocityBump)
				items[i] = refresh(items[i], now)
				found = true
				break
			}
			if !found && s.logger != nil {
				s.logger.Warn("sale line references unknown product, stock unaffected",
					slog.String("product_id", line.ProductID))
			}
		}
		return items, nil
	})
	return err
}

// AttachPackedBatch credits a packed batch's quantity to its product and
// appends the batch, with its full inspection history, to the product's
// batch list. Both effects land in one product-set write. An unknown
// product id is a reference error; the ledger never auto-creates here.
func (s *Service) AttachPackedBatch(ctx context.Context, batch StockBatch) (Product, error) {
	return s.mutate(ctx, batch.ProductID, func(p *Product) {
		p.Stock += batch.Quantity
		p.Batches = append(p.Batches, batch)
	})
}

// MarkBatchRecalled flags a packed batch on its owning product.
func (s *Service) MarkBatchRecalled(ctx context.Context, batchID string) (Product, error) {
	var recalled Product
	now := time.Now().UTC()
	_, err := s.products.Update(ctx, func(items []Product) ([]Product, error) {
		for i := range items {
			for j := range items[i].Batches {
				if items[i].Batches[j].ID == batchID {
					items[i].Batches[j].IsRecalled = true
					items[i] = refresh(items[i], now)
					recalled = items[i]
					return items, nil
				}
			}
		}
		return nil, ErrBatchNotFound
	})
	if err != nil {
		return Product{}, err
	}
	return recalled, nil
}

// SeedIfEmpty loads the demo catalog when the store holds no products.
func (s *Service) SeedIfEmpty(ctx context.Context) error {
	return s.products.SeedIfEmpty(ctx, seedProducts())
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*Product)) (Product, error) {
	var updated Product
	now := time.Now().UTC()
	_, err := s.products.Update(ctx, func(items []Product) ([]Product, error) {
		for i := range items {
			if items[i].ID == id {
				fn(&items[i])
				items[i] = refresh(items[i], now)
				updated = items[i]
				return items, nil
			}
		}
		return nil, ErrProductNotFound
	})
	if err != nil {
		return Product{}, err
	}
	return updated, nil
}

// refresh restores the product invariants: stock never negative, status
// derived, lastUpdated current.
func refresh(p Product, now time.Time) Product {
	if p.Stock < 0 {
		p.Stock = 0
	}
	p.StockStatus = Status(p.Stock, p.MinimumThreshold)
	p.LastUpdated = now
	return p
}

func bumpVelocity(p *Product, bump float64) {
	if p.Velocity <= 0 {
		p.Velocity = velocityFloor
	}
	p.Velocity += bump
}
