package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// Lookup finds a product by exact id, falling back to a case-folded
// substring match in either direction against the catalog. The fuzzy
// branch is a best-effort heuristic, not a uniqueness guarantee; ties
// break deterministically on shortest name, then lexicographic id.
func (s *Service) Lookup(ctx context.Context, identifier string) (Product, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Product{}, ErrEmptyIdentifier
	}
	products, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	if p, ok := match(products, identifier); ok {
		return p, nil
	}
	return Product{}, fmt.Errorf("%w: %q", ErrProductNotFound, identifier)
}

// Resolve maps an arbitrary item identifier or free-text name to a
// canonical product, synthesizing a new record when nothing matches.
// The auto-create path exists for free-text voice/chat stock entry; it is
// deliberately looser than the batch lifecycle's strict reference policy.
// The returned flag reports whether a product was created.
func (s *Service) Resolve(ctx context.Context, identifier string, quantityHint int) (Product, bool, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Product{}, false, ErrEmptyIdentifier
	}
	if quantityHint < 0 {
		quantityHint = 0
	}
	var resolved Product
	created := false
	_, err := s.products.Update(ctx, func(items []Product) ([]Product, error) {
		if p, ok := match(items, identifier); ok {
			resolved = p
			return items, nil
		}
		resolved = newProduct(identifier, quantityHint, time.Now().UTC())
		created = true
		return append(items, resolved), nil
	})
	if err != nil {
		return Product{}, false, err
	}
	return resolved, created, nil
}

func match(products []Product, identifier string) (Product, bool) {
	for _, p := range products {
		if p.ID == identifier {
			return p, true
		}
	}
	needle := foldCaser.String(identifier)
	best := -1
	for i, p := range products {
		name := foldCaser.String(p.Name)
		if !strings.Contains(name, needle) && !strings.Contains(needle, name) {
			continue
		}
		if best < 0 || better(p, products[best]) {
			best = i
		}
	}
	if best < 0 {
		return Product{}, false
	}
	return products[best], true
}

func better(a, b Product) bool {
	if len(a.Name) != len(b.Name) {
		return len(a.Name) < len(b.Name)
	}
	return a.ID < b.ID
}

func newProduct(name string, stock int, now time.Time) Product {
	id := fmt.Sprintf("SF-%s", strings.ToUpper(uuid.NewString()[:5]))
	p := Product{
		ID:               id,
		SKU:              fmt.Sprintf("SKU-%s", id),
		Name:             name,
		Category:         "General",
		Stock:            stock,
		SafetyStock:      10,
		MinimumThreshold: 10,
		Price:            0,
		PriceHistory:     []PricePoint{},
		WarehouseLocation: WarehouseLocation{
			Aisle: "A", Rack: "01", Shelf: "01", Bin: "01",
		},
	}
	return refresh(p, now)
}
