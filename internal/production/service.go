package production

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/surgiflow/surgiflow/internal/catalog"
	"github.com/surgiflow/surgiflow/internal/store"
)

// Service owns the in-progress batch set. A batch is exclusively held
// here until it reaches the terminal stage, at which point ownership
// transfers to the product's batch list.
type Service struct {
	wip    *store.Collection[catalog.StockBatch]
	ledger *catalog.Service
	logger *slog.Logger
}

// NewService builds the batch lifecycle service.
func NewService(backend store.Backend, ledger *catalog.Service, logger *slog.Logger) *Service {
	return &Service{
		wip:    store.NewCollection[catalog.StockBatch](backend, store.CollectionWIP),
		ledger: ledger,
		logger: logger,
	}
}

// List returns the in-progress batch set.
func (s *Service) List(ctx context.Context) ([]catalog.StockBatch, error) {
	return s.wip.Load(ctx)
}

// Advance persists a batch's externally supplied stage into the
// in-progress set, inserting on a new id and replacing otherwise. The
// machine does not reject stage regressions; only the terminal side
// effect is enforced. On PACKED the batch is credited to finished-goods
// stock, appended to the owning product's batch list and removed from the
// in-progress set, in that order, so a crash cannot double count: until
// the product write lands the batch is only in-progress, and afterwards
// the in-progress record is deleted before anything else happens.
func (s *Service) Advance(ctx context.Context, batch catalog.StockBatch) (catalog.StockBatch, error) {
	if err := validateBatch(batch); err != nil {
		return catalog.StockBatch{}, err
	}
	if batch.MfgDate.IsZero() {
		batch.MfgDate = time.Now().UTC()
	}
	_, err := s.wip.Update(ctx, func(items []catalog.StockBatch) ([]catalog.StockBatch, error) {
		for i := range items {
			if items[i].ID == batch.ID {
				items[i] = batch
				return items, nil
			}
		}
		return append(items, batch), nil
	})
	if err != nil {
		return catalog.StockBatch{}, err
	}
	if batch.Stage != catalog.StagePacked {
		return batch, nil
	}
	if _, err := s.ledger.AttachPackedBatch(ctx, batch); err != nil {
		// Unknown product is a reference error. The lifecycle never
		// auto-creates products; the batch stays in-progress so no
		// stock was credited.
		return catalog.StockBatch{}, err
	}
	_, err = s.wip.Update(ctx, func(items []catalog.StockBatch) ([]catalog.StockBatch, error) {
		kept := items[:0]
		for _, b := range items {
			if b.ID != batch.ID {
				kept = append(kept, b)
			}
		}
		return kept, nil
	})
	if err != nil {
		return catalog.StockBatch{}, err
	}
	s.logger.Info("batch packed into finished goods",
		slog.String("batch_id", batch.ID),
		slog.String("product_id", batch.ProductID),
		slog.Int("quantity", batch.Quantity))
	return batch, nil
}

// RecordQC appends an inspection record to an in-progress batch's
// append-only history.
func (s *Service) RecordQC(ctx context.Context, batchID string, record catalog.QCRecord) (catalog.StockBatch, error) {
	if record.InspectorID == "" {
		return catalog.StockBatch{}, ErrInvalidQC
	}
	switch record.Status {
	case catalog.QCPassed, catalog.QCRejected, catalog.QCRework:
	default:
		return catalog.StockBatch{}, ErrInvalidQC
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	var updated catalog.StockBatch
	_, err := s.wip.Update(ctx, func(items []catalog.StockBatch) ([]catalog.StockBatch, error) {
		for i := range items {
			if items[i].ID == batchID {
				items[i].QCHistory = append(items[i].QCHistory, record)
				updated = items[i]
				return items, nil
			}
		}
		return nil, ErrBatchNotFound
	})
	if err != nil {
		return catalog.StockBatch{}, err
	}
	return updated, nil
}

// Recall flags a batch as recalled, whether it is still in progress or
// already packed into a product's batch list.
func (s *Service) Recall(ctx context.Context, batchID string) error {
	var found bool
	_, err := s.wip.Update(ctx, func(items []catalog.StockBatch) ([]catalog.StockBatch, error) {
		for i := range items {
			if items[i].ID == batchID {
				items[i].IsRecalled = true
				found = true
				break
			}
		}
		return items, nil
	})
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	if _, err := s.ledger.MarkBatchRecalled(ctx, batchID); err != nil {
		if errors.Is(err, catalog.ErrBatchNotFound) {
			return ErrBatchNotFound
		}
		return err
	}
	return nil
}

// SeedIfEmpty loads the demo in-progress batches when the store holds none.
func (s *Service) SeedIfEmpty(ctx context.Context) error {
	return s.wip.SeedIfEmpty(ctx, seedBatches())
}

func validateBatch(batch catalog.StockBatch) error {
	if batch.ID == "" {
		return ErrMissingID
	}
	if batch.ProductID == "" {
		return ErrMissingProduct
	}
	if batch.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !ValidStage(batch.Stage) {
		return ErrUnknownStage
	}
	return nil
}

func seedBatches() []catalog.StockBatch {
	now := time.Now().UTC()
	return []catalog.StockBatch{
		{
			ID:                "WIP-101",
			ProductID:         "SF-001",
			MfgDate:           now,
			Quantity:          50,
			Location:          "ZONE-FORGE",
			Stage:             catalog.StageForging,
			RawMaterialSource: "Titanium-A12",
			QCHistory:         []catalog.QCRecord{},
		},
		{
			ID:                "WIP-102",
			ProductID:         "SF-002",
			MfgDate:           now,
			Quantity:          30,
			Location:          "ZONE-CLEAN",
			Stage:             catalog.StageCleaning,
			RawMaterialSource: "Steel-316L",
			QCHistory:         []catalog.QCRecord{},
		},
	}
}
