package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/surgiflow/surgiflow/internal/store"
)

// Service owns the delivery record collection.
type Service struct {
	deliveries *store.Collection[Record]
	logger     *slog.Logger
}

// NewService builds the delivery tracker.
func NewService(backend store.Backend, logger *slog.Logger) *Service {
	return &Service{
		deliveries: store.NewCollection[Record](backend, store.CollectionDeliveries),
		logger:     logger,
	}
}

// List returns all delivery records.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.deliveries.Load(ctx)
}

// SaveAll replaces the delivery set with externally driven state. Every
// record must carry a valid status, and a record that already exists may
// only keep or advance its status. Records with a changed status get a
// fresh lastUpdate stamp. The caller's slice is never written to; the
// stamped set is returned, and a rejected save leaves both the input and
// the stored state untouched.
func (s *Service) SaveAll(ctx context.Context, records []Record) ([]Record, error) {
	now := time.Now().UTC()
	saved := make([]Record, len(records))
	copy(saved, records)
	_, err := s.deliveries.Update(ctx, func(existing []Record) ([]Record, error) {
		prior := make(map[string]Record, len(existing))
		for _, r := range existing {
			prior[r.ID] = r
		}
		for i := range saved {
			if saved[i].ID == "" {
				return nil, ErrMissingID
			}
			if !saved[i].Status.IsValid() {
				return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, saved[i].Status)
			}
			old, ok := prior[saved[i].ID]
			if ok && saved[i].Status.Before(old.Status) {
				return nil, fmt.Errorf("%w: %s -> %s", ErrStatusRegression, old.Status, saved[i].Status)
			}
			if !ok || old.Status != saved[i].Status {
				saved[i].LastUpdate = now
			}
		}
		return saved, nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Dispatch queues a new delivery for an order.
func (s *Service) Dispatch(ctx context.Context, orderID, recipient string) (Record, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return Record{}, ErrMissingRecipient
	}
	record := Record{
		ID:         fmt.Sprintf("LOG-%s", strings.ToUpper(uuid.NewString()[:4])),
		OrderID:    orderID,
		Recipient:  recipient,
		Status:     StatusQueued,
		ETA:        "pending",
		LastUpdate: time.Now().UTC(),
	}
	if record.OrderID == "" {
		record.OrderID = fmt.Sprintf("ORD-%s", strings.ToUpper(uuid.NewString()[:4]))
	}
	_, err := s.deliveries.Update(ctx, func(items []Record) ([]Record, error) {
		return append(items, record), nil
	})
	if err != nil {
		return Record{}, err
	}
	s.logger.Info("delivery queued",
		slog.String("delivery_id", record.ID),
		slog.String("recipient", recipient))
	return record, nil
}

// SeedIfEmpty loads the demo deliveries when the store holds none.
func (s *Service) SeedIfEmpty(ctx context.Context) error {
	return s.deliveries.SeedIfEmpty(ctx, seedRecords())
}

func seedRecords() []Record {
	now := time.Now().UTC()
	return []Record{
		{
			ID:         "LOG-AX92",
			OrderID:    "ORD-9921",
			Recipient:  "Mayo Clinic - Surgery Unit 4",
			Status:     StatusDispatched,
			ETA:        "12 mins",
			LastUpdate: now,
		},
		{
			ID:         "LOG-BT44",
			OrderID:    "ORD-8842",
			Recipient:  "St. Jude Children Hospital",
			Status:     StatusOutForDelivery,
			ETA:        "4 mins",
			LastUpdate: now,
		},
		{
			ID:         "LOG-ZC01",
			OrderID:    "ORD-7712",
			Recipient:  "Cleveland Clinic Foundation",
			Status:     StatusDelivered,
			ETA:        "Arrived",
			LastUpdate: now.Add(-time.Hour),
		},
	}
}
