package delivery

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/surgiflow/surgiflow/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(store.NewMemory(), slog.Default())
}

func TestSaveAllAdvancesStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	stale := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	_, err := svc.SaveAll(ctx, []Record{
		{ID: "LOG-1000", OrderID: "ORD-1", Recipient: "Mercy Hospital", Status: StatusQueued, LastUpdate: stale},
	})
	require.NoError(t, err)

	saved, err := svc.SaveAll(ctx, []Record{
		{ID: "LOG-1000", OrderID: "ORD-1", Recipient: "Mercy Hospital", Status: StatusOutForDelivery, ETA: "8 mins", LastUpdate: stale},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	// Status changed, so the stamp was refreshed.
	require.True(t, saved[0].LastUpdate.After(stale))

	records, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, StatusOutForDelivery, records[0].Status)
}

func TestSaveAllLeavesInputUntouched(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveAll(ctx, []Record{
		{ID: "LOG-1001", Recipient: "Cleveland Clinic", Status: StatusOutForDelivery},
	})
	require.NoError(t, err)

	stale := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	input := []Record{
		{ID: "LOG-1000", Recipient: "Mercy Hospital", Status: StatusQueued, LastUpdate: stale},
		{ID: "LOG-1001", Recipient: "Cleveland Clinic", Status: StatusDispatched, LastUpdate: stale},
	}

	// The second record regresses, so the save is rejected. The first
	// element must not come back restamped.
	_, err = svc.SaveAll(ctx, input)
	require.ErrorIs(t, err, ErrStatusRegression)
	require.Equal(t, stale, input[0].LastUpdate)
	require.Equal(t, stale, input[1].LastUpdate)

	// The accepted path also returns a fresh slice instead of writing
	// through the caller's.
	saved, err := svc.SaveAll(ctx, input[:1])
	require.NoError(t, err)
	require.True(t, saved[0].LastUpdate.After(stale))
	require.Equal(t, stale, input[0].LastUpdate)
}

func TestSaveAllRejectsRegression(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveAll(ctx, []Record{
		{ID: "LOG-1000", Recipient: "Mercy Hospital", Status: StatusOutForDelivery},
	})
	require.NoError(t, err)

	_, err = svc.SaveAll(ctx, []Record{
		{ID: "LOG-1000", Recipient: "Mercy Hospital", Status: StatusDispatched},
	})
	require.ErrorIs(t, err, ErrStatusRegression)

	// A rejected save leaves the prior state intact.
	records, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, StatusOutForDelivery, records[0].Status)
}

func TestSaveAllValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveAll(ctx, []Record{{Recipient: "Mercy Hospital", Status: StatusQueued}})
	require.ErrorIs(t, err, ErrMissingID)

	_, err = svc.SaveAll(ctx, []Record{{ID: "LOG-1000", Status: "LOST"}})
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestDispatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	record, err := svc.Dispatch(ctx, "ORD-42", "Johns Hopkins OR-3")
	require.NoError(t, err)
	require.Equal(t, StatusQueued, record.Status)
	require.Equal(t, "ORD-42", record.OrderID)
	require.Equal(t, "pending", record.ETA)
	require.NotEmpty(t, record.ID)

	// An omitted order id is synthesized.
	record, err = svc.Dispatch(ctx, "", "Johns Hopkins OR-3")
	require.NoError(t, err)
	require.NotEmpty(t, record.OrderID)

	_, err = svc.Dispatch(ctx, "ORD-43", "  ")
	require.ErrorIs(t, err, ErrMissingRecipient)

	records, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestSeedIfEmpty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedIfEmpty(ctx))
	records, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.NoError(t, svc.SeedIfEmpty(ctx))
	records, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
}
