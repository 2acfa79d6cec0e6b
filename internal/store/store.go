// Package store persists entity collections as opaque blobs keyed by
// collection name. The store offers no transactional guarantees across
// collections; callers impose discipline through Collection, which runs
// every mutation as a locked read-modify-write round trip.
package store

import "context"

// Collection names. They match the layout of the durable store.
const (
	CollectionProducts     = "inventory"
	CollectionWIP          = "wip"
	CollectionTransactions = "txs"
	CollectionQuotations   = "quotations"
	CollectionDeliveries   = "deliveries"
)

// Backend reads and writes collection blobs.
type Backend interface {
	// Read returns the raw blob for a collection, or nil when the
	// collection has never been written.
	Read(ctx context.Context, collection string) ([]byte, error)
	// Write replaces the collection blob.
	Write(ctx context.Context, collection string, blob []byte) error
}
