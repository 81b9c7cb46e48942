package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/storefront/internal/db"
	"github.com/kailas-cloud/storefront/internal/domain"
	domprod "github.com/kailas-cloud/storefront/internal/domain/product"
)

// DefaultSnapshotKey holds the catalog snapshot when no key is configured.
const DefaultSnapshotKey = "storefront:catalog:products"

// kvStore is the consumer interface for snapshot operations (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetNX(ctx context.Context, key string, value []byte) (bool, error)
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// KV reads the catalog from a JSON array stored under a single key.
type KV struct {
	store kvStore
	key   string
}

// NewKV creates a snapshot source. Empty key means DefaultSnapshotKey.
func NewKV(s kvStore, key string) *KV {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &KV{store: s, key: key}
}

// Key returns the snapshot key.
func (r *KV) Key() string { return r.key }

// Load fetches and decodes the snapshot.
func (r *KV) Load(ctx context.Context) ([]*domprod.Product, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("snapshot %s missing: %w", r.key, domain.ErrSourceUnavailable)
		}
		return nil, fmt.Errorf("get snapshot %s: %w: %w", r.key, domain.ErrSourceUnavailable, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w: %w", r.key, domain.ErrInvalidProduct, err)
	}
	return toProducts(records)
}

// Publish overwrites the snapshot with products.
func (r *KV) Publish(ctx context.Context, products []*domprod.Product) error {
	data, err := encodeSnapshot(products)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("set snapshot %s: %w", r.key, err)
	}
	return nil
}

// Seed writes products only when no snapshot exists. Reports whether it wrote.
func (r *KV) Seed(ctx context.Context, products []*domprod.Product) (bool, error) {
	data, err := encodeSnapshot(products)
	if err != nil {
		return false, err
	}
	written, err := r.store.SetNX(ctx, r.key, data)
	if err != nil {
		return false, fmt.Errorf("seed snapshot %s: %w", r.key, err)
	}
	return written, nil
}

// Clear deletes the snapshot. Subsequent loads fail until it is published again.
func (r *KV) Clear(ctx context.Context) error {
	if err := r.store.Del(ctx, r.key); err != nil {
		return fmt.Errorf("clear snapshot %s: %w", r.key, err)
	}
	return nil
}

// Ping checks the underlying store.
func (r *KV) Ping(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Errorf("snapshot store: %w", err)
	}
	return nil
}

func encodeSnapshot(products []*domprod.Product) ([]byte, error) {
	records := make([]record, len(products))
	for i, p := range products {
		records[i] = recordFromProduct(p)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}
