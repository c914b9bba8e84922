package postgres

import (
	"context"
	"fmt"

	"github.com/Burtinsaw/PROC-sub000/internal/domain"
	"github.com/Burtinsaw/PROC-sub000/internal/storage"
)

// PreferenceStore implements storage.PreferenceStore using PostgreSQL.
type PreferenceStore struct {
	pool *Pool
}

// NewPreferenceStore creates a new PreferenceStore.
func NewPreferenceStore(pool *Pool) *PreferenceStore {
	return &PreferenceStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PreferenceStore = (*PreferenceStore)(nil)

// Get retrieves preferences for an RFQ. Returns ErrNotFound when nothing
// has been persisted yet.
func (s *PreferenceStore) Get(ctx context.Context, rfqID string) (*domain.ComparisonPrefs, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT rfq_id, price_weight, visible_supplier_ids, updated_at
		FROM comparison_prefs
		WHERE rfq_id = $1
	`, rfqID)

	var p domain.ComparisonPrefs
	err := row.Scan(&p.RFQID, &p.PriceWeight, &p.VisibleSupplierIDs, &p.UpdatedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &p, nil
}

// Put stores preferences for an RFQ, replacing any previous value.
func (s *PreferenceStore) Put(ctx context.Context, p *domain.ComparisonPrefs) error {
	if p == nil || p.RFQID == "" {
		return storage.ErrInvalidInput
	}
	if p.PriceWeight < 0 || p.PriceWeight > 100 {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO comparison_prefs (rfq_id, price_weight, visible_supplier_ids, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (rfq_id) DO UPDATE SET
			price_weight = EXCLUDED.price_weight,
			visible_supplier_ids = EXCLUDED.visible_supplier_ids,
			updated_at = EXCLUDED.updated_at
	`, p.RFQID, p.PriceWeight, p.VisibleSupplierIDs, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put preferences: %w", err)
	}
	return nil
}
