package storage

import (
	"context"

	"github.com/Burtinsaw/PROC-sub000/internal/domain"
)

// RFQStore provides access to RFQ storage, including line items and the
// invited supplier list.
type RFQStore interface {
	// Insert adds a new RFQ with its items and suppliers.
	// Returns ErrDuplicateKey if rfq_id exists.
	Insert(ctx context.Context, r *domain.RFQ) error

	// GetByID retrieves an RFQ by its ID, with items and suppliers in
	// their original input order. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, rfqID string) (*domain.RFQ, error)

	// SetAwardedSupplier records the committed award decision.
	// Returns ErrNotFound if the RFQ does not exist.
	SetAwardedSupplier(ctx context.Context, rfqID, supplierID string) error
}

// QuoteStore provides access to quote storage.
type QuoteStore interface {
	// Insert adds a new quote. Returns ErrDuplicateKey if quote_id exists.
	Insert(ctx context.Context, q *domain.Quote) error

	// InsertBulk adds multiple quotes atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, quotes []*domain.Quote) error

	// GetByRFQ retrieves all quotes for an RFQ, ordered by created_at ASC,
	// quote_id ASC. This order is the engine's input order, so a later
	// resubmission for the same (supplier, item) pair wins in the matrix.
	GetByRFQ(ctx context.Context, rfqID string) ([]*domain.Quote, error)

	// GetBySupplier retrieves one supplier's quotes for an RFQ, same order.
	GetBySupplier(ctx context.Context, rfqID, supplierID string) ([]*domain.Quote, error)
}

// PreferenceStore persists per-RFQ comparison preferences (price weight and
// supplier visibility). Writes are upserts: a newer write always wins.
type PreferenceStore interface {
	// Get retrieves preferences for an RFQ. Returns ErrNotFound when
	// nothing has been persisted yet.
	Get(ctx context.Context, rfqID string) (*domain.ComparisonPrefs, error)

	// Put stores preferences for an RFQ, replacing any previous value.
	Put(ctx context.Context, p *domain.ComparisonPrefs) error
}
