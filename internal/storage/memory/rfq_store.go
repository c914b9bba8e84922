// Package memory provides in-memory store implementations used by tests
// and by the server's --use-memory mode.
package memory

import (
	"context"
	"sync"

	"github.com/Burtinsaw/PROC-sub000/internal/domain"
	"github.com/Burtinsaw/PROC-sub000/internal/storage"
)

// RFQStore is an in-memory implementation of storage.RFQStore.
type RFQStore struct {
	mu   sync.RWMutex
	data map[string]*domain.RFQ // keyed by rfq_id
}

// NewRFQStore creates a new in-memory RFQ store.
func NewRFQStore() *RFQStore {
	return &RFQStore{
		data: make(map[string]*domain.RFQ),
	}
}

var _ storage.RFQStore = (*RFQStore)(nil)

// Insert adds a new RFQ. Returns ErrDuplicateKey if rfq_id exists.
func (s *RFQStore) Insert(_ context.Context, r *domain.RFQ) error {
	if r == nil || r.RFQID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.RFQID]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[r.RFQID] = copyRFQ(r)
	return nil
}

// GetByID retrieves an RFQ by its ID. Returns ErrNotFound if not exists.
func (s *RFQStore) GetByID(_ context.Context, rfqID string) (*domain.RFQ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[rfqID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyRFQ(r), nil
}

// SetAwardedSupplier records the committed award decision.
func (s *RFQStore) SetAwardedSupplier(_ context.Context, rfqID, supplierID string) error {
	if supplierID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, exists := s.data[rfqID]
	if !exists {
		return storage.ErrNotFound
	}

	awarded := supplierID
	r.AwardedSupplierID = &awarded
	r.Status = "awarded"
	return nil
}

// copyRFQ makes a deep copy so callers cannot mutate stored state.
func copyRFQ(r *domain.RFQ) *domain.RFQ {
	rCopy := *r
	rCopy.Items = append([]domain.Item(nil), r.Items...)
	rCopy.Suppliers = append([]domain.Supplier(nil), r.Suppliers...)
	if r.AwardedSupplierID != nil {
		awarded := *r.AwardedSupplierID
		rCopy.AwardedSupplierID = &awarded
	}
	return &rCopy
}
