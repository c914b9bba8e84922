package memory

import (
	"context"
	"sync"

	"github.com/Burtinsaw/PROC-sub000/internal/domain"
	"github.com/Burtinsaw/PROC-sub000/internal/storage"
)

// PreferenceStore is an in-memory implementation of storage.PreferenceStore.
type PreferenceStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ComparisonPrefs // keyed by rfq_id
}

// NewPreferenceStore creates a new in-memory preference store.
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{
		data: make(map[string]*domain.ComparisonPrefs),
	}
}

var _ storage.PreferenceStore = (*PreferenceStore)(nil)

// Get retrieves preferences for an RFQ. Returns ErrNotFound when nothing
// has been persisted yet.
func (s *PreferenceStore) Get(_ context.Context, rfqID string) (*domain.ComparisonPrefs, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.data[rfqID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyPrefs(p), nil
}

// Put stores preferences for an RFQ, replacing any previous value.
func (s *PreferenceStore) Put(_ context.Context, p *domain.ComparisonPrefs) error {
	if p == nil || p.RFQID == "" {
		return storage.ErrInvalidInput
	}
	if p.PriceWeight < 0 || p.PriceWeight > 100 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[p.RFQID] = copyPrefs(p)
	return nil
}

func copyPrefs(p *domain.ComparisonPrefs) *domain.ComparisonPrefs {
	pCopy := *p
	pCopy.VisibleSupplierIDs = append([]string(nil), p.VisibleSupplierIDs...)
	return &pCopy
}
