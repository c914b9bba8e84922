package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Burtinsaw/PROC-sub000/internal/domain"
	"github.com/Burtinsaw/PROC-sub000/internal/storage"
)

// QuoteStore is an in-memory implementation of storage.QuoteStore.
type QuoteStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Quote // keyed by quote_id
}

// NewQuoteStore creates a new in-memory quote store.
func NewQuoteStore() *QuoteStore {
	return &QuoteStore{
		data: make(map[string]*domain.Quote),
	}
}

var _ storage.QuoteStore = (*QuoteStore)(nil)

// Insert adds a new quote. Returns ErrDuplicateKey if quote_id exists.
func (s *QuoteStore) Insert(_ context.Context, q *domain.Quote) error {
	if q == nil || q.QuoteID == "" || q.RFQID == "" || q.SupplierID == "" || q.ItemID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[q.QuoteID]; exists {
		return storage.ErrDuplicateKey
	}

	qCopy := *q
	s.data[q.QuoteID] = &qCopy
	return nil
}

// InsertBulk adds multiple quotes atomically. Fails entire batch on any duplicate.
func (s *QuoteStore) InsertBulk(_ context.Context, quotes []*domain.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track ids in this batch to detect intra-batch duplicates.
	batchIDs := make(map[string]struct{}, len(quotes))

	for _, q := range quotes {
		if q == nil || q.QuoteID == "" || q.RFQID == "" || q.SupplierID == "" || q.ItemID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[q.QuoteID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchIDs[q.QuoteID]; exists {
			return storage.ErrDuplicateKey
		}
		batchIDs[q.QuoteID] = struct{}{}
	}

	for _, q := range quotes {
		qCopy := *q
		s.data[q.QuoteID] = &qCopy
	}

	return nil
}

// GetByRFQ retrieves all quotes for an RFQ, ordered by created_at ASC, quote_id ASC.
func (s *QuoteStore) GetByRFQ(_ context.Context, rfqID string) ([]*domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Quote
	for _, q := range s.data {
		if q.RFQID == rfqID {
			qCopy := *q
			result = append(result, &qCopy)
		}
	}

	sortQuotes(result)
	return result, nil
}

// GetBySupplier retrieves one supplier's quotes for an RFQ.
func (s *QuoteStore) GetBySupplier(_ context.Context, rfqID, supplierID string) ([]*domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Quote
	for _, q := range s.data {
		if q.RFQID == rfqID && q.SupplierID == supplierID {
			qCopy := *q
			result = append(result, &qCopy)
		}
	}

	sortQuotes(result)
	return result, nil
}

// sortQuotes orders by created_at ASC, quote_id ASC for deterministic output.
func sortQuotes(quotes []*domain.Quote) {
	sort.Slice(quotes, func(i, j int) bool {
		if quotes[i].CreatedAt != quotes[j].CreatedAt {
			return quotes[i].CreatedAt < quotes[j].CreatedAt
		}
		return quotes[i].QuoteID < quotes[j].QuoteID
	})
}
