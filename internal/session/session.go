// Package session holds the live view state of one RFQ comparison: the
// price/lead weight, supplier visibility toggles and the committed award.
// Scoring itself stays in the comparison package; the session only feeds
// it and persists view preferences through a debounced saver.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Burtinsaw/PROC-sub000/internal/comparison"
	"github.com/Burtinsaw/PROC-sub000/internal/domain"
	"github.com/Burtinsaw/PROC-sub000/internal/prefs"
	"github.com/Burtinsaw/PROC-sub000/internal/reporting"
	"github.com/Burtinsaw/PROC-sub000/internal/storage"
)

// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	rfq       *domain.RFQ
	quotes    []domain.Quote
	weight    int
	visible   map[string]struct{}
	committed string

	saver *prefs.Saver
}

// New builds a session for an RFQ, loading persisted preferences when
// present. A missing or unreadable preference record falls back to the
// defaults (weight 70, every supplier visible); preference problems never
// block the comparison view.
func New(ctx context.Context, rfq *domain.RFQ, quotes []domain.Quote, store storage.PreferenceStore, debounce time.Duration, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}

	p, err := store.Get(ctx, rfq.RFQID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Printf("[session] load preferences for rfq %s: %v", rfq.RFQID, err)
		}
		p = domain.DefaultPrefs(rfq.RFQID, rfq.Suppliers)
	}

	s := &Session{
		rfq:     rfq,
		quotes:  append([]domain.Quote(nil), quotes...),
		weight:  comparison.ClampWeight(p.PriceWeight),
		visible: make(map[string]struct{}, len(rfq.Suppliers)),
		saver:   prefs.NewSaver(store, debounce, logger),
	}
	if rfq.AwardedSupplierID != nil {
		s.committed = *rfq.AwardedSupplierID
	}

	// Persisted visibility may reference suppliers since removed from the
	// RFQ; keep only the ones still present.
	known := make(map[string]struct{}, len(rfq.Suppliers))
	for _, sup := range rfq.Suppliers {
		known[sup.SupplierID] = struct{}{}
	}
	for _, id := range p.VisibleSupplierIDs {
		if _, ok := known[id]; ok {
			s.visible[id] = struct{}{}
		}
	}

	return s
}

// PriceWeight returns the current price weight.
func (s *Session) PriceWeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weight
}

// SetPriceWeight updates the price weight, clamping to [0, 100], and
// schedules a preference write.
func (s *Session) SetPriceWeight(w int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.weight = comparison.ClampWeight(w)
	s.persistLocked()
}

// ShowSupplier makes a supplier's column visible. No-op when already visible.
func (s *Session) ShowSupplier(supplierID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.visible[supplierID]; ok {
		return
	}
	s.visible[supplierID] = struct{}{}
	s.persistLocked()
}

// HideSupplier hides a supplier's column. No-op when already hidden.
// Visibility never affects scoring or the recommendation.
func (s *Session) HideSupplier(supplierID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.visible[supplierID]; !ok {
		return
	}
	delete(s.visible, supplierID)
	s.persistLocked()
}

// ShowAll makes every supplier visible.
func (s *Session) ShowAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sup := range s.rfq.Suppliers {
		s.visible[sup.SupplierID] = struct{}{}
	}
	s.persistLocked()
}

// HideAll hides every supplier.
func (s *Session) HideAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.visible = make(map[string]struct{})
	s.persistLocked()
}

// VisibleSupplierIDs returns the visible supplier ids in RFQ supplier order.
func (s *Session) VisibleSupplierIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleIDsLocked()
}

// SetQuotes replaces the quote set, e.g. after a refresh from storage.
func (s *Session) SetQuotes(quotes []domain.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes = append([]domain.Quote(nil), quotes...)
}

// SetCommittedAward records the externally confirmed award. It marks the
// supplier in exports but never influences scoring.
func (s *Session) SetCommittedAward(supplierID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = supplierID
}

// CommittedAward returns the committed supplier id, or "" when none.
func (s *Session) CommittedAward() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// Compute recomputes the full comparison from the current quote set and
// weight. Safe to call redundantly; each call is independent.
func (s *Session) Compute() *domain.Comparison {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computeLocked()
}

// ExportCSV renders the visible matrix as CSV text.
func (s *Session) ExportCSV() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reporting.RenderCSV(s.computeLocked(), s.visibleIDsLocked(), s.committed)
}

// ExportWorkbook renders the visible matrix and the full ranking as an
// Excel workbook. The caller must Close the returned file.
func (s *Session) ExportWorkbook() (*excelize.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reporting.BuildWorkbook(s.computeLocked(), s.visibleIDsLocked(), s.committed)
}

// Flush writes any pending preference changes immediately.
func (s *Session) Flush() {
	s.saver.Flush()
}

// Close flushes pending preferences and releases the saver.
func (s *Session) Close() {
	s.saver.Close()
}

func (s *Session) computeLocked() *domain.Comparison {
	return comparison.Compute(comparison.Input{
		BaseCurrency: s.rfq.BaseCurrency,
		Items:        s.rfq.Items,
		Suppliers:    s.rfq.Suppliers,
		Quotes:       s.quotes,
		PriceWeight:  s.weight,
	})
}

func (s *Session) visibleIDsLocked() []string {
	ids := make([]string, 0, len(s.visible))
	for _, sup := range s.rfq.Suppliers {
		if _, ok := s.visible[sup.SupplierID]; ok {
			ids = append(ids, sup.SupplierID)
		}
	}
	return ids
}

func (s *Session) persistLocked() {
	s.saver.Save(&domain.ComparisonPrefs{
		RFQID:              s.rfq.RFQID,
		PriceWeight:        s.weight,
		VisibleSupplierIDs: s.visibleIDsLocked(),
		UpdatedAt:          time.Now().UnixMilli(),
	})
}
