package session

import (
	"context"
	"io"
	"log"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Burtinsaw/PROC-sub000/internal/domain"
	"github.com/Burtinsaw/PROC-sub000/internal/storage/memory"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testRFQ() *domain.RFQ {
	return &domain.RFQ{
		RFQID:        "rfq1",
		RFQNumber:    "RFQ-2025-014",
		BaseCurrency: "TRY",
		Items: []domain.Item{
			{ItemID: "i1", Description: "Steel pipe", Quantity: 100, Unit: "m"},
			{ItemID: "i2", Description: "Valve", Quantity: 20, Unit: "pcs"},
		},
		Suppliers: []domain.Supplier{
			{SupplierID: "s1", Name: "Acme"},
			{SupplierID: "s2", Name: "Bolt & Co"},
			{SupplierID: "s3", Name: "Cetin Metal"},
		},
	}
}

func testQuotes() []domain.Quote {
	return []domain.Quote{
		{QuoteID: "q1", SupplierID: "s1", ItemID: "i1", UnitPrice: 100, Currency: "TRY", LeadTimeDays: 5},
		{QuoteID: "q2", SupplierID: "s2", ItemID: "i1", UnitPrice: 110, Currency: "TRY", LeadTimeDays: 3},
	}
}

func newTestSession(t *testing.T, store *memory.PreferenceStore) *Session {
	t.Helper()
	s := New(context.Background(), testRFQ(), testQuotes(), store, time.Millisecond, quietLogger())
	t.Cleanup(s.Close)
	return s
}

func TestSession_DefaultsWhenNoStoredPrefs(t *testing.T) {
	s := newTestSession(t, memory.NewPreferenceStore())

	if s.PriceWeight() != domain.DefaultPriceWeight {
		t.Errorf("PriceWeight = %d, want %d", s.PriceWeight(), domain.DefaultPriceWeight)
	}
	want := []string{"s1", "s2", "s3"}
	if got := s.VisibleSupplierIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("VisibleSupplierIDs = %v, want all suppliers", got)
	}
}

func TestSession_LoadsStoredPrefs(t *testing.T) {
	store := memory.NewPreferenceStore()
	err := store.Put(context.Background(), &domain.ComparisonPrefs{
		RFQID:              "rfq1",
		PriceWeight:        35,
		VisibleSupplierIDs: []string{"s3", "s1", "ghost-supplier"},
	})
	if err != nil {
		t.Fatalf("seed prefs: %v", err)
	}

	s := newTestSession(t, store)

	if s.PriceWeight() != 35 {
		t.Errorf("PriceWeight = %d, want 35", s.PriceWeight())
	}
	// Unknown supplier ids are dropped; order follows the RFQ supplier list.
	want := []string{"s1", "s3"}
	if got := s.VisibleSupplierIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("VisibleSupplierIDs = %v, want %v", got, want)
	}
}

func TestSession_ToggleIdempotence(t *testing.T) {
	s := newTestSession(t, memory.NewPreferenceStore())

	before := s.VisibleSupplierIDs()
	s.ShowSupplier("s2") // already visible
	if got := s.VisibleSupplierIDs(); !reflect.DeepEqual(got, before) {
		t.Errorf("showing a visible supplier changed state: %v", got)
	}

	s.HideSupplier("s2")
	s.HideSupplier("s2") // already hidden
	want := []string{"s1", "s3"}
	if got := s.VisibleSupplierIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("VisibleSupplierIDs = %v, want %v", got, want)
	}

	s.ShowSupplier("s2")
	if got := s.VisibleSupplierIDs(); !reflect.DeepEqual(got, before) {
		t.Errorf("hide then show did not restore state: %v", got)
	}
}

func TestSession_ShowAllHideAll(t *testing.T) {
	s := newTestSession(t, memory.NewPreferenceStore())

	s.HideAll()
	if got := s.VisibleSupplierIDs(); len(got) != 0 {
		t.Errorf("after HideAll: %v", got)
	}

	s.ShowAll()
	want := []string{"s1", "s2", "s3"}
	if got := s.VisibleSupplierIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("after ShowAll: %v", got)
	}
}

func TestSession_VisibilityDoesNotAffectScoring(t *testing.T) {
	s := newTestSession(t, memory.NewPreferenceStore())
	s.SetPriceWeight(100)

	full := s.Compute()
	s.HideSupplier("s1")
	hidden := s.Compute()

	if full.RecommendedSupplierID != hidden.RecommendedSupplierID {
		t.Error("hiding a supplier changed the recommendation")
	}
	if len(full.Aggregates) != len(hidden.Aggregates) {
		t.Error("hiding a supplier changed the aggregate set")
	}
}

func TestSession_PersistsChanges(t *testing.T) {
	store := memory.NewPreferenceStore()
	s := newTestSession(t, store)

	s.SetPriceWeight(20)
	s.HideSupplier("s2")
	s.Flush()

	p, err := store.Get(context.Background(), "rfq1")
	if err != nil {
		t.Fatalf("Get after Flush failed: %v", err)
	}
	if p.PriceWeight != 20 {
		t.Errorf("persisted PriceWeight = %d, want 20", p.PriceWeight)
	}
	want := []string{"s1", "s3"}
	if !reflect.DeepEqual(p.VisibleSupplierIDs, want) {
		t.Errorf("persisted VisibleSupplierIDs = %v, want %v", p.VisibleSupplierIDs, want)
	}
}

func TestSession_WeightClamped(t *testing.T) {
	s := newTestSession(t, memory.NewPreferenceStore())

	s.SetPriceWeight(250)
	if s.PriceWeight() != 100 {
		t.Errorf("PriceWeight = %d, want clamp to 100", s.PriceWeight())
	}
	s.SetPriceWeight(-10)
	if s.PriceWeight() != 0 {
		t.Errorf("PriceWeight = %d, want clamp to 0", s.PriceWeight())
	}
}

func TestSession_ComputeDeterministic(t *testing.T) {
	s := newTestSession(t, memory.NewPreferenceStore())

	first := s.Compute()
	for i := 0; i < 5; i++ {
		next := s.Compute()
		if next.RecommendedSupplierID != first.RecommendedSupplierID {
			t.Fatal("recomputation changed the recommendation")
		}
		if !reflect.DeepEqual(next.Aggregates, first.Aggregates) {
			t.Fatal("recomputation changed the aggregates")
		}
	}
}

func TestSession_ExportCSVMarksCommittedAward(t *testing.T) {
	s := newTestSession(t, memory.NewPreferenceStore())
	s.SetPriceWeight(100)

	s.SetCommittedAward("s3")
	out := s.ExportCSV()

	lines := strings.Split(out, "\n")
	if lines[0] != `"Item","Acme","Bolt & Co","Cetin Metal *"` {
		t.Errorf("header = %s", lines[0])
	}
}
