package comparison

import (
	"testing"

	"github.com/Burtinsaw/PROC-sub000/internal/domain"
)

func testItems() []domain.Item {
	return []domain.Item{
		{ItemID: "i1", Description: "Steel pipe", Quantity: 100, Unit: "m"},
		{ItemID: "i2", Description: "Valve", Quantity: 20, Unit: "pcs"},
	}
}

func testSuppliers() []domain.Supplier {
	return []domain.Supplier{
		{SupplierID: "s1", Name: "Acme"},
		{SupplierID: "s2", Name: "Bolt & Co"},
	}
}

func nq(id, supplierID, itemID string, base float64) domain.NormalizedQuote {
	return domain.NormalizedQuote{
		Quote:         domain.Quote{QuoteID: id, SupplierID: supplierID, ItemID: itemID},
		UnitPriceBase: base,
	}
}

func TestBuildMatrix_CellLookup(t *testing.T) {
	m := BuildMatrix(testItems(), testSuppliers(), []domain.NormalizedQuote{
		nq("q1", "s1", "i1", 100),
		nq("q2", "s2", "i2", 50),
	})

	q, ok := m.Cell("s1", "i1")
	if !ok {
		t.Fatal("expected cell (s1, i1)")
	}
	if q.QuoteID != "q1" {
		t.Errorf("QuoteID = %s, want q1", q.QuoteID)
	}

	// Empty cell: s1 did not quote i2.
	if _, ok := m.Cell("s1", "i2"); ok {
		t.Error("expected empty cell (s1, i2)")
	}
}

func TestBuildMatrix_LastWriteWins(t *testing.T) {
	m := BuildMatrix(testItems(), testSuppliers(), []domain.NormalizedQuote{
		nq("q1", "s1", "i1", 100),
		nq("q2", "s1", "i1", 90), // duplicate (supplier, item): later entry wins
	})

	q, ok := m.Cell("s1", "i1")
	if !ok {
		t.Fatal("expected cell (s1, i1)")
	}
	if q.QuoteID != "q2" {
		t.Errorf("QuoteID = %s, want q2 (last write wins)", q.QuoteID)
	}
	if len(m.Cells) != 1 {
		t.Errorf("len(Cells) = %d, want 1", len(m.Cells))
	}
}

func TestBuildMatrix_PreservesInputOrder(t *testing.T) {
	items := testItems()
	suppliers := testSuppliers()

	m := BuildMatrix(items, suppliers, nil)

	for i := range items {
		if m.Items[i].ItemID != items[i].ItemID {
			t.Errorf("item order changed at %d", i)
		}
	}
	for i := range suppliers {
		if m.Suppliers[i].SupplierID != suppliers[i].SupplierID {
			t.Errorf("supplier order changed at %d", i)
		}
	}
}
