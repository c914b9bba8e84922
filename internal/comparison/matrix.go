package comparison

import "github.com/Burtinsaw/PROC-sub000/internal/domain"

// Matrix indexes normalized quotes by (supplier, item) into a dense
// comparison grid. Row/column order is preserved from the input lists;
// callers control display order by controlling input order.
type Matrix struct {
	Items     []domain.Item
	Suppliers []domain.Supplier

	// Cells is keyed by CellKey. A missing key is an empty cell: the
	// supplier did not quote that item.
	Cells map[string]*domain.NormalizedQuote
}

// CellKey builds the lookup key for a (supplier, item) cell.
func CellKey(supplierID, itemID string) string {
	return supplierID + ":" + itemID
}

// BuildMatrix constructs the comparison grid in O(n). If two quotes exist
// for the same (supplier, item) pair, the later one in the input list wins.
func BuildMatrix(items []domain.Item, suppliers []domain.Supplier, quotes []domain.NormalizedQuote) *Matrix {
	cells := make(map[string]*domain.NormalizedQuote, len(quotes))
	for i := range quotes {
		q := quotes[i]
		cells[CellKey(q.SupplierID, q.ItemID)] = &q
	}
	return &Matrix{
		Items:     items,
		Suppliers: suppliers,
		Cells:     cells,
	}
}

// Cell returns the normalized quote for a (supplier, item) pair, if any.
func (m *Matrix) Cell(supplierID, itemID string) (*domain.NormalizedQuote, bool) {
	q, ok := m.Cells[CellKey(supplierID, itemID)]
	return q, ok
}
