package reporting

import (
	"strconv"
	"strings"

	"github.com/Burtinsaw/PROC-sub000/internal/comparison"
	"github.com/Burtinsaw/PROC-sub000/internal/domain"
)

// RenderCSV renders the visible slice of a comparison as CSV text.
//
// The header row is "Item" followed by the visible supplier names, with a
// literal " *" suffix on the supplier holding the award (the committed
// supplier when one exists, otherwise the recommendation). Body rows carry
// each visible supplier's normalized unit price for the item, or an empty
// field when that supplier did not quote it. Visibility is presentation
// only; scores and the recommendation are computed over all suppliers.
func RenderCSV(cmp *domain.Comparison, visibleSupplierIDs []string, committedSupplierID string) string {
	visible := visibleSet(visibleSupplierIDs)
	awardID := committedSupplierID
	if awardID == "" {
		awardID = cmp.RecommendedSupplierID
	}

	var suppliers []domain.Supplier
	for _, s := range cmp.Suppliers {
		if _, ok := visible[s.SupplierID]; ok {
			suppliers = append(suppliers, s)
		}
	}

	var rows []string

	header := []string{quoteField("Item")}
	for _, s := range suppliers {
		name := s.Name
		if s.SupplierID == awardID {
			name += " *"
		}
		header = append(header, quoteField(name))
	}
	rows = append(rows, strings.Join(header, ","))

	for _, item := range cmp.Items {
		row := []string{quoteField(item.Description)}
		for _, s := range suppliers {
			cell := ""
			if nq, ok := cmp.Cells[comparison.CellKey(s.SupplierID, item.ItemID)]; ok {
				cell = formatPrice(nq.UnitPriceBase)
			}
			row = append(row, quoteField(cell))
		}
		rows = append(rows, strings.Join(row, ","))
	}

	return strings.Join(rows, "\n")
}

func visibleSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// quoteField wraps a field in double quotes, doubling internal quotes.
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// formatPrice renders a price as a plain number with no trailing zeros,
// so parsing the field back yields the exact float.
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
