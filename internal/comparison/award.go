package comparison

import "github.com/Burtinsaw/PROC-sub000/internal/domain"

// AggregateSuppliers sums each supplier's overall scores across all items.
// Every input supplier gets an aggregate, in input order; a supplier with
// zero quotes totals 0 rather than being omitted.
func AggregateSuppliers(m *Matrix, scores map[string]*domain.QuoteScore) []domain.SupplierAggregate {
	aggregates := make([]domain.SupplierAggregate, len(m.Suppliers))

	for i, s := range m.Suppliers {
		agg := domain.SupplierAggregate{SupplierID: s.SupplierID}
		for _, item := range m.Items {
			q, ok := m.Cell(s.SupplierID, item.ItemID)
			if !ok {
				continue
			}
			agg.QuotedItems++
			if score, scored := scores[q.QuoteID]; scored {
				agg.TotalScore += score.OverallScore
			}
		}
		aggregates[i] = agg
	}

	return aggregates
}

// ResolveAward recommends the supplier with the strictly highest total
// score. On an exact tie the supplier appearing first in the supplier input
// order wins. With no quotes or no suppliers there is nothing to rank and
// the empty string is returned: no recommendation, never an arbitrary
// winner. The recommendation is advisory only; committing an award is an
// external side effect.
func ResolveAward(aggregates []domain.SupplierAggregate, quoteCount int) string {
	if quoteCount == 0 || len(aggregates) == 0 {
		return ""
	}

	best := aggregates[0]
	for _, agg := range aggregates[1:] {
		if agg.TotalScore > best.TotalScore {
			best = agg
		}
	}
	return best.SupplierID
}
