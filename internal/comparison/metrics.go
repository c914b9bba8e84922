package comparison

import "github.com/Burtinsaw/PROC-sub000/internal/domain"

// ComputeItemMetrics computes per-item min/max base price, spread and the
// best-price supplier over qualifying quotes (strictly positive base price).
// Quotes with a non-positive base price are treated as data errors and
// excluded from best-price consideration. Items with zero qualifying quotes
// are omitted from the result. On a price tie the supplier appearing first
// in the supplier input order wins.
func ComputeItemMetrics(m *Matrix) map[string]*domain.ItemMetrics {
	metrics := make(map[string]*domain.ItemMetrics, len(m.Items))

	for _, item := range m.Items {
		var im *domain.ItemMetrics

		for _, s := range m.Suppliers {
			q, ok := m.Cell(s.SupplierID, item.ItemID)
			if !ok || q.UnitPriceBase <= 0 {
				continue
			}
			if im == nil {
				im = &domain.ItemMetrics{
					ItemID:           item.ItemID,
					QualifyingQuotes: 1,
					MinBasePrice:     q.UnitPriceBase,
					MaxBasePrice:     q.UnitPriceBase,
					BestSupplierID:   s.SupplierID,
				}
				continue
			}
			im.QualifyingQuotes++
			// Strict comparison keeps the earlier supplier on ties.
			if q.UnitPriceBase < im.MinBasePrice {
				im.MinBasePrice = q.UnitPriceBase
				im.BestSupplierID = s.SupplierID
			}
			if q.UnitPriceBase > im.MaxBasePrice {
				im.MaxBasePrice = q.UnitPriceBase
			}
		}

		if im == nil {
			continue
		}
		im.SpreadPct = (im.MaxBasePrice - im.MinBasePrice) / im.MinBasePrice * 100
		metrics[item.ItemID] = im
	}

	return metrics
}

// DeviationPct is the percentage a base price sits above the item minimum.
func DeviationPct(basePrice, minBasePrice float64) float64 {
	return (basePrice - minBasePrice) / minBasePrice * 100
}

// TierFor classifies a deviation percentage for presentation.
func TierFor(deviationPct float64) domain.DeviationTier {
	switch {
	case deviationPct == 0:
		return domain.TierBest
	case deviationPct < 10:
		return domain.TierModerate
	default:
		return domain.TierHigh
	}
}
