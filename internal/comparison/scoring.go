package comparison

import "github.com/Burtinsaw/PROC-sub000/internal/domain"

// ScoreQuotes computes price and lead-time subscores for every quote on an
// item with at least one qualifying quote, blended by priceWeight (0-100,
// leadWeight = 100 - priceWeight). The cheapest qualifying quote on an item
// scores exactly 100 on price; the fastest usable lead time scores exactly
// 100 on lead. Quotes with a non-positive base price score 0 on price;
// quotes without a usable lead time (leadTimeDays <= 0) score 0 on lead but
// stay eligible for price scoring. Pure: changing the weight only
// regenerates scores, stored quotes are never mutated.
func ScoreQuotes(m *Matrix, metrics map[string]*domain.ItemMetrics, priceWeight int) map[string]*domain.QuoteScore {
	priceWeight = ClampWeight(priceWeight)
	leadWeight := 100 - priceWeight

	scores := make(map[string]*domain.QuoteScore)

	for _, item := range m.Items {
		im, ok := metrics[item.ItemID]
		if !ok {
			continue
		}
		minLead := minLeadTimeDays(m, item.ItemID)

		for _, s := range m.Suppliers {
			q, found := m.Cell(s.SupplierID, item.ItemID)
			if !found {
				continue
			}

			score := &domain.QuoteScore{
				QuoteID:    q.QuoteID,
				SupplierID: q.SupplierID,
				ItemID:     q.ItemID,
			}

			if q.UnitPriceBase > 0 {
				score.PriceScore = clampScore(100 * im.MinBasePrice / q.UnitPriceBase)
				score.DeviationPct = DeviationPct(q.UnitPriceBase, im.MinBasePrice)
				score.Tier = TierFor(score.DeviationPct)
			}
			if q.LeadTimeDays > 0 && minLead > 0 {
				score.LeadScore = clampScore(100 * float64(minLead) / float64(q.LeadTimeDays))
			}
			score.OverallScore = (score.PriceScore*float64(priceWeight) + score.LeadScore*float64(leadWeight)) / 100

			scores[q.QuoteID] = score
		}
	}

	return scores
}

// minLeadTimeDays returns the minimum positive lead time quoted for an item,
// or 0 when no quote carries a usable lead time.
func minLeadTimeDays(m *Matrix, itemID string) int {
	min := 0
	for _, s := range m.Suppliers {
		q, ok := m.Cell(s.SupplierID, itemID)
		if !ok || q.LeadTimeDays <= 0 {
			continue
		}
		if min == 0 || q.LeadTimeDays < min {
			min = q.LeadTimeDays
		}
	}
	return min
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ClampWeight limits a price weight to the valid [0, 100] range.
func ClampWeight(w int) int {
	if w < 0 {
		return 0
	}
	if w > 100 {
		return 100
	}
	return w
}
