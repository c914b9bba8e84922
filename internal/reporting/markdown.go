package reporting

import (
	"fmt"
	"strings"

	"github.com/Burtinsaw/PROC-sub000/internal/domain"
)

// RenderMarkdown renders a comparison summary as Markdown string.
func RenderMarkdown(rfqNumber string, cmp *domain.Comparison) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Quote Comparison: %s\n\n", rfqNumber))
	sb.WriteString(fmt.Sprintf("Base currency: %s | Price weight: %d | Lead weight: %d\n\n",
		cmp.BaseCurrency, cmp.PriceWeight, 100-cmp.PriceWeight))

	names := supplierNames(cmp.Suppliers)

	// Supplier Ranking
	sb.WriteString("## Supplier Ranking\n\n")
	if len(cmp.Aggregates) > 0 {
		sb.WriteString("| Supplier | Total Score | Quoted Items |\n")
		sb.WriteString("|----------|-------------|--------------|\n")
		for _, agg := range cmp.Aggregates {
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %d |\n",
				names[agg.SupplierID], agg.TotalScore, agg.QuotedItems))
		}
	} else {
		sb.WriteString("No suppliers to rank.\n")
	}
	sb.WriteString("\n")

	// Item Metrics
	sb.WriteString("## Item Metrics\n\n")
	if len(cmp.Metrics) > 0 {
		sb.WriteString("| Item | Quotes | Min Price | Max Price | Spread % | Best Supplier |\n")
		sb.WriteString("|------|--------|-----------|-----------|----------|---------------|\n")
		for _, item := range cmp.Items {
			m, ok := cmp.Metrics[item.ItemID]
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("| %s | %d | %.2f | %.2f | %.2f | %s |\n",
				item.Description, m.QualifyingQuotes, m.MinBasePrice, m.MaxBasePrice,
				m.SpreadPct, names[m.BestSupplierID]))
		}
	} else {
		sb.WriteString("No priced quotes received.\n")
	}
	sb.WriteString("\n")

	// Recommendation
	sb.WriteString("## Recommendation\n\n")
	if cmp.RecommendedSupplierID != "" {
		sb.WriteString(fmt.Sprintf("Recommended supplier: **%s**\n", names[cmp.RecommendedSupplierID]))
	} else {
		sb.WriteString("No recommendation: no quotes received.\n")
	}

	return sb.String()
}

func supplierNames(suppliers []domain.Supplier) map[string]string {
	names := make(map[string]string, len(suppliers))
	for _, s := range suppliers {
		names[s.SupplierID] = s.Name
	}
	return names
}
