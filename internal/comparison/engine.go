// Package comparison implements the quote comparison and award scoring
// engine: currency normalization, the (supplier, item) matrix, per-item
// price metrics, weighted quote scoring, supplier aggregation and award
// resolution. Everything here is a pure function over in-memory data; the
// engine never performs I/O and never mutates its inputs.
package comparison

import "github.com/Burtinsaw/PROC-sub000/internal/domain"

// Input is one engine recompute request: the RFQ data plus the live
// price/lead weight. The engine treats all of it as read-only.
type Input struct {
	BaseCurrency string
	Items        []domain.Item
	Suppliers    []domain.Supplier
	Quotes       []domain.Quote
	PriceWeight  int
}

// Compute runs the full pipeline: normalize, build the matrix, compute item
// metrics, score quotes, aggregate suppliers and resolve the award
// recommendation. Deterministic and side-effect free, so the host may call
// it on every state change (weight slider, visibility toggle, quote
// refresh) without caching concerns; cost is O(items x suppliers).
func Compute(in Input) *domain.Comparison {
	normalized := NormalizeAll(in.Quotes, in.BaseCurrency)
	matrix := BuildMatrix(in.Items, in.Suppliers, normalized)
	metrics := ComputeItemMetrics(matrix)
	scores := ScoreQuotes(matrix, metrics, in.PriceWeight)
	aggregates := AggregateSuppliers(matrix, scores)

	return &domain.Comparison{
		BaseCurrency:          in.BaseCurrency,
		PriceWeight:           ClampWeight(in.PriceWeight),
		Items:                 matrix.Items,
		Suppliers:             matrix.Suppliers,
		Cells:                 matrix.Cells,
		Metrics:               metrics,
		Scores:                scores,
		Aggregates:            aggregates,
		RecommendedSupplierID: ResolveAward(aggregates, len(in.Quotes)),
	}
}
