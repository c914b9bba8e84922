package domain

// DeviationTier classifies how far a quote's base price sits above the item
// minimum. Used for presentation only, never for scoring.
type DeviationTier string

const (
	TierBest     DeviationTier = "best"     // deviation == 0
	TierModerate DeviationTier = "moderate" // 0 < deviation < 10%
	TierHigh     DeviationTier = "high"     // deviation >= 10%
)

// ItemMetrics holds per-item price statistics over qualifying quotes
// (strictly positive base price). Recomputed whenever the quote set changes;
// never persisted. Items with zero qualifying quotes have no metrics.
type ItemMetrics struct {
	ItemID           string
	QualifyingQuotes int
	MinBasePrice     float64
	MaxBasePrice     float64
	SpreadPct        float64 // (max - min) / min * 100, 0 with a single qualifying quote
	BestSupplierID   string  // first supplier in input order achieving MinBasePrice
}

// QuoteScore holds the per-quote subscores and their weighted blend.
// Recomputed whenever the quote set or the price/lead weight changes.
type QuoteScore struct {
	QuoteID      string
	SupplierID   string
	ItemID       string
	PriceScore   float64 // 100 for the cheapest qualifying quote on the item
	LeadScore    float64 // 100 for the fastest usable lead time on the item
	OverallScore float64 // (price*w + lead*(100-w)) / 100
	DeviationPct float64
	Tier         DeviationTier
}

// SupplierAggregate sums a supplier's overall scores across all items.
// Suppliers with zero quotes aggregate to 0, they are never omitted.
type SupplierAggregate struct {
	SupplierID  string
	TotalScore  float64
	QuotedItems int
}

// Comparison is the full output of one engine recompute: the normalized
// matrix plus every derived metric, score and the award recommendation.
// It is immutable once returned; a state change produces a new Comparison.
type Comparison struct {
	BaseCurrency string
	PriceWeight  int

	// Row/column order is preserved from the engine input.
	Items     []Item
	Suppliers []Supplier

	// Cells is the dense matrix lookup keyed "<supplierID>:<itemID>".
	// Missing keys mean the supplier did not quote the item.
	Cells map[string]*NormalizedQuote

	// Metrics is keyed by item id; items with no qualifying quote are absent.
	Metrics map[string]*ItemMetrics

	// Scores is keyed by quote id. Quotes on items without a qualifying
	// quote are not scored.
	Scores map[string]*QuoteScore

	// Aggregates follows the supplier input order.
	Aggregates []SupplierAggregate

	// RecommendedSupplierID is advisory only; empty means no recommendation.
	RecommendedSupplierID string
}
