package domain

// DefaultPriceWeight is the price share of the overall score, in percent,
// used when no persisted preferences exist. The lead-time weight is always
// the complement (100 - price weight).
const DefaultPriceWeight = 70

// ComparisonPrefs are the operator's comparison settings for one RFQ:
// the price/lead weighting and which supplier columns are shown. Visibility
// never affects scoring, only presentation and export.
// Corresponds to the comparison_prefs table in PostgreSQL, keyed by rfq_id.
type ComparisonPrefs struct {
	RFQID              string
	PriceWeight        int // in [0, 100]
	VisibleSupplierIDs []string
	UpdatedAt          int64 // Unix timestamp in milliseconds
}

// DefaultPrefs returns the initial preferences for an RFQ: price weight 70
// and every supplier visible.
func DefaultPrefs(rfqID string, suppliers []Supplier) *ComparisonPrefs {
	visible := make([]string, len(suppliers))
	for i, s := range suppliers {
		visible[i] = s.SupplierID
	}
	return &ComparisonPrefs{
		RFQID:              rfqID,
		PriceWeight:        DefaultPriceWeight,
		VisibleSupplierIDs: visible,
	}
}
