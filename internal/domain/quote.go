package domain

// Quote is one supplier's offer for one RFQ item. At most one quote is kept
// per (supplier, item) pair; a pair with no quote means the supplier did not
// bid that item. Quotes are read-only inputs to the comparison engine.
// Corresponds to the quotes table in PostgreSQL.
type Quote struct {
	QuoteID      string
	RFQID        string
	SupplierID   string
	ItemID       string
	UnitPrice    float64
	Currency     string
	FxRateToBase float64 // conversion rate into the RFQ base currency, <= 0 means unknown
	LeadTimeDays int     // <= 0 means not provided
	CreatedAt    int64   // Unix timestamp in milliseconds
}

// NormalizedQuote is a Quote with its unit price converted into the RFQ
// base currency. Derived, never persisted.
type NormalizedQuote struct {
	Quote
	UnitPriceBase float64
}
