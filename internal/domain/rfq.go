package domain

// RFQ represents a request-for-quotation with its line items and the
// suppliers invited to bid. Corresponds to the rfqs table in PostgreSQL.
type RFQ struct {
	RFQID             string
	RFQNumber         string
	Title             string
	Status            string
	BaseCurrency      string  // currency all quotes are normalized into
	AwardedSupplierID *string // set once an award is committed (nullable)
	Items             []Item
	Suppliers         []Supplier
	CreatedAt         int64 // Unix timestamp in milliseconds
}

// Item is one RFQ line item. Immutable for the lifetime of a comparison.
type Item struct {
	ItemID      string
	Description string
	Quantity    float64
	Unit        string
}

// Supplier is an invited bidder. Immutable; supplied externally.
type Supplier struct {
	SupplierID string
	Name       string
}
