package comparison

import "github.com/Burtinsaw/PROC-sub000/internal/domain"

// Normalize converts a quote's unit price into the RFQ base currency.
// A quote already in the base currency is taken as-is, ignoring its FX rate.
// A missing or non-positive FX rate degrades to rate 1 so the matrix always
// renders; the engine never blocks on missing FX data.
func Normalize(q domain.Quote, baseCurrency string) domain.NormalizedQuote {
	base := q.UnitPrice
	if q.Currency != baseCurrency {
		rate := q.FxRateToBase
		if rate <= 0 {
			rate = 1
		}
		base = q.UnitPrice * rate
	}
	return domain.NormalizedQuote{Quote: q, UnitPriceBase: base}
}

// NormalizeAll normalizes a quote list, preserving input order.
func NormalizeAll(quotes []domain.Quote, baseCurrency string) []domain.NormalizedQuote {
	normalized := make([]domain.NormalizedQuote, len(quotes))
	for i, q := range quotes {
		normalized[i] = Normalize(q, baseCurrency)
	}
	return normalized
}
