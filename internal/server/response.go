package server

import (
	"github.com/Burtinsaw/PROC-sub000/internal/comparison"
	"github.com/Burtinsaw/PROC-sub000/internal/domain"
	"github.com/Burtinsaw/PROC-sub000/internal/session"
)

type itemView struct {
	ItemID      string  `json:"itemId"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
}

type supplierView struct {
	SupplierID string `json:"supplierId"`
	Name       string `json:"name"`
}

type rfqView struct {
	RFQID             string         `json:"rfqId"`
	RFQNumber         string         `json:"rfqNumber"`
	Title             string         `json:"title"`
	Status            string         `json:"status"`
	BaseCurrency      string         `json:"baseCurrency"`
	AwardedSupplierID *string        `json:"awardedSupplierId"`
	Items             []itemView     `json:"items"`
	Suppliers         []supplierView `json:"suppliers"`
	CreatedAt         int64          `json:"createdAt"`
}

func rfqResponse(rfq *domain.RFQ) rfqView {
	view := rfqView{
		RFQID:             rfq.RFQID,
		RFQNumber:         rfq.RFQNumber,
		Title:             rfq.Title,
		Status:            rfq.Status,
		BaseCurrency:      rfq.BaseCurrency,
		AwardedSupplierID: rfq.AwardedSupplierID,
		Items:             []itemView{},
		Suppliers:         []supplierView{},
		CreatedAt:         rfq.CreatedAt,
	}
	for _, it := range rfq.Items {
		view.Items = append(view.Items, itemView{it.ItemID, it.Description, it.Quantity, it.Unit})
	}
	for _, sup := range rfq.Suppliers {
		view.Suppliers = append(view.Suppliers, supplierView{sup.SupplierID, sup.Name})
	}
	return view
}

type rfqInfoView struct {
	RFQNumber    string `json:"rfqNumber"`
	Title        string `json:"title"`
	TotalItems   int    `json:"totalItems"`
	TotalQuotes  int    `json:"totalQuotes"`
	BaseCurrency string `json:"baseCurrency"`
}

type quoteCellView struct {
	SupplierID    string  `json:"supplierId"`
	Supplier      string  `json:"supplier"`
	UnitPrice     float64 `json:"unitPrice"`
	Currency      string  `json:"currency"`
	UnitPriceBase float64 `json:"unitPriceBase"`
	DeliveryTime  int     `json:"deliveryTime"`
	PriceScore    float64 `json:"priceScore"`
	LeadScore     float64 `json:"leadScore"`
	OverallScore  float64 `json:"overallScore"`
	DeviationPct  float64 `json:"deviationPct"`
	Tier          string  `json:"tier"`
}

type itemComparisonView struct {
	ItemID      string          `json:"itemId"`
	Description string          `json:"description"`
	Quantity    float64         `json:"quantity"`
	Unit        string          `json:"unit"`
	Quotes      []quoteCellView `json:"quotes"`
}

type supplierSummaryView struct {
	SupplierID   string  `json:"supplierId"`
	Supplier     string  `json:"supplier"`
	OverallScore float64 `json:"overallScore"`
	QuotedItems  int     `json:"itemCount"`
	Recommended  bool    `json:"recommended"`
}

type bestPriceView struct {
	ItemID         string  `json:"itemId"`
	Description    string  `json:"description"`
	BestSupplierID string  `json:"bestSupplierId"`
	BestSupplier   string  `json:"bestSupplier"`
	BestPrice      float64 `json:"bestPrice"`
	MaxPrice       float64 `json:"maxPrice"`
	SpreadPct      float64 `json:"spreadPct"`
}

type comparisonView struct {
	RFQInfo               rfqInfoView           `json:"rfqInfo"`
	ItemComparisons       []itemComparisonView  `json:"itemComparisons"`
	SupplierSummary       []supplierSummaryView `json:"supplierSummary"`
	BestPrices            []bestPriceView       `json:"bestPrices"`
	RecommendedSupplierID string                `json:"recommendedSupplierId"`
	AwardedSupplierID     string                `json:"awardedSupplierId"`
	VisibleSupplierIDs    []string              `json:"visibleSupplierIds"`
	PriceWeight           int                   `json:"priceWeight"`
}

// comparisonResponse flattens a computed comparison into the report shape
// the dashboard renders. The full supplier set is always included here;
// visibility is returned alongside for the client to apply.
func comparisonResponse(rfq *domain.RFQ, sess *session.Session) comparisonView {
	cmp := sess.Compute()

	names := make(map[string]string, len(cmp.Suppliers))
	for _, sup := range cmp.Suppliers {
		names[sup.SupplierID] = sup.Name
	}

	view := comparisonView{
		RFQInfo: rfqInfoView{
			RFQNumber:    rfq.RFQNumber,
			Title:        rfq.Title,
			TotalItems:   len(cmp.Items),
			TotalQuotes:  len(cmp.Cells),
			BaseCurrency: cmp.BaseCurrency,
		},
		ItemComparisons:       []itemComparisonView{},
		SupplierSummary:       []supplierSummaryView{},
		BestPrices:            []bestPriceView{},
		RecommendedSupplierID: cmp.RecommendedSupplierID,
		AwardedSupplierID:     sess.CommittedAward(),
		VisibleSupplierIDs:    sess.VisibleSupplierIDs(),
		PriceWeight:           cmp.PriceWeight,
	}

	for _, item := range cmp.Items {
		ic := itemComparisonView{
			ItemID:      item.ItemID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			Quotes:      []quoteCellView{},
		}
		for _, sup := range cmp.Suppliers {
			nq, ok := cmp.Cells[comparison.CellKey(sup.SupplierID, item.ItemID)]
			if !ok {
				continue
			}
			cell := quoteCellView{
				SupplierID:    sup.SupplierID,
				Supplier:      sup.Name,
				UnitPrice:     nq.UnitPrice,
				Currency:      nq.Currency,
				UnitPriceBase: nq.UnitPriceBase,
				DeliveryTime:  nq.LeadTimeDays,
			}
			if score, ok := cmp.Scores[nq.QuoteID]; ok {
				cell.PriceScore = score.PriceScore
				cell.LeadScore = score.LeadScore
				cell.OverallScore = score.OverallScore
				cell.DeviationPct = score.DeviationPct
				cell.Tier = string(score.Tier)
			}
			ic.Quotes = append(ic.Quotes, cell)
		}
		view.ItemComparisons = append(view.ItemComparisons, ic)

		if m, ok := cmp.Metrics[item.ItemID]; ok {
			view.BestPrices = append(view.BestPrices, bestPriceView{
				ItemID:         item.ItemID,
				Description:    item.Description,
				BestSupplierID: m.BestSupplierID,
				BestSupplier:   names[m.BestSupplierID],
				BestPrice:      m.MinBasePrice,
				MaxPrice:       m.MaxBasePrice,
				SpreadPct:      m.SpreadPct,
			})
		}
	}

	for _, agg := range cmp.Aggregates {
		view.SupplierSummary = append(view.SupplierSummary, supplierSummaryView{
			SupplierID:   agg.SupplierID,
			Supplier:     names[agg.SupplierID],
			OverallScore: agg.TotalScore,
			QuotedItems:  agg.QuotedItems,
			Recommended:  agg.SupplierID == cmp.RecommendedSupplierID,
		})
	}

	return view
}
