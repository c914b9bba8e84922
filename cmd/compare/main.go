// Package main scores a quote snapshot offline: it reads an RFQ with its
// quotes from a JSON file, runs the comparison engine at a given price
// weight and prints the ranking, optionally writing the CSV matrix.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Burtinsaw/PROC-sub000/internal/comparison"
	"github.com/Burtinsaw/PROC-sub000/internal/domain"
	"github.com/Burtinsaw/PROC-sub000/internal/reporting"
)

// snapshot is the JSON input shape: one RFQ and its quote list.
type snapshot struct {
	RFQNumber    string `json:"rfqNumber"`
	BaseCurrency string `json:"baseCurrency"`
	Items        []struct {
		ItemID      string  `json:"itemId"`
		Description string  `json:"description"`
		Quantity    float64 `json:"quantity"`
		Unit        string  `json:"unit"`
	} `json:"items"`
	Suppliers []struct {
		SupplierID string `json:"supplierId"`
		Name       string `json:"name"`
	} `json:"suppliers"`
	Quotes []struct {
		QuoteID      string  `json:"quoteId"`
		SupplierID   string  `json:"supplierId"`
		ItemID       string  `json:"itemId"`
		UnitPrice    float64 `json:"unitPrice"`
		Currency     string  `json:"currency"`
		FxRateToBase float64 `json:"fxRateToBase"`
		LeadTimeDays int     `json:"deliveryTime"`
	} `json:"quotes"`
}

func main() {
	input := flag.String("input", "", "Path to the RFQ snapshot JSON (required)")
	priceWeight := flag.Int("price-weight", domain.DefaultPriceWeight, "Price weight 0-100 (lead weight is the remainder)")
	awarded := flag.String("awarded", "", "Committed supplier id to mark in the CSV export")
	outCSV := flag.String("out-csv", "", "Write the comparison matrix CSV to this path")
	flag.Parse()

	logger := log.New(os.Stderr, "[compare] ", log.LstdFlags)

	if *input == "" {
		logger.Fatal("--input is required")
	}

	snap, err := loadSnapshot(*input)
	if err != nil {
		logger.Fatalf("Failed to load snapshot: %v", err)
	}

	in := comparison.Input{
		BaseCurrency: snap.BaseCurrency,
		PriceWeight:  *priceWeight,
	}
	for _, it := range snap.Items {
		in.Items = append(in.Items, domain.Item{
			ItemID:      it.ItemID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
		})
	}
	var visible []string
	for _, sup := range snap.Suppliers {
		in.Suppliers = append(in.Suppliers, domain.Supplier{SupplierID: sup.SupplierID, Name: sup.Name})
		visible = append(visible, sup.SupplierID)
	}
	for _, q := range snap.Quotes {
		in.Quotes = append(in.Quotes, domain.Quote{
			QuoteID:      q.QuoteID,
			SupplierID:   q.SupplierID,
			ItemID:       q.ItemID,
			UnitPrice:    q.UnitPrice,
			Currency:     q.Currency,
			FxRateToBase: q.FxRateToBase,
			LeadTimeDays: q.LeadTimeDays,
		})
	}

	cmp := comparison.Compute(in)

	fmt.Print(reporting.RenderMarkdown(snap.RFQNumber, cmp))

	if *outCSV != "" {
		csv := reporting.RenderCSV(cmp, visible, *awarded)
		if err := os.WriteFile(*outCSV, []byte(csv), 0644); err != nil {
			logger.Fatalf("Failed to write CSV: %v", err)
		}
		logger.Printf("Wrote %s", *outCSV)
	}
}

func loadSnapshot(path string) (*snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if snap.BaseCurrency == "" {
		snap.BaseCurrency = "TRY"
	}
	if len(snap.Items) == 0 || len(snap.Suppliers) == 0 {
		return nil, fmt.Errorf("snapshot needs at least one item and one supplier")
	}
	return &snap, nil
}
