package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/Burtinsaw/PROC-sub000/internal/domain"
	"github.com/Burtinsaw/PROC-sub000/internal/storage"
)

func sampleRFQ() *domain.RFQ {
	return &domain.RFQ{
		RFQID:        "rfq1",
		RFQNumber:    "RFQ-2025-001",
		Title:        "Pipe fittings",
		Status:       "sent",
		BaseCurrency: "TRY",
		Items: []domain.Item{
			{ItemID: "i1", Description: "Steel pipe", Quantity: 100, Unit: "m"},
			{ItemID: "i2", Description: "Valve", Quantity: 20, Unit: "pcs"},
		},
		Suppliers: []domain.Supplier{
			{SupplierID: "s1", Name: "Acme"},
			{SupplierID: "s2", Name: "Bolt & Co"},
		},
		CreatedAt: 1704067200000,
	}
}

func TestRFQStore_InsertAndGet(t *testing.T) {
	store := NewRFQStore()
	ctx := context.Background()

	if err := store.Insert(ctx, sampleRFQ()); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "rfq1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.RFQNumber != "RFQ-2025-001" {
		t.Errorf("RFQNumber mismatch: got %s", got.RFQNumber)
	}
	if len(got.Items) != 2 || got.Items[0].ItemID != "i1" {
		t.Errorf("items not preserved in input order: %+v", got.Items)
	}
	if len(got.Suppliers) != 2 || got.Suppliers[0].SupplierID != "s1" {
		t.Errorf("suppliers not preserved in input order: %+v", got.Suppliers)
	}
}

func TestRFQStore_DuplicateKey(t *testing.T) {
	store := NewRFQStore()
	ctx := context.Background()

	if err := store.Insert(ctx, sampleRFQ()); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	err := store.Insert(ctx, sampleRFQ())
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestRFQStore_NotFound(t *testing.T) {
	store := NewRFQStore()

	_, err := store.GetByID(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRFQStore_SetAwardedSupplier(t *testing.T) {
	store := NewRFQStore()
	ctx := context.Background()

	if err := store.Insert(ctx, sampleRFQ()); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.SetAwardedSupplier(ctx, "rfq1", "s2"); err != nil {
		t.Fatalf("SetAwardedSupplier failed: %v", err)
	}

	got, err := store.GetByID(ctx, "rfq1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.AwardedSupplierID == nil || *got.AwardedSupplierID != "s2" {
		t.Errorf("AwardedSupplierID = %v, want s2", got.AwardedSupplierID)
	}

	err = store.SetAwardedSupplier(ctx, "missing", "s1")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRFQStore_ReturnsCopies(t *testing.T) {
	store := NewRFQStore()
	ctx := context.Background()

	if err := store.Insert(ctx, sampleRFQ()); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, _ := store.GetByID(ctx, "rfq1")
	got.Items[0].Description = "mutated"
	got.Title = "mutated"

	again, _ := store.GetByID(ctx, "rfq1")
	if again.Items[0].Description != "Steel pipe" || again.Title != "Pipe fittings" {
		t.Error("stored RFQ was mutated through a returned copy")
	}
}
