package postgres

import (
	"context"
	"fmt"

	"github.com/Burtinsaw/PROC-sub000/internal/domain"
	"github.com/Burtinsaw/PROC-sub000/internal/storage"
)

// RFQStore implements storage.RFQStore using PostgreSQL.
type RFQStore struct {
	pool *Pool
}

// NewRFQStore creates a new RFQStore.
func NewRFQStore(pool *Pool) *RFQStore {
	return &RFQStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RFQStore = (*RFQStore)(nil)

// Insert adds a new RFQ with its items and suppliers in one transaction.
// Returns ErrDuplicateKey if rfq_id exists.
func (s *RFQStore) Insert(ctx context.Context, r *domain.RFQ) error {
	if r == nil || r.RFQID == "" {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin rfq insert: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO rfqs (rfq_id, rfq_number, title, status, base_currency, awarded_supplier_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.RFQID, r.RFQNumber, r.Title, r.Status, r.BaseCurrency, r.AwardedSupplierID, r.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert rfq: %w", err)
	}

	// Position columns keep the document order the RFQ was created with.
	for i, item := range r.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO rfq_items (rfq_id, item_id, description, quantity, unit, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, r.RFQID, item.ItemID, item.Description, item.Quantity, item.Unit, i)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert rfq item: %w", err)
		}
	}

	for i, sup := range r.Suppliers {
		_, err = tx.Exec(ctx, `
			INSERT INTO rfq_suppliers (rfq_id, supplier_id, name, position)
			VALUES ($1, $2, $3, $4)
		`, r.RFQID, sup.SupplierID, sup.Name, i)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert rfq supplier: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit rfq insert: %w", err)
	}
	return nil
}

// GetByID retrieves an RFQ with its items and suppliers. Returns ErrNotFound if not exists.
func (s *RFQStore) GetByID(ctx context.Context, rfqID string) (*domain.RFQ, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT rfq_id, rfq_number, title, status, base_currency, awarded_supplier_id, created_at
		FROM rfqs
		WHERE rfq_id = $1
	`, rfqID)

	var r domain.RFQ
	err := row.Scan(&r.RFQID, &r.RFQNumber, &r.Title, &r.Status, &r.BaseCurrency, &r.AwardedSupplierID, &r.CreatedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get rfq by id: %w", err)
	}

	r.Items, err = s.getItems(ctx, rfqID)
	if err != nil {
		return nil, err
	}
	r.Suppliers, err = s.getSuppliers(ctx, rfqID)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// SetAwardedSupplier records the committed award decision for an RFQ.
func (s *RFQStore) SetAwardedSupplier(ctx context.Context, rfqID, supplierID string) error {
	if supplierID == "" {
		return storage.ErrInvalidInput
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE rfqs SET awarded_supplier_id = $2, status = 'awarded'
		WHERE rfq_id = $1
	`, rfqID, supplierID)
	if err != nil {
		return fmt.Errorf("set awarded supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *RFQStore) getItems(ctx context.Context, rfqID string) ([]domain.Item, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT item_id, description, quantity, unit
		FROM rfq_items
		WHERE rfq_id = $1
		ORDER BY position ASC
	`, rfqID)
	if err != nil {
		return nil, fmt.Errorf("get rfq items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ItemID, &it.Description, &it.Quantity, &it.Unit); err != nil {
			return nil, fmt.Errorf("scan rfq item row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rfq item rows: %w", err)
	}
	return items, nil
}

func (s *RFQStore) getSuppliers(ctx context.Context, rfqID string) ([]domain.Supplier, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT supplier_id, name
		FROM rfq_suppliers
		WHERE rfq_id = $1
		ORDER BY position ASC
	`, rfqID)
	if err != nil {
		return nil, fmt.Errorf("get rfq suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		var sup domain.Supplier
		if err := rows.Scan(&sup.SupplierID, &sup.Name); err != nil {
			return nil, fmt.Errorf("scan rfq supplier row: %w", err)
		}
		suppliers = append(suppliers, sup)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rfq supplier rows: %w", err)
	}
	return suppliers, nil
}
