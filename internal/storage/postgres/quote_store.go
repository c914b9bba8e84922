package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Burtinsaw/PROC-sub000/internal/domain"
	"github.com/Burtinsaw/PROC-sub000/internal/storage"
)

// QuoteStore implements storage.QuoteStore using PostgreSQL.
type QuoteStore struct {
	pool *Pool
	sb   sq.StatementBuilderType
}

// NewQuoteStore creates a new QuoteStore.
func NewQuoteStore(pool *Pool) *QuoteStore {
	return &QuoteStore{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Compile-time interface check.
var _ storage.QuoteStore = (*QuoteStore)(nil)

const quoteColumns = "quote_id, rfq_id, supplier_id, item_id, unit_price, currency, fx_rate_to_base, lead_time_days, created_at"

// Insert adds a new quote. Returns ErrDuplicateKey if quote_id exists.
func (s *QuoteStore) Insert(ctx context.Context, q *domain.Quote) error {
	if q == nil || q.QuoteID == "" || q.RFQID == "" || q.SupplierID == "" || q.ItemID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.pool.Exec(ctx, query,
		q.QuoteID, q.RFQID, q.SupplierID, q.ItemID,
		q.UnitPrice, q.Currency, q.FxRateToBase, q.LeadTimeDays, q.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// InsertBulk adds multiple quotes in one transaction. Fails the entire batch
// on any duplicate or invalid quote.
func (s *QuoteStore) InsertBulk(ctx context.Context, quotes []*domain.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin quote bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, q := range quotes {
		if q == nil || q.QuoteID == "" || q.RFQID == "" || q.SupplierID == "" || q.ItemID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			q.QuoteID, q.RFQID, q.SupplierID, q.ItemID,
			q.UnitPrice, q.Currency, q.FxRateToBase, q.LeadTimeDays, q.CreatedAt,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert quote in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit quote bulk insert: %w", err)
	}
	return nil
}

// GetByRFQ retrieves all quotes for an RFQ, ordered by created_at ASC, quote_id ASC.
func (s *QuoteStore) GetByRFQ(ctx context.Context, rfqID string) ([]*domain.Quote, error) {
	query, args, err := s.sb.
		Select(quoteColumns).
		From("quotes").
		Where(sq.Eq{"rfq_id": rfqID}).
		OrderBy("created_at ASC", "quote_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build quotes by rfq query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get quotes by rfq: %w", err)
	}
	defer rows.Close()

	return scanQuotes(rows)
}

// GetBySupplier retrieves one supplier's quotes for an RFQ.
func (s *QuoteStore) GetBySupplier(ctx context.Context, rfqID, supplierID string) ([]*domain.Quote, error) {
	query, args, err := s.sb.
		Select(quoteColumns).
		From("quotes").
		Where(sq.Eq{"rfq_id": rfqID, "supplier_id": supplierID}).
		OrderBy("created_at ASC", "quote_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build quotes by supplier query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get quotes by supplier: %w", err)
	}
	defer rows.Close()

	return scanQuotes(rows)
}

// scanQuotes scans multiple rows into a slice of Quote.
func scanQuotes(rows pgx.Rows) ([]*domain.Quote, error) {
	var quotes []*domain.Quote

	for rows.Next() {
		var q domain.Quote
		err := rows.Scan(
			&q.QuoteID, &q.RFQID, &q.SupplierID, &q.ItemID,
			&q.UnitPrice, &q.Currency, &q.FxRateToBase, &q.LeadTimeDays, &q.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quote row: %w", err)
		}
		quotes = append(quotes, &q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quote rows: %w", err)
	}

	return quotes, nil
}
