package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/khata-app/khata-server/internal/shared"
)

// Repository defines data access for the transaction ledger.
type Repository interface {
	Insert(ctx context.Context, txn Transaction) (int64, error)
	Get(ctx context.Context, ownerID, id int64) (*Transaction, error)
	List(ctx context.Context, req ListTransactionsRequest) ([]TransactionWithParty, error)
	Count(ctx context.Context, req ListTransactionsRequest) (int, error)
	Update(ctx context.Context, ownerID, id int64, updates map[string]any) error
	Delete(ctx context.Context, ownerID, id int64) error
	PartyExists(ctx context.Context, ownerID, partyID int64) (bool, error)
	SumByParty(ctx context.Context, ownerID, partyID int64) (debit, credit decimal.Decimal, err error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const transactionColumns = `id, owner_id, party_id, type, amount, transaction_date, note, reference_type, reference_id, created_at, updated_at`

func (r *repository) Insert(ctx context.Context, txn Transaction) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO transactions (owner_id, party_id, type, amount, transaction_date, note, reference_type, reference_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		txn.OwnerID, txn.PartyID, txn.Type, txn.Amount, txn.TransactionDate, txn.Note, txn.ReferenceType, txn.ReferenceID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ledger: insert transaction: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, ownerID, id int64) (*Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND owner_id = $2`, id, ownerID)
	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return txn, nil
}

func listFilters(req ListTransactionsRequest) (string, []any) {
	clause := ""
	args := []any{req.OwnerID}
	argPos := 2

	if req.PartyID != nil {
		clause += fmt.Sprintf(" AND t.party_id = $%d", argPos)
		args = append(args, *req.PartyID)
		argPos++
	}
	if req.Type != nil {
		clause += fmt.Sprintf(" AND t.type = $%d", argPos)
		args = append(args, *req.Type)
		argPos++
	}
	if req.DateFrom != nil {
		clause += fmt.Sprintf(" AND t.transaction_date >= $%d", argPos)
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		clause += fmt.Sprintf(" AND t.transaction_date <= $%d", argPos)
		args = append(args, *req.DateTo)
		argPos++
	}
	return clause, args
}

func (r *repository) List(ctx context.Context, req ListTransactionsRequest) ([]TransactionWithParty, error) {
	clause, args := listFilters(req)
	query := `SELECT t.id, t.owner_id, t.party_id, t.type, t.amount, t.transaction_date, t.note, t.reference_type, t.reference_id, t.created_at, t.updated_at, p.name
FROM transactions t
JOIN parties p ON t.party_id = p.id
WHERE t.owner_id = $1` + clause

	// Ties on date break by insertion order.
	query += " ORDER BY t.transaction_date DESC, t.id DESC"
	if req.PerPage > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", req.PerPage, (req.Page-1)*req.PerPage)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TransactionWithParty
	for rows.Next() {
		var t TransactionWithParty
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.PartyID, &t.Type, &t.Amount, &t.TransactionDate, &t.Note, &t.ReferenceType, &t.ReferenceID, &t.CreatedAt, &t.UpdatedAt, &t.PartyName); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *repository) Count(ctx context.Context, req ListTransactionsRequest) (int, error) {
	clause, args := listFilters(req)
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions t WHERE t.owner_id = $1`+clause, args...).Scan(&total)
	return total, err
}

func (r *repository) Update(ctx context.Context, ownerID, id int64, updates map[string]any) error {
	query := "UPDATE transactions SET updated_at = NOW()"
	var args []any
	argPos := 1

	for _, col := range []string{"party_id", "type", "amount", "transaction_date", "note"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d AND owner_id = $%d", argPos, argPos+1)
	args = append(args, id, ownerID)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) PartyExists(ctx context.Context, ownerID, partyID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM parties WHERE id = $1 AND owner_id = $2)`, partyID, ownerID).Scan(&exists)
	return exists, err
}

// SumByParty aggregates debit and credit totals in a single grouped query so
// balance reads stay one round-trip regardless of history size.
func (r *repository) SumByParty(ctx context.Context, ownerID, partyID int64) (decimal.Decimal, decimal.Decimal, error) {
	var debit, credit decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT
COALESCE(SUM(amount) FILTER (WHERE type = 'debit'), 0),
COALESCE(SUM(amount) FILTER (WHERE type = 'credit'), 0)
FROM transactions WHERE owner_id = $1 AND party_id = $2`, ownerID, partyID).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return debit, credit, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*Transaction, error) {
	var t Transaction
	if err := row.Scan(&t.ID, &t.OwnerID, &t.PartyID, &t.Type, &t.Amount, &t.TransactionDate, &t.Note, &t.ReferenceType, &t.ReferenceID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
