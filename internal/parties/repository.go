package parties

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khata-app/khata-server/internal/platform/db"
	"github.com/khata-app/khata-server/internal/shared"
)

// Repository defines data access for parties.
type Repository interface {
	Create(ctx context.Context, p Party) (int64, error)
	Get(ctx context.Context, ownerID, id int64) (*Party, error)
	List(ctx context.Context, req ListPartiesRequest) ([]PartyWithBalance, error)
	Update(ctx context.Context, ownerID, id int64, p Party) error
	CascadeDelete(ctx context.Context, ownerID, id int64) (DeleteResult, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const partyColumns = `id, owner_id, name, mobile, address, type, opening_balance, status, created_at, updated_at`

func (r *repository) Create(ctx context.Context, p Party) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO parties (owner_id, name, mobile, address, type, opening_balance, status)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		p.OwnerID, p.Name, p.Mobile, p.Address, p.Type, p.OpeningBalance, p.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("parties: create: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, ownerID, id int64) (*Party, error) {
	var p Party
	err := r.pool.QueryRow(ctx, `SELECT `+partyColumns+` FROM parties WHERE id = $1 AND owner_id = $2`, id, ownerID).
		Scan(&p.ID, &p.OwnerID, &p.Name, &p.Mobile, &p.Address, &p.Type, &p.OpeningBalance, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns parties with their balances computed in a single grouped
// query instead of one ledger scan per party.
func (r *repository) List(ctx context.Context, req ListPartiesRequest) ([]PartyWithBalance, error) {
	query := `SELECT p.id, p.owner_id, p.name, p.mobile, p.address, p.type, p.opening_balance, p.status, p.created_at, p.updated_at,
p.opening_balance
+ COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'debit'), 0)
- COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'credit'), 0) AS balance
FROM parties p
LEFT JOIN transactions t ON t.party_id = p.id
WHERE p.owner_id = $1`
	args := []any{req.OwnerID}
	argPos := 2

	if req.Type != nil {
		query += fmt.Sprintf(" AND p.type = $%d", argPos)
		args = append(args, *req.Type)
		argPos++
	}
	if req.Status != nil {
		query += fmt.Sprintf(" AND p.status = $%d", argPos)
		args = append(args, *req.Status)
		argPos++
	}
	if req.Search != nil {
		query += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.mobile ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+*req.Search+"%")
		argPos++
	}

	query += " GROUP BY p.id ORDER BY p.name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parties []PartyWithBalance
	for rows.Next() {
		var p PartyWithBalance
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Mobile, &p.Address, &p.Type, &p.OpeningBalance, &p.Status, &p.CreatedAt, &p.UpdatedAt, &p.Balance); err != nil {
			return nil, err
		}
		parties = append(parties, p)
	}
	return parties, rows.Err()
}

func (r *repository) Update(ctx context.Context, ownerID, id int64, p Party) error {
	tag, err := r.pool.Exec(ctx, `UPDATE parties SET name = $1, mobile = $2, address = $3, type = $4, opening_balance = $5, status = $6, updated_at = NOW()
WHERE id = $7 AND owner_id = $8`,
		p.Name, p.Mobile, p.Address, p.Type, p.OpeningBalance, p.Status, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CascadeDelete removes the party and every dependent row in one atomic
// unit: transactions, invoice items, payments, invoices, then the party.
func (r *repository) CascadeDelete(ctx context.Context, ownerID, id int64) (DeleteResult, error) {
	var result DeleteResult
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM parties WHERE id = $1 AND owner_id = $2)`, id, ownerID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return shared.ErrNotFound
		}

		tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE party_id = $1 AND owner_id = $2`, id, ownerID)
		if err != nil {
			return fmt.Errorf("delete transactions: %w", err)
		}
		result.Transactions = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id IN (SELECT id FROM invoices WHERE party_id = $1 AND owner_id = $2)`, id, ownerID)
		if err != nil {
			return fmt.Errorf("delete invoice items: %w", err)
		}
		result.InvoiceItems = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM payments WHERE party_id = $1 AND owner_id = $2`, id, ownerID)
		if err != nil {
			return fmt.Errorf("delete payments: %w", err)
		}
		result.Payments = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM invoices WHERE party_id = $1 AND owner_id = $2`, id, ownerID)
		if err != nil {
			return fmt.Errorf("delete invoices: %w", err)
		}
		result.Invoices = tag.RowsAffected()

		if _, err := tx.Exec(ctx, `DELETE FROM parties WHERE id = $1 AND owner_id = $2`, id, ownerID); err != nil {
			return fmt.Errorf("delete party: %w", err)
		}
		return nil
	})
	if err != nil {
		return DeleteResult{}, err
	}
	return result, nil
}
