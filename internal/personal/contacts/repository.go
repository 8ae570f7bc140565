package contacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/khata-app/khata-server/internal/platform/db"
	"github.com/khata-app/khata-server/internal/shared"
)

// Repository defines data access for personal contacts.
type Repository interface {
	Create(ctx context.Context, c Contact) (int64, error)
	Get(ctx context.Context, ownerID, id int64) (*Contact, error)
	List(ctx context.Context, req ListContactsRequest) ([]ContactWithBalance, error)
	Update(ctx context.Context, ownerID, id int64, c Contact) error
	Delete(ctx context.Context, ownerID, id int64) (deletedTxns int64, err error)
	SumByContact(ctx context.Context, ownerID, contactID int64) (given, received decimal.Decimal, err error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const contactColumns = `id, owner_id, name, mobile, relationship, opening_balance, status, created_at, updated_at`

func (r *repository) Create(ctx context.Context, c Contact) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO personal_contacts (owner_id, name, mobile, relationship, opening_balance, status)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		c.OwnerID, c.Name, c.Mobile, c.Relationship, c.OpeningBalance, c.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("contacts: create: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, ownerID, id int64) (*Contact, error) {
	var c Contact
	err := r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM personal_contacts WHERE id = $1 AND owner_id = $2`, id, ownerID).
		Scan(&c.ID, &c.OwnerID, &c.Name, &c.Mobile, &c.Relationship, &c.OpeningBalance, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, req ListContactsRequest) ([]ContactWithBalance, error) {
	query := `SELECT c.id, c.owner_id, c.name, c.mobile, c.relationship, c.opening_balance, c.status, c.created_at, c.updated_at,
c.opening_balance
+ COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'given'), 0)
- COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'received'), 0) AS balance
FROM personal_contacts c
LEFT JOIN personal_transactions t ON t.personal_contact_id = c.id
WHERE c.owner_id = $1`
	args := []any{req.OwnerID}
	argPos := 2

	if req.Relationship != nil {
		query += fmt.Sprintf(" AND c.relationship = $%d", argPos)
		args = append(args, *req.Relationship)
		argPos++
	}
	if req.Status != nil {
		query += fmt.Sprintf(" AND c.status = $%d", argPos)
		args = append(args, *req.Status)
		argPos++
	}
	if req.Search != nil {
		query += fmt.Sprintf(" AND (c.name ILIKE $%d OR c.mobile ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+*req.Search+"%")
		argPos++
	}

	query += " GROUP BY c.id ORDER BY c.name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ContactWithBalance
	for rows.Next() {
		var c ContactWithBalance
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Mobile, &c.Relationship, &c.OpeningBalance, &c.Status, &c.CreatedAt, &c.UpdatedAt, &c.Balance); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) Update(ctx context.Context, ownerID, id int64, c Contact) error {
	tag, err := r.pool.Exec(ctx, `UPDATE personal_contacts SET name = $1, mobile = $2, relationship = $3, opening_balance = $4, status = $5, updated_at = NOW()
WHERE id = $6 AND owner_id = $7`,
		c.Name, c.Mobile, c.Relationship, c.OpeningBalance, c.Status, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the contact and its personal transactions together.
func (r *repository) Delete(ctx context.Context, ownerID, id int64) (int64, error) {
	var deleted int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM personal_transactions WHERE personal_contact_id = $1 AND owner_id = $2`, id, ownerID)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected()
		tag, err = tx.Exec(ctx, `DELETE FROM personal_contacts WHERE id = $1 AND owner_id = $2`, id, ownerID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *repository) SumByContact(ctx context.Context, ownerID, contactID int64) (decimal.Decimal, decimal.Decimal, error) {
	var given, received decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT
COALESCE(SUM(amount) FILTER (WHERE type = 'given'), 0),
COALESCE(SUM(amount) FILTER (WHERE type = 'received'), 0)
FROM personal_transactions WHERE personal_contact_id = $1 AND owner_id = $2`, contactID, ownerID).Scan(&given, &received)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return given, received, nil
}
