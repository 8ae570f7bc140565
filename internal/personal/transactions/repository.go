package transactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khata-app/khata-server/internal/shared"
)

// Repository defines data access for personal transactions.
type Repository interface {
	Insert(ctx context.Context, t Transaction) (*Transaction, error)
	Get(ctx context.Context, ownerID, id int64) (*Transaction, error)
	List(ctx context.Context, req ListTransactionsRequest) ([]TransactionWithContact, error)
	Update(ctx context.Context, ownerID, id int64, t Transaction) error
	Delete(ctx context.Context, ownerID, id int64) error
	ContactExists(ctx context.Context, ownerID, contactID int64) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const txnColumns = `id, owner_id, personal_contact_id, type, amount, transaction_date, payment_method, reference, notes, created_at, updated_at`

func (r *repository) Insert(ctx context.Context, t Transaction) (*Transaction, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO personal_transactions (owner_id, personal_contact_id, type, amount, transaction_date, payment_method, reference, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at, updated_at`,
		t.OwnerID, t.ContactID, t.Type, t.Amount, t.TransactionDate, t.PaymentMethod, t.Reference, t.Notes).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("personal transactions: insert: %w", err)
	}
	return &t, nil
}

func (r *repository) Get(ctx context.Context, ownerID, id int64) (*Transaction, error) {
	var t Transaction
	err := r.pool.QueryRow(ctx, `SELECT `+txnColumns+` FROM personal_transactions WHERE id = $1 AND owner_id = $2`, id, ownerID).
		Scan(&t.ID, &t.OwnerID, &t.ContactID, &t.Type, &t.Amount, &t.TransactionDate, &t.PaymentMethod, &t.Reference, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) List(ctx context.Context, req ListTransactionsRequest) ([]TransactionWithContact, error) {
	query := `SELECT t.id, t.owner_id, t.personal_contact_id, t.type, t.amount, t.transaction_date, t.payment_method, t.reference, t.notes, t.created_at, t.updated_at, c.name
FROM personal_transactions t JOIN personal_contacts c ON c.id = t.personal_contact_id
WHERE t.owner_id = $1`
	args := []any{req.OwnerID}
	argPos := 2

	if req.ContactID != nil {
		query += fmt.Sprintf(" AND t.personal_contact_id = $%d", argPos)
		args = append(args, *req.ContactID)
		argPos++
	}
	if req.Type != nil {
		query += fmt.Sprintf(" AND t.type = $%d", argPos)
		args = append(args, *req.Type)
		argPos++
	}
	if req.DateFrom != nil {
		query += fmt.Sprintf(" AND t.transaction_date >= $%d", argPos)
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		query += fmt.Sprintf(" AND t.transaction_date <= $%d", argPos)
		args = append(args, *req.DateTo)
		argPos++
	}

	query += " ORDER BY t.transaction_date DESC, t.id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TransactionWithContact
	for rows.Next() {
		var t TransactionWithContact
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.ContactID, &t.Type, &t.Amount, &t.TransactionDate, &t.PaymentMethod, &t.Reference, &t.Notes, &t.CreatedAt, &t.UpdatedAt, &t.ContactName); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repository) Update(ctx context.Context, ownerID, id int64, t Transaction) error {
	tag, err := r.pool.Exec(ctx, `UPDATE personal_transactions SET type = $1, amount = $2, transaction_date = $3, payment_method = $4, reference = $5, notes = $6, updated_at = NOW()
WHERE id = $7 AND owner_id = $8`,
		t.Type, t.Amount, t.TransactionDate, t.PaymentMethod, t.Reference, t.Notes, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM personal_transactions WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) ContactExists(ctx context.Context, ownerID, contactID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM personal_contacts WHERE id = $1 AND owner_id = $2)`, contactID, ownerID).Scan(&exists)
	return exists, err
}
