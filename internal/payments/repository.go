package payments

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

// Repository defines data access for payments.
type Repository interface {
	// Create inserts the payment, advances the linked invoice's paid state
	// and appends the debit ledger transaction, all in one transaction.
	Create(ctx context.Context, p Payment) (*Payment, error)
	List(ctx context.Context, req ListPaymentsRequest) ([]Payment, error)
	PartyExists(ctx context.Context, ownerID, partyID int64) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, p Payment) (*Payment, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `INSERT INTO payments (owner_id, party_id, invoice_id, amount, payment_date, payment_method, reference, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`,
			p.OwnerID, p.PartyID, p.InvoiceID, p.Amount, p.PaymentDate, p.Method, p.Reference, p.Notes).
			Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		if p.InvoiceID != nil {
			var paid, total decimal.Decimal
			err := tx.QueryRow(ctx, `SELECT paid_amount, total_amount FROM invoices WHERE id = $1 AND owner_id = $2 FOR UPDATE`,
				*p.InvoiceID, p.OwnerID).Scan(&paid, &total)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("%w: invoice %d", shared.ErrNotFound, *p.InvoiceID)
				}
				return err
			}
			newPaid, status := Reconcile(paid, total, p.Amount)
			if _, err := tx.Exec(ctx, `UPDATE invoices SET paid_amount = $1, payment_status = $2, updated_at = NOW() WHERE id = $3`,
				newPaid, status, *p.InvoiceID); err != nil {
				return fmt.Errorf("update invoice paid state: %w", err)
			}
		}

		if _, err := tx.Exec(ctx, `INSERT INTO transactions (owner_id, party_id, type, amount, transaction_date, reference_type, reference_id)
VALUES ($1, $2, 'debit', $3, $4, 'payment', $5)`,
			p.OwnerID, p.PartyID, p.Amount, p.PaymentDate, p.ID); err != nil {
			return fmt.Errorf("insert ledger transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, req ListPaymentsRequest) ([]Payment, error) {
	query := `SELECT id, owner_id, party_id, invoice_id, amount, payment_date, payment_method, reference, notes, created_at
FROM payments WHERE owner_id = $1`
	args := []any{req.OwnerID}
	argPos := 2

	if req.PartyID != nil {
		query += fmt.Sprintf(" AND party_id = $%d", argPos)
		args = append(args, *req.PartyID)
		argPos++
	}
	if req.InvoiceID != nil {
		query += fmt.Sprintf(" AND invoice_id = $%d", argPos)
		args = append(args, *req.InvoiceID)
		argPos++
	}
	if req.DateFrom != nil {
		query += fmt.Sprintf(" AND payment_date >= $%d", argPos)
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		query += fmt.Sprintf(" AND payment_date <= $%d", argPos)
		args = append(args, *req.DateTo)
		argPos++
	}

	query += " ORDER BY payment_date DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.PartyID, &p.InvoiceID, &p.Amount, &p.PaymentDate, &p.Method, &p.Reference, &p.Notes, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) PartyExists(ctx context.Context, ownerID, partyID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM parties WHERE id = $1 AND owner_id = $2)`, partyID, ownerID).Scan(&exists)
	return exists, err
}
