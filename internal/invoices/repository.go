package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khata-app/khata-server/internal/platform/db"
	"github.com/khata-app/khata-server/internal/shared"
	"github.com/khata-app/khata-server/internal/stock"
)

// Repository defines data access for invoices.
type Repository interface {
	// Create performs one numbering attempt: inside a single transaction it
	// derives the next sequence from the owner's invoice count, then inserts
	// the invoice, its items, one outbound stock movement per item, and the
	// credit ledger transaction. A duplicate invoice number surfaces as
	// shared.ErrConflict so the caller can retry with a fresh count.
	Create(ctx context.Context, inv Invoice, items []Item) (*Invoice, error)
	Get(ctx context.Context, ownerID, id int64) (*InvoiceDetail, error)
	List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceDetail, error)
	PartyExists(ctx context.Context, ownerID, partyID int64) (bool, error)
	MissingProducts(ctx context.Context, ownerID int64, ids []int64) ([]int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, inv Invoice, items []Item) (*Invoice, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var count int64
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE owner_id = $1`, inv.OwnerID).Scan(&count); err != nil {
			return fmt.Errorf("count invoices: %w", err)
		}
		inv.InvoiceNumber = FormatNumber(inv.InvoiceDate, count+1)

		err := tx.QueryRow(ctx, `INSERT INTO invoices (owner_id, party_id, invoice_number, invoice_date, subtotal, tax_amount, total_amount, paid_amount, payment_status, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at`,
			inv.OwnerID, inv.PartyID, inv.InvoiceNumber, inv.InvoiceDate, inv.Subtotal, inv.TaxAmount, inv.TotalAmount, inv.PaidAmount, inv.PaymentStatus, inv.Notes).
			Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: invoice number %s already taken", shared.ErrConflict, inv.InvoiceNumber)
			}
			return fmt.Errorf("insert invoice: %w", err)
		}

		for i := range items {
			items[i].InvoiceID = inv.ID
			err := tx.QueryRow(ctx, `INSERT INTO invoice_items (invoice_id, product_id, quantity, unit_price, tax_rate, tax_amount, total)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
				inv.ID, items[i].ProductID, items[i].Quantity, items[i].UnitPrice, items[i].TaxRate, items[i].TaxAmount, items[i].Total).
				Scan(&items[i].ID)
			if err != nil {
				return fmt.Errorf("insert invoice item: %w", err)
			}

			movement := stock.Movement{
				OwnerID:       inv.OwnerID,
				ProductID:     items[i].ProductID,
				Type:          stock.MovementOut,
				Quantity:      items[i].Quantity,
				UnitPrice:     &items[i].UnitPrice,
				ReferenceType: stock.ReferenceInvoice,
				ReferenceID:   &inv.ID,
			}
			if err := stock.ApplyTx(ctx, tx, &movement); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(ctx, `INSERT INTO transactions (owner_id, party_id, type, amount, transaction_date, reference_type, reference_id)
VALUES ($1, $2, 'credit', $3, $4, 'invoice', $5)`,
			inv.OwnerID, inv.PartyID, inv.TotalAmount, inv.InvoiceDate, inv.ID); err != nil {
			return fmt.Errorf("insert ledger transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

const detailColumns = `i.id, i.owner_id, i.party_id, i.invoice_number, i.invoice_date, i.subtotal, i.tax_amount, i.total_amount, i.paid_amount, i.payment_status, i.notes, i.created_at, i.updated_at, p.name`

func (r *repository) Get(ctx context.Context, ownerID, id int64) (*InvoiceDetail, error) {
	var d InvoiceDetail
	err := r.pool.QueryRow(ctx, `SELECT `+detailColumns+` FROM invoices i JOIN parties p ON p.id = i.party_id
WHERE i.id = $1 AND i.owner_id = $2`, id, ownerID).
		Scan(&d.ID, &d.OwnerID, &d.PartyID, &d.InvoiceNumber, &d.InvoiceDate, &d.Subtotal, &d.TaxAmount, &d.TotalAmount, &d.PaidAmount, &d.PaymentStatus, &d.Notes, &d.CreatedAt, &d.UpdatedAt, &d.PartyName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	if err := r.attachItems(ctx, map[int64]*InvoiceDetail{d.ID: &d}); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT id, amount, payment_date, payment_method, reference FROM payments WHERE invoice_id = $1 ORDER BY payment_date, id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p PaymentRecord
		if err := rows.Scan(&p.ID, &p.Amount, &p.PaymentDate, &p.Method, &p.Reference); err != nil {
			return nil, err
		}
		d.Payments = append(d.Payments, p)
	}
	return &d, rows.Err()
}

func (r *repository) List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM invoices i JOIN parties p ON p.id = i.party_id WHERE i.owner_id = $1`
	args := []any{req.OwnerID}
	argPos := 2

	if req.PartyID != nil {
		query += fmt.Sprintf(" AND i.party_id = $%d", argPos)
		args = append(args, *req.PartyID)
		argPos++
	}
	if req.PaymentStatus != nil {
		query += fmt.Sprintf(" AND i.payment_status = $%d", argPos)
		args = append(args, *req.PaymentStatus)
		argPos++
	}
	if req.DateFrom != nil {
		query += fmt.Sprintf(" AND i.invoice_date >= $%d", argPos)
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		query += fmt.Sprintf(" AND i.invoice_date <= $%d", argPos)
		args = append(args, *req.DateTo)
		argPos++
	}

	query += " ORDER BY i.invoice_date DESC, i.id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InvoiceDetail
	byID := map[int64]*InvoiceDetail{}
	for rows.Next() {
		var d InvoiceDetail
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.PartyID, &d.InvoiceNumber, &d.InvoiceDate, &d.Subtotal, &d.TaxAmount, &d.TotalAmount, &d.PaidAmount, &d.PaymentStatus, &d.Notes, &d.CreatedAt, &d.UpdatedAt, &d.PartyName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		byID[out[i].ID] = &out[i]
	}
	if err := r.attachItems(ctx, byID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) attachItems(ctx context.Context, invoices map[int64]*InvoiceDetail) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(invoices))
	for id := range invoices {
		ids = append(ids, id)
	}
	rows, err := r.pool.Query(ctx, `SELECT ii.id, ii.invoice_id, ii.product_id, pr.name, ii.quantity, ii.unit_price, ii.tax_rate, ii.tax_amount, ii.total
FROM invoice_items ii JOIN products pr ON pr.id = ii.product_id
WHERE ii.invoice_id = ANY($1) ORDER BY ii.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.TaxRate, &item.TaxAmount, &item.Total); err != nil {
			return err
		}
		if inv, ok := invoices[item.InvoiceID]; ok {
			inv.Items = append(inv.Items, item)
		}
	}
	return rows.Err()
}

func (r *repository) PartyExists(ctx context.Context, ownerID, partyID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM parties WHERE id = $1 AND owner_id = $2)`, partyID, ownerID).Scan(&exists)
	return exists, err
}

func (r *repository) MissingProducts(ctx context.Context, ownerID int64, ids []int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM products WHERE owner_id = $1 AND id = ANY($2)`, ownerID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	found := map[int64]bool{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var missing []int64
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
