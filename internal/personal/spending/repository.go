package spending

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khata-app/khata-server/internal/shared"
)

// Repository defines data access for personal spending records.
type Repository interface {
	InsertExpense(ctx context.Context, e Expense) (*Expense, error)
	GetExpense(ctx context.Context, ownerID, id int64) (*Expense, error)
	ListExpenses(ctx context.Context, req ListSpendingRequest) ([]Expense, error)
	UpdateExpense(ctx context.Context, ownerID, id int64, e Expense) error
	DeleteExpense(ctx context.Context, ownerID, id int64) error

	InsertPurchase(ctx context.Context, p Purchase) (*Purchase, error)
	GetPurchase(ctx context.Context, ownerID, id int64) (*Purchase, error)
	ListPurchases(ctx context.Context, req ListSpendingRequest) ([]Purchase, error)
	UpdatePurchase(ctx context.Context, ownerID, id int64, p Purchase) error
	DeletePurchase(ctx context.Context, ownerID, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) InsertExpense(ctx context.Context, e Expense) (*Expense, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO personal_expenses (owner_id, amount, category, description, expense_date, payment_method)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`,
		e.OwnerID, e.Amount, e.Category, e.Description, e.ExpenseDate, e.PaymentMethod).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("spending: insert expense: %w", err)
	}
	return &e, nil
}

func (r *repository) GetExpense(ctx context.Context, ownerID, id int64) (*Expense, error) {
	var e Expense
	err := r.pool.QueryRow(ctx, `SELECT id, owner_id, amount, category, description, expense_date, payment_method, created_at, updated_at
FROM personal_expenses WHERE id = $1 AND owner_id = $2`, id, ownerID).
		Scan(&e.ID, &e.OwnerID, &e.Amount, &e.Category, &e.Description, &e.ExpenseDate, &e.PaymentMethod, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) ListExpenses(ctx context.Context, req ListSpendingRequest) ([]Expense, error) {
	query := `SELECT id, owner_id, amount, category, description, expense_date, payment_method, created_at, updated_at
FROM personal_expenses WHERE owner_id = $1`
	args := []any{req.OwnerID}
	argPos := 2

	if req.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, *req.Category)
		argPos++
	}
	if req.DateFrom != nil {
		query += fmt.Sprintf(" AND expense_date >= $%d", argPos)
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		query += fmt.Sprintf(" AND expense_date <= $%d", argPos)
		args = append(args, *req.DateTo)
		argPos++
	}

	query += " ORDER BY expense_date DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Amount, &e.Category, &e.Description, &e.ExpenseDate, &e.PaymentMethod, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) UpdateExpense(ctx context.Context, ownerID, id int64, e Expense) error {
	tag, err := r.pool.Exec(ctx, `UPDATE personal_expenses SET amount = $1, category = $2, description = $3, expense_date = $4, payment_method = $5, updated_at = NOW()
WHERE id = $6 AND owner_id = $7`,
		e.Amount, e.Category, e.Description, e.ExpenseDate, e.PaymentMethod, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteExpense(ctx context.Context, ownerID, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM personal_expenses WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) InsertPurchase(ctx context.Context, p Purchase) (*Purchase, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO personal_purchases (owner_id, item_name, amount, category, purchase_date, payment_method, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`,
		p.OwnerID, p.ItemName, p.Amount, p.Category, p.PurchaseDate, p.PaymentMethod, p.Notes).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("spending: insert purchase: %w", err)
	}
	return &p, nil
}

func (r *repository) GetPurchase(ctx context.Context, ownerID, id int64) (*Purchase, error) {
	var p Purchase
	err := r.pool.QueryRow(ctx, `SELECT id, owner_id, item_name, amount, category, purchase_date, payment_method, notes, created_at, updated_at
FROM personal_purchases WHERE id = $1 AND owner_id = $2`, id, ownerID).
		Scan(&p.ID, &p.OwnerID, &p.ItemName, &p.Amount, &p.Category, &p.PurchaseDate, &p.PaymentMethod, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListPurchases(ctx context.Context, req ListSpendingRequest) ([]Purchase, error) {
	query := `SELECT id, owner_id, item_name, amount, category, purchase_date, payment_method, notes, created_at, updated_at
FROM personal_purchases WHERE owner_id = $1`
	args := []any{req.OwnerID}
	argPos := 2

	if req.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, *req.Category)
		argPos++
	}
	if req.DateFrom != nil {
		query += fmt.Sprintf(" AND purchase_date >= $%d", argPos)
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		query += fmt.Sprintf(" AND purchase_date <= $%d", argPos)
		args = append(args, *req.DateTo)
		argPos++
	}

	query += " ORDER BY purchase_date DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.ItemName, &p.Amount, &p.Category, &p.PurchaseDate, &p.PaymentMethod, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) UpdatePurchase(ctx context.Context, ownerID, id int64, p Purchase) error {
	tag, err := r.pool.Exec(ctx, `UPDATE personal_purchases SET item_name = $1, amount = $2, category = $3, purchase_date = $4, payment_method = $5, notes = $6, updated_at = NOW()
WHERE id = $7 AND owner_id = $8`,
		p.ItemName, p.Amount, p.Category, p.PurchaseDate, p.PaymentMethod, p.Notes, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) DeletePurchase(ctx context.Context, ownerID, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM personal_purchases WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
