package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khata-app/khata-server/internal/platform/db"
	"github.com/khata-app/khata-server/internal/shared"
)

// Repository defines data access for stock movements.
type Repository interface {
	// Record inserts the movement and shifts the cached product quantity
	// in one transaction.
	Record(ctx context.Context, m Movement) (*Movement, error)
	List(ctx context.Context, req ListMovementsRequest) ([]Movement, error)
	// Snapshot returns the cached quantity and the movement fold for one
	// product, computed in a single round trip.
	Snapshot(ctx context.Context, ownerID, productID int64) (cached, folded int64, err error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// ApplyTx inserts a movement and mutates the cached product quantity inside
// the caller's transaction. Invoice creation reuses this so line-item stock
// effects ride the invoice transaction.
func ApplyTx(ctx context.Context, tx pgx.Tx, m *Movement) error {
	tag, err := tx.Exec(ctx, `UPDATE products SET stock_quantity = stock_quantity + $1, updated_at = NOW() WHERE id = $2 AND owner_id = $3`,
		m.Delta(), m.ProductID, m.OwnerID)
	if err != nil {
		return fmt.Errorf("stock: adjust product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	err = tx.QueryRow(ctx, `INSERT INTO stock_movements (owner_id, product_id, type, quantity, unit_price, reference_type, reference_id, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`,
		m.OwnerID, m.ProductID, m.Type, m.Quantity, m.UnitPrice, m.ReferenceType, m.ReferenceID, m.Notes).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("stock: insert movement: %w", err)
	}
	return nil
}

func (r *repository) Record(ctx context.Context, m Movement) (*Movement, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return ApplyTx(ctx, tx, &m)
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) List(ctx context.Context, req ListMovementsRequest) ([]Movement, error) {
	query := `SELECT id, owner_id, product_id, type, quantity, unit_price, reference_type, reference_id, notes, created_at
FROM stock_movements WHERE owner_id = $1`
	args := []any{req.OwnerID}
	argPos := 2

	if req.ProductID != nil {
		query += fmt.Sprintf(" AND product_id = $%d", argPos)
		args = append(args, *req.ProductID)
		argPos++
	}
	if req.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argPos)
		args = append(args, *req.Type)
		argPos++
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Movement
	for rows.Next() {
		var m Movement
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitPrice, &m.ReferenceType, &m.ReferenceID, &m.Notes, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repository) Snapshot(ctx context.Context, ownerID, productID int64) (int64, int64, error) {
	var cached, folded int64
	err := r.pool.QueryRow(ctx, `SELECT p.stock_quantity,
COALESCE(SUM(CASE WHEN m.type = 'in' THEN m.quantity ELSE -m.quantity END), 0)
FROM products p
LEFT JOIN stock_movements m ON m.product_id = p.id
WHERE p.id = $1 AND p.owner_id = $2
GROUP BY p.id`, productID, ownerID).Scan(&cached, &folded)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, shared.ErrNotFound
		}
		return 0, 0, err
	}
	return cached, folded, nil
}
