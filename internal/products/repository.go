package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khata-app/khata-server/internal/shared"
)

// Repository defines data access for products.
type Repository interface {
	Create(ctx context.Context, p Product) (int64, error)
	Get(ctx context.Context, ownerID, id int64) (*Product, error)
	List(ctx context.Context, req ListProductsRequest) ([]Product, error)
	Update(ctx context.Context, ownerID, id int64, p Product) error
	Delete(ctx context.Context, ownerID, id int64) error
	Categories(ctx context.Context, ownerID int64) ([]string, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = `id, owner_id, name, category, purchase_price, selling_price, stock_quantity, low_stock_threshold, tax_rate, created_at, updated_at`

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Category, &p.PurchasePrice, &p.SellingPrice,
		&p.StockQuantity, &p.LowStockThreshold, &p.TaxRate, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repository) Create(ctx context.Context, p Product) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO products (owner_id, name, category, purchase_price, selling_price, stock_quantity, low_stock_threshold, tax_rate)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		p.OwnerID, p.Name, p.Category, p.PurchasePrice, p.SellingPrice, p.StockQuantity, p.LowStockThreshold, p.TaxRate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("products: create: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, ownerID, id int64) (*Product, error) {
	var p Product
	err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 AND owner_id = $2`, id, ownerID), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, req ListProductsRequest) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1`
	args := []any{req.OwnerID}
	argPos := 2

	if req.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, *req.Category)
		argPos++
	}
	if req.Search != nil {
		query += fmt.Sprintf(" AND name ILIKE $%d", argPos)
		args = append(args, "%"+*req.Search+"%")
		argPos++
	}
	if req.LowStock {
		query += " AND stock_quantity <= low_stock_threshold"
	}

	query += " ORDER BY name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) Update(ctx context.Context, ownerID, id int64, p Product) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET name = $1, category = $2, purchase_price = $3, selling_price = $4, stock_quantity = $5, low_stock_threshold = $6, tax_rate = $7, updated_at = NOW()
WHERE id = $8 AND owner_id = $9`,
		p.Name, p.Category, p.PurchasePrice, p.SellingPrice, p.StockQuantity, p.LowStockThreshold, p.TaxRate, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Categories lists the distinct category values in use by the owner.
func (r *repository) Categories(ctx context.Context, ownerID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT category FROM products WHERE owner_id = $1 AND category IS NOT NULL ORDER BY category`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
