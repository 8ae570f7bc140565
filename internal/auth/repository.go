package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khata-app/khata-server/internal/shared"
)

// Repository defines owner account persistence.
type Repository interface {
	// UpsertByMobile returns the owner for the mobile number, creating the
	// account on first login.
	UpsertByMobile(ctx context.Context, mobile string) (*Owner, error)
	Get(ctx context.Context, id int64) (*Owner, error)
	Update(ctx context.Context, id int64, o Owner) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) UpsertByMobile(ctx context.Context, mobile string) (*Owner, error) {
	var o Owner
	err := r.pool.QueryRow(ctx, `INSERT INTO owners (mobile_number) VALUES ($1)
ON CONFLICT (mobile_number) DO UPDATE SET updated_at = NOW()
RETURNING id, mobile_number, name, shop_name, created_at, updated_at`, mobile).
		Scan(&o.ID, &o.Mobile, &o.Name, &o.ShopName, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("auth: upsert owner: %w", err)
	}
	return &o, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Owner, error) {
	var o Owner
	err := r.pool.QueryRow(ctx, `SELECT id, mobile_number, name, shop_name, created_at, updated_at FROM owners WHERE id = $1`, id).
		Scan(&o.ID, &o.Mobile, &o.Name, &o.ShopName, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) Update(ctx context.Context, id int64, o Owner) error {
	tag, err := r.pool.Exec(ctx, `UPDATE owners SET name = $1, shop_name = $2, updated_at = NOW() WHERE id = $3`,
		o.Name, o.ShopName, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
