package repository

import (
	"context"
	"time"

	"github.com/mercato-dev/business-hours/backend/internal/availability"
	"github.com/mercato-dev/business-hours/backend/internal/domain"
)

// CreateBusiness 在同一个事务中插入商户记录并落库它的初始营业时间表。
// 新商户总是从整周歇业开始，之后由店主自行配置
func (r *Repository) CreateBusiness(business *domain.Business) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO businesses (name, slug, owner_id, timezone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`
	args := []any{business.Name, business.Slug, business.OwnerID, business.Timezone}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&business.ID, &business.CreatedAt, &business.Version); err != nil {
		return err
	}

	if err := insertSchedule(ctx, tx, business.ID, availability.NewAlwaysClosed()); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) GetBusinessByID(id int64) (*domain.Business, error) {
	query := `
		SELECT name, slug, owner_id, timezone, created_at, version
		FROM businesses WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	business := &domain.Business{
		ID: id,
	}

	dst := []any{&business.Name, &business.Slug, &business.OwnerID, &business.Timezone, &business.CreatedAt, &business.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return business, nil
}

func (r *Repository) GetBusinessBySlug(slug string) (*domain.Business, error) {
	query := `
		SELECT id, name, owner_id, timezone, created_at, version
		FROM businesses WHERE slug = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	business := &domain.Business{
		Slug: slug,
	}

	dst := []any{&business.ID, &business.Name, &business.OwnerID, &business.Timezone, &business.CreatedAt, &business.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, slug).Scan(dst...); err != nil {
		return nil, err
	}

	return business, nil
}

func (r *Repository) GetAllBusinesses() ([]*domain.Business, error) {
	query := `
		SELECT id, name, slug, owner_id, timezone, created_at, version
		FROM businesses
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	businesses := make([]*domain.Business, 0)
	for rows.Next() {
		business := &domain.Business{}
		dst := []any{&business.ID, &business.Name, &business.Slug, &business.OwnerID, &business.Timezone, &business.CreatedAt, &business.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		businesses = append(businesses, business)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return businesses, nil
}

func (r *Repository) UpdateBusiness(business *domain.Business) error {
	query := `
		UPDATE businesses
		SET
			name = $1,
			slug = $2,
			timezone = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{business.Name, business.Slug, business.Timezone, business.ID, business.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&business.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteBusiness(id int64) error {
	query := `
		DELETE FROM businesses WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
