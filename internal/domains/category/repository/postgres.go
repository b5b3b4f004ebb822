package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blcktgr73/StudyBlog/internal/domains/category"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - constructor
func NewPostgresRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

const categoryColumns = `
	c.id, c.name, c.slug, c.description, c.color, c.icon,
	COUNT(p.id) FILTER (WHERE p.is_published) AS post_count,
	c.created_at`

func (r *postgresRepository) List(ctx context.Context) ([]category.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM categories c
		LEFT JOIN posts p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name ASC
	`, categoryColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories query failed: %w", err)
	}
	defer rows.Close()

	categories := []category.Category{}
	for rows.Next() {
		var cat category.Category
		err := rows.Scan(
			&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Color, &cat.Icon,
			&cat.PostCount, &cat.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return categories, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM categories c
		LEFT JOIN posts p ON p.category_id = c.id
		WHERE c.slug = $1
		GROUP BY c.id
	`, categoryColumns)

	var cat category.Category
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Color, &cat.Icon,
		&cat.PostCount, &cat.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &cat, nil
}
