package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blcktgr73/StudyBlog/internal/domains/tag"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - constructor
func NewPostgresRepository(pool *pgxpool.Pool) tag.Repository {
	return &postgresRepository{pool: pool}
}

const tagColumns = `
	t.id, t.name, t.slug,
	COUNT(p.id) FILTER (WHERE p.is_published) AS post_count,
	t.created_at`

const tagJoins = `
	FROM tags t
	LEFT JOIN post_tags pt ON pt.tag_id = t.id
	LEFT JOIN posts p ON p.id = pt.post_id`

func (r *postgresRepository) List(ctx context.Context) ([]tag.Tag, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		GROUP BY t.id
		ORDER BY t.name ASC
	`, tagColumns, tagJoins)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tags query failed: %w", err)
	}
	defer rows.Close()

	tags := []tag.Tag{}
	for rows.Next() {
		var tg tag.Tag
		if err := rows.Scan(&tg.ID, &tg.Name, &tg.Slug, &tg.PostCount, &tg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag row: %w", err)
		}
		tags = append(tags, tg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return tags, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*tag.Tag, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE t.slug = $1
		GROUP BY t.id
	`, tagColumns, tagJoins)

	var tg tag.Tag
	err := r.pool.QueryRow(ctx, query, slug).Scan(&tg.ID, &tg.Name, &tg.Slug, &tg.PostCount, &tg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, tag.ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return &tg, nil
}
