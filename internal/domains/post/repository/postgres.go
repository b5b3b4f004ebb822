package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blcktgr73/StudyBlog/internal/domains/post"
)

// postgresRepository - raw SQL with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - constructor
func NewPostgresRepository(pool *pgxpool.Pool) post.Repository {
	return &postgresRepository{pool: pool}
}

const uniqueViolationCode = "23505"

// detailColumns is shared by every read query so the scan order stays
// in one place. Tags are aggregated as JSON in a lateral join.
const detailColumns = `
	p.id, p.title, p.slug, p.content, p.excerpt, p.cover_image,
	p.author_id, p.category_id, p.is_published, p.is_pinned,
	p.view_count, p.like_count, p.comment_count, p.reading_time,
	p.seo_title, p.seo_description, p.published_at, p.created_at, p.updated_at,
	u.full_name, u.email, u.avatar_url,
	c.name, c.slug, c.color,
	COALESCE(tg.tags, '[]') AS tags_json`

const detailJoins = `
	FROM posts p
	JOIN users u ON p.author_id = u.id
	LEFT JOIN categories c ON p.category_id = c.id
	LEFT JOIN LATERAL (
		SELECT json_agg(json_build_object('id', t.id, 'name', t.name, 'slug', t.slug) ORDER BY t.name) AS tags
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = p.id
	) tg ON true`

// scanDetail maps one joined row into a post.Detail.
func scanDetail(row pgx.Row) (*post.Detail, error) {
	var d post.Detail
	var categoryName, categorySlug, categoryColor *string
	var tagsJSON string

	err := row.Scan(
		&d.ID, &d.Title, &d.Slug, &d.Content, &d.Excerpt, &d.CoverImage,
		&d.AuthorID, &d.CategoryID, &d.IsPublished, &d.IsPinned,
		&d.ViewCount, &d.LikeCount, &d.CommentCount, &d.ReadingTime,
		&d.SeoTitle, &d.SeoDescription, &d.PublishedAt, &d.CreatedAt, &d.UpdatedAt,
		&d.Author.FullName, &d.Author.Email, &d.Author.AvatarURL,
		&categoryName, &categorySlug, &categoryColor,
		&tagsJSON,
	)
	if err != nil {
		return nil, err
	}

	d.Author.ID = d.AuthorID
	if d.CategoryID != nil && categoryName != nil && categorySlug != nil {
		d.Category = &post.CategoryRef{
			ID:    *d.CategoryID,
			Name:  *categoryName,
			Slug:  *categorySlug,
			Color: categoryColor,
		}
	}

	d.Tags = []post.TagRef{}
	if err := json.Unmarshal([]byte(tagsJSON), &d.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}

	return &d, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *post.Post, tagIDs []uuid.UUID) error {
	query := `
		INSERT INTO posts (
			id, title, slug, content, excerpt, cover_image,
			author_id, category_id, is_published, is_pinned,
			view_count, like_count, comment_count, reading_time,
			seo_title, seo_description, published_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17, $18, $19
		)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Slug, p.Content, p.Excerpt, p.CoverImage,
		p.AuthorID, p.CategoryID, p.IsPublished, p.IsPinned,
		p.ViewCount, p.LikeCount, p.CommentCount, p.ReadingTime,
		p.SeoTitle, p.SeoDescription, p.PublishedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return post.ErrSlugConflict
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	// Tags are written after the post row exists and returned its id
	for _, tagID := range tagIDs {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO post_tags (id, post_id, tag_id) VALUES ($1, $2, $3)`,
			uuid.New(), p.ID, tagID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert post tag: %w", err)
		}
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	query := `
		SELECT id, title, slug, content, excerpt, cover_image,
		       author_id, category_id, is_published, is_pinned,
		       view_count, like_count, comment_count, reading_time,
		       seo_title, seo_description, published_at, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	var p post.Post
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.CoverImage,
		&p.AuthorID, &p.CategoryID, &p.IsPublished, &p.IsPinned,
		&p.ViewCount, &p.LikeCount, &p.CommentCount, &p.ReadingTime,
		&p.SeoTitle, &p.SeoDescription, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, post.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) GetDetailByID(ctx context.Context, id uuid.UUID) (*post.Detail, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.id = $1`, detailColumns, detailJoins)

	d, err := scanDetail(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, post.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post detail: %w", err)
	}

	return d, nil
}

func (r *postgresRepository) GetDetailBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*post.Detail, error) {
	// Drafts resolve only for their author; uuid.Nil never matches
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE p.slug = $1 AND (p.is_published = true OR p.author_id = $2)
	`, detailColumns, detailJoins)

	d, err := scanDetail(r.pool.QueryRow(ctx, query, slug, viewerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, post.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}

	return d, nil
}

func (r *postgresRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE posts SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, p *post.Post) error {
	query := `
		UPDATE posts
		SET title = $1, slug = $2, content = $3, excerpt = $4, cover_image = $5,
		    category_id = $6, is_published = $7, is_pinned = $8,
		    reading_time = $9, seo_title = $10, seo_description = $11,
		    published_at = $12, updated_at = $13
		WHERE id = $14
	`

	result, err := r.pool.Exec(ctx, query,
		p.Title, p.Slug, p.Content, p.Excerpt, p.CoverImage,
		p.CategoryID, p.IsPublished, p.IsPinned,
		p.ReadingTime, p.SeoTitle, p.SeoDescription,
		p.PublishedAt, p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return post.ErrSlugConflict
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}

	return nil
}

func (r *postgresRepository) ReplaceTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	// Full replacement: delete all, then insert the new set
	if _, err := r.pool.Exec(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to clear post tags: %w", err)
	}

	for _, tagID := range tagIDs {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO post_tags (id, post_id, tag_id) VALUES ($1, $2, $3)`,
			uuid.New(), postID, tagID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert post tag: %w", err)
		}
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}

	return nil
}

// buildWhereClause constructs the filter conditions shared by the list
// and count queries. Returns the clause, the tag join (if any) and args.
func buildWhereClause(filter post.ListFilter) (string, string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	switch filter.Published {
	case post.PublishedOnly:
		conditions = append(conditions, "p.is_published = true")
	case post.DraftsOnly:
		conditions = append(conditions, "p.is_published = false")
	}

	if filter.AuthorID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", argIndex))
		args = append(args, filter.AuthorID)
		argIndex++
	}

	if filter.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", argIndex))
		args = append(args, filter.CategorySlug)
		argIndex++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(p.title ILIKE $%d OR p.content ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	// Tag filtering needs an inner join through the association table.
	// The count query must carry the identical join to avoid skew.
	tagJoin := ""
	if filter.TagSlug != "" {
		tagJoin = fmt.Sprintf(`
	JOIN post_tags ptf ON ptf.post_id = p.id
	JOIN tags tf ON tf.id = ptf.tag_id AND tf.slug = $%d`, argIndex)
		args = append(args, filter.TagSlug)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	return whereClause, tagJoin, args
}

func (r *postgresRepository) List(ctx context.Context, filter post.ListFilter) ([]post.Detail, int, error) {
	whereClause, tagJoin, args := buildWhereClause(filter)

	totalCount, err := r.countPosts(ctx, whereClause, tagJoin, args)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s %s%s
		%s
		ORDER BY p.is_pinned DESC, p.published_at DESC NULLS LAST, p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, detailColumns, detailJoins, tagJoin, whereClause, len(args)+1, len(args)+2)

	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts query failed: %w", err)
	}
	defer rows.Close()

	details := []post.Detail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post row: %w", err)
		}
		// Listings never carry the full body
		d.Content = ""
		details = append(details, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return details, totalCount, nil
}

func (r *postgresRepository) countPosts(ctx context.Context, whereClause, tagJoin string, args []interface{}) (int, error) {
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM posts p
		LEFT JOIN categories c ON p.category_id = c.id%s
		%s
	`, tagJoin, whereClause)

	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}

	return totalCount, nil
}

// GenerateUniqueSlug suffixes the base slug until it is free.
func (r *postgresRepository) GenerateUniqueSlug(ctx context.Context, baseSlug string, excludeID uuid.UUID) (string, error) {
	slug := baseSlug
	counter := 1

	for {
		query := `SELECT EXISTS(SELECT 1 FROM posts WHERE slug = $1 AND id != $2)`
		var exists bool
		if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}

		if !exists {
			return slug, nil
		}

		counter++
		slug = fmt.Sprintf("%s-%d", baseSlug, counter)

		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique slug after 100 attempts")
		}
	}
}
