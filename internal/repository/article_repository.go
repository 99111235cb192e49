package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/query"

	"github.com/google/uuid"
)

const articleColumns = "id, title, content, slug, cover_image_url, view_count, category_id, created_at, updated_at"

var articleSortColumns = map[string]string{
	"title":      "title",
	"view_count": "view_count",
	"created_at": "created_at",
}

type articleRepository struct {
	uow *unitOfWork
}

func (r *articleRepository) GetAll(ctx context.Context) ([]*domain.Article, error) {
	q := fmt.Sprintf(`SELECT %s FROM articles ORDER BY created_at DESC`, articleColumns)

	rows, err := r.uow.querier().QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := []*domain.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	return articles, nil
}

func (r *articleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	q := fmt.Sprintf(`SELECT %s FROM articles WHERE id = $1`, articleColumns)

	article := &domain.Article{}
	err := r.uow.querier().QueryRowContext(ctx, q, id).Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.Slug,
		&article.CoverImageURL,
		&article.ViewCount,
		&article.CategoryID,
		&article.CreatedAt,
		&article.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find article by ID: %w", err)
	}

	return article, nil
}

func (r *articleRepository) Add(_ context.Context, article *domain.Article) error {
	r.uow.stage(func(ctx context.Context, q Querier) error {
		insert := `
			INSERT INTO articles (id, title, content, slug, cover_image_url, view_count, category_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err := q.ExecContext(ctx, insert,
			article.ID,
			article.Title,
			article.Content,
			article.Slug,
			article.CoverImageURL,
			article.ViewCount,
			article.CategoryID,
			article.CreatedAt,
			article.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create article: %w", err)
		}
		return nil
	})
	return nil
}

func (r *articleRepository) Update(_ context.Context, article *domain.Article) error {
	r.uow.stage(func(ctx context.Context, q Querier) error {
		update := `
			UPDATE articles
			SET title = $2, content = $3, slug = $4, cover_image_url = $5,
			    view_count = $6, category_id = $7, updated_at = $8
			WHERE id = $1
		`
		_, err := q.ExecContext(ctx, update,
			article.ID,
			article.Title,
			article.Content,
			article.Slug,
			article.CoverImageURL,
			article.ViewCount,
			article.CategoryID,
			article.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update article: %w", err)
		}
		return nil
	})
	return nil
}

func (r *articleRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.uow.stage(func(ctx context.Context, q Querier) error {
		if _, err := q.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete article: %w", err)
		}
		return nil
	})
	return nil
}

// Page returns one page of articles with case-insensitive substring search
// over title and content.
func (r *articleRepository) Page(ctx context.Context, params query.Params) (*query.Page[*domain.Article], error) {
	params = params.Normalize()

	whereClause := ""
	args := []any{}
	argIndex := 1

	if strings.TrimSpace(params.SearchTerm) != "" {
		whereClause = fmt.Sprintf("WHERE title ILIKE $%d OR content ILIKE $%d", argIndex, argIndex)
		args = append(args, "%"+params.SearchTerm+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM articles %s", whereClause)
	var total int
	if err := r.uow.querier().QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	orderClause := ""
	if column, ok := articleSortColumns[params.SortBy]; ok {
		orderClause = fmt.Sprintf("ORDER BY %s %s", column, strings.ToUpper(string(params.SortOrder)))
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM articles
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, articleColumns, whereClause, orderClause, argIndex, argIndex+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.uow.querier().QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to page articles: %w", err)
	}
	defer rows.Close()

	articles := []*domain.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	return query.NewPage(articles, total, params.PageNumber, params.PageSize), nil
}

func scanArticle(rows *sql.Rows) (*domain.Article, error) {
	article := &domain.Article{}
	err := rows.Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.Slug,
		&article.CoverImageURL,
		&article.ViewCount,
		&article.CategoryID,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan article: %w", err)
	}
	return article, nil
}
