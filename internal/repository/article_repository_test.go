package repository

import (
	"context"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/query"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAddCategory(t *testing.T) *domain.Category {
	t.Helper()

	category, err := domain.NewCategory("Tech", "Technology")
	require.NoError(t, err)

	uow := NewFactory(testDB).New()
	defer uow.Close()
	require.NoError(t, uow.Categories().Add(context.Background(), category))
	require.NoError(t, uow.SaveChanges(context.Background()))
	return category
}

func mustAddArticle(t *testing.T, title, slug string, categoryID uuid.UUID) *domain.Article {
	t.Helper()

	article, err := domain.NewArticle(title, "Body of "+title, slug, "https://img.example/cover.png", categoryID)
	require.NoError(t, err)

	uow := NewFactory(testDB).New()
	defer uow.Close()
	require.NoError(t, uow.Articles().Add(context.Background(), article))
	require.NoError(t, uow.SaveChanges(context.Background()))
	return article
}

func TestCategoryRepository_CRUD(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()

	category := mustAddCategory(t)

	uow := NewFactory(testDB).New()
	defer uow.Close()

	found, err := uow.Categories().GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tech", found.Name)

	require.NoError(t, found.UpdateName("Gadgets"))
	require.NoError(t, uow.Categories().Update(ctx, found))
	require.NoError(t, uow.SaveChanges(ctx))

	reloaded, err := uow.Categories().GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", reloaded.Name)

	all, err := uow.Categories().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestArticleRepository_Page(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()

	category := mustAddCategory(t)
	mustAddArticle(t, "Go Concurrency Patterns", "go-concurrency", category.ID)
	mustAddArticle(t, "Go Generics in Practice", "go-generics", category.ID)
	mustAddArticle(t, "Database Indexing", "db-indexing", category.ID)

	uow := NewFactory(testDB).New()
	defer uow.Close()

	page, err := uow.Articles().Page(ctx, query.Params{SearchTerm: "go "})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)

	sorted, err := uow.Articles().Page(ctx, query.Params{
		SortBy:    "title",
		SortOrder: query.SortOrderAsc,
	})
	require.NoError(t, err)
	require.Len(t, sorted.Items, 3)
	assert.Equal(t, "Database Indexing", sorted.Items[0].Title)
}
