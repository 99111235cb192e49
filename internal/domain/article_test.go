package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("News", "Company news")
	require.NoError(t, err)
	assert.Equal(t, "News", c.Name)

	_, err = NewCategory("", "Company news")
	require.Error(t, err)
	_, err = NewCategory("News", "")
	require.Error(t, err)
}

func TestCategory_Updates(t *testing.T) {
	c, err := NewCategory("News", "Company news")
	require.NoError(t, err)

	before := c.UpdatedAt
	require.NoError(t, c.UpdateName("Announcements"))
	require.NoError(t, c.UpdateDescription("Official announcements"))
	assert.Equal(t, "Announcements", c.Name)
	assert.False(t, c.UpdatedAt.Before(before))

	require.Error(t, c.UpdateName(""))
	require.Error(t, c.UpdateDescription(""))
	assert.Equal(t, "Announcements", c.Name)
}

func TestNewArticle(t *testing.T) {
	categoryID := uuid.New()

	a, err := NewArticle("Title", "Body", "title", "https://img.example/cover.png", categoryID)
	require.NoError(t, err)
	assert.Equal(t, categoryID, a.CategoryID)
	assert.Zero(t, a.ViewCount)

	cases := []struct {
		name          string
		title         string
		content       string
		slug          string
		coverImageURL string
		categoryID    uuid.UUID
	}{
		{"empty title", "", "Body", "title", "https://x/y.png", categoryID},
		{"empty content", "Title", "", "title", "https://x/y.png", categoryID},
		{"empty slug", "Title", "Body", "", "https://x/y.png", categoryID},
		{"empty cover", "Title", "Body", "title", "", categoryID},
		{"nil category", "Title", "Body", "title", "https://x/y.png", uuid.Nil},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewArticle(tt.title, tt.content, tt.slug, tt.coverImageURL, tt.categoryID)
			require.Error(t, err)
		})
	}
}

func TestArticle_Updates(t *testing.T) {
	a, err := NewArticle("Title", "Body", "title", "https://img.example/cover.png", uuid.New())
	require.NoError(t, err)

	newCategory := uuid.New()
	require.NoError(t, a.UpdateTitle("New title"))
	require.NoError(t, a.UpdateContent("New body"))
	require.NoError(t, a.UpdateSlug("new-title"))
	require.NoError(t, a.UpdateCoverImageURL("https://img.example/new.png"))
	require.NoError(t, a.UpdateCategoryID(newCategory))

	assert.Equal(t, "New title", a.Title)
	assert.Equal(t, "new-title", a.Slug)
	assert.Equal(t, newCategory, a.CategoryID)

	require.Error(t, a.UpdateTitle(""))
	require.Error(t, a.UpdateCategoryID(uuid.Nil))
}
