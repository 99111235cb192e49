package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article represents a published article. It references its Category by id
// only; the category itself is not owned by the article.
type Article struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Content       string    `json:"content" db:"content"`
	Slug          string    `json:"slug" db:"slug"`
	CoverImageURL string    `json:"cover_image_url" db:"cover_image_url"`
	ViewCount     int       `json:"view_count" db:"view_count"`
	CategoryID    uuid.UUID `json:"category_id" db:"category_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// NewArticle creates an article after validating every field.
func NewArticle(title, content, slug, coverImageURL string, categoryID uuid.UUID) (*Article, error) {
	if title == "" {
		return nil, validationError("Article title cannot be empty.")
	}
	if content == "" {
		return nil, validationError("Article content cannot be empty.")
	}
	if slug == "" {
		return nil, validationError("Article slug cannot be empty.")
	}
	if coverImageURL == "" {
		return nil, validationError("Article cover image URL cannot be empty.")
	}
	if categoryID == uuid.Nil {
		return nil, validationError("Article category ID cannot be empty.")
	}

	now := time.Now().UTC()
	return &Article{
		ID:            uuid.New(),
		Title:         title,
		Content:       content,
		Slug:          slug,
		CoverImageURL: coverImageURL,
		CategoryID:    categoryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// UpdateTitle replaces the article title.
func (a *Article) UpdateTitle(newTitle string) error {
	if newTitle == "" {
		return validationError("New article title cannot be empty.")
	}
	a.Title = newTitle
	a.markAsModified()
	return nil
}

// UpdateContent replaces the article body.
func (a *Article) UpdateContent(newContent string) error {
	if newContent == "" {
		return validationError("New article content cannot be empty.")
	}
	a.Content = newContent
	a.markAsModified()
	return nil
}

// UpdateSlug replaces the article slug.
func (a *Article) UpdateSlug(newSlug string) error {
	if newSlug == "" {
		return validationError("New article slug cannot be empty.")
	}
	a.Slug = newSlug
	a.markAsModified()
	return nil
}

// UpdateCoverImageURL replaces the cover image.
func (a *Article) UpdateCoverImageURL(newCoverImageURL string) error {
	if newCoverImageURL == "" {
		return validationError("New article cover image URL cannot be empty.")
	}
	a.CoverImageURL = newCoverImageURL
	a.markAsModified()
	return nil
}

// UpdateCategoryID moves the article to another category.
func (a *Article) UpdateCategoryID(newCategoryID uuid.UUID) error {
	if newCategoryID == uuid.Nil {
		return validationError("New article category ID cannot be empty.")
	}
	a.CategoryID = newCategoryID
	a.markAsModified()
	return nil
}

func (a *Article) markAsModified() {
	a.UpdatedAt = time.Now().UTC()
}
