package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a service category shown on the marketing site.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CategoryItem is a single service entry inside a category.
type CategoryItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CategoryID  uuid.UUID `json:"category_id" db:"category_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Banner is a marketing banner shown on the public site.
type Banner struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	LinkURL   *string   `json:"link_url" db:"link_url"`
	Active    bool      `json:"active" db:"active"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Video is an embedded marketing video.
type Video struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	VideoURL  string    `json:"video_url" db:"video_url"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateCategoryRequest represents category creation parameters.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	SortOrder   int     `json:"sort_order"`
}

// CreateCategoryItemRequest represents category item creation parameters.
type CreateCategoryItemRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	SortOrder   int     `json:"sort_order"`
}

// CreateBannerRequest represents banner creation parameters.
type CreateBannerRequest struct {
	Title     string  `json:"title" binding:"required"`
	ImageURL  string  `json:"image_url" binding:"required,url"`
	LinkURL   *string `json:"link_url"`
	Active    bool    `json:"active"`
	SortOrder int     `json:"sort_order"`
}

// CreateVideoRequest represents video creation parameters.
type CreateVideoRequest struct {
	Title    string `json:"title" binding:"required"`
	VideoURL string `json:"video_url" binding:"required,url"`
	Active   bool   `json:"active"`
}
