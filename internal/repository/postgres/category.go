package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/admin-api/internal/model"
	"github.com/clinicore/admin-api/internal/repository"
)

type categoryRepository struct {
	BaseRepository
}

func NewCategoryRepository(base BaseRepository) repository.CategoryRepository {
	return &categoryRepository{base}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, name, description, image_url, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	category.ID = uuid.New()
	category.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.ImageURL,
		category.SortOrder,
		category.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *categoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	query := `SELECT * FROM categories WHERE id = $1`

	var category model.Category
	if err := r.db.GetContext(ctx, &category, query, id); err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `
		UPDATE categories SET
			name = $1,
			description = $2,
			image_url = $3,
			sort_order = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		category.Name,
		category.Description,
		category.ImageURL,
		category.SortOrder,
		category.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("category not found")
	}

	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("category not found")
	}

	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	query := `SELECT * FROM categories ORDER BY sort_order, created_at`

	var categories []*model.Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) CreateItem(ctx context.Context, item *model.CategoryItem) error {
	query := `
		INSERT INTO category_items (id, category_id, title, description, image_url, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	item.ID = uuid.New()
	item.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.CategoryID,
		item.Title,
		item.Description,
		item.ImageURL,
		item.SortOrder,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category item: %w", err)
	}

	return nil
}

func (r *categoryRepository) UpdateItem(ctx context.Context, item *model.CategoryItem) error {
	query := `
		UPDATE category_items SET
			title = $1,
			description = $2,
			image_url = $3,
			sort_order = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		item.Title,
		item.Description,
		item.ImageURL,
		item.SortOrder,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("category item not found")
	}

	return nil
}

func (r *categoryRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM category_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("category item not found")
	}

	return nil
}

func (r *categoryRepository) ListItems(ctx context.Context, categoryID uuid.UUID) ([]*model.CategoryItem, error) {
	query := `SELECT * FROM category_items WHERE category_id = $1 ORDER BY sort_order, created_at`

	var items []*model.CategoryItem
	if err := r.db.SelectContext(ctx, &items, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to list category items: %w", err)
	}

	return items, nil
}
