package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/admin-api/internal/model"
	"github.com/clinicore/admin-api/internal/repository"
)

type bannerRepository struct {
	BaseRepository
}

func NewBannerRepository(base BaseRepository) repository.BannerRepository {
	return &bannerRepository{base}
}

func (r *bannerRepository) Create(ctx context.Context, banner *model.Banner) error {
	query := `
		INSERT INTO banners (id, title, image_url, link_url, active, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	banner.ID = uuid.New()
	banner.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		banner.ID,
		banner.Title,
		banner.ImageURL,
		banner.LinkURL,
		banner.Active,
		banner.SortOrder,
		banner.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}

	return nil
}

func (r *bannerRepository) Update(ctx context.Context, banner *model.Banner) error {
	query := `
		UPDATE banners SET
			title = $1,
			image_url = $2,
			link_url = $3,
			active = $4,
			sort_order = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		banner.Title,
		banner.ImageURL,
		banner.LinkURL,
		banner.Active,
		banner.SortOrder,
		banner.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("banner not found")
	}

	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("banner not found")
	}

	return nil
}

func (r *bannerRepository) List(ctx context.Context, activeOnly bool) ([]*model.Banner, error) {
	query := `SELECT * FROM banners`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY sort_order, created_at DESC`

	var banners []*model.Banner
	if err := r.db.SelectContext(ctx, &banners, query); err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}

	return banners, nil
}
