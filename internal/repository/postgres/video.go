package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/admin-api/internal/model"
	"github.com/clinicore/admin-api/internal/repository"
)

type videoRepository struct {
	BaseRepository
}

func NewVideoRepository(base BaseRepository) repository.VideoRepository {
	return &videoRepository{base}
}

func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	query := `
		INSERT INTO videos (id, title, video_url, active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	video.ID = uuid.New()
	video.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		video.ID,
		video.Title,
		video.VideoURL,
		video.Active,
		video.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

func (r *videoRepository) Update(ctx context.Context, video *model.Video) error {
	query := `
		UPDATE videos SET
			title = $1,
			video_url = $2,
			active = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query,
		video.Title,
		video.VideoURL,
		video.Active,
		video.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("video not found")
	}

	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("video not found")
	}

	return nil
}

func (r *videoRepository) List(ctx context.Context, activeOnly bool) ([]*model.Video, error) {
	query := `SELECT * FROM videos`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	var videos []*model.Video
	if err := r.db.SelectContext(ctx, &videos, query); err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	return videos, nil
}
