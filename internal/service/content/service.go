package content

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicore/admin-api/internal/model"
	"github.com/clinicore/admin-api/internal/repository"
)

// Servicer manages the marketing site content: service categories and
// their items, banners, and videos.
type Servicer interface {
	CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]*model.Category, error)
	CreateCategoryItem(ctx context.Context, categoryID uuid.UUID, req *model.CreateCategoryItemRequest) (*model.CategoryItem, error)
	UpdateCategoryItem(ctx context.Context, item *model.CategoryItem) error
	DeleteCategoryItem(ctx context.Context, id uuid.UUID) error
	ListCategoryItems(ctx context.Context, categoryID uuid.UUID) ([]*model.CategoryItem, error)

	CreateBanner(ctx context.Context, req *model.CreateBannerRequest) (*model.Banner, error)
	UpdateBanner(ctx context.Context, banner *model.Banner) error
	DeleteBanner(ctx context.Context, id uuid.UUID) error
	ListBanners(ctx context.Context, activeOnly bool) ([]*model.Banner, error)

	CreateVideo(ctx context.Context, req *model.CreateVideoRequest) (*model.Video, error)
	UpdateVideo(ctx context.Context, video *model.Video) error
	DeleteVideo(ctx context.Context, id uuid.UUID) error
	ListVideos(ctx context.Context, activeOnly bool) ([]*model.Video, error)
}

type Service struct {
	categories repository.CategoryRepository
	banners    repository.BannerRepository
	videos     repository.VideoRepository
}

func NewService(
	categories repository.CategoryRepository,
	banners repository.BannerRepository,
	videos repository.VideoRepository,
) *Service {
	return &Service{
		categories: categories,
		banners:    banners,
		videos:     videos,
	}
}

func (s *Service) CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, category *model.Category) error {
	if err := s.categories.Update(ctx, category); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *Service) CreateCategoryItem(ctx context.Context, categoryID uuid.UUID, req *model.CreateCategoryItemRequest) (*model.CategoryItem, error) {
	if _, err := s.categories.Get(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	item := &model.CategoryItem{
		CategoryID:  categoryID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	}
	if err := s.categories.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create category item: %w", err)
	}
	return item, nil
}

func (s *Service) UpdateCategoryItem(ctx context.Context, item *model.CategoryItem) error {
	if err := s.categories.UpdateItem(ctx, item); err != nil {
		return fmt.Errorf("failed to update category item: %w", err)
	}
	return nil
}

func (s *Service) DeleteCategoryItem(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category item: %w", err)
	}
	return nil
}

func (s *Service) ListCategoryItems(ctx context.Context, categoryID uuid.UUID) ([]*model.CategoryItem, error) {
	items, err := s.categories.ListItems(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category items: %w", err)
	}
	return items, nil
}

func (s *Service) CreateBanner(ctx context.Context, req *model.CreateBannerRequest) (*model.Banner, error) {
	banner := &model.Banner{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		Active:    req.Active,
		SortOrder: req.SortOrder,
	}
	if err := s.banners.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}
	return banner, nil
}

func (s *Service) UpdateBanner(ctx context.Context, banner *model.Banner) error {
	if err := s.banners.Update(ctx, banner); err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}
	return nil
}

func (s *Service) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	if err := s.banners.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	return nil
}

func (s *Service) ListBanners(ctx context.Context, activeOnly bool) ([]*model.Banner, error) {
	banners, err := s.banners.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

func (s *Service) CreateVideo(ctx context.Context, req *model.CreateVideoRequest) (*model.Video, error) {
	video := &model.Video{
		Title:    req.Title,
		VideoURL: req.VideoURL,
		Active:   req.Active,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}
	return video, nil
}

func (s *Service) UpdateVideo(ctx context.Context, video *model.Video) error {
	if err := s.videos.Update(ctx, video); err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	return nil
}

func (s *Service) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	if err := s.videos.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	return nil
}

func (s *Service) ListVideos(ctx context.Context, activeOnly bool) ([]*model.Video, error) {
	videos, err := s.videos.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}
