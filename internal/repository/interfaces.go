package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/admin-api/internal/model"
)

// ProfileRepository persists profile rows. Profile ids come from the
// identity store, never generated here.
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
	UpdateFlags(ctx context.Context, id uuid.UUID, patch *model.ProfileFlagsPatch) error
	SetClinicStatus(ctx context.Context, id uuid.UUID, verified bool) error
	List(ctx context.Context, filters *model.ProfileFilters) ([]*model.Profile, error)
	ListClinicsWithoutInfo(ctx context.Context) ([]*model.Profile, error)
}

// ClinicInfoRepository persists the 1:1 clinic extension rows.
type ClinicInfoRepository interface {
	Insert(ctx context.Context, info *model.ClinicInfo) error
	GetByProfileID(ctx context.Context, profileID uuid.UUID) (*model.ClinicInfo, error)
	// UpdateByProfileID patches the clinic row owned by the given profile
	// and reports the number of rows affected; zero means no row exists yet.
	UpdateByProfileID(ctx context.Context, info *model.ClinicInfo) (int64, error)
	ListWithProfiles(ctx context.Context) ([]*model.ClinicWithProfile, error)
}

// CategoryRepository persists service categories and their items.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Get(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Category, error)

	CreateItem(ctx context.Context, item *model.CategoryItem) error
	UpdateItem(ctx context.Context, item *model.CategoryItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context, categoryID uuid.UUID) ([]*model.CategoryItem, error)
}

// BannerRepository persists marketing banners.
type BannerRepository interface {
	Create(ctx context.Context, banner *model.Banner) error
	Update(ctx context.Context, banner *model.Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]*model.Banner, error)
}

// VideoRepository persists marketing videos.
type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	Update(ctx context.Context, video *model.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]*model.Video, error)
}
