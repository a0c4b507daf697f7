package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/clinicore/admin-api/internal/model"
	"github.com/clinicore/admin-api/internal/repository"
)

type clinicInfoRepository struct {
	BaseRepository
}

func NewClinicInfoRepository(base BaseRepository) repository.ClinicInfoRepository {
	return &clinicInfoRepository{base}
}

func (r *clinicInfoRepository) Insert(ctx context.Context, info *model.ClinicInfo) error {
	query := `
		INSERT INTO clinic_info (
			id, profile_id, clinic_name, license_number, nid_number, docs_url, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	info.ID = uuid.New()
	info.CreatedAt = time.Now()
	if info.DocsURL == nil {
		info.DocsURL = pq.StringArray{}
	}

	_, err := r.db.ExecContext(ctx, query,
		info.ID,
		info.ProfileID,
		info.ClinicName,
		info.LicenseNumber,
		info.NIDNumber,
		info.DocsURL,
		info.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("clinic info already exists for profile %s: %w", info.ProfileID, err)
		}
		return fmt.Errorf("failed to insert clinic info: %w", err)
	}

	return nil
}

func (r *clinicInfoRepository) GetByProfileID(ctx context.Context, profileID uuid.UUID) (*model.ClinicInfo, error) {
	query := `SELECT * FROM clinic_info WHERE profile_id = $1`

	var info model.ClinicInfo
	if err := r.db.GetContext(ctx, &info, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to get clinic info: %w", err)
	}

	return &info, nil
}

// UpdateByProfileID patches the clinic row owned by info.ProfileID. A nil
// DocsURL leaves the stored document list untouched; an empty ClinicName
// leaves the stored name untouched.
func (r *clinicInfoRepository) UpdateByProfileID(ctx context.Context, info *model.ClinicInfo) (int64, error) {
	query := `
		UPDATE clinic_info SET
			clinic_name = COALESCE($1, clinic_name),
			license_number = $2,
			nid_number = $3,
			docs_url = COALESCE($4, docs_url)
		WHERE profile_id = $5
	`

	var name interface{}
	if info.ClinicName != "" {
		name = info.ClinicName
	}

	var docs interface{}
	if info.DocsURL != nil {
		docs = info.DocsURL
	}

	result, err := r.db.ExecContext(ctx, query,
		name,
		info.LicenseNumber,
		info.NIDNumber,
		docs,
		info.ProfileID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update clinic info: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

func (r *clinicInfoRepository) ListWithProfiles(ctx context.Context) ([]*model.ClinicWithProfile, error) {
	query := `
		SELECT ci.*,
			   p.email AS owner_email,
			   p.first_name AS owner_first_name,
			   p.last_name AS owner_last_name,
			   p.is_clinic AS verified
		FROM clinic_info ci
		JOIN profiles p ON p.id = ci.profile_id
		ORDER BY ci.created_at DESC
	`

	var clinics []*model.ClinicWithProfile
	if err := r.db.SelectContext(ctx, &clinics, query); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}

	return clinics, nil
}
