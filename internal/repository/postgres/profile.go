package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clinicore/admin-api/internal/model"
	"github.com/clinicore/admin-api/internal/repository"
)

type profileRepository struct {
	BaseRepository
}

func NewProfileRepository(base BaseRepository) repository.ProfileRepository {
	return &profileRepository{base}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (
			id, email, first_name, last_name, is_admin, is_clinic,
			act_as_clinic, active_as_clinic, status, image_url, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	profile.CreatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			profile.ID,
			profile.Email,
			profile.FirstName,
			profile.LastName,
			profile.IsAdmin,
			profile.IsClinic,
			profile.ActAsClinic,
			profile.ActiveAsClinic,
			profile.Status,
			profile.ImageURL,
			profile.CreatedAt,
		)
		if err != nil && IsUniqueViolation(err) {
			return fmt.Errorf("email %s is already taken: %w", profile.Email, err)
		}
		return err
	})
}

func (r *profileRepository) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `SELECT * FROM profiles WHERE id = $1`

	var profile model.Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `SELECT * FROM profiles WHERE email = $1`

	var profile model.Profile
	if err := r.db.GetContext(ctx, &profile, query, email); err != nil {
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	query := `
		UPDATE profiles SET
			email = $1,
			first_name = $2,
			last_name = $3,
			is_admin = $4,
			is_clinic = $5,
			act_as_clinic = $6,
			status = $7,
			image_url = $8
		WHERE id = $9
	`

	result, err := r.db.ExecContext(ctx, query,
		profile.Email,
		profile.FirstName,
		profile.LastName,
		profile.IsAdmin,
		profile.IsClinic,
		profile.ActAsClinic,
		profile.Status,
		profile.ImageURL,
		profile.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("email %s is already taken: %w", profile.Email, err)
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("profile not found")
	}

	return nil
}

func (r *profileRepository) UpdateFlags(ctx context.Context, id uuid.UUID, patch *model.ProfileFlagsPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	sets := []string{}
	args := []interface{}{}

	if patch.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *patch.Status)
	}
	if patch.ActAsClinic != nil {
		sets = append(sets, fmt.Sprintf("act_as_clinic = $%d", len(args)+1))
		args = append(args, *patch.ActAsClinic)
	}
	if patch.IsClinic != nil {
		sets = append(sets, fmt.Sprintf("is_clinic = $%d", len(args)+1))
		args = append(args, *patch.IsClinic)
	}
	if patch.ActiveAsClinic != nil {
		sets = append(sets, fmt.Sprintf("active_as_clinic = $%d", len(args)+1))
		args = append(args, *patch.ActiveAsClinic)
	}

	query := fmt.Sprintf("UPDATE profiles SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args)+1)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile flags: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("profile not found")
	}

	return nil
}

func (r *profileRepository) SetClinicStatus(ctx context.Context, id uuid.UUID, verified bool) error {
	query := `UPDATE profiles SET is_clinic = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, verified, id)
	if err != nil {
		return fmt.Errorf("failed to set clinic status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("profile not found")
	}

	return nil
}

func (r *profileRepository) List(ctx context.Context, filters *model.ProfileFilters) ([]*model.Profile, error) {
	query := `SELECT * FROM profiles WHERE 1=1`
	args := []interface{}{}

	if filters != nil {
		if filters.IsAdmin != nil {
			query += fmt.Sprintf(" AND is_admin = $%d", len(args)+1)
			args = append(args, *filters.IsAdmin)
		}
		if filters.IsClinic != nil {
			query += fmt.Sprintf(" AND is_clinic = $%d", len(args)+1)
			args = append(args, *filters.IsClinic)
		}
		if filters.SearchTerm != "" {
			query += fmt.Sprintf(" AND (email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)",
				len(args)+1, len(args)+1, len(args)+1)
			args = append(args, "%"+filters.SearchTerm+"%")
		}
	}

	query += " ORDER BY created_at DESC"

	var profiles []*model.Profile
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

func (r *profileRepository) ListClinicsWithoutInfo(ctx context.Context) ([]*model.Profile, error) {
	query := `
		SELECT p.* FROM profiles p
		LEFT JOIN clinic_info ci ON ci.profile_id = p.id
		WHERE p.is_clinic = TRUE AND ci.id IS NULL
		ORDER BY p.created_at
	`

	var profiles []*model.Profile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("failed to list clinics without info: %w", err)
	}

	return profiles, nil
}
