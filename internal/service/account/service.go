package account

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/admin-api/internal/cache"
	"github.com/clinicore/admin-api/internal/email"
	"github.com/clinicore/admin-api/internal/identity"
	"github.com/clinicore/admin-api/internal/model"
	"github.com/clinicore/admin-api/internal/repository"
	"github.com/clinicore/admin-api/pkg/metrics"
)

const (
	// defaultPassword is the fallback credential for accounts created
	// without an explicit password; users are expected to reset it.
	defaultPassword = "11112222"

	// defaultClinicName is the placeholder for clinic rows created before
	// the owner supplied a display name.
	defaultClinicName = "New Clinic"
)

// Consistency reports whether every write of an operation landed, or only
// the primary one.
type Consistency string

const (
	ConsistencyFull    Consistency = "full"
	ConsistencyPartial Consistency = "partial"
)

// Result is the outcome of a provisioning operation. A Partial consistency
// means the primary record is in place but a dependent write (clinic row,
// profile flag patch) failed and was logged.
type Result struct {
	ProfileID   uuid.UUID   `json:"profile_id"`
	Consistency Consistency `json:"consistency"`
}

// Servicer is the provisioning and verification surface consumed by the
// admin handlers.
type Servicer interface {
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*Result, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*Result, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	SetClinicVerification(ctx context.Context, profileID uuid.UUID, verified bool) error
	UpdateClinicInfo(ctx context.Context, profileID uuid.UUID, req *model.UpdateClinicInfoRequest) (*Result, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	ListUsers(ctx context.Context, filters *model.ProfileFilters) ([]*model.Profile, error)
	ListClinics(ctx context.Context) ([]*model.ClinicWithProfile, error)
}

type Service struct {
	profiles    repository.ProfileRepository
	clinics     repository.ClinicInfoRepository
	ids         identity.Store
	emailSvc    email.Service
	invalidator cache.Invalidator
	metrics     *metrics.Metrics
}

func NewService(
	profiles repository.ProfileRepository,
	clinics repository.ClinicInfoRepository,
	ids identity.Store,
	emailSvc email.Service,
	invalidator cache.Invalidator,
	m *metrics.Metrics,
) *Service {
	return &Service{
		profiles:    profiles,
		clinics:     clinics,
		ids:         ids,
		emailSvc:    emailSvc,
		invalidator: invalidator,
		metrics:     m,
	}
}

// CreateUser provisions an identity account and its profile row as a unit.
// The identity write happens first; a profile insert failure triggers a
// compensating identity delete. When the new user is a clinic, the clinic
// row is inserted best-effort: its failure downgrades the result to
// partial consistency but does not undo the account.
func (s *Service) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*Result, error) {
	if err := s.validateCreate(req); err != nil {
		return nil, fmt.Errorf("invalid user data: %w", err)
	}

	password := req.Password
	if password == "" {
		password = defaultPassword
	}

	acct, err := s.ids.CreateUser(ctx, identity.CreateUserParams{
		Email:        req.Email,
		Password:     password,
		EmailConfirm: true,
		Metadata: model.JSONMap{
			"first_name": req.FirstName,
			"last_name":  req.LastName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create identity account: %w", err)
	}

	profile := &model.Profile{
		ID:        acct.ID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsClinic:  req.IsClinic,
		// The override needs both the clinic flag and an explicit request;
		// a clinic flag alone does not grant it.
		ActAsClinic: req.IsClinic && req.ActAsClinic,
		IsAdmin:     req.IsAdmin,
		Status:      req.Status,
		ImageURL:    req.ImageURL,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		s.metrics.CompensatingDeletes.Inc()
		if delErr := s.ids.DeleteUser(ctx, acct.ID); delErr != nil {
			log.Error().Err(delErr).
				Str("user_id", acct.ID.String()).
				Msg("failed to roll back identity account after profile insert failure")
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	result := &Result{ProfileID: acct.ID, Consistency: ConsistencyFull}

	if req.IsClinic {
		info := &model.ClinicInfo{
			ProfileID:     acct.ID,
			ClinicName:    req.ClinicName,
			LicenseNumber: req.LicenseNumber,
			NIDNumber:     req.NIDNumber,
			DocsURL:       pq.StringArray(req.DocsURL),
		}
		if info.ClinicName == "" {
			info.ClinicName = defaultClinicName
		}
		if info.DocsURL == nil {
			info.DocsURL = pq.StringArray{}
		}

		if err := s.clinics.Insert(ctx, info); err != nil {
			log.Error().Err(err).
				Str("profile_id", acct.ID.String()).
				Msg("clinic info creation failed")
			s.metrics.PartialWrites.Inc()
			result.Consistency = ConsistencyPartial
		}
	}

	s.metrics.UsersProvisioned.Inc()
	s.invalidator.Invalidate(ctx, cache.KeyUsers, cache.KeyClinics, cache.KeyAdmins)
	return result, nil
}

// UpdateUser replaces the editable profile fields. The identity store login
// email is deliberately left alone even when the displayed email changes.
// For clinic users the clinic row is upserted by owning profile id; its
// failure is logged and reported as partial consistency, never as an error.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*Result, error) {
	profile := &model.Profile{
		ID:          id,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		IsClinic:    req.IsClinic,
		ActAsClinic: req.ActAsClinic,
		IsAdmin:     req.IsAdmin,
		Status:      req.Status,
		ImageURL:    req.ImageURL,
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	result := &Result{ProfileID: id, Consistency: ConsistencyFull}

	if req.IsClinic {
		info := &model.ClinicInfo{
			ProfileID:     id,
			ClinicName:    req.ClinicName,
			LicenseNumber: req.LicenseNumber,
			NIDNumber:     req.NIDNumber,
			// nil leaves the stored document list untouched
			DocsURL: nil,
		}
		if err := s.upsertClinicInfo(ctx, info); err != nil {
			log.Error().Err(err).
				Str("profile_id", id.String()).
				Msg("clinic info upsert failed during user update")
			s.metrics.PartialWrites.Inc()
			result.Consistency = ConsistencyPartial
		}
	}

	s.invalidator.Invalidate(ctx, cache.KeyUsers, cache.KeyClinics)
	return result, nil
}

// DeleteUser removes the identity account. The profile row rides on the
// foreign key cascade; no write happens here when the identity delete fails.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.ids.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("failed to delete identity account: %w", err)
	}

	s.metrics.UsersDeleted.Inc()
	s.invalidator.Invalidate(ctx, cache.KeyUsers, cache.KeyClinics, cache.KeyAdmins)
	return nil
}

// SetClinicVerification flips the profile's clinic flag. An owner whose
// clinic row never landed can still be verified; the repair worker fills
// the missing row in later.
func (s *Service) SetClinicVerification(ctx context.Context, profileID uuid.UUID, verified bool) error {
	if err := s.profiles.SetClinicStatus(ctx, profileID, verified); err != nil {
		return fmt.Errorf("failed to set verification status: %w", err)
	}

	s.metrics.VerificationChanges.WithLabelValues(strconv.FormatBool(verified)).Inc()

	if verified {
		s.notifyVerified(ctx, profileID)
	}

	s.invalidator.Invalidate(ctx, cache.KeyUsers, cache.KeyClinics)
	return nil
}

// UpdateClinicInfo upserts the clinic fields for a profile. The upsert is
// the primary write and its failure is fatal; the optional profile flag
// patch is secondary and only ever logged.
func (s *Service) UpdateClinicInfo(ctx context.Context, profileID uuid.UUID, req *model.UpdateClinicInfoRequest) (*Result, error) {
	info := &model.ClinicInfo{
		ProfileID:     profileID,
		ClinicName:    req.ClinicName,
		LicenseNumber: req.LicenseNumber,
		NIDNumber:     req.NIDNumber,
		DocsURL:       pq.StringArray(req.DocsURL),
	}

	if err := s.upsertClinicInfo(ctx, info); err != nil {
		return nil, fmt.Errorf("failed to update clinic info: %w", err)
	}

	result := &Result{ProfileID: profileID, Consistency: ConsistencyFull}

	if patch := req.FlagsPatch(); patch != nil {
		if err := s.profiles.UpdateFlags(ctx, profileID, patch); err != nil {
			log.Error().Err(err).
				Str("profile_id", profileID.String()).
				Msg("profile flag patch failed during clinic info update")
			s.metrics.PartialWrites.Inc()
			result.Consistency = ConsistencyPartial
		}
	}

	s.invalidator.Invalidate(ctx, cache.KeyUsers, cache.KeyClinics)
	return result, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	profile, err := s.profiles.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return profile, nil
}

func (s *Service) ListUsers(ctx context.Context, filters *model.ProfileFilters) ([]*model.Profile, error) {
	profiles, err := s.profiles.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return profiles, nil
}

func (s *Service) ListClinics(ctx context.Context) ([]*model.ClinicWithProfile, error) {
	clinics, err := s.clinics.ListWithProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

// upsertClinicInfo updates the clinic row keyed by owning profile and falls
// back to insert when no row exists yet. An omitted clinic name passes
// through the update untouched and only defaults on the insert branch.
func (s *Service) upsertClinicInfo(ctx context.Context, info *model.ClinicInfo) error {
	rows, err := s.clinics.UpdateByProfileID(ctx, info)
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}
	if info.ClinicName == "" {
		info.ClinicName = defaultClinicName
	}
	if info.DocsURL == nil {
		info.DocsURL = pq.StringArray{}
	}
	return s.clinics.Insert(ctx, info)
}

func (s *Service) notifyVerified(ctx context.Context, profileID uuid.UUID) {
	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		log.Error().Err(err).
			Str("profile_id", profileID.String()).
			Msg("failed to load profile for verification notice")
		return
	}

	clinicName := defaultClinicName
	if info, err := s.clinics.GetByProfileID(ctx, profileID); err == nil {
		clinicName = info.ClinicName
	}

	if err := s.emailSvc.SendClinicVerified(ctx, profile.Email, clinicName); err != nil {
		log.Error().Err(err).
			Str("email", profile.Email).
			Msg("failed to send verification notice")
	}
}

func (s *Service) validateCreate(req *model.CreateUserRequest) error {
	if req.Email == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}
