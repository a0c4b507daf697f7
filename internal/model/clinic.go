package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ClinicInfo is the optional 1:1 extension of a Profile describing the
// clinic a user operates. At most one row exists per profile.
type ClinicInfo struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	ProfileID     uuid.UUID      `json:"profile_id" db:"profile_id"`
	ClinicName    string         `json:"clinic_name" db:"clinic_name"`
	LicenseNumber *string        `json:"license_number" db:"license_number"`
	NIDNumber     *string        `json:"nid_number" db:"nid_number"`
	DocsURL       pq.StringArray `json:"docs_url" db:"docs_url"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

// ClinicWithProfile is a clinic row joined with its owning profile, as shown
// in the verification list view.
type ClinicWithProfile struct {
	ClinicInfo
	OwnerEmail     string `json:"owner_email" db:"owner_email"`
	OwnerFirstName string `json:"owner_first_name" db:"owner_first_name"`
	OwnerLastName  string `json:"owner_last_name" db:"owner_last_name"`
	Verified       bool   `json:"verified" db:"verified"`
}

// UpdateClinicInfoRequest upserts the clinic fields for a profile and may
// additionally patch a subset of the owning profile's flags.
type UpdateClinicInfoRequest struct {
	ClinicName    string   `json:"clinic_name"`
	LicenseNumber *string  `json:"license_number"`
	NIDNumber     *string  `json:"nid_number"`
	DocsURL       []string `json:"docs_url"`

	Status         *bool `json:"status"`
	ActAsClinic    *bool `json:"act_as_clinic"`
	IsClinic       *bool `json:"is_clinic"`
	ActiveAsClinic *bool `json:"active_as_clinic"`
}

// FlagsPatch extracts the optional profile flag updates, or nil when none
// were supplied.
func (r *UpdateClinicInfoRequest) FlagsPatch() *ProfileFlagsPatch {
	patch := &ProfileFlagsPatch{
		Status:         r.Status,
		ActAsClinic:    r.ActAsClinic,
		IsClinic:       r.IsClinic,
		ActiveAsClinic: r.ActiveAsClinic,
	}
	if patch.IsEmpty() {
		return nil
	}
	return patch
}

// SetVerificationRequest toggles the verified state of a clinic profile.
type SetVerificationRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}
