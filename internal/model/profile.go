package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the primary account record, one per identity store user.
// The ID is shared with the identity store account it was provisioned from.
type Profile struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	IsAdmin        bool      `json:"is_admin" db:"is_admin"`
	IsClinic       bool      `json:"is_clinic" db:"is_clinic"`
	ActAsClinic    bool      `json:"act_as_clinic" db:"act_as_clinic"`
	ActiveAsClinic bool      `json:"active_as_clinic" db:"active_as_clinic"`
	Status         bool      `json:"status" db:"status"`
	ImageURL       *string   `json:"image_url" db:"image_url"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// CreateUserRequest represents user provisioning parameters. The clinic
// fields are only consulted when IsClinic is set.
type CreateUserRequest struct {
	Email         string   `json:"email" binding:"required,email"`
	Password      string   `json:"password"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	IsClinic      bool     `json:"is_clinic"`
	ActAsClinic   bool     `json:"act_as_clinic"`
	IsAdmin       bool     `json:"is_admin"`
	Status        bool     `json:"status"`
	ImageURL      *string  `json:"image_url"`
	ClinicName    string   `json:"clinic_name"`
	LicenseNumber *string  `json:"license_number"`
	NIDNumber     *string  `json:"nid_number"`
	DocsURL       []string `json:"docs_url"`
}

// UpdateUserRequest is a full replacement set of the editable profile fields.
// The email here is the displayed email only; the identity store login email
// is left alone on update.
type UpdateUserRequest struct {
	Email         string  `json:"email" binding:"required,email"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	IsClinic      bool    `json:"is_clinic"`
	ActAsClinic   bool    `json:"act_as_clinic"`
	IsAdmin       bool    `json:"is_admin"`
	Status        bool    `json:"status"`
	ImageURL      *string `json:"image_url"`
	ClinicName    string  `json:"clinic_name"`
	LicenseNumber *string `json:"license_number"`
	NIDNumber     *string `json:"nid_number"`
}

// ProfileFlagsPatch is a partial update of the profile booleans. Nil fields
// are left untouched.
type ProfileFlagsPatch struct {
	Status         *bool `json:"status"`
	ActAsClinic    *bool `json:"act_as_clinic"`
	IsClinic       *bool `json:"is_clinic"`
	ActiveAsClinic *bool `json:"active_as_clinic"`
}

// IsEmpty reports whether the patch carries no changes.
func (p *ProfileFlagsPatch) IsEmpty() bool {
	return p == nil ||
		(p.Status == nil && p.ActAsClinic == nil && p.IsClinic == nil && p.ActiveAsClinic == nil)
}

// ProfileFilters represents profile search parameters for the admin list views.
type ProfileFilters struct {
	IsAdmin    *bool  `json:"is_admin"`
	IsClinic   *bool  `json:"is_clinic"`
	SearchTerm string `json:"search_term"`
}
