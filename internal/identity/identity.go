package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/admin-api/internal/model"
)

// ErrNotFound is returned when the identity store has no account for the
// given id.
var ErrNotFound = errors.New("identity account not found")

// User is an identity store account.
type User struct {
	ID        uuid.UUID     `json:"id"`
	Email     string        `json:"email"`
	Metadata  model.JSONMap `json:"user_metadata"`
	CreatedAt time.Time     `json:"created_at"`
}

// CreateUserParams are the parameters for admin account creation.
type CreateUserParams struct {
	Email        string        `json:"email"`
	Password     string        `json:"password"`
	EmailConfirm bool          `json:"email_confirm"`
	Metadata     model.JSONMap `json:"user_metadata,omitempty"`
}

// Store is the identity store admin surface the provisioning service
// depends on. Accounts hold the login credentials; profile rows in the
// relational store reference them by id.
type Store interface {
	CreateUser(ctx context.Context, params CreateUserParams) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
