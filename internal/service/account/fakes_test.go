package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicore/admin-api/internal/identity"
	"github.com/clinicore/admin-api/internal/model"
)

type fakeIdentityStore struct {
	users        map[uuid.UUID]*identity.User
	lastPassword string
	createErr    error
	deleteErr    error
	createCalls  int
	deleteCalls  int
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{users: make(map[uuid.UUID]*identity.User)}
}

func (f *fakeIdentityStore) CreateUser(ctx context.Context, params identity.CreateUserParams) (*identity.User, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range f.users {
		if u.Email == params.Email {
			return nil, fmt.Errorf("a user with this email address has already been registered")
		}
	}
	user := &identity.User{
		ID:       uuid.New(),
		Email:    params.Email,
		Metadata: params.Metadata,
	}
	f.users[user.ID] = user
	f.lastPassword = params.Password
	return user, nil
}

func (f *fakeIdentityStore) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, identity.ErrNotFound
	}
	return user, nil
}

func (f *fakeIdentityStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.users[id]; !ok {
		return identity.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeProfileRepo struct {
	profiles  map[uuid.UUID]*model.Profile
	createErr error
	updateErr error
	flagsErr  error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*model.Profile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *model.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := *profile
	f.profiles[profile.ID] = &stored
	return nil
}

func (f *fakeProfileRepo) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile not found")
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("profile not found")
}

// Update mirrors the SQL update: only the editable columns change.
func (f *fakeProfileRepo) Update(ctx context.Context, profile *model.Profile) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	existing, ok := f.profiles[profile.ID]
	if !ok {
		return fmt.Errorf("profile not found")
	}
	existing.Email = profile.Email
	existing.FirstName = profile.FirstName
	existing.LastName = profile.LastName
	existing.IsAdmin = profile.IsAdmin
	existing.IsClinic = profile.IsClinic
	existing.ActAsClinic = profile.ActAsClinic
	existing.Status = profile.Status
	existing.ImageURL = profile.ImageURL
	return nil
}

func (f *fakeProfileRepo) UpdateFlags(ctx context.Context, id uuid.UUID, patch *model.ProfileFlagsPatch) error {
	if f.flagsErr != nil {
		return f.flagsErr
	}
	existing, ok := f.profiles[id]
	if !ok {
		return fmt.Errorf("profile not found")
	}
	if patch.Status != nil {
		existing.Status = *patch.Status
	}
	if patch.ActAsClinic != nil {
		existing.ActAsClinic = *patch.ActAsClinic
	}
	if patch.IsClinic != nil {
		existing.IsClinic = *patch.IsClinic
	}
	if patch.ActiveAsClinic != nil {
		existing.ActiveAsClinic = *patch.ActiveAsClinic
	}
	return nil
}

func (f *fakeProfileRepo) SetClinicStatus(ctx context.Context, id uuid.UUID, verified bool) error {
	existing, ok := f.profiles[id]
	if !ok {
		return fmt.Errorf("profile not found")
	}
	existing.IsClinic = verified
	return nil
}

func (f *fakeProfileRepo) List(ctx context.Context, filters *model.ProfileFilters) ([]*model.Profile, error) {
	var out []*model.Profile
	for _, p := range f.profiles {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeProfileRepo) ListClinicsWithoutInfo(ctx context.Context) ([]*model.Profile, error) {
	return nil, nil
}

type fakeClinicRepo struct {
	rows        map[uuid.UUID]*model.ClinicInfo
	insertErr   error
	updateErr   error
	insertCalls int
}

func newFakeClinicRepo() *fakeClinicRepo {
	return &fakeClinicRepo{rows: make(map[uuid.UUID]*model.ClinicInfo)}
}

func (f *fakeClinicRepo) Insert(ctx context.Context, info *model.ClinicInfo) error {
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	info.ID = uuid.New()
	stored := *info
	f.rows[info.ProfileID] = &stored
	return nil
}

func (f *fakeClinicRepo) GetByProfileID(ctx context.Context, profileID uuid.UUID) (*model.ClinicInfo, error) {
	row, ok := f.rows[profileID]
	if !ok {
		return nil, fmt.Errorf("clinic info not found")
	}
	copied := *row
	return &copied, nil
}

func (f *fakeClinicRepo) UpdateByProfileID(ctx context.Context, info *model.ClinicInfo) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	existing, ok := f.rows[info.ProfileID]
	if !ok {
		return 0, nil
	}
	if info.ClinicName != "" {
		existing.ClinicName = info.ClinicName
	}
	existing.LicenseNumber = info.LicenseNumber
	existing.NIDNumber = info.NIDNumber
	if info.DocsURL != nil {
		existing.DocsURL = info.DocsURL
	}
	return 1, nil
}

func (f *fakeClinicRepo) ListWithProfiles(ctx context.Context) ([]*model.ClinicWithProfile, error) {
	return nil, nil
}

type fakeInvalidator struct {
	keys []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, keys ...string) {
	f.keys = append(f.keys, keys...)
}

type fakeEmailService struct {
	sent    []string
	sendErr error
}

func (f *fakeEmailService) SendClinicVerified(ctx context.Context, to, clinicName string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, to)
	return nil
}
