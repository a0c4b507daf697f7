package account

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/admin-api/internal/model"
	"github.com/clinicore/admin-api/pkg/metrics"
)

type testEnv struct {
	svc         *Service
	ids         *fakeIdentityStore
	profiles    *fakeProfileRepo
	clinics     *fakeClinicRepo
	invalidator *fakeInvalidator
	email       *fakeEmailService
	metrics     *metrics.Metrics
}

func newTestEnv() *testEnv {
	env := &testEnv{
		ids:         newFakeIdentityStore(),
		profiles:    newFakeProfileRepo(),
		clinics:     newFakeClinicRepo(),
		invalidator: &fakeInvalidator{},
		email:       &fakeEmailService{},
		metrics:     metrics.NewMetrics(prometheus.NewRegistry(), "test"),
	}
	env.svc = NewService(env.profiles, env.clinics, env.ids, env.email, env.invalidator, env.metrics)
	return env
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv()

	result, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email:     "a@a.com",
		FirstName: "Ada",
		LastName:  "Amari",
		Status:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, ConsistencyFull, result.Consistency)

	// Exactly one identity account and one profile row, same id.
	require.Len(t, env.ids.users, 1)
	require.Len(t, env.profiles.profiles, 1)
	profile, err := env.profiles.Get(context.Background(), result.ProfileID)
	require.NoError(t, err)
	_, err = env.ids.GetUser(context.Background(), result.ProfileID)
	require.NoError(t, err)

	assert.Equal(t, "a@a.com", profile.Email)
	assert.True(t, profile.Status)
	assert.False(t, profile.IsClinic)
	assert.False(t, profile.ActAsClinic)

	// No password given: the fixed fallback is used.
	assert.Equal(t, "11112222", env.ids.lastPassword)
}

func TestCreateUser_ActAsClinicRequiresBothFlags(t *testing.T) {
	cases := []struct {
		name        string
		isClinic    bool
		actAsClinic bool
		want        bool
	}{
		{"neither", false, false, false},
		{"act only", false, true, false},
		{"clinic only", true, false, false},
		{"both", true, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv()
			result, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{
				Email:       "clinic@example.com",
				IsClinic:    tc.isClinic,
				ActAsClinic: tc.actAsClinic,
			})
			require.NoError(t, err)

			profile, err := env.profiles.Get(context.Background(), result.ProfileID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, profile.ActAsClinic)
		})
	}
}

func TestCreateUser_IdentityFailureWritesNothing(t *testing.T) {
	env := newTestEnv()
	env.ids.createErr = errors.New("invalid password")

	_, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{Email: "a@a.com"})
	require.Error(t, err)
	assert.Empty(t, env.profiles.profiles)
	assert.Empty(t, env.clinics.rows)
	assert.Empty(t, env.invalidator.keys)
}

func TestCreateUser_ProfileFailureRollsBackIdentity(t *testing.T) {
	env := newTestEnv()
	env.profiles.createErr = errors.New("constraint violation")

	_, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{Email: "a@a.com"})
	require.Error(t, err)

	// Compensating delete fired: the identity account is gone again.
	assert.Empty(t, env.ids.users)
	assert.Equal(t, 1, env.ids.deleteCalls)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.CompensatingDeletes))
}

func TestCreateUser_ClinicInsertFailureIsPartialSuccess(t *testing.T) {
	env := newTestEnv()
	env.clinics.insertErr = errors.New("connection reset")

	result, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email:    "clinic@example.com",
		IsClinic: true,
	})
	require.NoError(t, err)
	assert.Equal(t, ConsistencyPartial, result.Consistency)

	// Identity account and profile survive the clinic failure.
	assert.Len(t, env.ids.users, 1)
	assert.Len(t, env.profiles.profiles, 1)
	assert.Empty(t, env.clinics.rows)
}

func TestCreateUser_ClinicDefaults(t *testing.T) {
	env := newTestEnv()

	result, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email:    "a@a.com",
		IsClinic: true,
	})
	require.NoError(t, err)

	info, err := env.clinics.GetByProfileID(context.Background(), result.ProfileID)
	require.NoError(t, err)
	assert.Equal(t, "New Clinic", info.ClinicName)
	assert.Nil(t, info.LicenseNumber)
	assert.Nil(t, info.NIDNumber)
	assert.Empty(t, info.DocsURL)
	assert.NotNil(t, info.DocsURL)
}

func TestCreateUser_InvalidatesListViews(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{Email: "a@a.com"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"users", "clinics", "admins"}, env.invalidator.keys)
}

func TestUpdateUser_UpsertKeepsSingleClinicRow(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email: "clinic@example.com",
	})
	require.NoError(t, err)

	// First update inserts the missing row, second one updates it in place.
	first := &model.UpdateUserRequest{Email: "clinic@example.com", IsClinic: true, ClinicName: "North Clinic"}
	second := &model.UpdateUserRequest{Email: "clinic@example.com", IsClinic: true, ClinicName: "South Clinic"}

	_, err = env.svc.UpdateUser(context.Background(), created.ProfileID, first)
	require.NoError(t, err)
	_, err = env.svc.UpdateUser(context.Background(), created.ProfileID, second)
	require.NoError(t, err)

	assert.Equal(t, 1, env.clinics.insertCalls)
	require.Len(t, env.clinics.rows, 1)

	info, err := env.clinics.GetByProfileID(context.Background(), created.ProfileID)
	require.NoError(t, err)
	assert.Equal(t, "South Clinic", info.ClinicName)
}

func TestUpdateUser_Idempotent(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{Email: "a@a.com"})
	require.NoError(t, err)

	req := &model.UpdateUserRequest{
		Email:     "renamed@a.com",
		FirstName: "Rae",
		Status:    true,
	}

	_, err = env.svc.UpdateUser(context.Background(), created.ProfileID, req)
	require.NoError(t, err)
	once, err := env.profiles.Get(context.Background(), created.ProfileID)
	require.NoError(t, err)

	_, err = env.svc.UpdateUser(context.Background(), created.ProfileID, req)
	require.NoError(t, err)
	twice, err := env.profiles.Get(context.Background(), created.ProfileID)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestUpdateUser_ClinicUpsertFailureIsPartialSuccess(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{Email: "a@a.com"})
	require.NoError(t, err)

	env.clinics.updateErr = errors.New("connection reset")

	result, err := env.svc.UpdateUser(context.Background(), created.ProfileID, &model.UpdateUserRequest{
		Email:    "a@a.com",
		IsClinic: true,
	})
	require.NoError(t, err)
	assert.Equal(t, ConsistencyPartial, result.Consistency)
}

func TestSetClinicVerification_TogglesOnlyClinicFlag(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email:       "clinic@example.com",
		FirstName:   "Vera",
		IsClinic:    true,
		ActAsClinic: true,
		Status:      true,
	})
	require.NoError(t, err)

	before, err := env.profiles.Get(context.Background(), created.ProfileID)
	require.NoError(t, err)

	require.NoError(t, env.svc.SetClinicVerification(context.Background(), created.ProfileID, false))
	require.NoError(t, env.svc.SetClinicVerification(context.Background(), created.ProfileID, true))

	after, err := env.profiles.Get(context.Background(), created.ProfileID)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	require.NoError(t, env.svc.SetClinicVerification(context.Background(), created.ProfileID, false))
	unverified, err := env.profiles.Get(context.Background(), created.ProfileID)
	require.NoError(t, err)

	assert.False(t, unverified.IsClinic)
	unverified.IsClinic = before.IsClinic
	assert.Equal(t, before, unverified)
}

func TestSetClinicVerification_SendsNotice(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Email:    "clinic@example.com",
		IsClinic: true,
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.SetClinicVerification(context.Background(), created.ProfileID, true))
	assert.Equal(t, []string{"clinic@example.com"}, env.email.sent)

	// A failing mailer never fails the operation.
	env.email.sendErr = errors.New("smtp down")
	assert.NoError(t, env.svc.SetClinicVerification(context.Background(), created.ProfileID, true))
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{Email: "a@a.com"})
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteUser(context.Background(), created.ProfileID))
	assert.Empty(t, env.ids.users)
}

func TestDeleteUser_MissingIdentityAccount(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{Email: "a@a.com"})
	require.NoError(t, err)

	// Simulate an account already gone from the identity store.
	env.ids.deleteErr = errors.New("user not found")

	err = env.svc.DeleteUser(context.Background(), created.ProfileID)
	require.Error(t, err)

	// The profile row is left untouched.
	assert.Len(t, env.profiles.profiles, 1)
}

func TestUpdateClinicInfo_UpsertTwiceKeepsSingleRow(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{Email: "a@a.com"})
	require.NoError(t, err)

	_, err = env.svc.UpdateClinicInfo(context.Background(), created.ProfileID, &model.UpdateClinicInfoRequest{
		ClinicName: "First Name",
		DocsURL:    []string{"https://cdn.example.com/license.pdf"},
	})
	require.NoError(t, err)

	_, err = env.svc.UpdateClinicInfo(context.Background(), created.ProfileID, &model.UpdateClinicInfoRequest{
		ClinicName: "Second Name",
	})
	require.NoError(t, err)

	require.Len(t, env.clinics.rows, 1)
	info, err := env.clinics.GetByProfileID(context.Background(), created.ProfileID)
	require.NoError(t, err)
	assert.Equal(t, "Second Name", info.ClinicName)
	// Omitted docs leave the stored list untouched.
	assert.Equal(t, []string{"https://cdn.example.com/license.pdf"}, []string(info.DocsURL))
}

func TestUpdateClinicInfo_OmittedNameKeepsStoredName(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{Email: "a@a.com"})
	require.NoError(t, err)

	_, err = env.svc.UpdateClinicInfo(context.Background(), created.ProfileID, &model.UpdateClinicInfoRequest{
		ClinicName: "Sunrise Clinic",
	})
	require.NoError(t, err)

	// A follow-up update without a name must not reset it to the placeholder.
	license := "LIC-42"
	_, err = env.svc.UpdateClinicInfo(context.Background(), created.ProfileID, &model.UpdateClinicInfoRequest{
		LicenseNumber: &license,
	})
	require.NoError(t, err)

	info, err := env.clinics.GetByProfileID(context.Background(), created.ProfileID)
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Clinic", info.ClinicName)
	require.NotNil(t, info.LicenseNumber)
	assert.Equal(t, "LIC-42", *info.LicenseNumber)
}

func TestUpdateClinicInfo_OmittedNameDefaultsOnFirstWrite(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{Email: "a@a.com"})
	require.NoError(t, err)

	license := "LIC-42"
	_, err = env.svc.UpdateClinicInfo(context.Background(), created.ProfileID, &model.UpdateClinicInfoRequest{
		LicenseNumber: &license,
	})
	require.NoError(t, err)

	info, err := env.clinics.GetByProfileID(context.Background(), created.ProfileID)
	require.NoError(t, err)
	assert.Equal(t, "New Clinic", info.ClinicName)
}

func TestUpdateClinicInfo_FlagPatchFailureIsPartialSuccess(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{Email: "a@a.com"})
	require.NoError(t, err)

	env.profiles.flagsErr = errors.New("connection reset")
	active := true

	result, err := env.svc.UpdateClinicInfo(context.Background(), created.ProfileID, &model.UpdateClinicInfoRequest{
		ClinicName:     "Clinic",
		ActiveAsClinic: &active,
	})
	require.NoError(t, err)
	assert.Equal(t, ConsistencyPartial, result.Consistency)

	// The primary clinic write still landed.
	_, err = env.clinics.GetByProfileID(context.Background(), created.ProfileID)
	assert.NoError(t, err)
}

func TestUpdateClinicInfo_PatchesProfileFlags(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateUser(context.Background(), &model.CreateUserRequest{Email: "a@a.com"})
	require.NoError(t, err)

	verified := true
	active := true
	_, err = env.svc.UpdateClinicInfo(context.Background(), created.ProfileID, &model.UpdateClinicInfoRequest{
		ClinicName:     "Clinic",
		IsClinic:       &verified,
		ActiveAsClinic: &active,
	})
	require.NoError(t, err)

	profile, err := env.profiles.Get(context.Background(), created.ProfileID)
	require.NoError(t, err)
	assert.True(t, profile.IsClinic)
	assert.True(t, profile.ActiveAsClinic)
}
