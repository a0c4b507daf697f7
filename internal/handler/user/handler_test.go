package user

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/admin-api/internal/cache"
	"github.com/clinicore/admin-api/internal/model"
	"github.com/clinicore/admin-api/internal/service/account"
)

type stubService struct {
	createResult *account.Result
	createErr    error
	listCalls    int
	profiles     []*model.Profile
	deleted      []uuid.UUID
}

func (s *stubService) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*account.Result, error) {
	return s.createResult, s.createErr
}

func (s *stubService) UpdateUser(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*account.Result, error) {
	return &account.Result{ProfileID: id, Consistency: account.ConsistencyFull}, nil
}

func (s *stubService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubService) SetClinicVerification(ctx context.Context, profileID uuid.UUID, verified bool) error {
	return nil
}

func (s *stubService) UpdateClinicInfo(ctx context.Context, profileID uuid.UUID, req *model.UpdateClinicInfoRequest) (*account.Result, error) {
	return &account.Result{ProfileID: profileID, Consistency: account.ConsistencyFull}, nil
}

func (s *stubService) GetUser(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	for _, p := range s.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile not found")
}

func (s *stubService) ListUsers(ctx context.Context, filters *model.ProfileFilters) ([]*model.Profile, error) {
	s.listCalls++
	return s.profiles, nil
}

func (s *stubService) ListClinics(ctx context.Context) ([]*model.ClinicWithProfile, error) {
	return nil, nil
}

func setup(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc, cache.NewStore(time.Minute, nil))
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestCreateUser_InvalidBody(t *testing.T) {
	r := setup(&stubService{})

	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"email": "not-an-email"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email")
}

func TestCreateUser_ReturnsResult(t *testing.T) {
	id := uuid.New()
	svc := &stubService{
		createResult: &account.Result{ProfileID: id, Consistency: account.ConsistencyFull},
	}
	r := setup(svc)

	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"email": "user@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ProfileID   uuid.UUID `json:"profile_id"`
			Consistency string    `json:"consistency"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, id, resp.Data.ProfileID)
	assert.Equal(t, "full", resp.Data.Consistency)
}

func TestListUsers_CachesUnfilteredList(t *testing.T) {
	svc := &stubService{profiles: []*model.Profile{{ID: uuid.New()}}}
	r := setup(svc)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	// First call misses, the rest are served from cache.
	assert.Equal(t, 1, svc.listCalls)
}

func TestListUsers_FilteredBypassesCache(t *testing.T) {
	svc := &stubService{}
	r := setup(svc)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users?is_clinic=true", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 2, svc.listCalls)
}

func TestDeleteUser_InvalidID(t *testing.T) {
	r := setup(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUser(t *testing.T) {
	svc := &stubService{}
	r := setup(svc)
	id := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+id.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uuid.UUID{id}, svc.deleted)
}
