package user

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/admin-api/internal/cache"
	"github.com/clinicore/admin-api/internal/model"
	"github.com/clinicore/admin-api/internal/service/account"
	apperrors "github.com/clinicore/admin-api/pkg/errors"
	"github.com/clinicore/admin-api/pkg/httputil"
)

type Handler struct {
	service account.Servicer
	cache   *cache.Store
}

func NewHandler(service account.Servicer, store *cache.Store) *Handler {
	return &Handler{service: service, cache: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
	r.GET("/admins", h.ListAdmins)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}

	result, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("failed to create user", err))
		return
	}

	httputil.RespondWithCreated(c, result)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid user ID", err))
		return
	}

	profile, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("user", err))
		return
	}

	httputil.RespondWithSuccess(c, profile)
}

// ListUsers returns profiles, optionally filtered. The unfiltered list is
// served from the list view cache.
func (h *Handler) ListUsers(c *gin.Context) {
	filters := parseFilters(c)

	if filters == nil {
		if cached, ok := h.cache.Get(cache.KeyUsers); ok {
			httputil.RespondWithSuccess(c, cached)
			return
		}
	}

	profiles, err := h.service.ListUsers(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}

	if filters == nil {
		h.cache.Set(cache.KeyUsers, profiles)
	}
	httputil.RespondWithSuccess(c, profiles)
}

func (h *Handler) ListAdmins(c *gin.Context) {
	if cached, ok := h.cache.Get(cache.KeyAdmins); ok {
		httputil.RespondWithSuccess(c, cached)
		return
	}

	isAdmin := true
	profiles, err := h.service.ListUsers(c.Request.Context(), &model.ProfileFilters{IsAdmin: &isAdmin})
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}

	h.cache.Set(cache.KeyAdmins, profiles)
	httputil.RespondWithSuccess(c, profiles)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid user ID", err))
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}

	result, err := h.service.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("failed to update user", err))
		return
	}

	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid user ID", err))
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

func parseFilters(c *gin.Context) *model.ProfileFilters {
	filters := &model.ProfileFilters{}
	empty := true

	if v := c.Query("is_admin"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filters.IsAdmin = &b
			empty = false
		}
	}
	if v := c.Query("is_clinic"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filters.IsClinic = &b
			empty = false
		}
	}
	if v := c.Query("search"); v != "" {
		filters.SearchTerm = v
		empty = false
	}

	if empty {
		return nil
	}
	return filters
}
