package clinic

import (
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
	clinics := r.Group("/clinics")
	{
		clinics.GET("", h.ListClinics)
		clinics.POST("/:profile_id/verification", h.SetVerification)
		clinics.PUT("/:profile_id", h.UpdateClinicInfo)
	}
}

// ListClinics returns clinic rows joined with their owner profiles, served
// from the list view cache when warm.
func (h *Handler) ListClinics(c *gin.Context) {
	if cached, ok := h.cache.Get(cache.KeyClinics); ok {
		httputil.RespondWithSuccess(c, cached)
		return
	}

	clinics, err := h.service.ListClinics(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}

	h.cache.Set(cache.KeyClinics, clinics)
	httputil.RespondWithSuccess(c, clinics)
}

func (h *Handler) SetVerification(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("profile_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid profile ID", err))
		return
	}

	var req model.SetVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}

	if err := h.service.SetClinicVerification(c.Request.Context(), profileID, *req.Verified); err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"verified": *req.Verified})
}

func (h *Handler) UpdateClinicInfo(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("profile_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid profile ID", err))
		return
	}

	var req model.UpdateClinicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}

	result, err := h.service.UpdateClinicInfo(c.Request.Context(), profileID, &req)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("failed to update clinic info", err))
		return
	}

	httputil.RespondWithSuccess(c, result)
}
