package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/admin-api/internal/config"
	"github.com/clinicore/admin-api/internal/repository"
	apperrors "github.com/clinicore/admin-api/pkg/errors"
	"github.com/clinicore/admin-api/pkg/httputil"
	"github.com/clinicore/admin-api/pkg/security"
)

// sessionTTL is the cookie lifetime in seconds.
const sessionTTL = 12 * 60 * 60

type Handler struct {
	cfg      config.AuthConfig
	profiles repository.ProfileRepository
	hasher   security.PasswordHasher
}

func NewHandler(cfg config.AuthConfig, profiles repository.ProfileRepository) *Handler {
	return &Handler{
		cfg:      cfg,
		profiles: profiles,
		hasher:   security.NewBcryptHasher(0),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login checks the email against the profile store's admin flag and the
// password against the configured hash, then sets the session cookie. The
// failure response never says which check failed.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}

	profile, err := h.profiles.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || !profile.IsAdmin {
		log.Warn().Str("email", req.Email).Msg("admin login rejected")
		httputil.RespondWithError(c, apperrors.Unauthorized("invalid credentials", err))
		return
	}

	if err := h.hasher.Compare(h.cfg.AdminPasswordHash, req.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("admin login rejected")
		httputil.RespondWithError(c, apperrors.Unauthorized("invalid credentials", err))
		return
	}

	c.SetCookie(h.cfg.SessionCookie, h.cfg.SessionSentinel, sessionTTL, "/", "", false, true)
	httputil.RespondWithSuccess(c, gin.H{"email": profile.Email})
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(h.cfg.SessionCookie, "", -1, "/", "", false, true)
	httputil.RespondWithSuccess(c, gin.H{"logged_out": true})
}
