package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/clinicore/admin-api/internal/config"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.AuthConfig{
		SessionCookie:   "admin_session",
		SessionSentinel: "true",
	}

	r := gin.New()
	r.Use(AdminSession(cfg))
	r.GET("/protected", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAdminSession_MissingCookie(t *testing.T) {
	r := setupAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminSession_WrongValue(t *testing.T) {
	r := setupAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "admin_session", Value: "false"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminSession_ValidCookie(t *testing.T) {
	r := setupAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "admin_session", Value: "true"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
