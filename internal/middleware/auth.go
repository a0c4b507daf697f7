package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/admin-api/internal/config"
)

// AdminSession guards the admin API. The session cookie carries a fixed
// sentinel value set at login; any other value, or no cookie at all, is
// rejected before the handler runs.
func AdminSession(cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := c.Cookie(cfg.SessionCookie)
		if err != nil || session != cfg.SessionSentinel {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "admin session required",
				TraceID: c.GetString(ContextRequestID),
			})
			return
		}
		c.Next()
	}
}
