package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTimeout_PassesThroughFastHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(TimeoutConfig{Duration: time.Second}))
	r.GET("/fast", func(c *gin.Context) {
		c.Header("X-Custom", "yes")
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fast", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "yes", rec.Header().Get("X-Custom"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestTimeout_SlowHandlerGets504AndLateWritesAreDropped(t *testing.T) {
	gin.SetMode(gin.TestMode)
	wrote := make(chan struct{})

	r := gin.New()
	r.Use(Timeout(TimeoutConfig{Duration: 20 * time.Millisecond}))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
		// This write must land in the discarded buffer, not the wire.
		c.String(http.StatusOK, "too late")
		close(wrote)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))

	<-wrote
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.NotContains(t, rec.Body.String(), "too late")
	assert.Contains(t, rec.Body.String(), "request timeout")
}
