package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/clinicore/admin-api/internal/config"
	"github.com/clinicore/admin-api/internal/handler/prometheus"
	"github.com/clinicore/admin-api/internal/middleware"
)

// Handler registers its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine  *gin.Engine
	metrics *prometheus.Handler
	auth    config.AuthConfig

	healthH  Handler
	authH    Handler
	userH    Handler
	clinicH  Handler
	contentH Handler
	mediaH   Handler
}

type Config struct {
	Auth       config.AuthConfig
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

func NewRouter(
	metrics *prometheus.Handler,
	healthH Handler,
	authH Handler,
	userH Handler,
	clinicH Handler,
	contentH Handler,
	mediaH Handler,
	cfg Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:   engine,
		metrics:  metrics,
		auth:     cfg.Auth,
		healthH:  healthH,
		authH:    authH,
		userH:    userH,
		clinicH:  clinicH,
		contentH: contentH,
		mediaH:   mediaH,
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		metrics.Middleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: 30 * time.Second}),
		middleware.CORS(cfg.CORSConfig),
	)

	if cfg.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  cfg.RateLimit,
			Burst: cfg.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

// Setup registers all routes. Everything under /api/v1 except login and
// the health/metrics endpoints requires an admin session.
func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	r.healthH.RegisterRoutes(api)
	api.GET("/metrics", r.metrics.Handler())
	r.authH.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.AdminSession(r.auth))
	{
		r.userH.RegisterRoutes(protected)
		r.clinicH.RegisterRoutes(protected)
		r.contentH.RegisterRoutes(protected)
		if r.mediaH != nil {
			r.mediaH.RegisterRoutes(protected)
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
