package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/clinicore/admin-api/internal/cache"
	"github.com/clinicore/admin-api/internal/config"
	"github.com/clinicore/admin-api/internal/email"
	authHandler "github.com/clinicore/admin-api/internal/handler/auth"
	clinicHandler "github.com/clinicore/admin-api/internal/handler/clinic"
	contentHandler "github.com/clinicore/admin-api/internal/handler/content"
	healthHandler "github.com/clinicore/admin-api/internal/handler/health"
	mediaHandler "github.com/clinicore/admin-api/internal/handler/media"
	promHandler "github.com/clinicore/admin-api/internal/handler/prometheus"
	userHandler "github.com/clinicore/admin-api/internal/handler/user"
	"github.com/clinicore/admin-api/internal/identity"
	"github.com/clinicore/admin-api/internal/middleware"
	"github.com/clinicore/admin-api/internal/repository/postgres"
	"github.com/clinicore/admin-api/internal/router"
	accountService "github.com/clinicore/admin-api/internal/service/account"
	contentService "github.com/clinicore/admin-api/internal/service/content"
	"github.com/clinicore/admin-api/internal/storage"
	"github.com/clinicore/admin-api/pkg/logger"
	"github.com/clinicore/admin-api/pkg/messaging"
	redisBroker "github.com/clinicore/admin-api/pkg/messaging/redis"
	"github.com/clinicore/admin-api/pkg/metrics"
)

const cacheTTL = 5 * time.Minute

func main() {
	logger.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_PRETTY") == "true")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ids, err := identity.NewClient(cfg.Identity)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create identity store client")
	}
	if role, err := ids.ServiceKeyRole(); err != nil {
		log.Warn().Err(err).Msg("could not inspect identity service key")
	} else if role != "service_role" {
		log.Warn().Str("role", role).Msg("identity key does not carry the service role; admin calls will fail")
	}

	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redisBroker.NewRedisBroker(cfg.Redis.ToBrokerConfig(), &log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()
	}

	listCache := cache.NewStore(cacheTTL, broker)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		if err := listCache.Listen(ctx); err != nil {
			log.Error().Err(err).Msg("cache invalidation listener stopped")
		}
	}()

	var emailSvc email.Service = email.NoopService{}
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(cfg.SMTP)
	}

	base := postgres.NewBaseRepository(db)
	profileRepo := postgres.NewProfileRepository(base)
	clinicRepo := postgres.NewClinicInfoRepository(base)
	categoryRepo := postgres.NewCategoryRepository(base)
	bannerRepo := postgres.NewBannerRepository(base)
	videoRepo := postgres.NewVideoRepository(base)

	prom := promHandler.New()
	m := metrics.NewMetrics(prom.Registry(), "clinicore")

	accountSvc := accountService.NewService(profileRepo, clinicRepo, ids, emailSvc, listCache, m)
	contentSvc := contentService.NewService(categoryRepo, bannerRepo, videoRepo)

	var mediaH router.Handler
	if cfg.Storage.Bucket != "" {
		uploader, err := storage.NewS3Uploader(ctx, storage.Config{
			Bucket:  cfg.Storage.Bucket,
			Region:  cfg.Storage.Region,
			BaseURL: cfg.Storage.BaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create media uploader")
		}
		mediaH = mediaHandler.NewHandler(uploader)
	}

	var rateLimit rate.Limit
	if cfg.RateLimit.Enabled {
		rateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
	}

	r := router.NewRouter(
		prom,
		healthHandler.NewHandler(db),
		authHandler.NewHandler(cfg.Auth, profileRepo),
		userHandler.NewHandler(accountSvc, listCache),
		clinicHandler.NewHandler(accountSvc, listCache),
		contentHandler.NewHandler(contentSvc),
		mediaH,
		router.Config{
			Auth:       cfg.Auth,
			RateLimit:  rateLimit,
			RateBurst:  cfg.RateLimit.Burst,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
