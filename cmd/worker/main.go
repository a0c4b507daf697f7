package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/admin-api/internal/config"
	"github.com/clinicore/admin-api/internal/repository/postgres"
	"github.com/clinicore/admin-api/internal/worker"
	"github.com/clinicore/admin-api/pkg/logger"
	"github.com/clinicore/admin-api/pkg/metrics"
)

const defaultRepairInterval = 5 * time.Minute

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

	base := postgres.NewBaseRepository(db)
	profileRepo := postgres.NewProfileRepository(base)
	clinicRepo := postgres.NewClinicInfoRepository(base)

	m := metrics.NewMetrics(prometheus.DefaultRegisterer, "clinicore_worker")

	interval := cfg.Worker.RepairInterval
	if interval == 0 {
		interval = defaultRepairInterval
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reconciler := worker.NewReconciler(profileRepo, clinicRepo, m, interval)

	log.Info().Dur("interval", interval).Msg("starting clinic repair worker")
	reconciler.Start(ctx)
	log.Info().Msg("worker exited")
}
