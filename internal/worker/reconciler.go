package worker

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/admin-api/internal/model"
	"github.com/clinicore/admin-api/internal/repository"
	"github.com/clinicore/admin-api/pkg/metrics"
)

// placeholderClinicName matches the name given to clinic rows created
// during provisioning before the owner picks one.
const placeholderClinicName = "New Clinic"

// Reconciler repairs clinic profiles whose clinic row is missing. Such rows
// appear when provisioning reports partial consistency: the profile landed
// but the dependent clinic insert failed.
type Reconciler struct {
	profiles repository.ProfileRepository
	clinics  repository.ClinicInfoRepository
	metrics  *metrics.Metrics
	interval time.Duration
}

func NewReconciler(
	profiles repository.ProfileRepository,
	clinics repository.ClinicInfoRepository,
	m *metrics.Metrics,
	interval time.Duration,
) *Reconciler {
	return &Reconciler{
		profiles: profiles,
		clinics:  clinics,
		metrics:  m,
		interval: interval,
	}
}

// Start runs repair sweeps until ctx is cancelled.
func (w *Reconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.metrics.RepairRuns.Inc()
			if err := w.RunOnce(ctx); err != nil {
				w.metrics.RepairFailures.Inc()
				log.Error().Err(err).Msg("clinic repair sweep failed")
			}
		}
	}
}

// RunOnce finds clinic profiles without a clinic row and inserts
// placeholder rows for them. Each insert is retried with exponential
// backoff; a profile that still fails is left for the next sweep.
func (w *Reconciler) RunOnce(ctx context.Context) error {
	orphans, err := w.profiles.ListClinicsWithoutInfo(ctx)
	if err != nil {
		return err
	}

	for _, profile := range orphans {
		if err := w.repair(ctx, profile); err != nil {
			log.Error().Err(err).
				Str("profile_id", profile.ID.String()).
				Msg("failed to repair clinic row")
			continue
		}
		w.metrics.RepairedClinicRows.Inc()
		log.Info().
			Str("profile_id", profile.ID.String()).
			Msg("repaired missing clinic row")
	}

	return nil
}

func (w *Reconciler) repair(ctx context.Context, profile *model.Profile) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)

	return backoff.Retry(func() error {
		info := &model.ClinicInfo{
			ProfileID:  profile.ID,
			ClinicName: placeholderClinicName,
		}
		return w.clinics.Insert(ctx, info)
	}, policy)
}
