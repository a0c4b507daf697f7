package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
type Metrics struct {
	// Provisioning metrics
	UsersProvisioned    prometheus.Counter
	CompensatingDeletes prometheus.Counter
	PartialWrites       prometheus.Counter
	UsersDeleted        prometheus.Counter
	VerificationChanges *prometheus.CounterVec

	// Repair worker metrics
	RepairRuns         prometheus.Counter
	RepairFailures     prometheus.Counter
	RepairedClinicRows prometheus.Counter
}

// NewMetrics creates and registers all application metrics against the
// given registerer.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		UsersProvisioned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provisioning",
			Name:      "users_created_total",
			Help:      "Total number of successfully provisioned users",
		}),
		CompensatingDeletes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provisioning",
			Name:      "compensating_deletes_total",
			Help:      "Total number of identity accounts rolled back after a failed profile insert",
		}),
		PartialWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provisioning",
			Name:      "partial_writes_total",
			Help:      "Total number of operations that succeeded with an inconsistent secondary write",
		}),
		UsersDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provisioning",
			Name:      "users_deleted_total",
			Help:      "Total number of deleted users",
		}),
		VerificationChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provisioning",
			Name:      "verification_changes_total",
			Help:      "Total number of clinic verification status changes",
		}, []string{"verified"}),

		RepairRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "repair",
			Name:      "runs_total",
			Help:      "Total number of consistency repair sweeps",
		}),
		RepairFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "repair",
			Name:      "failures_total",
			Help:      "Total number of failed repair sweeps",
		}),
		RepairedClinicRows: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "repair",
			Name:      "clinic_rows_total",
			Help:      "Total number of missing clinic rows recreated",
		}),
	}
}
