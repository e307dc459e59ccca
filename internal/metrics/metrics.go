package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the domain counters of the upload service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	filesStored          *prometheus.CounterVec
	rejected             *prometheus.CounterVec
	filesDeleted         *prometheus.CounterVec
	categoriesCreated    prometheus.Counter
	categoryLoadFailures prometheus.Counter
	listingFailures      *prometheus.CounterVec
}

// New creates the domain counters and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		filesStored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upload_files_stored_total",
				Help: "Files written to storage.",
			},
			[]string{"family"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upload_rejected_total",
				Help: "Upload requests rejected before any write.",
			},
			[]string{"family", "reason"},
		),
		filesDeleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upload_files_deleted_total",
				Help: "Files removed from storage.",
			},
			[]string{"family"},
		),
		categoriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "upload_categories_created_total",
			Help: "Document categories created.",
		}),
		categoryLoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "upload_category_load_failures_total",
			Help: "Persisted category files that could not be parsed and were reset to empty.",
		}),
		listingFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upload_listing_failures_total",
				Help: "Category listings that failed and were reported as empty.",
			},
			[]string{"family"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.filesStored,
		m.rejected,
		m.filesDeleted,
		m.categoriesCreated,
		m.categoryLoadFailures,
		m.listingFailures,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) FileStored(family string) {
	if m == nil {
		return
	}
	m.filesStored.WithLabelValues(family).Inc()
}

func (m *Metrics) UploadRejected(family, reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(family, reason).Inc()
}

func (m *Metrics) FileDeleted(family string) {
	if m == nil {
		return
	}
	m.filesDeleted.WithLabelValues(family).Inc()
}

func (m *Metrics) CategoryCreated() {
	if m == nil {
		return
	}
	m.categoriesCreated.Inc()
}

func (m *Metrics) CategoryLoadFailed() {
	if m == nil {
		return
	}
	m.categoryLoadFailures.Inc()
}

func (m *Metrics) ListingFailed(family string) {
	if m == nil {
		return
	}
	m.listingFailures.WithLabelValues(family).Inc()
}
