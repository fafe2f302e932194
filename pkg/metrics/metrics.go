package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "webguard"

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Collectors groups the domain metrics recorded by the inspector.
type Collectors struct {
	// Lookups counts reputation lookups by outcome status.
	Lookups *prometheus.CounterVec
	// LookupDuration observes how long a reputation lookup took.
	LookupDuration prometheus.Histogram
	// Classifications counts content verdicts by verdict and reason.
	Classifications *prometheus.CounterVec
	SuspiciousForms prometheus.Counter
	ShortenedLinks  prometheus.Counter
	// QuotaRejections counts URL checks refused because the daily limit was reached.
	QuotaRejections prometheus.Counter
}

// NewCollectors creates the collectors and registers them with reg. A nil
// registerer leaves them unregistered, which is what tests usually want.
// Collectors that are already registered are reused.
func NewCollectors(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reputation_lookups_total",
			Help:      "Reputation lookups by outcome status.",
		}, []string{"status"}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reputation_lookup_duration_seconds",
			Help:      "Duration of reputation lookups.",
			Buckets:   DefaultBuckets,
		}),
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_classifications_total",
			Help:      "Content items classified by verdict and reason.",
		}, []string{"verdict", "reason"}),
		SuspiciousForms: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suspicious_forms_total",
			Help:      "Forms flagged as submitting sensitive fields to another domain.",
		}),
		ShortenedLinks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shortened_links_total",
			Help:      "Links detected as pointing to a URL shortener.",
		}),
		QuotaRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_rejections_total",
			Help:      "URL checks rejected because the daily quota was exhausted.",
		}),
	}

	if reg == nil {
		return c, nil
	}

	var err error
	c.Lookups, err = register(reg, c.Lookups)
	if err != nil {
		return nil, err
	}
	c.LookupDuration, err = register(reg, c.LookupDuration)
	if err != nil {
		return nil, err
	}
	c.Classifications, err = register(reg, c.Classifications)
	if err != nil {
		return nil, err
	}
	c.SuspiciousForms, err = register(reg, c.SuspiciousForms)
	if err != nil {
		return nil, err
	}
	c.ShortenedLinks, err = register(reg, c.ShortenedLinks)
	if err != nil {
		return nil, err
	}
	c.QuotaRejections, err = register(reg, c.QuotaRejections)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}

		return c, fmt.Errorf("could not register collector: %w", err)
	}

	return c, nil
}
