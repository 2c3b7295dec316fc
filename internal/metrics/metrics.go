// Package metrics exposes decode statistics to Prometheus.
package metrics

import (
	"errors"
	"time"

	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/aretw0/viterbi/pkg/hmm"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeOK            = "ok"
	OutcomeNotFound      = "not_found"
	OutcomeInvalidModel  = "invalid_model"
	OutcomeInvalidSymbol = "invalid_observation"
	OutcomeError         = "error"
)

// Recorder implements viterbi.Recorder with Prometheus collectors.
type Recorder struct {
	decodes  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	length   *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		decodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viterbi_decodes_total",
				Help: "Total number of decode requests by model and outcome",
			},
			[]string{"model", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "viterbi_decode_duration_seconds",
				Help:    "Duration of decode requests",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"model"},
		),
		length: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "viterbi_observation_length",
				Help:    "Number of observations per decode request",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"model"},
		),
	}

	for _, c := range []prometheus.Collector{r.decodes, r.duration, r.length} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveDecode records one decode.
func (r *Recorder) ObserveDecode(model string, length int, duration time.Duration, err error) {
	r.decodes.WithLabelValues(model, Outcome(err)).Inc()
	if err != nil {
		return
	}
	r.duration.WithLabelValues(model).Observe(duration.Seconds())
	r.length.WithLabelValues(model).Observe(float64(length))
}

// Outcome classifies a decode error into a low-cardinality label value.
func Outcome(err error) string {
	var verr *hmm.ModelValidationError
	var oerr *hmm.InvalidObservationError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrModelNotFound):
		return OutcomeNotFound
	case errors.As(err, &verr), errors.Is(err, domain.ErrInvalidDefinition):
		return OutcomeInvalidModel
	case errors.As(err, &oerr), errors.Is(err, domain.ErrUnknownSymbol):
		return OutcomeInvalidSymbol
	default:
		return OutcomeError
	}
}
