// Package metrics counts repository operations with Prometheus collectors.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/mesh-intelligence/coursebook/pkg/types"
)

const namespace = "coursebook"

// Operation names.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpReset  = "reset"
)

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeInUse     = "in_use"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	records    *prometheus.GaugeVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Repository mutations by kind, operation and outcome.",
		}, []string{"kind", "op", "outcome"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Records currently stored per kind.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.operations, m.records)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Outcome classifies err into an outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, types.ErrDuplicate):
		return OutcomeDuplicate
	case errors.Is(err, types.ErrValidation):
		return OutcomeInvalid
	case errors.Is(err, types.ErrInUse):
		return OutcomeInUse
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrInvalidID):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// Observe counts one operation on kind with the outcome derived from err.
func (m *Metrics) Observe(kind types.Kind, op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(string(kind), op, Outcome(err)).Inc()
}

// SetRecords records the current size of kind's collection.
func (m *Metrics) SetRecords(kind types.Kind, n int) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(string(kind)).Set(float64(n))
}

// Operations returns the counter for one label set.
func (m *Metrics) Operations(kind types.Kind, op, outcome string) prometheus.Counter {
	return m.operations.WithLabelValues(string(kind), op, outcome)
}

// WriteText writes every gathered family in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
