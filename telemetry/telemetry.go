// Package telemetry holds the prometheus counters of a conversion run.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
)

// Metrics is registered on its own registry so a run can be dumped to a
// node_exporter textfile without the process-wide collectors.
type Metrics struct {
	Registry *prometheus.Registry

	Records    *prometheus.CounterVec
	Columns    *prometheus.GaugeVec
	NullValues *prometheus.CounterVec
	Warnings   prometheus.Counter
	Statements *prometheus.CounterVec

	circuitBreakerState *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tsv2sql_records_total",
				Help: "Total number of TSV records turned into INSERT statements",
			},
			[]string{"table"},
		),
		Columns: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tsv2sql_columns",
				Help: "Number of columns planned for a table",
			},
			[]string{"table"},
		),
		NullValues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tsv2sql_null_values_total",
				Help: "Total number of values written as NULL",
			},
			[]string{"table"},
		),
		Warnings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tsv2sql_plan_warnings_total",
				Help: "Total number of column adjustments made while planning tables",
			},
		),
		Statements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tsv2sql_load_statements_total",
				Help: "Total number of statements executed against the database",
			},
			[]string{"script", "status"},
		),
		circuitBreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tsv2sql_circuit_breaker_state",
				Help: "Current state of the load circuit breaker (0=closed, 1=half-open, 2=open).",
			},
			[]string{"breaker_name"},
		),
	}

	m.Registry.MustRegister(m.Records, m.Columns, m.NullValues, m.Warnings)
	m.Registry.MustRegister(m.Statements, m.circuitBreakerState)
	return m
}

// OnCircuitBreakerStateChange is meant for gobreaker.Settings.OnStateChange.
func (m *Metrics) OnCircuitBreakerStateChange(name string, from gobreaker.State, to gobreaker.State) {
	switch to {
	case gobreaker.StateClosed:
		m.circuitBreakerState.WithLabelValues(name).Set(0)
	case gobreaker.StateHalfOpen:
		m.circuitBreakerState.WithLabelValues(name).Set(1)
	case gobreaker.StateOpen:
		m.circuitBreakerState.WithLabelValues(name).Set(2)
	}
}

// BreakerState returns the gauge tracking the named breaker.
func (m *Metrics) BreakerState(name string) prometheus.Gauge {
	return m.circuitBreakerState.WithLabelValues(name)
}

// WriteTextfile dumps the registry in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
