// Package metrics exposes Prometheus instrumentation for vault
// operations, using promauto-registered CounterVec / HistogramVec
// collectors for operation counts, error counts and latency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hexvault"

// Registry is the Prometheus registry all HexVault metrics register
// against. Callers that embed Handler() in their own mux use this
// registry; HexVault itself never starts a server.
var Registry = prometheus.NewRegistry()

var (
	// Operations counts seal/unseal/traverse calls by operation and result.
	Operations = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vault",
			Name:      "operations_total",
			Help:      "Total number of vault operations",
		},
		[]string{"operation", "result"}, // Vault.Seal/Vault.Unseal/Vault.Traverse, ok/error
	)

	// Errors counts failed operations by operation and error kind.
	Errors = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vault",
			Name:      "errors_total",
			Help:      "Total number of vault operation errors",
		},
		[]string{"operation", "kind"},
	)

	// OperationDuration tracks operation latency in seconds.
	OperationDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "vault",
			Name:      "operation_duration_seconds",
			Help:      "Vault operation duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 15),
		},
		[]string{"operation"},
	)

	// AuditRecords counts records appended to the audit log.
	AuditRecords = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "records_total",
			Help:      "Total number of audit records appended",
		},
	)

	// SinkFailures counts sink write failures by sink index.
	SinkFailures = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "sink_failures_total",
			Help:      "Total number of audit sink write failures",
		},
		[]string{"sink_index"},
	)
)
