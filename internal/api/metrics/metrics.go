// Package metrics defines the custom Prometheus metrics for the EduSign API.
// It is the single source of truth for metric names, labels, and help strings.
//
// All metrics register themselves with the default registry via promauto at
// package initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "edusign"

// Outcome label values shared by the signup and login counters.
const (
	OutcomeSuccess            = "success"
	OutcomeValidationError    = "validation_error"
	OutcomeDuplicateEmail     = "duplicate_email"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeRateLimited        = "rate_limited"
	OutcomeStoreError         = "store_error"
)

// SignupAttemptsTotal counts signup attempts by outcome.
var SignupAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signup_attempts_total",
		Help:      "Total number of signup attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// LoginAttemptsTotal counts login attempts by outcome.
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// ProgressWriteFailuresTotal counts best-effort progress writes that failed.
// These never fail the caller's request; the counter is the only place the
// loss is visible besides the log.
// Label:
//   - op: "bootstrap" (signup-time creation) or "touch" (login-time update)
var ProgressWriteFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "progress_write_failures_total",
		Help:      "Total number of failed best-effort progress record writes.",
	},
	[]string{"op"},
)
