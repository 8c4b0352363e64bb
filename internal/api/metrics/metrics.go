// Package metrics defines and registers all custom Prometheus metrics for
// the job-board API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success" or the failure reason ("invalid_credentials",
//     "account_pending", "account_rejected", "referral_expired",
//     "referral_code_required", "no_password", "rate_limited", "error")
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// ApprovalsTotal counts administrator lifecycle decisions.
// Labels:
//   - action: "approve" or "reject"
//   - result: "ok" or "conflict" or "error"
var ApprovalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approvals_total",
		Help:      "Total number of account approval/rejection decisions.",
	},
	[]string{"action", "result"},
)

// GateDecisionsTotal counts authorization gate outcomes on protected routes.
// Label:
//   - outcome: "allow", "status_denied", "guest_denied", "role_denied",
//     "referral_expired", "store_error"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of authorization gate decisions, by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts submitted registration requests by requested role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration requests submitted, by role.",
	},
	[]string{"role"},
)
