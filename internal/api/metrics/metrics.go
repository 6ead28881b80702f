// Package metrics defines and registers all custom Prometheus metrics for the
// Q&A platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics use promauto, so importing the package is enough to register them
// with the default Prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "qa_platform"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - result: "success" or "failure"
//   - role: the requested active role, or "User" when none was requested
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result and requested role.",
	},
	[]string{"result", "role"},
)

// RegistrationsTotal counts account registrations that succeeded.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful account registrations.",
	},
)

// RoleSwitchesTotal counts active-role switches.
// Label:
//   - role: the role switched to
var RoleSwitchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_switches_total",
		Help:      "Total number of active-role switches, by target role.",
	},
	[]string{"role"},
)

// GuardDecisionsTotal counts route-guard outcomes on protected endpoints.
// Label:
//   - decision: "allow", "redirect_to_login", or "forbidden"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"decision"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// QuestionsCreatedTotal counts submitted questions.
var QuestionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_created_total",
		Help:      "Total number of questions submitted.",
	},
)

// VotesTotal counts recorded votes.
// Labels:
//   - target: "question" or "answer"
//   - direction: "up" or "down"
var VotesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_total",
		Help:      "Total number of votes recorded, by target and direction.",
	},
	[]string{"target", "direction"},
)

// ModerationDecisionsTotal counts moderation outcomes on questions.
// Label:
//   - decision: "approved" or "rejected"
var ModerationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_decisions_total",
		Help:      "Total number of question moderation decisions.",
	},
	[]string{"decision"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDeliveredTotal counts notifications persisted by the fan-out
// workers.
// Label:
//   - type: notification type (e.g. "answer", "upvote", "system")
var NotificationsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of notifications delivered, by type.",
	},
	[]string{"type"},
)

// NotificationsErrorsTotal counts notifications that failed delivery.
// Label:
//   - type: notification type
var NotificationsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_errors_total",
		Help:      "Total number of notification deliveries that failed.",
	},
	[]string{"type"},
)

// NotificationQueueDepth tracks the number of notifications waiting in each
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
