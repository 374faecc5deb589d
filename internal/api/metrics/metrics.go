// Package metrics defines and registers all custom Prometheus metrics for
// the technotes API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "technotes"

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - flow: "signup" or "login"
//   - result: "success", "rejected" (bad credentials/duplicate), "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup/login attempts, by flow and result.",
	},
	[]string{"flow", "result"},
)

// RateLimitHitsTotal counts requests rejected by the auth rate limiter.
var RateLimitHitsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_hits_total",
		Help:      "Total number of requests rejected with 429 by the rate limiter.",
	},
)

// NotesSyncedTotal counts note rows written by the bulk sync endpoint.
var NotesSyncedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notes_synced_total",
		Help:      "Total number of note rows upserted via /api/sync.",
	},
)

// NoteMutationsTotal counts single-note create/update/delete operations.
// Label:
//   - op: "create", "update", or "delete"
var NoteMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "note_mutations_total",
		Help:      "Total number of successful note mutations, by operation.",
	},
	[]string{"op"},
)
