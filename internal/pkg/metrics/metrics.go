// Package metrics defines and registers all custom Prometheus metrics for the
// scoring API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// via promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scoring"

// ── Score metrics ─────────────────────────────────────────────────────────────

// ScoreLookupsTotal counts GetOrCreate outcomes.
// Label:
//   - result: "cache_hit", "store_hit", "created", or "race_lost" (a concurrent
//     creator inserted first and the stored record was re-read)
var ScoreLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "score_lookups_total",
		Help:      "Total number of score lookups, by outcome.",
	},
	[]string{"result"},
)

// ScoreCacheErrorsTotal counts cache failures that were degraded to a miss.
// Label:
//   - op: "get" or "set"
var ScoreCacheErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "score_cache_errors_total",
		Help:      "Total number of score cache operations that failed.",
	},
	[]string{"op"},
)

// ScoresSeededTotal counts scores inserted through the seed endpoint.
var ScoresSeededTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scores_seeded_total",
		Help:      "Total number of scores inserted through the seed endpoint.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - outcome: "success", "conflict", "invalid_credentials", "invalid_role", or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// AccessDeniedTotal counts requests rejected by the auth middleware chain.
// Label:
//   - reason: "missing_token", "invalid_token", or "insufficient_role"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)
