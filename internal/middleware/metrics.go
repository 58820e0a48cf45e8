// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveWebSockets is the gauge of currently open websocket handler invocations.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tribuna_active_websockets",
		Help: "Number of websocket connections currently being served",
	})

	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tribuna_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// EngagementReconciliations counts counter reconciliation runs by target kind and outcome.
	EngagementReconciliations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tribuna_engagement_reconciliations_total",
		Help: "Counter reconciliation runs by target kind and outcome",
	}, []string{"kind", "outcome"})

	// NotificationsDispatched counts notifications created by type and outcome.
	NotificationsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tribuna_notifications_dispatched_total",
		Help: "Notifications dispatched by type and outcome",
	}, []string{"type", "outcome"})

	// NotificationsSuppressed counts self-notifications that were suppressed.
	NotificationsSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tribuna_notifications_suppressed_total",
		Help: "Notifications suppressed because sender and recipient matched",
	})
)

// InitMetrics creates the Prometheus middleware for the Fiber app.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-level Prometheus instrumentation handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
