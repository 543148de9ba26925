package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	authAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dri_admin_auth_attempts_total",
		Help: "Total admin authentication attempts by outcome (allowed, unauthenticated, locked_out)",
	}, []string{"outcome"})
	lockoutsEngagedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dri_admin_lockouts_engaged_total",
		Help: "Total number of times an identity crossed the failure threshold and was locked out",
	})
	uploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dri_gallery_uploads_total",
		Help: "Total gallery upload attempts by result (accepted, invalid_format, missing_metadata, too_large, storage_failure)",
	}, []string{"result"})
	contactMessagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dri_contact_messages_total",
		Help: "Total accepted contact-form submissions",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(authAttemptsTotal, lockoutsEngagedTotal, uploadsTotal, contactMessagesTotal)
}

// IncAuthAttempt increments the auth attempt counter for an outcome.
func IncAuthAttempt(outcome string) { authAttemptsTotal.WithLabelValues(outcome).Inc() }

// IncLockoutEngaged increments the lockout counter.
func IncLockoutEngaged() { lockoutsEngagedTotal.Inc() }

// IncUpload increments the upload counter for a result.
func IncUpload(result string) { uploadsTotal.WithLabelValues(result).Inc() }

// IncContactMessage increments the accepted contact message counter.
func IncContactMessage() { contactMessagesTotal.Inc() }
