package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barberin_registrations_total",
		Help: "Accounts created, by role.",
	}, []string{"role"})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barberin_logins_total",
		Help: "Login attempts, by role and outcome.",
	}, []string{"role", "status"})

	TokenVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barberin_token_verifications_total",
		Help: "Bearer token checks performed by the auth middleware.",
	}, []string{"status"})

	AppointmentsBooked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barberin_appointments_booked_total",
		Help: "Appointments successfully booked.",
	})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barberin_rate_limited_total",
		Help: "Requests rejected by the rate limiter.",
	})
)
