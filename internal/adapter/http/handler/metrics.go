package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transfersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payzap_transfers_created_total",
		Help: "Total number of completed transfers",
	})

	transferErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payzap_transfer_errors_total",
			Help: "Total number of rejected transfers by reason",
		},
		[]string{"reason"},
	)

	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payzap_login_attempts_total",
			Help: "Total login attempts by outcome",
		},
		[]string{"outcome"},
	)

	accountsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payzap_accounts_registered_total",
		Help: "Total number of registered accounts",
	})
)
