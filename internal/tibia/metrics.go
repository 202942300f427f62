package tibia

import "github.com/prometheus/client_golang/prometheus"

// Lookup results recorded by lookupTotal.
const (
	resultHit         = "cache_hit"
	resultFound       = "found"
	resultNotFound    = "not_found"
	resultUnavailable = "unavailable"
)

var lookupTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "huntschedule_validator_lookups_total",
		Help: "Character and world lookups against the external game service, by result.",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(lookupTotal)
}
