package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for the buddy module.
type Metrics struct {
	PairsCreated         prometheus.Counter
	PairsDeleted         prometheus.Counter
	TouchpointsCreated   prometheus.Counter
	TouchpointsSubmitted prometheus.Counter
}

// New creates and registers the buddy metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		PairsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "peopledesk_buddy_pairs_created_total",
			Help: "Total buddy pairs created",
		}),
		PairsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "peopledesk_buddy_pairs_deleted_total",
			Help: "Total buddy pairs deleted",
		}),
		TouchpointsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "peopledesk_buddy_touchpoints_created_total",
			Help: "Total touchpoints created, drafts included",
		}),
		TouchpointsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "peopledesk_buddy_touchpoints_submitted_total",
			Help: "Total touchpoints submitted to buddees",
		}),
	}
}
