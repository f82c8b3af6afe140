// Package telemetry exposes a live scheduler's run counters as prometheus
// collectors. The kernel itself never depends on this package; the
// collectors read the scheduler's public accessors.
//
// The kernel is single-threaded in virtual time, so scrapes that land
// mid-run read a consistent-enough snapshot for dashboards but are not
// synchronized with the event loop.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/simkit/simkit/sim"
)

// Collector bundles the per-run metrics observing a Scheduler.
type Collector struct {
	eventsDispatched prometheus.CounterFunc
	virtualTime      prometheus.GaugeFunc
	liveProcesses    prometheus.GaugeFunc
	queuedRecords    prometheus.GaugeFunc
}

// NewCollector creates collectors reading from s.
func NewCollector(s *sim.Scheduler) *Collector {
	return &Collector{
		eventsDispatched: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "sim_events_dispatched_total",
			Help: "Total number of activation records dispatched",
		}, func() float64 { return float64(s.EventsDispatched()) }),
		virtualTime: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "sim_virtual_time",
			Help: "Current virtual clock of the run",
		}, s.Now),
		liveProcesses: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "sim_live_processes",
			Help: "Registered processes that have not terminated",
		}, func() float64 { return float64(s.ProcessCount()) }),
		queuedRecords: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "sim_queued_records",
			Help: "Pending activation records in the event queue",
		}, func() float64 { return float64(s.QueueLen()) }),
	}
}

// Register registers all collectors with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{
		c.eventsDispatched, c.virtualTime, c.liveProcesses, c.queuedRecords,
	} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// Handler returns an HTTP handler serving the collectors in prometheus
// text format on a private registry.
func Handler(s *sim.Scheduler) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	if err := NewCollector(s).Register(reg); err != nil {
		return nil, err
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}
