// This file is part of zwinder.
//
// zwinder is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// zwinder is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with zwinder.  If not, see <https://www.gnu.org/licenses/>.

// Package metrics exposes optional Prometheus instrumentation for a
// rewind.StateManager. A nil *Collector is valid and every method on it is a
// no-op, so instrumentation can be wired in only where a host process
// actually runs a registry.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Collector holds the counters and histograms a StateManager reports
// against. Use New to build one registered against a fresh registry.
type Collector struct {
	reg *prometheus.Registry

	captures    *prometheus.CounterVec
	evictions   *prometheus.CounterVec
	promotions  *prometheus.CounterVec
	reserved    prometheus.Counter
	closestLook prometheus.Histogram
}

// New registers a fresh Collector's metrics against reg and returns it.
func New(reg *prometheus.Registry) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		reg: reg,
		captures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zwinder",
			Name:      "captures_total",
			Help:      "Snapshots admitted into a ring, by ring name.",
		}, []string{"ring"}),
		evictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zwinder",
			Name:      "evictions_total",
			Help:      "Entries dropped from a ring without promotion, by ring name.",
		}, []string{"ring"}),
		promotions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zwinder",
			Name:      "promotions_total",
			Help:      "Entries promoted into ReservedMap, by reason.",
		}, []string{"reason"}),
		reserved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "zwinder",
			Name:      "reserved_captures_total",
			Help:      "Captures written directly into ReservedMap via the reserve callback.",
		}),
		closestLook: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zwinder",
			Name:      "get_closest_seconds",
			Help:      "Latency of GetClosest lookups.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// ObserveCapture records an admitted capture into ring.
func (c *Collector) ObserveCapture(ring string) {
	if c == nil {
		return
	}
	c.captures.WithLabelValues(ring).Inc()
}

// ObserveEviction records an entry dropped from ring without promotion.
func (c *Collector) ObserveEviction(ring string) {
	if c == nil {
		return
	}
	c.evictions.WithLabelValues(ring).Inc()
}

// ObservePromotion records an entry promoted into ReservedMap for reason.
func (c *Collector) ObservePromotion(reason string) {
	if c == nil {
		return
	}
	c.promotions.WithLabelValues(reason).Inc()
}

// ObserveReserved records a direct reserved capture.
func (c *Collector) ObserveReserved() {
	if c == nil {
		return
	}
	c.reserved.Inc()
}

// ObserveClosestLookup records the wall-clock cost of a GetClosest call.
func (c *Collector) ObserveClosestLookup(d time.Duration) {
	if c == nil {
		return
	}
	c.closestLook.Observe(d.Seconds())
}

// WriteText renders every gathered metric family in the Prometheus text
// exposition format. A nil Collector writes nothing.
func (c *Collector) WriteText(w io.Writer) error {
	if c == nil {
		return nil
	}

	mfs, err := c.reg.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
