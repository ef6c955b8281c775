/*
 * dvrouted distance-vector routing daemon.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 */

package rip

import "github.com/rcrowley/go-metrics"

// Metrics counts the things an operator watching this daemon cares
// about: how often it talks to its neighbors, and how often it
// doesn't like what it hears. None of this is on spec.md's critical
// path — it's pure observability, kept out of the way of the
// Bellman-Ford math in engine.go.
type Metrics struct {
	registry metrics.Registry

	BroadcastsSent          metrics.Counter
	PacketsReceived         metrics.Counter
	PacketsDropped          metrics.Counter
	TripletsDropped         metrics.Counter
	TimeoutTransitions      metrics.Counter
	ResurrectionTransitions metrics.Counter
}

// NewMetrics registers a fresh set of counters in their own registry,
// so multiple Router instances in the same process (as in tests) don't
// collide on names.
func NewMetrics() *Metrics {
	r := metrics.NewRegistry()
	return &Metrics{
		registry:                r,
		BroadcastsSent:          metrics.NewRegisteredCounter("dvrouted.broadcasts_sent", r),
		PacketsReceived:         metrics.NewRegisteredCounter("dvrouted.packets_received", r),
		PacketsDropped:          metrics.NewRegisteredCounter("dvrouted.packets_dropped", r),
		TripletsDropped:         metrics.NewRegisteredCounter("dvrouted.triplets_dropped", r),
		TimeoutTransitions:      metrics.NewRegisteredCounter("dvrouted.timeout_transitions", r),
		ResurrectionTransitions: metrics.NewRegisteredCounter("dvrouted.resurrection_transitions", r),
	}
}

// Snapshot returns a point-in-time copy of every counter, suitable for
// logging or JSON encoding.
func (m *Metrics) Snapshot() map[string]int64 {
	out := make(map[string]int64)
	m.registry.Each(func(name string, v interface{}) {
		if c, ok := v.(metrics.Counter); ok {
			out[name] = c.Count()
		}
	})
	return out
}
