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

import (
	"dvrouted/dvlog"
)

// Engine applies received vectors to a Table under the Bellman-Ford
// update rule (spec §4.3): next-hop bookkeeping, poisoning to the
// Infinity ceiling, split-horizon suppression, and liveness
// resurrection via the self-confirmation triplet.
type Engine struct {
	table   *Table
	clock   Clock
	log     dvlog.Logger
	metrics *Metrics
}

func NewEngine(table *Table, clock Clock, log dvlog.Logger, metrics *Metrics) *Engine {
	if log == nil {
		log = dvlog.Nil{}
	}
	return &Engine{table: table, clock: clock, log: log, metrics: metrics}
}

// Apply is the engine's entry point: it takes the sender's name and
// the triplets a Parse call already recovered from the wire, and
// returns whether the table materially changed.
//
// Unknown node names are protocol violations handled here, not in the
// codec (spec §4.1): an unknown sender drops the whole packet; an
// unknown destination inside a triplet drops that one subrecord and
// processing continues with the next.
func (e *Engine) Apply(sender byte, triplets []Triplet) bool {
	senderIdx, ok := e.table.Lookup(sender)
	if !ok {
		e.log.Warn("dropping packet from unknown sender", "sender", string(sender))
		if e.metrics != nil {
			e.metrics.PacketsDropped.Inc(1)
		}
		return false
	}

	// Per-packet prologue (spec §4.3): the sender is alive, full stop,
	// regardless of what its triplets say.
	now := e.clock.Now()
	sn := e.table.Get(senderIdx)
	sn.LastReceiveTime = now
	sn.Alive = true

	before := Body(e.table.Local.Name, e.table.Neighbors())

	for _, tr := range triplets {
		e.applyTriplet(senderIdx, sender, tr)
	}

	after := Body(e.table.Local.Name, e.table.Neighbors())
	changed := before != after

	if e.metrics != nil {
		e.metrics.PacketsReceived.Inc(1)
	}

	return changed
}

func (e *Engine) applyTriplet(senderIdx int, sender byte, tr Triplet) {
	local := e.table.Local.Name

	if tr.Dest == local {
		// Liveness confirmation: the sender has heard back from us,
		// so whatever it thought our distance was is irrelevant —
		// restore the direct-link cost and mark it alive.
		sn := e.table.Get(senderIdx)
		sn.Alive = true
		sn.Distance = sn.InitialDistance
		return
	}

	destIdx, ok := e.table.Lookup(tr.Dest)
	if !ok {
		e.log.Warn("dropping triplet naming unknown destination", "dest", string(tr.Dest))
		if e.metrics != nil {
			e.metrics.TripletsDropped.Inc(1)
		}
		return
	}

	sn := e.table.Get(senderIdx)
	dn := e.table.Get(destIdx)

	candidate := Clamp(sn.Distance + tr.Distance)

	// Split-horizon guard: an advertisement that routes back through
	// us can't improve our own route to dest, so it is never used for
	// relaxation — but per spec §9's open question, it still falls
	// through to the adjacency-bootstrap step below, exactly as the
	// original program does.
	splitHorizon := tr.NextHop == local

	if !splitHorizon && candidate < dn.Distance {
		dn.Distance = candidate
		dn.NextHop = sender
		dn.Connected = true
	}

	if !dn.Adjacent {
		// Adjacency bootstrap: unconditionally seed first knowledge of
		// a non-adjacent destination, even across the split-horizon
		// guard. This can transiently record a route whose effective
		// next hop is ourselves; spec §9 flags the anomaly but
		// preserves it for wire compatibility.
		dn.Distance = candidate
	}
}
