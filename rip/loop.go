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
	"net/netip"
	"time"

	"dvrouted/dvlog"
)

const (
	// BroadcastInterval is how often the loop re-sends its table to
	// every adjacent neighbor, absent any intervening traffic.
	BroadcastInterval = 3 * time.Second

	// LivenessTimeout is how long an adjacent neighbor can stay
	// silent before it's declared dead.
	LivenessTimeout = 16 * time.Second

	// MaxJitter bounds the random wait added on top of
	// BroadcastInterval before each receive, to desynchronize
	// broadcast collisions between nodes.
	MaxJitter = 3 * time.Second

	// DefaultJitter is used when a jitter draw is degenerate.
	DefaultJitter = 2 * time.Second
)

// Render is how the event loop hands a changed table to the Reporter
// collaborator (spec §6). It is a plain function value rather than an
// interface so the out-of-scope reporting package never needs to
// depend on this one.
type Render func(local Local, neighbors []Neighbor, now time.Time)

// Loop owns the bound datagram socket and drives the timer/IO core
// described in spec §4.4: timeout sweep, resurrection sweep, periodic
// broadcast, and a single bounded wait per iteration.
type Loop struct {
	table  *Table
	engine *Engine
	socket *Socket
	clock  Clock
	jitter Randomizer
	log    dvlog.Logger

	metrics *Metrics
	render  Render

	broadcastInterval time.Duration
	livenessTimeout   time.Duration

	seq  int
	done chan struct{}
}

// NewLoop wires a Loop around an already-bound Socket and populated
// Table. log and render may be nil; render being nil simply means
// table changes aren't reported anywhere (useful in tests that only
// care about table state).
func NewLoop(table *Table, socket *Socket, clock Clock, jitter Randomizer, log dvlog.Logger, metrics *Metrics, render Render) *Loop {
	if log == nil {
		log = dvlog.Nil{}
	}
	return &Loop{
		table:             table,
		engine:            NewEngine(table, clock, log, metrics),
		socket:            socket,
		clock:             clock,
		jitter:            jitter,
		log:               log,
		metrics:           metrics,
		render:            render,
		broadcastInterval: BroadcastInterval,
		livenessTimeout:   LivenessTimeout,
		done:              make(chan struct{}),
	}
}

// Stop asks Run to exit after its current iteration. Spec §5 notes the
// daemon has no graceful-shutdown protocol in normal operation — this
// exists purely so embedders and tests can tear a Loop down instead of
// relying on process termination.
func (l *Loop) Stop() {
	select {
	case <-l.done:
	default:
		close(l.done)
	}
}

// Run executes the event loop until Stop is called. It never returns
// on a per-packet or per-send failure (spec §7): those are logged and
// absorbed, and the loop continues.
func (l *Loop) Run() {
	for {
		select {
		case <-l.done:
			return
		default:
		}

		l.timeoutSweep()
		l.resurrectionSweep()
		l.maybeBroadcast()

		wait := l.broadcastInterval + l.jitter.Jitter()
		buf, from, err := l.socket.ReceiveTimeout(wait)

		switch {
		case err == ErrTimeout:
			continue
		case err != nil:
			l.log.Warn("receive failed", "error", err.Error())
			continue
		default:
			l.handlePacket(buf, from)
			// Ordering guarantee (spec §4.4): liveness state is never
			// stale across a receive boundary.
			l.timeoutSweep()
		}
	}
}

// Step runs exactly one iteration's non-blocking work (both sweeps and
// the broadcast decision) without touching the socket. It exists so
// tests can drive timer-driven behaviour deterministically with a
// FakeClock, independent of actual datagram I/O.
func (l *Loop) Step() {
	l.timeoutSweep()
	l.resurrectionSweep()
	l.maybeBroadcast()
}

func (l *Loop) timeoutSweep() {
	now := l.clock.Now()
	var transitioned bool

	l.table.Adjacent(func(i int) {
		n := l.table.Get(i)
		if n.Alive && now.Sub(n.LastReceiveTime) >= l.livenessTimeout {
			n.Alive = false
			n.Distance = Infinity
			transitioned = true
			l.log.Warn("neighbor timed out", "neighbor", string(n.Name))
			if l.metrics != nil {
				l.metrics.TimeoutTransitions.Inc(1)
			}
		}
	})

	if transitioned {
		l.reportNow(now)
	}
}

func (l *Loop) resurrectionSweep() {
	now := l.clock.Now()
	for i := 0; i < l.table.Len(); i++ {
		n := l.table.Get(i)
		if n.Distance < Infinity && !n.Alive {
			n.Alive = true
			n.LastReceiveTime = now.Add(l.livenessTimeout / 2)
			l.log.Info("neighbor resurrected", "neighbor", string(n.Name))
			if l.metrics != nil {
				l.metrics.ResurrectionTransitions.Inc(1)
			}
		}
	}
}

func (l *Loop) maybeBroadcast() {
	now := l.clock.Now()
	if now.Sub(l.table.Local.LastSendTime) < l.broadcastInterval {
		return
	}
	l.broadcast(now)
}

func (l *Loop) broadcast(now time.Time) {
	body := Body(l.table.Local.Name, l.table.Neighbors())
	l.table.Local.LastSendTime = now

	l.table.Adjacent(func(i int) {
		n := l.table.Get(i)
		header := WithSeq(l.seq, body)
		l.seq++
		if err := l.socket.SendTo(n.Addr, []byte(header)); err != nil {
			// Transient, per spec §7: log and move on, the next
			// periodic send retries implicitly.
			l.log.Warn("send failed", "neighbor", string(n.Name), "error", err.Error())
			return
		}
		if l.metrics != nil {
			l.metrics.BroadcastsSent.Inc(1)
		}
	})
}

func (l *Loop) handlePacket(buf []byte, from netip.AddrPort) {
	seq, sender, triplets, parseErr := Parse(buf)
	if parseErr != nil {
		l.log.Warn("parse error", "sender", string(sender), "from", from.String(), "seq", seq, "error", parseErr.Error())
	}

	changed := l.engine.Apply(sender, triplets)
	l.log.DumpTable(l.table)

	if changed {
		l.reportNow(l.clock.Now())
	}
}

func (l *Loop) reportNow(now time.Time) {
	if l.render == nil {
		return
	}
	l.render(l.table.Local, l.table.Neighbors(), now)
}
