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

// Package dvrouted is the single owned value (spec §9's "global state"
// design note, resolved): it wires a rip.Table, rip.Loop, the config
// loader, the Reporter, logging, and metrics into one object whose
// lifecycle is init-at-startup, run, destroy-at-exit.
package dvrouted

import (
	"io"
	"net/netip"
	"time"

	"dvrouted/config"
	"dvrouted/dvlog"
	"dvrouted/report"
	"dvrouted/rip"
)

// Options configures a Router at construction time.
type Options struct {
	// LocalName is the single-character name of this node, taken from
	// the CLI's single positional argument (spec §6).
	LocalName byte

	// NodeFile and CostFile are the two static configuration files
	// (spec §6), parsed once at startup.
	NodeFile string
	CostFile string

	// Log receives structured diagnostics. Defaults to a no-op sink.
	Log dvlog.Logger

	// Report receives a rendering whenever the table materially
	// changes (spec §6). Defaults to writing the §6 text format to
	// ReportWriter.
	Report rip.Render

	// ReportWriter is where the default Report writes to. Defaults to
	// io.Discard if left nil and Report is also nil.
	ReportWriter io.Writer
}

// Router is the process-wide owned value for one daemon instance.
type Router struct {
	table   *rip.Table
	socket  *rip.Socket
	loop    *rip.Loop
	metrics *rip.Metrics
	log     dvlog.Logger
}

// New loads configuration, binds the socket, and assembles a Router
// ready to Run. Any failure here is a config-fatal or I/O-fatal error
// per spec §7 — the caller should abort with a diagnostic and exit
// code 1.
func New(opts Options) (*Router, error) {
	log := opts.Log
	if log == nil {
		log = dvlog.Nil{}
	}

	local, neighborAddrs, err := config.LoadNodes(opts.NodeFile, opts.LocalName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	table := rip.NewTable(rip.Local{Name: local.Name, Addr: local.Addr, LastSendTime: now})

	for _, n := range neighborAddrs {
		if err := table.AddNeighbor(n.Name, n.Addr, now); err != nil {
			return nil, err
		}
	}

	costs, err := config.LoadCosts(opts.CostFile)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyTo(table, costs); err != nil {
		return nil, err
	}

	socket, err := rip.Bind(local.Addr)
	if err != nil {
		return nil, err
	}

	render := opts.Report
	if render == nil {
		w := opts.ReportWriter
		if w == nil {
			w = io.Discard
		}
		render = defaultRender(w)
	}

	metrics := rip.NewMetrics()
	jitter := rip.NewRandomizer(rip.MaxJitter, rip.DefaultJitter)
	loop := rip.NewLoop(table, socket, rip.SystemClock, jitter, log, metrics, render)

	return &Router{table: table, socket: socket, loop: loop, metrics: metrics, log: log}, nil
}

func defaultRender(w io.Writer) rip.Render {
	return func(local rip.Local, neighbors []rip.Neighbor, now time.Time) {
		rows := make([]report.Row, len(neighbors))
		for i, n := range neighbors {
			rows[i] = report.Row{Name: n.Name, Distance: n.Distance}
		}
		report.Render(w, local.Name, now.Unix(), rows)
	}
}

// Run blocks, executing the event loop until Stop is called.
func (r *Router) Run() {
	r.loop.Run()
}

// Stop asks Run to return after its current iteration and releases the
// socket. There is no graceful shutdown protocol (spec §5) — this
// exists for embedders and tests, not for routine operation.
func (r *Router) Stop() {
	r.loop.Stop()
	r.socket.Close()
}

// Metrics returns a snapshot of the daemon's counters.
func (r *Router) Metrics() map[string]int64 {
	return r.metrics.Snapshot()
}

// Distance returns the current best-known cost to name and whether
// name is a known node. Convenience accessor for embedders and tests;
// the routing table itself is not otherwise exported.
func (r *Router) Distance(name byte) (int, bool) {
	i, ok := r.table.Lookup(name)
	if !ok {
		return 0, false
	}
	return r.table.Get(i).Distance, true
}

// NextHop returns the current next hop toward name, if known.
func (r *Router) NextHop(name byte) (byte, bool) {
	i, ok := r.table.Lookup(name)
	if !ok {
		return 0, false
	}
	n := r.table.Get(i)
	return n.NextHop, n.NextHop != rip.NoNextHop
}

// LocalAddr returns the bound endpoint of this node.
func (r *Router) LocalAddr() netip.AddrPort {
	return r.table.Local.Addr
}
