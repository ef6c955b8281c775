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
	"fmt"
	"net/netip"
	"time"
)

const (
	// Infinity is the metric ceiling. Any arithmetic update that would
	// exceed it saturates at this value instead.
	Infinity = 20

	// MaxNodes bounds the size of a single network graph this daemon
	// will route for.
	MaxNodes = 20

	// NoNextHop marks a next-hop that hasn't been learned yet.
	NoNextHop byte = '-'
)

// Local is this process's own view of itself: name, bound endpoint, and
// the timestamp of the last broadcast it sent. It is immutable after
// init except for LastSendTime.
type Local struct {
	Name         byte
	Addr         netip.AddrPort
	LastSendTime time.Time
}

// Neighbor is one non-local node known to this daemon. Every node named
// in the node-address file gets a record, whether or not it is directly
// adjacent.
type Neighbor struct {
	Name             byte
	Addr             netip.AddrPort
	Adjacent         bool
	InitialDistance  int
	Distance         int
	NextHop          byte
	Connected        bool
	Alive            bool
	LastReceiveTime  time.Time
}

// Table is the per-process distance table: one Local record plus a
// fixed-capacity, ordered set of Neighbor records. It is built once at
// startup from configuration and then mutated only by the Engine and
// the event loop's timeout/resurrection sweeps.
type Table struct {
	Local     Local
	neighbors []Neighbor
	index     map[byte]int
}

// NewTable creates an empty table for the given local node. Neighbors
// are added with AddNeighbor in the order they should be serialized.
func NewTable(local Local) *Table {
	return &Table{
		Local: local,
		index: make(map[byte]int),
	}
}

// AddNeighbor appends a new, non-adjacent neighbor record in its
// startup state: distance = initial_distance = Infinity, adjacent =
// false, connected = false, next_hop = '-', alive = true (so the first
// real packet from this node is not treated as a resurrection), and
// last_receive_time = now. Returns an error if the table is already at
// MaxNodes capacity or the name is a duplicate or the local node's own
// name.
func (t *Table) AddNeighbor(name byte, addr netip.AddrPort, now time.Time) error {
	if name == t.Local.Name {
		return &ConfigError{Msg: fmt.Sprintf("node %q cannot be its own neighbor", name)}
	}
	if _, exists := t.index[name]; exists {
		return &ConfigError{Msg: fmt.Sprintf("duplicate node name %q", name)}
	}
	if len(t.neighbors) >= MaxNodes {
		return &ConfigError{Msg: fmt.Sprintf("too many nodes (max %d)", MaxNodes)}
	}

	t.index[name] = len(t.neighbors)
	t.neighbors = append(t.neighbors, Neighbor{
		Name:            name,
		Addr:            addr,
		Adjacent:        false,
		InitialDistance: Infinity,
		Distance:        Infinity,
		NextHop:         NoNextHop,
		Connected:       false,
		Alive:           true,
		LastReceiveTime: now,
	})
	return nil
}

// SetAdjacent marks name as a direct neighbor at the given cost,
// seeding distance = initial_distance = cost and next_hop = the local
// node, per the adjacency-cost config contract (spec §6).
func (t *Table) SetAdjacent(name byte, cost int) error {
	i, ok := t.index[name]
	if !ok {
		return &ConfigError{Msg: fmt.Sprintf("adjacency cost for unknown node %q", name)}
	}
	if cost < 0 || cost > Infinity {
		return &ConfigError{Msg: fmt.Sprintf("adjacency cost to %q out of range [0,%d]: %d", name, Infinity, cost)}
	}
	n := &t.neighbors[i]
	n.Adjacent = true
	n.Connected = true
	n.InitialDistance = cost
	n.Distance = cost
	n.NextHop = t.Local.Name
	return nil
}

// Lookup returns the index of the neighbor named name, or (-1, false)
// if no such neighbor exists. A not-found result is never fatal to the
// caller; per spec §4.1 it signals a protocol violation that the
// engine handles by dropping the offending subrecord.
func (t *Table) Lookup(name byte) (int, bool) {
	i, ok := t.index[name]
	if !ok {
		return -1, false
	}
	return i, true
}

// Get returns a pointer to the neighbor at index i for in-place
// mutation by the engine and the sweeps.
func (t *Table) Get(i int) *Neighbor {
	return &t.neighbors[i]
}

// Len returns the number of neighbor records (the table's configured
// capacity, fixed after startup).
func (t *Table) Len() int {
	return len(t.neighbors)
}

// Neighbors returns the live backing slice, in the order neighbors
// were added (file order) — the order the wire codec serializes in.
func (t *Table) Neighbors() []Neighbor {
	return t.neighbors
}

// Adjacent calls fn for the index of every adjacent neighbor, in table
// order.
func (t *Table) Adjacent(fn func(i int)) {
	for i := range t.neighbors {
		if t.neighbors[i].Adjacent {
			fn(i)
		}
	}
}

// Clamp saturates a distance at Infinity; used anywhere a relaxation or
// bootstrap arithmetic can overflow the metric ceiling.
func Clamp(d int) int {
	if d > Infinity {
		return Infinity
	}
	if d < 0 {
		return 0
	}
	return d
}
