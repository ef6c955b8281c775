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

// Package rip implements the core of a distance-vector routing
// daemon: the neighbor table, the wire header codec, the
// Bellman-Ford update engine, and the event loop tying them together
// over UDP.
package rip

import (
	"strconv"
	"strings"
)

// Terminator is the mandatory literal token ending every header.
const Terminator = "*"

// Triplet is one (next_hop, dest, distance) advertisement inside a
// header.
type Triplet struct {
	NextHop  byte
	Dest     byte
	Distance int
}

// Body renders the sender's name and its full triplet list,
// terminator included, with single-space delimiters and no trailing
// space before the terminator. It deliberately excludes the leading
// sequence number: two tables in the same state always render the
// same Body, which is what the engine diffs to detect change (spec
// §4.2's "timestamp-free form").
func Body(senderName byte, neighbors []Neighbor) string {
	var b strings.Builder
	b.WriteByte(senderName)
	for _, n := range neighbors {
		b.WriteByte(' ')
		b.WriteByte(n.NextHop)
		b.WriteByte(' ')
		b.WriteByte(n.Name)
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(n.Distance))
	}
	b.WriteByte(' ')
	b.WriteString(Terminator)
	return b.String()
}

// WithSeq prepends the message sequence number to a Body, producing
// the complete wire header. Kept as a separate step so a table diff
// can compare Body output alone, ignoring the ever-incrementing
// sequence number.
func WithSeq(seq int, body string) string {
	return strconv.Itoa(seq) + " " + body
}

// Serialize builds the complete wire header (sequence number, sender
// name, triplets, terminator) for the current table state.
func Serialize(seq int, senderName byte, neighbors []Neighbor) string {
	return WithSeq(seq, Body(senderName, neighbors))
}

// Parse tokenizes a received datagram into a sequence number, sender
// name, and the triplets that could be parsed before the first
// structurally invalid one (or the terminator, on a clean packet).
//
// Parsing is fail-soft per spec §4.2: a missing terminator, a
// non-numeric distance, or a truncated trailing group stops the scan
// and returns everything parsed up to that point plus a non-nil err
// describing why it stopped. The caller (the engine) still applies
// the triplets already returned — it never discards a partial result
// because of this error.
//
// Unknown node names are not a codec-level concern: next_hop and dest
// are returned as the raw bytes seen on the wire, and it is the
// engine's job (spec §4.1) to look them up and drop the offending
// subrecord if they don't name a known node.
func Parse(buf []byte) (seq int, sender byte, triplets []Triplet, err error) {
	fields := strings.Fields(string(buf))

	if len(fields) < 2 {
		return 0, 0, nil, &ProtocolError{Msg: "header too short to contain a sequence number and sender name"}
	}

	// msg_seq is informational (spec §4.2); a garbled one doesn't
	// invalidate the rest of the header.
	seq, _ = strconv.Atoi(fields[0])

	if len(fields[1]) == 0 {
		return 0, 0, nil, &ProtocolError{Msg: "empty sender name"}
	}
	sender = fields[1][0]

	rest := fields[2:]

	for len(rest) > 0 {
		if rest[0] == Terminator {
			return seq, sender, triplets, nil
		}

		if len(rest) < 3 {
			return seq, sender, triplets, &ProtocolError{Msg: "truncated triplet before terminator"}
		}

		if len(rest[0]) == 0 || len(rest[1]) == 0 {
			return seq, sender, triplets, &ProtocolError{Msg: "empty next_hop or dest token"}
		}

		distance, convErr := strconv.Atoi(rest[2])
		if convErr != nil {
			return seq, sender, triplets, &ProtocolError{Msg: "non-numeric distance: " + rest[2]}
		}

		triplets = append(triplets, Triplet{
			NextHop:  rest[0][0],
			Dest:     rest[1][0],
			Distance: distance,
		})

		rest = rest[3:]
	}

	// Ran off the end of the buffer without ever seeing the
	// terminator: the whole datagram was clipped or the trailing '*'
	// was lost. Everything parsed so far still stands.
	return seq, sender, triplets, &ProtocolError{Msg: "missing terminator"}
}
