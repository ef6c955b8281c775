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

// Package report is the out-of-scope Reporter collaborator (spec §1,
// §6): it renders a snapshot of routing state for the operator. It
// takes plain values rather than a *rip.Table so the core never needs
// to import it — the event loop hands it a Render callback instead
// (see rip.Render).
package report

import (
	"fmt"
	"io"
)

// Row is one line of a rendered routing table.
type Row struct {
	Name     byte
	Distance int
}

// Infinity must match rip.Infinity; duplicated here rather than
// imported so this package stays free of any dependency on the core.
const Infinity = 20

// Render writes the routing table in the literal format spec §6
// mandates, with a single tab between the two columns:
//
//	Routing table for node <name> at time <epoch-seconds>
//
//	Node    Cost
//
//	<n1>    <cost or "Infinity">
//	...
func Render(w io.Writer, localName byte, at int64, rows []Row) error {
	if _, err := fmt.Fprintf(w, "Routing table for node %c at time %d\n\n", localName, at); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Node\tCost\n\n"); err != nil {
		return err
	}
	for _, r := range rows {
		cost := "Infinity"
		if r.Distance < Infinity {
			cost = fmt.Sprintf("%d", r.Distance)
		}
		if _, err := fmt.Fprintf(w, "%c\t%s\n", r.Name, cost); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
