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

package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"dvrouted/rip"
)

// Cost is one line of the adjacency-cost file: an undirected edge
// between two nodes and its cost.
type Cost struct {
	A, B byte
	Cost int
}

// LoadCosts parses the adjacency-cost file (spec §6: "<name_a>
// <name_b> <cost>", one line per edge).
func LoadCosts(path string) ([]Cost, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &rip.ConfigError{Msg: fmt.Sprintf("open %s: %v", path, err)}
	}
	defer f.Close()

	var costs []Cost

	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, &rip.ConfigError{
				Msg: fmt.Sprintf("%s:%d: expected \"<a> <b> <cost>\", got %q", path, lineNo, line),
			}
		}

		if len(fields[0]) != 1 || len(fields[1]) != 1 {
			return nil, &rip.ConfigError{
				Msg: fmt.Sprintf("%s:%d: node names must be single characters, got %q and %q", path, lineNo, fields[0], fields[1]),
			}
		}

		cost, perr := strconv.Atoi(fields[2])
		if perr != nil {
			return nil, &rip.ConfigError{
				Msg: fmt.Sprintf("%s:%d: bad cost %q: %v", path, lineNo, fields[2], perr),
			}
		}

		costs = append(costs, Cost{A: fields[0][0], B: fields[1][0], Cost: cost})
	}

	if err := scanner.Err(); err != nil {
		return nil, &rip.ConfigError{Msg: fmt.Sprintf("read %s: %v", path, err)}
	}

	return costs, nil
}

// ApplyTo marks every edge touching table's local node as adjacent,
// per spec §6: "For each line where one endpoint is the local node,
// the other endpoint is marked adjacent, connected, initial_distance
// = cost, distance = cost, next_hop = local.name."
func ApplyTo(table *rip.Table, costs []Cost) error {
	local := table.Local.Name
	for _, c := range costs {
		switch local {
		case c.A:
			if err := table.SetAdjacent(c.B, c.Cost); err != nil {
				return err
			}
		case c.B:
			if err := table.SetAdjacent(c.A, c.Cost); err != nil {
				return err
			}
		}
	}
	return nil
}
