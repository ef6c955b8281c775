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

// Package config is the out-of-scope collaborator (spec §1, §6) that
// turns the two static configuration files into the values the rip
// package's Table needs: the node-address table and the
// adjacency-cost table. Neither file format is structured (no nesting,
// no types beyond strings and integers), so parsing is line-oriented
// bufio scanning rather than a general-purpose format library — the
// same low-ceremony approach the original program's parse_file takes.
package config

import (
	"bufio"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"dvrouted/rip"
)

// NodeAddr is one line of the node-address file: a name and the
// endpoint it's reachable at.
type NodeAddr struct {
	Name byte
	Addr netip.AddrPort
}

// LoadNodes parses the node-address file (spec §6: "<name> <ipv4>
// <port>", one line per node). The line naming localName configures
// the local endpoint; every other line, in file order, becomes a
// neighbor-table candidate. Returns a *rip.ConfigError if the file is
// unreadable, a line is malformed, or localName never appears.
func LoadNodes(path string, localName byte) (local NodeAddr, neighbors []NodeAddr, err error) {
	f, err := os.Open(path)
	if err != nil {
		return NodeAddr{}, nil, &rip.ConfigError{Msg: fmt.Sprintf("open %s: %v", path, err)}
	}
	defer f.Close()

	var foundLocal bool

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
			return NodeAddr{}, nil, &rip.ConfigError{
				Msg: fmt.Sprintf("%s:%d: expected \"<name> <ip> <port>\", got %q", path, lineNo, line),
			}
		}

		name := fields[0]
		if len(name) != 1 {
			return NodeAddr{}, nil, &rip.ConfigError{
				Msg: fmt.Sprintf("%s:%d: node name must be a single character, got %q", path, lineNo, name),
			}
		}

		ip, perr := netip.ParseAddr(fields[1])
		if perr != nil || !ip.Is4() {
			return NodeAddr{}, nil, &rip.ConfigError{
				Msg: fmt.Sprintf("%s:%d: bad IPv4 address %q: %v", path, lineNo, fields[1], perr),
			}
		}

		port, perr := strconv.ParseUint(fields[2], 10, 16)
		if perr != nil {
			return NodeAddr{}, nil, &rip.ConfigError{
				Msg: fmt.Sprintf("%s:%d: bad port %q: %v", path, lineNo, fields[2], perr),
			}
		}

		n := NodeAddr{Name: name[0], Addr: netip.AddrPortFrom(ip, uint16(port))}

		if n.Name == localName {
			local = n
			foundLocal = true
			continue
		}

		neighbors = append(neighbors, n)
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		return NodeAddr{}, nil, &rip.ConfigError{Msg: fmt.Sprintf("read %s: %v", path, err)}
	}

	if !foundLocal {
		return NodeAddr{}, nil, &rip.ConfigError{
			Msg: fmt.Sprintf("node %q not found in %s", string(localName), path),
		}
	}

	return local, neighbors, nil
}
