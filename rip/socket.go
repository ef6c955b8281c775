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
	"errors"
	"net"
	"net/netip"
	"os"
	"time"
)

// MaxPacketSize bounds a single datagram, sufficient for the header
// format at the ≤20-node scale this daemon targets (spec §6).
const MaxPacketSize = 1000

// ErrTimeout is returned by Socket.ReceiveTimeout when no datagram
// arrived inside the requested window. It is not a failure: the event
// loop treats it as "nothing to do this iteration."
var ErrTimeout = errors.New("rip: receive timeout")

// Socket owns the single bound UDP/IPv4 datagram endpoint the event
// loop multiplexes sends and receives over. There is exactly one of
// these per Table, as spec §5 requires: it is never shared across
// goroutines.
type Socket struct {
	conn *net.UDPConn
}

// Bind opens and binds the local datagram endpoint. A failure here is
// fatal at startup (spec §7): the caller should abort with a
// diagnostic rather than retry.
func Bind(addr netip.AddrPort) (*Socket, error) {
	conn, err := net.ListenUDP("udp4", net.UDPAddrFromAddrPort(addr))
	if err != nil {
		return nil, &IOError{Op: "bind", Err: err}
	}
	return &Socket{conn: conn}, nil
}

// Close releases the socket.
func (s *Socket) Close() error {
	return s.conn.Close()
}

// SendTo transmits buf to addr. Send failures are transient (spec
// §4.4/§7): the caller logs and ignores them, and the next periodic
// broadcast retries implicitly.
func (s *Socket) SendTo(addr netip.AddrPort, buf []byte) error {
	_, err := s.conn.WriteToUDPAddrPort(buf, addr)
	if err != nil {
		return &IOError{Op: "sendto", Err: err}
	}
	return nil
}

// ReceiveTimeout blocks for up to wait for a single datagram. It
// returns ErrTimeout if none arrives in time, or an *IOError for any
// other failure — both are non-fatal to the caller.
func (s *Socket) ReceiveTimeout(wait time.Duration) ([]byte, netip.AddrPort, error) {
	buf := make([]byte, MaxPacketSize)

	if err := s.conn.SetReadDeadline(time.Now().Add(wait)); err != nil {
		return nil, netip.AddrPort{}, &IOError{Op: "set-read-deadline", Err: err}
	}

	n, from, err := s.conn.ReadFromUDPAddrPort(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, netip.AddrPort{}, ErrTimeout
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, netip.AddrPort{}, ErrTimeout
		}
		return nil, netip.AddrPort{}, &IOError{Op: "recvfrom", Err: err}
	}

	return buf[:n], from, nil
}
