package transport

/*
Copyright (C) 2017 Jan Kasiak

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// maxDatagramSize is generous for a Z/IP payload: envelope header plus any
// command-class body comfortably fits well under the Ethernet MTU.
const maxDatagramSize = 1500

// UDPTransport is the default Transport: a UDP socket bound to a local port,
// talking to a single fixed gateway address.
type UDPTransport struct {
	LocalPort  int
	GatewayIP  net.IP
	GatewayPort int

	mutex sync.Mutex
	conn  *net.UDPConn
}

// NewUDPTransport constructs a transport bound to localPort, targeting
// gatewayIP:gatewayPort. Gateway default port is 4123, client default local
// port is 4000.
func NewUDPTransport(gatewayIP net.IP, gatewayPort int, localPort int) *UDPTransport {
	return &UDPTransport{LocalPort: localPort, GatewayIP: gatewayIP, GatewayPort: gatewayPort}
}

// Open binds the local UDP socket.
func (t *UDPTransport) Open(ctx context.Context) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.conn != nil {
		return nil
	}

	remote := &net.UDPAddr{IP: t.GatewayIP, Port: t.GatewayPort}
	conn, err := net.DialUDP("udp", &net.UDPAddr{Port: t.LocalPort}, remote)
	if err != nil {
		return fmt.Errorf("transport: open udp: %w", err)
	}

	log.Info().Str("gateway", remote.String()).Int("local_port", t.LocalPort).Msg("transport opened")
	t.conn = conn
	return nil
}

// Send writes payload to the gateway.
func (t *UDPTransport) Send(ctx context.Context, payload []byte) error {
	t.mutex.Lock()
	conn := t.conn
	t.mutex.Unlock()

	if conn == nil {
		return ErrClosed
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}

	n, err := conn.Write(payload)
	if err != nil {
		return fmt.Errorf("transport: send: %w", err)
	}
	if n != len(payload) {
		return fmt.Errorf("transport: short write: %d != %d", n, len(payload))
	}

	log.Debug().Int("bytes", n).Msg("transport sent datagram")
	return nil
}

// Receive reads one datagram from the gateway.
func (t *UDPTransport) Receive(ctx context.Context) ([]byte, error) {
	t.mutex.Lock()
	conn := t.conn
	t.mutex.Unlock()

	if conn == nil {
		return nil, ErrClosed
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	} else {
		_ = conn.SetReadDeadline(time.Time{})
	}

	buf := make([]byte, maxDatagramSize)
	n, err := conn.Read(buf)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("transport: receive: %w", err)
	}

	log.Debug().Int("bytes", n).Msg("transport received datagram")
	return buf[:n], nil
}

// Close releases the socket. Safe to call more than once.
func (t *UDPTransport) Close() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	if err != nil {
		return fmt.Errorf("transport: close: %w", err)
	}
	return nil
}
