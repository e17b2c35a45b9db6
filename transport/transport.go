// Package transport abstracts the single mutable socket a coordinator sends
// and receives Z/IP datagrams on, so the coordinator and command runners can
// be exercised against a scripted transport in tests without a real UDP
// gateway.
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
	"errors"
)

// ErrClosed is returned by Send/Receive once the transport has been closed.
var ErrClosed = errors.New("transport: closed")

// Transport is the single send/receive primitive a coordinator drives. Only
// the coordinator (or a dedicated writer it owns) may call Send; Receive is
// read by one loop that fans inbound datagrams out to runners.
type Transport interface {
	// Open establishes the underlying connection. Open must be callable
	// again after Close to support reopening.
	Open(ctx context.Context) error

	// Send writes a single outbound Z/IP datagram.
	Send(ctx context.Context, payload []byte) error

	// Receive blocks until one inbound datagram arrives, ctx is cancelled,
	// or the transport is closed.
	Receive(ctx context.Context) ([]byte, error)

	// Close releases the underlying connection. Safe to call multiple
	// times.
	Close() error
}
