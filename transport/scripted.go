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
	"sync"
)

// Scripted is a Transport double driven entirely by the test: Send appends
// to Sent, and Receive replays queued inbound datagrams (or blocks until
// one is pushed with Push). It substitutes for a live gateway in runner and
// coordinator tests.
type Scripted struct {
	mutex  sync.Mutex
	cond   *sync.Cond
	inbox  [][]byte
	closed bool

	Sent [][]byte
}

// NewScripted constructs an empty scripted transport.
func NewScripted() *Scripted {
	s := &Scripted{}
	s.cond = sync.NewCond(&s.mutex)
	return s
}

// Open marks the transport open again, so it can be reused after Close.
func (s *Scripted) Open(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = false
	return nil
}

// Send records payload in Sent for test assertions.
func (s *Scripted) Send(ctx context.Context, payload []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.Sent = append(s.Sent, append([]byte(nil), payload...))
	return nil
}

// Push queues an inbound datagram for a subsequent Receive to return.
func (s *Scripted) Push(payload []byte) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.inbox = append(s.inbox, append([]byte(nil), payload...))
	s.cond.Broadcast()
}

// Receive returns the next queued inbound datagram, blocking until one is
// pushed, ctx is done, or the transport is closed.
func (s *Scripted) Receive(ctx context.Context) ([]byte, error) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.mutex.Lock()
			s.cond.Broadcast()
			s.mutex.Unlock()
		case <-done:
		}
	}()
	defer close(done)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	for len(s.inbox) == 0 && !s.closed && ctx.Err() == nil {
		s.cond.Wait()
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if s.closed {
		return nil, ErrClosed
	}

	payload := s.inbox[0]
	s.inbox = s.inbox[1:]
	return payload, nil
}

// Close marks the transport closed, waking any blocked Receive.
func (s *Scripted) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = true
	s.cond.Broadcast()
	return nil
}
