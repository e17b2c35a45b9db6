// Package runner implements the command runner: the state machine owning
// one in-flight command instance, from its first send through retries,
// queued-for-sleeping-node suspension, and final completion.
package runner

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
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cybojanek/zwaveip/command"
	"github.com/cybojanek/zwaveip/transport"
	"github.com/cybojanek/zwaveip/zipframe"
)

// QueuedWaiter is how the coordinator notifies a suspended runner that the
// gateway has either finished delivering a queued message to a sleeping
// node, or abandoned it.
type QueuedWaiter struct {
	Delivered chan struct{}
	Abandoned chan struct{}
}

// NewQueuedWaiter constructs an empty QueuedWaiter.
func NewQueuedWaiter() *QueuedWaiter {
	return &QueuedWaiter{Delivered: make(chan struct{}), Abandoned: make(chan struct{})}
}

// Runner drives one Command's lifecycle against a Transport. A Runner is
// single-use: once Run returns, it must be discarded.
type Runner struct {
	SeqNo       uint8
	Cmd         command.Command
	Transport   transport.Transport
	SendTimeout time.Duration

	// ConfiguringNewNode is read whenever HandleResponse returns Queued:
	// while it reports true the runner keeps waiting (Continue) instead of
	// suspending. The coordinator passes a function reading its live mode;
	// nil means never configuring.
	ConfiguringNewNode func() bool

	inbox   chan *zipframe.Packet
	cancel  chan struct{}
	queued  *QueuedWaiter
}

// New constructs a Runner. sendTimeout is the per-send timeout (typically
// around 2s).
func New(seqNo uint8, cmd command.Command, tp transport.Transport, sendTimeout time.Duration, configuringNewNode func() bool) *Runner {
	return &Runner{
		SeqNo:              seqNo,
		Cmd:                cmd,
		Transport:          tp,
		SendTimeout:        sendTimeout,
		ConfiguringNewNode: configuringNewNode,
		inbox:              make(chan *zipframe.Packet, 16),
		cancel:             make(chan struct{}),
	}
}

// Deliver hands an inbound packet already routed to this runner's sequence
// number to its mailbox. Called by the coordinator, never by the runner
// itself: inbound packets are delivered to runners in arrival order.
func (r *Runner) Deliver(pkt *zipframe.Packet) {
	select {
	case r.inbox <- pkt:
	case <-r.cancel:
	}
}

// Cancel cooperatively abandons the runner: it will stop sending and return
// {error, cancelled} at its next opportunity.
func (r *Runner) Cancel() {
	select {
	case <-r.cancel:
	default:
		close(r.cancel)
	}
}

// SignalQueuedDelivered notifies a runner suspended in Queued state that the
// gateway finished delivering its message to the sleeping node.
func (r *Runner) SignalQueuedDelivered() {
	if r.queued != nil {
		close(r.queued.Delivered)
	}
}

// SignalQueuedAbandoned notifies a runner suspended in Queued state that the
// gateway gave up on delivering its message.
func (r *Runner) SignalQueuedAbandoned() {
	if r.queued != nil {
		close(r.queued.Abandoned)
	}
}

// Run drives the command to completion: encode and send, then react to
// inbound packets, retries, timeouts, queuing, and cancellation. It
// returns the command's reported value (nil for a value-less success) or
// a *command.Error.
func (r *Runner) Run(ctx context.Context) (any, error) {
	for {
		if err := r.send(ctx); err != nil {
			return nil, err
		}

		result, done, err := r.awaitOneSend(ctx)
		if done {
			return result, err
		}
		// Loop again to re-send (Retry transition).
	}
}

func (r *Runner) send(ctx context.Context) error {
	select {
	case <-r.cancel:
		return command.ErrCancelled
	default:
	}

	body := r.Cmd.Encode()
	envelope := zipframe.Encode(r.SeqNo, zipframe.TypeSet(0), body)
	if err := r.Transport.Send(ctx, envelope); err != nil {
		return command.NewError(command.KindTimeout, err)
	}
	log.Debug().Uint8("seq_no", r.SeqNo).Msg("runner sent command")
	return nil
}

// awaitOneSend waits for this send's timeout, reacting to inbound packets
// as they arrive. It returns (result, done, err): done=false means the
// caller should re-send (a Retry transition fired).
func (r *Runner) awaitOneSend(ctx context.Context) (any, bool, error) {
	timer := time.NewTimer(r.SendTimeout)
	defer timer.Stop()

	for {
		select {
		case <-r.cancel:
			return nil, true, command.ErrCancelled

		case <-ctx.Done():
			return nil, true, command.NewError(command.KindCancelled, ctx.Err())

		case <-timer.C:
			t := r.Cmd.HandleTimeout()
			if t.Kind == command.Retry {
				return nil, false, nil
			}
			return nil, true, t.Err

		case pkt := <-r.inbox:
			t := r.Cmd.HandleResponse(pkt)
			switch t.Kind {
			case command.Continue:
				continue
			case command.Retry:
				return nil, false, nil
			case command.Queued:
				if r.ConfiguringNewNode != nil && r.ConfiguringNewNode() {
					continue
				}
				return r.awaitQueued(ctx)
			case command.Done:
				return t.Report, true, t.Err
			}
		}
	}
}

// awaitQueued suspends until the coordinator signals delivery completion or
// abandonment of a message queued for a sleeping node.
func (r *Runner) awaitQueued(ctx context.Context) (any, bool, error) {
	if r.queued == nil {
		r.queued = NewQueuedWaiter()
	}
	select {
	case <-r.cancel:
		return nil, true, command.ErrCancelled
	case <-ctx.Done():
		return nil, true, command.NewError(command.KindCancelled, ctx.Err())
	case <-r.queued.Delivered:
		return nil, true, nil
	case <-r.queued.Abandoned:
		return nil, true, command.NewError(command.KindTimeout, nil)
	}
}
