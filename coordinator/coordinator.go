// Package coordinator implements the network coordinator: the process-wide
// actor owning the sequence-number space, the current network mode, and
// the {seq_no → runner} routing table.
package coordinator

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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cybojanek/zwaveip/command"
	"github.com/cybojanek/zwaveip/config"
	"github.com/cybojanek/zwaveip/runner"
	"github.com/cybojanek/zwaveip/transport"
	"github.com/cybojanek/zwaveip/zipframe"
)

// Mode is the coordinator's current network mode.
type Mode = command.Mode

// Exported mode aliases for callers outside this package.
const (
	ModeNotReady           = command.ModeNotReady
	ModeIdle               = command.ModeIdle
	ModeIncludingNode      = command.ModeIncludingNode
	ModeExcludingNode      = command.ModeExcludingNode
	ModeConfiguringNewNode = command.ModeConfiguringNewNode
	ModeLearnMode          = command.ModeLearnMode
	ModeDefaultSetting     = command.ModeDefaultSetting
)

// ErrNetworkBusy is returned when a mode-changing command is admitted while
// another one is already running.
var ErrNetworkBusy = command.NewError(command.KindNetworkBusy, fmt.Errorf("a mode-changing command is already in progress"))

// Event is an unsolicited inbound packet (no matching seq_no): a
// notification or a report pushed by the gateway outside any in-flight
// exchange.
type Event struct {
	Packet *zipframe.Packet
}

// SubscriptionID identifies a live Subscribe call, so a caller can
// Unsubscribe later.
type SubscriptionID string

// Coordinator is the process-wide owner of gateway network state.
type Coordinator struct {
	opts      *config.Options
	transport transport.Transport

	mutex       sync.Mutex
	mode        Mode
	nextSeq     uint8
	inUse       map[uint8]bool
	runners     map[uint8]*runner.Runner
	subscribers map[SubscriptionID]chan Event

	cancelReceiveLoop context.CancelFunc
	receiveLoopDone   chan struct{}
}

// New constructs a Coordinator bound to the given transport and options. It
// starts in not_ready until Start is called.
func New(opts *config.Options, tp transport.Transport) *Coordinator {
	return &Coordinator{
		opts:        opts,
		transport:   tp,
		mode:        ModeNotReady,
		inUse:       make(map[uint8]bool),
		runners:     make(map[uint8]*runner.Runner),
		subscribers: make(map[SubscriptionID]chan Event),
	}
}

// Start opens the transport and begins the receive loop, transitioning
// not_ready → idle on success.
func (c *Coordinator) Start(ctx context.Context) error {
	if err := c.transport.Open(ctx); err != nil {
		return fmt.Errorf("coordinator: start: %w", err)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	c.cancelReceiveLoop = cancel
	c.receiveLoopDone = make(chan struct{})
	go c.receiveLoop(loopCtx)

	c.mutex.Lock()
	c.mode = ModeIdle
	c.mutex.Unlock()

	log.Info().Msg("coordinator started")
	return nil
}

// Stop cancels the receive loop and closes the transport, cancelling all
// pending commands (their runners return command.ErrCancelled).
func (c *Coordinator) Stop() error {
	if c.cancelReceiveLoop != nil {
		c.cancelReceiveLoop()
		<-c.receiveLoopDone
	}

	c.mutex.Lock()
	c.mode = ModeNotReady
	for seq, r := range c.runners {
		r.Cancel()
		delete(c.runners, seq)
	}
	c.mutex.Unlock()

	return c.transport.Close()
}

// Mode returns the coordinator's current network mode.
func (c *Coordinator) Mode() Mode {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.mode
}

// allocateSeqNo returns the next unused sequence number, wrapping the byte
// space and skipping values currently in use.
func (c *Coordinator) allocateSeqNo() (uint8, error) {
	start := c.nextSeq
	for {
		seq := c.nextSeq
		c.nextSeq++
		if !c.inUse[seq] {
			c.inUse[seq] = true
			return seq, nil
		}
		if c.nextSeq == start {
			return 0, fmt.Errorf("coordinator: no free sequence numbers")
		}
	}
}

func (c *Coordinator) releaseSeqNo(seq uint8) {
	c.mutex.Lock()
	delete(c.inUse, seq)
	delete(c.runners, seq)
	c.mutex.Unlock()
}

// admit performs admission control against an already-reserved sequence
// number: checks current_mode is in cmd.PreStates and, if the
// command declares an ExecState, atomically transitions mode. Returns the
// allocated runner, ready to Run. On rejection the caller must release seq.
func (c *Coordinator) admit(cmd command.Command, seq uint8) (*runner.Runner, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	allowed := false
	for _, m := range cmd.PreStates() {
		if m == c.mode {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrNetworkBusy
	}

	if exec := cmd.ExecState(); exec != command.ModeNone {
		c.mode = exec
	}

	r := runner.New(seq, cmd, c.transport, time.Duration(c.opts.SendTimeoutMS)*time.Millisecond, c.isConfiguringNewNode)
	c.runners[seq] = r
	return r, nil
}

func (c *Coordinator) isConfiguringNewNode() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.mode == ModeConfiguringNewNode
}

// completeExecState transitions the mode back to idle once a mode-changing
// command finishes, except a successful inclusion which persists in
// configuring_new_node until ConfigurationDone is called.
func (c *Coordinator) completeExecState(cmd command.Command, succeeded bool) {
	exec := cmd.ExecState()
	if exec == command.ModeNone {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if exec == ModeIncludingNode && succeeded {
		c.mode = ModeConfiguringNewNode
		return
	}
	c.mode = ModeIdle
}

// ConfigurationDone signals that the caller has finished configuring a
// newly included node, returning the coordinator to idle.
func (c *Coordinator) ConfigurationDone() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.mode == ModeConfiguringNewNode {
		c.mode = ModeIdle
	}
}

// run admits cmd against its pre-reserved seq, runs it to completion, and
// releases the sequence number regardless of outcome.
func (c *Coordinator) run(ctx context.Context, cmd command.Command, seq uint8) (any, error) {
	r, err := c.admit(cmd, seq)
	if err != nil {
		c.releaseSeqNo(seq)
		return nil, err
	}
	defer c.releaseSeqNo(seq)

	result, err := r.Run(ctx)
	succeeded := err == nil
	if report, ok := result.(zipframe.NodeAddStatusReport); ok && report.Status != zipframe.NodeAddStatusDone {
		succeeded = false
	}
	c.completeExecState(cmd, succeeded)
	return result, err
}

func (c *Coordinator) defaultRetries() int {
	return int(c.opts.DefaultRetries)
}

// reserveSeqNo atomically allocates and marks in-use the sequence number a
// caller will embed into its command payload before admission, closing the
// race between choosing a seq_no and registering the runner under it.
func (c *Coordinator) reserveSeqNo() (uint8, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.allocateSeqNo()
}

// IncludeNode starts (or, with stop=true, cancels) network-wide inclusion.
// It returns once the terminal node_add_status report arrives; on success
// the coordinator remains in configuring_new_node until ConfigurationDone
// is called.
func (c *Coordinator) IncludeNode(ctx context.Context, stop bool) (zipframe.NodeAddStatusReport, error) {
	seq, err := c.reserveSeqNo()
	if err != nil {
		return zipframe.NodeAddStatusReport{}, err
	}
	cmd := command.NewIncludeNode(seq, stop, c.defaultRetries())
	result, err := c.run(ctx, cmd, seq)
	if err != nil {
		return zipframe.NodeAddStatusReport{}, err
	}
	report, _ := result.(zipframe.NodeAddStatusReport)
	return report, nil
}

// ExcludeNode starts (or cancels) network-wide exclusion.
func (c *Coordinator) ExcludeNode(ctx context.Context, stop bool) (zipframe.NodeRemoveStatusReport, error) {
	seq, err := c.reserveSeqNo()
	if err != nil {
		return zipframe.NodeRemoveStatusReport{}, err
	}
	cmd := command.NewExcludeNode(seq, stop, c.defaultRetries())
	result, err := c.run(ctx, cmd, seq)
	if err != nil {
		return zipframe.NodeRemoveStatusReport{}, err
	}
	report, _ := result.(zipframe.NodeRemoveStatusReport)
	return report, nil
}

// GetNodeList fetches the gateway's full included-node bitmask.
func (c *Coordinator) GetNodeList(ctx context.Context) (zipframe.NodeListReport, error) {
	seq, err := c.reserveSeqNo()
	if err != nil {
		return zipframe.NodeListReport{}, err
	}
	cmd := command.NewGetNodeList(seq, c.defaultRetries())
	result, err := c.run(ctx, cmd, seq)
	if err != nil {
		return zipframe.NodeListReport{}, err
	}
	report, _ := result.(zipframe.NodeListReport)
	return report, nil
}

// GetNodeInfo fetches the node-info cache entry for a single node.
func (c *Coordinator) GetNodeInfo(ctx context.Context, nodeID uint8) (zipframe.NodeInfoCacheReport, error) {
	seq, err := c.reserveSeqNo()
	if err != nil {
		return zipframe.NodeInfoCacheReport{}, err
	}
	cmd := command.NewGetNodeInfo(seq, nodeID, c.defaultRetries())
	result, err := c.run(ctx, cmd, seq)
	if err != nil {
		return zipframe.NodeInfoCacheReport{}, err
	}
	report, _ := result.(zipframe.NodeInfoCacheReport)
	return report, nil
}

// SendCommand encodes and sends an arbitrary command-class payload to a
// node. When expectCommandClass/expectCommand are both zero, it completes
// on the delivery ack alone; otherwise it waits for the matching report and
// returns its decoded value.
func (c *Coordinator) SendCommand(ctx context.Context, nodeID uint8, commandClass, cmdByte uint8, params []byte, expectCommandClass, expectCommand uint8) (any, error) {
	seq, err := c.reserveSeqNo()
	if err != nil {
		return nil, err
	}
	body := append([]byte{commandClass, cmdByte}, params...)
	cmd := command.NewSendCommand(seq, nodeID, body, c.defaultRetries())
	if expectCommandClass != 0 || expectCommand != 0 {
		cmd = cmd.ExpectReport(expectCommandClass, expectCommand)
	}
	return c.run(ctx, cmd, seq)
}

// receiveLoop is the single reader of the transport: it decodes inbound
// datagrams and routes them either to the runner owning their seq_no, or to
// subscribers when unsolicited.
func (c *Coordinator) receiveLoop(ctx context.Context) {
	defer close(c.receiveLoopDone)

	for {
		raw, err := c.transport.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn().Err(err).Msg("coordinator receive failed, deactivating pending commands")
			c.failAllPending()
			return
		}

		pkt, err := zipframe.Decode(raw)
		if err != nil {
			log.Debug().Err(err).Msg("coordinator dropped malformed datagram")
			continue
		}

		c.route(pkt)
	}
}

func (c *Coordinator) route(pkt *zipframe.Packet) {
	c.mutex.Lock()
	r, ok := c.runners[pkt.SeqNumber]
	c.mutex.Unlock()

	if ok {
		r.Deliver(pkt)
		return
	}

	c.mutex.Lock()
	subs := make([]chan Event, 0, len(c.subscribers))
	for _, ch := range c.subscribers {
		subs = append(subs, ch)
	}
	c.mutex.Unlock()

	for _, ch := range subs {
		select {
		case ch <- Event{Packet: pkt}:
		default:
			log.Warn().Msg("coordinator dropped event: subscriber channel full")
		}
	}
}

func (c *Coordinator) failAllPending() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.mode = ModeNotReady
	for seq, r := range c.runners {
		r.Cancel()
		delete(c.runners, seq)
	}
}

// Subscribe registers a channel that receives unsolicited inbound events
// (notifications, gateway-pushed reports).
func (c *Coordinator) Subscribe() (SubscriptionID, <-chan Event) {
	id := SubscriptionID(uuid.NewString())
	ch := make(chan Event, 32)

	c.mutex.Lock()
	c.subscribers[id] = ch
	c.mutex.Unlock()

	return id, ch
}

// Unsubscribe removes a previously registered subscription.
func (c *Coordinator) Unsubscribe(id SubscriptionID) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if ch, ok := c.subscribers[id]; ok {
		close(ch)
		delete(c.subscribers, id)
	}
}
