// Package command implements one type per outbound operation, each
// producing wire bytes via Encode and interpreting inbound packets via
// HandleResponse. The runner package drives these state machines; this
// package only knows how to encode a request and classify a response,
// never how to send or retry.
package command

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
	"errors"

	"github.com/cybojanek/zwaveip/zipframe"
)

// Kind names the taxonomy of terminal failures a command can report.
type Kind string

// Recognized terminal failure kinds.
const (
	KindNackResponse   Kind = "nack_response"
	KindTimeout        Kind = "timeout"
	KindNetworkBusy    Kind = "network_busy"
	KindDecodeError    Kind = "decode_error"
	KindCancelled      Kind = "cancelled"
)

// Error wraps a terminal Kind so callers can classify failures with
// errors.Is/errors.As while still getting a readable message.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError constructs a terminal command.Error of the given kind.
func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// ErrCancelled is returned by a runner when the coordinator cooperatively
// abandons a command.
var ErrCancelled = NewError(KindCancelled, errors.New("command cancelled"))

// TransitionKind is one of the outcomes HandleResponse can produce.
type TransitionKind int

// Recognized transition kinds.
const (
	Continue TransitionKind = iota
	Retry
	Queued
	Done
)

// Transition is the result of feeding one inbound packet to a Command.
type Transition struct {
	Kind TransitionKind

	// Report is populated on Done for a command that produced a value
	// (e.g. a GET). Err is populated on Done for a terminal failure.
	Report any
	Err    error
}

// ContinueTransition ignores the packet and keeps waiting.
func ContinueTransition() Transition { return Transition{Kind: Continue} }

// RetryTransition asks the runner to re-send.
func RetryTransition() Transition { return Transition{Kind: Retry} }

// QueuedTransition tells the runner the destination is a sleeping node and
// the gateway has taken delivery responsibility.
func QueuedTransition() Transition { return Transition{Kind: Queued} }

// DoneOK completes the command successfully with no value.
func DoneOK() Transition { return Transition{Kind: Done} }

// DoneValue completes the command successfully with report as its result.
func DoneValue(report any) Transition { return Transition{Kind: Done, Report: report} }

// DoneError completes the command with a terminal failure.
func DoneError(err error) Transition { return Transition{Kind: Done, Err: err} }

// Command is the polymorphic trait every outbound operation implements.
type Command interface {
	// Encode produces the command-class payload (command class byte,
	// command byte, then command-specific bytes) to embed in a Z/IP
	// envelope; the runner adds the envelope and its sequence number.
	// Encode is deterministic and never fails: parameter validation
	// happens at construction time.
	Encode() []byte

	// HandleResponse classifies an inbound packet already known to be
	// addressed to this command's sequence number.
	HandleResponse(pkt *zipframe.Packet) Transition

	// HandleTimeout classifies a send that went unanswered for the
	// runner's send-timeout window: a timeout counts as a nack_response
	// for retry purposes. Implementors decrement their own retry count
	// and return Retry or a terminal Done/KindTimeout accordingly.
	HandleTimeout() Transition

	// PreStates lists the network modes this command may be admitted from.
	PreStates() []Mode

	// ExecState is the mode the coordinator should atomically transition
	// to on admission, or ModeNone if this command does not change mode.
	ExecState() Mode
}

// Mode mirrors the coordinator's network mode, duplicated here (rather
// than imported from coordinator) to keep command's dependency graph
// one-directional: coordinator depends on command, not the reverse.
type Mode int

// Recognized modes.
const (
	ModeNone Mode = iota
	ModeNotReady
	ModeIdle
	ModeIncludingNode
	ModeExcludingNode
	ModeConfiguringNewNode
	ModeLearnMode
	ModeDefaultSetting
)

// AckDispatch implements the uniform ack/nack/retry/queued dispatch logic
// shared by every acknowledged command. seqNo is this command's allocated
// sequence number; retriesRemaining is the number of resends still
// available; configuringNewNode reports whether the coordinator is
// currently in that mode (queued reports are only queued outside it).
func AckDispatch(pkt *zipframe.Packet, seqNo uint8, retriesRemaining int, configuringNewNode bool) Transition {
	if pkt.SeqNumber != seqNo {
		return ContinueTransition()
	}

	switch {
	case pkt.Types.Has(zipframe.AckResponse) && !pkt.Types.Has(zipframe.NackResponse):
		return DoneOK()

	case pkt.Types.Has(zipframe.NackResponse) && !pkt.Types.Has(zipframe.NackWaiting):
		if retriesRemaining <= 0 {
			return DoneError(NewError(KindNackResponse, nil))
		}
		return RetryTransition()

	case pkt.Types.Has(zipframe.NackResponse) && pkt.Types.Has(zipframe.NackWaiting):
		if pkt.SleepingDelay && !configuringNewNode {
			return QueuedTransition()
		}
		return ContinueTransition()

	default:
		return ContinueTransition()
	}
}

// TimeoutTransition is what a runner should do when a send times out with
// no response: a timeout counts as a nack_response for retry purposes.
func TimeoutTransition(retriesRemaining int) Transition {
	if retriesRemaining <= 0 {
		return DoneError(NewError(KindTimeout, nil))
	}
	return RetryTransition()
}
