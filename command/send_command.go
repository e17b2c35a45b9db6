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
	"github.com/cybojanek/zwaveip/zipframe"
)

// SendCommand is the generic per-node command-class dispatcher: encode an
// arbitrary command-class payload (e.g. a Configuration Set, or a Get that
// expects a specific Report command back), and either complete on ack
// (when no report is expected) or on a matching report.
type SendCommand struct {
	SeqNo  uint8
	NodeID uint8
	Body   []byte // command_class_byte, command_byte, payload...

	// ExpectCommandClass/ExpectCommand name the report this command waits
	// for, if any. When both are zero, SendCommand completes on ack alone
	// (a "Set"-style command).
	ExpectCommandClass uint8
	ExpectCommand      uint8

	retries int
}

// NewSendCommand constructs a SendCommand instance. body must already be
// {command_class, command, payload...} as produced by an encoder in
// zipframe (or EncodeCommand).
func NewSendCommand(seqNo uint8, nodeID uint8, body []byte, retries int) *SendCommand {
	return &SendCommand{SeqNo: seqNo, NodeID: nodeID, Body: body, retries: retries}
}

// ExpectReport narrows this command to wait for a specific report command
// before declaring Done, returning the decoded report as its value.
func (c *SendCommand) ExpectReport(commandClass uint8, command uint8) *SendCommand {
	c.ExpectCommandClass = commandClass
	c.ExpectCommand = command
	return c
}

func (c *SendCommand) Encode() []byte {
	return c.Body
}

func (c *SendCommand) HandleResponse(pkt *zipframe.Packet) Transition {
	waitingForReport := c.ExpectCommand != 0 || c.ExpectCommandClass != 0
	if waitingForReport && len(pkt.Body) >= 2 &&
		pkt.Body[0] == c.ExpectCommandClass && pkt.Body[1] == c.ExpectCommand {
		if pkt.Command != nil && pkt.Command.Report != nil {
			return DoneValue(pkt.Command.Report)
		}
	}

	t := AckDispatch(pkt, c.SeqNo, c.retries, false)
	if !waitingForReport && t.Kind == Done && t.Err == nil {
		return t
	}
	if waitingForReport && t.Kind == Done && t.Err == nil {
		// Acked, but still waiting for the report itself: keep the runner
		// alive rather than completing on the bare ack.
		return ContinueTransition()
	}
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

// HandleTimeout decrements the remaining retry count and classifies the
// outcome.
func (c *SendCommand) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *SendCommand) PreStates() []Mode { return []Mode{ModeIdle, ModeConfiguringNewNode} }
func (c *SendCommand) ExecState() Mode   { return ModeNone }
