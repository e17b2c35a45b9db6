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
	"github.com/cybojanek/zwaveip/mapping"
	"github.com/cybojanek/zwaveip/zipframe"
)

// Whole-node Version command bytes, distinct from the per-command-class
// 0x86 0x13/0x14 pair.
const (
	cmdVersionGet    uint8 = 0x11
	cmdVersionReport uint8 = 0x12
)

// GetVersion reads a node's library/protocol/application version triple.
type GetVersion struct {
	SeqNo   uint8
	NodeID  uint8
	retries int
}

// NewGetVersion constructs a GetVersion instance.
func NewGetVersion(seqNo uint8, nodeID uint8, retries int) *GetVersion {
	return &GetVersion{SeqNo: seqNo, NodeID: nodeID, retries: retries}
}

func (c *GetVersion) Encode() []byte {
	return []byte{mapping.CommandClassVersion, cmdVersionGet}
}

func (c *GetVersion) HandleResponse(pkt *zipframe.Packet) Transition {
	if len(pkt.Body) >= 2 && pkt.Body[0] == mapping.CommandClassVersion && pkt.Body[1] == cmdVersionReport {
		if pkt.Command != nil && pkt.Command.Report != nil {
			return DoneValue(pkt.Command.Report)
		}
	}
	t := AckDispatch(pkt, c.SeqNo, c.retries, false)
	if t.Kind == Retry {
		c.retries--
	}
	if t.Kind == Done && t.Err == nil {
		return ContinueTransition()
	}
	return t
}

// HandleTimeout decrements the remaining retry count and classifies the
// outcome.
func (c *GetVersion) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *GetVersion) PreStates() []Mode { return []Mode{ModeIdle, ModeConfiguringNewNode} }
func (c *GetVersion) ExecState() Mode   { return ModeNone }
