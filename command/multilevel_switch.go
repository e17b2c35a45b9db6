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

// Multilevel Switch start/stop level change command bytes.
const (
	cmdSwitchMultilevelStartLevelChange uint8 = 0x04
	cmdSwitchMultilevelStopLevelChange  uint8 = 0x05
)

// StartLevelChange begins a continuous dim/brighten, as used by a
// hold-to-dim physical controller. Up selects the direction; IgnoreStartLevel
// tells the receiving node to ignore StartLevel and use its current level.
type StartLevelChange struct {
	SeqNo                  uint8
	NodeID                 uint8
	Up                     bool
	IgnoreStartLevel       bool
	StartLevel             uint8
	DimmingDurationSeconds uint8

	retries int
}

// NewStartLevelChange constructs a StartLevelChange instance.
func NewStartLevelChange(seqNo uint8, nodeID uint8, up, ignoreStartLevel bool, startLevel, dimmingDurationSeconds uint8, retries int) *StartLevelChange {
	return &StartLevelChange{
		SeqNo: seqNo, NodeID: nodeID, Up: up, IgnoreStartLevel: ignoreStartLevel,
		StartLevel: startLevel, DimmingDurationSeconds: dimmingDurationSeconds, retries: retries,
	}
}

func (c *StartLevelChange) Encode() []byte {
	body, _ := zipframe.EncodeCommand(mapping.CommandClassSwitchMultilevel, cmdSwitchMultilevelStartLevelChange,
		zipframe.SwitchMultilevelStartLevelChange{
			Up:                     c.Up,
			IgnoreStartLevel:       c.IgnoreStartLevel,
			StartLevel:             c.StartLevel,
			DimmingDurationSeconds: c.DimmingDurationSeconds,
		})
	return body
}

func (c *StartLevelChange) HandleResponse(pkt *zipframe.Packet) Transition {
	t := AckDispatch(pkt, c.SeqNo, c.retries, false)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

// HandleTimeout decrements the remaining retry count and classifies the
// outcome.
func (c *StartLevelChange) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *StartLevelChange) PreStates() []Mode { return []Mode{ModeIdle, ModeConfiguringNewNode} }
func (c *StartLevelChange) ExecState() Mode   { return ModeNone }

// StopLevelChange halts an ongoing StartLevelChange.
type StopLevelChange struct {
	SeqNo   uint8
	NodeID  uint8
	retries int
}

// NewStopLevelChange constructs a StopLevelChange instance.
func NewStopLevelChange(seqNo uint8, nodeID uint8, retries int) *StopLevelChange {
	return &StopLevelChange{SeqNo: seqNo, NodeID: nodeID, retries: retries}
}

func (c *StopLevelChange) Encode() []byte {
	return []byte{mapping.CommandClassSwitchMultilevel, cmdSwitchMultilevelStopLevelChange}
}

func (c *StopLevelChange) HandleResponse(pkt *zipframe.Packet) Transition {
	t := AckDispatch(pkt, c.SeqNo, c.retries, false)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

// HandleTimeout decrements the remaining retry count and classifies the
// outcome.
func (c *StopLevelChange) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *StopLevelChange) PreStates() []Mode { return []Mode{ModeIdle, ModeConfiguringNewNode} }
func (c *StopLevelChange) ExecState() Mode   { return ModeNone }
