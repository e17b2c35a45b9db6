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
	"fmt"

	"github.com/cybojanek/zwaveip/mapping"
	"github.com/cybojanek/zwaveip/zipframe"
)

// Clock command bytes (Z-Wave Clock command class).
const (
	cmdClockSet    uint8 = 0x04
	cmdClockGet    uint8 = 0x05
	cmdClockReport uint8 = 0x06
)

// ClockGet reads a node's weekday/hour/minute clock.
type ClockGet struct {
	SeqNo   uint8
	NodeID  uint8
	retries int
}

// NewClockGet constructs a ClockGet instance.
func NewClockGet(seqNo uint8, nodeID uint8, retries int) *ClockGet {
	return &ClockGet{SeqNo: seqNo, NodeID: nodeID, retries: retries}
}

func (c *ClockGet) Encode() []byte {
	return []byte{mapping.CommandClassClock, cmdClockGet}
}

func (c *ClockGet) HandleResponse(pkt *zipframe.Packet) Transition {
	if len(pkt.Body) >= 2 && pkt.Body[0] == mapping.CommandClassClock && pkt.Body[1] == cmdClockReport {
		if pkt.Command != nil && pkt.Command.Report != nil {
			return DoneValue(pkt.Command.Report)
		}
	}
	t := AckDispatch(pkt, c.SeqNo, c.retries, false)
	if t.Kind == Retry {
		c.retries--
	}
	if t.Kind == Done && t.Err == nil {
		// Acked, but the report itself hasn't arrived yet.
		return ContinueTransition()
	}
	return t
}

// HandleTimeout decrements the remaining retry count and classifies the
// outcome.
func (c *ClockGet) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *ClockGet) PreStates() []Mode { return []Mode{ModeIdle, ModeConfiguringNewNode} }
func (c *ClockGet) ExecState() Mode   { return ModeNone }

// ClockSet sets a node's weekday/hour/minute clock. Weekday is 1 (Monday)
// through 7 (Sunday), hour is 0-23, minute is 0-59, mirroring the Clock
// command class layout.
type ClockSet struct {
	SeqNo   uint8
	NodeID  uint8
	Weekday uint8
	Hour    uint8
	Minute  uint8

	retries int
}

// NewClockSet constructs a ClockSet instance, validating the field ranges
// up front since Encode never fails.
func NewClockSet(seqNo uint8, nodeID uint8, weekday, hour, minute uint8, retries int) (*ClockSet, error) {
	if weekday < 1 || weekday > 7 {
		return nil, fmt.Errorf("command: clock weekday must be in [1, 7]: got %d", weekday)
	}
	if hour > 23 {
		return nil, fmt.Errorf("command: clock hour must be in [0, 23]: got %d", hour)
	}
	if minute > 59 {
		return nil, fmt.Errorf("command: clock minute must be in [0, 59]: got %d", minute)
	}
	return &ClockSet{SeqNo: seqNo, NodeID: nodeID, Weekday: weekday, Hour: hour, Minute: minute, retries: retries}, nil
}

func (c *ClockSet) Encode() []byte {
	return []byte{mapping.CommandClassClock, cmdClockSet, (c.Weekday&0x07)<<5 | (c.Hour & 0x1F), c.Minute}
}

func (c *ClockSet) HandleResponse(pkt *zipframe.Packet) Transition {
	t := AckDispatch(pkt, c.SeqNo, c.retries, false)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

// HandleTimeout decrements the remaining retry count and classifies the
// outcome.
func (c *ClockSet) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *ClockSet) PreStates() []Mode { return []Mode{ModeIdle, ModeConfiguringNewNode} }
func (c *ClockSet) ExecState() Mode   { return ModeNone }
