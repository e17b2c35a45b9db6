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

// NamingAndLocation command bytes.
const (
	cmdNamingSet      uint8 = 0x01
	cmdNamingGet      uint8 = 0x02
	cmdNamingReport   uint8 = 0x03
	cmdLocationSet    uint8 = 0x04
	cmdLocationGet    uint8 = 0x05
	cmdLocationReport uint8 = 0x06

	characterPresentationASCII uint8 = 0x00

	maxNamingAndLocationLength = 16
)

// GetName reads a node's user-assigned name.
type GetName struct {
	SeqNo   uint8
	NodeID  uint8
	retries int
}

// NewGetName constructs a GetName instance.
func NewGetName(seqNo uint8, nodeID uint8, retries int) *GetName {
	return &GetName{SeqNo: seqNo, NodeID: nodeID, retries: retries}
}

func (c *GetName) Encode() []byte {
	return []byte{mapping.CommandClassNodeNamingAndLocation, cmdNamingGet}
}

func (c *GetName) HandleResponse(pkt *zipframe.Packet) Transition {
	if len(pkt.Body) >= 2 && pkt.Body[0] == mapping.CommandClassNodeNamingAndLocation && pkt.Body[1] == cmdNamingReport {
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
func (c *GetName) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *GetName) PreStates() []Mode { return []Mode{ModeIdle, ModeConfiguringNewNode} }
func (c *GetName) ExecState() Mode   { return ModeNone }

// SetName assigns a node's user-visible name, ASCII-encoded and capped at
// 16 bytes.
type SetName struct {
	SeqNo   uint8
	NodeID  uint8
	Name    string
	retries int
}

// NewSetName constructs a SetName instance, validating the name length up
// front since Encode never fails.
func NewSetName(seqNo uint8, nodeID uint8, name string, retries int) (*SetName, error) {
	if len(name) > maxNamingAndLocationLength {
		return nil, fmt.Errorf("command: name is too long: max is %d bytes", maxNamingAndLocationLength)
	}
	for i := 0; i < len(name); i++ {
		if name[i] > 0x7F {
			return nil, fmt.Errorf("command: name must be ASCII")
		}
	}
	return &SetName{SeqNo: seqNo, NodeID: nodeID, Name: name, retries: retries}, nil
}

func (c *SetName) Encode() []byte {
	out := []byte{mapping.CommandClassNodeNamingAndLocation, cmdNamingSet, characterPresentationASCII}
	return append(out, []byte(c.Name)...)
}

func (c *SetName) HandleResponse(pkt *zipframe.Packet) Transition {
	t := AckDispatch(pkt, c.SeqNo, c.retries, false)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

// HandleTimeout decrements the remaining retry count and classifies the
// outcome.
func (c *SetName) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *SetName) PreStates() []Mode { return []Mode{ModeIdle, ModeConfiguringNewNode} }
func (c *SetName) ExecState() Mode   { return ModeNone }

// GetLocation reads a node's user-assigned location string.
type GetLocation struct {
	SeqNo   uint8
	NodeID  uint8
	retries int
}

// NewGetLocation constructs a GetLocation instance.
func NewGetLocation(seqNo uint8, nodeID uint8, retries int) *GetLocation {
	return &GetLocation{SeqNo: seqNo, NodeID: nodeID, retries: retries}
}

func (c *GetLocation) Encode() []byte {
	return []byte{mapping.CommandClassNodeNamingAndLocation, cmdLocationGet}
}

func (c *GetLocation) HandleResponse(pkt *zipframe.Packet) Transition {
	if len(pkt.Body) >= 2 && pkt.Body[0] == mapping.CommandClassNodeNamingAndLocation && pkt.Body[1] == cmdLocationReport {
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
func (c *GetLocation) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *GetLocation) PreStates() []Mode { return []Mode{ModeIdle, ModeConfiguringNewNode} }
func (c *GetLocation) ExecState() Mode   { return ModeNone }

// SetLocation assigns a node's user-visible location, ASCII-encoded and
// capped at 16 bytes.
type SetLocation struct {
	SeqNo    uint8
	NodeID   uint8
	Location string
	retries  int
}

// NewSetLocation constructs a SetLocation instance, validating the location
// length up front since Encode never fails.
func NewSetLocation(seqNo uint8, nodeID uint8, location string, retries int) (*SetLocation, error) {
	if len(location) > maxNamingAndLocationLength {
		return nil, fmt.Errorf("command: location is too long: max is %d bytes", maxNamingAndLocationLength)
	}
	for i := 0; i < len(location); i++ {
		if location[i] > 0x7F {
			return nil, fmt.Errorf("command: location must be ASCII")
		}
	}
	return &SetLocation{SeqNo: seqNo, NodeID: nodeID, Location: location, retries: retries}, nil
}

func (c *SetLocation) Encode() []byte {
	out := []byte{mapping.CommandClassNodeNamingAndLocation, cmdLocationSet, characterPresentationASCII}
	return append(out, []byte(c.Location)...)
}

func (c *SetLocation) HandleResponse(pkt *zipframe.Packet) Transition {
	t := AckDispatch(pkt, c.SeqNo, c.retries, false)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

// HandleTimeout decrements the remaining retry count and classifies the
// outcome.
func (c *SetLocation) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *SetLocation) PreStates() []Mode { return []Mode{ModeIdle, ModeConfiguringNewNode} }
func (c *SetLocation) ExecState() Mode   { return ModeNone }
