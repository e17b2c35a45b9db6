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

// Multilevel Sensor supported-types/supported-scales command bytes.
const (
	cmdSensorSupportedTypesGet    uint8 = 0x01
	cmdSensorSupportedTypesReport uint8 = 0x02
	cmdSensorSupportedScalesGet   uint8 = 0x03
	cmdSensorSupportedScalesReport uint8 = 0x06
)

// GetSupportedSensorTypes enumerates the sensor types a multilevel sensor
// node reports on.
type GetSupportedSensorTypes struct {
	SeqNo   uint8
	NodeID  uint8
	retries int
}

// NewGetSupportedSensorTypes constructs a GetSupportedSensorTypes instance.
func NewGetSupportedSensorTypes(seqNo uint8, nodeID uint8, retries int) *GetSupportedSensorTypes {
	return &GetSupportedSensorTypes{SeqNo: seqNo, NodeID: nodeID, retries: retries}
}

func (c *GetSupportedSensorTypes) Encode() []byte {
	return []byte{mapping.CommandClassMultilevelSensor, cmdSensorSupportedTypesGet}
}

func (c *GetSupportedSensorTypes) HandleResponse(pkt *zipframe.Packet) Transition {
	if len(pkt.Body) >= 2 && pkt.Body[0] == mapping.CommandClassMultilevelSensor && pkt.Body[1] == cmdSensorSupportedTypesReport {
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
func (c *GetSupportedSensorTypes) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *GetSupportedSensorTypes) PreStates() []Mode { return []Mode{ModeIdle, ModeConfiguringNewNode} }
func (c *GetSupportedSensorTypes) ExecState() Mode   { return ModeNone }

// GetSupportedScaleTypes enumerates the scale indices a multilevel sensor
// node supports for one sensor type.
type GetSupportedScaleTypes struct {
	SeqNo      uint8
	NodeID     uint8
	SensorType uint8
	retries    int
}

// NewGetSupportedScaleTypes constructs a GetSupportedScaleTypes instance.
func NewGetSupportedScaleTypes(seqNo uint8, nodeID uint8, sensorType uint8, retries int) *GetSupportedScaleTypes {
	return &GetSupportedScaleTypes{SeqNo: seqNo, NodeID: nodeID, SensorType: sensorType, retries: retries}
}

func (c *GetSupportedScaleTypes) Encode() []byte {
	return []byte{mapping.CommandClassMultilevelSensor, cmdSensorSupportedScalesGet, c.SensorType}
}

func (c *GetSupportedScaleTypes) HandleResponse(pkt *zipframe.Packet) Transition {
	if len(pkt.Body) >= 2 && pkt.Body[0] == mapping.CommandClassMultilevelSensor && pkt.Body[1] == cmdSensorSupportedScalesReport {
		if pkt.Command != nil {
			if report, ok := pkt.Command.Report.(zipframe.SensorSupportedScalesReport); ok && report.SensorType == c.SensorType {
				return DoneValue(report)
			}
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
func (c *GetSupportedScaleTypes) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *GetSupportedScaleTypes) PreStates() []Mode { return []Mode{ModeIdle, ModeConfiguringNewNode} }
func (c *GetSupportedScaleTypes) ExecState() Mode   { return ModeNone }
