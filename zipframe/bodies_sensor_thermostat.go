package zipframe

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
)

// MultilevelSensorReport is the decoded 0x31 0x05 report: a sensor type byte
// followed by a precision/scale/size-encoded reading.
type MultilevelSensorReport struct {
	SensorType uint8
	Value      ScaledValue
}

func decodeMultilevelSensorReport(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: multilevel_sensor_report too short: %d < 2", len(b))
	}
	value, _, err := decodeScaledValue(b[1:])
	if err != nil {
		return nil, err
	}
	return MultilevelSensorReport{SensorType: b[0], Value: value}, nil
}

func encodeMultilevelSensorReport(report any) ([]byte, error) {
	r, ok := report.(MultilevelSensorReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeMultilevelSensorReport: wrong type %T", report)
	}
	tail, err := encodeScaledValue(r.Value.Raw, r.Value.Precision, r.Value.Scale, sizeForRaw(r.Value.Raw))
	if err != nil {
		return nil, err
	}
	return append([]byte{r.SensorType}, tail...), nil
}

// sizeForRaw picks the smallest of {1, 2, 4} that can hold v, mirroring how
// a sending implementation would choose a wire size for a value it only
// has as an already-scaled integer.
func sizeForRaw(v int32) uint8 {
	switch {
	case v >= -128 && v <= 127:
		return 1
	case v >= -32768 && v <= 32767:
		return 2
	default:
		return 4
	}
}

// SensorSupportedTypesReport is the decoded 0x31 0x02 supported-sensor-types
// report: a command-class-list-style bitmask of sensor type bytes that are
// valid for Get on this node. Supplemented beyond the base protocol subset
// (not present in the distilled report list, but real on the wire).
type SensorSupportedTypesReport struct {
	SensorTypes []uint8
}

func decodeSensorSupportedTypes(b []byte) (any, error) {
	var types []uint8
	for byteIndex, x := range b {
		for bit := 0; bit < 8; bit++ {
			if x&(1<<uint(bit)) != 0 {
				types = append(types, uint8(byteIndex*8+bit+1))
			}
		}
	}
	return SensorSupportedTypesReport{SensorTypes: types}, nil
}

func encodeSensorSupportedTypes(report any) ([]byte, error) {
	r, ok := report.(SensorSupportedTypesReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeSensorSupportedTypes: wrong type %T", report)
	}
	var maxType uint8
	for _, t := range r.SensorTypes {
		if t > maxType {
			maxType = t
		}
	}
	out := make([]byte, (int(maxType)+7)/8)
	for _, t := range r.SensorTypes {
		idx := int(t-1) / 8
		bit := int(t-1) % 8
		out[idx] |= 1 << uint(bit)
	}
	return out, nil
}

// SensorSupportedScalesReport is the decoded 0x31 0x06 supported-scales
// report for a single sensor type: bitmask of supported scale indices (0..3).
type SensorSupportedScalesReport struct {
	SensorType uint8
	Scales     []uint8
}

func decodeSensorSupportedScales(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: sensor_supported_scales_report too short")
	}
	var scales []uint8
	mask := b[1] & 0x0F
	for bit := uint8(0); bit < 4; bit++ {
		if mask&(1<<bit) != 0 {
			scales = append(scales, bit)
		}
	}
	return SensorSupportedScalesReport{SensorType: b[0], Scales: scales}, nil
}

func encodeSensorSupportedScales(report any) ([]byte, error) {
	r, ok := report.(SensorSupportedScalesReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeSensorSupportedScales: wrong type %T", report)
	}
	var mask uint8
	for _, s := range r.Scales {
		mask |= 1 << s
	}
	return []byte{r.SensorType, mask}, nil
}

// ThermostatModeReport is the decoded report shared by the 0x40 0x03
// thermostat_mode_report command.
type ThermostatModeReport struct {
	Mode uint8
}

func decodeThermostatMode(b []byte) (any, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("zipframe: thermostat_mode_report too short")
	}
	return ThermostatModeReport{Mode: b[0] & 0x1F}, nil
}

func encodeThermostatMode(report any) ([]byte, error) {
	r, ok := report.(ThermostatModeReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeThermostatMode: wrong type %T", report)
	}
	return []byte{r.Mode & 0x1F}, nil
}

// ThermostatSetpointReport is the decoded 0x43 0x03 report: a setpoint type
// byte followed by the same precision/scale/size encoding as a sensor
// reading.
type ThermostatSetpointReport struct {
	SetpointType uint8
	Value        ScaledValue
}

func decodeThermostatSetpoint(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: thermostat_setpoint_report too short")
	}
	value, _, err := decodeScaledValue(b[1:])
	if err != nil {
		return nil, err
	}
	return ThermostatSetpointReport{SetpointType: b[0] & 0x0F, Value: value}, nil
}

func encodeThermostatSetpoint(report any) ([]byte, error) {
	r, ok := report.(ThermostatSetpointReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeThermostatSetpoint: wrong type %T", report)
	}
	tail, err := encodeScaledValue(r.Value.Raw, r.Value.Precision, r.Value.Scale, sizeForRaw(r.Value.Raw))
	if err != nil {
		return nil, err
	}
	return append([]byte{r.SetpointType & 0x0F}, tail...), nil
}

// ThermostatFanModeReport is the decoded 0x44 0x03 report.
type ThermostatFanModeReport struct {
	FanMode uint8
}

func decodeThermostatFanMode(b []byte) (any, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("zipframe: thermostat_fan_mode_report too short")
	}
	return ThermostatFanModeReport{FanMode: b[0] & 0x0F}, nil
}

func encodeThermostatFanMode(report any) ([]byte, error) {
	r, ok := report.(ThermostatFanModeReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeThermostatFanMode: wrong type %T", report)
	}
	return []byte{r.FanMode & 0x0F}, nil
}

// ThermostatFanStateReport is the decoded 0x45 0x03 report.
type ThermostatFanStateReport struct {
	FanState uint8
}

func decodeThermostatFanState(b []byte) (any, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("zipframe: thermostat_fan_state_report too short")
	}
	return ThermostatFanStateReport{FanState: b[0] & 0x0F}, nil
}

func encodeThermostatFanState(report any) ([]byte, error) {
	r, ok := report.(ThermostatFanStateReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeThermostatFanState: wrong type %T", report)
	}
	return []byte{r.FanState & 0x0F}, nil
}

// ThermostatSetbackReport is the decoded 0x47 0x03 report: a setback type
// and a signed setback-state byte measured in 1/10ths of a degree, per the
// Z-Wave thermostat setback command class, with special values RTFS (0x79)
// and no_override (0x80) left as raw for callers to interpret.
type ThermostatSetbackReport struct {
	SetbackType uint8
	State       int8
}

func decodeThermostatSetback(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: thermostat_setback_report too short")
	}
	return ThermostatSetbackReport{SetbackType: b[0] & 0x03, State: int8(b[1])}, nil
}

func encodeThermostatSetback(report any) ([]byte, error) {
	r, ok := report.(ThermostatSetbackReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeThermostatSetback: wrong type %T", report)
	}
	return []byte{r.SetbackType & 0x03, byte(r.State)}, nil
}

func init() {
	register(mapping.CommandClassMultilevelSensor, mapping.CmdMultilevelSensorReport,
		decodeMultilevelSensorReport, encodeMultilevelSensorReport)
	register(mapping.CommandClassMultilevelSensor, 0x02, decodeSensorSupportedTypes, encodeSensorSupportedTypes)
	register(mapping.CommandClassMultilevelSensor, 0x06, decodeSensorSupportedScales, encodeSensorSupportedScales)

	register(mapping.CommandClassThermostatMode, 0x03, decodeThermostatMode, encodeThermostatMode)
	register(mapping.CommandClassThermostatSetpoint, 0x03, decodeThermostatSetpoint, encodeThermostatSetpoint)
	register(mapping.CommandClassThermostatFanMode, 0x03, decodeThermostatFanMode, encodeThermostatFanMode)
	register(mapping.CommandClassThermostatFanState, 0x03, decodeThermostatFanState, encodeThermostatFanState)
	register(mapping.CommandClassThermostatSetback, 0x03, decodeThermostatSetback, encodeThermostatSetback)
}
