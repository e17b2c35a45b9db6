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

// Wire values for the Basic/SwitchBinary/SwitchMultilevel value byte.
const (
	switchValueOff     uint8 = 0x00
	switchValueOnFull  uint8 = 0xFF
	switchValueUnknown uint8 = 0xFE
)

// SwitchReport is the decoded value byte shared by Basic, SwitchBinary, and
// SwitchMultilevel reports: either off, on, unknown, or (for multilevel) a
// dimmer percentage 1..99.
type SwitchReport struct {
	Off     bool
	On      bool
	Unknown bool
	Level   uint8 // dimmer percentage, meaningful only when neither Off/On/Unknown
}

func decodeSwitchValue(v uint8) SwitchReport {
	switch {
	case v == switchValueOff:
		return SwitchReport{Off: true}
	case v == switchValueOnFull:
		return SwitchReport{On: true}
	case v == switchValueUnknown:
		return SwitchReport{Unknown: true}
	default:
		return SwitchReport{Level: v}
	}
}

func encodeSwitchValue(r SwitchReport) uint8 {
	switch {
	case r.Off:
		return switchValueOff
	case r.On:
		return switchValueOnFull
	case r.Unknown:
		return switchValueUnknown
	default:
		return r.Level
	}
}

func decodeSwitchReport(b []byte) (any, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("zipframe: switch report too short")
	}
	return decodeSwitchValue(b[0]), nil
}

func encodeSwitchReport(report any) ([]byte, error) {
	r, ok := report.(SwitchReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeSwitchReport: wrong type %T", report)
	}
	return []byte{encodeSwitchValue(r)}, nil
}

// BasicSetReport mirrors a basic_set command's target value.
type BasicSetReport struct {
	Value SwitchReport
}

func decodeBasicSet(b []byte) (any, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("zipframe: basic_set too short")
	}
	return BasicSetReport{Value: decodeSwitchValue(b[0])}, nil
}

func encodeBasicSet(report any) ([]byte, error) {
	r, ok := report.(BasicSetReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeBasicSet: wrong type %T", report)
	}
	return []byte{encodeSwitchValue(r.Value)}, nil
}

func init() {
	register(mapping.CommandClassBasic, mapping.CmdBasicSet, decodeBasicSet, encodeBasicSet)
	register(mapping.CommandClassBasic, mapping.CmdBasicReport, decodeSwitchReport, encodeSwitchReport)
	register(mapping.CommandClassSwitchBinary, mapping.CmdBasicReport, decodeSwitchReport, encodeSwitchReport)
	register(mapping.CommandClassSwitchMultilevel, mapping.CmdBasicReport, decodeSwitchReport, encodeSwitchReport)
}
