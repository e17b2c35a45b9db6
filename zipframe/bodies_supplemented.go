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

// ClockReport is the decoded 0x81 0x06 report: weekday packed with hour,
// plus minute, matching the Z-Wave Clock command class layout. Supplemented
// beyond the distilled report list.
type ClockReport struct {
	Weekday uint8
	Hour    uint8
	Minute  uint8
}

func decodeClockReport(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: clock_report too short")
	}
	return ClockReport{
		Weekday: (b[0] >> 5) & 0x07,
		Hour:    b[0] & 0x1F,
		Minute:  b[1],
	}, nil
}

func encodeClockReport(report any) ([]byte, error) {
	r, ok := report.(ClockReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeClockReport: wrong type %T", report)
	}
	return []byte{(r.Weekday&0x07)<<5 | (r.Hour & 0x1F), r.Minute}, nil
}

// Character presentation encodings for NamingReport/LocationReport.
const (
	characterPresentationASCII         uint8 = 0x00
	characterPresentationExtendedASCII uint8 = 0x01
	characterPresentationUTF16         uint8 = 0x02
)

// maxNamingAndLocationLength is the maximum byte length of a name or
// location string.
const maxNamingAndLocationLength = 16

// NamingReport is the decoded 0x77 0x03 name_report: the character
// presentation byte and the node name bytes that follow it, taken from a
// single report. A UTF-16 presentation is rejected as a decode error.
// Supplemented beyond the distilled report list.
type NamingReport struct {
	CharacterPresentation uint8
	Name                  string
}

func decodeNamingReport(b []byte) (any, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("zipframe: name_report too short")
	}
	presentation := b[0] & 0x07
	if presentation == characterPresentationUTF16 {
		return nil, fmt.Errorf("zipframe: name_report: utf16 encoding not supported")
	}
	return NamingReport{
		CharacterPresentation: presentation,
		Name:                  string(b[1:]),
	}, nil
}

func encodeNamingReport(report any) ([]byte, error) {
	r, ok := report.(NamingReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeNamingReport: wrong type %T", report)
	}
	if len(r.Name) > maxNamingAndLocationLength {
		return nil, fmt.Errorf("zipframe: name is too long: max is %d bytes", maxNamingAndLocationLength)
	}
	out := []byte{r.CharacterPresentation & 0x07}
	return append(out, []byte(r.Name)...), nil
}

// LocationReport is the decoded 0x77 0x06 location_report. Supplemented
// beyond the distilled report list, same shape as NamingReport.
type LocationReport struct {
	CharacterPresentation uint8
	Location              string
}

func decodeLocationReport(b []byte) (any, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("zipframe: location_report too short")
	}
	presentation := b[0] & 0x07
	if presentation == characterPresentationUTF16 {
		return nil, fmt.Errorf("zipframe: location_report: utf16 encoding not supported")
	}
	return LocationReport{
		CharacterPresentation: presentation,
		Location:              string(b[1:]),
	}, nil
}

func encodeLocationReport(report any) ([]byte, error) {
	r, ok := report.(LocationReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeLocationReport: wrong type %T", report)
	}
	if len(r.Location) > maxNamingAndLocationLength {
		return nil, fmt.Errorf("zipframe: location is too long: max is %d bytes", maxNamingAndLocationLength)
	}
	out := []byte{r.CharacterPresentation & 0x07}
	return append(out, []byte(r.Location)...), nil
}

// SwitchMultilevelStartLevelChange is the decoded 0x26 0x04
// start_level_change command: direction plus an optional target dimming
// rate, used by physical controllers (hold-to-dim) and supplemented here
// beyond the distilled report list since a full dimmer client needs it.
type SwitchMultilevelStartLevelChange struct {
	Up          bool
	IgnoreStartLevel bool
	StartLevel  uint8
	DimmingDurationSeconds uint8
}

func decodeSwitchMultilevelStartLevelChange(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: start_level_change too short")
	}
	r := SwitchMultilevelStartLevelChange{
		Up:               b[0]&0x40 != 0,
		IgnoreStartLevel: b[0]&0x20 != 0,
		StartLevel:       b[1],
	}
	if len(b) >= 3 {
		r.DimmingDurationSeconds = b[2]
	}
	return r, nil
}

func encodeSwitchMultilevelStartLevelChange(report any) ([]byte, error) {
	r, ok := report.(SwitchMultilevelStartLevelChange)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeSwitchMultilevelStartLevelChange: wrong type %T", report)
	}
	var flag uint8
	if r.Up {
		flag |= 0x40
	}
	if r.IgnoreStartLevel {
		flag |= 0x20
	}
	return []byte{flag, r.StartLevel, r.DimmingDurationSeconds}, nil
}

// SwitchMultilevelStopLevelChange is the decoded 0x26 0x05
// stop_level_change command. It carries no payload.
type SwitchMultilevelStopLevelChange struct{}

func decodeSwitchMultilevelStopLevelChange(b []byte) (any, error) {
	return SwitchMultilevelStopLevelChange{}, nil
}

func encodeSwitchMultilevelStopLevelChange(report any) ([]byte, error) {
	return nil, nil
}

func init() {
	register(mapping.CommandClassClock, 0x06, decodeClockReport, encodeClockReport)
	register(mapping.CommandClassNodeNamingAndLocation, 0x03, decodeNamingReport, encodeNamingReport)
	register(mapping.CommandClassNodeNamingAndLocation, 0x06, decodeLocationReport, encodeLocationReport)
	register(mapping.CommandClassSwitchMultilevel, 0x04,
		decodeSwitchMultilevelStartLevelChange, encodeSwitchMultilevelStartLevelChange)
	register(mapping.CommandClassSwitchMultilevel, 0x05,
		decodeSwitchMultilevelStopLevelChange, encodeSwitchMultilevelStopLevelChange)
}
