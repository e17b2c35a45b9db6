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

// ConfigurationReport is the decoded 0x70 0x06 report: a parameter number
// and its signed big-endian value of the declared size.
type ConfigurationReport struct {
	Parameter uint8
	Size      uint8
	Value     int32
}

func decodeConfigurationReport(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: configuration_report too short: %d < 2", len(b))
	}
	size := b[1] & 0x07
	if len(b) < 2+int(size) {
		return nil, fmt.Errorf("zipframe: configuration_report truncated: %d < %d", len(b), 2+int(size))
	}
	value, err := decodeSignedInt(b[2 : 2+int(size)])
	if err != nil {
		return nil, err
	}
	return ConfigurationReport{Parameter: b[0], Size: size, Value: value}, nil
}

func encodeConfigurationReport(report any) ([]byte, error) {
	r, ok := report.(ConfigurationReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeConfigurationReport: wrong type %T", report)
	}
	valueBytes, err := encodeSignedInt(r.Value, int(r.Size))
	if err != nil {
		return nil, err
	}
	out := []byte{r.Parameter, r.Size & 0x07}
	return append(out, valueBytes...), nil
}

// ConfigurationBulkReport is the decoded 0x70 0x09 bulk report.
type ConfigurationBulkReport struct {
	ParameterOffset  uint16
	ReportsToFollow  uint8
	Default          bool
	Size             uint8
	Values           []int32
}

func decodeConfigurationBulkReport(b []byte) (any, error) {
	if len(b) < 5 {
		return nil, fmt.Errorf("zipframe: configuration_bulk_report too short: %d < 5", len(b))
	}
	offset := uint16(b[0])<<8 | uint16(b[1])
	count := int(b[2])
	toFollow := b[3]
	isDefault := b[4]&0x80 != 0
	size := b[4] & 0x07

	values := make([]int32, 0, count)
	pos := 5
	for i := 0; i < count; i++ {
		if pos+int(size) > len(b) {
			return nil, fmt.Errorf("zipframe: configuration_bulk_report truncated at value %d", i)
		}
		v, err := decodeSignedInt(b[pos : pos+int(size)])
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		pos += int(size)
	}

	return ConfigurationBulkReport{
		ParameterOffset: offset,
		ReportsToFollow: toFollow,
		Default:         isDefault,
		Size:            size,
		Values:          values,
	}, nil
}

func encodeConfigurationBulkReport(report any) ([]byte, error) {
	r, ok := report.(ConfigurationBulkReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeConfigurationBulkReport: wrong type %T", report)
	}
	flag := r.Size & 0x07
	if r.Default {
		flag |= 0x80
	}
	out := []byte{
		byte(r.ParameterOffset >> 8), byte(r.ParameterOffset),
		byte(len(r.Values)), r.ReportsToFollow, flag,
	}
	for _, v := range r.Values {
		vb, err := encodeSignedInt(v, int(r.Size))
		if err != nil {
			return nil, err
		}
		out = append(out, vb...)
	}
	return out, nil
}

// MeterReport is the decoded 0x32 0x02 report. The 3-bit scale is split
// across the 2-bit scale field of the precision/scale/size byte and a 1-bit
// high extension in bit 7 of the meter type byte, per the Z-Wave meter
// command class's 3-bit scale encoding.
type MeterReport struct {
	MeterType  uint8
	RateType   uint8
	Scale      uint8
	Value      ScaledValue
	DeltaTime  uint16
	PrevValue  *ScaledValue
}

func decodeMeterReport(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: meter_report too short: %d < 2", len(b))
	}
	meterType := b[0] & 0x1F
	rateType := (b[0] >> 5) & 0x03
	scaleHigh := (b[0] >> 7) & 0x01

	pss := decodePrecisionScaleSize(b[1])
	scale := pss.Scale | (scaleHigh << 2)

	value, consumed, err := decodeScaledValue(b[1:])
	if err != nil {
		return nil, err
	}

	r := MeterReport{
		MeterType: meterType,
		RateType:  rateType,
		Scale:     scale,
		Value:     value,
	}

	pos := 1 + consumed
	if pos+2 <= len(b) {
		r.DeltaTime = uint16(b[pos])<<8 | uint16(b[pos+1])
		pos += 2
		if pos < len(b) {
			prev, _, err := decodeScaledValue(b[pos:])
			if err == nil {
				r.PrevValue = &prev
			}
		}
	}

	return r, nil
}

func encodeMeterReport(report any) ([]byte, error) {
	r, ok := report.(MeterReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeMeterReport: wrong type %T", report)
	}
	scaleHigh := (r.Scale >> 2) & 0x01
	typeByte := (r.MeterType & 0x1F) | (r.RateType&0x03)<<5 | scaleHigh<<7

	valueBytes, err := encodeScaledValue(r.Value.Raw, r.Value.Precision, r.Scale&0x03, sizeForRaw(r.Value.Raw))
	if err != nil {
		return nil, err
	}
	out := append([]byte{typeByte}, valueBytes...)
	out = append(out, byte(r.DeltaTime>>8), byte(r.DeltaTime))
	if r.PrevValue != nil {
		prevBytes, err := encodeScaledValue(r.PrevValue.Raw, r.PrevValue.Precision, r.PrevValue.Scale, sizeForRaw(r.PrevValue.Raw))
		if err != nil {
			return nil, err
		}
		out = append(out, prevBytes...)
	}
	return out, nil
}

func init() {
	register(mapping.CommandClassConfiguration, mapping.CmdConfigurationReport,
		decodeConfigurationReport, encodeConfigurationReport)
	register(mapping.CommandClassConfiguration, mapping.CmdConfigurationBulkReport,
		decodeConfigurationBulkReport, encodeConfigurationBulkReport)
	register(mapping.CommandClassMeter, mapping.CmdMeterReport, decodeMeterReport, encodeMeterReport)
}
