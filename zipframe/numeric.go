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
	"math"

	"github.com/cybojanek/zwaveip/mapping"
)

// decodeSignedInt decodes a big-endian, sign-extended integer of 1, 2, or 4
// bytes. Any other size is a decode error — never a panic.
func decodeSignedInt(b []byte) (int32, error) {
	switch len(b) {
	case 1:
		return int32(int8(b[0])), nil
	case 2:
		return int32(int16(uint16(b[0])<<8 | uint16(b[1]))), nil
	case 4:
		v := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
		return int32(v), nil
	default:
		return 0, fmt.Errorf("zipframe: bad signed int size %d, want 1, 2, or 4", len(b))
	}
}

// encodeSignedInt is the inverse of decodeSignedInt.
func encodeSignedInt(v int32, size int) ([]byte, error) {
	switch size {
	case 1:
		if v < math.MinInt8 || v > math.MaxInt8 {
			return nil, fmt.Errorf("zipframe: value %d out of range for 1 byte", v)
		}
		return []byte{byte(int8(v))}, nil
	case 2:
		if v < math.MinInt16 || v > math.MaxInt16 {
			return nil, fmt.Errorf("zipframe: value %d out of range for 2 bytes", v)
		}
		u := uint16(int16(v))
		return []byte{byte(u >> 8), byte(u)}, nil
	case 4:
		u := uint32(v)
		return []byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}, nil
	default:
		return nil, fmt.Errorf("zipframe: bad signed int size %d, want 1, 2, or 4", size)
	}
}

// PrecisionScaleSize is the decoded (precision, scale, size) triple that
// prefixes many Z-Wave floating point fields: precision(3) scale(2) size(3),
// packed MSB-first into one byte.
type PrecisionScaleSize struct {
	Precision uint8
	Scale     uint8
	Size      uint8
}

// decodePrecisionScaleSize unpacks the precision/scale/size byte.
func decodePrecisionScaleSize(b byte) PrecisionScaleSize {
	return PrecisionScaleSize{
		Precision: (b >> 5) & 0x7,
		Scale:     (b >> 3) & 0x3,
		Size:      b & 0x7,
	}
}

// encode packs the triple back into its single byte form.
func (p PrecisionScaleSize) encode() byte {
	return (p.Precision&0x7)<<5 | (p.Scale&0x3)<<3 | (p.Size & 0x7)
}

// ScaledValue is a value decoded from a precision/scale/size field: the raw
// signed integer, the precision it was scaled by, the scale it was reported
// in, and the rounded convenience Level a caller can use directly. Both the
// raw reading and its rounding are both kept so callers can use whichever
// fits.
type ScaledValue struct {
	Raw       int32
	Precision uint8
	Scale     uint8
	Level     int32
}

// decodeScaledValue decodes a precision/scale/size byte followed by its
// `size`-byte signed integer body, returning the value and the number of
// bytes consumed (1 + size).
func decodeScaledValue(b []byte) (ScaledValue, int, error) {
	if len(b) < 1 {
		return ScaledValue{}, 0, fmt.Errorf("zipframe: empty precision/scale/size field")
	}

	pss := decodePrecisionScaleSize(b[0])
	if int(pss.Size)+1 > len(b) {
		return ScaledValue{}, 0, fmt.Errorf("zipframe: scaled value truncated: need %d bytes, have %d",
			pss.Size, len(b)-1)
	}

	raw, err := decodeSignedInt(b[1 : 1+int(pss.Size)])
	if err != nil {
		return ScaledValue{}, 0, err
	}

	scale := math.Pow(10, -float64(pss.Precision))
	level := int32(math.Round(float64(raw) * scale))

	return ScaledValue{
		Raw:       raw,
		Precision: pss.Precision,
		Scale:     pss.Scale,
		Level:     level,
	}, 1 + int(pss.Size), nil
}

// encodeScaledValue is the inverse of decodeScaledValue: packs raw at the
// given precision/scale/size into wire bytes.
func encodeScaledValue(raw int32, precision uint8, scale uint8, size uint8) ([]byte, error) {
	pss := PrecisionScaleSize{Precision: precision, Scale: scale, Size: size}
	body, err := encodeSignedInt(raw, int(size))
	if err != nil {
		return nil, err
	}
	return append([]byte{pss.encode()}, body...), nil
}

// nodeListLength is the number of bytes in a bitmask covering node ids
// 1..232.
const nodeListLength = 29

// decodeNodeListBitmask unmasks a 29-byte bitmask into the sorted list of
// present node ids. Bit numbering is LSB-first within each byte: bit k of
// byte b (0-indexed) means node b*8+k+1 is present.
func decodeNodeListBitmask(b []byte) ([]uint8, error) {
	if len(b) != nodeListLength {
		return nil, fmt.Errorf("zipframe: bad node list bitmask length %d != %d", len(b), nodeListLength)
	}

	var nodes []uint8
	for byteIndex, x := range b {
		for bit := 0; bit < 8; bit++ {
			if x&(1<<uint(bit)) != 0 {
				nodes = append(nodes, uint8(byteIndex*8+bit+1))
			}
		}
	}
	return nodes, nil
}

// encodeNodeListBitmask is the inverse of decodeNodeListBitmask.
func encodeNodeListBitmask(nodes []uint8) ([]byte, error) {
	out := make([]byte, nodeListLength)
	for _, n := range nodes {
		if !mapping.IsValidNodeID(n) {
			return nil, fmt.Errorf("zipframe: node id %d out of range 1..232", n)
		}
		idx := int(n-1) / 8
		bit := int(n-1) % 8
		out[idx] |= 1 << uint(bit)
	}
	return out, nil
}

// parseCommandClassList decodes a trailing variable-length command class
// list. Marker bytes 0x00, 0xEF (supported/controlled separator), and 0xF1
// (extended command class escape prefix) are skipped rather than emitted.
// Input order is preserved.
func parseCommandClassList(b []byte) []mapping.Symbol {
	var out []mapping.Symbol
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case 0x00, 0xEF, 0xF1:
			continue
		default:
			out = append(out, mapping.CommandClass(b[i]))
		}
	}
	return out
}
