// Package dsk converts between a Z-Wave Device Specific Key's binary and
// human-presented forms: 16 bytes, grouped as eight big-endian 16-bit
// chunks and rendered as dash-separated five-digit decimal groups.
package dsk

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Length is the size in bytes of a DSK.
const Length = 16

// groupCount is the number of five-digit decimal groups in the string form.
const groupCount = Length / 2

// ErrBadFormat is returned by Parse when the string is not eight
// dash-separated five-digit decimal groups.
var ErrBadFormat = fmt.Errorf("dsk: bad format, expected %d dash-separated 5-digit groups", groupCount)

// String renders a 16-byte DSK as
// "NNNNN-NNNNN-NNNNN-NNNNN-NNNNN-NNNNN-NNNNN-NNNNN". An empty byte slice
// renders as the empty string.
func String(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	if len(b) != Length {
		return "", fmt.Errorf("dsk: bad length %d != %d", len(b), Length)
	}

	groups := make([]string, groupCount)
	for i := 0; i < groupCount; i++ {
		chunk := binary.BigEndian.Uint16(b[i*2 : i*2+2])
		groups[i] = fmt.Sprintf("%05d", chunk)
	}
	return strings.Join(groups, "-"), nil
}

// Parse converts a dash-grouped decimal DSK string back to 16 bytes. The
// empty string parses to an empty (nil) byte slice.
func Parse(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	groups := strings.Split(s, "-")
	if len(groups) != groupCount {
		return nil, ErrBadFormat
	}

	out := make([]byte, Length)
	for i, g := range groups {
		if len(g) != 5 {
			return nil, ErrBadFormat
		}
		v, err := strconv.ParseUint(g, 10, 32)
		if err != nil || v > 0xFFFF {
			return nil, ErrBadFormat
		}
		binary.BigEndian.PutUint16(out[i*2:i*2+2], uint16(v))
	}
	return out, nil
}
