package zipframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeScaledValueMultilevelSensorVector(t *testing.T) {
	// body <<0x31, 0x05, 0x01, 0b001_00_010, 0x00, 0xC8>>, type=air
	// temperature (0x01), precision=1, scale=0, size=2, raw=200 -> level=20.
	body := []byte{0x01, 0b001_00_010, 0x00, 0xC8}
	cmd, err := DecodeCommand(append([]byte{0x31, 0x05}, body...))
	require.NoError(t, err)
	require.False(t, cmd.IsUnknown())

	report, ok := cmd.Report.(MultilevelSensorReport)
	require.True(t, ok)
	assert.Equal(t, uint8(0x01), report.SensorType)
	assert.Equal(t, uint8(1), report.Value.Precision)
	assert.Equal(t, uint8(0), report.Value.Scale)
	assert.EqualValues(t, 200, report.Value.Raw)
	assert.EqualValues(t, 20, report.Value.Level)
}

func TestNodeListBitmaskVector(t *testing.T) {
	// <<0x52, 0x02, 0x01, 0x00, 0x00, 0x05, 0x00, ...(27 zero bytes)>>
	// -> seq_no=1, status=0, node_list=[1, 3] (bits 0 and 2 of the first
	// mask byte).
	body := append([]byte{0x01, 0x00, 0x00}, append([]byte{0x05}, make([]byte, 28)...)...)
	cmd, err := DecodeCommand(append([]byte{0x52, 0x02}, body...))
	require.NoError(t, err)
	require.False(t, cmd.IsUnknown())

	report, ok := cmd.Report.(NodeListReport)
	require.True(t, ok)
	assert.EqualValues(t, 1, report.SeqNo)
	assert.EqualValues(t, 0, report.Status)
	assert.Equal(t, []uint8{1, 3}, report.NodeList)
}

func TestNodeListBitmaskRoundTrip(t *testing.T) {
	for _, nodes := range [][]uint8{
		nil,
		{1},
		{232},
		{1, 2, 3, 100, 200, 232},
	} {
		mask, err := encodeNodeListBitmask(nodes)
		require.NoError(t, err)
		require.Len(t, mask, nodeListLength)

		got, err := decodeNodeListBitmask(mask)
		require.NoError(t, err)
		assert.Equal(t, nodes, got)
	}
}

func TestScaledValueRoundTrip(t *testing.T) {
	for _, raw := range []int32{0, 1, -1, 200, -200, 32000, -32000} {
		encoded, err := encodeScaledValue(raw, 1, 0, 2)
		require.NoError(t, err)

		decoded, consumed, err := decodeScaledValue(encoded)
		require.NoError(t, err)
		assert.Equal(t, len(encoded), consumed)
		assert.Equal(t, raw, decoded.Raw)
	}
}
