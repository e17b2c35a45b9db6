package zipframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybojanek/zwaveip/mapping"
)

func TestDecodeCommandUnknownVector(t *testing.T) {
	// <<0xFE, 0xFE, 0x01, 0x02, 0x03>> -> unknown class and command, raw
	// payload preserved, decoder never errors.
	cmd, err := DecodeCommand([]byte{0xFE, 0xFE, 0x01, 0x02, 0x03})
	require.NoError(t, err)
	assert.True(t, cmd.IsUnknown())
	assert.True(t, cmd.CommandClass.Unknown)
	assert.True(t, cmd.Command.Unknown)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, cmd.Raw)
}

func TestDecodeCommandTooShortNeverErrorsFatally(t *testing.T) {
	// A body too short to even carry class/command is the one case
	// DecodeCommand itself rejects; Decode (the envelope-level entry
	// point) turns this into an unknown Command rather than propagating
	// the error.
	_, err := DecodeCommand([]byte{0x01})
	assert.Error(t, err)

	pkt, err := Decode(append(EncodeHeader(5, TypeSet(0)), 0x01))
	require.NoError(t, err)
	require.NotNil(t, pkt.Command)
	assert.True(t, pkt.Command.IsUnknown())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name         string
		commandClass uint8
		command      uint8
		report       any
	}{
		{"switch_binary_report", mapping.CommandClassSwitchBinary, mapping.CmdBasicReport,
			SwitchReport{On: true}},
		{"switch_multilevel_dimmer", mapping.CommandClassSwitchMultilevel, mapping.CmdBasicReport,
			SwitchReport{Level: 55}},
		{"basic_set", mapping.CommandClassBasic, mapping.CmdBasicSet,
			BasicSetReport{Value: SwitchReport{Level: 55}}},
		{"battery_report", mapping.CommandClassBattery, mapping.CmdBatteryReport,
			BatteryReport{Level: 80}},
		{"node_list_report", mapping.CommandClassNetworkManagementProxy, mapping.CmdNetworkManagementProxyNodeListReport,
			NodeListReport{SeqNo: 9, Status: 0, NodeList: []uint8{1, 5, 232}}},
		{"clock_report", mapping.CommandClassClock, 0x06,
			ClockReport{Weekday: 3, Hour: 14, Minute: 30}},
		{"configuration_report", mapping.CommandClassConfiguration, mapping.CmdConfigurationReport,
			ConfigurationReport{Parameter: 4, Value: -1, Size: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, err := EncodeCommand(tc.commandClass, tc.command, tc.report)
			require.NoError(t, err)

			cmd, err := DecodeCommand(body)
			require.NoError(t, err)
			require.False(t, cmd.IsUnknown())
			assert.Equal(t, tc.report, cmd.Report)

			reEncoded, err := EncodeCommand(tc.commandClass, tc.command, cmd.Report)
			require.NoError(t, err)
			assert.Equal(t, body, reEncoded)
		})
	}
}

func TestEnvelopeEncodeDecodeRoundTrip(t *testing.T) {
	body := []byte{0x25, 0x03, 0xFF}
	raw := Encode(42, TypeSet(AckRequest), body)

	pkt, err := Decode(raw)
	require.NoError(t, err)
	assert.EqualValues(t, 42, pkt.SeqNumber)
	assert.True(t, pkt.Types.Has(AckRequest))
	assert.Equal(t, body, pkt.Body)
	require.NotNil(t, pkt.Command)
	assert.False(t, pkt.Command.IsUnknown())
}
