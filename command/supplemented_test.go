package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybojanek/zwaveip/mapping"
	"github.com/cybojanek/zwaveip/zipframe"
)

func TestClockSetValidatesRanges(t *testing.T) {
	_, err := NewClockSet(1, 9, 0, 10, 0, 2)
	assert.Error(t, err)
	_, err = NewClockSet(1, 9, 3, 24, 0, 2)
	assert.Error(t, err)
	_, err = NewClockSet(1, 9, 3, 10, 60, 2)
	assert.Error(t, err)

	c, err := NewClockSet(1, 9, 3, 14, 30, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{mapping.CommandClassClock, cmdClockSet, (3 << 5) | 14, 30}, c.Encode())
}

func TestClockGetEncode(t *testing.T) {
	c := NewClockGet(1, 9, 2)
	assert.Equal(t, []byte{mapping.CommandClassClock, cmdClockGet}, c.Encode())
}

func TestClockGetMatchesReport(t *testing.T) {
	c := NewClockGet(5, 9, 2)
	body, err := zipframe.EncodeCommand(mapping.CommandClassClock, cmdClockReport,
		zipframe.ClockReport{Weekday: 3, Hour: 14, Minute: 30})
	require.NoError(t, err)
	cmd, err := zipframe.DecodeCommand(body)
	require.NoError(t, err)

	tr := c.HandleResponse(&zipframe.Packet{SeqNumber: 5, Body: body, Command: cmd})
	require.Equal(t, Done, tr.Kind)
	assert.Equal(t, zipframe.ClockReport{Weekday: 3, Hour: 14, Minute: 30}, tr.Report)
}

func TestSetNameRejectsOverlongName(t *testing.T) {
	_, err := NewSetName(1, 9, "this name is far too long to fit", 2)
	assert.Error(t, err)
}

func TestSetNameEncode(t *testing.T) {
	c, err := NewSetName(1, 9, "kitchen", 2)
	require.NoError(t, err)
	assert.Equal(t, append([]byte{mapping.CommandClassNodeNamingAndLocation, cmdNamingSet, characterPresentationASCII},
		[]byte("kitchen")...), c.Encode())
}

func TestGetNameMatchesReport(t *testing.T) {
	c := NewGetName(5, 9, 2)
	body, err := zipframe.EncodeCommand(mapping.CommandClassNodeNamingAndLocation, cmdNamingReport,
		zipframe.NamingReport{CharacterPresentation: characterPresentationASCII, Name: "kitchen"})
	require.NoError(t, err)
	cmd, err := zipframe.DecodeCommand(body)
	require.NoError(t, err)

	tr := c.HandleResponse(&zipframe.Packet{SeqNumber: 5, Body: body, Command: cmd})
	require.Equal(t, Done, tr.Kind)
	assert.Equal(t, zipframe.NamingReport{CharacterPresentation: characterPresentationASCII, Name: "kitchen"}, tr.Report)
}

func TestSetLocationRejectsOverlongLocation(t *testing.T) {
	_, err := NewSetLocation(1, 9, "this location string is way too long", 2)
	assert.Error(t, err)
}

func TestGetVersionEncode(t *testing.T) {
	c := NewGetVersion(1, 9, 2)
	assert.Equal(t, []byte{mapping.CommandClassVersion, cmdVersionGet}, c.Encode())
}

func TestGetVersionMatchesReport(t *testing.T) {
	c := NewGetVersion(5, 9, 2)
	report := zipframe.WholeNodeVersionReport{
		LibraryType: 1, ProtocolVersion: 6, ProtocolSubVersion: 0, AppVersion: 1, AppSubVersion: 2,
	}
	body, err := zipframe.EncodeCommand(mapping.CommandClassVersion, cmdVersionReport, report)
	require.NoError(t, err)
	cmd, err := zipframe.DecodeCommand(body)
	require.NoError(t, err)

	tr := c.HandleResponse(&zipframe.Packet{SeqNumber: 5, Body: body, Command: cmd})
	require.Equal(t, Done, tr.Kind)
	assert.Equal(t, report, tr.Report)
}

func TestStartLevelChangeEncodeRoundTrips(t *testing.T) {
	c := NewStartLevelChange(1, 9, true, false, 0, 5, 2)
	body := c.Encode()

	cmd, err := zipframe.DecodeCommand(body)
	require.NoError(t, err)
	assert.Equal(t, zipframe.SwitchMultilevelStartLevelChange{Up: true, DimmingDurationSeconds: 5}, cmd.Report)
}

func TestStopLevelChangeEncode(t *testing.T) {
	c := NewStopLevelChange(1, 9, 2)
	assert.Equal(t, []byte{mapping.CommandClassSwitchMultilevel, cmdSwitchMultilevelStopLevelChange}, c.Encode())
}

func TestGetSupportedSensorTypesMatchesReport(t *testing.T) {
	c := NewGetSupportedSensorTypes(5, 9, 2)
	body, err := zipframe.EncodeCommand(mapping.CommandClassMultilevelSensor, cmdSensorSupportedTypesReport,
		zipframe.SensorSupportedTypesReport{SensorTypes: []uint8{1, 3}})
	require.NoError(t, err)
	cmd, err := zipframe.DecodeCommand(body)
	require.NoError(t, err)

	tr := c.HandleResponse(&zipframe.Packet{SeqNumber: 5, Body: body, Command: cmd})
	require.Equal(t, Done, tr.Kind)
	assert.Equal(t, zipframe.SensorSupportedTypesReport{SensorTypes: []uint8{1, 3}}, tr.Report)
}

func TestGetSupportedScaleTypesMatchesReportForRequestedSensorType(t *testing.T) {
	c := NewGetSupportedScaleTypes(5, 9, 1, 2)
	body, err := zipframe.EncodeCommand(mapping.CommandClassMultilevelSensor, cmdSensorSupportedScalesReport,
		zipframe.SensorSupportedScalesReport{SensorType: 2, Scales: []uint8{0}})
	require.NoError(t, err)
	cmd, err := zipframe.DecodeCommand(body)
	require.NoError(t, err)

	// A report for a different sensor type must not complete this command.
	tr := c.HandleResponse(&zipframe.Packet{SeqNumber: 5, Body: body, Command: cmd})
	assert.NotEqual(t, Done, tr.Kind)

	body, err = zipframe.EncodeCommand(mapping.CommandClassMultilevelSensor, cmdSensorSupportedScalesReport,
		zipframe.SensorSupportedScalesReport{SensorType: 1, Scales: []uint8{0, 2}})
	require.NoError(t, err)
	cmd, err = zipframe.DecodeCommand(body)
	require.NoError(t, err)

	tr = c.HandleResponse(&zipframe.Packet{SeqNumber: 5, Body: body, Command: cmd})
	require.Equal(t, Done, tr.Kind)
	assert.Equal(t, zipframe.SensorSupportedScalesReport{SensorType: 1, Scales: []uint8{0, 2}}, tr.Report)
}
