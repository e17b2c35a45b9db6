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
	"net"

	"github.com/cybojanek/zwaveip/mapping"
)

// BatteryReport is the decoded 0x80 0x03 report. A level of 0xFF signals
// the device's low-battery warning threshold rather than a percentage.
type BatteryReport struct {
	Level   uint8
	LowBatteryWarning bool
}

func decodeBatteryReport(b []byte) (any, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("zipframe: battery_report too short")
	}
	if b[0] == 0xFF {
		return BatteryReport{LowBatteryWarning: true}, nil
	}
	return BatteryReport{Level: b[0]}, nil
}

func encodeBatteryReport(report any) ([]byte, error) {
	r, ok := report.(BatteryReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeBatteryReport: wrong type %T", report)
	}
	if r.LowBatteryWarning {
		return []byte{0xFF}, nil
	}
	return []byte{r.Level}, nil
}

// CommandClassVersionReport is the decoded 0x86 0x14 report.
type CommandClassVersionReport struct {
	CommandClass mapping.Symbol
	Version      uint8
}

func decodeCommandClassVersionReport(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: command_class_version_report too short")
	}
	return CommandClassVersionReport{CommandClass: mapping.CommandClass(b[0]), Version: b[1]}, nil
}

func encodeCommandClassVersionReport(report any) ([]byte, error) {
	r, ok := report.(CommandClassVersionReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeCommandClassVersionReport: wrong type %T", report)
	}
	return []byte{r.CommandClass.Raw, r.Version}, nil
}

// WholeNodeVersionReport is the decoded 0x86 0x12 version_report: the
// library/protocol/application version triple for the whole node, as
// distinct from CommandClassVersionReport's per-command-class version.
// Supplemented beyond the distilled report list.
type WholeNodeVersionReport struct {
	LibraryType      uint8
	ProtocolVersion  uint8
	ProtocolSubVersion uint8
	AppVersion       uint8
	AppSubVersion    uint8
}

func decodeWholeNodeVersionReport(b []byte) (any, error) {
	if len(b) < 5 {
		return nil, fmt.Errorf("zipframe: version_report too short: %d < 5", len(b))
	}
	return WholeNodeVersionReport{
		LibraryType:        b[0],
		ProtocolVersion:    b[1],
		ProtocolSubVersion: b[2],
		AppVersion:         b[3],
		AppSubVersion:      b[4],
	}, nil
}

func encodeWholeNodeVersionReport(report any) ([]byte, error) {
	r, ok := report.(WholeNodeVersionReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeWholeNodeVersionReport: wrong type %T", report)
	}
	return []byte{r.LibraryType, r.ProtocolVersion, r.ProtocolSubVersion, r.AppVersion, r.AppSubVersion}, nil
}

// FirmwareMDReport is the decoded 0x7A 0x02 report.
type FirmwareMDReport struct {
	ManufacturerID uint16
	FirmwareID     uint16
	Checksum       uint16
}

func decodeFirmwareMDReport(b []byte) (any, error) {
	if len(b) < 6 {
		return nil, fmt.Errorf("zipframe: firmware_md_report too short: %d < 6", len(b))
	}
	return FirmwareMDReport{
		ManufacturerID: uint16(b[0])<<8 | uint16(b[1]),
		FirmwareID:     uint16(b[2])<<8 | uint16(b[3]),
		Checksum:       uint16(b[4])<<8 | uint16(b[5]),
	}, nil
}

func encodeFirmwareMDReport(report any) ([]byte, error) {
	r, ok := report.(FirmwareMDReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeFirmwareMDReport: wrong type %T", report)
	}
	return []byte{
		byte(r.ManufacturerID >> 8), byte(r.ManufacturerID),
		byte(r.FirmwareID >> 8), byte(r.FirmwareID),
		byte(r.Checksum >> 8), byte(r.Checksum),
	}, nil
}

// ManufacturerSpecificReport is the decoded 0x72 0x07 report. DeviceID is
// carried either as UTF-8 text or as raw hex bytes depending on
// DeviceIDType/DeviceIDFormat.
type ManufacturerSpecificReport struct {
	ManufacturerID   uint16
	ProductTypeID    uint16
	ProductID        uint16
	DeviceIDType     uint8
	DeviceIDFormat   uint8 // 0 = UTF-8, 1 = binary
	DeviceIDText     string
	DeviceIDBytes    []byte
}

func decodeManufacturerSpecificReport(b []byte) (any, error) {
	if len(b) < 6 {
		return nil, fmt.Errorf("zipframe: manufacturer_specific_report too short: %d < 6", len(b))
	}
	r := ManufacturerSpecificReport{
		ManufacturerID: uint16(b[0])<<8 | uint16(b[1]),
		ProductTypeID:  uint16(b[2])<<8 | uint16(b[3]),
		ProductID:      uint16(b[4])<<8 | uint16(b[5]),
	}
	if len(b) > 6 {
		r.DeviceIDType = (b[6] >> 5) & 0x07
		r.DeviceIDFormat = (b[6] >> 3) & 0x03
		dataLen := int(b[6] & 0x1F)
		if 7+dataLen > len(b) {
			return nil, fmt.Errorf("zipframe: manufacturer_specific_report device id truncated")
		}
		data := b[7 : 7+dataLen]
		if r.DeviceIDFormat == 0 {
			r.DeviceIDText = string(data)
		} else {
			r.DeviceIDBytes = append([]byte(nil), data...)
		}
	}
	return r, nil
}

func encodeManufacturerSpecificReport(report any) ([]byte, error) {
	r, ok := report.(ManufacturerSpecificReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeManufacturerSpecificReport: wrong type %T", report)
	}
	out := []byte{
		byte(r.ManufacturerID >> 8), byte(r.ManufacturerID),
		byte(r.ProductTypeID >> 8), byte(r.ProductTypeID),
		byte(r.ProductID >> 8), byte(r.ProductID),
	}
	var data []byte
	if r.DeviceIDFormat == 0 {
		data = []byte(r.DeviceIDText)
	} else {
		data = r.DeviceIDBytes
	}
	if len(data) > 0 {
		if len(data) > 0x1F {
			return nil, fmt.Errorf("zipframe: device id too long: %d > 31", len(data))
		}
		header := (r.DeviceIDType&0x07)<<5 | (r.DeviceIDFormat&0x03)<<3 | uint8(len(data))
		out = append(out, header)
		out = append(out, data...)
	}
	return out, nil
}

// MailboxConfigurationReport is the decoded 0x69 0x03 report: the mailbox
// proxy's IPv6 address and UDP port, for sleeping-node message delivery.
type MailboxConfigurationReport struct {
	Mode        uint8
	IP          net.IP
	Port        uint16
	Capacity    uint8
}

func decodeMailboxConfigurationReport(b []byte) (any, error) {
	if len(b) < 1+16+2+1 {
		return nil, fmt.Errorf("zipframe: mailbox_configuration_report too short: %d < 20", len(b))
	}
	ip := make(net.IP, 16)
	copy(ip, b[1:17])
	return MailboxConfigurationReport{
		Mode:     b[0],
		IP:       ip,
		Port:     uint16(b[17])<<8 | uint16(b[18]),
		Capacity: b[19],
	}, nil
}

func encodeMailboxConfigurationReport(report any) ([]byte, error) {
	r, ok := report.(MailboxConfigurationReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeMailboxConfigurationReport: wrong type %T", report)
	}
	ip16 := r.IP.To16()
	if ip16 == nil {
		return nil, fmt.Errorf("zipframe: mailbox configuration: invalid IPv6 address %v", r.IP)
	}
	out := []byte{r.Mode}
	out = append(out, ip16...)
	out = append(out, byte(r.Port>>8), byte(r.Port), r.Capacity)
	return out, nil
}

// WakeUpIntervalReport is the decoded 0x84 0x06 report: a 24-bit interval
// in seconds and the node id of the wake-up destination.
type WakeUpIntervalReport struct {
	IntervalSeconds uint32 // 24-bit
	NodeID          uint8
}

func decode24BitInterval(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func encode24BitInterval(v uint32) []byte {
	return []byte{byte(v >> 16), byte(v >> 8), byte(v)}
}

func decodeWakeUpIntervalReport(b []byte) (any, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("zipframe: wake_up_interval_report too short: %d < 4", len(b))
	}
	return WakeUpIntervalReport{IntervalSeconds: decode24BitInterval(b), NodeID: b[3]}, nil
}

func encodeWakeUpIntervalReport(report any) ([]byte, error) {
	r, ok := report.(WakeUpIntervalReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeWakeUpIntervalReport: wrong type %T", report)
	}
	out := encode24BitInterval(r.IntervalSeconds)
	return append(out, r.NodeID), nil
}

// WakeUpIntervalCapabilitiesReport is the decoded 0x84 0x0A report.
type WakeUpIntervalCapabilitiesReport struct {
	MinimumSeconds uint32
	MaximumSeconds uint32
	DefaultSeconds uint32
	StepSeconds    uint32
}

func decodeWakeUpIntervalCapabilitiesReport(b []byte) (any, error) {
	if len(b) < 12 {
		return nil, fmt.Errorf("zipframe: wake_up_interval_capabilities_report too short: %d < 12", len(b))
	}
	return WakeUpIntervalCapabilitiesReport{
		MinimumSeconds: decode24BitInterval(b[0:3]),
		MaximumSeconds: decode24BitInterval(b[3:6]),
		DefaultSeconds: decode24BitInterval(b[6:9]),
		StepSeconds:    decode24BitInterval(b[9:12]),
	}, nil
}

func encodeWakeUpIntervalCapabilitiesReport(report any) ([]byte, error) {
	r, ok := report.(WakeUpIntervalCapabilitiesReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeWakeUpIntervalCapabilitiesReport: wrong type %T", report)
	}
	out := encode24BitInterval(r.MinimumSeconds)
	out = append(out, encode24BitInterval(r.MaximumSeconds)...)
	out = append(out, encode24BitInterval(r.DefaultSeconds)...)
	out = append(out, encode24BitInterval(r.StepSeconds)...)
	return out, nil
}

// AssociationReport is the decoded 0x85 0x03 report.
type AssociationReport struct {
	GroupingID       uint8
	MaxNodes         uint8
	ReportsToFollow  uint8
	Nodes            []uint8
}

func decodeAssociationReport(b []byte) (any, error) {
	if len(b) < 3 {
		return nil, fmt.Errorf("zipframe: association_report too short: %d < 3", len(b))
	}
	return AssociationReport{
		GroupingID:      b[0],
		MaxNodes:        b[1],
		ReportsToFollow: b[2],
		Nodes:           append([]uint8(nil), b[3:]...),
	}, nil
}

func encodeAssociationReport(report any) ([]byte, error) {
	r, ok := report.(AssociationReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeAssociationReport: wrong type %T", report)
	}
	out := []byte{r.GroupingID, r.MaxNodes, r.ReportsToFollow}
	return append(out, r.Nodes...), nil
}

func init() {
	register(mapping.CommandClassBattery, mapping.CmdBatteryReport, decodeBatteryReport, encodeBatteryReport)
	register(mapping.CommandClassVersion, mapping.CmdCommandClassVersionReport,
		decodeCommandClassVersionReport, encodeCommandClassVersionReport)
	register(mapping.CommandClassVersion, 0x12, decodeWholeNodeVersionReport, encodeWholeNodeVersionReport)
	register(mapping.CommandClassFirmwareUpdateMD, mapping.CmdFirmwareUpdateMDReport,
		decodeFirmwareMDReport, encodeFirmwareMDReport)
	register(mapping.CommandClassManufacturerSpecific, mapping.CmdManufacturerSpecificReport,
		decodeManufacturerSpecificReport, encodeManufacturerSpecificReport)
	register(mapping.CommandClassMailbox, mapping.CmdMailboxConfigurationReport,
		decodeMailboxConfigurationReport, encodeMailboxConfigurationReport)
	register(mapping.CommandClassWakeUp, mapping.CmdWakeUpIntervalReport,
		decodeWakeUpIntervalReport, encodeWakeUpIntervalReport)
	register(mapping.CommandClassWakeUp, mapping.CmdWakeUpIntervalCapabilitiesReport,
		decodeWakeUpIntervalCapabilitiesReport, encodeWakeUpIntervalCapabilitiesReport)
	register(mapping.CommandClassAssociation, mapping.CmdAssociationReportCanonical,
		decodeAssociationReport, encodeAssociationReport)
}
