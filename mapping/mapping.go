// Package mapping provides byte<->symbol lookup tables for command classes,
// commands, device classes, Security-2 keys, and notification types.
//
// Unknown inputs never error: they decode to an Unknown wrapper carrying the
// raw byte, so the frame codec can stay open for extension without touching
// dispatch logic elsewhere (adding a table entry is the only step needed to
// name a new command class).
package mapping

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

import "fmt"

// CommandClass byte values in use by this codec.
const (
	CommandClassBasic                    uint8 = 0x20
	CommandClassControllerReplication    uint8 = 0x21
	CommandClassApplicationStatus        uint8 = 0x22
	CommandClassZIP                      uint8 = 0x23
	CommandClassSwitchBinary             uint8 = 0x25
	CommandClassSwitchMultilevel         uint8 = 0x26
	CommandClassMeter                    uint8 = 0x32
	CommandClassMultilevelSensor         uint8 = 0x31
	CommandClassNetworkManagementInclusion uint8 = 0x34
	CommandClassThermostatMode           uint8 = 0x40
	CommandClassThermostatOperatingState uint8 = 0x42
	CommandClassThermostatSetpoint       uint8 = 0x43
	CommandClassThermostatFanMode        uint8 = 0x44
	CommandClassThermostatFanState       uint8 = 0x45
	CommandClassThermostatSetback        uint8 = 0x47
	CommandClassNetworkManagementBasic    uint8 = 0x4D
	CommandClassNetworkManagementProxy    uint8 = 0x52
	CommandClassDoorLock                  uint8 = 0x62
	CommandClassUserCode                  uint8 = 0x63
	CommandClassMailbox                   uint8 = 0x69
	CommandClassConfiguration             uint8 = 0x70
	CommandClassNotification              uint8 = 0x71
	CommandClassManufacturerSpecific      uint8 = 0x72
	CommandClassFirmwareUpdateMD          uint8 = 0x7A
	CommandClassClock                     uint8 = 0x81
	CommandClassNodeNamingAndLocation     uint8 = 0x77
	CommandClassWakeUp                    uint8 = 0x84
	CommandClassAssociation               uint8 = 0x85
	CommandClassVersion                   uint8 = 0x86
	CommandClassBattery                   uint8 = 0x80
	CommandClassMark                      uint8 = 0xEF
)

// Command byte values, keyed by their owning command class in the lookup
// table below. Named here for readability at call sites.
const (
	CmdNetworkManagementInclusionNodeAdd                   uint8 = 0x01
	CmdNetworkManagementInclusionNodeAddStatus            uint8 = 0x02
	CmdNetworkManagementInclusionNodeRemove               uint8 = 0x03
	CmdNetworkManagementInclusionNodeRemoveStatus         uint8 = 0x04
	CmdNetworkManagementInclusionNodeNeighborUpdateStatus uint8 = 0x0C
	CmdNetworkManagementInclusionNodeAddKeysReport        uint8 = 0x11
	CmdNetworkManagementInclusionNodeAddDSKReport         uint8 = 0x13

	CmdNetworkManagementBasicDefaultSet          uint8 = 0x06
	CmdNetworkManagementBasicDefaultSetComplete  uint8 = 0x07
	CmdNetworkManagementBasicLearnModeSet        uint8 = 0x04
	CmdNetworkManagementBasicLearnModeSetStatus  uint8 = 0x05

	CmdNetworkManagementProxyNodeListGet          uint8 = 0x01
	CmdNetworkManagementProxyNodeListReport       uint8 = 0x02
	CmdNetworkManagementProxyNodeInfoCacheGet     uint8 = 0x0B
	CmdNetworkManagementProxyNodeInfoCacheReport  uint8 = 0x0C

	CmdNotificationReport uint8 = 0x05

	CmdBasicSet    uint8 = 0x01
	CmdBasicGet    uint8 = 0x02
	CmdBasicReport uint8 = 0x03

	CmdMultilevelSensorReport uint8 = 0x05

	CmdMeterReport uint8 = 0x02

	CmdDoorLockOperationReport uint8 = 0x03

	CmdUserCodeReport         uint8 = 0x03
	CmdUserCodeUsersNumberReport uint8 = 0x05

	CmdConfigurationReport      uint8 = 0x06
	CmdConfigurationBulkReport  uint8 = 0x09

	CmdBatteryReport uint8 = 0x03

	CmdCommandClassVersionReport uint8 = 0x14

	CmdFirmwareUpdateMDReport uint8 = 0x02

	CmdManufacturerSpecificReport uint8 = 0x07

	CmdMailboxConfigurationReport uint8 = 0x03

	CmdWakeUpIntervalReport      uint8 = 0x06
	CmdWakeUpIntervalCapabilitiesReport uint8 = 0x0A

	// CmdAssociationReport: some firmware tables label this byte 0x06 for
	// the 0x85 0x03 decoder instead of the standard 0x03. Both symbols
	// are exposed; callers should treat CmdAssociationReportCanonical as
	// authoritative and CmdAssociationReportTableLabeled as a documented
	// possible firmware quirk.
	CmdAssociationReportCanonical     uint8 = 0x03
	CmdAssociationReportTableLabeled     uint8 = 0x06
)

// Symbol is a decoded byte: either a known name or an Unknown wrapper
// carrying the raw value that produced it.
type Symbol struct {
	Name    string
	Unknown bool
	Raw     uint8
}

func known(name string) Symbol   { return Symbol{Name: name} }
func unknown(raw uint8) Symbol   { return Symbol{Unknown: true, Raw: raw} }

// String renders the symbol the way callers will typically log or print it.
func (s Symbol) String() string {
	if s.Unknown {
		return fmt.Sprintf("unknown(0x%02x)", s.Raw)
	}
	return s.Name
}

// commandClassNames maps a command class byte to its symbolic name.
var commandClassNames = map[uint8]string{
	CommandClassBasic:                      "basic",
	CommandClassControllerReplication:      "controller_replication",
	CommandClassApplicationStatus:          "application_status",
	CommandClassZIP:                        "zip",
	CommandClassSwitchBinary:               "switch_binary",
	CommandClassSwitchMultilevel:           "switch_multilevel",
	CommandClassMeter:                      "meter",
	CommandClassMultilevelSensor:           "multilevel_sensor",
	CommandClassNetworkManagementInclusion: "network_management_inclusion",
	CommandClassThermostatMode:             "thermostat_mode",
	CommandClassThermostatOperatingState:   "thermostat_operating_state",
	CommandClassThermostatSetpoint:         "thermostat_setpoint",
	CommandClassThermostatFanMode:          "thermostat_fan_mode",
	CommandClassThermostatFanState:         "thermostat_fan_state",
	CommandClassThermostatSetback:          "thermostat_setback",
	CommandClassNetworkManagementBasic:     "network_management_basic",
	CommandClassNetworkManagementProxy:     "network_management_proxy",
	CommandClassDoorLock:                   "door_lock",
	CommandClassUserCode:                   "user_code",
	CommandClassMailbox:                    "mailbox",
	CommandClassConfiguration:              "configuration",
	CommandClassNotification:               "notification",
	CommandClassManufacturerSpecific:       "manufacturer_specific",
	CommandClassFirmwareUpdateMD:           "firmware_update_md",
	CommandClassClock:                      "clock",
	CommandClassNodeNamingAndLocation:      "node_naming_and_location",
	CommandClassWakeUp:                     "wake_up",
	CommandClassAssociation:                "association",
	CommandClassVersion:                    "version",
	CommandClassBattery:                    "battery",
}

// commandNames maps (command class byte, command byte) to a symbolic name.
var commandNames = map[[2]uint8]string{
	{CommandClassNetworkManagementInclusion, CmdNetworkManagementInclusionNodeAddStatus}:            "node_add_status",
	{CommandClassNetworkManagementInclusion, CmdNetworkManagementInclusionNodeRemoveStatus}:         "node_remove_status",
	{CommandClassNetworkManagementInclusion, CmdNetworkManagementInclusionNodeNeighborUpdateStatus}: "node_neighbor_update_status",
	{CommandClassNetworkManagementInclusion, CmdNetworkManagementInclusionNodeAddKeysReport}:        "node_add_keys_report",
	{CommandClassNetworkManagementInclusion, CmdNetworkManagementInclusionNodeAddDSKReport}:         "node_add_dsk_report",

	{CommandClassNetworkManagementInclusion, CmdNetworkManagementInclusionNodeAdd}:    "node_add",
	{CommandClassNetworkManagementInclusion, CmdNetworkManagementInclusionNodeRemove}: "node_remove",

	{CommandClassNetworkManagementBasic, CmdNetworkManagementBasicDefaultSet}:         "default_set",
	{CommandClassNetworkManagementBasic, CmdNetworkManagementBasicDefaultSetComplete}: "default_set_complete",
	{CommandClassNetworkManagementBasic, CmdNetworkManagementBasicLearnModeSet}:       "learn_mode_set",
	{CommandClassNetworkManagementBasic, CmdNetworkManagementBasicLearnModeSetStatus}: "learn_mode_set_status",

	{CommandClassNetworkManagementProxy, CmdNetworkManagementProxyNodeListGet}:         "node_list_get",
	{CommandClassNetworkManagementProxy, CmdNetworkManagementProxyNodeListReport}:      "node_list_report",
	{CommandClassNetworkManagementProxy, CmdNetworkManagementProxyNodeInfoCacheGet}:    "node_info_cache_get",
	{CommandClassNetworkManagementProxy, CmdNetworkManagementProxyNodeInfoCacheReport}: "node_info_cache_report",

	{CommandClassNotification, CmdNotificationReport}: "notification_report",

	{CommandClassBasic, CmdBasicSet}:    "basic_set",
	{CommandClassBasic, CmdBasicGet}:    "basic_get",
	{CommandClassBasic, CmdBasicReport}: "basic_report",

	{CommandClassSwitchBinary, CmdBasicReport}:     "switch_binary_report",
	{CommandClassSwitchMultilevel, CmdBasicReport}: "switch_multilevel_report",

	{CommandClassMeter, CmdMeterReport}: "meter_report",

	{CommandClassMultilevelSensor, CmdMultilevelSensorReport}: "multilevel_sensor_report",

	{CommandClassDoorLock, CmdDoorLockOperationReport}: "door_lock_operation_report",

	{CommandClassUserCode, CmdUserCodeReport}:            "user_code_report",
	{CommandClassUserCode, CmdUserCodeUsersNumberReport}: "users_number_report",

	{CommandClassConfiguration, CmdConfigurationReport}:     "configuration_report",
	{CommandClassConfiguration, CmdConfigurationBulkReport}: "configuration_bulk_report",

	{CommandClassBattery, CmdBatteryReport}: "battery_report",

	{CommandClassVersion, CmdCommandClassVersionReport}: "command_class_version_report",

	{CommandClassFirmwareUpdateMD, CmdFirmwareUpdateMDReport}: "firmware_md_report",

	{CommandClassManufacturerSpecific, CmdManufacturerSpecificReport}: "manufacturer_specific_report",

	{CommandClassMailbox, CmdMailboxConfigurationReport}: "mailbox_configuration_report",

	{CommandClassWakeUp, CmdWakeUpIntervalReport}:             "wake_up_interval_report",
	{CommandClassWakeUp, CmdWakeUpIntervalCapabilitiesReport}: "wake_up_interval_capabilities_report",

	{CommandClassAssociation, CmdAssociationReportCanonical}: "association_report",
	{CommandClassAssociation, CmdAssociationReportTableLabeled}: "association_report_table_labeled",

	{CommandClassClock, 0x06}: "clock_report",

	{CommandClassNodeNamingAndLocation, 0x03}: "name_report",
	{CommandClassNodeNamingAndLocation, 0x06}: "location_report",

	{CommandClassSwitchMultilevel, 0x04}: "start_level_change",
	{CommandClassSwitchMultilevel, 0x05}: "stop_level_change",

	{CommandClassVersion, 0x12}: "version_report",

	{CommandClassMultilevelSensor, 0x02}: "sensor_supported_types_report",
	{CommandClassMultilevelSensor, 0x06}: "sensor_supported_scales_report",

	{CommandClassThermostatMode, 0x03}:     "thermostat_mode_report",
	{CommandClassThermostatSetpoint, 0x03}: "thermostat_setpoint_report",
	{CommandClassThermostatFanMode, 0x03}:  "thermostat_fan_mode_report",
	{CommandClassThermostatFanState, 0x03}: "thermostat_fan_state_report",
	{CommandClassThermostatSetback, 0x03}:  "thermostat_setback_report",
}

// CommandClass looks up the symbol for a command class byte.
func CommandClass(b uint8) Symbol {
	if name, ok := commandClassNames[b]; ok {
		return known(name)
	}
	return unknown(b)
}

// Command looks up the symbol for a (command class byte, command byte) pair.
// Falls back to Unknown{command byte} on a miss: an unknown pair decodes to
// a tagged record, never a fatal error.
func Command(commandClass uint8, command uint8) Symbol {
	if name, ok := commandNames[[2]uint8{commandClass, command}]; ok {
		return known(name)
	}
	return unknown(command)
}

// Basic Device Class.
const (
	BasicClassController       uint8 = 0x01
	BasicClassStaticController uint8 = 0x02
	BasicClassSlave            uint8 = 0x03
	BasicClassRoutingSlave     uint8 = 0x04
)

var basicClassNames = map[uint8]string{
	BasicClassController:       "controller",
	BasicClassStaticController: "static_controller",
	BasicClassSlave:            "slave",
	BasicClassRoutingSlave:     "routing_slave",
}

// BasicClass looks up the symbol for a basic device class byte.
func BasicClass(b uint8) Symbol {
	if name, ok := basicClassNames[b]; ok {
		return known(name)
	}
	return unknown(b)
}

// Generic Device Class (a representative subset; extend by adding entries,
// never by touching the codec).
const (
	GenericClassSwitchBinary     uint8 = 0x10
	GenericClassSwitchMultilevel uint8 = 0x11
	GenericClassSensorBinary     uint8 = 0x20
	GenericClassSensorMultilevel uint8 = 0x21
	GenericClassMeter            uint8 = 0x31
	GenericClassEntryControl     uint8 = 0x40
	GenericClassThermostat       uint8 = 0x08
)

var genericClassNames = map[uint8]string{
	GenericClassSwitchBinary:     "switch_binary",
	GenericClassSwitchMultilevel: "switch_multilevel",
	GenericClassSensorBinary:     "sensor_binary",
	GenericClassSensorMultilevel: "sensor_multilevel",
	GenericClassMeter:            "meter",
	GenericClassEntryControl:     "entry_control",
	GenericClassThermostat:       "thermostat",
}

// GenericClass looks up the symbol for a generic device class byte.
func GenericClass(b uint8) Symbol {
	if name, ok := genericClassNames[b]; ok {
		return known(name)
	}
	return unknown(b)
}

// specificClassNames maps (generic, specific) to a symbolic name. Most
// generic classes only have one or two specific refinements in the field;
// entries are added as needed.
var specificClassNames = map[[2]uint8]string{
	{GenericClassSwitchBinary, 0x01}:     "power_switch_binary",
	{GenericClassSwitchMultilevel, 0x01}: "power_switch_multilevel",
	{GenericClassEntryControl, 0x03}:     "secure_keypad_door_lock",
}

// SpecificClass looks up the symbol for a (generic, specific) device class
// pair.
func SpecificClass(generic uint8, specific uint8) Symbol {
	if name, ok := specificClassNames[[2]uint8{generic, specific}]; ok {
		return known(name)
	}
	return unknown(specific)
}

// Security-2 key bits, as they appear in the keys_granted bitmask of a
// node_add_status report.
const (
	KeyS2Unauthenticated uint8 = 1 << 0
	KeyS2Authenticated   uint8 = 1 << 1
	KeyS2AccessControl   uint8 = 1 << 2
	KeyS0                uint8 = 1 << 7
)

var keyNames = []struct {
	bit  uint8
	name string
}{
	{KeyS2Unauthenticated, "s2_unauthenticated"},
	{KeyS2Authenticated, "s2_authenticated"},
	{KeyS2AccessControl, "s2_access_control"},
	{KeyS0, "s0_legacy"},
}

// KeysGranted decodes a keys_granted bitmask into the set of key symbols it
// carries, in a stable, ascending bit order (lowest bit first).
func KeysGranted(mask uint8) []Symbol {
	var out []Symbol
	for _, k := range keyNames {
		if mask&k.bit != 0 {
			out = append(out, known(k.name))
		}
	}
	return out
}

// Notification Type / Notification State, a representative subset of the
// Z-Wave notification command class catalog.
const (
	NotificationTypeSmoke      uint8 = 0x01
	NotificationTypeCO         uint8 = 0x02
	NotificationTypeWater      uint8 = 0x05
	NotificationTypeAccessControl uint8 = 0x06
	NotificationTypeHomeSecurity uint8 = 0x07
	NotificationTypePowerManagement uint8 = 0x08
	NotificationTypeSystem     uint8 = 0x09
)

var notificationTypeNames = map[uint8]string{
	NotificationTypeSmoke:           "smoke_alarm",
	NotificationTypeCO:              "co_alarm",
	NotificationTypeWater:           "water_alarm",
	NotificationTypeAccessControl:   "access_control",
	NotificationTypeHomeSecurity:    "home_security",
	NotificationTypePowerManagement: "power_management",
	NotificationTypeSystem:          "system",
}

// NotificationType looks up the symbol for a notification type byte.
func NotificationType(b uint8) Symbol {
	if name, ok := notificationTypeNames[b]; ok {
		return known(name)
	}
	return unknown(b)
}

// notificationStateNames maps (notification type, state byte) to a name.
// State byte meaning is defined per notification type.
var notificationStateNames = map[[2]uint8]string{
	{NotificationTypeHomeSecurity, 0x02}: "motion_detected",
	{NotificationTypeHomeSecurity, 0x03}: "tampering",
	{NotificationTypeAccessControl, 0x16}: "lock_locked",
	{NotificationTypeAccessControl, 0x17}: "lock_unlocked",
	{NotificationTypeSmoke, 0x01}:         "smoke_detected",
	{NotificationTypeCO, 0x01}:            "co_detected",
	{NotificationTypeWater, 0x01}:         "leak_detected",
	{NotificationTypePowerManagement, 0x0A}: "battery_low",
	{NotificationTypeSystem, 0x03}:        "hardware_failure",
}

// NotificationState looks up the symbol for a (notification type, state
// byte) pair.
func NotificationState(notificationType uint8, state uint8) Symbol {
	if name, ok := notificationStateNames[[2]uint8{notificationType, state}]; ok {
		return known(name)
	}
	return unknown(state)
}

// IsValidNodeID reports whether id falls in the valid Z-Wave node id range,
// 1..232.
func IsValidNodeID(id uint8) bool {
	return id >= 1 && id <= 232
}
