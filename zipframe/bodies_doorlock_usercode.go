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

// DoorLockOperationReport is the decoded 0x62 0x03 report.
type DoorLockOperationReport struct {
	Mode             uint8
	OutsideHandles   uint8
	InsideHandles    uint8
	DoorCondition    uint8
	LockTimeoutMins  uint8
	LockTimeoutSecs  uint8
}

func decodeDoorLockOperation(b []byte) (any, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("zipframe: door_lock_operation_report too short: %d < 4", len(b))
	}
	r := DoorLockOperationReport{
		Mode:           b[0],
		OutsideHandles: (b[1] >> 4) & 0x0F,
		InsideHandles:  b[1] & 0x0F,
		DoorCondition:  b[2],
	}
	if len(b) >= 6 {
		r.LockTimeoutMins = b[3]
		r.LockTimeoutSecs = b[4]
	}
	return r, nil
}

func encodeDoorLockOperation(report any) ([]byte, error) {
	r, ok := report.(DoorLockOperationReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeDoorLockOperation: wrong type %T", report)
	}
	handles := (r.OutsideHandles&0x0F)<<4 | (r.InsideHandles & 0x0F)
	return []byte{r.Mode, handles, r.DoorCondition, r.LockTimeoutMins, r.LockTimeoutSecs}, nil
}

// UserCodeReport is the decoded 0x63 0x03 report.
type UserCodeReport struct {
	UserID     uint8
	IDStatus   uint8
	Code       []byte
}

func decodeUserCode(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: user_code_report too short: %d < 2", len(b))
	}
	return UserCodeReport{
		UserID:   b[0],
		IDStatus: b[1],
		Code:     append([]byte(nil), b[2:]...),
	}, nil
}

func encodeUserCode(report any) ([]byte, error) {
	r, ok := report.(UserCodeReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeUserCode: wrong type %T", report)
	}
	out := []byte{r.UserID, r.IDStatus}
	return append(out, r.Code...), nil
}

// UsersNumberReport is the decoded 0x63 0x05 report.
type UsersNumberReport struct {
	SupportedUsers uint8
}

func decodeUsersNumber(b []byte) (any, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("zipframe: users_number_report too short")
	}
	return UsersNumberReport{SupportedUsers: b[0]}, nil
}

func encodeUsersNumber(report any) ([]byte, error) {
	r, ok := report.(UsersNumberReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeUsersNumber: wrong type %T", report)
	}
	return []byte{r.SupportedUsers}, nil
}

func init() {
	register(mapping.CommandClassDoorLock, mapping.CmdDoorLockOperationReport,
		decodeDoorLockOperation, encodeDoorLockOperation)
	register(mapping.CommandClassUserCode, mapping.CmdUserCodeReport, decodeUserCode, encodeUserCode)
	register(mapping.CommandClassUserCode, mapping.CmdUserCodeUsersNumberReport, decodeUsersNumber, encodeUsersNumber)
}
