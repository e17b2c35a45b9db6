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

// NotificationReport is the decoded 0x71 0x05 report. A report with a zero
// first three bytes is the typed form (Type/State populated); otherwise it
// is the legacy alarm form (AlarmType/AlarmLevel populated).
type NotificationReport struct {
	Legacy bool

	Type  mapping.Symbol
	State mapping.Symbol

	AlarmType  uint8
	AlarmLevel uint8
}

func decodeNotificationReport(b []byte) (any, error) {
	if len(b) < 6 {
		return nil, fmt.Errorf("zipframe: notification_report too short: %d < 6", len(b))
	}
	if b[0] == 0 && b[1] == 0 && b[2] == 0 {
		notifType := b[4]
		state := b[5]
		return NotificationReport{
			Type:  mapping.NotificationType(notifType),
			State: mapping.NotificationState(notifType, state),
		}, nil
	}
	return NotificationReport{
		Legacy:     true,
		AlarmType:  b[0],
		AlarmLevel: b[1],
	}, nil
}

func encodeNotificationReport(report any) ([]byte, error) {
	r, ok := report.(NotificationReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeNotificationReport: wrong type %T", report)
	}
	if r.Legacy {
		return []byte{r.AlarmType, r.AlarmLevel, 0x00, 0x00, 0x00, 0x00}, nil
	}
	return []byte{0x00, 0x00, 0x00, 0x00, r.Type.Raw, r.State.Raw}, nil
}

func init() {
	register(mapping.CommandClassNotification, mapping.CmdNotificationReport,
		decodeNotificationReport, encodeNotificationReport)
}
