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

	"github.com/cybojanek/zwaveip/dsk"
	"github.com/cybojanek/zwaveip/mapping"
	"github.com/cybojanek/zwaveip/security2"
)

// Node add status values.
const (
	NodeAddStatusDone            uint8 = 0x06
	NodeAddStatusFailed          uint8 = 0x07
	NodeAddStatusSecurityFailed  uint8 = 0x09
)

// NodeInfo is the basic/generic/specific device class triple plus supported
// command-class list that accompanies several network-management reports.
type NodeInfo struct {
	Listening     bool
	NodeID        uint8
	BasicClass    mapping.Symbol
	GenericClass  mapping.Symbol
	SpecificClass mapping.Symbol
	CommandClasses []mapping.Symbol
}

// NodeAddStatusReport is the decoded 0x34 0x02 node_add_status report. The S2
// tail fields are only populated when Status is Done or SecurityFailed.
type NodeAddStatusReport struct {
	SeqNo  uint8
	Status uint8
	Node   NodeInfo

	KeysGranted []mapping.Symbol
	KexFailType security2.KexFailType
	DSK         []byte
}

// nodeAddStatusTailDSKLengths lists the DSK lengths the S2 tail can carry:
// either no DSK, or a full fixed-size one (dsk.Length is always 16).
var nodeAddStatusTailDSKLengths = []int{dsk.Length, 0}

// findNodeAddStatusTailStart locates the S2 tail by trying each legal DSK
// length from the end of b and checking that the byte where dsk_length
// would sit actually holds that length. minStart is the first byte after
// the fixed node-info header, below which the tail can never start.
func findNodeAddStatusTailStart(b []byte, minStart int) (int, error) {
	for _, dskLen := range nodeAddStatusTailDSKLengths {
		tailStart := len(b) - 3 - dskLen
		if tailStart < minStart || tailStart < 0 {
			continue
		}
		if int(b[tailStart+2]) == dskLen {
			return tailStart, nil
		}
	}
	return 0, fmt.Errorf("zipframe: node_add_status S2 tail not found")
}

func decodeNodeAddStatus(b []byte) (any, error) {
	if len(b) < 6 {
		return nil, fmt.Errorf("zipframe: node_add_status too short: %d < 6", len(b))
	}

	r := NodeAddStatusReport{
		SeqNo:  b[0],
		Status: b[1],
	}
	r.Node.Listening = b[2]&0x80 != 0
	r.Node.NodeID = b[3]
	r.Node.BasicClass = mapping.BasicClass(b[4])
	r.Node.GenericClass = mapping.GenericClass(b[5])

	i := 6
	if i < len(b) {
		r.Node.SpecificClass = mapping.SpecificClass(b[5], b[i])
		i++
	}

	ccEnd := len(b)
	if r.Status == NodeAddStatusDone || r.Status == NodeAddStatusSecurityFailed {
		// S2 tail: keys_granted(1) kex_fail_type(1) dsk_length(1) dsk(n),
		// trailing the command-class list. dsk_length is the tail's last
		// byte only when no DSK follows; when one does, the tail's last
		// byte is DSK data, not the length. The DSK is always
		// either absent or a full fixed-size DSK, so anchor the tail by
		// trying those two lengths from the end rather than trusting
		// whatever the final byte happens to be.
		tailStart, err := findNodeAddStatusTailStart(b, i)
		if err != nil {
			return nil, err
		}
		dskLen := len(b) - tailStart - 3
		ccEnd = tailStart
		r.KeysGranted = mapping.KeysGranted(b[tailStart])
		r.KexFailType = security2.KexFailType(b[tailStart+1])
		r.DSK = append([]byte(nil), b[tailStart+3:tailStart+3+dskLen]...)
	}

	r.Node.CommandClasses = parseCommandClassList(b[i:ccEnd])
	return r, nil
}

func encodeNodeAddStatus(report any) ([]byte, error) {
	r, ok := report.(NodeAddStatusReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeNodeAddStatus: wrong type %T", report)
	}
	out := []byte{r.SeqNo, r.Status}
	flag := byte(0)
	if r.Node.Listening {
		flag = 0x80
	}
	out = append(out, flag, r.Node.NodeID, r.Node.BasicClass.Raw, r.Node.GenericClass.Raw, r.Node.SpecificClass.Raw)
	for _, cc := range r.Node.CommandClasses {
		out = append(out, cc.Raw)
	}
	if r.Status == NodeAddStatusDone || r.Status == NodeAddStatusSecurityFailed {
		var mask uint8
		for _, k := range r.KeysGranted {
			switch k.Name {
			case "s2_unauthenticated":
				mask |= mapping.KeyS2Unauthenticated
			case "s2_authenticated":
				mask |= mapping.KeyS2Authenticated
			case "s2_access_control":
				mask |= mapping.KeyS2AccessControl
			case "s0_legacy":
				mask |= mapping.KeyS0
			}
		}
		out = append(out, mask, byte(r.KexFailType), byte(len(r.DSK)))
		out = append(out, r.DSK...)
	}
	return out, nil
}

// Node remove status values.
const (
	NodeRemoveStatusDone   uint8 = 0x06
	NodeRemoveStatusFailed uint8 = 0x07
)

// NodeRemoveStatusReport is the decoded 0x34 0x04 node_remove_status report.
// NodeID is 0 on failure.
type NodeRemoveStatusReport struct {
	Status uint8
	NodeID uint8
}

func decodeNodeRemoveStatus(b []byte) (any, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("zipframe: node_remove_status too short")
	}
	r := NodeRemoveStatusReport{Status: b[0]}
	if len(b) >= 2 {
		r.NodeID = b[1]
	}
	return r, nil
}

func encodeNodeRemoveStatus(report any) ([]byte, error) {
	r, ok := report.(NodeRemoveStatusReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeNodeRemoveStatus: wrong type %T", report)
	}
	return []byte{r.Status, r.NodeID}, nil
}

// NodeNeighborUpdateStatusReport is the decoded 0x34 0x0C report.
type NodeNeighborUpdateStatusReport struct {
	SeqNo  uint8
	Status uint8
}

func decodeNodeNeighborUpdateStatus(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: node_neighbor_update_status too short")
	}
	return NodeNeighborUpdateStatusReport{SeqNo: b[0], Status: b[1]}, nil
}

func encodeNodeNeighborUpdateStatus(report any) ([]byte, error) {
	r, ok := report.(NodeNeighborUpdateStatusReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeNodeNeighborUpdateStatus: wrong type %T", report)
	}
	return []byte{r.SeqNo, r.Status}, nil
}

// NodeAddKeysReport is the decoded 0x34 0x11 report: the joining node's
// request for CSA bootstrapping and which S2 keys it is asking to be granted.
type NodeAddKeysReport struct {
	SeqNo          uint8
	CSARequested   bool
	RequestedKeys  []mapping.Symbol
}

func decodeNodeAddKeysReport(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: node_add_keys_report too short")
	}
	return NodeAddKeysReport{
		SeqNo:         b[0],
		CSARequested:  b[1]&0x01 != 0,
		RequestedKeys: security2.RequestedKeys(b[1]),
	}, nil
}

func encodeNodeAddKeysReport(report any) ([]byte, error) {
	r, ok := report.(NodeAddKeysReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeNodeAddKeysReport: wrong type %T", report)
	}
	var flag uint8
	if r.CSARequested {
		flag |= 0x01
	}
	for _, k := range r.RequestedKeys {
		switch k.Name {
		case "s2_unauthenticated":
			flag |= mapping.KeyS2Unauthenticated
		case "s2_authenticated":
			flag |= mapping.KeyS2Authenticated
		case "s2_access_control":
			flag |= mapping.KeyS2AccessControl
		}
	}
	return []byte{r.SeqNo, flag}, nil
}

// NodeAddDSKReport is the decoded 0x34 0x13 report.
type NodeAddDSKReport struct {
	SeqNo       uint8
	InputLength uint8
	DSK         []byte
}

func decodeNodeAddDSKReport(b []byte) (any, error) {
	if len(b) < 2+16 {
		return nil, fmt.Errorf("zipframe: node_add_dsk_report too short: %d < 18", len(b))
	}
	return NodeAddDSKReport{
		SeqNo:       b[0],
		InputLength: b[1] & 0x0F,
		DSK:         append([]byte(nil), b[2:2+16]...),
	}, nil
}

func encodeNodeAddDSKReport(report any) ([]byte, error) {
	r, ok := report.(NodeAddDSKReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeNodeAddDSKReport: wrong type %T", report)
	}
	if len(r.DSK) != 16 {
		return nil, fmt.Errorf("zipframe: dsk must be 16 bytes, got %d", len(r.DSK))
	}
	out := []byte{r.SeqNo, r.InputLength & 0x0F}
	return append(out, r.DSK...), nil
}

// DefaultSetCompleteReport is the decoded 0x4D 0x07 report.
type DefaultSetCompleteReport struct {
	SeqNo  uint8
	Status uint8
}

func decodeDefaultSetComplete(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: default_set_complete too short")
	}
	return DefaultSetCompleteReport{SeqNo: b[0], Status: b[1]}, nil
}

func encodeDefaultSetComplete(report any) ([]byte, error) {
	r, ok := report.(DefaultSetCompleteReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeDefaultSetComplete: wrong type %T", report)
	}
	return []byte{r.SeqNo, r.Status}, nil
}

// LearnModeSetStatusReport is the decoded 0x4D 0x05 report.
type LearnModeSetStatusReport struct {
	SeqNo  uint8
	Status uint8
	NodeID uint8
}

func decodeLearnModeSetStatus(b []byte) (any, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("zipframe: learn_mode_set_status too short")
	}
	r := LearnModeSetStatusReport{SeqNo: b[0], Status: b[1]}
	if len(b) >= 4 {
		r.NodeID = b[3]
	}
	return r, nil
}

func encodeLearnModeSetStatus(report any) ([]byte, error) {
	r, ok := report.(LearnModeSetStatusReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeLearnModeSetStatus: wrong type %T", report)
	}
	return []byte{r.SeqNo, r.Status, 0x00, r.NodeID}, nil
}

// NodeListReport is the decoded 0x52 0x02 report: seq_no, status, a node
// list controller id byte (skipped on decode, written as zero on encode),
// then a bitmask over nodes 1..232 unmasked into the sorted list of present
// node ids.
type NodeListReport struct {
	SeqNo    uint8
	Status   uint8
	NodeList []uint8
}

func decodeNodeListReport(b []byte) (any, error) {
	if len(b) < 3+nodeListLength {
		return nil, fmt.Errorf("zipframe: node_list_report too short: %d < %d", len(b), 3+nodeListLength)
	}
	nodes, err := decodeNodeListBitmask(b[3 : 3+nodeListLength])
	if err != nil {
		return nil, err
	}
	return NodeListReport{SeqNo: b[0], Status: b[1], NodeList: nodes}, nil
}

func encodeNodeListReport(report any) ([]byte, error) {
	r, ok := report.(NodeListReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeNodeListReport: wrong type %T", report)
	}
	mask, err := encodeNodeListBitmask(r.NodeList)
	if err != nil {
		return nil, err
	}
	out := []byte{r.SeqNo, r.Status, 0x00}
	return append(out, mask...), nil
}

// NodeInfoCacheReport is the decoded 0x52 0x0C report.
type NodeInfoCacheReport struct {
	SeqNo          uint8
	Status         uint8
	HighestKeyUsed uint8
	Node           NodeInfo
}

func decodeNodeInfoCacheReport(b []byte) (any, error) {
	if len(b) < 7 {
		return nil, fmt.Errorf("zipframe: node_info_cache_report too short: %d < 7", len(b))
	}
	r := NodeInfoCacheReport{
		SeqNo:          b[0],
		Status:         b[1],
		HighestKeyUsed: b[2] & 0x7F,
	}
	r.Node.Listening = b[3]&0x80 != 0
	r.Node.BasicClass = mapping.BasicClass(b[4])
	r.Node.GenericClass = mapping.GenericClass(b[5])
	r.Node.SpecificClass = mapping.SpecificClass(b[5], b[6])
	if len(b) > 7 {
		r.Node.CommandClasses = parseCommandClassList(b[7:])
	}
	return r, nil
}

func encodeNodeInfoCacheReport(report any) ([]byte, error) {
	r, ok := report.(NodeInfoCacheReport)
	if !ok {
		return nil, fmt.Errorf("zipframe: encodeNodeInfoCacheReport: wrong type %T", report)
	}
	flag := byte(0)
	if r.Node.Listening {
		flag = 0x80
	}
	out := []byte{r.SeqNo, r.Status, r.HighestKeyUsed & 0x7F, flag,
		r.Node.BasicClass.Raw, r.Node.GenericClass.Raw, r.Node.SpecificClass.Raw}
	for _, cc := range r.Node.CommandClasses {
		out = append(out, cc.Raw)
	}
	return out, nil
}

func init() {
	register(mapping.CommandClassNetworkManagementInclusion, mapping.CmdNetworkManagementInclusionNodeAddStatus,
		decodeNodeAddStatus, encodeNodeAddStatus)
	register(mapping.CommandClassNetworkManagementInclusion, mapping.CmdNetworkManagementInclusionNodeRemoveStatus,
		decodeNodeRemoveStatus, encodeNodeRemoveStatus)
	register(mapping.CommandClassNetworkManagementInclusion, mapping.CmdNetworkManagementInclusionNodeNeighborUpdateStatus,
		decodeNodeNeighborUpdateStatus, encodeNodeNeighborUpdateStatus)
	register(mapping.CommandClassNetworkManagementInclusion, mapping.CmdNetworkManagementInclusionNodeAddKeysReport,
		decodeNodeAddKeysReport, encodeNodeAddKeysReport)
	register(mapping.CommandClassNetworkManagementInclusion, mapping.CmdNetworkManagementInclusionNodeAddDSKReport,
		decodeNodeAddDSKReport, encodeNodeAddDSKReport)

	register(mapping.CommandClassNetworkManagementBasic, mapping.CmdNetworkManagementBasicDefaultSetComplete,
		decodeDefaultSetComplete, encodeDefaultSetComplete)
	register(mapping.CommandClassNetworkManagementBasic, mapping.CmdNetworkManagementBasicLearnModeSetStatus,
		decodeLearnModeSetStatus, encodeLearnModeSetStatus)

	register(mapping.CommandClassNetworkManagementProxy, mapping.CmdNetworkManagementProxyNodeListReport,
		decodeNodeListReport, encodeNodeListReport)
	register(mapping.CommandClassNetworkManagementProxy, mapping.CmdNetworkManagementProxyNodeInfoCacheReport,
		decodeNodeInfoCacheReport, encodeNodeInfoCacheReport)
}
