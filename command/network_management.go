package command

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
	"github.com/cybojanek/zwaveip/mapping"
	"github.com/cybojanek/zwaveip/zipframe"
)

// Node add/remove request modes (Z-Wave NetworkManagementInclusion).
const (
	nodeAddModeAny  uint8 = 0x01
	nodeAddModeStop uint8 = 0x05

	nodeRemoveModeAny  uint8 = 0x01
	nodeRemoveModeStop uint8 = 0x05
)

// IncludeNode requests the gateway start (or stop) network-wide inclusion.
// The gateway's ack does not complete the command: it keeps waiting for the
// node_add_status report on the same sequence number, delivered as this
// command's Done transition once it arrives.
type IncludeNode struct {
	SeqNo   uint8
	TxOptions uint8
	Stop    bool

	retries int
}

// NewIncludeNode constructs an IncludeNode instance. retries is the number
// of resends available beyond the first send.
func NewIncludeNode(seqNo uint8, stop bool, retries int) *IncludeNode {
	return &IncludeNode{SeqNo: seqNo, TxOptions: 0x02, Stop: stop, retries: retries}
}

func (c *IncludeNode) Encode() []byte {
	mode := nodeAddModeAny
	if c.Stop {
		mode = nodeAddModeStop
	}
	return []byte{mapping.CommandClassNetworkManagementInclusion, mapping.CmdNetworkManagementInclusionNodeAdd,
		c.SeqNo, mode, c.TxOptions}
}

// HandleResponse recognizes the terminal node_add_status report on this
// command's sequence number as Done; everything else (including the request
// ack/nack) goes through the uniform dispatch logic, with a bare ack turned
// into Continue.
func (c *IncludeNode) HandleResponse(pkt *zipframe.Packet) Transition {
	if pkt.Command != nil && !pkt.Command.IsUnknown() {
		if report, ok := pkt.Command.Report.(zipframe.NodeAddStatusReport); ok && report.SeqNo == c.SeqNo {
			return DoneValue(report)
		}
	}
	t := AckDispatch(pkt, c.SeqNo, c.retries, false)
	if t.Kind == Retry {
		c.retries--
	}
	if t.Kind == Done && t.Err == nil {
		return ContinueTransition()
	}
	return t
}


// HandleTimeout decrements the remaining retry count and classifies the
// outcome.
func (c *IncludeNode) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *IncludeNode) PreStates() []Mode { return []Mode{ModeIdle} }
func (c *IncludeNode) ExecState() Mode   { return ModeIncludingNode }

// ExcludeNode requests the gateway start (or stop) network-wide exclusion.
type ExcludeNode struct {
	SeqNo   uint8
	TxOptions uint8
	Stop    bool

	retries int
}

// NewExcludeNode constructs an ExcludeNode instance.
func NewExcludeNode(seqNo uint8, stop bool, retries int) *ExcludeNode {
	return &ExcludeNode{SeqNo: seqNo, TxOptions: 0x02, Stop: stop, retries: retries}
}

func (c *ExcludeNode) Encode() []byte {
	mode := nodeRemoveModeAny
	if c.Stop {
		mode = nodeRemoveModeStop
	}
	return []byte{mapping.CommandClassNetworkManagementInclusion, mapping.CmdNetworkManagementInclusionNodeRemove,
		c.SeqNo, mode}
}

func (c *ExcludeNode) HandleResponse(pkt *zipframe.Packet) Transition {
	if pkt.Command != nil && !pkt.Command.IsUnknown() {
		if report, ok := pkt.Command.Report.(zipframe.NodeRemoveStatusReport); ok {
			return DoneValue(report)
		}
	}
	t := AckDispatch(pkt, c.SeqNo, c.retries, false)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}


// HandleTimeout decrements the remaining retry count and classifies the
// outcome.
func (c *ExcludeNode) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *ExcludeNode) PreStates() []Mode { return []Mode{ModeIdle} }
func (c *ExcludeNode) ExecState() Mode   { return ModeExcludingNode }

// GetNodeList requests the full list of included node ids.
type GetNodeList struct {
	SeqNo   uint8
	retries int
}

// NewGetNodeList constructs a GetNodeList instance.
func NewGetNodeList(seqNo uint8, retries int) *GetNodeList {
	return &GetNodeList{SeqNo: seqNo, retries: retries}
}

func (c *GetNodeList) Encode() []byte {
	return []byte{mapping.CommandClassNetworkManagementProxy, mapping.CmdNetworkManagementProxyNodeListGet, c.SeqNo}
}

func (c *GetNodeList) HandleResponse(pkt *zipframe.Packet) Transition {
	if pkt.Command != nil && !pkt.Command.IsUnknown() {
		if report, ok := pkt.Command.Report.(zipframe.NodeListReport); ok && report.SeqNo == c.SeqNo {
			return DoneValue(report)
		}
	}
	t := AckDispatch(pkt, c.SeqNo, c.retries, false)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}


// HandleTimeout decrements the remaining retry count and classifies the
// outcome.
func (c *GetNodeList) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *GetNodeList) PreStates() []Mode { return []Mode{ModeIdle} }
func (c *GetNodeList) ExecState() Mode   { return ModeNone }

// GetNodeInfo requests the node-info cache for a single node.
type GetNodeInfo struct {
	SeqNo   uint8
	NodeID  uint8
	retries int
}

// NewGetNodeInfo constructs a GetNodeInfo instance.
func NewGetNodeInfo(seqNo uint8, nodeID uint8, retries int) *GetNodeInfo {
	return &GetNodeInfo{SeqNo: seqNo, NodeID: nodeID, retries: retries}
}

func (c *GetNodeInfo) Encode() []byte {
	return []byte{mapping.CommandClassNetworkManagementProxy, mapping.CmdNetworkManagementProxyNodeInfoCacheGet,
		c.SeqNo, c.NodeID, 0x00, 0x00}
}

func (c *GetNodeInfo) HandleResponse(pkt *zipframe.Packet) Transition {
	if pkt.Command != nil && !pkt.Command.IsUnknown() {
		if report, ok := pkt.Command.Report.(zipframe.NodeInfoCacheReport); ok && report.SeqNo == c.SeqNo {
			return DoneValue(report)
		}
	}
	t := AckDispatch(pkt, c.SeqNo, c.retries, false)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}


// HandleTimeout decrements the remaining retry count and classifies the
// outcome.
func (c *GetNodeInfo) HandleTimeout() Transition {
	t := TimeoutTransition(c.retries)
	if t.Kind == Retry {
		c.retries--
	}
	return t
}

func (c *GetNodeInfo) PreStates() []Mode { return []Mode{ModeIdle} }
func (c *GetNodeInfo) ExecState() Mode   { return ModeNone }
