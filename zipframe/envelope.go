// Package zipframe implements bit-exact encoding and decoding of Z/IP
// packet envelopes (Z-Wave command class 0x23) and the command-class
// payloads they carry.
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

// HeaderLength is the size in bytes of the Z/IP envelope prefix.
const HeaderLength = 7

// Z/IP header byte offsets: command class and command identify
// the encapsulation (Z/IP Packet, 0x23 0x02), a sequence number, and a
// flags byte at offset 4.
const (
	offsetCommandClass = 0
	offsetCommand       = 1
	offsetSeqNumber     = 2
	offsetReserved0     = 3
	offsetFlags         = 4
	offsetReserved1     = 5
	offsetReserved2     = 6
)

const (
	zipCommandClass uint8 = 0x23
	zipPacketCommand uint8 = 0x02
)

// PacketType is one of the Z/IP acknowledgement/queueing flags carried in
// the envelope's flags byte.
type PacketType uint8

// Recognized packet types, bit-packed into the envelope flags byte.
const (
	AckRequest PacketType = 1 << iota
	AckResponse
	NackResponse
	NackWaiting
	NackQueueFull
	NackOptionError
)

var packetTypeNames = map[PacketType]string{
	AckRequest:      "ack_request",
	AckResponse:     "ack_response",
	NackResponse:    "nack_response",
	NackWaiting:     "nack_waiting",
	NackQueueFull:   "nack_queue_full",
	NackOptionError: "nack_option_error",
}

func (t PacketType) String() string {
	if name, ok := packetTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("packet_type(0x%02x)", uint8(t))
}

// TypeSet is a bitset of PacketType flags.
type TypeSet uint8

// Has reports whether t is set in s.
func (s TypeSet) Has(t PacketType) bool {
	return TypeSet(t)&s != 0
}

// Slice returns the set flags in ascending bit order.
func (s TypeSet) Slice() []PacketType {
	var out []PacketType
	for _, t := range []PacketType{AckRequest, AckResponse, NackResponse,
		NackWaiting, NackQueueFull, NackOptionError} {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func newTypeSet(types ...PacketType) TypeSet {
	var s TypeSet
	for _, t := range types {
		s |= TypeSet(t)
	}
	return s
}

// Packet is a parsed Z/IP envelope.
type Packet struct {
	SeqNumber uint8
	Types     TypeSet
	Body      []byte
	Command   *Command // decoded body, nil if Body is empty

	// SleepingDelay reports whether a nack_waiting packet is signalling
	// that the destination is a sleeping node and the command has been
	// handed to the gateway mailbox for delayed delivery. Only meaningful
	// when Types.Has(NackWaiting).
	SleepingDelay bool
}

// EncodeHeader produces the fixed 7-byte Z/IP envelope prefix for the given
// sequence number and packet types.
func EncodeHeader(seqNumber uint8, types TypeSet) []byte {
	h := make([]byte, HeaderLength)
	h[offsetCommandClass] = zipCommandClass
	h[offsetCommand] = zipPacketCommand
	h[offsetSeqNumber] = seqNumber
	h[offsetFlags] = byte(types)
	return h
}

// Encode produces the full wire bytes for a Z/IP packet: header followed by
// body.
func Encode(seqNumber uint8, types TypeSet, body []byte) []byte {
	out := EncodeHeader(seqNumber, types)
	return append(out, body...)
}

// DecodeHeader extracts the sequence number and packet types from the
// envelope prefix of raw, returning the number of header bytes consumed.
func DecodeHeader(raw []byte) (seqNumber uint8, types TypeSet, consumed int, err error) {
	if len(raw) < HeaderLength {
		return 0, 0, 0, fmt.Errorf("zipframe: envelope too short: %d < %d", len(raw), HeaderLength)
	}
	if raw[offsetCommandClass] != zipCommandClass || raw[offsetCommand] != zipPacketCommand {
		return 0, 0, 0, fmt.Errorf("zipframe: bad envelope command class/command: 0x%02x 0x%02x",
			raw[offsetCommandClass], raw[offsetCommand])
	}

	seqNumber = raw[offsetSeqNumber]
	types = TypeSet(raw[offsetFlags])
	return seqNumber, types, HeaderLength, nil
}

// Decode parses a full Z/IP datagram: the envelope header, and — if a body
// follows — its command-class payload. This never fails fatally on the
// body: an undecodable or unrecognized embedded command yields a Command
// whose IsUnknown() reports true rather than an error. It DOES return an
// error for a malformed envelope itself (too short, bad command class),
// since that means this isn't a Z/IP packet at all.
func Decode(raw []byte) (*Packet, error) {
	seqNumber, types, consumed, err := DecodeHeader(raw)
	if err != nil {
		return nil, err
	}

	p := &Packet{
		SeqNumber: seqNumber,
		Types:     types,
	}

	body := raw[consumed:]
	if len(body) == 0 {
		return p, nil
	}
	p.Body = body

	if types.Has(NackWaiting) && len(body) >= 1 {
		p.SleepingDelay = body[0] > 0
	}

	cmd, err := DecodeCommand(body)
	if err != nil {
		// Malformed body on a packet the coordinator will still need to
		// route: never fatal.
		p.Command = &Command{
			CommandClass: mapping.CommandClass(0),
			Command:      mapping.Symbol{Unknown: true},
			Raw:          body,
			decodeErr:    err,
		}
		return p, nil
	}
	p.Command = cmd

	return p, nil
}
