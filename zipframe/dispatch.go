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

// Command is a decoded Z-Wave command-class payload: the command class and
// command symbols it was parsed under, and either a structured Report (one
// of the *Report types in this package) or a raw byte fallback.
//
// The dispatch table below is an open dispatch table: adding a new command
// class means adding a decoder/encoder pair and a registry entry, never
// touching Decode or Encode themselves.
type Command struct {
	CommandClass mapping.Symbol
	Command      mapping.Symbol
	Report       any // one of the *Report structs, or nil
	Raw          []byte

	decodeErr error // set only when Report/Raw come from the default fallback
}

// IsUnknown reports whether this command decoded to the "unknown
// class/command" fallback rather than a recognized report.
func (c *Command) IsUnknown() bool {
	return c.CommandClass.Unknown || c.Command.Unknown
}

type decodeFunc func(body []byte) (any, error)
type encodeFunc func(report any) ([]byte, error)

type dispatchKey struct {
	commandClass uint8
	command      uint8
}

type dispatchEntry struct {
	decode decodeFunc
	encode encodeFunc
}

var dispatchTable = map[dispatchKey]dispatchEntry{}

// register adds a decoder/encoder pair for (commandClass, command) to the
// dispatch table. Called from each bodies_*.go file's init().
func register(commandClass uint8, command uint8, decode decodeFunc, encode encodeFunc) {
	key := dispatchKey{commandClass, command}
	if _, exists := dispatchTable[key]; exists {
		panic(fmt.Sprintf("zipframe: duplicate registration for cc=0x%02x cmd=0x%02x", commandClass, command))
	}
	dispatchTable[key] = dispatchEntry{decode: decode, encode: encode}
}

// DecodeCommand dispatches a raw command-class payload (command class byte,
// command byte, then command-specific bytes) to its registered decoder.
// An unrecognized (class, command) pair decodes to the default fallback
// rather than erroring. A body too short to carry the class/command prefix,
// or one its registered decoder rejects, returns an error.
func DecodeCommand(body []byte) (*Command, error) {
	if len(body) < 2 {
		return nil, fmt.Errorf("zipframe: command body too short: %d < 2", len(body))
	}

	ccByte, cmdByte := body[0], body[1]
	rest := body[2:]

	ccSym := mapping.CommandClass(ccByte)
	cmdSym := mapping.Command(ccByte, cmdByte)

	entry, ok := dispatchTable[dispatchKey{ccByte, cmdByte}]
	if !ok {
		// Default fallback: decode via the mapping tables and carry the
		// raw body verbatim.
		return &Command{
			CommandClass: ccSym,
			Command:      cmdSym,
			Raw:          rest,
		}, nil
	}

	report, err := entry.decode(rest)
	if err != nil {
		return nil, fmt.Errorf("zipframe: decode cc=%s cmd=%s: %w", ccSym, cmdSym, err)
	}

	return &Command{
		CommandClass: ccSym,
		Command:      cmdSym,
		Report:       report,
	}, nil
}

// EncodeCommand encodes a structured report back to its command-class
// payload (command class byte, command byte, then command-specific bytes),
// using the registered encoder for (commandClass, command).
func EncodeCommand(commandClass uint8, command uint8, report any) ([]byte, error) {
	entry, ok := dispatchTable[dispatchKey{commandClass, command}]
	if !ok {
		return nil, fmt.Errorf("zipframe: no encoder registered for cc=0x%02x cmd=0x%02x", commandClass, command)
	}

	payload, err := entry.encode(report)
	if err != nil {
		return nil, fmt.Errorf("zipframe: encode cc=0x%02x cmd=0x%02x: %w", commandClass, command, err)
	}

	return append([]byte{commandClass, command}, payload...), nil
}
