// Package config loads coordinator startup options from YAML, mirroring the
// teacher's preference for a typed options struct over ad hoc flags.
package config

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
	"os"

	"gopkg.in/yaml.v3"
)

// Default option values.
const (
	DefaultLocalPort     = 4000
	DefaultGatewayPort   = 4123
	DefaultRetries       = 2
	DefaultSendTimeoutMS = 2000
)

// Options are the recognized coordinator startup options.
type Options struct {
	GatewayIP     string `yaml:"gateway_ip"`
	GatewayPort   int    `yaml:"gateway_port"`
	LocalPort     int    `yaml:"local_port"`
	DefaultRetries uint8  `yaml:"default_retries"`
	SendTimeoutMS int    `yaml:"send_timeout_ms"`
}

// defaults returns an Options populated with every default value, so Load
// only needs to override fields the file actually sets.
func defaults() Options {
	return Options{
		GatewayPort:    DefaultGatewayPort,
		LocalPort:      DefaultLocalPort,
		DefaultRetries: DefaultRetries,
		SendTimeoutMS:  DefaultSendTimeoutMS,
	}
}

// Load reads and validates coordinator options from a YAML file at path.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes coordinator options from raw YAML bytes.
func Parse(data []byte) (*Options, error) {
	opts := defaults()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Validate checks that required fields are present and well formed.
func (o *Options) Validate() error {
	if o.GatewayIP == "" {
		return fmt.Errorf("config: gateway_ip is required")
	}
	if net.ParseIP(o.GatewayIP) == nil {
		return fmt.Errorf("config: gateway_ip %q is not a valid IP address", o.GatewayIP)
	}
	if o.GatewayPort <= 0 || o.GatewayPort > 65535 {
		return fmt.Errorf("config: gateway_port %d out of range", o.GatewayPort)
	}
	if o.LocalPort <= 0 || o.LocalPort > 65535 {
		return fmt.Errorf("config: local_port %d out of range", o.LocalPort)
	}
	if o.SendTimeoutMS <= 0 {
		return fmt.Errorf("config: send_timeout_ms %d must be positive", o.SendTimeoutMS)
	}
	return nil
}
