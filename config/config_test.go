package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	opts, err := Parse([]byte("gateway_ip: fd00::1\n"))
	require.NoError(t, err)

	assert.Equal(t, "fd00::1", opts.GatewayIP)
	assert.Equal(t, DefaultGatewayPort, opts.GatewayPort)
	assert.Equal(t, DefaultLocalPort, opts.LocalPort)
	assert.Equal(t, uint8(DefaultRetries), opts.DefaultRetries)
	assert.Equal(t, DefaultSendTimeoutMS, opts.SendTimeoutMS)
}

func TestParseOverridesDefaults(t *testing.T) {
	opts, err := Parse([]byte(`
gateway_ip: fd00::1
gateway_port: 4123
local_port: 4001
default_retries: 5
send_timeout_ms: 500
`))
	require.NoError(t, err)

	assert.Equal(t, 4001, opts.LocalPort)
	assert.Equal(t, uint8(5), opts.DefaultRetries)
	assert.Equal(t, 500, opts.SendTimeoutMS)
}

func TestParseRejectsMissingGatewayIP(t *testing.T) {
	_, err := Parse([]byte("local_port: 4000\n"))
	assert.Error(t, err)
}

func TestParseRejectsBadGatewayIP(t *testing.T) {
	_, err := Parse([]byte("gateway_ip: not-an-ip\n"))
	assert.Error(t, err)
}

func TestParseRejectsBadPort(t *testing.T) {
	_, err := Parse([]byte("gateway_ip: fd00::1\ngateway_port: 70000\n"))
	assert.Error(t, err)
}
