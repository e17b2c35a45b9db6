package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandClassUnknownIsTagged(t *testing.T) {
	sym := CommandClass(0xFE)
	assert.True(t, sym.Unknown)
	assert.Equal(t, uint8(0xFE), sym.Raw)
}

func TestCommandClassKnown(t *testing.T) {
	sym := CommandClass(CommandClassNetworkManagementProxy)
	assert.False(t, sym.Unknown)
	assert.Equal(t, "network_management_proxy", sym.Name)
}

func TestCommandUnknownPairIsTagged(t *testing.T) {
	sym := Command(0xFE, 0xFE)
	assert.True(t, sym.Unknown)
	assert.Equal(t, uint8(0xFE), sym.Raw)
}

func TestCommandKnownPair(t *testing.T) {
	sym := Command(CommandClassNetworkManagementProxy, CmdNetworkManagementProxyNodeListReport)
	assert.Equal(t, "node_list_report", sym.Name)
}

func TestKeysGrantedDecodesEachBit(t *testing.T) {
	syms := KeysGranted(KeyS2Unauthenticated | KeyS2AccessControl)
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"s2_unauthenticated", "s2_access_control"}, names)
}

func TestKeysGrantedEmpty(t *testing.T) {
	assert.Empty(t, KeysGranted(0))
}

func TestIsValidNodeID(t *testing.T) {
	assert.False(t, IsValidNodeID(0))
	for i := uint8(1); i <= 232; i++ {
		assert.True(t, IsValidNodeID(i), "node %d should be valid", i)
	}
	for i := 233; i <= 255; i++ {
		assert.False(t, IsValidNodeID(uint8(i)), "node %d should be invalid", i)
	}
}

func TestNotificationTypeAndState(t *testing.T) {
	typ := NotificationType(NotificationTypeHomeSecurity)
	assert.Equal(t, "home_security", typ.Name)

	state := NotificationState(NotificationTypeHomeSecurity, 0x02)
	assert.Equal(t, "motion_detected", state.Name)

	unknownState := NotificationState(NotificationTypeHomeSecurity, 0xEE)
	assert.True(t, unknownState.Unknown)
}

func TestSymbolString(t *testing.T) {
	assert.Equal(t, "network_management_proxy", CommandClass(CommandClassNetworkManagementProxy).String())
	assert.Equal(t, "unknown(0xfe)", CommandClass(0xFE).String())
}
