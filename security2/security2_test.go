package security2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybojanek/zwaveip/dsk"
)

func TestGenerateKeyPairProducesUsableDSK(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	d := kp.DSK()
	require.Len(t, d, 16)

	s, err := dsk.String(d)
	require.NoError(t, err)
	assert.Len(t, s, len("NNNNN-NNNNN-NNNNN-NNNNN-NNNNN-NNNNN-NNNNN-NNNNN"))
}

func TestGenerateKeyPairIsRandom(t *testing.T) {
	a, err := GenerateKeyPair()
	require.NoError(t, err)
	b, err := GenerateKeyPair()
	require.NoError(t, err)

	assert.NotEqual(t, a.PublicKey, b.PublicKey)
}

func TestRequestedKeysDecodesBitmask(t *testing.T) {
	syms := RequestedKeys(0x03)
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"s2_unauthenticated", "s2_authenticated"}, names)
}

func TestKexFailTypeString(t *testing.T) {
	assert.Equal(t, "kex_fail_auth", KexFailAuth.String())
	assert.Equal(t, "unknown(0xff)", KexFailType(0xFF).String())
}
