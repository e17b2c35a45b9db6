// Package security2 handles the parts of Z-Wave Security-2 key exchange
// that belong in this codec: decoding the requested-keys bitmask used
// during Smart Start bootstrapping, naming KEX failure types, and
// deriving the public-key half of a bootstrapping key pair. The rest of
// the S2 handshake (ECDH shared-secret derivation, CCM encryption, nonce
// exchange) is treated as an external primitive library and is out of
// scope here.
package security2

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/curve25519"

	"github.com/cybojanek/zwaveip/mapping"
)

// KeyPair is a Curve25519 key pair usable for the ECDH step of Security-2
// bootstrapping. Only PublicKey is meaningful to this package: the DSK
// presented to a user during Smart Start provisioning is the low 16 bytes
// of PublicKey (Z-Wave's convention for QR-code and pin-code DSKs).
type KeyPair struct {
	PrivateKey [32]byte
	PublicKey  [32]byte
}

// GenerateKeyPair produces a new Curve25519 key pair using a
// cryptographically secure random source.
func GenerateKeyPair() (*KeyPair, error) {
	var kp KeyPair
	if _, err := rand.Read(kp.PrivateKey[:]); err != nil {
		return nil, fmt.Errorf("security2: generate private key: %w", err)
	}

	pub, err := curve25519.X25519(kp.PrivateKey[:], curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("security2: derive public key: %w", err)
	}
	copy(kp.PublicKey[:], pub)

	return &kp, nil
}

// DSK returns the 16-byte DSK derived from the key pair's public key, ready
// to be handed to dsk.String for the dash-grouped presentation form.
func (kp *KeyPair) DSK() []byte {
	out := make([]byte, 16)
	copy(out, kp.PublicKey[:16])
	return out
}

// RequestedKeys decodes a node_add_keys_report requested_keys bitmask into
// the set of key symbols the joining node is asking for.
func RequestedKeys(mask uint8) []mapping.Symbol {
	return mapping.KeysGranted(mask)
}

// KexFailType names the Security-2 key exchange failure reasons carried in
// a failed node_add_status report's kex_fail_type field.
type KexFailType uint8

// Recognized KEX_FAIL values (Z-Wave S2 KEXFailType).
const (
	KexFailNone       KexFailType = 0x00
	KexFailKex        KexFailType = 0x01
	KexFailScheme     KexFailType = 0x02
	KexFailCurves     KexFailType = 0x03
	KexFailDecrypt    KexFailType = 0x05
	KexFailCancel     KexFailType = 0x06
	KexFailAuth       KexFailType = 0x07
	KexFailKeyGet     KexFailType = 0x08
	KexFailKeyVerify  KexFailType = 0x09
	KexFailKeyReport  KexFailType = 0x0A
)

var kexFailNames = map[KexFailType]string{
	KexFailNone:      "none",
	KexFailKex:       "kex_fail_kex",
	KexFailScheme:    "kex_fail_scheme",
	KexFailCurves:    "kex_fail_curves",
	KexFailDecrypt:   "kex_fail_decrypt",
	KexFailCancel:    "kex_fail_cancel",
	KexFailAuth:      "kex_fail_auth",
	KexFailKeyGet:    "kex_fail_key_get",
	KexFailKeyVerify: "kex_fail_key_verify",
	KexFailKeyReport: "kex_fail_key_report",
}

// String renders the failure type, falling back to a numeric form for
// values outside the recognized set (never errors, in keeping with the
// codec's "never fail fatally on unknown values" rule).
func (k KexFailType) String() string {
	if name, ok := kexFailNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(0x%02x)", uint8(k))
}
