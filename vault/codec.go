package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

var errDecodeFailed = errors.New("vault: ciphertext decode failed")

// codec is the reversible local transform applied to remembered passwords:
// AES-256-GCM under a key derived from operator-supplied material via
// HKDF-SHA256. The nonce is prepended to the ciphertext and the whole blob
// is base64-encoded for storage.
type codec struct {
	aead cipher.AEAD
}

func newCodec(keyMaterial []byte) (*codec, error) {
	if len(keyMaterial) == 0 {
		return nil, errors.New("vault: key material required")
	}

	h := hkdf.New(sha256.New, keyMaterial, nil, []byte("consoleauth-vault-v1"))
	key := make([]byte, 32)
	if _, err := io.ReadFull(h, key); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &codec{aead: aead}, nil
}

// encode returns the storable ciphertext for plaintext, or "" on failure.
// An empty-string return is the codec's only failure signal.
func (c *codec) encode(plaintext string) string {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return ""
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed)
}

// decode reverses encode. Any malformed, truncated, or foreign-key blob
// returns errDecodeFailed; callers degrade to an empty password.
func (c *codec) decode(encoded string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errDecodeFailed
	}
	if len(blob) < c.aead.NonceSize() {
		return "", errDecodeFailed
	}
	nonce, sealed := blob[:c.aead.NonceSize()], blob[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", errDecodeFailed
	}
	return string(plaintext), nil
}
