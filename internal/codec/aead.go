package codec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// aeadPrefix marks a ciphertext wireform so IsWrapped stays a cheap string
// test on both codec implementations.
const aeadPrefix = "enc1:"

// AEADCodec seals message bodies with ChaCha20-Poly1305 under a per-channel
// key. Key distribution is out of scope; the key is handed in by whoever
// provisions the channel.
type AEADCodec struct {
	key [chacha20poly1305.KeySize]byte
}

// NewAEADCodec derives a fixed-size key from arbitrary channel secret
// material.
func NewAEADCodec(channelSecret []byte) *AEADCodec {
	c := &AEADCodec{}
	c.key = sha256.Sum256(channelSecret)
	return c
}

func (c *AEADCodec) Wrap(plaintext string) string {
	aead, err := chacha20poly1305.New(c.key[:])
	if err != nil {
		// Key size is fixed by construction; this cannot fail with a valid
		// receiver.
		return plaintext
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return plaintext
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return aeadPrefix + base64.StdEncoding.EncodeToString(sealed)
}

// Unwrap opens a sealed body. Any failure, wrong key, truncated input,
// corrupt base64, falls back to returning the raw wireform so rendering
// never crashes.
func (c *AEADCodec) Unwrap(wireform string) string {
	if !strings.HasPrefix(wireform, aeadPrefix) {
		return wireform
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(wireform, aeadPrefix))
	if err != nil || len(raw) < chacha20poly1305.NonceSize {
		return wireform
	}
	aead, err := chacha20poly1305.New(c.key[:])
	if err != nil {
		return wireform
	}
	nonce, sealed := raw[:chacha20poly1305.NonceSize], raw[chacha20poly1305.NonceSize:]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return wireform
	}
	return string(plain)
}

func (c *AEADCodec) IsWrapped(value string) bool {
	return strings.HasPrefix(value, aeadPrefix)
}
