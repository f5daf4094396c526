package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestCodec_WrapUnwrap(t *testing.T) {
	c := NewDigestCodec()

	tests := []struct {
		name      string
		plaintext string
	}{
		{"simple text", "hello"},
		{"empty string", ""},
		{"unicode", "привет 👋"},
		{"multiline", "line one\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire := c.Wrap(tt.plaintext)
			assert.True(t, c.IsWrapped(wire))
			assert.Equal(t, tt.plaintext, c.Unwrap(wire))
		})
	}
}

func TestDigestCodec_PassthroughFallback(t *testing.T) {
	c := NewDigestCodec()

	// Input without a delimiter is treated as already-plaintext and must
	// come back unchanged, never raise.
	in := "plain text with no delimiter"
	assert.Equal(t, in, c.Unwrap(in))
	assert.False(t, c.IsWrapped(in))
}

func TestDigestCodec_WireformIsDistinguishable(t *testing.T) {
	c := NewDigestCodec()
	wire := c.Wrap("hello")
	assert.NotEqual(t, "hello", wire)
	assert.True(t, strings.HasPrefix(wire, "hello"+delimiter))
}

func TestAEADCodec_RoundTrip(t *testing.T) {
	c := NewAEADCodec([]byte("channel-secret"))

	wire := c.Wrap("confidential body")
	require.True(t, c.IsWrapped(wire))
	assert.NotContains(t, wire, "confidential")
	assert.Equal(t, "confidential body", c.Unwrap(wire))
}

func TestAEADCodec_UnwrapFailuresFallBack(t *testing.T) {
	sealed := NewAEADCodec([]byte("key-a")).Wrap("secret")

	tests := []struct {
		name  string
		codec *AEADCodec
		input string
	}{
		{"wrong key", NewAEADCodec([]byte("key-b")), sealed},
		{"corrupt base64", NewAEADCodec([]byte("key-a")), aeadPrefix + "!!not-base64!!"},
		{"truncated", NewAEADCodec([]byte("key-a")), aeadPrefix + "AAAA"},
		{"no prefix", NewAEADCodec([]byte("key-a")), "plain body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must return the raw input rather than panic or error.
			assert.Equal(t, tt.input, tt.codec.Unwrap(tt.input))
		})
	}
}
