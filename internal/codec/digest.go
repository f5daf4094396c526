package codec

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// delimiter separates plaintext from its digest in the legacy wireform. It
// must never occur in user content; the unlikely collision is handled by
// Unwrap taking only the first segment.
const delimiter = "::sig::"

// DigestCodec is the legacy transform: plaintext concatenated with a sha256
// digest of itself. It authenticates nothing against an active attacker and
// hides nothing; it exists so old stored bodies keep decoding. New channels
// should use AEADCodec.
type DigestCodec struct{}

func NewDigestCodec() *DigestCodec { return &DigestCodec{} }

func (c *DigestCodec) Wrap(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return plaintext + delimiter + hex.EncodeToString(sum[:])
}

// Unwrap returns the segment before the delimiter. Input without a delimiter
// is treated as already-plaintext (legacy and system messages) and returned
// unchanged.
func (c *DigestCodec) Unwrap(wireform string) string {
	if !strings.Contains(wireform, delimiter) {
		return wireform
	}
	return strings.SplitN(wireform, delimiter, 2)[0]
}

func (c *DigestCodec) IsWrapped(value string) bool {
	return strings.Contains(value, delimiter)
}
