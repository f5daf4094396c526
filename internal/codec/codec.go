// Package codec applies a reversible transform to message bodies on their
// way to and from the transport. The transform is pluggable so the simulated
// digest scheme can be swapped for real encryption without touching the
// dispatcher or store.
package codec

// Codec converts between plaintext and wireform. Implementations must never
// panic out of Unwrap: on any failure they return the raw input so rendering
// degrades instead of crashing.
type Codec interface {
	Wrap(plaintext string) string
	Unwrap(wireform string) string
	IsWrapped(value string) bool
}
