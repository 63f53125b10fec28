// Package signer provides an implementation of the signer interface from
// next.orly.dev/pkg/interfaces/signer backed by the curve25519 ECDSA scheme,
// used to abstract the signature algorithm from the usage.
package signer

import (
	orlysigner "next.orly.dev/pkg/interfaces/signer"
)

// I is an alias for the signer interface from next.orly.dev/pkg/interfaces/signer.
type I = orlysigner.I
