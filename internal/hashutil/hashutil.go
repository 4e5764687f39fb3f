// Package hashutil defines narrow hash.Hash extensions for the small,
// fixed-width checksums used by the FLAC frame layout.
package hashutil

import "hash"

// Hash8 is a hash.Hash that produces an 8-bit checksum.
type Hash8 interface {
	hash.Hash
	Sum8() uint8
}

// Hash16 is a hash.Hash that produces a 16-bit checksum.
type Hash16 interface {
	hash.Hash
	Sum16() uint16
}
