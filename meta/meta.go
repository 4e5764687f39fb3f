// Package meta defines the FLAC metadata blocks this encoder emits: the
// mandatory STREAMINFO block, an optional PADDING block reserved for
// in-place STREAMINFO rewrites, and an optional VORBIS_COMMENT block.
// Encoding uses github.com/icza/bitio's unbounded writer, matching
// mewkiz-flac's enc.go: header/metadata emission has no "overflow signals a
// bug" requirement the way frame bodies do, so the simpler unbounded writer
// fits here instead of the bespoke bounded one frame bodies use.
package meta

import "github.com/icza/bitio"

// Type identifies a metadata block's wire type code.
type Type uint8

// Metadata block types: all seven standard FLAC type codes are named. This
// encoder emits only STREAMINFO, VORBIS_COMMENT and PADDING.
const (
	TypeStreamInfo Type = iota
	TypePadding
	TypeApplication
	TypeSeekTable
	TypeVorbisComment
	TypeCueSheet
	TypePicture
)

// BlockHeader is the 4-byte header preceding every metadata block's body: a
// last-block flag, a 7-bit type code, and a 24-bit body length in bytes.
type BlockHeader struct {
	IsLast bool
	Type   Type
	Length uint32
}

// HeaderLen is the fixed wire length of a metadata block header, in bytes.
const HeaderLen = 4

// Encode writes h's 4-byte wire form to bw.
func (h BlockHeader) Encode(bw *bitio.Writer) error {
	v := uint64(h.Length&0xFFFFFF) | uint64(byte(h.Type)&0x7F)<<24
	if h.IsLast {
		v |= 1 << 31
	}
	return bw.WriteBits(v, 32)
}
