package meta

import "github.com/icza/bitio"

// VorbisComment is a VORBIS_COMMENT metadata block: a vendor string and a
// list of "field=value" comment entries. Unlike the rest of the FLAC
// bitstream, this block's multi-byte integers are little-endian, inherited
// unchanged from the Vorbis comment header format it reuses.
type VorbisComment struct {
	Vendor   string
	Comments []string
}

// Len returns the wire length of c's body, in bytes.
func (c VorbisComment) Len() int {
	n := 4 + len(c.Vendor) + 4
	for _, s := range c.Comments {
		n += 4 + len(s)
	}
	return n
}

// Encode writes c's body to bw, little-endian throughout.
func (c VorbisComment) Encode(bw *bitio.Writer) error {
	put := func(s string) error {
		if err := writeUint32LE(bw, uint32(len(s))); err != nil {
			return err
		}
		_, err := bw.Write([]byte(s))
		return err
	}
	if err := put(c.Vendor); err != nil {
		return err
	}
	if err := writeUint32LE(bw, uint32(len(c.Comments))); err != nil {
		return err
	}
	for _, s := range c.Comments {
		if err := put(s); err != nil {
			return err
		}
	}
	return nil
}

func writeUint32LE(bw *bitio.Writer, v uint32) error {
	_, err := bw.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
	return err
}
