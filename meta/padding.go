package meta

import "github.com/icza/bitio"

// Padding is a PADDING metadata block body: Length zero bytes reserved so a
// later STREAMINFO rewrite (to fill in NSamples/MD5sum/frame-size bounds
// once the whole stream has been encoded) doesn't have to shift every
// following block.
type Padding struct {
	Length int
}

// Encode writes p.Length zero bytes to bw.
func (p Padding) Encode(bw *bitio.Writer) error {
	for i := 0; i < p.Length; i++ {
		if err := bw.WriteByte(0); err != nil {
			return err
		}
	}
	return nil
}
