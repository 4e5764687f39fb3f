package flake

import "github.com/CartoonFan/flake/internal/bitio"

// UTF-8-style boundaries for the frame/sample number coding used by FLAC
// frame headers. Unlike text UTF-8, this extends up to 7 bytes to carry a
// 36-bit sample number.
var utf8Max = [...]uint64{
	0x7F,
	0x7FF,
	0xFFFF,
	0x1FFFFF,
	0x3FFFFFF,
	0x7FFFFFFF,
	0xFFFFFFFFF,
}

// writeUTF8 writes x using the variable-length, UTF-8-style coding FLAC uses
// for frame and sample numbers: 1 byte for ASCII-range values, up to 7 bytes
// for the full 36-bit sample-number range. Grounded on mewkiz-flac's
// utf8_encode.go and cross-checked against libflake/encode.c's write_utf8.
func writeUTF8(w *bitio.Writer, x uint64) error {
	if x <= utf8Max[0] {
		w.WriteBits(8, x)
		return nil
	}
	var n int
	for n = 1; n < len(utf8Max); n++ {
		if x <= utf8Max[n] {
			break
		}
	}
	if n == len(utf8Max) {
		return internalf("value %d exceeds maximum encodable frame/sample number", x)
	}
	// n continuation bytes, T = n+1 total bytes. The lead byte carries T
	// high one-bits, an implicit zero separator, then 7-T data bits.
	total := n + 1
	dataBits := uint(7 - total)
	topOnes := ^byte(0xFF >> uint(total))
	lead := topOnes | byte(x>>uint(6*n))&(1<<dataBits-1)
	w.WriteBits(8, uint64(lead))
	for i := n - 1; i >= 0; i-- {
		cont := 0x80 | byte(x>>uint(6*i))&0x3F
		w.WriteBits(8, uint64(cont))
	}
	return nil
}
