package meta

import "github.com/icza/bitio"

// StreamInfo is the mandatory first metadata block of a FLAC stream: the
// decoder-facing summary of every structural parameter used throughout the
// stream. Field names follow the reference encoder's usage (BlockSizeMin,
// BlockSizeMax, NChannels, ...) rather than the bitstream's unlabelled field
// order.
type StreamInfo struct {
	// BlockSizeMin and BlockSizeMax are the minimum and maximum block size,
	// in samples, used by any frame in the stream.
	BlockSizeMin, BlockSizeMax int
	// FrameSizeMin and FrameSizeMax are the minimum and maximum frame size,
	// in bytes. Zero means unknown.
	FrameSizeMin, FrameSizeMax int
	// SampleRate is the stream's sample rate in Hz.
	SampleRate uint32
	// NChannels is the number of channels, 1..8.
	NChannels uint8
	// BitsPerSample is the sample bit depth, 4..32.
	BitsPerSample uint8
	// NSamples is the total inter-channel sample count. Zero means unknown.
	NSamples uint64
	// MD5sum is the MD5 checksum of the unencoded, interleaved PCM.
	MD5sum [16]byte
}

// StreamInfoLen is the fixed wire length of a STREAMINFO block body, in
// bytes.
const StreamInfoLen = 34

// Encode writes si's 34-byte STREAMINFO body to bw.
func (si StreamInfo) Encode(bw *bitio.Writer) error {
	fields := []struct {
		v uint64
		n uint8
	}{
		{uint64(si.BlockSizeMin), 16},
		{uint64(si.BlockSizeMax), 16},
		{uint64(si.FrameSizeMin), 24},
		{uint64(si.FrameSizeMax), 24},
		{uint64(si.SampleRate), 20},
		{uint64(si.NChannels - 1), 3},
		{uint64(si.BitsPerSample - 1), 5},
		{si.NSamples, 36},
	}
	for _, f := range fields {
		if err := bw.WriteBits(f.v, f.n); err != nil {
			return err
		}
	}
	for _, b := range si.MD5sum {
		if err := bw.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}
