package flake

import (
	"github.com/CartoonFan/flake/frame"
	"github.com/CartoonFan/flake/internal/bitio"
	"github.com/CartoonFan/flake/internal/hashutil/crc16"
	"github.com/CartoonFan/flake/internal/hashutil/crc8"
)

// standardBlockSizeCodes maps a block size to its 4-bit frame-header code,
// for the sizes that have a direct code (576*2^n for n=0..3, 256*2^n for
// n=0..7). Block size 192 uses code 1; sizes without a direct code fall back
// to an 8-bit (code 6) or 16-bit (code 7) field following the header, which
// blockSizeCode signals via the extended return value.
var standardBlockSizeCodes = map[int]uint8{
	192: 1, 576: 2, 1152: 3, 2304: 4, 4608: 5,
	256: 8, 512: 9, 1024: 10, 2048: 11, 4096: 12, 8192: 13, 16384: 14, 32768: 15,
}

// blockSizeCode returns the frame header's 4-bit block-size code for n, and
// whether an extended field holding n-1 is appended after the header because
// n has no direct code: 8 bits under code 6 (n <= 256), 16 bits under code 7.
func blockSizeCode(n int) (code uint8, extended bool) {
	if c, ok := standardBlockSizeCodes[n]; ok {
		return c, false
	}
	if n <= 256 {
		return 6, true
	}
	return 7, true
}

// bitsPerSampleCode returns the frame header's 3-bit bits-per-sample code for
// bps. Only the depths this encoder accepts (8, 16, 24) have a code; all
// three do.
func bitsPerSampleCode(bps int) uint8 {
	switch bps {
	case 8:
		return 1
	case 16:
		return 4
	case 24:
		return 6
	default:
		return 0
	}
}

// channelAssignmentCode returns the frame header's 4-bit channel-assignment
// code for ch.
func channelAssignmentCode(ch frame.Channels) uint8 {
	switch ch {
	case frame.ChannelsLeftSide:
		return 8
	case frame.ChannelsRightSide:
		return 9
	case frame.ChannelsMidSide:
		return 10
	default:
		return uint8(ch)
	}
}

// writeFrameHeader emits a fixed-blocksize frame header (sync code through
// the header CRC-8) to w. The CRC-8 covers every header byte written before
// it. The returned error is non-nil only if the frame number or sample rate
// cannot be encoded.
func writeFrameHeader(w *bitio.Writer, ch frame.Channels, blockSize, sampleRate, bps int, frameNum uint64) error {
	start := w.Count()

	w.WriteBits(14, 0x3FFE)
	w.WriteBits(1, 0) // reserved
	w.WriteBits(1, 0) // fixed block size: frame number, not sample number

	bsCode, bsExt := blockSizeCode(blockSize)
	w.WriteBits(4, uint64(bsCode))

	srCode, srExt := sampleRateCode(sampleRate)
	w.WriteBits(4, uint64(srCode))

	w.WriteBits(4, uint64(channelAssignmentCode(ch)))
	w.WriteBits(3, uint64(bitsPerSampleCode(bps)))
	w.WriteBits(1, 0) // reserved

	if err := writeUTF8(w, frameNum); err != nil {
		return err
	}

	if bsExt {
		if bsCode == 6 {
			w.WriteBits(8, uint64(blockSize-1))
		} else {
			w.WriteBits(16, uint64(blockSize-1))
		}
	}
	if srExt {
		_, value, bits, ok := extendedSampleRateField(sampleRate)
		if !ok {
			// validateResolved rejects sample rates that don't fit any of the
			// standard codes or the three extended forms, so this should be
			// unreachable for a ResolvedConfig that passed ResolveConfig.
			return internalf("sample rate %d cannot be represented by any extended header field", sampleRate)
		}
		w.WriteBits(bits, value)
	}

	// The header is a whole number of bytes here; Align commits the bits
	// still held in the accumulator so the CRC sees all of them.
	w.Align()
	headerBytes := w.Bytes()[start:]
	crc := crc8.NewATM()
	crc.Write(headerBytes)
	w.WriteBits(8, uint64(crc.Sum8()))
	return nil
}

// subframeBitsPerSample returns the bits-per-sample a subframe must be coded
// at: one more than the stream's nominal depth for the side channel of a
// decorrelated stereo pair, since left-right can require one extra bit.
func subframeBitsPerSample(ch frame.Channels, idx, bps int) int {
	if idx == 1 && (ch == frame.ChannelsLeftSide || ch == frame.ChannelsMidSide) {
		return bps + 1
	}
	if idx == 0 && ch == frame.ChannelsRightSide {
		return bps + 1
	}
	return bps
}

// writeSubframe emits one channel's subframe: its header (type code, order,
// wasted-bits flag) followed by its samples or residual.
func writeSubframe(w *bitio.Writer, sub *frame.Subframe, bps int) {
	w.WriteBits(1, 0) // reserved
	w.WriteBits(6, uint64(sub.TypeCode()))
	w.WriteBits(1, 0) // wasted-bits flag: this encoder never reports wasted bits

	switch sub.Pred {
	case frame.PredConstant:
		w.WriteBitsSigned(uint(bps), sub.Samples[0])
	case frame.PredVerbatim:
		for _, s := range sub.Samples {
			w.WriteBitsSigned(uint(bps), s)
		}
	case frame.PredFixed:
		for _, s := range sub.Samples[:sub.Order] {
			w.WriteBitsSigned(uint(bps), s)
		}
		writeResidual(w, sub.Residuals, sub.NSamples, sub.Order, sub.Rice)
	case frame.PredLPC:
		for _, s := range sub.Samples[:sub.Order] {
			w.WriteBitsSigned(uint(bps), s)
		}
		w.WriteBits(4, uint64(sub.LPCPrecision-1))
		w.WriteBits(5, uint64(sub.LPCShift))
		for _, c := range sub.LPCCoeffs {
			w.WriteBitsSigned(uint(sub.LPCPrecision), c)
		}
		writeResidual(w, sub.Residuals, sub.NSamples, sub.Order, sub.Rice)
	}
}

// encodeFrame encodes one block of deinterleaved, per-channel samples
// (channels[c] holds blockSize samples for channel c) into a complete FLAC
// frame: header, one subframe per channel (after stereo decorrelation for a
// 2-channel block), and a CRC-16 footer. buf must be large enough to hold
// the verbatim worst case; encodeFrame falls back to an all-verbatim
// re-encode if the predicted encoding would overflow it.
func encodeFrame(buf []byte, channels [][]int32, rc ResolvedConfig, frameNum uint64) ([]byte, error) {
	blockSize := len(channels[0])
	ch := frame.Channels(0)
	subframeInputs := channels

	if len(channels) == 2 && blockSize > minStereoBlockSize {
		var assignment frame.Channels
		assignment, subframeInputs = stereoDecorrelate(channels[0], channels[1], rc.Stereo)
		ch = assignment
	} else if len(channels) == 2 {
		ch = frame.ChannelsLR
	} else {
		var err error
		ch, err = frame.ChannelsForCount(len(channels))
		if err != nil {
			return nil, err
		}
	}

	w := bitio.NewWriter(buf)
	if err := writeFrameHeader(w, ch, blockSize, rc.SampleRate, rc.BitsPerSample, frameNum); err != nil {
		return nil, err
	}

	for i, samples := range subframeInputs {
		bps := subframeBitsPerSample(ch, i, rc.BitsPerSample)
		sub := encodeSubframe(samples, bps, rc)
		writeSubframe(w, sub, bps)
	}

	w.Align()
	if w.Eof {
		return encodeFrameVerbatim(buf, channels, rc, frameNum)
	}

	crc := crc16.NewIBM()
	crc.Write(w.Bytes())
	footer := bitio.NewWriter(buf[w.Count():])
	footer.WriteBits(16, uint64(crc.Sum16()))
	footer.Align()
	if footer.Eof {
		return nil, ErrBufferOverflow
	}

	return buf[:w.Count()+2], nil
}

// encodeFrameVerbatim re-encodes a block with every channel forced to
// PredVerbatim and no stereo decorrelation: the guaranteed-fitting fallback
// when the predicted encoding overflows buf (residual coding searches are
// cost estimates, not hard guarantees, so an overflow is rare but possible).
func encodeFrameVerbatim(buf []byte, channels [][]int32, rc ResolvedConfig, frameNum uint64) ([]byte, error) {
	blockSize := len(channels[0])
	ch, err := frame.ChannelsForCount(len(channels))
	if err != nil {
		return nil, err
	}

	w := bitio.NewWriter(buf)
	if err := writeFrameHeader(w, ch, blockSize, rc.SampleRate, rc.BitsPerSample, frameNum); err != nil {
		return nil, err
	}
	for _, samples := range channels {
		sub := encodeVerbatimSubframe(samples, rc.BitsPerSample).sub
		writeSubframe(w, sub, rc.BitsPerSample)
	}
	w.Align()
	if w.Eof {
		return nil, ErrBufferOverflow
	}

	crc := crc16.NewIBM()
	crc.Write(w.Bytes())
	footer := bitio.NewWriter(buf[w.Count():])
	footer.WriteBits(16, uint64(crc.Sum16()))
	footer.Align()
	if footer.Eof {
		return nil, ErrBufferOverflow
	}
	return buf[:w.Count()+2], nil
}

// verbatimFrameSize returns the worst-case byte size of a frame encoding
// blockSize samples across nChannels channels at bps bits per sample (plus
// one extra bit for a decorrelated side channel), used to size the buffer
// passed to encodeFrame.
func verbatimFrameSize(blockSize, nChannels, bps int) int {
	// 32 fixed header bits, up to 56 for a 7-byte UTF-8 frame number, up to 16
	// for an extended block-size field, up to 16 for an extended sample-rate
	// field, and 8 for the header CRC.
	headerBits := 32 + 56 + 16 + 16 + 8
	subframeBits := nChannels * (8 + (bps+1)*blockSize)
	return (headerBits+subframeBits)/8 + 1 + 2
}
