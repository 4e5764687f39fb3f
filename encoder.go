package flake

import (
	"bytes"

	"github.com/CartoonFan/flake/meta"
	"github.com/icza/bitio"
)

// StreamInfo is the mandatory first metadata block of a FLAC stream.
type StreamInfo = meta.StreamInfo

// flacMarker is the 4-byte signature opening every FLAC stream.
const flacMarker = "fLaC"

// Encoder holds the per-stream state needed to encode successive blocks of
// PCM into FLAC frames: the resolved configuration, the running frame
// number and sample count, the running MD5 of the unencoded audio, and a
// reusable frame buffer.
type Encoder struct {
	rc       ResolvedConfig
	si       meta.StreamInfo
	frameNum uint64
	nSamples uint64
	md5      *md5Accumulator
	buf      []byte
	closed   bool
}

// NewEncoder validates config, resolves its compression-level defaults, and
// returns a ready-to-use Encoder along with the leading bytes of the FLAC
// stream: the "fLaC" marker, the STREAMINFO block (with placeholder
// NSamples/MD5sum, to be rewritten via WriteStreamInfo once Close returns
// the final digest), a VORBIS_COMMENT block with vendor "flake", and, if
// configured, a trailing PADDING block.
func NewEncoder(config EncoderConfig) (*Encoder, []byte, error) {
	rc, err := ResolveConfig(config)
	if err != nil {
		return nil, nil, err
	}

	e := &Encoder{
		rc:  rc,
		md5: newMD5Accumulator(rc.BitsPerSample),
		buf: make([]byte, verbatimFrameSize(rc.BlockSize, rc.Channels, rc.BitsPerSample)),
	}
	e.si = meta.StreamInfo{
		BlockSizeMin:  rc.BlockSize,
		BlockSizeMax:  rc.BlockSize,
		SampleRate:    uint32(rc.SampleRate),
		NChannels:     uint8(rc.Channels),
		BitsPerSample: uint8(rc.BitsPerSample),
		NSamples:      rc.TotalSamples,
	}

	hasPadding := rc.Padding > 0
	var buf bytes.Buffer
	buf.WriteString(flacMarker)

	bw := bitio.NewWriter(&buf)
	siHdr := meta.BlockHeader{IsLast: false, Type: meta.TypeStreamInfo, Length: meta.StreamInfoLen}
	if err := siHdr.Encode(bw); err != nil {
		return nil, nil, internalf("encoding STREAMINFO header: %v", err)
	}
	if err := e.si.Encode(bw); err != nil {
		return nil, nil, internalf("encoding STREAMINFO body: %v", err)
	}
	vc := meta.VorbisComment{Vendor: "flake"}
	vcHdr := meta.BlockHeader{IsLast: !hasPadding, Type: meta.TypeVorbisComment, Length: uint32(vc.Len())}
	if err := vcHdr.Encode(bw); err != nil {
		return nil, nil, internalf("encoding VORBIS_COMMENT header: %v", err)
	}
	if err := vc.Encode(bw); err != nil {
		return nil, nil, internalf("encoding VORBIS_COMMENT body: %v", err)
	}
	if hasPadding {
		padHdr := meta.BlockHeader{IsLast: true, Type: meta.TypePadding, Length: uint32(rc.Padding)}
		if err := padHdr.Encode(bw); err != nil {
			return nil, nil, internalf("encoding PADDING header: %v", err)
		}
		if err := (meta.Padding{Length: rc.Padding}).Encode(bw); err != nil {
			return nil, nil, internalf("encoding PADDING body: %v", err)
		}
	}
	if err := bw.Close(); err != nil {
		return nil, nil, internalf("flushing metadata writer: %v", err)
	}

	return e, buf.Bytes(), nil
}

// interleave packs per-channel sample slices into a single channel-major
// slice (one value per channel, per frame), for feeding to the running MD5.
func interleave(channels [][]int32) []int32 {
	blockSize := len(channels[0])
	out := make([]int32, blockSize*len(channels))
	for i := 0; i < blockSize; i++ {
		for c, ch := range channels {
			out[i*len(channels)+c] = ch[i]
		}
	}
	return out
}

// EncodeFrame encodes one block of already-deinterleaved, per-channel PCM
// (samples[c] holding len(samples[0]) values for channel c) into a complete
// FLAC frame, updating the running MD5 and STREAMINFO bounds. The returned
// slice is the caller's to keep; it is not reused by subsequent calls.
func (e *Encoder) EncodeFrame(samples [][]int32) ([]byte, error) {
	if e.closed {
		return nil, internalf("EncodeFrame called after Close")
	}
	if len(samples) != e.rc.Channels {
		return nil, invalidConfigf("EncodeFrame: got %d channels, want %d", len(samples), e.rc.Channels)
	}
	blockSize := len(samples[0])
	for _, ch := range samples[1:] {
		if len(ch) != blockSize {
			return nil, invalidConfigf("EncodeFrame: channel sample counts differ")
		}
	}

	e.md5.write(interleave(samples))

	need := verbatimFrameSize(blockSize, len(samples), e.rc.BitsPerSample)
	if len(e.buf) < need {
		e.buf = make([]byte, need)
	}
	out, err := encodeFrame(e.buf, samples, e.rc, e.frameNum)
	if err != nil {
		return nil, err
	}

	e.frameNum++
	e.nSamples += uint64(blockSize)
	if e.si.FrameSizeMin == 0 || len(out) < e.si.FrameSizeMin {
		e.si.FrameSizeMin = len(out)
	}
	if len(out) > e.si.FrameSizeMax {
		e.si.FrameSizeMax = len(out)
	}
	if blockSize < e.si.BlockSizeMin {
		e.si.BlockSizeMin = blockSize
	}
	if blockSize > e.si.BlockSizeMax {
		e.si.BlockSizeMax = blockSize
	}

	result := make([]byte, len(out))
	copy(result, out)
	return result, nil
}

// StreamInfo returns the STREAMINFO fields accumulated so far: block-size
// and frame-size bounds and the running sample count. MD5sum is only final
// once Close has returned.
func (e *Encoder) StreamInfo() StreamInfo {
	si := e.si
	si.NSamples = e.nSamples
	return si
}

// WriteStreamInfo encodes si's 34-byte STREAMINFO body into out, for
// rewriting the placeholder block NewEncoder wrote once the caller has
// seeked back to it after Close.
func WriteStreamInfo(si StreamInfo, out []byte) error {
	if len(out) < meta.StreamInfoLen {
		return invalidConfigf("WriteStreamInfo: out must be at least %d bytes, got %d", meta.StreamInfoLen, len(out))
	}
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	if err := si.Encode(bw); err != nil {
		return internalf("encoding STREAMINFO body: %v", err)
	}
	if err := bw.Close(); err != nil {
		return internalf("flushing STREAMINFO writer: %v", err)
	}
	copy(out, buf.Bytes())
	return nil
}

// Close finalises the stream, returning the MD5 digest of every sample
// passed to EncodeFrame. Calling Close more than once is an error.
func (e *Encoder) Close() ([16]byte, error) {
	if e.closed {
		return e.si.MD5sum, internalf("Close called on an already-closed Encoder")
	}
	e.closed = true
	e.si.MD5sum = e.md5.sum()
	e.si.NSamples = e.nSamples
	return e.si.MD5sum, nil
}
