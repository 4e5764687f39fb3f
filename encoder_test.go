package flake

import (
	"bytes"
	"testing"

	"github.com/CartoonFan/flake/meta"
)

func TestNewEncoderEmitsMarkerAndStreamInfoHeader(t *testing.T) {
	e, head, err := NewEncoder(EncoderConfig{Channels: 2, SampleRate: 44100, BitsPerSample: 16})
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	if e == nil {
		t.Fatal("NewEncoder returned a nil Encoder")
	}
	if !bytes.HasPrefix(head, []byte(flacMarker)) {
		t.Fatalf("stream header does not start with the fLaC marker: %v", head[:4])
	}
	// fLaC marker (4) + block header (4) + STREAMINFO body (34), then the
	// VORBIS_COMMENT block and, because the default padding is nonzero, a
	// PADDING block.
	wantMinLen := 4 + meta.HeaderLen + meta.StreamInfoLen
	if len(head) < wantMinLen {
		t.Fatalf("stream header length = %d, want at least %d", len(head), wantMinLen)
	}
}

func TestNewEncoderRejectsBadConfig(t *testing.T) {
	_, _, err := NewEncoder(EncoderConfig{Channels: 0, SampleRate: 44100, BitsPerSample: 16})
	if err == nil {
		t.Error("NewEncoder should reject a zero channel count")
	}
}

func TestEncoderEncodeFrameRejectsChannelMismatch(t *testing.T) {
	e, _, err := NewEncoder(EncoderConfig{Channels: 2, SampleRate: 44100, BitsPerSample: 16})
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	_, err = e.EncodeFrame([][]int32{{1, 2, 3}})
	if err == nil {
		t.Error("EncodeFrame should reject a sample slice with the wrong channel count")
	}
}

func TestEncoderRoundTripConstantSignal(t *testing.T) {
	e, _, err := NewEncoder(EncoderConfig{Channels: 1, SampleRate: 44100, BitsPerSample: 16}.WithBlockSize(64))
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	blockSize := 64
	samples := make([]int32, blockSize)
	for i := range samples {
		samples[i] = 256
	}
	frame1, err := e.EncodeFrame([][]int32{samples})
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}
	if len(frame1) == 0 {
		t.Fatal("EncodeFrame produced an empty frame")
	}

	digest, err := e.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if digest == ([16]byte{}) {
		t.Error("MD5 digest of a nonzero-valued signal should not be all zero")
	}

	if _, err := e.EncodeFrame([][]int32{samples}); err == nil {
		t.Error("EncodeFrame after Close should return an error")
	}
	if _, err := e.Close(); err == nil {
		t.Error("Close called twice should return an error")
	}
}

func TestEncoderStreamInfoTracksBounds(t *testing.T) {
	e, _, err := NewEncoder(EncoderConfig{Channels: 1, SampleRate: 44100, BitsPerSample: 16}.WithBlockSize(32))
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	samples := make([]int32, 32)
	for i := range samples {
		samples[i] = int32(i)
	}
	if _, err := e.EncodeFrame([][]int32{samples}); err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}
	si := e.StreamInfo()
	if si.NSamples != 32 {
		t.Errorf("NSamples = %d, want 32", si.NSamples)
	}
	if si.BlockSizeMin != 32 || si.BlockSizeMax != 32 {
		t.Errorf("BlockSize bounds = [%d,%d], want [32,32]", si.BlockSizeMin, si.BlockSizeMax)
	}
	if si.FrameSizeMin == 0 || si.FrameSizeMax == 0 {
		t.Error("FrameSize bounds should be populated after encoding a frame")
	}
}

func TestWriteStreamInfoRejectsUndersizedBuffer(t *testing.T) {
	si := StreamInfo{BlockSizeMin: 4096, BlockSizeMax: 4096, SampleRate: 44100, NChannels: 2, BitsPerSample: 16}
	err := WriteStreamInfo(si, make([]byte, 10))
	if err == nil {
		t.Error("WriteStreamInfo should reject a buffer shorter than StreamInfoLen")
	}
}

func TestInterleaveOrdersChannelMajor(t *testing.T) {
	left := []int32{1, 3}
	right := []int32{2, 4}
	got := interleave([][]int32{left, right})
	want := []int32{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("interleave length = %d, want %d", len(got), len(want))
	}
	for i, v := range want {
		if got[i] != v {
			t.Errorf("interleave[%d] = %d, want %d", i, got[i], v)
		}
	}
}
