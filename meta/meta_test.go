package meta

import (
	"bytes"
	"testing"

	"github.com/icza/bitio"
)

func TestBlockHeaderEncode(t *testing.T) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	h := BlockHeader{IsLast: true, Type: TypeStreamInfo, Length: 34}
	if err := h.Encode(bw); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	got := buf.Bytes()
	if len(got) != HeaderLen {
		t.Fatalf("header length = %d, want %d", len(got), HeaderLen)
	}
	if got[0]&0x80 == 0 {
		t.Error("IsLast bit not set in first byte")
	}
	if got[0]&0x7F != byte(TypeStreamInfo) {
		t.Errorf("type code = %d, want %d", got[0]&0x7F, TypeStreamInfo)
	}
	length := uint32(got[1])<<16 | uint32(got[2])<<8 | uint32(got[3])
	if length != 34 {
		t.Errorf("length field = %d, want 34", length)
	}
}

func TestBlockHeaderNotLast(t *testing.T) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	h := BlockHeader{IsLast: false, Type: TypePadding, Length: 100}
	if err := h.Encode(bw); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	bw.Close()
	got := buf.Bytes()
	if got[0]&0x80 != 0 {
		t.Error("IsLast bit set when IsLast was false")
	}
}

func TestStreamInfoEncodeLength(t *testing.T) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	si := StreamInfo{
		BlockSizeMin:  4096,
		BlockSizeMax:  4096,
		SampleRate:    44100,
		NChannels:     2,
		BitsPerSample: 16,
		NSamples:      123456,
	}
	if err := si.Encode(bw); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := buf.Len(); got != StreamInfoLen {
		t.Errorf("STREAMINFO body length = %d, want %d", got, StreamInfoLen)
	}
}

func TestStreamInfoEncodeFieldPlacement(t *testing.T) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	md5 := [16]byte{0xAA, 0xBB, 0xCC, 0xDD}
	si := StreamInfo{
		BlockSizeMin:  4096,
		BlockSizeMax:  4096,
		SampleRate:    44100,
		NChannels:     2,
		BitsPerSample: 16,
		NSamples:      0,
		MD5sum:        md5,
	}
	if err := si.Encode(bw); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	bw.Close()
	got := buf.Bytes()
	// BlockSizeMin is the leading 16-bit field, byte-aligned.
	blockSizeMin := uint16(got[0])<<8 | uint16(got[1])
	if blockSizeMin != 4096 {
		t.Errorf("BlockSizeMin field = %d, want 4096", blockSizeMin)
	}
	// The MD5 checksum is the trailing 16 raw bytes of the 34-byte body.
	gotMD5 := got[StreamInfoLen-16:]
	for i, b := range md5 {
		if gotMD5[i] != b {
			t.Errorf("MD5 byte %d = %#x, want %#x", i, gotMD5[i], b)
		}
	}
}

func TestPaddingEncodeLength(t *testing.T) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	p := Padding{Length: 10}
	if err := p.Encode(bw); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	bw.Close()
	if got := buf.Len(); got != 10 {
		t.Errorf("padding length = %d, want 10", got)
	}
	for i, b := range buf.Bytes() {
		if b != 0 {
			t.Errorf("padding byte %d = %#x, want 0", i, b)
		}
	}
}

func TestVorbisCommentLenMatchesEncodedSize(t *testing.T) {
	c := VorbisComment{
		Vendor:   "flake",
		Comments: []string{"ARTIST=test", "TITLE=sample"},
	}
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	if err := c.Encode(bw); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := buf.Len(); got != c.Len() {
		t.Errorf("encoded length = %d, Len() reported %d", got, c.Len())
	}
}

func TestVorbisCommentEncodeVendorLengthPrefix(t *testing.T) {
	c := VorbisComment{Vendor: "abcd", Comments: nil}
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	if err := c.Encode(bw); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	bw.Close()
	got := buf.Bytes()
	length := uint32(got[0]) | uint32(got[1])<<8 | uint32(got[2])<<16 | uint32(got[3])<<24
	if length != 4 {
		t.Errorf("vendor length prefix = %d, want 4", length)
	}
	if string(got[4:8]) != "abcd" {
		t.Errorf("vendor string = %q, want %q", got[4:8], "abcd")
	}
}
