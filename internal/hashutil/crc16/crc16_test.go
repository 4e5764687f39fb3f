package crc16

import "testing"

func TestNewIBMEmpty(t *testing.T) {
	d := NewIBM()
	if d.Sum16() != 0 {
		t.Errorf("empty digest: got %d, want 0", d.Sum16())
	}
}

func TestNewIBMKnownVector(t *testing.T) {
	// For poly 0x8005, init 0x0000, no reflection, no xor-out
	// ("CRC-16/BUYPASS"), the standard check value for "123456789" is 0xFEE8.
	d := NewIBM()
	d.Write([]byte("123456789"))
	if got := d.Sum16(); got != 0xFEE8 {
		t.Errorf("CRC-16(\"123456789\") = 0x%04X, want 0xFEE8", got)
	}
}

func TestIncrementalEqualsOneShot(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03}

	whole := NewIBM()
	whole.Write(data)

	parts := NewIBM()
	parts.Write(data[:3])
	parts.Write(data[3:])

	if whole.Sum16() != parts.Sum16() {
		t.Errorf("incremental write mismatch: got 0x%04X, want 0x%04X", parts.Sum16(), whole.Sum16())
	}
}
