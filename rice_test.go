package flake

import (
	"testing"

	"github.com/CartoonFan/flake/internal/bitio"
)

func TestRiceCostZero(t *testing.T) {
	residuals := make([]int32, 10)
	if got := riceCost(residuals, 0); got != 10 {
		t.Errorf("riceCost(zeros, k=0) = %d, want 10 (one bit each)", got)
	}
}

func TestBestRiceParamPicksCheaper(t *testing.T) {
	// Large residuals should prefer a non-zero k over k=0.
	residuals := make([]int32, 64)
	for i := range residuals {
		residuals[i] = 1000
	}
	k, bits := bestRiceParam(residuals, 20)
	if k == 0 {
		t.Errorf("bestRiceParam: got k=0 for large residuals, expected a larger parameter")
	}
	if bits >= riceCost(residuals, 0) {
		t.Errorf("bestRiceParam: chosen cost %d is not cheaper than k=0 cost %d", bits, riceCost(residuals, 0))
	}
}

func TestClampPartitionOrder(t *testing.T) {
	tests := []struct {
		blockSize, predOrder, max, want int
	}{
		{4096, 2, 4, 4},
		{17, 0, 4, 0}, // 17 is prime: only order 0 (1 partition) divides evenly
		{4096, 4000, 4, 0},
	}
	for _, tt := range tests {
		if got := clampPartitionOrder(tt.blockSize, tt.predOrder, tt.max); got != tt.want {
			t.Errorf("clampPartitionOrder(%d,%d,%d) = %d, want %d", tt.blockSize, tt.predOrder, tt.max, got, tt.want)
		}
	}
}

func TestBestPartitionBlockSizeInvariant(t *testing.T) {
	residuals := make([]int32, 4094)
	for i := range residuals {
		residuals[i] = int32(i%7) - 3
	}
	rs, bits := bestPartition(residuals, 4096, 2, 0, 4)
	if rs == nil {
		t.Fatal("bestPartition returned nil")
	}
	parts := 1 << rs.PartOrder
	if 4096%parts != 0 {
		t.Errorf("block size 4096 not evenly divisible by 2^%d partitions", rs.PartOrder)
	}
	if bits <= 0 {
		t.Errorf("expected positive bit cost, got %d", bits)
	}
}

func TestEscapeBitWidthCoversRange(t *testing.T) {
	s := []int32{-100, 50, 127, -128}
	w := escapeBitWidth(s)
	lo := -(int32(1) << uint(w-1))
	hi := int32(1)<<uint(w-1) - 1
	for _, v := range s {
		if v < lo || v > hi {
			t.Errorf("escapeBitWidth(%v) = %d bits, does not cover value %d in [%d,%d]", s, w, v, lo, hi)
		}
	}
}

func TestWriteResidualRoundTripsPartitionCount(t *testing.T) {
	residuals := []int32{1, -1, 2, -2, 3, -3, 4, -4}
	rs, _ := bestPartition(residuals, 8, 0, 0, 2)
	if rs == nil {
		t.Fatal("bestPartition returned nil")
	}
	buf := make([]byte, 64)
	w := bitio.NewWriter(buf)
	writeResidual(w, residuals, 8, 0, rs)
	if w.Eof {
		t.Error("unexpected eof writing a small residual")
	}
}
