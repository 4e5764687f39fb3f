package flake

import (
	"math"
	"testing"
)

func TestWelchWindowZeroesEndpoints(t *testing.T) {
	samples := []int32{10, 10, 10, 10, 10}
	w := welchWindow(samples)
	if w[0] != 0 || w[len(w)-1] != 0 {
		t.Errorf("Welch window should taper to 0 at both endpoints, got %v", w)
	}
	mid := len(w) / 2
	if w[mid] == 0 {
		t.Errorf("Welch window should not zero the midpoint, got %v", w)
	}
}

func TestAutocorrelateLagZeroIsEnergy(t *testing.T) {
	windowed := []float64{1, 2, 3}
	ac := autocorrelate(windowed, 2)
	want := 1*1 + 2*2 + 3*3
	if ac[0] != float64(want) {
		t.Errorf("autocorrelate lag 0 = %v, want %v", ac[0], want)
	}
}

func TestLevinsonDurbinErrorNonIncreasing(t *testing.T) {
	samples := []int32{1, 3, -2, 5, 4, -1, 2, 6, -3, 1}
	windowed := welchWindow(samples)
	ac := autocorrelate(windowed, 4)
	analysis := levinsonDurbin(ac, 4)
	for o := 1; o < len(analysis.err); o++ {
		if analysis.err[o] > analysis.err[o-1]+1e-9 {
			t.Errorf("prediction error increased from order %d to %d: %v -> %v", o, o+1, analysis.err[o-1], analysis.err[o])
		}
	}
}

func TestLevinsonDurbinZeroEnergyYieldsZeroCoeffs(t *testing.T) {
	ac := make([]float64, 5)
	analysis := levinsonDurbin(ac, 4)
	for o, row := range analysis.coeffs {
		for _, c := range row {
			if c != 0 {
				t.Errorf("order %d coefficient nonzero for all-silent input: %v", o+1, row)
			}
		}
	}
}

func TestQuantizeLPCCoeffsWithinPrecision(t *testing.T) {
	coeffs := []float64{1.9, -0.95, 0.3}
	precision := 12
	quant, shift := quantizeLPCCoeffs(coeffs, precision)
	limit := int32(1)<<uint(precision-1) - 1
	for i, q := range quant {
		if q > limit || q < -limit {
			t.Errorf("coeff %d quantized to %d, out of %d-bit signed range [-%d,%d]", i, q, precision, limit, limit)
		}
	}
	if shift < 0 || shift > 15 {
		t.Errorf("shift %d out of expected [0,15] range", shift)
	}
}

func TestQuantizeLPCCoeffsAllZero(t *testing.T) {
	quant, shift := quantizeLPCCoeffs([]float64{0, 0, 0}, 12)
	if shift != 0 {
		t.Errorf("all-zero coeffs should yield shift 0, got %d", shift)
	}
	for _, q := range quant {
		if q != 0 {
			t.Errorf("all-zero coeffs should quantize to 0, got %d", q)
		}
	}
}

func TestLPCResidualZeroForExactPredictor(t *testing.T) {
	// A first-order predictor with coefficient 1 (scaled by 2^0) reconstructs
	// a run of identical samples exactly, so its residual should be all 0.
	samples := []int32{7, 7, 7, 7, 7}
	coeffs := []int32{1}
	res := lpcResidual(samples, coeffs, 0)
	if len(res) != len(samples)-1 {
		t.Fatalf("lpcResidual length = %d, want %d", len(res), len(samples)-1)
	}
	for _, v := range res {
		if v != 0 {
			t.Errorf("expected exact prediction to yield zero residual, got %d", v)
		}
	}
}

func TestEstimateBestOrderWithinRange(t *testing.T) {
	errs := []float64{100, 50, 10, math.Nextafter(10, 0)}
	got := estimateBestOrder(errs, 4096, 15)
	if got < 1 || got > len(errs) {
		t.Errorf("estimateBestOrder returned %d, out of [1,%d]", got, len(errs))
	}
}
