package flake

import "math"

// lpcAnalysis holds the Levinson-Durbin results for every order up to the
// analyser's maximum: quantization picks one of these rows once an order has
// been selected.
type lpcAnalysis struct {
	// coeffs[o] holds the order-(o+1) LPC coefficients, length o+1.
	coeffs [][]float64
	// err[o] is the order-(o+1) prediction error (residual energy),
	// monotonically non-increasing in o.
	err []float64
}

// welchWindow applies a Welch window to samples, returning a new slice;
// windowing reduces spectral leakage before autocorrelation is computed.
// Grounded on libflake/lpc.c's apply_welch_window.
func welchWindow(samples []int32) []float64 {
	n := len(samples)
	out := make([]float64, n)
	if n <= 1 {
		for i, s := range samples {
			out[i] = float64(s)
		}
		return out
	}
	half := float64(n-1) / 2
	for i, s := range samples {
		t := (float64(i) - half) / half
		w := 1 - t*t
		out[i] = float64(s) * w
	}
	return out
}

// autocorrelate computes the first maxLag+1 autocorrelation coefficients of
// windowed. Grounded on libflake/lpc.c's compute_autocorr.
func autocorrelate(windowed []float64, maxLag int) []float64 {
	n := len(windowed)
	ac := make([]float64, maxLag+1)
	for lag := 0; lag <= maxLag; lag++ {
		var sum float64
		for i := lag; i < n; i++ {
			sum += windowed[i] * windowed[i-lag]
		}
		ac[lag] = sum
	}
	return ac
}

// levinsonDurbin runs the Levinson-Durbin recursion over autocorrelation
// coefficients ac, returning the LPC coefficients and prediction error for
// every order from 1 to maxOrder. Grounded on libflake/lpc.c's
// compute_lpc_coefs.
func levinsonDurbin(ac []float64, maxOrder int) lpcAnalysis {
	a := make([]float64, maxOrder+1)
	out := lpcAnalysis{
		coeffs: make([][]float64, maxOrder),
		err:    make([]float64, maxOrder),
	}
	errEnergy := ac[0]
	if errEnergy == 0 {
		for o := 0; o < maxOrder; o++ {
			out.coeffs[o] = make([]float64, o+1)
			out.err[o] = 0
		}
		return out
	}
	for i := 1; i <= maxOrder; i++ {
		acc := ac[i]
		for j := 1; j < i; j++ {
			acc -= a[j] * ac[i-j]
		}
		k := acc / errEnergy
		a[i] = k
		for j := 1; j <= i/2; j++ {
			tmp := a[j]
			a[j] -= k * a[i-j]
			if j != i-j {
				a[i-j] -= k * tmp
			}
		}
		errEnergy *= 1 - k*k
		if errEnergy < 0 {
			errEnergy = 0
		}
		row := make([]float64, i)
		copy(row, a[1:i+1])
		out.coeffs[i-1] = row
		out.err[i-1] = errEnergy
	}
	return out
}

// estimateBestOrder picks the LPC order, among 1..len(errs), whose expected
// residual bits (from its Levinson-Durbin prediction error) plus its header
// overhead is smallest. It does not look at reflection coefficients, which
// levinsonDurbin does not keep. headerBitsPerCoef approximates the fixed
// per-order overhead (coefficient precision plus a constant for the
// order/shift fields).
func estimateBestOrder(errs []float64, blockSize, headerBitsPerCoef int) int {
	best := 1
	bestBits := math.MaxFloat64
	for o := 1; o <= len(errs); o++ {
		e := errs[o-1]
		var bitsPerSample float64
		if e > 0 {
			bitsPerSample = 0.5 * math.Log2(e/float64(blockSize))
		}
		if bitsPerSample < 0 {
			bitsPerSample = 0
		}
		total := bitsPerSample*float64(blockSize-o) + float64(o*headerBitsPerCoef)
		if total < bestBits {
			bestBits, best = total, o
		}
	}
	return best
}

// quantizeLPCCoeffs converts floating-point LPC coefficients to integers
// scaled by 2^shift, choosing the largest shift that keeps every quantized
// coefficient within a signed precision-bit range. Grounded on
// libflake/lpc.c's quantize_lpc_coefs.
func quantizeLPCCoeffs(coeffs []float64, precision int) (quant []int32, shift int32) {
	maxCoeff := 0.0
	for _, c := range coeffs {
		if a := math.Abs(c); a > maxCoeff {
			maxCoeff = a
		}
	}
	const maxShift = 15
	if maxCoeff == 0 || maxCoeff*float64(int64(1)<<maxShift) < 1 {
		return make([]int32, len(coeffs)), 0
	}
	headroom := math.Floor(math.Log2(maxCoeff))
	shiftF := float64(precision-1) - headroom - 1
	if shiftF > maxShift {
		shiftF = maxShift
	}
	if shiftF < 0 {
		shiftF = 0
	}
	shift = int32(shiftF)

	limit := int32(1)<<uint(precision-1) - 1
	// With shift 0 and coefficients still too large, scale them all down so
	// the largest fits the limit.
	scale := 1.0
	if shift == 0 && maxCoeff > float64(limit) {
		scale = float64(limit) / maxCoeff
	}
	quant = make([]int32, len(coeffs))
	var carry float64
	for i, c := range coeffs {
		scaled := c*scale*float64(int64(1)<<uint(shift)) + carry
		q := int32(math.Round(scaled))
		if q > limit {
			q = limit
		} else if q < -limit {
			q = -limit
		}
		carry = scaled - float64(q)
		quant[i] = q
	}
	return quant, shift
}

// lpcResidual computes the integer LPC prediction residual for samples using
// quantized coefficients and shift: the first order samples are left as
// warm-up (copied verbatim into the residual slot isn't needed by the
// caller, which tracks them separately), and each subsequent sample's
// residual is samples[i] minus the shifted coefficient dot-product over the
// preceding order samples.
func lpcResidual(samples []int32, coeffs []int32, shift int32) []int32 {
	order := len(coeffs)
	res := make([]int32, len(samples)-order)
	for i := order; i < len(samples); i++ {
		var pred int64
		for j, c := range coeffs {
			pred += int64(c) * int64(samples[i-1-j])
		}
		pred >>= uint(shift)
		res[i-order] = samples[i] - int32(pred)
	}
	return res
}
