package flake

import "github.com/CartoonFan/flake/frame"

// candidateOrders returns the set of prediction orders to actually try for
// order-selection method m over [min,max]. Grounded on libflake/encode.c's
// order_method dispatch: Max always tries just the ceiling; Estimate is
// handled by the caller (a single order from a cheap heuristic, not a
// search); the N-level and Log methods spread a fixed number of candidates
// across the range; Search tries every order.
func candidateOrders(m OrderMethod, min, max int) []int {
	if min > max {
		min = max
	}
	switch m {
	case OrderMax:
		return []int{max}
	case Order2Level:
		return spreadOrders(min, max, 2)
	case Order4Level:
		return spreadOrders(min, max, 4)
	case Order8Level:
		return spreadOrders(min, max, 8)
	case OrderSearch:
		out := make([]int, 0, max-min+1)
		for o := min; o <= max; o++ {
			out = append(out, o)
		}
		return out
	case OrderLog:
		return logOrders(min, max)
	default: // OrderEstimate: the caller supplies the single estimated order.
		return nil
	}
}

// spreadOrders returns up to n orders evenly spaced across [min,max],
// inclusive of both endpoints.
func spreadOrders(min, max, n int) []int {
	if max <= min || n <= 1 {
		return []int{max}
	}
	out := make([]int, 0, n)
	seen := map[int]bool{}
	for i := 0; i < n; i++ {
		o := min + (max-min)*i/(n-1)
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	return out
}

// logOrders returns a log2-spaced candidate set: dense near min, sparse
// toward max, matching encode.c's ORDER_METHOD_LOG dispatch.
func logOrders(min, max int) []int {
	var out []int
	seen := map[int]bool{}
	for step := 1; ; step *= 2 {
		o := min + step - 1
		if o > max {
			break
		}
		seen[o] = true
		out = append(out, o)
	}
	if !seen[max] {
		out = append(out, max)
	}
	return out
}

// subframeCost bundles a candidate subframe encoding with its estimated
// residual-and-warmup bit cost, so alternatives can be compared before one is
// committed to.
type subframeCost struct {
	sub  *frame.Subframe
	bits int
}

// isConstant reports whether every sample in s equals s[0].
func isConstant(s []int32) bool {
	for _, v := range s[1:] {
		if v != s[0] {
			return false
		}
	}
	return true
}

func encodeConstantSubframe(samples []int32, bps int) subframeCost {
	return subframeCost{
		sub: &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: frame.PredConstant},
			NSamples:  len(samples),
			Samples:   samples[:1],
		},
		bits: bps,
	}
}

func encodeVerbatimSubframe(samples []int32, bps int) subframeCost {
	return subframeCost{
		sub: &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
			NSamples:  len(samples),
			Samples:   samples,
		},
		bits: bps * len(samples),
	}
}

// encodeFixedSubframe tries the fixed-predictor orders rc.OrderSelect picks
// (clamped to [0,4]) and returns the cheapest.
func encodeFixedSubframe(samples []int32, bps int, rc ResolvedConfig) subframeCost {
	min, max := rc.OrderMin, rc.OrderMax
	if max > 4 {
		max = 4
	}
	if max > len(samples) {
		max = len(samples)
	}

	var orders []int
	if rc.OrderSelect == OrderEstimate {
		orders = []int{estimateBestFixedOrder(samples, max)}
	} else {
		orders = candidateOrders(rc.OrderSelect, min, max)
	}

	best := subframeCost{bits: -1}
	for _, order := range orders {
		if order < 0 || order > max {
			continue
		}
		res := fixedResidual(samples, order)
		rs, bits := encodeResidual(res, len(samples), order, rc)
		if rs == nil {
			continue
		}
		total := order*bps + bits
		if best.bits < 0 || total < best.bits {
			best = subframeCost{
				bits: total,
				sub: &frame.Subframe{
					SubHeader:            frame.SubHeader{Pred: frame.PredFixed, Order: order},
					NSamples:             len(samples),
					Samples:              samples,
					Residuals:            res,
					ResidualCodingMethod: frame.ResidualCodingMethodRice1,
					Rice:                 rs,
				},
			}
		}
	}
	return best
}

// encodeLPCSubframe runs LPC analysis once up to the configured maximum
// order and tries the orders rc.OrderSelect picks (or the analyser's own
// error-based estimate under OrderEstimate), returning the cheapest
// quantised-LPC encoding.
func encodeLPCSubframe(samples []int32, bps int, rc ResolvedConfig) subframeCost {
	max := rc.OrderMax
	if max > 32 {
		max = 32
	}
	if max > len(samples)-1 {
		max = len(samples) - 1
	}
	if max < 1 || max < rc.OrderMin {
		return subframeCost{bits: -1}
	}

	windowed := welchWindow(samples)
	ac := autocorrelate(windowed, max)
	analysis := levinsonDurbin(ac, max)

	var orders []int
	if rc.OrderSelect == OrderEstimate {
		orders = []int{estimateBestOrder(analysis.err, len(samples), rc.LPCPrecision+5)}
	} else {
		orders = candidateOrders(rc.OrderSelect, rc.OrderMin, max)
	}

	best := subframeCost{bits: -1}
	for _, order := range orders {
		if order < 1 || order > max {
			continue
		}
		coeffs, shift := quantizeLPCCoeffs(analysis.coeffs[order-1], rc.LPCPrecision)
		res := lpcResidual(samples, coeffs, shift)
		rs, bits := encodeResidual(res, len(samples), order, rc)
		if rs == nil {
			continue
		}
		headerBits := order*bps + order*rc.LPCPrecision + 4 + 5
		total := headerBits + bits
		if best.bits < 0 || total < best.bits {
			best = subframeCost{
				bits: total,
				sub: &frame.Subframe{
					SubHeader:            frame.SubHeader{Pred: frame.PredLPC, Order: order},
					NSamples:             len(samples),
					Samples:              samples,
					Residuals:            res,
					LPCCoeffs:            coeffs,
					LPCShift:             shift,
					LPCPrecision:         rc.LPCPrecision,
					ResidualCodingMethod: frame.ResidualCodingMethodRice1,
					Rice:                 rs,
				},
			}
		}
	}
	return best
}

// encodeSubframe chooses the cheapest of constant, verbatim, fixed and (when
// enabled) LPC encodings for one channel's samples.
func encodeSubframe(samples []int32, bps int, rc ResolvedConfig) *frame.Subframe {
	if isConstant(samples) {
		return encodeConstantSubframe(samples, bps).sub
	}

	best := encodeVerbatimSubframe(samples, bps)
	if rc.Prediction == PredictionNone {
		return best.sub
	}

	if c := encodeFixedSubframe(samples, bps, rc); c.bits >= 0 && c.bits < best.bits {
		best = c
	}
	if rc.Prediction == PredictionLevinson {
		if c := encodeLPCSubframe(samples, bps, rc); c.bits >= 0 && c.bits < best.bits {
			best = c
		}
	}
	return best.sub
}
