package flake

import (
	"github.com/CartoonFan/flake/frame"
	"github.com/CartoonFan/flake/internal/bitio"
)

// riceCost returns the number of bits needed to Rice-code residuals with
// parameter k: for each sample, a unary quotient (u>>k, plus its terminating
// one bit) followed by k remainder bits.
func riceCost(residuals []int32, k uint) int {
	bits := 0
	for _, r := range residuals {
		u := bitio.EncodeZigZag(r)
		bits += int(u>>k) + 1 + int(k)
	}
	return bits
}

// bestRiceParam searches for the Rice parameter in [0, maxParam] minimizing
// riceCost over residuals. It starts from an estimate based on the mean
// zig-zag magnitude, then walks outward until the cost stops improving,
// mirroring libflake/bitio.c's find_optimal_rice_param.
func bestRiceParam(residuals []int32, maxParam uint) (k uint, bits int) {
	if len(residuals) == 0 {
		return 0, 0
	}
	var sum uint64
	for _, r := range residuals {
		sum += uint64(bitio.EncodeZigZag(r))
	}
	mean := sum / uint64(len(residuals))
	guess := uint(0)
	for guess < maxParam && (uint64(1)<<guess) < mean+1 {
		guess++
	}
	bestK, bestBits := guess, riceCost(residuals, guess)
	for _, step := range [...]int{-1, 1} {
		k := int(guess)
		for {
			k += step
			if k < 0 || uint(k) > maxParam {
				break
			}
			c := riceCost(residuals, uint(k))
			if c >= bestBits {
				break
			}
			bestBits, bestK = c, uint(k)
		}
	}
	return bestK, bestBits
}

// escapeBitWidth returns the minimum two's-complement bit width that can
// represent every value in s, for use by an escape (raw) partition.
func escapeBitWidth(s []int32) int {
	if len(s) == 0 {
		return 0
	}
	minV, maxV := s[0], s[0]
	for _, r := range s[1:] {
		if r < minV {
			minV = r
		}
		if r > maxV {
			maxV = r
		}
	}
	bits := 1
	for {
		lo := -(int32(1) << uint(bits-1))
		hi := int32(1)<<uint(bits-1) - 1
		if minV >= lo && maxV <= hi {
			return bits
		}
		bits++
	}
}

// clampPartitionOrder returns the largest partition order no greater than
// max for which blockSize divides evenly into 2^order partitions and the
// first partition (shortened by predOrder residuals) is non-empty.
func clampPartitionOrder(blockSize, predOrder, max int) int {
	for order := max; order > 0; order-- {
		parts := 1 << uint(order)
		if blockSize%parts == 0 && blockSize/parts > predOrder {
			return order
		}
	}
	return 0
}

// partitionAtOrder splits residuals (length blockSize-predOrder) into
// 2^order partitions and chooses the cheaper of a Rice code or a raw escape
// partition for each, returning the resulting RiceSubframe and its total bit
// cost including partition-order and per-partition parameter headers.
func partitionAtOrder(residuals []int32, blockSize, predOrder, order int, method frame.ResidualCodingMethod) (*frame.RiceSubframe, int) {
	parts := 1 << uint(order)
	partLen := blockSize / parts
	if partLen <= predOrder {
		return nil, 0
	}
	paramBits := method.ParamSize()
	escape := method.EscapeParam()
	maxParam := uint(escape) - 1

	partitions := make([]frame.RicePartition, parts)
	total := 2 + 4 // coding-method and partition-order fields
	pos := 0
	for i := 0; i < parts; i++ {
		n := partLen
		if i == 0 {
			n -= predOrder
		}
		sub := residuals[pos : pos+n]
		pos += n

		k, riceBits := bestRiceParam(sub, maxParam)
		riceBits += int(paramBits)

		escBPS := escapeBitWidth(sub)
		escBits := int(paramBits) + 5 + len(sub)*escBPS

		if escBits < riceBits {
			partitions[i] = frame.RicePartition{Param: escape, EscapeBPS: uint32(escBPS)}
			total += escBits
		} else {
			partitions[i] = frame.RicePartition{Param: uint32(k)}
			total += riceBits
		}
	}
	return &frame.RiceSubframe{PartOrder: uint32(order), Partitions: partitions}, total
}

// bestPartition searches partition orders in [minOrder, maxOrder] (clamped to
// what blockSize and predOrder allow) for the cheapest partitioned-Rice
// coding of residuals, returning the winning partitioning and its total bit
// cost. Returns nil if no candidate order is legal.
func bestPartition(residuals []int32, blockSize, predOrder, minOrder, maxOrder int) (*frame.RiceSubframe, int) {
	method := frame.ResidualCodingMethodRice1
	maxOrder = clampPartitionOrder(blockSize, predOrder, maxOrder)
	if minOrder > maxOrder {
		minOrder = maxOrder
	}
	var best *frame.RiceSubframe
	bestBits := -1
	for order := minOrder; order <= maxOrder; order++ {
		rs, bits := partitionAtOrder(residuals, blockSize, predOrder, order, method)
		if rs == nil {
			continue
		}
		if bestBits < 0 || bits < bestBits {
			best, bestBits = rs, bits
		}
	}
	return best, bestBits
}

// encodeResidual picks the cheapest partitioned-Rice coding of a subframe's
// residual across the configured partition-order range.
func encodeResidual(residuals []int32, blockSize, predOrder int, rc ResolvedConfig) (*frame.RiceSubframe, int) {
	return bestPartition(residuals, blockSize, predOrder, rc.PartitionMin, rc.PartitionMax)
}

// writeResidual emits a subframe's residual, previously chosen by
// encodeResidual, in partitioned-Rice form: a 2-bit coding-method code, a
// 4-bit partition order, then per-partition parameter headers and codes.
func writeResidual(w *bitio.Writer, residuals []int32, blockSize, predOrder int, rs *frame.RiceSubframe) {
	method := frame.ResidualCodingMethodRice1
	w.WriteBits(2, uint64(method))
	w.WriteBits(4, uint64(rs.PartOrder))

	parts := 1 << rs.PartOrder
	partLen := blockSize / parts
	paramBits := method.ParamSize()
	escape := method.EscapeParam()

	pos := 0
	for i := 0; i < parts; i++ {
		n := partLen
		if i == 0 {
			n -= predOrder
		}
		p := rs.Partitions[i]
		w.WriteBits(paramBits, uint64(p.Param))
		sub := residuals[pos : pos+n]
		pos += n

		if p.Param == escape {
			w.WriteBits(5, uint64(p.EscapeBPS))
			for _, r := range sub {
				w.WriteBitsSigned(uint(p.EscapeBPS), r)
			}
			continue
		}
		for _, r := range sub {
			w.WriteRiceSigned(uint(p.Param), r)
		}
	}
}
