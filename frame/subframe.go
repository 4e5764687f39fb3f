package frame

// Pred identifies the prediction method used to encode a subframe.
type Pred uint8

// Prediction methods and their base type-code values. The on-wire 6-bit
// type_code is PredFixed|order (order 0..4) or PredLPC|(order-1) (order
// 1..32); PredConstant and PredVerbatim are used directly.
const (
	PredConstant Pred = 0x00
	PredVerbatim Pred = 0x01
	PredFixed    Pred = 0x08
	PredLPC      Pred = 0x20
)

// FixedCoeffs holds the fixed predictor coefficients for orders 1..4, used
// only for documentation/cross-checking: the encoder computes fixed
// residuals directly via repeated differencing (see fixed.go) rather than an
// explicit coefficient dot-product.
var FixedCoeffs = map[int][]int32{
	1: {1},
	2: {2, -1},
	3: {3, -3, 1},
	4: {4, -6, 4, -1},
}

// ResidualCodingMethod identifies the partitioned-Rice variant used to code a
// subframe's residual. Method 0 uses a 4-bit Rice parameter per partition
// (with escape code 0xF); method 1 (unused by this encoder, reserved for
// wire compatibility) would use 5-bit parameters.
type ResidualCodingMethod uint8

// Residual coding methods.
const (
	ResidualCodingMethodRice1 ResidualCodingMethod = 0
	ResidualCodingMethodRice2 ResidualCodingMethod = 1
)

// ParamSize returns the bit width of a Rice parameter under m: 4 bits for
// method 0, 5 bits for method 1.
func (m ResidualCodingMethod) ParamSize() uint {
	if m == ResidualCodingMethodRice2 {
		return 5
	}
	return 4
}

// EscapeParam returns the parameter value that signals a non-Rice escape
// partition (raw signed residuals) under m.
func (m ResidualCodingMethod) EscapeParam() uint32 {
	return uint32(1)<<m.ParamSize() - 1
}

// RicePartition holds one partition's Rice parameter, and, for an escape
// partition, the raw bit width used for each signed residual instead.
type RicePartition struct {
	// Param is the Rice parameter k, or the method's escape value if this
	// partition stores raw signed residuals.
	Param uint32
	// EscapeBPS is the bit width used for each residual when Param is the
	// escape value. Zero otherwise.
	EscapeBPS uint32
}

// RiceSubframe holds the partitioned-Rice residual coding parameters chosen
// for one subframe.
type RiceSubframe struct {
	// PartOrder is log2 of the number of partitions; block size must be
	// evenly divisible by 2^PartOrder.
	PartOrder uint32
	// Partitions holds one entry per 2^PartOrder partition.
	Partitions []RicePartition
}

// SubHeader is the leading, fixed-size portion of a subframe: prediction
// method, order and any wasted (shifted-out trailing zero) bits.
type SubHeader struct {
	// Pred is the prediction method.
	Pred Pred
	// Order is the predictor order: 0 for Constant/Verbatim, 0..4 for Fixed,
	// 1..32 for LPC.
	Order int
	// Wasted is the number of wasted (shared trailing zero) bits per sample.
	// This encoder always emits 0: detecting wasted bits is an optimization
	// the reference encoder itself treats as optional, and is not required
	// by any invariant this implementation targets.
	Wasted uint32
}

// TypeCode returns the on-wire 6-bit subframe type code for h.
func (h SubHeader) TypeCode() uint8 {
	switch h.Pred {
	case PredFixed:
		return uint8(PredFixed) | uint8(h.Order)
	case PredLPC:
		return uint8(PredLPC) | uint8(h.Order-1)
	default:
		return uint8(h.Pred)
	}
}

// Subframe is one channel's contribution to a frame: its header, its samples
// (for Constant/Verbatim) or residual-coding state (for Fixed/LPC).
type Subframe struct {
	SubHeader
	// NSamples is the number of samples in this subframe, equal to the
	// frame's block size.
	NSamples int
	// Samples holds the original (Constant/Verbatim) or predictor input
	// samples for this channel, length NSamples.
	Samples []int32
	// Residuals holds the predictor residual for samples[Order:], length
	// NSamples-Order. Unused for Constant/Verbatim.
	Residuals []int32
	// LPCCoeffs holds the quantised LPC coefficients, length Order. Unused
	// unless Pred == PredLPC.
	LPCCoeffs []int32
	// LPCShift is the right-shift applied to the integer LPC accumulation.
	LPCShift int32
	// LPCPrecision is the bit width of each quantised coefficient.
	LPCPrecision int

	// ResidualCodingMethod is the partitioned-Rice variant used.
	ResidualCodingMethod ResidualCodingMethod
	// Rice holds the chosen partitioning and parameters.
	Rice *RiceSubframe
}

// Frame is a complete FLAC frame: its header and one subframe per channel.
type Frame struct {
	Header    Header
	Subframes []*Subframe
}
