package flake

// PredictionType selects the subframe prediction strategy considered by the
// residual encoder.
type PredictionType int

// Prediction types, matching the -t flag of the reference encoder.
const (
	// PredictionNone disables prediction: every subframe is encoded verbatim
	// or constant.
	PredictionNone PredictionType = iota
	// PredictionFixed restricts prediction to the four fixed predictors.
	PredictionFixed
	// PredictionLevinson enables full LPC analysis (Levinson-Durbin), falling
	// back to fixed or verbatim when cheaper.
	PredictionLevinson
)

// OrderMethod selects how a prediction order is chosen among the candidates
// in [min order, max order].
type OrderMethod int

// Order selection methods, matching the -m flag of the reference encoder.
const (
	// OrderMax always uses the maximum allowed order.
	OrderMax OrderMethod = iota
	// OrderEstimate picks a single candidate cheaply: for LPC, from the
	// Levinson-Durbin prediction error of each order; for Fixed, the order
	// with the smallest mean residual sum (estimateBestFixedOrder).
	OrderEstimate
	// Order2Level evaluates 2 evenly spaced candidate orders.
	Order2Level
	// Order4Level evaluates 4 evenly spaced candidate orders.
	Order4Level
	// Order8Level evaluates 8 evenly spaced candidate orders.
	Order8Level
	// OrderSearch evaluates every candidate order exhaustively.
	OrderSearch
	// OrderLog evaluates orders on a log2-spaced grid: dense at low orders,
	// sparse at high orders.
	OrderLog
)

// StereoMethod selects how a stereo pair of channels is decorrelated.
type StereoMethod int

// Stereo decorrelation methods, matching the -s flag of the reference
// encoder.
const (
	// StereoIndependent never decorrelates; left and right are encoded as
	// independent subframes.
	StereoIndependent StereoMethod = iota
	// StereoEstimate picks the cheapest of LeftRight, LeftSide, RightSide and
	// MidSide per block, by estimated Rice cost.
	StereoEstimate
)

// orderRange is an inclusive [Min, Max] prediction order range. Whether it
// replaces the compression-level default is tracked by fieldOverrides, not
// by its value.
type orderRange struct {
	Min, Max int
}

// EncoderConfig holds the user-supplied parameters for an Encoder. Only
// Channels, SampleRate and BitsPerSample are mandatory; every other field may
// be left at its zero value to inherit the CompressionLevel preset.
type EncoderConfig struct {
	// Channels is the number of interleaved channels, 1..8.
	Channels int
	// SampleRate is the sample rate in Hz, 1..655350.
	SampleRate int
	// BitsPerSample is the sample bit depth; this implementation supports
	// 8, 16 and 24 (see SPEC_FULL.md §10 for why the full FLAC range of
	// 4..32 is not accepted as input, even though the wire format's
	// bits-per-sample field can represent it).
	BitsPerSample int
	// TotalSamples is the total inter-channel sample count, or 0 if unknown.
	TotalSamples uint64

	// CompressionLevel seeds every unset field below from the preset table
	// in defaults.go. Valid range: 0..12.
	CompressionLevel int

	// BlockSize overrides the compression-level block size when set via
	// WithBlockSize.
	BlockSize int
	// Prediction overrides the compression-level prediction type when set
	// via WithPrediction; otherwise the preset's type applies.
	Prediction PredictionType
	// Order overrides the compression-level prediction order range when set
	// via WithOrder; otherwise the preset's range applies.
	Order orderRange
	// OrderSelect overrides the compression-level order-selection method
	// when set via WithOrderSelect.
	OrderSelect OrderMethod
	// Partition overrides the compression-level Rice partition order range
	// when set via WithPartition.
	Partition orderRange
	// Stereo overrides the compression-level stereo method when set via
	// WithStereo.
	Stereo StereoMethod
	// Padding is the number of zero bytes reserved in a PADDING metadata
	// block, when set via WithPadding; 0 set that way means no PADDING
	// block. Without the override the default of 4096 bytes applies.
	Padding int
	// VariableBlockSize requests sample-number frame headers instead of
	// frame-number headers. Unsupported by this implementation (see
	// SPEC_FULL.md §4.10 / Design Notes): ResolveConfig rejects it.
	VariableBlockSize bool

	// overrides tracks which of the above fields the caller explicitly set,
	// so ResolveConfig can tell "zero value" apart from "inherit preset".
	overrides fieldOverrides
}

// fieldOverrides records which optional EncoderConfig fields were explicitly
// set via the With* builder methods, so a zero value is distinguishable from
// "not specified".
type fieldOverrides struct {
	blockSize, prediction, order, orderSelect, partition, stereo, padding bool
}

// WithBlockSize overrides the compression-level block size.
func (c EncoderConfig) WithBlockSize(n int) EncoderConfig {
	c.BlockSize = n
	c.overrides.blockSize = true
	return c
}

// WithPrediction overrides the compression-level prediction type.
func (c EncoderConfig) WithPrediction(p PredictionType) EncoderConfig {
	c.Prediction = p
	c.overrides.prediction = true
	return c
}

// WithOrder overrides the compression-level prediction order range.
func (c EncoderConfig) WithOrder(min, max int) EncoderConfig {
	c.Order = orderRange{Min: min, Max: max}
	c.overrides.order = true
	return c
}

// WithOrderSelect overrides the compression-level order-selection method.
func (c EncoderConfig) WithOrderSelect(m OrderMethod) EncoderConfig {
	c.OrderSelect = m
	c.overrides.orderSelect = true
	return c
}

// WithPartition overrides the compression-level Rice partition order range.
func (c EncoderConfig) WithPartition(min, max int) EncoderConfig {
	c.Partition = orderRange{Min: min, Max: max}
	c.overrides.partition = true
	return c
}

// WithStereo overrides the compression-level stereo method.
func (c EncoderConfig) WithStereo(s StereoMethod) EncoderConfig {
	c.Stereo = s
	c.overrides.stereo = true
	return c
}

// WithPadding overrides the compression-level padding size.
func (c EncoderConfig) WithPadding(n int) EncoderConfig {
	c.Padding = n
	c.overrides.padding = true
	return c
}
