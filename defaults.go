package flake

// preset holds one compression level's resolved defaults. Values are sourced
// from the reference Flake encoder's own -h help text (see SPEC_FULL.md §10
// for why that table, rather than libflake/encode.c's internal default
// array, is treated as authoritative where the two disagree) and from
// encode.c's min_partition_order table, which flake.c's CLI help does not
// expose per level.
type preset struct {
	blockSize         int
	prediction        PredictionType
	orderMin, orderMax int
	orderMethod       OrderMethod
	partMin, partMax  int
	stereo            StereoMethod
}

// presets holds the 13 compression-level (0..12) defaults.
var presets = [13]preset{
	{1152, PredictionFixed, 2, 2, OrderMax, 2, 2, StereoIndependent},
	{1152, PredictionFixed, 2, 4, OrderEstimate, 2, 3, StereoEstimate},
	{1152, PredictionFixed, 1, 4, OrderEstimate, 0, 3, StereoEstimate},
	{4096, PredictionLevinson, 1, 6, OrderEstimate, 0, 4, StereoIndependent},
	{4096, PredictionLevinson, 1, 8, OrderEstimate, 0, 4, StereoEstimate},
	{4096, PredictionLevinson, 1, 8, OrderEstimate, 0, 5, StereoEstimate},
	{4096, PredictionLevinson, 1, 8, OrderEstimate, 0, 6, StereoEstimate},
	{4096, PredictionLevinson, 1, 8, Order4Level, 0, 6, StereoEstimate},
	{4096, PredictionLevinson, 1, 12, OrderLog, 0, 6, StereoEstimate},
	{4096, PredictionLevinson, 1, 12, OrderLog, 0, 8, StereoEstimate},
	{4096, PredictionLevinson, 1, 12, OrderSearch, 0, 8, StereoEstimate},
	{8192, PredictionLevinson, 1, 32, OrderLog, 0, 8, StereoEstimate},
	{8192, PredictionLevinson, 1, 32, OrderSearch, 0, 8, StereoEstimate},
}

// blockTimeMs is libflake/encode.c's block_time_ms table, one block duration
// per compression level, for use with selectBlockSize. ResolveConfig uses
// neither: it takes the block size from presets whatever the sample rate.
var blockTimeMs = [13]int{24, 24, 24, 47, 93, 105, 105, 105, 105, 105, 105, 105, 105}

// standardBlockSizes are the block sizes FLAC frame headers can encode with a
// short 4-bit code, ordered as encode.c enumerates them.
var standardBlockSizes = []int{192, 576, 1152, 2304, 4608, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768}

// selectBlockSize returns the largest standard block size not exceeding
// rate*timeMs/1000, falling back to the smallest standard size if none
// qualify.
func selectBlockSize(sampleRate, timeMs int) int {
	target := sampleRate * timeMs / 1000
	best := standardBlockSizes[0]
	for _, bs := range standardBlockSizes {
		if bs <= target && bs > best {
			best = bs
		}
	}
	if best == standardBlockSizes[0] && target < best {
		// No standard size fits; use the smallest available rather than 0.
		return standardBlockSizes[0]
	}
	return best
}

// lpcPrecision returns the LPC coefficient precision, in bits, for a given
// block size, per libflake/encode.c's threshold table.
func lpcPrecision(blockSize int) int {
	switch {
	case blockSize <= 192:
		return 7
	case blockSize <= 384:
		return 8
	case blockSize <= 576:
		return 9
	case blockSize <= 1152:
		return 10
	case blockSize <= 2304:
		return 11
	case blockSize <= 4608:
		return 12
	case blockSize <= 8192:
		return 13
	case blockSize <= 16384:
		return 14
	default:
		return 15
	}
}

// defaultPadding is the padding metadata block size, in bytes, used when the
// caller does not override it.
const defaultPadding = 4096

// ResolvedConfig is the one-way resolution of an EncoderConfig against its
// compression-level preset: every optional field has a concrete value, and it
// holds no reference back to the EncoderConfig it was derived from.
type ResolvedConfig struct {
	Channels, SampleRate, BitsPerSample int
	TotalSamples                        uint64

	BlockSize                 int
	Prediction                PredictionType
	OrderMin, OrderMax        int
	OrderSelect               OrderMethod
	PartitionMin, PartitionMax int
	Stereo                    StereoMethod
	Padding                   int
	LPCPrecision              int
}

// ResolveConfig applies compression-level defaults to any EncoderConfig field
// the caller did not explicitly override, and validates the result.
func ResolveConfig(c EncoderConfig) (ResolvedConfig, error) {
	if c.CompressionLevel < 0 || c.CompressionLevel > 12 {
		return ResolvedConfig{}, invalidConfigf("compression level %d out of range [0,12]", c.CompressionLevel)
	}
	if c.VariableBlockSize {
		return ResolvedConfig{}, invalidConfigf("variable block size is not supported by this implementation")
	}
	p := presets[c.CompressionLevel]

	rc := ResolvedConfig{
		Channels:      c.Channels,
		SampleRate:    c.SampleRate,
		BitsPerSample: c.BitsPerSample,
		TotalSamples:  c.TotalSamples,
	}

	rc.BlockSize = p.blockSize
	if c.overrides.blockSize {
		rc.BlockSize = c.BlockSize
	}

	rc.Prediction = p.prediction
	if c.overrides.prediction {
		rc.Prediction = c.Prediction
	}

	rc.OrderMin, rc.OrderMax = p.orderMin, p.orderMax
	if c.overrides.order {
		rc.OrderMin, rc.OrderMax = c.Order.Min, c.Order.Max
	}

	rc.OrderSelect = p.orderMethod
	if c.overrides.orderSelect {
		rc.OrderSelect = c.OrderSelect
	}

	rc.PartitionMin, rc.PartitionMax = p.partMin, p.partMax
	if c.overrides.partition {
		rc.PartitionMin, rc.PartitionMax = c.Partition.Min, c.Partition.Max
	}

	rc.Stereo = p.stereo
	if c.overrides.stereo {
		rc.Stereo = c.Stereo
	}

	rc.Padding = defaultPadding
	if c.overrides.padding {
		rc.Padding = c.Padding
	}

	rc.LPCPrecision = lpcPrecision(rc.BlockSize)

	if err := validateResolved(rc); err != nil {
		return ResolvedConfig{}, err
	}
	return rc, nil
}
