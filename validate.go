package flake

// subsetMaxBlockSize is the largest block size permitted by the FLAC subset.
const subsetMaxBlockSize = 16384

// validateResolved checks a ResolvedConfig against the FLAC-legal ranges.
// Subset violations are not rejected here; callers that care can inspect
// ExceedsSubset, which reports only a block size above 16384 or a
// non-standard sample rate (it does not check LPC precision or order).
func validateResolved(rc ResolvedConfig) error {
	if rc.Channels < 1 || rc.Channels > 8 {
		return invalidConfigf("channels %d out of range [1,8]", rc.Channels)
	}
	if rc.SampleRate < 1 || rc.SampleRate > 655350 {
		return invalidConfigf("sample rate %d out of range [1,655350]", rc.SampleRate)
	}
	if _, ok := standardSampleRates[rc.SampleRate]; !ok {
		if _, _, _, ok := extendedSampleRateField(rc.SampleRate); !ok {
			return invalidConfigf("sample rate %d cannot be represented exactly by the standard table or any extended rate field", rc.SampleRate)
		}
	}
	switch rc.BitsPerSample {
	case 8, 16, 24:
	default:
		return invalidConfigf("bits per sample %d not in supported set {8,16,24}", rc.BitsPerSample)
	}
	if rc.BlockSize < 16 || rc.BlockSize > 65535 {
		return invalidConfigf("block size %d out of range [16,65535]", rc.BlockSize)
	}
	switch rc.Prediction {
	case PredictionNone, PredictionFixed, PredictionLevinson:
	default:
		return invalidConfigf("prediction type %d not in range [0,2]", rc.Prediction)
	}
	switch rc.Stereo {
	case StereoIndependent, StereoEstimate:
	default:
		return invalidConfigf("stereo method %d not in range [0,1]", rc.Stereo)
	}
	if rc.Prediction == PredictionFixed {
		if rc.OrderMin < 0 || rc.OrderMax > 4 || rc.OrderMin > rc.OrderMax {
			return invalidConfigf("fixed prediction order range [%d,%d] out of [0,4]", rc.OrderMin, rc.OrderMax)
		}
	}
	if rc.Prediction == PredictionLevinson {
		if rc.OrderMin < 1 || rc.OrderMax > 32 || rc.OrderMin > rc.OrderMax {
			return invalidConfigf("LPC prediction order range [%d,%d] out of [1,32]", rc.OrderMin, rc.OrderMax)
		}
	}
	if rc.PartitionMin < 0 || rc.PartitionMax > 8 || rc.PartitionMin > rc.PartitionMax {
		return invalidConfigf("partition order range [%d,%d] out of [0,8]", rc.PartitionMin, rc.PartitionMax)
	}
	if rc.Padding < 0 {
		return invalidConfigf("padding %d must be >= 0", rc.Padding)
	}
	return nil
}

// ExceedsSubset reports whether a ResolvedConfig, while otherwise valid,
// would produce a stream outside the FLAC subset: a block size above
// subsetMaxBlockSize, or a non-standard sample rate requiring an
// extended-rate frame header field instead of the short 4-bit code.
func (rc ResolvedConfig) ExceedsSubset() bool {
	if rc.BlockSize > subsetMaxBlockSize {
		return true
	}
	if _, extended := sampleRateCode(rc.SampleRate); extended {
		return true
	}
	return false
}
