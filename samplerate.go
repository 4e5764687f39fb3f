package flake

// standardSampleRates maps the sample rates the FLAC frame header can encode
// with its short 4-bit code (values 1..11) to that code. Rates outside this
// set still encode, via one of the extended-rate codes 12/13/14 appended
// after the header (see extendedSampleRateField), which takes the stream
// outside the FLAC subset.
var standardSampleRates = map[int]uint8{
	88200:  1,
	176400: 2,
	192000: 3,
	8000:   4,
	16000:  5,
	22050:  6,
	24000:  7,
	32000:  8,
	44100:  9,
	48000:  10,
	96000:  11,
}

// Extended sample-rate header codes: the rate is carried in an extra field
// following the header rather than the 4-bit code itself.
const (
	sampleRateCodeKHz    uint8 = 12 // 8-bit field, rate in kHz
	sampleRateCodeHz     uint8 = 13 // 16-bit field, rate in Hz
	sampleRateCodeTensHz uint8 = 14 // 16-bit field, rate in tens of Hz
)

// sampleRateCode returns the frame header's 4-bit sample-rate code for rate,
// plus whether an extended rate field follows the header because rate is
// not one of the standard rates.
func sampleRateCode(rate int) (code uint8, extended bool) {
	if c, ok := standardSampleRates[rate]; ok {
		return c, false
	}
	code, _, _, ok := extendedSampleRateField(rate)
	if !ok {
		return 0, true
	}
	return code, true
}

// extendedSampleRateField returns the extended-rate code, field value and
// field bit width for rate, preferring the most compact exact encoding:
// whole kHz (code 12, 8 bits), then Hz (code 13, 16 bits), then tens of Hz
// (code 14, 16 bits). ok is false if rate cannot be represented exactly by
// any of the three, in which case the stream cannot encode rate at all.
func extendedSampleRateField(rate int) (code uint8, value uint64, bits uint, ok bool) {
	if rate > 0 && rate%1000 == 0 && rate/1000 <= 0xFF {
		return sampleRateCodeKHz, uint64(rate / 1000), 8, true
	}
	if rate > 0 && rate <= 0xFFFF {
		return sampleRateCodeHz, uint64(rate), 16, true
	}
	if rate > 0 && rate%10 == 0 && rate/10 <= 0xFFFF {
		return sampleRateCodeTensHz, uint64(rate / 10), 16, true
	}
	return 0, 0, 0, false
}
