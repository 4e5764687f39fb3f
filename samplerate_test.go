package flake

import "testing"

func TestSampleRateCodeStandardRate(t *testing.T) {
	code, extended := sampleRateCode(44100)
	if extended {
		t.Error("44100 Hz should not require an extended rate field")
	}
	if code != 9 {
		t.Errorf("sampleRateCode(44100) = %d, want 9", code)
	}
}

func TestSampleRateCodeNonStandardRate(t *testing.T) {
	code, extended := sampleRateCode(44099)
	if !extended {
		t.Error("44099 Hz should require an extended rate field")
	}
	if code != sampleRateCodeHz {
		t.Errorf("sampleRateCode(44099) code = %d, want %d", code, sampleRateCodeHz)
	}
}
