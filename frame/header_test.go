package frame

import "testing"

func TestChannelsForCountValidRange(t *testing.T) {
	for n := 1; n <= 8; n++ {
		ch, err := ChannelsForCount(n)
		if err != nil {
			t.Errorf("ChannelsForCount(%d): unexpected error %v", n, err)
		}
		if ch.NChannels() != n {
			t.Errorf("ChannelsForCount(%d).NChannels() = %d, want %d", n, ch.NChannels(), n)
		}
	}
}

func TestChannelsForCountRejectsOutOfRange(t *testing.T) {
	if _, err := ChannelsForCount(0); err == nil {
		t.Error("ChannelsForCount(0) should return an error")
	}
	if _, err := ChannelsForCount(9); err == nil {
		t.Error("ChannelsForCount(9) should return an error")
	}
}

func TestIsStereoDecorrelated(t *testing.T) {
	for _, ch := range []Channels{ChannelsLeftSide, ChannelsRightSide, ChannelsMidSide} {
		if !ch.IsStereoDecorrelated() {
			t.Errorf("%v should report IsStereoDecorrelated", ch)
		}
		if ch.NChannels() != 2 {
			t.Errorf("%v.NChannels() = %d, want 2", ch, ch.NChannels())
		}
	}
	if ChannelsLR.IsStereoDecorrelated() {
		t.Error("ChannelsLR should not report IsStereoDecorrelated")
	}
}
