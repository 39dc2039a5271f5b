package truetime

import "testing"

func TestCheckPosition(t *testing.T) {
	checkList := map[int]int{
		LiVnMode:           0,
		Stratum:            1,
		Poll:               2,
		ClockPrecision:     3,
		RootDelayPos:       4,
		RootDispersionPos:  8,
		ReferIDPos:         12,
		ReferenceTimeStamp: 16,
		OriginTimeStamp:    24,
		ReceiveTimeStamp:   32,
		TransmitTimeStamp:  40,
	}
	for k, v := range checkList {
		if k != v {
			t.Errorf("position check error expect:%d, get:%d", k, v)
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	samples := []int64{
		0,
		1,
		999,
		1000,
		1234567890123,
		1466249698010, // TrueTime reference epoch
		1756512000000,
	}
	p := make([]byte, PacketSize)
	for _, ms := range samples {
		writeTimestamp(p, TransmitTimeStamp, ms, 0)
		got := readTimestamp(p, TransmitTimeStamp)
		if diff := ms - got; diff < 0 || diff > 1 {
			t.Errorf("round trip %d: got %d (diff %d)", ms, got, diff)
		}
	}
}

// The seconds and fraction halves are unsigned on the wire; a value
// with the top bit set must not decode as negative.
func TestReadTimestampUnsigned(t *testing.T) {
	p := make([]byte, PacketSize)
	p[TransmitTimeStamp] = 0xf0
	got := readTimestamp(p, TransmitTimeStamp)
	want := (int64(0xf0000000) - offset1900To1970) * 1000
	if got != want {
		t.Errorf("high bit seconds: got %d, want %d", got, want)
	}

	p = make([]byte, PacketSize)
	p[TransmitTimeStamp+4] = 0x80
	got = readTimestamp(p, TransmitTimeStamp)
	want = -offset1900To1970*1000 + 500
	if got != want {
		t.Errorf("high bit fraction: got %d, want %d", got, want)
	}
}

func TestShortToMillis(t *testing.T) {
	if got := shortToMillis(65536); got != 1000 {
		t.Errorf("one second short: got %f", got)
	}
	for _, raw := range []uint32{1, 0x1000, 0x8000, 0x123456} {
		if a, b := shortToMillis(raw)*2, shortToMillis(raw*2); a != b {
			t.Errorf("linearity at %d: %f != %f", raw, a, b)
		}
	}
	if shortToMillis(1) >= shortToMillis(2) {
		t.Error("shortToMillis not monotonic")
	}
}

func TestFillerByte(t *testing.T) {
	p := make([]byte, PacketSize)
	writeTimestamp(p, TransmitTimeStamp, 1234567890123, 0xab)
	if p[TransmitTimeStamp+7] != 0xab {
		t.Errorf("filler byte: got %#x", p[TransmitTimeStamp+7])
	}
}
