package truetime

import "testing"

func TestBuildRequest(t *testing.T) {
	const ms = 1466249698010

	p := buildRequest(ms, 0)
	if len(p) != PacketSize {
		t.Fatalf("packet size: got %d", len(p))
	}
	if p[LiVnMode] != 0x1b {
		t.Errorf("header byte: got %#x, want 0x1b", p[LiVnMode])
	}
	if diff := ms - readTimestamp(p, TransmitTimeStamp); diff < 0 || diff > 1 {
		t.Errorf("transmit timestamp: diff %d", diff)
	}
	for i := 1; i < TransmitTimeStamp; i++ {
		if p[i] != 0 {
			t.Errorf("byte %d not zero: %#x", i, p[i])
		}
	}
}
