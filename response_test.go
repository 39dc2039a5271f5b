package truetime

import "testing"

func TestClockOffsetSymmetry(t *testing.T) {
	// Zero network delay, zero processing time: offset collapses to
	// T1-T0 and the round trip vanishes.
	const t0 = 1466249698010
	r := &Response{
		OriginateTime: t0,
		ReceiveTime:   t0 + 50,
		TransmitTime:  t0 + 50,
		ResponseTime:  t0,
	}
	if got := r.ClockOffset(); got != 50 {
		t.Errorf("clock offset: got %d, want 50", got)
	}
	if got := r.RoundTripDelay(); got != 0 {
		t.Errorf("round trip delay: got %d, want 0", got)
	}
	if got := r.TrueTime(); got != t0+50 {
		t.Errorf("true time: got %d, want %d", got, t0+50)
	}
}

func TestRoundTripDelay(t *testing.T) {
	r := &Response{
		OriginateTime: 1000,
		ReceiveTime:   1040,
		TransmitTime:  1060,
		ResponseTime:  1100,
	}
	// (1100-1000) - (1060-1040) = 80
	if got := r.RoundTripDelay(); got != 80 {
		t.Errorf("round trip delay: got %d, want 80", got)
	}
}

func TestParseResponse(t *testing.T) {
	p := make([]byte, PacketSize)
	p[Stratum] = 2
	writeTimestamp(p, OriginTimeStamp, 1000, 0)
	writeTimestamp(p, ReceiveTimeStamp, 2000, 0)
	writeTimestamp(p, TransmitTimeStamp, 3000, 0)
	p[RootDelayPos+2] = 0x01 // raw 256
	p[RootDispersionPos+2] = 0x02

	r := parseResponse(p, 4000, 555)
	if r.OriginateTime != 1000 || r.ReceiveTime != 2000 || r.TransmitTime != 3000 {
		t.Errorf("timestamps: %d %d %d", r.OriginateTime, r.ReceiveTime, r.TransmitTime)
	}
	if r.ResponseTime != 4000 || r.Ticks != 555 {
		t.Errorf("client fields: %d %d", r.ResponseTime, r.Ticks)
	}
	if r.RootDelay != 256 || r.RootDispersion != 512 {
		t.Errorf("fixed point fields: %d %d", r.RootDelay, r.RootDispersion)
	}
	if r.Stratum != 2 {
		t.Errorf("stratum: %d", r.Stratum)
	}
}
