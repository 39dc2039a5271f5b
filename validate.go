package truetime

import "fmt"

// maxOriginAge is how far the echoed originate timestamp may sit from
// the current wall clock before the reply is considered stale. The
// comparison is deliberately against the wall clock, not the recorded
// request time: a server that mangles the origin timestamp fails here
// too, which is part of the point.
const maxOriginAge = 10000 // ms

// InvalidResponseError reports which trust check a server reply
// failed, with the offending and permitted values for diagnostics.
// Any single failure is fatal to the exchange.
type InvalidResponseError struct {
	Field    string
	Actual   float64
	Expected float64
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid server response: %s violation, %f [actual] vs %f [expected]",
		e.Field, e.Actual, e.Expected)
}

// validate runs the trust gate over a parsed reply in a fixed order,
// stopping at the first violation. p is the raw packet, nowMs the
// wall clock at validation time.
func validate(p []byte, r *Response, cfg *Config, nowMs int64) error {
	if rd := shortToMillis(r.RootDelay); rd > cfg.RootDelayMax {
		return &InvalidResponseError{Field: "root_delay", Actual: rd, Expected: cfg.RootDelayMax}
	}

	if rdsp := shortToMillis(r.RootDispersion); rdsp > cfg.RootDispersionMax {
		return &InvalidResponseError{Field: "root_dispersion", Actual: rdsp, Expected: cfg.RootDispersionMax}
	}

	mode := p[LiVnMode] & 0x7
	if mode != ModeServer && mode != ModeBroadcast {
		return &InvalidResponseError{Field: "mode", Actual: float64(mode), Expected: ModeServer}
	}

	if r.Stratum < 1 || r.Stratum > 15 {
		return &InvalidResponseError{Field: "stratum", Actual: float64(r.Stratum), Expected: 15}
	}

	if leap := p[LiVnMode] >> 6 & 0x3; leap == NotSync {
		return &InvalidResponseError{Field: "leap", Actual: NotSync, Expected: 0}
	}

	delay := (r.ResponseTime - r.OriginateTime) - (r.TransmitTime - r.ReceiveTime)
	if delay < 0 {
		delay = -delay
	}
	if float64(delay) >= cfg.ResponseDelayMax {
		return &InvalidResponseError{Field: "server_response_delay", Actual: float64(delay), Expected: cfg.ResponseDelayMax}
	}

	age := nowMs - r.OriginateTime
	if age < 0 {
		age = -age
	}
	if age >= maxOriginAge {
		return &InvalidResponseError{Field: "origin_age", Actual: float64(age), Expected: maxOriginAge}
	}

	return nil
}
