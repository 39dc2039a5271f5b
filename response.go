package truetime

import "time"

// Response is one validated SNTP exchange. All time fields are local
// epoch milliseconds; Ticks is the monotonic reading captured the
// moment the reply arrived and anchors later reconstruction. A
// Response is never modified after validation.
type Response struct {
	OriginateTime int64 // T0, client transmit, echoed by server
	ReceiveTime   int64 // T1, server receive
	TransmitTime  int64 // T2, server transmit
	ResponseTime  int64 // T3, client receive

	RootDelay      uint32 // raw 16.16 wire value
	RootDispersion uint32 // raw 16.16 wire value
	Stratum        uint8

	Ticks int64 // monotonic ms at receipt
}

// RoundTripDelay is delta of RFC 5905: (T3-T0) - (T2-T1). Diagnostic
// only, the trust gate is the server response delay check which is a
// different quantity.
func (r *Response) RoundTripDelay() int64 {
	return (r.ResponseTime - r.OriginateTime) - (r.TransmitTime - r.ReceiveTime)
}

// ClockOffset is theta of RFC 5905: ((T1-T0) + (T2-T3)) / 2.
func (r *Response) ClockOffset() int64 {
	return ((r.ReceiveTime - r.OriginateTime) + (r.TransmitTime - r.ResponseTime)) / 2
}

// TrueTime is the corrected wall clock at the moment the reply was
// received.
func (r *Response) TrueTime() int64 {
	return r.ResponseTime + r.ClockOffset()
}

// parseResponse extracts the protocol fields of a reply. responseMs is
// the client side T3 reconstructed from the request wall clock plus
// elapsed monotonic time, so a wall clock jump during the exchange
// cannot skew it.
func parseResponse(p []byte, responseMs, ticks int64) *Response {
	return &Response{
		OriginateTime:  readTimestamp(p, OriginTimeStamp),
		ReceiveTime:    readTimestamp(p, ReceiveTimeStamp),
		TransmitTime:   readTimestamp(p, TransmitTimeStamp),
		ResponseTime:   responseMs,
		RootDelay:      readUint32(p, RootDelayPos),
		RootDispersion: readUint32(p, RootDispersionPos),
		Stratum:        p[Stratum],
		Ticks:          ticks,
	}
}

// Time is TrueTime as a time.Time, for callers that want a stamp
// rather than milliseconds.
func (r *Response) Time() time.Time {
	tt := r.TrueTime()
	return time.Unix(tt/1000, (tt%1000)*int64(time.Millisecond))
}
