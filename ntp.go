package truetime

import "encoding/binary"

// Byte positions within a 48 byte NTP packet.
const (
	LiVnMode           = 0
	Stratum            = 1
	Poll               = 2
	ClockPrecision     = 3
	RootDelayPos       = 4
	RootDispersionPos  = 8
	ReferIDPos         = 12
	ReferenceTimeStamp = 16
	OriginTimeStamp    = 24
	ReceiveTimeStamp   = 32
	TransmitTimeStamp  = 40
)

const (
	PacketSize = 48

	ModeClient    = 3
	ModeServer    = 4
	ModeBroadcast = 5

	versionNumber = 3

	// NotSync is the leap indicator a server reports when its own
	// clock is not synchronized.
	NotSync = 3
)

// offset1900To1970 is the seconds between the NTP epoch (1900) and the
// Unix epoch (1970): 70 years plus 17 leap days.
const offset1900To1970 = ((365 * 70) + 17) * 86400

// writeTimestamp encodes a local epoch millisecond value as a 64 bit
// NTP timestamp at pos. The low order fraction byte carries filler;
// the protocol suggests random data there but does not require it.
func writeTimestamp(p []byte, pos int, epochMs int64, filler byte) {
	secs := epochMs / 1000
	ms := epochMs - secs*1000
	secs += offset1900To1970

	binary.BigEndian.PutUint32(p[pos:], uint32(secs))

	frac := ms * (1 << 32) / 1000
	p[pos+4] = byte(frac >> 24)
	p[pos+5] = byte(frac >> 16)
	p[pos+6] = byte(frac >> 8)
	p[pos+7] = filler
}

// readTimestamp decodes the 64 bit NTP timestamp at pos into local
// epoch milliseconds. Both halves are unsigned on the wire, sign
// extending either one produces garbage dates.
func readTimestamp(p []byte, pos int) int64 {
	secs := int64(binary.BigEndian.Uint32(p[pos:]))
	frac := int64(binary.BigEndian.Uint32(p[pos+4:]))
	return (secs-offset1900To1970)*1000 + frac*1000/(1<<32)
}

func readUint32(p []byte, pos int) uint32 {
	return binary.BigEndian.Uint32(p[pos:])
}

// shortToMillis converts an NTP short (16.16 fixed point) to
// milliseconds: raw/65536 seconds = raw/65.536 ms.
func shortToMillis(raw uint32) float64 {
	return float64(raw) / 65.536
}
