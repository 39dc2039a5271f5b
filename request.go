package truetime

// buildRequest fills a client mode packet carrying epochMs as the
// transmit timestamp. Everything else is zero per protocol.
func buildRequest(epochMs int64, filler byte) []byte {
	p := make([]byte, PacketSize)
	p[LiVnMode] = ModeClient | versionNumber<<3
	writeTimestamp(p, TransmitTimeStamp, epochMs, filler)
	return p
}
