package truetime

import "time"

var processStart = time.Now()

// processUptimeMs is the portable fallback: monotonic milliseconds
// since process start. Good enough within a single run, useless
// across restarts.
func processUptimeMs() int64 {
	return time.Since(processStart).Milliseconds()
}
