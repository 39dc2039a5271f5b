//go:build !linux

package truetime

func deviceUptimeMs() int64 {
	return processUptimeMs()
}
