package truetime

import "golang.org/x/sys/unix"

// deviceUptimeMs reads CLOCK_BOOTTIME so the reading is anchored to
// boot rather than process start, which lets a cached pair survive a
// process restart within the same boot.
func deviceUptimeMs() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_BOOTTIME, &ts); err != nil {
		return processUptimeMs()
	}
	return int64(ts.Sec)*1000 + int64(ts.Nsec)/1e6
}
