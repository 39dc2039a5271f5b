package truetime

import (
	"time"

	"github.com/beevik/ntp"
)

// referenceOffset queries addr through the reference NTP library and
// returns its idea of the clock offset. Used by the sync manager to
// sanity check our own computation against an independent
// implementation.
func referenceOffset(addr string, timeout time.Duration) (time.Duration, error) {
	resp, err := ntp.QueryWithOptions(addr, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return 0, err
	}
	if err = resp.Validate(); err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}
