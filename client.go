package truetime

import (
	"errors"
	"log"
	"math/rand"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrNotSynced   = errors.New("truetime: no successful sync yet")
	errShortPacket = errors.New("truetime: short packet from server")
)

// syncState is the cached pair: corrected wall clock and the
// monotonic reading taken when it was measured. Always swapped as a
// unit, a reader mixing one fresh and one stale half would corrupt
// every later reconstruction.
type syncState struct {
	trueTimeMs int64
	uptimeMs   int64
}

// Client performs single SNTP exchanges and keeps the most recent
// validated result. One exchange at a time; the cached pair stays
// readable by any number of goroutines while an exchange runs.
type Client struct {
	cfg *Config

	mu    sync.Mutex
	state atomic.Value // syncState

	wallClock func() int64
	ticks     func() int64
	filler    func() byte
}

func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Client{
		cfg:       cfg,
		wallClock: func() int64 { return time.Now().UnixMilli() },
		ticks:     deviceUptimeMs,
		filler:    func() byte { return byte(rand.Intn(256)) },
	}
}

// Query runs one request/validate/compute cycle against addr and
// caches the result. addr without a port gets the NTP port 123. The
// cache is untouched on any error.
func (c *Client) Query(addr string) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "123")
	}

	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err = conn.SetDeadline(time.Now().Add(c.cfg.timeout())); err != nil {
		return nil, err
	}

	requestMs := c.wallClock()
	requestTicks := c.ticks()

	if _, err = conn.Write(buildRequest(requestMs, c.filler())); err != nil {
		return nil, err
	}

	p := make([]byte, PacketSize)
	n, err := conn.Read(p)
	if err != nil {
		return nil, err
	}
	responseTicks := c.ticks()
	if n < PacketSize {
		return nil, errShortPacket
	}

	// T3 from the request wall clock plus monotonic elapsed, immune
	// to wall clock steps during the exchange.
	resp := parseResponse(p, requestMs+(responseTicks-requestTicks), responseTicks)
	if err = validate(p, resp, c.cfg, c.wallClock()); err != nil {
		log.Printf("truetime: %s rejected: %s", addr, err)
		return nil, err
	}

	c.state.Store(syncState{trueTimeMs: resp.TrueTime(), uptimeMs: resp.Ticks})
	log.Printf("truetime: reply from %s offset=%dms rtt=%dms stratum=%d",
		addr, resp.ClockOffset(), resp.RoundTripDelay(), resp.Stratum)
	return resp, nil
}

// Initialized reports whether at least one exchange has succeeded or
// a cached pair was restored.
func (c *Client) Initialized() bool {
	_, ok := c.state.Load().(syncState)
	return ok
}

// NowMs reconstructs the current true time from the cached pair and
// the monotonic clock, without touching the network.
func (c *Client) NowMs() (int64, error) {
	st, ok := c.state.Load().(syncState)
	if !ok {
		return 0, ErrNotSynced
	}
	return st.trueTimeMs + (c.ticks() - st.uptimeMs), nil
}

// Now is NowMs as a time.Time.
func (c *Client) Now() (time.Time, error) {
	ms, err := c.NowMs()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond)), nil
}

// Cached returns the raw cached pair for persistence.
func (c *Client) Cached() (trueTimeMs, uptimeMs int64, ok bool) {
	st, ok := c.state.Load().(syncState)
	return st.trueTimeMs, st.uptimeMs, ok
}

// Restore seeds the cache from persisted values, e.g. across a
// process restart within the same boot.
func (c *Client) Restore(trueTimeMs, uptimeMs int64) {
	c.state.Store(syncState{trueTimeMs: trueTimeMs, uptimeMs: uptimeMs})
}
