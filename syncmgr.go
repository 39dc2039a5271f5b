package truetime

import (
	"errors"
	"log"
	"time"
)

// bootAnchorSlackMs bounds how far two boot-time estimates may drift
// apart and still count as the same boot. The estimate is wall clock
// minus uptime, so it wobbles with clock steps.
const bootAnchorSlackMs = 5000

var errNoServers = errors.New("truetime: no servers configured")

// SyncManager is the scheduling layer around a Client: it walks the
// server pool, re-syncs on an interval and writes the cached pair
// through the persistent store so a restart within the same boot
// starts out synced.
type SyncManager struct {
	client *Client
	cfg    *Config
	store  Store
	stat   *statService

	shutdown chan struct{}
	done     chan struct{}
}

func NewSyncManager(cfg *Config) *SyncManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	m := &SyncManager{
		client:   NewClient(cfg),
		cfg:      cfg,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	if cfg.CacheFile != "" {
		m.store = NewFileStore(cfg.CacheFile)
	}
	if cfg.Stats != nil && cfg.Stats.PromAddr != "" {
		m.stat = newStatService(cfg)
	}
	return m
}

// Client exposes the underlying client for true-time reads.
func (m *SyncManager) Client() *Client {
	return m.client
}

// bootTimeMs estimates the wall clock at boot, the durable anchor
// that makes a persisted uptime reading meaningful later.
func (m *SyncManager) bootTimeMs() int64 {
	return m.client.wallClock() - m.client.ticks()
}

// restore seeds the client cache from the store, but only when the
// persisted boot anchor still matches the current boot; an uptime
// reading from a previous boot is on a different scale entirely.
func (m *SyncManager) restore() {
	if m.store == nil {
		return
	}
	sntp := m.store.Get(KeyCachedSntpTime, 0)
	uptime := m.store.Get(KeyCachedDeviceUptime, 0)
	boot := m.store.Get(KeyCachedBootTime, 0)
	if sntp == 0 || uptime == 0 || boot == 0 {
		return
	}
	d := m.bootTimeMs() - boot
	if d < 0 {
		d = -d
	}
	if d > bootAnchorSlackMs {
		log.Printf("truetime: cached state is from another boot, clearing")
		if err := m.store.Clear(); err != nil {
			log.Printf("truetime: clear store: %s", err)
		}
		return
	}
	m.client.Restore(sntp, uptime)
	log.Printf("truetime: restored cached true time from %s", m.cfg.CacheFile)
}

// SyncOnce tries the configured servers in order until one exchange
// succeeds, then persists the fresh pair. Returns the last error when
// every server fails.
func (m *SyncManager) SyncOnce() error {
	lastErr := errNoServers
	for _, addr := range m.cfg.Servers {
		resp, err := m.client.Query(addr)
		if err != nil {
			m.stat.observeErr(err)
			log.Printf("truetime: query %s: %s", addr, err)
			lastErr = err
			continue
		}
		m.stat.observe(resp)
		m.persist(resp)
		if m.cfg.Crosscheck {
			m.crosscheck(addr, resp)
		}
		return nil
	}
	return lastErr
}

func (m *SyncManager) persist(resp *Response) {
	if m.store == nil {
		return
	}
	for k, v := range map[string]int64{
		KeyCachedSntpTime:     resp.TrueTime(),
		KeyCachedDeviceUptime: resp.Ticks,
		KeyCachedBootTime:     m.bootTimeMs(),
	} {
		if err := m.store.Put(k, v); err != nil {
			log.Printf("truetime: persist %s: %s", k, err)
		}
	}
}

// crosscheck queries the same server through the reference library
// and reports how far the two offset computations disagree.
func (m *SyncManager) crosscheck(addr string, resp *Response) {
	ref, err := referenceOffset(addr, m.cfg.timeout())
	if err != nil {
		log.Printf("truetime: crosscheck %s: %s", addr, err)
		return
	}
	diff := time.Duration(resp.ClockOffset())*time.Millisecond - ref
	if m.stat != nil {
		m.stat.refDiffGauge.Set(float64(diff.Milliseconds()))
	}
	log.Printf("truetime: crosscheck %s ours=%dms ref=%s diff=%s",
		addr, resp.ClockOffset(), ref, diff)
}

// Run restores persisted state, syncs once immediately and then on
// the configured interval until Stop is called.
func (m *SyncManager) Run() {
	m.restore()
	if err := m.SyncOnce(); err != nil {
		log.Printf("truetime: initial sync: %s", err)
	}
	t := time.NewTicker(m.cfg.syncInterval())
	defer t.Stop()
	for {
		select {
		case <-m.shutdown:
			close(m.done)
			return
		case <-t.C:
			if err := m.SyncOnce(); err != nil {
				log.Printf("truetime: sync: %s", err)
			}
		}
	}
}

// Stop shuts down the Run loop and waits for it to exit.
func (m *SyncManager) Stop() {
	close(m.shutdown)
	<-m.done
}
