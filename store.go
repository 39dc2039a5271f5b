package truetime

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// Well known keys for persisted sync state.
const (
	KeyCachedBootTime     = "cached_boot_time"
	KeyCachedDeviceUptime = "cached_device_uptime"
	KeyCachedSntpTime     = "cached_sntp_time"
)

// Store is the persistence collaborator: a flat integer key/value
// space. The client core never touches it, the sync manager writes
// through it when durability across restarts is wanted.
type Store interface {
	Put(key string, value int64) error
	Get(key string, def int64) int64
	Clear() error
}

// FileStore keeps the key space in a small text file, one
// "key value" line each.
type FileStore struct {
	path string

	mu sync.Mutex
	m  map[string]int64
}

func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path, m: make(map[string]int64)}
	s.load()
	return s
}

func (s *FileStore) load() {
	p, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(p), "\n") {
		k, v, ok := strings.Cut(strings.TrimSpace(line), " ")
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		s.m[k] = n
	}
}

func (s *FileStore) flush() error {
	var dst []byte
	for k, v := range s.m {
		dst = append(dst, k...)
		dst = append(dst, ' ')
		dst = strconv.AppendInt(dst, v, 10)
		dst = append(dst, '\n')
	}
	return os.WriteFile(s.path, dst, 0644)
}

func (s *FileStore) Put(key string, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return s.flush()
}

func (s *FileStore) Get(key string, def int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.m[key]; ok {
		return v
	}
	return def
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = make(map[string]int64)
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
