package server

import (
	"github.com/coocood/freecache"
)

// Memo holds encoded lookup responses between requests.
type Memo interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

type freeMemo struct {
	cache *freecache.Cache
	ttl   int
}

// NewMemo returns a freecache-backed memo of sizeMB megabytes whose entries
// expire after ttlSeconds. A size of zero disables memoisation.
func NewMemo(sizeMB, ttlSeconds int) Memo {
	if sizeMB <= 0 {
		return noopMemo{}
	}
	return &freeMemo{
		cache: freecache.NewCache(sizeMB * 1024 * 1024),
		ttl:   max(ttlSeconds, 1),
	}
}

func (m *freeMemo) Get(key string) ([]byte, bool) {
	val, err := m.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (m *freeMemo) Set(key string, value []byte) {
	_ = m.cache.Set([]byte(key), value, m.ttl)
}

type noopMemo struct{}

func (noopMemo) Get(_ string) ([]byte, bool) { return nil, false }
func (noopMemo) Set(_ string, _ []byte)      {}
