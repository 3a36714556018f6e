package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/devbush/autoedit/internal/ports"
)

// Memo keeps recent probe results in memory in front of a persistent store,
// so an input listed twice in one batch is read from disk once.
type Memo struct {
	store  ports.ProbeCache
	recent *lru.Cache[string, *ports.CachedProbe]
}

// NewMemo wraps store with an LRU of the given size
func NewMemo(store ports.ProbeCache, size int) (*Memo, error) {
	recent, err := lru.New[string, *ports.CachedProbe](size)
	if err != nil {
		return nil, err
	}
	return &Memo{store: store, recent: recent}, nil
}

func (m *Memo) Get(ctx context.Context, key ports.ProbeKey) (*ports.CachedProbe, error) {
	id := KeyID(key)
	if item, ok := m.recent.Get(id); ok {
		return item, nil
	}

	item, err := m.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	m.recent.Add(id, item)
	return item, nil
}

func (m *Memo) Set(ctx context.Context, item *ports.CachedProbe) error {
	m.recent.Add(KeyID(item.Key), item)
	return m.store.Set(ctx, item)
}

func (m *Memo) CleanExpired(ctx context.Context) (int, error) {
	m.recent.Purge()
	return m.store.CleanExpired(ctx)
}

func (m *Memo) Clear(ctx context.Context) error {
	m.recent.Purge()
	return m.store.Clear(ctx)
}

func (m *Memo) Dir() string {
	return m.store.Dir()
}

func (m *Memo) Stats(ctx context.Context) (int, int64, error) {
	return m.store.Stats(ctx)
}

var _ ports.ProbeCache = (*Memo)(nil)
