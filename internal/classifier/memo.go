package classifier

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/samcharles93/beanclass/internal/features"
)

type memo struct {
	cache *lru.Cache[features.Vector, string]
}

func newMemo(size int) *memo {
	cache, err := lru.New[features.Vector, string](size)
	if err != nil {
		// only returned for size <= 0, which WithMemo filters out
		return nil
	}
	return &memo{cache: cache}
}

func (m *memo) get(x features.Vector) (string, bool) {
	if m == nil {
		return "", false
	}
	return m.cache.Get(x)
}

func (m *memo) add(x features.Vector, label string) {
	if m == nil {
		return
	}
	m.cache.Add(x, label)
}

// MemoLen reports the number of memoized vectors.
func (c *Classifier) MemoLen() int {
	if c.memo == nil {
		return 0
	}
	return c.memo.cache.Len()
}
