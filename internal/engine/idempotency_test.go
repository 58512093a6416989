package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIdempotencyKeyUniqueness(t *testing.T) {
	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		key := NewIdempotencyKey()
		_, dup := seen[key]
		assert.False(t, dup, "duplicate key %s after %d issues", key, i)
		seen[key] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestNewIdempotencyKeyConcurrent(t *testing.T) {
	const workers = 8
	const perWorker = 500

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			keys := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				keys = append(keys, NewIdempotencyKey())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, k := range keys {
				seen[k] = struct{}{}
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}
