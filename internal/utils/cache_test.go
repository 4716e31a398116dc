package utils

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	cache, err := NewCache(16)
	require.NoError(t, err)

	cache.Set("k", "v", time.Minute)
	assert.Equal(t, "v", cache.Get("k"))

	assert.Nil(t, cache.Get("missing"))
}

func TestCacheExpiry(t *testing.T) {
	cache, err := NewCache(16)
	require.NoError(t, err)

	cache.Set("k", "v", -time.Second) // 已过期
	assert.Nil(t, cache.Get("k"))
}

func TestCacheDelete(t *testing.T) {
	cache, err := NewCache(16)
	require.NoError(t, err)

	cache.Set("k", "v", time.Minute)
	cache.Delete("k")
	assert.Nil(t, cache.Get("k"))
}

func TestCacheConcurrentAccess(t *testing.T) {
	cache, err := NewCache(64)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n)
			for j := 0; j < 100; j++ {
				cache.Set(key, j, time.Minute)
				cache.Get(key)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		assert.Equal(t, 99, cache.Get(fmt.Sprintf("key-%d", i)))
	}
}
