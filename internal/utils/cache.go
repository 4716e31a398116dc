package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheItem 包装缓存数据和过期时间
type cacheItem struct {
	data      interface{}
	expiresAt time.Time
}

// Cache 带 TTL 的 LRU 缓存，启动时创建一次并注入使用方
// 底层 lru.Cache 自带锁，可跨请求并发使用
type Cache struct {
	entries *lru.Cache[string, cacheItem]
}

// NewCache 创建指定容量的缓存
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[string, cacheItem](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Set 设置缓存，TTL 为过期时间
func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	c.entries.Add(key, cacheItem{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	})
}

// Get 获取缓存，若不存在或已过期则返回 nil
func (c *Cache) Get(key string) interface{} {
	item, ok := c.entries.Get(key)
	if !ok {
		return nil
	}

	// 检查过期
	if time.Now().After(item.expiresAt) {
		c.entries.Remove(key)
		return nil
	}

	return item.data
}

// Delete 删除指定缓存
func (c *Cache) Delete(key string) {
	c.entries.Remove(key)
}
