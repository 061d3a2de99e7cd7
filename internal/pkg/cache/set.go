package cache

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

func NewSet[T any](prefix string) *Set[T] {
	return &Set[T]{
		prefix: prefix + ":",
		c:      cache.New(time.Minute*10, time.Minute*10),
	}
}

// Set is a keyed variant of Singular. Entries expire after ten minutes so that
// keys referencing a superseded store generation age out on their own.
type Set[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	prefix string

	c *cache.Cache
}

func (c *Set[T]) key(key string) string {
	return c.prefix + key
}

func (c *Set[T]) Get(key string, dest *T) error {
	result, ok := c.c.Get(c.key(key))
	if !ok {
		return ErrNotFound
	}
	copyTo(result, dest)
	return nil
}

func (c *Set[T]) Set(key string, value T, expire time.Duration) error {
	c.c.Set(c.key(key), value, expire)
	return nil
}

func (c *Set[T]) MutexGetSet(key string, dest *T, valueFunc func() (T, error), expire time.Duration) error {
	err := c.Get(key, dest)
	if err == nil {
		return nil
	}

	c.m.Lock()
	defer c.m.Unlock()
	if err := c.Get(key, dest); err == nil {
		return nil
	}

	value, err := valueFunc()
	if err != nil {
		return err
	}

	if err := c.Set(key, value, expire); err != nil {
		return err
	}

	copyTo(value, dest)

	return nil
}

func (c *Set[T]) Flush() error {
	c.c.Flush()
	return nil
}
