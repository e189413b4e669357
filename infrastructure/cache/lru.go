package cache

import (
	"container/list"
	"sync"
)

// NamespaceLRU is a namespace-based LRU cache
type NamespaceLRU[V any] struct {
	capacity int
	items    map[string]*list.Element
	queue    *list.List
	mutex    sync.Mutex
}

type entry[V any] struct {
	key   string
	value V
}

// NewNamespaceLRU creates a new namespace-based LRU cache with specified capacity.
// A capacity below one disables caching.
func NewNamespaceLRU[V any](capacity int) *NamespaceLRU[V] {
	return &NamespaceLRU[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		queue:    list.New(),
	}
}

func compositeKey(namespace, key string) string {
	return namespace + ":" + key
}

// Set adds or updates a key-value pair in the cache with a namespace
func (c *NamespaceLRU[V]) Set(namespace, key string, value V) {
	if c.capacity < 1 {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	k := compositeKey(namespace, key)
	if element, exists := c.items[k]; exists {
		c.queue.MoveToFront(element)
		element.Value.(*entry[V]).value = value
		return
	}

	c.items[k] = c.queue.PushFront(&entry[V]{key: k, value: value})

	for c.queue.Len() > c.capacity {
		c.evict()
	}
}

// Get retrieves a value and marks it as recently used
func (c *NamespaceLRU[V]) Get(namespace, key string) (V, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	element, exists := c.items[compositeKey(namespace, key)]
	if !exists {
		var zero V
		return zero, false
	}

	c.queue.MoveToFront(element)
	return element.Value.(*entry[V]).value, true
}

// Len returns the current number of items in the cache
func (c *NamespaceLRU[V]) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.queue.Len()
}

// evict removes the least recently used item; callers hold the mutex
func (c *NamespaceLRU[V]) evict() {
	element := c.queue.Back()
	if element == nil {
		return
	}

	c.queue.Remove(element)
	delete(c.items, element.Value.(*entry[V]).key)
}
