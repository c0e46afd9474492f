package cipherbench

import (
	"sync"
	"sync/atomic"
)

// Cache hands out per-worker ownership slots. Each slot lazily builds one
// encrypting handle and keeps returning it, so the transformation lookup and
// key schedule are paid once per worker instead of once per call.
//
// Cache is safe for concurrent use. A Slot is not: it belongs to the
// goroutine that obtained it.
type Cache struct {
	keys *KeyHolder
	cfg  handleConfig

	mu     sync.Mutex
	slots  map[uint64]*Slot
	nextID uint64

	constructions atomic.Int64
}

// NewCache creates a cache building handles from the key in keys.
// A nil keys uses the process key holder.
func NewCache(keys *KeyHolder, opts ...HandleOption) *Cache {
	if keys == nil {
		keys = processKeys
	}
	return &Cache{
		keys:  keys,
		cfg:   newHandleConfig(opts),
		slots: make(map[uint64]*Slot),
	}
}

// Slot registers and returns a new empty slot.
func (c *Cache) Slot() *Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	s := &Slot{id: c.nextID, cache: c}
	c.slots[s.id] = s
	return s
}

// Len returns the number of live slots.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots)
}

// Constructions returns how many handles the cache has built.
func (c *Cache) Constructions() int64 {
	return c.constructions.Load()
}

// Close unregisters every live slot. It does not touch the slots themselves:
// a slot used after Close keeps returning its handle, unregistered, until its
// owner releases it.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.slots)
}

func (c *Cache) build() (*Handle, error) {
	key, err := c.keys.Key()
	if err != nil {
		return nil, err
	}
	h, err := newHandle(key, Encrypt, c.cfg)
	if err != nil {
		return nil, err
	}
	c.constructions.Add(1)
	return h, nil
}

func (c *Cache) add(s *Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[s.id] = s
}

func (c *Cache) remove(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.slots, id)
}

// Slot is a single worker's cached handle.
type Slot struct {
	id       uint64
	cache    *Cache
	handle   *Handle
	released bool
}

// ID returns the slot's identity within its cache.
func (s *Slot) ID() uint64 {
	return s.id
}

// Acquire returns the slot's handle, building it on first use.
// The handle is returned as is: no re-initialization between calls.
func (s *Slot) Acquire() (*Handle, error) {
	if s.handle != nil {
		return s.handle, nil
	}
	h, err := s.cache.build()
	if err != nil {
		return nil, err
	}
	if s.released {
		s.cache.add(s)
		s.released = false
	}
	s.handle = h
	return h, nil
}

// Release drops the slot's handle and unregisters the slot.
// A released slot may be reused; its next Acquire builds a new handle.
func (s *Slot) Release() {
	if s.released {
		return
	}
	s.handle = nil
	s.released = true
	s.cache.remove(s.id)
}
