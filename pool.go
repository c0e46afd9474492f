package cipherbench

import (
	"sync"
	"sync/atomic"
)

// Pool recycles encrypting handles through a sync.Pool. Unlike a Slot, a
// pooled handle has no fixed owner: it belongs to whoever took it until it
// is put back, and the runtime may drop idle handles at any GC.
//
// Pool is safe for concurrent use.
type Pool struct {
	keys *KeyHolder
	cfg  handleConfig
	pool sync.Pool

	constructions atomic.Int64
}

// NewPool creates a pool building handles from the key in keys.
// A nil keys uses the process key holder.
func NewPool(keys *KeyHolder, opts ...HandleOption) *Pool {
	if keys == nil {
		keys = processKeys
	}
	return &Pool{
		keys: keys,
		cfg:  newHandleConfig(opts),
	}
}

// Get returns an idle handle or builds a new one.
func (p *Pool) Get() (*Handle, error) {
	if h, ok := p.pool.Get().(*Handle); ok {
		return h, nil
	}
	key, err := p.keys.Key()
	if err != nil {
		return nil, err
	}
	h, err := newHandle(key, Encrypt, p.cfg)
	if err != nil {
		return nil, err
	}
	p.constructions.Add(1)
	return h, nil
}

// Put returns h to the pool. The caller must not use h afterwards.
func (p *Pool) Put(h *Handle) {
	if h != nil {
		p.pool.Put(h)
	}
}

// Constructions returns how many handles the pool has built.
func (p *Pool) Constructions() int64 {
	return p.constructions.Load()
}
