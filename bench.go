package cipherbench

import (
	"fmt"
	"slices"
)

// message is the plaintext every operation encrypts.
const message = "catch me if you can"

// Message returns a copy of the fixed plaintext.
func Message() []byte {
	return []byte(message)
}

// Operation names one way of obtaining a handle before encrypting.
type Operation string

const (
	// OpCached reuses the calling worker's slot handle.
	OpCached Operation = "cached"
	// OpFresh builds a new handle on every call.
	OpFresh Operation = "fresh"
	// OpPooled borrows a handle from a sync.Pool.
	OpPooled Operation = "pooled"
)

// Operations returns every operation in reporting order.
func Operations() []Operation {
	return []Operation{OpCached, OpFresh, OpPooled}
}

// ParseOperation validates s as an operation name.
func ParseOperation(s string) (Operation, error) {
	op := Operation(s)
	if !slices.Contains(Operations(), op) {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
	return op, nil
}

// Bench owns the key, the cache and the pool shared by the operations.
// It is safe for concurrent use; per-goroutine state lives in Workers.
type Bench struct {
	key     *Key
	cfg     handleConfig
	message []byte
	cache   *Cache
	pool    *Pool
}

// Option configures a Bench.
type Option func(*benchOptions)

type benchOptions struct {
	keys    *KeyHolder
	message []byte
	handle  []HandleOption
}

// WithKeyHolder sets the key holder. Defaults to the process key holder;
// a nil h keeps the default.
func WithKeyHolder(h *KeyHolder) Option {
	return func(o *benchOptions) {
		if h != nil {
			o.keys = h
		}
	}
}

// WithMessage replaces the fixed plaintext. The slice is copied.
func WithMessage(b []byte) Option {
	return func(o *benchOptions) {
		o.message = append([]byte(nil), b...)
	}
}

// WithHandleOptions applies opts to every handle the bench builds, whichever
// the operation.
func WithHandleOptions(opts ...HandleOption) Option {
	return func(o *benchOptions) {
		o.handle = append(o.handle, opts...)
	}
}

// NewBench resolves the key and checks the transformation once, so that a
// missing entropy source or unsupported transformation fails here rather than
// inside a timed loop.
func NewBench(opts ...Option) (*Bench, error) {
	o := benchOptions{
		keys:    processKeys,
		message: Message(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	key, err := o.keys.Key()
	if err != nil {
		return nil, fmt.Errorf("cipherbench: setup: %w", err)
	}
	cfg := newHandleConfig(o.handle)
	if _, err := newHandle(key, Encrypt, cfg); err != nil {
		return nil, fmt.Errorf("cipherbench: setup: %w", err)
	}

	return &Bench{
		key:     key,
		cfg:     cfg,
		message: o.message,
		cache:   NewCache(o.keys, o.handle...),
		pool:    NewPool(o.keys, o.handle...),
	}, nil
}

// Cache returns the bench's handle cache.
func (b *Bench) Cache() *Cache {
	return b.cache
}

// Pool returns the bench's handle pool.
func (b *Bench) Pool() *Pool {
	return b.pool
}

// Cached acquires s's handle and encrypts the message.
func (b *Bench) Cached(s *Slot) ([]byte, error) {
	h, err := s.Acquire()
	if err != nil {
		return nil, err
	}
	return h.Final(b.message)
}

// Fresh builds a new handle and encrypts the message.
func (b *Bench) Fresh() ([]byte, error) {
	h, err := newHandle(b.key, Encrypt, b.cfg)
	if err != nil {
		return nil, err
	}
	return h.Final(b.message)
}

// Pooled borrows a pooled handle, encrypts the message and returns the handle.
func (b *Bench) Pooled() ([]byte, error) {
	h, err := b.pool.Get()
	if err != nil {
		return nil, err
	}
	defer b.pool.Put(h)
	return h.Final(b.message)
}

// Worker runs operations on behalf of one goroutine. It owns a cache slot.
type Worker struct {
	bench *Bench
	slot  *Slot
}

// NewWorker returns a worker with its own cache slot. Close it when the
// goroutine is done.
func (b *Bench) NewWorker() *Worker {
	return &Worker{bench: b, slot: b.cache.Slot()}
}

// Do runs op once and returns the ciphertext.
func (w *Worker) Do(op Operation) ([]byte, error) {
	switch op {
	case OpCached:
		return w.bench.Cached(w.slot)
	case OpFresh:
		return w.bench.Fresh()
	case OpPooled:
		return w.bench.Pooled()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
}

// Slot returns the worker's cache slot.
func (w *Worker) Slot() *Slot {
	return w.slot
}

// Close releases the worker's slot.
func (w *Worker) Close() {
	w.slot.Release()
}
