package ocr

import (
	"context"
	"errors"
	"io"
	"sync"
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("ocr: engine pool is closed")

// pool hands out at most size values created on demand by newItem. Values
// are reused LIFO; a value is never shared between two holders.
type pool[T io.Closer] struct {
	newItem func() (T, error)
	slots   chan struct{}

	mu     sync.Mutex
	idle   []T
	closed bool
}

func newPool[T io.Closer](size int, newItem func() (T, error)) *pool[T] {
	if size < 1 {
		size = 1
	}
	return &pool[T]{
		newItem: newItem,
		slots:   make(chan struct{}, size),
	}
}

// acquire blocks until a value is free or ctx is done.
func (p *pool[T]) acquire(ctx context.Context) (T, error) {
	var zero T
	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.slots
		return zero, ErrPoolClosed
	}
	if n := len(p.idle); n > 0 {
		item := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return item, nil
	}
	p.mu.Unlock()

	item, err := p.newItem()
	if err != nil {
		<-p.slots
		return zero, err
	}
	return item, nil
}

// release returns item to the pool. Pass discard for values that are no
// longer usable; they are closed instead of reused.
func (p *pool[T]) release(item T, discard bool) {
	p.mu.Lock()
	if p.closed || discard {
		p.mu.Unlock()
		item.Close()
	} else {
		p.idle = append(p.idle, item)
		p.mu.Unlock()
	}
	<-p.slots
}

// with runs fn with a pooled value.
func (p *pool[T]) with(ctx context.Context, fn func(T) error) error {
	item, err := p.acquire(ctx)
	if err != nil {
		return err
	}
	discard := true
	defer func() { p.release(item, discard) }()
	err = fn(item)
	discard = false
	return err
}

// idleCount reports how many values are waiting for reuse.
func (p *pool[T]) idleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// close closes idle values. Values still held are closed on release.
func (p *pool[T]) close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	idle := p.idle
	p.idle = nil
	p.mu.Unlock()

	var errs []error
	for _, item := range idle {
		errs = append(errs, item.Close())
	}
	return errors.Join(errs...)
}
