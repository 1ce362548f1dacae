package native

import (
	"errors"
	"runtime"
	"sync"
)

// ErrClosed is returned by operations on a handle that was already released.
var ErrClosed = errors.New("native: handle is closed")

// Lifetime owns one native handle.
//
// Close releases the handle at most once. Adopted children are closed before
// the handle is released and hooks run after it, in registration order.
// Hooks must not capture the object that owns the Lifetime, otherwise the
// finalizer can never run.
type Lifetime struct {
	mu       sync.Mutex
	kind     string
	handle   uintptr
	release  func(uintptr)
	children []*Lifetime
	hooks    []func()
	closed   bool
}

// NewLifetime tracks handle. release may be nil for handles that are owned
// elsewhere (views into a parent object).
func NewLifetime(kind string, handle uintptr, release func(uintptr)) *Lifetime {
	l := &Lifetime{kind: kind, handle: handle, release: release}
	runtime.SetFinalizer(l, func(l *Lifetime) {
		l.mu.Lock()
		leaked := !l.closed && l.handle != 0 && l.release != nil
		l.mu.Unlock()
		if leaked {
			Logger.Warn().Str("type", l.kind).Msg("native handle was not closed")
		}
		l.Close()
	})
	return l
}

// Handle returns the tracked handle, or 0 once closed.
func (l *Lifetime) Handle() uintptr {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0
	}
	return l.handle
}

// Closed reports whether Close or Detach has run. A lifetime tracking a
// zero handle is always closed.
func (l *Lifetime) Closed() bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed || l.handle == 0
}

// Owned reports whether l is open and releases its handle on Close. Views
// created with a nil release func are not owned.
func (l *Lifetime) Owned() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.closed && l.handle != 0 && l.release != nil
}

// Kind is the type label used in log messages.
func (l *Lifetime) Kind() string {
	return l.kind
}

// Adopt makes child close before l releases its own handle. Adopting into a
// closed lifetime closes the child immediately. Children that were already
// closed are dropped.
func (l *Lifetime) Adopt(child *Lifetime) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		child.Close()
		return
	}
	live := l.children[:0]
	for _, c := range l.children {
		if !c.Closed() {
			live = append(live, c)
		}
	}
	l.children = append(live, child)
	l.mu.Unlock()
}

// OnClose registers f to run after the handle is released. Registering on a
// closed lifetime runs f immediately.
func (l *Lifetime) OnClose(f func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		f()
		return
	}
	l.hooks = append(l.hooks, f)
	l.mu.Unlock()
}

// Close releases the handle. It is idempotent and always returns nil; the
// error result lets owners satisfy io.Closer directly.
func (l *Lifetime) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	handle, release := l.handle, l.release
	children, hooks := l.children, l.hooks
	l.handle, l.children, l.hooks = 0, nil, nil
	l.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Close()
	}
	if handle != 0 && release != nil {
		release(handle)
	}
	for _, f := range hooks {
		f()
	}
	runtime.SetFinalizer(l, nil)
	return nil
}

// Detach gives up ownership without releasing the handle, returning it.
// Hooks still run. Used when native code takes ownership, for example a
// colormap attached to a pix.
func (l *Lifetime) Detach() uintptr {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return 0
	}
	l.closed = true
	handle, hooks := l.handle, l.hooks
	l.handle, l.children, l.hooks = 0, nil, nil
	l.mu.Unlock()

	for _, f := range hooks {
		f()
	}
	runtime.SetFinalizer(l, nil)
	return handle
}
