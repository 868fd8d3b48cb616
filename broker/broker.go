// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package broker

import (
	"context"
	"sync"
)

// Notifier carries "collection changed" signals. Signals have no payload;
// listeners re-read the collection to get a full snapshot.
type Notifier interface {
	Publish(ctx context.Context, collection string) error
	// Listen calls fn after every Publish for collection until the returned
	// cancel func is called or ctx ends. fn must not block.
	Listen(ctx context.Context, collection string, fn func()) (cancel func(), err error)
	Close() error
}

// Local fans signals out within one process.
type Local struct {
	mu        sync.RWMutex
	next      int
	listeners map[string]map[int]func()
}

func NewLocal() *Local {
	return &Local{listeners: make(map[string]map[int]func())}
}

func (l *Local) Publish(ctx context.Context, collection string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.RLock()
	fns := make([]func(), 0, len(l.listeners[collection]))
	for _, fn := range l.listeners[collection] {
		fns = append(fns, fn)
	}
	l.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
	return nil
}

func (l *Local) Listen(ctx context.Context, collection string, fn func()) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	id := l.next
	l.next++
	if l.listeners[collection] == nil {
		l.listeners[collection] = make(map[int]func())
	}
	l.listeners[collection][id] = fn
	l.mu.Unlock()

	var once sync.Once
	remove := func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.listeners[collection], id)
			l.mu.Unlock()
		})
	}
	stop := context.AfterFunc(ctx, remove)
	return func() {
		stop()
		remove()
	}, nil
}

// Listeners returns the number of active listeners on collection.
func (l *Local) Listeners(collection string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.listeners[collection])
}

func (l *Local) Close() error {
	l.mu.Lock()
	l.listeners = make(map[string]map[int]func())
	l.mu.Unlock()
	return nil
}
