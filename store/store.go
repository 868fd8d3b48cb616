// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/samhaengsi/broker"
	"github.com/danielhkuo/samhaengsi/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrInvalidWord mirrors the schema CHECK on topics.word.
	ErrInvalidWord = errors.New("topic word must be 1 to 6 characters")
)

// Topics is the admin-curated word pool.
type Topics interface {
	CreateTopic(ctx context.Context, t models.Topic) (models.Topic, error)
	// ListTopics returns every topic, oldest first.
	ListTopics(ctx context.Context) ([]models.Topic, error)
	DeleteTopic(ctx context.Context, id string) error
}

// Poems is append-only: there is no update or delete.
type Poems interface {
	CreatePoem(ctx context.Context, p models.Poem) (models.Poem, error)
	// ListPoems returns every poem, newest first.
	ListPoems(ctx context.Context) ([]models.Poem, error)
	// SubscribePoems calls fn with the full ordered snapshot right away and
	// again after every change, until the returned func is called or ctx
	// ends. fn runs on one goroutine per subscription and must not call the
	// returned func itself.
	SubscribePoems(ctx context.Context, fn func([]models.Poem)) (unsubscribe func(), err error)
}

type Store interface {
	Topics
	Poems
}

// clock hands out strictly increasing microsecond timestamps so creation
// order survives the round trip through the database.
type clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func newClock(now func() time.Time) *clock {
	if now == nil {
		now = time.Now
	}
	return &clock{now: now}
}

func (c *clock) stamp() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now().UTC().Truncate(time.Microsecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}

func sortPoems(poems []models.Poem) {
	slices.SortStableFunc(poems, func(a, b models.Poem) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func sortTopics(topics []models.Topic) {
	slices.SortStableFunc(topics, func(a, b models.Topic) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func validWord(word string) bool {
	n := utf8.RuneCountInString(word)
	return n >= 1 && n <= models.MaxTopicLength
}

func categoryOrDefault(c string) string {
	if c == "" {
		return models.CategoryDefault
	}
	return c
}

// notify is best effort: the write it follows has already happened.
func notify(ctx context.Context, n broker.Notifier, collection string) {
	if err := n.Publish(context.WithoutCancel(ctx), collection); err != nil {
		slog.Warn("change notification failed", "collection", collection, "error", err)
	}
}

// subscribe re-reads the collection with list after every signal and hands
// the snapshot to fn. Signals that arrive while a read is in flight collapse
// into one follow-up read.
func subscribe[T any](ctx context.Context, n broker.Notifier, collection string,
	list func(context.Context) ([]T, error), fn func([]T)) (func(), error) {

	sctx, cancel := context.WithCancel(ctx)
	kick := make(chan struct{}, 1)
	kick <- struct{}{}

	stopListen, err := n.Listen(sctx, collection, func() {
		select {
		case kick <- struct{}{}:
		default:
		}
	})
	if err != nil {
		cancel()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-sctx.Done():
				return
			case <-kick:
			}
			snapshot, err := list(sctx)
			if err != nil {
				if sctx.Err() != nil {
					return
				}
				slog.Error("snapshot read failed", "collection", collection, "error", err)
				continue
			}
			fn(snapshot)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			stopListen()
			cancel()
			<-done
		})
	}, nil
}
