// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/samhaengsi/broker"
	"github.com/danielhkuo/samhaengsi/models"
)

// Memory keeps both collections in process memory.
type Memory struct {
	mu       sync.RWMutex
	topics   map[string]models.Topic
	poems    map[string]models.Poem
	notifier broker.Notifier
	clock    *clock
}

// NewMemory returns an empty store. A nil notifier gets a private Local one.
func NewMemory(n broker.Notifier) *Memory {
	if n == nil {
		n = broker.NewLocal()
	}
	return &Memory{
		topics:   make(map[string]models.Topic),
		poems:    make(map[string]models.Poem),
		notifier: n,
		clock:    newClock(time.Now),
	}
}

func (m *Memory) CreateTopic(ctx context.Context, t models.Topic) (models.Topic, error) {
	if err := ctx.Err(); err != nil {
		return models.Topic{}, err
	}
	if !validWord(t.Word) {
		return models.Topic{}, fmt.Errorf("%w: %q", ErrInvalidWord, t.Word)
	}
	t.ID = uuid.NewString()
	t.CreatedAt = m.clock.stamp()

	m.mu.Lock()
	m.topics[t.ID] = t
	m.mu.Unlock()

	t.Category = categoryOrDefault(t.Category)
	m.publish(ctx, models.CollectionTopics)
	return t, nil
}

func (m *Memory) ListTopics(ctx context.Context) ([]models.Topic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]models.Topic, 0, len(m.topics))
	for _, t := range m.topics {
		t.Category = categoryOrDefault(t.Category)
		out = append(out, t)
	}
	m.mu.RUnlock()

	sortTopics(out)
	return out, nil
}

func (m *Memory) DeleteTopic(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	_, ok := m.topics[id]
	delete(m.topics, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("topic %s: %w", id, ErrNotFound)
	}
	m.publish(ctx, models.CollectionTopics)
	return nil
}

func (m *Memory) CreatePoem(ctx context.Context, p models.Poem) (models.Poem, error) {
	if err := ctx.Err(); err != nil {
		return models.Poem{}, err
	}
	p.ID = uuid.NewString()
	p.CreatedAt = m.clock.stamp()
	p.Lines = append([]string(nil), p.Lines...)

	m.mu.Lock()
	m.poems[p.ID] = p
	m.mu.Unlock()

	m.publish(ctx, models.CollectionPoems)
	return p, nil
}

func (m *Memory) ListPoems(ctx context.Context) ([]models.Poem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]models.Poem, 0, len(m.poems))
	for _, p := range m.poems {
		p.Lines = append([]string(nil), p.Lines...)
		out = append(out, p)
	}
	m.mu.RUnlock()

	sortPoems(out)
	return out, nil
}

func (m *Memory) SubscribePoems(ctx context.Context, fn func([]models.Poem)) (func(), error) {
	return subscribe(ctx, m.notifier, models.CollectionPoems, m.ListPoems, fn)
}

func (m *Memory) publish(ctx context.Context, collection string) {
	notify(ctx, m.notifier, collection)
}
