// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package broker

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLocal_PublishReachesListeners(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	var poems, topics atomic.Int32
	cancelPoems, err := l.Listen(ctx, "poems", func() { poems.Add(1) })
	require.NoError(t, err)
	defer cancelPoems()
	cancelTopics, err := l.Listen(ctx, "topics", func() { topics.Add(1) })
	require.NoError(t, err)
	defer cancelTopics()

	require.NoError(t, l.Publish(ctx, "poems"))
	require.NoError(t, l.Publish(ctx, "poems"))

	assert.Equal(t, int32(2), poems.Load())
	assert.Equal(t, int32(0), topics.Load(), "signals stay on their collection")
}

func TestLocal_CancelStopsDelivery(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	var calls atomic.Int32
	cancel, err := l.Listen(ctx, "poems", func() { calls.Add(1) })
	require.NoError(t, err)
	assert.Equal(t, 1, l.Listeners("poems"))

	cancel()
	cancel() // idempotent
	assert.Equal(t, 0, l.Listeners("poems"))

	require.NoError(t, l.Publish(ctx, "poems"))
	assert.Equal(t, int32(0), calls.Load())
}

func TestLocal_ContextEndRemovesListener(t *testing.T) {
	l := NewLocal()
	ctx, cancel := context.WithCancel(context.Background())

	_, err := l.Listen(ctx, "poems", func() {})
	require.NoError(t, err)
	cancel()

	assert.Eventually(t, func() bool { return l.Listeners("poems") == 0 }, time.Second, 5*time.Millisecond)
}

func TestLocal_CancelledContext(t *testing.T) {
	l := NewLocal()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Listen(ctx, "poems", func() {})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, l.Publish(ctx, "poems"), context.Canceled)
}

func TestNATS_RoundTrip(t *testing.T) {
	url := os.Getenv("TEST_NATS_URL")
	if url == "" {
		t.Skip("TEST_NATS_URL not set")
	}
	n, err := NewNATS(url)
	require.NoError(t, err)
	defer n.Close()

	got := make(chan struct{}, 1)
	ctx := context.Background()
	cancel, err := n.Listen(ctx, "poems", func() {
		select {
		case got <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, n.nc.Flush())
	require.NoError(t, n.Publish(ctx, "poems"))

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("no signal received over NATS")
	}
}

func TestPostgres_RoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	p, err := NewPostgres(ctx, url)
	require.NoError(t, err)
	defer p.Close()

	got := make(chan struct{}, 1)
	cancel, err := p.Listen(ctx, "poems", func() {
		select {
		case got <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, p.Publish(ctx, "poems"))

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("no notification received")
	}
}
