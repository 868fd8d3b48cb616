// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/samhaengsi/cliparse"
	"github.com/danielhkuo/samhaengsi/feed"
	"github.com/danielhkuo/samhaengsi/metrics"
	"github.com/danielhkuo/samhaengsi/middleware"
	"github.com/danielhkuo/samhaengsi/models"
	"github.com/danielhkuo/samhaengsi/store"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
)

// Client actions on the live socket
const (
	ActionNext     = "next"
	ActionPrev     = "prev"
	ActionInteract = "interact"
)

type LiveHandler struct {
	poems    store.Poems
	interval time.Duration
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader
	now      func() time.Time
}

func NewLiveHandler(poems store.Poems, cfg cliparse.Config, m *metrics.Metrics) *LiveHandler {
	interval := cfg.AutoplayInterval
	if interval <= 0 {
		interval = feed.DefaultInterval
	}
	return &LiveHandler{
		poems:    poems,
		interval: interval,
		metrics:  m,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		now:      time.Now,
	}
}

// Stream handles GET /api/poems/live
//
// Each connection owns one carousel. Store snapshots, autoplay ticks and
// client actions all funnel into a single loop, so the carousel is only
// touched by one goroutine. Every change pushes a fresh feed.Frame.
func (h *LiveHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		slog.Warn("websocket upgrade failed", "remote", middleware.GetClientIP(r), "error", err)
		return
	}
	defer conn.Close()

	h.metrics.ViewerJoined()
	defer h.metrics.ViewerLeft()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Only the latest snapshot matters; an unread one is replaced.
	snapshots := make(chan []models.Poem, 1)
	unsubscribe, err := h.poems.SubscribePoems(ctx, func(poems []models.Poem) {
		select {
		case <-snapshots:
		default:
		}
		snapshots <- poems
	})
	if err != nil {
		slog.Error("failed to subscribe to poems", "error", err)
		closeWith(conn, websocket.CloseInternalServerErr, "subscription failed")
		return
	}
	defer unsubscribe()

	actions := make(chan string)
	readErr := make(chan error, 1)
	go readActions(ctx, conn, actions, readErr)

	carousel := feed.NewCarousel()
	autoplay := time.NewTicker(h.interval)
	defer autoplay.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	slog.Debug("live viewer connected", "remote", middleware.GetClientIP(r))

	for {
		select {
		case <-ctx.Done():
			closeWith(conn, websocket.CloseGoingAway, "server shutting down")
			return

		case err := <-readErr:
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("live viewer read failed", "error", err)
			}
			return

		case poems := <-snapshots:
			carousel.Replace(poems)

		case action := <-actions:
			if !apply(carousel, action) {
				continue
			}

		case <-autoplay.C:
			if !carousel.Tick() {
				continue
			}

		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(carousel.Frame(h.now())); err != nil {
			slog.Debug("live frame write failed", "error", err)
			return
		}
	}
}

// apply runs a client action and reports whether the frame changed. Any
// recognised action turns autoplay off for good.
func apply(c *feed.Carousel, action string) bool {
	switch action {
	case ActionNext:
		c.Interact()
		c.Next()
	case ActionPrev:
		c.Interact()
		c.Prev()
	case ActionInteract:
		c.Interact()
	default:
		return false
	}
	return true
}

func readActions(ctx context.Context, conn *websocket.Conn, actions chan<- string, readErr chan<- error) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg models.LiveAction
		if err := conn.ReadJSON(&msg); err != nil {
			readErr <- err
			return
		}
		select {
		case actions <- msg.Action:
		case <-ctx.Done():
			return
		}
	}
}

func closeWith(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
