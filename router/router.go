// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/samhaengsi/auth"
	"github.com/danielhkuo/samhaengsi/cliparse"
	"github.com/danielhkuo/samhaengsi/handlers"
	"github.com/danielhkuo/samhaengsi/metrics"
	"github.com/danielhkuo/samhaengsi/middleware"
	"github.com/danielhkuo/samhaengsi/store"
	"github.com/danielhkuo/samhaengsi/web"
)

func NewRouter(st store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()
	m := metrics.New()
	gate := auth.NewPasswordGate(cfg.AdminPassword)

	// Initialize handlers
	topicHandler := handlers.NewTopicHandler(st, cfg, m)
	poemHandler := handlers.NewPoemHandler(st, m)
	liveHandler := handlers.NewLiveHandler(st, cfg, m)
	adminHandler := handlers.NewAdminHandler(gate)
	pageHandler := handlers.NewPageHandler(web.MustLoad(), cfg)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, m.Instrument(pattern, middleware.WithLogging(h)))
	}
	admin := func(pattern string, h http.HandlerFunc) {
		handle(pattern, middleware.RequireAdmin(gate, h))
	}

	// Health check and metrics
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", m.Handler())

	// Pages
	handle("GET /{$}", pageHandler.Index)
	handle("GET /admin", pageHandler.Admin)

	// Topic of the day (public)
	handle("GET /api/topics/today", topicHandler.GetToday)
	handle("POST /api/topics/reroll", topicHandler.Reroll)

	// Poems (public)
	handle("POST /api/poems/validate", poemHandler.ValidatePoem)
	handle("POST /api/poems", poemHandler.CreatePoem)
	handle("GET /api/poems", poemHandler.ListPoems)
	handle("GET /api/poems/live", liveHandler.Stream)

	// Admin operations
	handle("POST /api/admin/login", adminHandler.Login)
	admin("GET /api/admin/topics", topicHandler.ListTopics)
	admin("POST /api/admin/topics", topicHandler.CreateTopic)
	admin("DELETE /api/admin/topics/{id}", topicHandler.DeleteTopic)
	admin("GET /api/admin/suggestions", topicHandler.Suggestions)
	admin("POST /api/admin/suggestions/{word}", topicHandler.AddSuggestion)

	return mux
}
