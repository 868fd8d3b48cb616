// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/samhaengsi/cliparse"
	"github.com/danielhkuo/samhaengsi/models"
	"github.com/danielhkuo/samhaengsi/web"
)

type PageHandler struct {
	pages *web.Pages
	cfg   cliparse.Config
	loc   *time.Location
	now   func() time.Time
}

func NewPageHandler(pages *web.Pages, cfg cliparse.Config) *PageHandler {
	return &PageHandler{pages: pages, cfg: cfg, loc: cfg.Location(), now: time.Now}
}

// Index handles GET /{$}
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := h.pages.Index(&buf, web.IndexData{
		Date:     web.DateLabel(h.now().In(h.loc)),
		Category: h.cfg.FeaturedCategory,
	})
	h.write(w, &buf, err)
}

// Admin handles GET /admin
func (h *PageHandler) Admin(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := h.pages.Admin(&buf, web.AdminData{
		Categories:  models.Categories,
		Featured:    h.cfg.FeaturedCategory,
		Suggestions: h.cfg.Suggestions,
	})
	h.write(w, &buf, err)
}

// write sends the page only once it rendered completely.
func (h *PageHandler) write(w http.ResponseWriter, buf *bytes.Buffer, err error) {
	if err != nil {
		slog.Error("failed to render page", "error", err)
		http.Error(w, "페이지를 표시할 수 없습니다.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("page write failed", "error", err)
	}
}
