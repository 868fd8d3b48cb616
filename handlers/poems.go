// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/samhaengsi/metrics"
	"github.com/danielhkuo/samhaengsi/middleware"
	"github.com/danielhkuo/samhaengsi/models"
	"github.com/danielhkuo/samhaengsi/poem"
	"github.com/danielhkuo/samhaengsi/store"
)

type PoemHandler struct {
	poems   store.Poems
	metrics *metrics.Metrics
}

func NewPoemHandler(poems store.Poems, m *metrics.Metrics) *PoemHandler {
	return &PoemHandler{poems: poems, metrics: m}
}

// ValidatePoem handles POST /api/poems/validate
// It reports per-line errors as the visitor types; nothing is stored.
func (h *PoemHandler) ValidatePoem(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitPoemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	errs, reason := poem.Validate(req.Topic, req.Lines)
	if errs == nil {
		errs = []string{}
	}
	resp := models.ValidateResponse{Errors: errs, CanSubmit: reason == nil}
	if reason != nil {
		resp.Reason = reason.Error()
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// CreatePoem handles POST /api/poems
func (h *PoemHandler) CreatePoem(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitPoemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	draft := poem.DraftFrom(req.Topic, req.Lines)
	if err := draft.Check(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := draft.Submit(r.Context(), h.poems)
	if err != nil {
		slog.Error("failed to create poem", "topic", req.Topic, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "삼행시 등록 중 오류가 발생했습니다.")
		return
	}

	h.metrics.PoemCreated()
	slog.Info("poem created", "poem_id", created.ID, "topic", created.Topic)

	middleware.JSONResponse(w, http.StatusCreated, created)
}

// ListPoems handles GET /api/poems
func (h *PoemHandler) ListPoems(w http.ResponseWriter, r *http.Request) {
	poems, err := h.poems.ListPoems(r.Context())
	if err != nil {
		slog.Error("failed to list poems", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "삼행시를 불러오는 중 오류가 발생했습니다.")
		return
	}
	if poems == nil {
		poems = []models.Poem{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.PoemListResponse{Poems: poems})
}
