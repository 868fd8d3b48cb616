// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/danielhkuo/samhaengsi/cliparse"
	"github.com/danielhkuo/samhaengsi/metrics"
	"github.com/danielhkuo/samhaengsi/middleware"
	"github.com/danielhkuo/samhaengsi/models"
	"github.com/danielhkuo/samhaengsi/store"
	"github.com/danielhkuo/samhaengsi/topic"
)

type TopicHandler struct {
	topics   store.Topics
	cfg      cliparse.Config
	selector *topic.Selector
	metrics  *metrics.Metrics
}

func NewTopicHandler(topics store.Topics, cfg cliparse.Config, m *metrics.Metrics) *TopicHandler {
	return &TopicHandler{
		topics:   topics,
		cfg:      cfg,
		selector: topic.NewSelector(cfg.FeaturedCategory, cfg.Location()),
		metrics:  m,
	}
}

// GetToday handles GET /api/topics/today
func (h *TopicHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	h.serveSelection(w, r, h.selector.Today)
}

// Reroll handles POST /api/topics/reroll
func (h *TopicHandler) Reroll(w http.ResponseWriter, r *http.Request) {
	h.serveSelection(w, r, h.selector.Reroll)
}

func (h *TopicHandler) serveSelection(w http.ResponseWriter, r *http.Request, pick func([]models.Topic) (topic.Selection, error)) {
	all, err := h.topics.ListTopics(r.Context())
	if err != nil {
		slog.Error("failed to list topics", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "주제어를 불러오는 중 오류가 발생했습니다.")
		return
	}

	sel, err := pick(all)
	if err != nil {
		// Empty pool or empty featured category: no topic is selected
		slog.Info("no topic selected", "category", h.cfg.FeaturedCategory, "reason", err)
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TopicSelectionResponse{
		Topic: sel.Word,
		Lines: sel.Lines,
	})
}

// ListTopics handles GET /api/admin/topics
func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	all, err := h.topics.ListTopics(r.Context())
	if err != nil {
		slog.Error("failed to list topics", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "주제어를 불러오는 중 오류가 발생했습니다.")
		return
	}
	if all == nil {
		all = []models.Topic{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.TopicListResponse{Topics: all})
}

// CreateTopic handles POST /api/admin/topics
func (h *TopicHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTopicRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	word, err := topic.NormalizeWord(req.Word)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	category := req.Category
	if category == "" {
		category = h.cfg.FeaturedCategory
	}
	if !models.IsValidCategory(category) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "알 수 없는 분류입니다.")
		return
	}

	h.create(w, r, word, category)
}

// Suggestions handles GET /api/admin/suggestions
func (h *TopicHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.SuggestionsResponse{
		Category:    h.cfg.FeaturedCategory,
		Suggestions: h.cfg.Suggestions,
	})
}

// AddSuggestion handles POST /api/admin/suggestions/{word}
// The word goes into the featured category, like a one-click add form.
func (h *TopicHandler) AddSuggestion(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	if !slices.Contains(h.cfg.Suggestions, word) {
		middleware.ErrorResponse(w, http.StatusNotFound, "추천 주제어가 아닙니다.")
		return
	}
	normalized, err := topic.NormalizeWord(word)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	h.create(w, r, normalized, h.cfg.FeaturedCategory)
}

func (h *TopicHandler) create(w http.ResponseWriter, r *http.Request, word, category string) {
	created, err := h.topics.CreateTopic(r.Context(), models.Topic{Word: word, Category: category})
	if err != nil {
		slog.Error("failed to create topic", "word", word, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "주제어 추가 중 오류가 발생했습니다.")
		return
	}

	h.metrics.TopicCreated()
	slog.Info("topic created", "topic_id", created.ID, "word", created.Word, "category", created.Category)

	middleware.JSONResponse(w, http.StatusCreated, created)
}

// DeleteTopic handles DELETE /api/admin/topics/{id}
func (h *TopicHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "topic id is required")
		return
	}

	err := h.topics.DeleteTopic(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "주제어를 찾을 수 없습니다.")
		return
	}
	if err != nil {
		slog.Error("failed to delete topic", "topic_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "주제어 삭제 중 오류가 발생했습니다.")
		return
	}

	h.metrics.TopicDeleted()
	slog.Info("topic deleted", "topic_id", id)

	w.WriteHeader(http.StatusNoContent)
}
