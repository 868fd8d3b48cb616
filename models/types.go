// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Collection names
const (
	CollectionTopics = "topics"
	CollectionPoems  = "poems"
)

// Topic category labels
const (
	CategorySpring  = "봄"
	CategorySummer  = "여름"
	CategoryFall    = "가을"
	CategoryWinter  = "겨울"
	CategoryOther   = "기타"
	CategoryDefault = "기본" // read-back label for topics stored without a category
)

// Categories is the closed label set accepted by the admin form.
var Categories = []string{
	CategorySpring,
	CategorySummer,
	CategoryFall,
	CategoryWinter,
	CategoryOther,
}

// IsValidCategory reports whether c is one of Categories.
func IsValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// MaxTopicLength is the longest topic word, counted in characters.
const MaxTopicLength = 6

// Domain types

type Topic struct {
	ID        string    `json:"id"`
	Word      string    `json:"word"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Poem copies the topic word at submission time; it does not reference a Topic.
type Poem struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Lines     []string  `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
}

// Request types

type CreateTopicRequest struct {
	Word     string `json:"word"`
	Category string `json:"category"`
}

type SubmitPoemRequest struct {
	Topic string   `json:"topic"`
	Lines []string `json:"lines"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

// Client -> server message on the live feed socket
type LiveAction struct {
	Action string `json:"action"` // "next", "prev", "interact"
}

// Response types

type TopicSelectionResponse struct {
	Topic string   `json:"topic"`
	Lines []string `json:"lines"`
}

type ValidateResponse struct {
	Errors    []string `json:"errors"`
	CanSubmit bool     `json:"can_submit"`
	Reason    string   `json:"reason,omitempty"`
}

type TopicListResponse struct {
	Topics []Topic `json:"topics"`
}

type PoemListResponse struct {
	Poems []Poem `json:"poems"`
}

type SuggestionsResponse struct {
	Category    string   `json:"category"`
	Suggestions []string `json:"suggestions"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
