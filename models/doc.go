// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Topic: a word (1-6 characters) in one category, curated by the admin
  - Poem: a submitted samhaengsi; holds a copy of the topic word and one
    line per character

Poems never reference a Topic record, so deleting a topic leaves every
poem written for it untouched.

# Request Types

  - CreateTopicRequest: word, category
  - SubmitPoemRequest: topic, lines
  - LoginRequest: password
  - LiveAction: action sent by a viewer on the live feed socket

# Response Types

  - TopicSelectionResponse: topic, lines (one empty slot per character)
  - ValidateResponse: errors, can_submit, reason
  - TopicListResponse, PoemListResponse, SuggestionsResponse
  - ErrorResponse: error, message

# Constants

Categories:

	CategorySpring = "봄"
	CategorySummer = "여름"
	CategoryFall   = "가을"
	CategoryWinter = "겨울"
	CategoryOther  = "기타"

Topics stored without a category read back as CategoryDefault ("기본").
*/
package models
