// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poem

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/samhaengsi/models"
)

var (
	ErrNoTopic      = errors.New("주제어가 선택되지 않았습니다.")
	ErrTopicLength  = errors.New("주제어는 1~6글자여야 합니다.")
	ErrLineCount    = errors.New("줄 수가 주제어 글자 수와 다릅니다.")
	ErrEmptyLine    = errors.New("모든 줄을 입력해주세요.")
	ErrLineMismatch = errors.New("각 줄의 첫 글자가 주제어의 해당 글자와 일치해야 합니다.")
)

// LineError returns the validation message for line i of topic, or "" when
// the line is empty or starts with the right character. Leading whitespace is
// ignored for the comparison.
func LineError(topic string, i int, value string) string {
	if value == "" {
		return ""
	}
	want, ok := runeAt(topic, i)
	if !ok {
		return ""
	}
	got, _ := utf8.DecodeRuneInString(strings.TrimSpace(value))
	if got != want {
		return fmt.Sprintf("첫 글자는 '%c'이어야 합니다", want)
	}
	return ""
}

func runeAt(s string, i int) (rune, bool) {
	if i < 0 {
		return 0, false
	}
	for _, r := range s {
		if i == 0 {
			return r, true
		}
		i--
	}
	return 0, false
}

// Validate computes the per-line errors for a full set of lines and whether
// the set may be submitted. reason is the first failed precondition.
func Validate(topic string, lines []string) (errs []string, reason error) {
	errs = make([]string, len(lines))
	for i, l := range lines {
		errs[i] = LineError(topic, i, l)
	}
	return errs, check(topic, lines, errs)
}

func check(topic string, lines, errs []string) error {
	n := utf8.RuneCountInString(topic)
	switch {
	case topic == "":
		return ErrNoTopic
	case n < 1 || n > models.MaxTopicLength:
		return ErrTopicLength
	case len(lines) != n:
		return ErrLineCount
	}
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			return ErrEmptyLine
		}
	}
	for _, e := range errs {
		if e != "" {
			return ErrLineMismatch
		}
	}
	return nil
}

// Creator persists a finished poem.
type Creator interface {
	CreatePoem(ctx context.Context, p models.Poem) (models.Poem, error)
}

// Draft is the poem a visitor is composing.
type Draft struct {
	Topic  string
	Lines  []string
	Errors []string
}

// NewDraft starts a draft with one empty line per character of topic.
func NewDraft(topic string) *Draft {
	n := utf8.RuneCountInString(topic)
	return &Draft{
		Topic:  topic,
		Lines:  make([]string, n),
		Errors: make([]string, n),
	}
}

// DraftFrom rebuilds a draft from submitted lines, recomputing every error.
func DraftFrom(topic string, lines []string) *Draft {
	d := &Draft{Topic: topic, Lines: append([]string(nil), lines...)}
	d.Errors, _ = Validate(topic, d.Lines)
	return d
}

// SetLine stores value at index i and refreshes that line's error.
func (d *Draft) SetLine(i int, value string) {
	if i < 0 || i >= len(d.Lines) {
		return
	}
	d.Lines[i] = value
	d.Errors[i] = LineError(d.Topic, i, value)
}

// Check returns the first unmet submission precondition, or nil.
func (d *Draft) Check() error {
	return check(d.Topic, d.Lines, d.Errors)
}

func (d *Draft) CanSubmit() bool {
	return d.Check() == nil
}

// Poem builds the record to store. Lines are copied verbatim, untrimmed.
func (d *Draft) Poem() models.Poem {
	return models.Poem{
		Topic: d.Topic,
		Lines: append([]string(nil), d.Lines...),
	}
}

// Reset clears topic and lines.
func (d *Draft) Reset() {
	d.Topic = ""
	d.Lines = nil
	d.Errors = nil
}

// Submit writes the draft through c. On success the draft is reset; on any
// failure it is left as it was so the visitor can retry.
func (d *Draft) Submit(ctx context.Context, c Creator) (models.Poem, error) {
	if err := d.Check(); err != nil {
		return models.Poem{}, err
	}
	created, err := c.CreatePoem(ctx, d.Poem())
	if err != nil {
		return models.Poem{}, fmt.Errorf("create poem: %w", err)
	}
	d.Reset()
	return created, nil
}
