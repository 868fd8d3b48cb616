// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poem

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/samhaengsi/models"
)

func TestLineError(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		i     int
		value string
		want  string
	}{
		{"empty line is not an error", "봄바람", 0, "", ""},
		{"match", "봄바람", 0, "봄이 온다", ""},
		{"match after leading space", "봄바람", 1, "  바람이 분다", ""},
		{"mismatch", "봄바람", 2, "x", "첫 글자는 '람'이어야 합니다"},
		{"whitespace only", "봄바람", 0, "   ", "첫 글자는 '봄'이어야 합니다"},
		{"index past topic", "새싹", 5, "아무말", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineError(tt.topic, tt.i, tt.value))
		})
	}
}

func TestLineError_EveryIndex(t *testing.T) {
	topic := "진달래꽃"
	for i, r := range []rune(topic) {
		assert.Empty(t, LineError(topic, i, string(r)+"는"))
		assert.NotEmpty(t, LineError(topic, i, "가"+string(r)))
	}
}

func TestValidate_SubmitGate(t *testing.T) {
	tests := []struct {
		name   string
		topic  string
		lines  []string
		reason error
	}{
		{"valid", "봄바람", []string{"봄이 온다", "바람이 분다", "람보르기니"}, nil},
		{"mismatch on last line", "봄바람", []string{"봄이 온다", "바람이 분다", "x"}, ErrLineMismatch},
		{"no topic", "", nil, ErrNoTopic},
		{"topic too long", "가나다라마바사", []string{"가", "나", "다", "라", "마", "바", "사"}, ErrTopicLength},
		{"too few lines", "봄바람", []string{"봄", "바"}, ErrLineCount},
		{"too many lines", "새싹", []string{"새", "싹", "끝"}, ErrLineCount},
		{"empty line", "새싹", []string{"새로운", ""}, ErrEmptyLine},
		{"blank line", "새싹", []string{"새로운", "   "}, ErrEmptyLine},
		{"six character topic", "가나다라마바", []string{"가", "나", "다", "라", "마", "바"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, reason := Validate(tt.topic, tt.lines)
			assert.Len(t, errs, len(tt.lines))
			if tt.reason == nil {
				assert.NoError(t, reason)
			} else {
				assert.ErrorIs(t, reason, tt.reason)
			}
		})
	}
}

func TestDraft_SetLine(t *testing.T) {
	d := NewDraft("봄바람")
	require.Len(t, d.Lines, 3)
	assert.False(t, d.CanSubmit())

	d.SetLine(0, "봄이 온다")
	d.SetLine(1, "바람이 분다")
	d.SetLine(2, "x")
	assert.Equal(t, "첫 글자는 '람'이어야 합니다", d.Errors[2])
	assert.ErrorIs(t, d.Check(), ErrLineMismatch)

	d.SetLine(2, "")
	assert.Empty(t, d.Errors[2], "clearing a line clears its error")
	assert.ErrorIs(t, d.Check(), ErrEmptyLine)

	d.SetLine(2, "람다 함수")
	assert.True(t, d.CanSubmit())

	// out of range is ignored
	d.SetLine(7, "무시")
	assert.Len(t, d.Lines, 3)
}

type fakeCreator struct {
	got models.Poem
	err error
}

func (f *fakeCreator) CreatePoem(_ context.Context, p models.Poem) (models.Poem, error) {
	if f.err != nil {
		return models.Poem{}, f.err
	}
	f.got = p
	p.ID = "poem-1"
	return p, nil
}

func TestDraft_SubmitKeepsLinesVerbatim(t *testing.T) {
	d := DraftFrom("새싹", []string{"  새봄이 오면 ", "싹이 튼다  "})
	c := &fakeCreator{}

	created, err := d.Submit(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "poem-1", created.ID)
	assert.Equal(t, []string{"  새봄이 오면 ", "싹이 튼다  "}, c.got.Lines)
	assert.Equal(t, "새싹", c.got.Topic)

	// reset after success
	assert.Empty(t, d.Topic)
	assert.Empty(t, d.Lines)
}

func TestDraft_SubmitBlocked(t *testing.T) {
	d := DraftFrom("봄바람", []string{"봄이 온다", "바람이 분다", "x"})
	c := &fakeCreator{}

	_, err := d.Submit(context.Background(), c)
	assert.ErrorIs(t, err, ErrLineMismatch)
	assert.Empty(t, c.got.Topic, "nothing written")
	assert.Equal(t, "봄바람", d.Topic)
}

func TestDraft_SubmitFailureKeepsDraft(t *testing.T) {
	d := DraftFrom("새싹", []string{"새", "싹"})
	boom := errors.New("store unavailable")

	_, err := d.Submit(context.Background(), &fakeCreator{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "새싹", d.Topic)
	assert.Equal(t, []string{"새", "싹"}, d.Lines)
}
