// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package topic

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/samhaengsi/models"
)

var (
	ErrNoTopics         = errors.New("사용 가능한 주제어가 없습니다.")
	ErrNoEligibleTopics = errors.New("no topics in featured category")
	ErrEmptyWord        = errors.New("주제어를 입력해주세요.")
	ErrWordTooLong      = errors.New("주제어는 최대 6글자까지 입력 가능합니다.")
)

// Selection is a chosen topic word plus one empty answer slot per character.
type Selection struct {
	Word  string
	Lines []string
}

func newSelection(word string) Selection {
	return Selection{
		Word:  word,
		Lines: make([]string, utf8.RuneCountInString(word)),
	}
}

// Eligible returns the topics whose category equals category, in input order.
func Eligible(topics []models.Topic, category string) []models.Topic {
	var out []models.Topic
	for _, t := range topics {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// DailySeed concatenates the year, zero-based month and day of t as decimal
// digits: 2025-01-05 gives 202505.
func DailySeed(t time.Time) int64 {
	s := fmt.Sprintf("%d%d%d", t.Year(), int(t.Month())-1, t.Day())
	seed, _ := strconv.ParseInt(s, 10, 64)
	return seed
}

// SeedIndex maps a seed onto [0, n). Not uniform; stable per seed.
func SeedIndex(seed int64, n int) int {
	return int(seed % int64(n))
}

// PickDaily selects today's topic from the eligible pool. The same calendar
// date and pool always give the same word.
func PickDaily(topics []models.Topic, category string, now time.Time) (Selection, error) {
	eligible, err := eligibleOrErr(topics, category)
	if err != nil {
		return Selection{}, err
	}
	idx := SeedIndex(DailySeed(now), len(eligible))
	return newSelection(eligible[idx].Word), nil
}

func eligibleOrErr(topics []models.Topic, category string) ([]models.Topic, error) {
	if len(topics) == 0 {
		return nil, ErrNoTopics
	}
	eligible := Eligible(topics, category)
	if len(eligible) == 0 {
		return nil, &NoEligibleError{Category: category}
	}
	return eligible, nil
}

// NoEligibleError reports an empty featured category.
type NoEligibleError struct {
	Category string
}

func (e *NoEligibleError) Error() string {
	return e.Category + " 관련 주제어가 없습니다."
}

func (e *NoEligibleError) Unwrap() error {
	return ErrNoEligibleTopics
}

// Selector picks topics from the featured category.
type Selector struct {
	Category string
	Location *time.Location
	Now      func() time.Time

	mu  sync.Mutex
	rng *rand.Rand // nil uses the global source
}

func NewSelector(category string, loc *time.Location) *Selector {
	if loc == nil {
		loc = time.Local
	}
	return &Selector{
		Category: category,
		Location: loc,
		Now:      time.Now,
	}
}

// WithRand fixes the reroll source, for tests.
func (s *Selector) WithRand(r *rand.Rand) *Selector {
	s.mu.Lock()
	s.rng = r
	s.mu.Unlock()
	return s
}

func (s *Selector) intN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rng == nil {
		return rand.IntN(n)
	}
	return s.rng.IntN(n)
}

// Today picks the topic of the day in the selector's time zone.
func (s *Selector) Today(topics []models.Topic) (Selection, error) {
	return PickDaily(topics, s.Category, s.Now().In(s.Location))
}

// Reroll picks uniformly at random, ignoring the date.
func (s *Selector) Reroll(topics []models.Topic) (Selection, error) {
	eligible, err := eligibleOrErr(topics, s.Category)
	if err != nil {
		return Selection{}, err
	}
	return newSelection(eligible[s.intN(len(eligible))].Word), nil
}

// NormalizeWord checks an admin-entered word and returns it trimmed. The
// length limit applies to the raw input, as the admin form's maxlength does.
func NormalizeWord(word string) (string, error) {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return "", ErrEmptyWord
	}
	if utf8.RuneCountInString(word) > models.MaxTopicLength {
		return "", ErrWordTooLong
	}
	return trimmed, nil
}
