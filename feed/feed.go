// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/samhaengsi/models"
)

// Placeholder is shown instead of an empty strip.
const Placeholder = "아직 등록된 삼행시가 없어요. 첫 주자가 되어보세요!"

// DefaultInterval is the autoplay delay between slides.
const DefaultInterval = 4 * time.Second

// Order returns poems newest first. Equal timestamps fall back to id so the
// order is stable across snapshots. The input is not modified.
func Order(poems []models.Poem) []models.Poem {
	out := slices.Clone(poems)
	slices.SortStableFunc(out, func(a, b models.Poem) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Carousel is one viewer's position in the poem strip. It is not safe for
// concurrent use; each viewer owns its own.
type Carousel struct {
	poems    []models.Poem
	index    int
	autoplay bool
}

func NewCarousel() *Carousel {
	return &Carousel{autoplay: true}
}

// Replace swaps in a full snapshot. There is no merge with the previous one.
func (c *Carousel) Replace(snapshot []models.Poem) {
	c.poems = Order(snapshot)
	if c.index >= len(c.poems) {
		c.index = 0
	}
}

func (c *Carousel) Len() int { return len(c.poems) }

func (c *Carousel) Empty() bool { return len(c.poems) == 0 }

func (c *Carousel) Index() int { return c.index }

func (c *Carousel) Autoplay() bool { return c.autoplay }

func (c *Carousel) Poems() []models.Poem { return c.poems }

// Current returns the poem under the cursor.
func (c *Carousel) Current() (models.Poem, bool) {
	if c.Empty() {
		return models.Poem{}, false
	}
	return c.poems[c.index], true
}

// Next moves forward, wrapping from the last slide to the first.
func (c *Carousel) Next() {
	if c.Empty() {
		return
	}
	c.index = (c.index + 1) % len(c.poems)
}

// Prev moves backward, wrapping from the first slide to the last.
func (c *Carousel) Prev() {
	if c.Empty() {
		return
	}
	c.index = (c.index - 1 + len(c.poems)) % len(c.poems)
}

// Tick is the autoplay step. It reports whether the cursor moved.
func (c *Carousel) Tick() bool {
	if !c.autoplay || c.Len() < 2 {
		return false
	}
	c.Next()
	return true
}

// Interact records direct viewer input. Autoplay stays off afterwards.
func (c *Carousel) Interact() {
	c.autoplay = false
}

// Slide is one rendered poem card.
type Slide struct {
	ID    string   `json:"id"`
	Topic string   `json:"topic"`
	Lines []string `json:"lines"`
	Age   string   `json:"age"`
}

// Frame is the render state pushed to a viewer.
type Frame struct {
	Slides      []Slide `json:"slides"`
	Index       int     `json:"index"`
	Autoplay    bool    `json:"autoplay"`
	Total       string  `json:"total"`
	Placeholder string  `json:"placeholder,omitempty"`
}

// Frame renders the carousel as of now.
func (c *Carousel) Frame(now time.Time) Frame {
	f := Frame{
		Slides:   make([]Slide, len(c.poems)),
		Index:    c.index,
		Autoplay: c.autoplay,
		Total:    humanize.Comma(int64(len(c.poems))),
	}
	if c.Empty() {
		f.Placeholder = Placeholder
	}
	for i, p := range c.poems {
		f.Slides[i] = Slide{
			ID:    p.ID,
			Topic: p.Topic,
			Lines: p.Lines,
			Age:   humanize.RelTime(p.CreatedAt, now, "ago", "from now"),
		}
	}
	return f
}
