// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/samhaengsi/models"
)

var base = time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)

func poemAt(id string, offset time.Duration) models.Poem {
	return models.Poem{ID: id, Topic: "새싹", Lines: []string{"새", "싹"}, CreatedAt: base.Add(offset)}
}

func ids(poems []models.Poem) []string {
	out := make([]string, len(poems))
	for i, p := range poems {
		out[i] = p.ID
	}
	return out
}

func TestOrder_NewestFirst(t *testing.T) {
	in := []models.Poem{
		poemAt("a", 0),
		poemAt("c", 2*time.Minute),
		poemAt("b", time.Minute),
	}
	got := Order(in)
	assert.Equal(t, []string{"c", "b", "a"}, ids(got))
	assert.Equal(t, []string{"a", "c", "b"}, ids(in), "input untouched")
}

func TestOrder_TiesById(t *testing.T) {
	got := Order([]models.Poem{poemAt("y", 0), poemAt("x", 0)})
	assert.Equal(t, []string{"x", "y"}, ids(got))
}

func TestCarousel_EmptyShowsPlaceholder(t *testing.T) {
	c := NewCarousel()
	assert.True(t, c.Empty())

	f := c.Frame(base)
	assert.Equal(t, Placeholder, f.Placeholder)
	assert.Empty(t, f.Slides)
	assert.Equal(t, "0", f.Total)

	_, ok := c.Current()
	assert.False(t, ok)
	c.Next()
	c.Prev()
	assert.False(t, c.Tick())
}

func TestCarousel_NewestIsFirstSlide(t *testing.T) {
	c := NewCarousel()
	c.Replace([]models.Poem{poemAt("old", 0), poemAt("new", time.Hour)})

	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "new", cur.ID)

	f := c.Frame(base.Add(2 * time.Hour))
	assert.Empty(t, f.Placeholder)
	require.Len(t, f.Slides, 2)
	assert.Equal(t, "new", f.Slides[0].ID)
	assert.Equal(t, "1 hour ago", f.Slides[0].Age)
	assert.Equal(t, "2 hours ago", f.Slides[1].Age)
}

func TestCarousel_Loops(t *testing.T) {
	c := NewCarousel()
	c.Replace([]models.Poem{poemAt("a", 0), poemAt("b", time.Second), poemAt("c", 2*time.Second)})

	var seen []string
	for i := 0; i < 4; i++ {
		cur, _ := c.Current()
		seen = append(seen, cur.ID)
		c.Next()
	}
	assert.Equal(t, []string{"c", "b", "a", "c"}, seen)

	c.Prev()
	c.Prev()
	cur, _ := c.Current()
	assert.Equal(t, "a", cur.ID, "prev wraps from first to last")
}

func TestCarousel_InteractionStopsAutoplayForGood(t *testing.T) {
	c := NewCarousel()
	c.Replace([]models.Poem{poemAt("a", 0), poemAt("b", time.Second)})

	assert.True(t, c.Autoplay())
	assert.True(t, c.Tick())
	assert.Equal(t, 1, c.Index())

	c.Interact()
	assert.False(t, c.Autoplay())
	for i := 0; i < 5; i++ {
		assert.False(t, c.Tick())
	}
	assert.Equal(t, 1, c.Index())

	// new snapshots do not bring autoplay back
	c.Replace([]models.Poem{poemAt("a", 0), poemAt("b", time.Second), poemAt("c", 2*time.Second)})
	assert.False(t, c.Tick())
	assert.False(t, c.Frame(base).Autoplay)
}

func TestCarousel_ReplaceIsWholesale(t *testing.T) {
	c := NewCarousel()
	c.Replace([]models.Poem{poemAt("a", 0), poemAt("b", time.Second), poemAt("c", 2*time.Second)})
	c.Next()
	c.Next()

	c.Replace([]models.Poem{poemAt("z", time.Hour)})
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 0, c.Index(), "index clamped into the new snapshot")
	assert.Equal(t, []string{"z"}, ids(c.Poems()))
}

func TestFrame_TotalUsesThousandsSeparator(t *testing.T) {
	poems := make([]models.Poem, 1200)
	for i := range poems {
		poems[i] = poemAt(fmt.Sprintf("p%04d", i), time.Duration(i)*time.Second)
	}
	c := NewCarousel()
	c.Replace(poems)
	assert.Equal(t, "1,200", c.Frame(base).Total)
}
