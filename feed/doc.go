// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package feed turns poem snapshots into the auto-advancing strip shown on the
main page.

Every snapshot replaces the previous one wholesale and is ordered newest
first. A Carousel loops in both directions, advances on Tick while autoplay
is on, and turns autoplay off for good on the first Interact.

	c := feed.NewCarousel()
	c.Replace(snapshot)
	frame := c.Frame(time.Now())

An empty carousel renders Placeholder instead of slides.
*/
package feed
