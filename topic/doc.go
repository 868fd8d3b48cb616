// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package topic picks the word a visitor writes a samhaengsi for.

# Topic of the Day

Only topics in the featured category are eligible. The daily pick builds a
seed by concatenating year, zero-based month and day of month:

	2025-01-05  →  "2025" + "0" + "5"  →  202505
	index = 202505 % len(eligible)

The same date and pool always select the same word. The mapping is not
uniform and is not meant to be.

# Reroll

	sel, err := selector.Reroll(topics)

picks uniformly at random, independent of the date.

Both return a Selection with one empty line slot per character of the word.
An empty pool yields ErrNoTopics and an empty featured category yields a
*NoEligibleError (matching ErrNoEligibleTopics); callers show the message
and leave no topic selected.
*/
package topic
