// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/samhaengsi/models"
	"github.com/danielhkuo/samhaengsi/topic"
)

// Seed fills an empty topic pool with words in category. It does nothing
// when any topic exists and reports how many it added. Every word is
// checked before the first write, so a bad word leaves the pool empty.
func Seed(ctx context.Context, t Topics, category string, words []string) (int, error) {
	normalized := make([]string, len(words))
	for i, w := range words {
		word, err := topic.NormalizeWord(w)
		if err != nil {
			return 0, fmt.Errorf("seed %q: %w", w, err)
		}
		normalized[i] = word
	}

	existing, err := t.ListTopics(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, w := range normalized {
		if _, err := t.CreateTopic(ctx, models.Topic{Word: w, Category: category}); err != nil {
			return i, fmt.Errorf("seed %q: %w", w, err)
		}
	}
	return len(words), nil
}
