// Package search defines the full-text index boundary consumed by the
// content layer, plus the bundled Redis-backed implementation. The core never
// requires an index: without one, searches degrade to empty results.
package search

import (
	"context"
	"strings"
	"unicode"

	"microlog/internal/models"
)

// Index is the search adapter consumed on post create/delete and by ranked
// lookups. Index returns an opaque reference to the indexed document, stored
// on the post as its search_ref.
type Index interface {
	Index(ctx context.Context, post *models.Post) (string, error)
	Remove(ctx context.Context, postID uint) error
	Search(ctx context.Context, query string, limit, offset int) (ids []uint, total int64, err error)
}

// NoopIndex is used when no index backend is configured. Index and Remove
// are no-ops and Search returns an empty result set; none of them ever error.
type NoopIndex struct{}

func (NoopIndex) Index(context.Context, *models.Post) (string, error) { return "", nil }

func (NoopIndex) Remove(context.Context, uint) error { return nil }

func (NoopIndex) Search(context.Context, string, int, int) ([]uint, int64, error) {
	return nil, 0, nil
}

// Tokenize splits text into lowercase alphanumeric terms.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}
