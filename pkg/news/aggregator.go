package news

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"
)

// DefaultItemLimit bounds how many items each source contributes per run.
const DefaultItemLimit = 5

// Titles at or below this rune count are treated as placeholders and dropped.
const minTitleLength = 10

// Aggregator fans out to every configured source concurrently, waits for all
// of them and returns the deduplicated union. Source order is fixed: results
// are concatenated in invocation order regardless of completion order, and on
// a title collision the earlier source wins.
type Aggregator struct {
	sources []NewsSource
	limit   int
}

func NewAggregator(sources []NewsSource, perSourceLimit int) *Aggregator {
	if perSourceLimit <= 0 {
		perSourceLimit = DefaultItemLimit
	}
	return &Aggregator{sources: sources, limit: perSourceLimit}
}

// FetchAll is total: a failed source contributes nothing, the batch always
// completes.
func (a *Aggregator) FetchAll(ctx context.Context) []Article {
	results := make([][]Article, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src NewsSource) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					slog.Error("news source panicked", "source", src.Name(), "panic", r)
				}
			}()

			articles, err := src.Fetch(ctx, a.limit)
			if err != nil {
				slog.Error("error fetching articles", "source", src.Name(), "error", err)
				return
			}
			results[i] = articles
		}(i, src)
	}
	wg.Wait()

	var combined []Article
	for _, r := range results {
		combined = append(combined, r...)
	}

	unique := Dedupe(combined)
	slog.Info("news fetch complete", "fetched", len(combined), "unique", len(unique))
	return unique
}

// Dedupe drops placeholder titles and keeps the first occurrence of each
// normalized title, preserving order. Idempotent.
func Dedupe(articles []Article) []Article {
	seen := make(map[string]bool, len(articles))
	unique := make([]Article, 0, len(articles))

	for _, a := range articles {
		if utf8.RuneCountInString(a.Title) <= minTitleLength {
			continue
		}
		key := NormalizeTitle(a.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, a)
	}

	return unique
}

// NormalizeTitle lowercases and strips everything that is not a Latin
// letter, a decimal digit or a CJK ideograph, so that punctuation and casing
// differences between sources collapse onto one dedup key.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z',
			r >= '0' && r <= '9',
			r >= 0x4e00 && r <= 0x9fa5:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DefaultSources is the fixed adapter list, in dedup priority order.
func DefaultSources() []NewsSource {
	return []NewsSource{
		NewSinaFinanceClient(),
		NewEastmoneyClient(),
		NewBarchartClient(),
		NewGoogleNewsClient(),
		NewSugarOnlineClient(),
		NewHexunClient(),
	}
}
