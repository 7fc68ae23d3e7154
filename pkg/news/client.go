package news

import (
	"context"
	"strings"
	"time"
)

// Article is the canonical shape every source adapter maps into, before
// persistence. Category and Language use the constants from internal/model.
type Article struct {
	Title       string
	Content     string
	Source      string
	SourceURL   string
	Category    string
	PublishedAt time.Time
	Language    string
}

// NewsSource is one upstream feed. Fetch returns at most limit articles; a
// failed source reports an error and the aggregator treats it as an empty
// contribution, so one bad upstream never aborts a batch.
type NewsSource interface {
	Fetch(ctx context.Context, limit int) ([]Article, error)
	Name() string
}

const userAgent = "Mozilla/5.0 (compatible; SugarTrackBot/1.0)"

const fetchTimeout = 15 * time.Second

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
