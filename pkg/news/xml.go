package news

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Regex-based RSS handling. Upstream feeds are occasionally malformed enough
// to choke a strict XML parser, and a bad feed must cost us the feed, not the
// batch. Everything goes through ExtractTag/splitItems so a real parser could
// replace them without touching adapter code.

var (
	itemPattern    = regexp.MustCompile(`(?is)<item>(.*?)</item>`)
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
	spacePattern   = regexp.MustCompile(`\s+`)

	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// ExtractTag returns the inner text of the first <tag> element in xml,
// preferring CDATA-wrapped content over plain inline text. The opening tag
// may carry attributes. Returns "" when the tag is absent.
func ExtractTag(xml, tag string) string {
	t := regexp.QuoteMeta(tag)
	re := regexp.MustCompile(fmt.Sprintf(
		`(?is)<%s[^>]*><!\[CDATA\[(.*?)\]\]></%s>|<%s[^>]*>(.*?)</%s>`, t, t, t, t))

	m := re.FindStringSubmatch(xml)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[2])
}

// CleanHTML strips tags, decodes the common entities, collapses whitespace
// runs to a single space and trims.
func CleanHTML(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func splitItems(body string) []string {
	matches := itemPattern.FindAllStringSubmatch(body, -1)
	items := make([]string, 0, len(matches))
	for _, m := range matches {
		items = append(items, m[1])
	}
	return items
}

// fetchRSSItems downloads a feed and splits it into raw <item> fragments.
// Any failure is logged and yields nil; RSS adapters never fail a batch.
func fetchRSSItems(ctx context.Context, client *http.Client, feedURL string) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		slog.Error("error building RSS request", "url", feedURL, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		slog.Error("error fetching RSS feed", "url", feedURL, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("RSS fetch returned non-OK status", "url", feedURL, "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("error reading RSS body", "url", feedURL, "error", err)
		return nil
	}

	return splitItems(string(body))
}

// parsePubDate handles the date formats seen across RSS feeds, falling back
// to the fetch time so every article carries a usable timestamp.
func parsePubDate(s string) time.Time {
	formats := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC822Z,
		time.RFC822,
		time.RFC3339,
	}
	for _, layout := range formats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}
