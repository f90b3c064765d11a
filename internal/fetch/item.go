package fetch

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// SourceType identifies which kind of upstream an item came from.
type SourceType string

const (
	SourceRSS     SourceType = "rss"
	SourceRelease SourceType = "release"
	SourceHN      SourceType = "hn"
)

// Highlights are changelog lines pulled out of release notes.
type Highlights struct {
	Breaking []string
	Security []string
	Features []string
	Fixes    []string
}

// Empty reports whether no highlight bucket has entries.
func (h Highlights) Empty() bool {
	return len(h.Breaking) == 0 && len(h.Security) == 0 &&
		len(h.Features) == 0 && len(h.Fixes) == 0
}

// Item is one normalized entry from any source. URL is the item's
// identity within a digest run.
type Item struct {
	Source     SourceType
	SourceName string
	Title      string
	URL        string
	Published  time.Time
	Summary    string
	Category   string
	Tags       []string
	Author     string

	// Hacker News extras
	Points        int
	Comments      int
	DiscussionURL string

	// Release extras
	Repo       string
	Version    string
	Prerelease bool
	Assets     int
	Highlights Highlights
}

// ID returns a stable identifier derived from the item URL.
func (it Item) ID() string {
	h := sha256.Sum256([]byte(it.URL))
	return fmt.Sprintf("%x", h[:16])
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
