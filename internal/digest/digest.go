// Package digest assembles fetched items into an ordered report.
package digest

import (
	"sort"
	"time"

	"github.com/Sid-Romero/sentinel-ops/internal/fetch"
)

// Window is the reporting cadence a digest covers.
type Window string

const (
	TriDaily Window = "tri-daily"
	Daily    Window = "daily"
	Weekly   Window = "weekly"
)

// Duration returns the recency window length.
func (w Window) Duration() time.Duration {
	switch w {
	case TriDaily:
		return 8 * time.Hour
	case Weekly:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Cutoff returns the recency boundary: only items published after it
// belong in the digest.
func (w Window) Cutoff(now time.Time) time.Time {
	return now.Add(-w.Duration())
}

// Section is one ordered group of items sharing a source type and
// category.
type Section struct {
	Source   fetch.SourceType
	Category string
	Items    []fetch.Item
}

// Digest is one assembled report. Built fresh per run and never
// mutated after rendering.
type Digest struct {
	Window      Window
	GeneratedAt time.Time
	Sections    []Section
}

// TotalItems returns the number of items across all sections.
func (d *Digest) TotalItems() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Items)
	}
	return n
}

// CountBySource returns the item count for one source type.
func (d *Digest) CountBySource(src fetch.SourceType) int {
	n := 0
	for _, s := range d.Sections {
		if s.Source == src {
			n += len(s.Items)
		}
	}
	return n
}

// Options tunes assembly.
type Options struct {
	// MaxStories caps the Hacker News section, keeping the highest
	// scored stories. Zero means no cap.
	MaxStories int

	// Seen, when set, drops items already reported by a prior digest.
	Seen func(url string) bool
}

// Assemble filters, deduplicates, groups, and orders items into a
// Digest. Within each section items are ordered by publish time
// descending; equal timestamps fall back to title order.
func Assemble(items []fetch.Item, window Window, now time.Time, opts Options) *Digest {
	cutoff := window.Cutoff(now)

	var kept []fetch.Item
	seenURL := map[string]bool{}
	for _, it := range items {
		// Undated feed entries are kept; dated ones must be in-window.
		if !it.Published.IsZero() && !it.Published.After(cutoff) {
			continue
		}
		if it.URL == "" || seenURL[it.URL] {
			continue
		}
		if opts.Seen != nil && opts.Seen(it.URL) {
			continue
		}
		seenURL[it.URL] = true
		kept = append(kept, it)
	}

	kept = capStories(kept, opts.MaxStories)

	groups := map[sectionKey][]fetch.Item{}
	for _, it := range kept {
		k := sectionKey{it.Source, it.Category}
		groups[k] = append(groups[k], it)
	}

	d := &Digest{Window: window, GeneratedAt: now}
	for _, k := range orderedKeys(groups) {
		section := Section{Source: k.source, Category: k.category, Items: groups[k]}
		sort.SliceStable(section.Items, func(i, j int) bool {
			a, b := section.Items[i], section.Items[j]
			if !a.Published.Equal(b.Published) {
				return a.Published.After(b.Published)
			}
			return a.Title < b.Title
		})
		d.Sections = append(d.Sections, section)
	}
	return d
}

type sectionKey struct {
	source   fetch.SourceType
	category string
}

// sourceOrder fixes section group ordering: articles, then releases,
// then discussions.
var sourceOrder = map[fetch.SourceType]int{
	fetch.SourceRSS:     0,
	fetch.SourceRelease: 1,
	fetch.SourceHN:      2,
}

func orderedKeys(groups map[sectionKey][]fetch.Item) []sectionKey {
	keys := make([]sectionKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if sourceOrder[keys[i].source] != sourceOrder[keys[j].source] {
			return sourceOrder[keys[i].source] < sourceOrder[keys[j].source]
		}
		return keys[i].category < keys[j].category
	})
	return keys
}

// capStories keeps the top-n Hacker News stories by points, leaving
// other sources untouched.
func capStories(items []fetch.Item, n int) []fetch.Item {
	if n <= 0 {
		return items
	}
	var stories []fetch.Item
	for _, it := range items {
		if it.Source == fetch.SourceHN {
			stories = append(stories, it)
		}
	}
	if len(stories) <= n {
		return items
	}

	sort.SliceStable(stories, func(i, j int) bool {
		if stories[i].Points != stories[j].Points {
			return stories[i].Points > stories[j].Points
		}
		return stories[i].Title < stories[j].Title
	})
	keep := map[string]bool{}
	for _, it := range stories[:n] {
		keep[it.URL] = true
	}

	out := items[:0:0]
	for _, it := range items {
		if it.Source == fetch.SourceHN && !keep[it.URL] {
			continue
		}
		out = append(out, it)
	}
	return out
}
