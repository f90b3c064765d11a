// Package render turns an assembled digest into Markdown. Rendering is
// a pure function of the digest: identical input yields byte-identical
// output.
package render

import (
	"fmt"
	"strings"

	"github.com/Sid-Romero/sentinel-ops/internal/digest"
	"github.com/Sid-Romero/sentinel-ops/internal/fetch"
)

const timeLayout = "2006-01-02 15:04"

// Markdown renders the full digest document.
func Markdown(d *digest.Digest) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# 🚀 DevOps Monitoring Digest - %s\n\n", titleCase(string(d.Window)))
	fmt.Fprintf(&b, "*Generated on %s UTC*\n\n", d.GeneratedAt.UTC().Format(timeLayout))
	b.WriteString("**Your comprehensive source for DevOps ecosystem updates and insights**\n\n")
	b.WriteString("---\n\n")

	writeSummary(&b, d)

	for _, section := range d.Sections {
		writeSection(&b, section)
	}

	writeFooter(&b)
	return []byte(b.String())
}

func writeSummary(b *strings.Builder, d *digest.Digest) {
	b.WriteString("# 📋 Executive Summary\n\n")
	fmt.Fprintf(b, "*%s DevOps Ecosystem Overview*\n\n", titleCase(string(d.Window)))
	b.WriteString("## Activity Overview\n\n")

	var (
		points, comments   int
		breaking, security int
		rssCats            = map[string]bool{}
		relCats            = map[string]bool{}
	)
	for _, s := range d.Sections {
		switch s.Source {
		case fetch.SourceRSS:
			rssCats[s.Category] = true
		case fetch.SourceRelease:
			relCats[s.Category] = true
		}
		for _, it := range s.Items {
			points += it.Points
			comments += it.Comments
			if len(it.Highlights.Breaking) > 0 {
				breaking++
			}
			if len(it.Highlights.Security) > 0 {
				security++
			}
		}
	}

	fmt.Fprintf(b, "- 📰 **%d** new articles from RSS feeds across **%d** categories\n",
		d.CountBySource(fetch.SourceRSS), len(rssCats))
	fmt.Fprintf(b, "- 📦 **%d** new releases from monitored projects across **%d** categories\n",
		d.CountBySource(fetch.SourceRelease), len(relCats))
	fmt.Fprintf(b, "- 💬 **%d** relevant Hacker News discussions with **%d** points and **%d** comments\n",
		d.CountBySource(fetch.SourceHN), points, comments)
	fmt.Fprintf(b, "- 🎯 **%d** total items tracked\n\n", d.TotalItems())

	if breaking > 0 || security > 0 {
		b.WriteString("## ⚠️ Important Alerts\n\n")
		if breaking > 0 {
			fmt.Fprintf(b, "- 🚨 **%d** release(s) contain breaking changes - review before upgrading\n", breaking)
		}
		if security > 0 {
			fmt.Fprintf(b, "- 🔒 **%d** release(s) include security updates - consider upgrading\n", security)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
}

func writeSection(b *strings.Builder, s digest.Section) {
	switch s.Source {
	case fetch.SourceRSS:
		fmt.Fprintf(b, "## 📰 %s\n\n", titleCase(s.Category))
		for _, it := range s.Items {
			writeArticle(b, it)
		}
	case fetch.SourceRelease:
		fmt.Fprintf(b, "## 📦 %s\n\n", titleCase(s.Category))
		fmt.Fprintf(b, "*%d release(s)*\n\n", len(s.Items))
		for _, it := range s.Items {
			writeRelease(b, it)
		}
	case fetch.SourceHN:
		b.WriteString("## 💬 Hacker News\n\n")
		for _, it := range s.Items {
			writeStory(b, it)
		}
	}
}

func writeArticle(b *strings.Builder, it fetch.Item) {
	fmt.Fprintf(b, "### [%s](%s)\n", it.Title, it.URL)
	fmt.Fprintf(b, "**Source:** %s | **Date:** %s", it.SourceName, itemDate(it))
	if len(it.Tags) > 0 {
		fmt.Fprintf(b, " | **Tags:** %s", strings.Join(it.Tags, ", "))
	}
	b.WriteString("\n\n")
	if it.Summary != "" {
		fmt.Fprintf(b, "%s\n\n", it.Summary)
	}
	b.WriteString("---\n\n")
}

func writeRelease(b *strings.Builder, it fetch.Item) {
	prerelease := ""
	if it.Prerelease {
		prerelease = " ⚠️ (Pre-release)"
	}
	fmt.Fprintf(b, "### %s %s%s\n\n", it.SourceName, it.Version, prerelease)

	fmt.Fprintf(b, "**Repository:** %s | **Date:** %s", it.Repo, itemDate(it))
	if it.Assets > 0 {
		fmt.Fprintf(b, " | **Assets:** %d", it.Assets)
	}
	b.WriteString("\n\n")
	fmt.Fprintf(b, "[View Release](%s)\n\n", it.URL)

	if !it.Highlights.Empty() {
		b.WriteString("#### 📌 Key Highlights\n\n")
		writeHighlightBucket(b, "🚨 **Breaking Changes:**", it.Highlights.Breaking)
		writeHighlightBucket(b, "🔒 **Security Updates:**", it.Highlights.Security)
		writeHighlightBucket(b, "✨ **New Features:**", it.Highlights.Features)
		writeHighlightBucket(b, "🐛 **Bug Fixes:**", it.Highlights.Fixes)
	} else if it.Summary != "" {
		b.WriteString("#### Release Notes\n\n")
		fmt.Fprintf(b, "%s\n\n", it.Summary)
	}

	b.WriteString("---\n\n")
}

// writeHighlightBucket renders at most two lines per bucket.
func writeHighlightBucket(b *strings.Builder, heading string, lines []string) {
	if len(lines) == 0 {
		return
	}
	if len(lines) > 2 {
		lines = lines[:2]
	}
	b.WriteString(heading + "\n")
	for _, line := range lines {
		fmt.Fprintf(b, "- %s\n", line)
	}
	b.WriteString("\n")
}

func writeStory(b *strings.Builder, it fetch.Item) {
	fmt.Fprintf(b, "### [%s](%s)\n", it.Title, it.URL)
	fmt.Fprintf(b, "**Points:** %d | **Comments:** %d | **Author:** %s | **Date:** %s\n\n",
		it.Points, it.Comments, it.Author, itemDate(it))
	fmt.Fprintf(b, "[Discussion on HN](%s)\n\n", it.DiscussionURL)
	b.WriteString("---\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("## 💡 About This Digest\n\n")
	b.WriteString("This automated report aggregates the latest DevOps news, tool releases, and community discussions to help you stay informed about the rapidly evolving DevOps ecosystem.\n\n")
	b.WriteString("*This report was automatically generated by Sentinel-Ops*\n")
}

func itemDate(it fetch.Item) string {
	if it.Published.IsZero() {
		return "Unknown"
	}
	return it.Published.UTC().Format(timeLayout)
}

// titleCase upper-cases the letter starting each word, treating
// hyphens as word breaks ("tri-daily" -> "Tri-Daily"). Categories and
// window names are ASCII config values, so this stays simple.
func titleCase(s string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range s {
		if upperNext && r >= 'a' && r <= 'z' {
			r = r - 'a' + 'A'
		}
		upperNext = r == ' ' || r == '-'
		b.WriteRune(r)
	}
	return b.String()
}
