package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Sid-Romero/sentinel-ops/internal/digest"
	"github.com/Sid-Romero/sentinel-ops/internal/fetch"
)

func fixtureDigest() *digest.Digest {
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	return &digest.Digest{
		Window:      digest.Daily,
		GeneratedAt: day.Add(6 * time.Hour),
		Sections: []digest.Section{
			{
				Source:   fetch.SourceRSS,
				Category: "news",
				Items: []fetch.Item{{
					Source:     fetch.SourceRSS,
					SourceName: "CNCF Blog",
					Title:      "Kubernetes 1.31 Released",
					URL:        "https://example.com/k8s",
					Published:  day.Add(5 * time.Hour),
					Summary:    "The latest release.",
					Category:   "news",
					Tags:       []string{"kubernetes"},
				}},
			},
			{
				Source:   fetch.SourceRelease,
				Category: "orchestration",
				Items: []fetch.Item{{
					Source:     fetch.SourceRelease,
					SourceName: "Kubernetes",
					Title:      "v1.31.0",
					URL:        "https://github.com/kubernetes/kubernetes/releases/v1.31.0",
					Published:  day.Add(4*time.Hour + 30*time.Minute),
					Category:   "orchestration",
					Repo:       "kubernetes/kubernetes",
					Version:    "v1.31.0",
					Assets:     2,
					Highlights: fetch.Highlights{Security: []string{"Patched CVE-2026-0001"}},
				}},
			},
			{
				Source:   fetch.SourceHN,
				Category: "discussions",
				Items: []fetch.Item{{
					Source:        fetch.SourceHN,
					Title:         "K8s at scale",
					URL:           "https://example.com/scale",
					Published:     day.Add(3 * time.Hour),
					Author:        "pg",
					Points:        150,
					Comments:      42,
					DiscussionURL: "https://news.ycombinator.com/item?id=1",
				}},
			},
		},
	}
}

const fixtureMarkdown = `# 🚀 DevOps Monitoring Digest - Daily

*Generated on 2026-08-28 06:00 UTC*

**Your comprehensive source for DevOps ecosystem updates and insights**

---

# 📋 Executive Summary

*Daily DevOps Ecosystem Overview*

## Activity Overview

- 📰 **1** new articles from RSS feeds across **1** categories
- 📦 **1** new releases from monitored projects across **1** categories
- 💬 **1** relevant Hacker News discussions with **150** points and **42** comments
- 🎯 **3** total items tracked

## ⚠️ Important Alerts

- 🔒 **1** release(s) include security updates - consider upgrading

---

## 📰 News

### [Kubernetes 1.31 Released](https://example.com/k8s)
**Source:** CNCF Blog | **Date:** 2026-08-28 05:00 | **Tags:** kubernetes

The latest release.

---

## 📦 Orchestration

*1 release(s)*

### Kubernetes v1.31.0

**Repository:** kubernetes/kubernetes | **Date:** 2026-08-28 04:30 | **Assets:** 2

[View Release](https://github.com/kubernetes/kubernetes/releases/v1.31.0)

#### 📌 Key Highlights

🔒 **Security Updates:**
- Patched CVE-2026-0001

---

## 💬 Hacker News

### [K8s at scale](https://example.com/scale)
**Points:** 150 | **Comments:** 42 | **Author:** pg | **Date:** 2026-08-28 03:00

[Discussion on HN](https://news.ycombinator.com/item?id=1)

---

## 💡 About This Digest

This automated report aggregates the latest DevOps news, tool releases, and community discussions to help you stay informed about the rapidly evolving DevOps ecosystem.

*This report was automatically generated by Sentinel-Ops*
`

func TestMarkdownSnapshot(t *testing.T) {
	got := Markdown(fixtureDigest())
	if string(got) != fixtureMarkdown {
		t.Errorf("rendered markdown differs from snapshot:\n--- got ---\n%s\n--- want ---\n%s", got, fixtureMarkdown)
	}
}

func TestMarkdownDeterministic(t *testing.T) {
	d := fixtureDigest()
	first := Markdown(d)
	for i := 0; i < 5; i++ {
		if !bytes.Equal(Markdown(d), first) {
			t.Fatalf("render %d produced different bytes", i)
		}
	}
}

func TestMarkdownNoAlertsWithoutHighlights(t *testing.T) {
	d := fixtureDigest()
	d.Sections[1].Items[0].Highlights = fetch.Highlights{}
	out := string(Markdown(d))
	if strings.Contains(out, "Important Alerts") {
		t.Error("alerts section should be absent without breaking/security highlights")
	}
}

func TestMarkdownReleaseNotesFallback(t *testing.T) {
	d := fixtureDigest()
	d.Sections[1].Items[0].Highlights = fetch.Highlights{}
	d.Sections[1].Items[0].Summary = "Raw release notes preview."
	out := string(Markdown(d))
	if !strings.Contains(out, "#### Release Notes\n\nRaw release notes preview.") {
		t.Error("expected body preview when no highlights are present")
	}
}

func TestMarkdownPrereleaseMarker(t *testing.T) {
	d := fixtureDigest()
	d.Sections[1].Items[0].Prerelease = true
	out := string(Markdown(d))
	if !strings.Contains(out, "### Kubernetes v1.31.0 ⚠️ (Pre-release)") {
		t.Error("expected prerelease marker in heading")
	}
}

func TestMarkdownUndatedItem(t *testing.T) {
	d := fixtureDigest()
	d.Sections[0].Items[0].Published = time.Time{}
	out := string(Markdown(d))
	if !strings.Contains(out, "**Date:** Unknown") {
		t.Error("expected Unknown date for undated item")
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"daily", "Daily"},
		{"tri-daily", "Tri-Daily"},
		{"cloud native", "Cloud Native"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
