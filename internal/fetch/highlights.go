package fetch

import "strings"

// Keyword sets used to pick changelog lines out of release notes.
var (
	breakingKeywords = []string{"breaking", "breaking change", "breaking changes", "⚠️", "🚨"}
	securityKeywords = []string{"security", "vulnerability", "cve", "patch"}
	featureKeywords  = []string{"feature", "add", "new", "✨", "🎉"}
	fixKeywords      = []string{"fix", "bug", "resolve", "🐛"}
)

const (
	highlightScanLines  = 30
	secondaryScanLines  = 20
	maxLinesPerBucket   = 3
	minHighlightLineLen = 10
)

// ExtractHighlights scans the leading lines of release notes for
// breaking changes, security updates, features, and fixes. A line lands
// in at most one bucket, in that priority order.
func ExtractHighlights(body string) Highlights {
	var hl Highlights
	if body == "" {
		return hl
	}

	lines := strings.Split(body, "\n")

	scan := lines
	if len(scan) > highlightScanLines {
		scan = scan[:highlightScanLines]
	}
	for _, line := range scan {
		lower := strings.ToLower(line)
		if containsAny(lower, breakingKeywords) {
			hl.Breaking = append(hl.Breaking, cleanLine(line))
		}
	}
	for _, line := range scan {
		lower := strings.ToLower(line)
		if containsAny(lower, securityKeywords) {
			hl.Security = append(hl.Security, cleanLine(line))
		}
	}

	if len(lines) > secondaryScanLines {
		scan = lines[:secondaryScanLines]
	} else {
		scan = lines
	}
	for _, line := range scan {
		lower := strings.ToLower(line)
		if len(line) <= minHighlightLineLen || !containsAny(lower, featureKeywords) {
			continue
		}
		if claimed(line, hl.Breaking) || claimed(line, hl.Security) {
			continue
		}
		hl.Features = append(hl.Features, cleanLine(line))
	}
	for _, line := range scan {
		lower := strings.ToLower(line)
		if len(line) <= minHighlightLineLen || !containsAny(lower, fixKeywords) {
			continue
		}
		if claimed(line, hl.Breaking) || claimed(line, hl.Security) || claimed(line, hl.Features) {
			continue
		}
		hl.Fixes = append(hl.Fixes, cleanLine(line))
	}

	hl.Breaking = capLines(hl.Breaking)
	hl.Security = capLines(hl.Security)
	hl.Features = capLines(hl.Features)
	hl.Fixes = capLines(hl.Fixes)
	return hl
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func cleanLine(line string) string {
	return strings.Trim(line, "*- #\t ")
}

func claimed(line string, bucket []string) bool {
	cl := cleanLine(line)
	for _, b := range bucket {
		if b == cl {
			return true
		}
	}
	return false
}

func capLines(lines []string) []string {
	if len(lines) > maxLinesPerBucket {
		return lines[:maxLinesPerBucket]
	}
	return lines
}
