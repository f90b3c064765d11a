package tags

import (
	"sort"
	"strings"
	"unicode"
)

// topicKeywords maps a tag to the terms that imply it. Multi-word terms
// are matched against the raw lowered text, single words against tokens.
var topicKeywords = map[string][]string{
	"kubernetes": {"kubernetes", "k8s", "kubectl", "kubelet"},
	"containers": {"docker", "container", "containerd", "oci image"},
	"iac":        {"terraform", "pulumi", "opentofu", "infrastructure as code"},
	"ci-cd":      {"ci/cd", "pipeline", "continuous integration", "continuous delivery", "argocd", "gitops"},
	"observability": {
		"observability", "prometheus", "grafana", "tracing", "opentelemetry",
		"metrics", "alerting", "monitoring",
	},
	"security": {
		"security", "vulnerability", "cve", "exploit", "zero trust",
		"supply chain", "sbom",
	},
	"cloud":      {"aws", "gcp", "azure", "cloud native", "serverless", "lambda"},
	"sre":        {"sre", "incident", "postmortem", "reliability", "on-call", "slo"},
	"networking": {"dns", "load balancer", "proxy", "service mesh", "istio", "envoy"},
	"databases":  {"postgres", "postgresql", "mysql", "redis", "database", "etcd"},
}

const maxTags = 3

// For extracts up to three topic tags from an item's title and summary.
// Title matches count double. Ties break alphabetically so output is
// stable for identical input.
func For(title, summary string) []string {
	titleLower := strings.ToLower(title)
	summaryLower := strings.ToLower(summary)
	titleTokens := tokenize(titleLower)
	summaryTokens := tokenize(summaryLower)

	scores := map[string]int{}
	for tag, terms := range topicKeywords {
		for _, term := range terms {
			if strings.Contains(term, " ") || strings.Contains(term, "/") {
				if strings.Contains(titleLower, term) {
					scores[tag] += 2
				}
				if strings.Contains(summaryLower, term) {
					scores[tag]++
				}
				continue
			}
			for _, t := range titleTokens {
				if t == term {
					scores[tag] += 2
				}
			}
			for _, t := range summaryTokens {
				if t == term {
					scores[tag]++
				}
			}
		}
	}

	type scored struct {
		tag   string
		score int
	}
	ranked := make([]scored, 0, len(scores))
	for tag, s := range scores {
		ranked = append(ranked, scored{tag, s})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].tag < ranked[j].tag
	})

	n := len(ranked)
	if n == 0 {
		return nil
	}
	if n > maxTags {
		n = maxTags
	}
	out := make([]string, 0, n)
	for _, r := range ranked[:n] {
		out = append(out, r.tag)
	}
	return out
}

func tokenize(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(s) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
