package tags

import (
	"reflect"
	"testing"
)

func TestForMatchesTopics(t *testing.T) {
	tests := []struct {
		title   string
		summary string
		want    []string
	}{
		{"Kubernetes 1.31 released", "kubectl updates", []string{"kubernetes"}},
		{"Scaling Postgres", "replication and etcd tips", []string{"databases"}},
		{"Nothing relevant", "plain text", nil},
		{"CVE in Envoy service mesh", "vulnerability details", []string{"networking", "security"}},
	}
	for _, tt := range tests {
		got := For(tt.title, tt.summary)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("For(%q, %q) = %v, want %v", tt.title, tt.summary, got, tt.want)
		}
	}
}

func TestForCapsAtThree(t *testing.T) {
	got := For("Kubernetes security on AWS with Prometheus and Terraform", "")
	if len(got) > maxTags {
		t.Errorf("expected at most %d tags, got %v", maxTags, got)
	}
}

func TestForDeterministic(t *testing.T) {
	title := "Monitoring Kubernetes with Prometheus"
	summary := "observability, metrics, and alerting for k8s clusters"
	first := For(title, summary)
	for i := 0; i < 10; i++ {
		if got := For(title, summary); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestForTitleOutweighsSummary(t *testing.T) {
	// One title hit (x2) should rank above two summary hits only when
	// scores differ; equal scores fall back to alphabetical order.
	got := For("terraform", "docker docker")
	if len(got) != 2 {
		t.Fatalf("expected 2 tags, got %v", got)
	}
	if got[0] != "containers" && got[0] != "iac" {
		t.Fatalf("unexpected tags: %v", got)
	}
	// terraform: 2 (title), docker: 2 (summary twice) -> tie, alphabetical
	if got[0] != "containers" || got[1] != "iac" {
		t.Errorf("expected alphabetical tie-break, got %v", got)
	}
}
