package query_test

import (
	"testing"

	"github.com/aspenflow/reactor/query"
)

func snapshot() query.Snapshot {
	return query.Snapshot{
		"nodes": map[string]any{
			"a":   map[string]any{"value": 2},
			"b":   map[string]any{"value": 3},
			"sum": map[string]any{"value": 5},
		},
	}
}

func TestGetExtractsASingleNodeValue(t *testing.T) {
	results, err := query.Get(snapshot(), "$.nodes.sum.value")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(results) != 1 || results[0] != 5 {
		t.Fatalf("results = %v, want [5]", results)
	}
}

func TestGetWildcardMatchesEveryNode(t *testing.T) {
	results, err := query.Get(snapshot(), "$.nodes.*.value")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
}

func TestFirstReportsNoMatch(t *testing.T) {
	e, err := query.Parse("$.nodes.missing.value")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := e.First(snapshot()); ok {
		t.Fatal("expected no match for a missing node")
	}
}

func TestParseRejectsInvalidExpression(t *testing.T) {
	if _, err := query.Parse("$.["); err == nil {
		t.Fatal("expected a parse error")
	}
}
