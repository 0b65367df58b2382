package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeRunner replays canned rows per query and records every statement it
// receives.
type fakeRunner struct {
	rows     map[string][]map[string]any
	err      error
	executed []string
}

func (f *fakeRunner) Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	f.executed = append(f.executed, query)
	if f.err != nil {
		return nil, f.err
	}
	if rows, ok := f.rows[query]; ok {
		return rows, nil
	}
	return []map[string]any{}, nil
}

func newTestClient(runner *fakeRunner) *Client {
	return &Client{
		runner:     runner,
		database:   "neo4j",
		maxResults: 100,
	}
}

func TestExecute_AppendsLimit(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(runner)

	client.Execute(context.Background(), "MATCH (n) RETURN n")

	if len(runner.executed) != 1 {
		t.Fatalf("expected 1 executed query, got %d", len(runner.executed))
	}
	if runner.executed[0] != "MATCH (n) RETURN n LIMIT 100" {
		t.Fatalf("unexpected executed query: %q", runner.executed[0])
	}
}

func TestExecute_EmptyQueryShortCircuits(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(runner)

	rows := client.Execute(context.Background(), "   \n\t ")

	if len(runner.executed) != 0 {
		t.Fatalf("expected no database calls, got %d", len(runner.executed))
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil result set, got %v", rows)
	}
}

func TestExecute_FailureDegradesToEmpty(t *testing.T) {
	runner := &fakeRunner{err: errors.New("syntax error")}
	client := newTestClient(runner)

	rows := client.Execute(context.Background(), "MATCH (n) RETURN n")

	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil result set, got %v", rows)
	}
}

func TestExecutePaginated_PageMath(t *testing.T) {
	// 25-row total set, page 3 of size 10 holds rows 21-25
	pageRows := make([]map[string]any, 5)
	for i := range pageRows {
		pageRows[i] = map[string]any{"n.name": fmt.Sprintf("row-%d", 21+i)}
	}
	runner := &fakeRunner{
		rows: map[string][]map[string]any{
			"MATCH (n) RETURN n.name SKIP 20 LIMIT 10": pageRows,
			"MATCH (n) RETURN count(*) AS total":       {{"total": int64(25)}},
		},
	}
	client := newTestClient(runner)

	page := client.ExecutePaginated(context.Background(), "MATCH (n) RETURN n.name", 10, 3)

	if len(page.Results) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(page.Results))
	}
	if page.Results[0]["n.name"] != "row-21" || page.Results[4]["n.name"] != "row-25" {
		t.Fatalf("unexpected page contents: %v", page.Results)
	}
	if page.TotalCount != 25 {
		t.Fatalf("expected total_count 25, got %d", page.TotalCount)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected total_pages 3, got %d", page.TotalPages)
	}
	if page.Page != 3 || page.PageSize != 10 {
		t.Fatalf("unexpected page bookkeeping: %+v", page)
	}
}

func TestExecutePaginated_CountFailureFallsBackToPageLength(t *testing.T) {
	runner := &fakeRunner{
		rows: map[string][]map[string]any{
			"MATCH (n) RETURN n SKIP 0 LIMIT 10": {
				{"n": "a"}, {"n": "b"}, {"n": "c"},
			},
			// count query deliberately absent: fake returns empty rows for it
		},
	}
	client := newTestClient(runner)

	page := client.ExecutePaginated(context.Background(), "MATCH (n) RETURN n", 10, 1)

	if page.TotalCount != 3 {
		t.Fatalf("expected total_count to fall back to page length 3, got %d", page.TotalCount)
	}
	if page.TotalPages != 1 {
		t.Fatalf("expected total_pages 1, got %d", page.TotalPages)
	}
}

func TestExecutePaginated_ReplacesExistingLimit(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(runner)

	client.ExecutePaginated(context.Background(), "MATCH (n) RETURN n LIMIT 100", 10, 2)

	if len(runner.executed) == 0 {
		t.Fatal("expected at least one executed query")
	}
	if !strings.Contains(runner.executed[0], "SKIP 10 LIMIT 10") {
		t.Fatalf("expected rewritten pagination, got %q", runner.executed[0])
	}
	if strings.Contains(runner.executed[0], "LIMIT 100") {
		t.Fatalf("pre-existing limit should be replaced, got %q", runner.executed[0])
	}
}
