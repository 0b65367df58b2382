package graph

import "testing"

func TestEnsureLimit(t *testing.T) {
	tests := []struct {
		name  string
		query string
		max   int
		want  string
	}{
		{
			name:  "return without limit gets bounded",
			query: "MATCH (n) RETURN n",
			max:   100,
			want:  "MATCH (n) RETURN n LIMIT 100",
		},
		{
			name:  "existing limit is kept",
			query: "MATCH (n) RETURN n LIMIT 5",
			max:   100,
			want:  "MATCH (n) RETURN n LIMIT 5",
		},
		{
			name:  "lowercase clauses are recognized",
			query: "match (n) return n",
			max:   25,
			want:  "match (n) return n LIMIT 25",
		},
		{
			name:  "write query without return passes through",
			query: "CREATE (n:Asset {name: 'x'})",
			max:   100,
			want:  "CREATE (n:Asset {name: 'x'})",
		},
		{
			name:  "trailing semicolon is dropped before appending",
			query: "MATCH (n) RETURN n;",
			max:   10,
			want:  "MATCH (n) RETURN n LIMIT 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ensureLimit(tt.query, tt.max)
			if got != tt.want {
				t.Fatalf("unexpected query: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
		want     string
	}{
		{
			name:     "first page",
			query:    "MATCH (n) RETURN n",
			page:     1,
			pageSize: 10,
			want:     "MATCH (n) RETURN n SKIP 0 LIMIT 10",
		},
		{
			name:     "third page",
			query:    "MATCH (n) RETURN n",
			page:     3,
			pageSize: 10,
			want:     "MATCH (n) RETURN n SKIP 20 LIMIT 10",
		},
		{
			name:     "pre-existing limit is replaced",
			query:    "MATCH (n) RETURN n LIMIT 100",
			page:     2,
			pageSize: 5,
			want:     "MATCH (n) RETURN n SKIP 5 LIMIT 5",
		},
		{
			name:     "pre-existing skip and limit are replaced",
			query:    "MATCH (n) RETURN n SKIP 30 LIMIT 100",
			page:     1,
			pageSize: 20,
			want:     "MATCH (n) RETURN n SKIP 0 LIMIT 20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paginate(tt.query, tt.page, tt.pageSize)
			if got != tt.want {
				t.Fatalf("unexpected query: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCountQueryFor(t *testing.T) {
	got, err := countQueryFor("MATCH (n:Asset) RETURN n.name, n.id ORDER BY n.name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "MATCH (n:Asset) RETURN count(*) AS total"
	if got != want {
		t.Fatalf("unexpected count query: got %q, want %q", got, want)
	}
}

func TestCountQueryFor_NoReturn(t *testing.T) {
	if _, err := countQueryFor("CREATE (n:Asset)"); err == nil {
		t.Fatal("expected error for query without RETURN, got nil")
	}
}
