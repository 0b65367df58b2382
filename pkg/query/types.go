package query

import "github.com/dgc-tools/metaquery/pkg/graph"

// Outcome is the structured result of one natural-language query, success or
// error. A successful outcome always carries a non-empty CypherQuery and
// Answer; QueryResults may be empty (a valid "no data found" state) but is
// never nil.
type Outcome struct {
	Question     string            `json:"question"`
	CypherQuery  string            `json:"cypher_query,omitempty"`
	QueryResults []map[string]any  `json:"query_results"`
	Answer       string            `json:"answer,omitempty"`
	Validation   *ValidationResult `json:"validation,omitempty"`
	Pagination   *graph.Page       `json:"pagination,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// ValidationResult is the advisory verdict of a syntax check. It never blocks
// execution; an invalid verdict is logged and attached to the outcome.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// CacheStats reports the state of the outcome cache for operator visibility.
type CacheStats struct {
	Count     int      `json:"count"`
	Questions []string `json:"questions"`
}
