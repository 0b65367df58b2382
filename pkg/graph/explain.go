package graph

import (
	"context"
	"fmt"
	"strings"
)

// Explain submits the query to the database's planning phase without
// executing it. A nil return means the query parsed and planned cleanly; a
// non-nil error carries the database's syntax or semantic complaint.
func (c *Client) Explain(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("empty query")
	}

	upper := strings.ToUpper(query)
	if !strings.HasPrefix(upper, "EXPLAIN") {
		query = "EXPLAIN " + query
	}

	_, err := c.run(ctx, query, nil)
	return err
}
