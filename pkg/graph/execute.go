package graph

import (
	"context"
	"strings"

	"github.com/dgc-tools/metaquery/pkg/logger"
)

// Execute runs a Cypher statement and returns its rows. It never fails from
// the caller's perspective: execution errors degrade to an empty result set
// with the cause logged, so downstream answer synthesis reports "no data"
// instead of leaking database errors to the end user.
//
// Row-returning queries without a LIMIT clause get one appended at the
// configured maximum result count.
func (c *Client) Execute(ctx context.Context, query string) []map[string]any {
	if strings.TrimSpace(query) == "" {
		return []map[string]any{}
	}

	bounded := ensureLimit(query, c.maxResults)

	rows, err := c.run(ctx, bounded, nil)
	if err != nil {
		logger.Error("Cypher execution failed", "err", err, "query", bounded)
		return []map[string]any{}
	}
	return rows
}
