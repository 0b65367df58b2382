package graph

import (
	"context"
	"fmt"
)

// DatabaseInfo returns version, edition and size facts about the connected
// database for operator visibility.
func (c *Client) DatabaseInfo(ctx context.Context) (map[string]any, error) {
	info := map[string]any{
		"database":    c.database,
		"max_results": c.maxResults,
	}

	components, err := c.run(ctx, "CALL dbms.components() YIELD name, versions, edition RETURN name, versions, edition", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if len(components) > 0 {
		info["name"] = components[0]["name"]
		info["edition"] = components[0]["edition"]
		if versions, ok := components[0]["versions"].([]any); ok && len(versions) > 0 {
			info["version"] = versions[0]
		}
	}

	if rows, err := c.run(ctx, "MATCH (n) RETURN count(n) AS nodes", nil); err == nil && len(rows) > 0 {
		info["node_count"] = rows[0]["nodes"]
	}
	if rows, err := c.run(ctx, "MATCH ()-[r]->() RETURN count(r) AS relationships", nil); err == nil && len(rows) > 0 {
		info["relationship_count"] = rows[0]["relationships"]
	}

	return info, nil
}
