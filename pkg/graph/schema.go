package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgc-tools/metaquery/pkg/logger"
)

// ErrUnreachable reports that the backing database could not be queried.
var ErrUnreachable = errors.New("graph database unreachable")

const (
	nodePropertiesQuery = "CALL db.schema.nodeTypeProperties() YIELD nodeLabels, propertyName, propertyTypes " +
		"RETURN nodeLabels, propertyName, propertyTypes"
	relPropertiesQuery = "CALL db.schema.relTypeProperties() YIELD relType, propertyName, propertyTypes " +
		"RETURN relType, propertyName, propertyTypes"
	relPatternsQuery = "MATCH (a)-[r]->(b) " +
		"RETURN DISTINCT labels(a) AS from, type(r) AS rel, labels(b) AS to LIMIT 1000"
)

// GetSchema returns the textual description of the graph's node labels,
// relationship types and properties, fetching it from the database on first
// use and serving the cached copy afterwards. The cache has no TTL; it is
// valid until RefreshSchema or process restart.
func (c *Client) GetSchema(ctx context.Context) (string, error) {
	c.schemaLock.Lock()
	defer c.schemaLock.Unlock()

	if c.schema != "" {
		return c.schema, nil
	}

	schema, err := c.fetchSchema(ctx)
	if err != nil {
		return "", err
	}
	c.schema = schema
	return schema, nil
}

// RefreshSchema invalidates the cached schema description and forces a
// refetch from the database.
func (c *Client) RefreshSchema(ctx context.Context) (string, error) {
	c.schemaLock.Lock()
	defer c.schemaLock.Unlock()

	schema, err := c.fetchSchema(ctx)
	if err != nil {
		return "", err
	}
	c.schema = schema
	logger.Info("Graph schema refreshed", "chars", len(schema))
	return schema, nil
}

func (c *Client) fetchSchema(ctx context.Context) (string, error) {
	nodeProps, err := c.run(ctx, nodePropertiesQuery, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	relProps, err := c.run(ctx, relPropertiesQuery, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	relPatterns, err := c.run(ctx, relPatternsQuery, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	var b strings.Builder
	b.WriteString("Node properties:\n")
	writePropertyLines(&b, groupNodeProperties(nodeProps))
	b.WriteString("Relationship properties:\n")
	writePropertyLines(&b, groupRelProperties(relProps))
	b.WriteString("The relationships:\n")
	for _, pattern := range formatRelPatterns(relPatterns) {
		b.WriteString(pattern)
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func groupNodeProperties(rows []map[string]any) map[string][]string {
	grouped := map[string][]string{}
	for _, row := range rows {
		label := joinStringList(row["nodeLabels"], ":")
		if label == "" {
			continue
		}
		name, _ := row["propertyName"].(string)
		if name == "" {
			continue
		}
		grouped[label] = append(grouped[label], fmt.Sprintf("%s: %s", name, joinStringList(row["propertyTypes"], "|")))
	}
	return grouped
}

func groupRelProperties(rows []map[string]any) map[string][]string {
	grouped := map[string][]string{}
	for _, row := range rows {
		relType, _ := row["relType"].(string)
		relType = strings.Trim(relType, ":`")
		if relType == "" {
			continue
		}
		name, _ := row["propertyName"].(string)
		if name == "" {
			// relationship type with no properties still belongs in the schema
			if _, seen := grouped[relType]; !seen {
				grouped[relType] = []string{}
			}
			continue
		}
		grouped[relType] = append(grouped[relType], fmt.Sprintf("%s: %s", name, joinStringList(row["propertyTypes"], "|")))
	}
	return grouped
}

func writePropertyLines(b *strings.Builder, grouped map[string][]string) {
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(b, "%s {%s}\n", name, strings.Join(grouped[name], ", "))
	}
}

func formatRelPatterns(rows []map[string]any) []string {
	seen := map[string]bool{}
	patterns := []string{}
	for _, row := range rows {
		from := joinStringList(row["from"], ":")
		to := joinStringList(row["to"], ":")
		rel, _ := row["rel"].(string)
		if from == "" || to == "" || rel == "" {
			continue
		}
		pattern := fmt.Sprintf("(:%s)-[:%s]->(:%s)", from, rel, to)
		if !seen[pattern] {
			seen[pattern] = true
			patterns = append(patterns, pattern)
		}
	}
	sort.Strings(patterns)
	return patterns
}

func joinStringList(value any, sep string) string {
	switch v := value.(type) {
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, sep)
	case []string:
		return strings.Join(v, sep)
	case string:
		return v
	default:
		return ""
	}
}
