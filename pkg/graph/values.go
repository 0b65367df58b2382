package graph

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// normalizeValue flattens driver-specific graph types into plain values so
// result rows serialize cleanly and read naturally inside model prompts.
// Nodes and relationships collapse to their property maps; scalars pass
// through unchanged.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case dbtype.Node:
		props := make(map[string]any, len(v.Props)+1)
		for k, p := range v.Props {
			props[k] = normalizeValue(p)
		}
		if len(v.Labels) > 0 {
			props["labels"] = v.Labels
		}
		return props
	case dbtype.Relationship:
		props := make(map[string]any, len(v.Props)+1)
		for k, p := range v.Props {
			props[k] = normalizeValue(p)
		}
		props["type"] = v.Type
		return props
	case dbtype.Path:
		nodes := make([]any, 0, len(v.Nodes))
		for _, n := range v.Nodes {
			nodes = append(nodes, normalizeValue(n))
		}
		return nodes
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, normalizeValue(item))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = normalizeValue(item)
		}
		return out
	default:
		return value
	}
}
