package query

import "strings"

// clauseKeywords are the Cypher clause openers a generated statement may
// start with. Lines beginning with one of these are treated as query text;
// everything else is model prose.
var clauseKeywords = []string{
	"MATCH", "RETURN", "CREATE", "MERGE", "DELETE",
	"SET", "REMOVE", "WITH", "UNWIND", "CALL",
}

func isClauseLine(line string) bool {
	upper := strings.ToUpper(strings.TrimSpace(line))
	for _, keyword := range clauseKeywords {
		if !strings.HasPrefix(upper, keyword) {
			continue
		}
		if len(upper) == len(keyword) {
			return true
		}
		next := upper[len(keyword)]
		if next == ' ' || next == '\t' || next == '(' {
			return true
		}
	}
	return false
}

// SanitizeCypher extracts an executable query from raw model output. Models
// wrap queries in markdown fences or prefix them with prose despite prompt
// instructions, so:
//
//   - if fenced code blocks are present, only their lines that start with a
//     Cypher clause keyword are kept;
//   - otherwise the text is scanned line by line and everything before the
//     first clause-keyword line is discarded.
//
// When no clause keyword appears anywhere, the trimmed raw text is returned
// unchanged: a potentially invalid query is preferable to silently dropping
// the attempt, since validation and execution will catch it downstream.
func SanitizeCypher(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if strings.Contains(trimmed, "```") {
		if query := extractFenced(trimmed); query != "" {
			return query
		}
	}

	lines := strings.Split(trimmed, "\n")
	for i, line := range lines {
		if !isClauseLine(line) {
			continue
		}
		kept := make([]string, 0, len(lines)-i)
		for _, l := range lines[i:] {
			kept = append(kept, strings.TrimSpace(l))
		}
		return strings.TrimSpace(strings.Join(kept, "\n"))
	}

	return trimmed
}

func extractFenced(text string) string {
	parts := strings.Split(text, "```")
	kept := []string{}
	// odd segments sit between fence markers; the first line of a segment may
	// be a language tag, which the clause filter drops naturally
	for i := 1; i < len(parts); i += 2 {
		for _, line := range strings.Split(parts[i], "\n") {
			if isClauseLine(line) {
				kept = append(kept, strings.TrimSpace(line))
			}
		}
	}
	return strings.Join(kept, "\n")
}
