package graph

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	returnRe = regexp.MustCompile(`(?i)\bRETURN\b`)
	limitRe  = regexp.MustCompile(`(?i)\bLIMIT\s+\d+`)
	skipRe   = regexp.MustCompile(`(?i)\bSKIP\s+\d+`)
)

func hasReturnClause(query string) bool {
	return returnRe.MatchString(query)
}

func hasLimitClause(query string) bool {
	return limitRe.MatchString(query)
}

// ensureLimit appends a LIMIT clause to row-returning queries that lack one,
// bounding both the database call and the context later fed to the model.
// Queries without a RETURN clause (pure writes) pass through unchanged.
func ensureLimit(query string, max int) string {
	if !hasReturnClause(query) || hasLimitClause(query) {
		return query
	}
	return strings.TrimRight(query, " \t\n;") + fmt.Sprintf(" LIMIT %d", max)
}

// paginate rewrites query to return one page of results, replacing any
// pre-existing SKIP/LIMIT clauses.
func paginate(query string, page, pageSize int) string {
	stripped := limitRe.ReplaceAllString(query, "")
	stripped = skipRe.ReplaceAllString(stripped, "")
	stripped = strings.TrimRight(strings.TrimSpace(stripped), ";")
	return fmt.Sprintf("%s SKIP %d LIMIT %d", stripped, (page-1)*pageSize, pageSize)
}

// countQueryFor derives a row-count query by replacing everything from the
// RETURN clause onward with a count aggregation. The derivation is a naive
// token split: multi-clause queries with subquery RETURNs may produce a
// wrong or failing count query, which the caller treats as a soft failure
// and approximates from the current page instead.
func countQueryFor(query string) (string, error) {
	loc := returnRe.FindStringIndex(query)
	if loc == nil {
		return "", fmt.Errorf("no RETURN clause to derive a count query from")
	}
	return query[:loc[0]] + "RETURN count(*) AS total", nil
}
