package graph

import (
	"context"
	"strings"

	"github.com/dgc-tools/metaquery/pkg/logger"
)

// Page is one page of a paginated query result, along with the pagination
// bookkeeping a presentation layer needs to render page controls.
type Page struct {
	Results    []map[string]any `json:"results"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalCount int              `json:"total_count"`
	TotalPages int              `json:"total_pages"`
}

// ExecutePaginated runs a Cypher statement one page at a time. The query is
// rewritten with SKIP/LIMIT (replacing any pre-existing LIMIT), and a derived
// count query establishes the total. When the count query fails, TotalCount
// falls back to the length of the returned page; that undercounts whenever
// the true total exceeds one page.
//
// Like Execute, it never fails: errors degrade to an empty page.
func (c *Client) ExecutePaginated(ctx context.Context, query string, pageSize, page int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = c.maxResults
	}

	if strings.TrimSpace(query) == "" {
		return Page{Results: []map[string]any{}, Page: page, PageSize: pageSize}
	}

	paged := paginate(query, page, pageSize)
	rows, err := c.run(ctx, paged, nil)
	if err != nil {
		logger.Error("Paginated Cypher execution failed", "err", err, "query", paged)
		return Page{Results: []map[string]any{}, Page: page, PageSize: pageSize}
	}

	totalCount := c.countTotal(ctx, query, len(rows))

	totalPages := totalCount / pageSize
	if totalCount%pageSize != 0 {
		totalPages++
	}

	return Page{
		Results:    rows,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

func (c *Client) countTotal(ctx context.Context, query string, pageLen int) int {
	countQuery, err := countQueryFor(query)
	if err != nil {
		logger.Warn("Could not derive count query, approximating from page length", "err", err)
		return pageLen
	}

	rows, err := c.run(ctx, countQuery, nil)
	if err != nil || len(rows) == 0 {
		logger.Warn("Count query failed, approximating from page length", "err", err, "query", countQuery)
		return pageLen
	}

	switch total := rows[0]["total"].(type) {
	case int64:
		return int(total)
	case int:
		return total
	case float64:
		return int(total)
	default:
		logger.Warn("Count query returned unexpected type, approximating from page length", "query", countQuery)
		return pageLen
	}
}
