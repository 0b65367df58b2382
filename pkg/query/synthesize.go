package query

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/dgc-tools/metaquery/pkg/ai"
	"github.com/dgc-tools/metaquery/pkg/logger"
)

// NoDataMessage is the fixed answer for empty result sets, regardless of
// question or query content.
const NoDataMessage = "No matching data was found for your query. The generated query may need refinement."

const (
	// maxContextRows bounds how many result rows are fed to the model when
	// synthesizing an answer for complex result shapes.
	maxContextRows = 20
	// maxContextTokens bounds the stringified row context after the row cap,
	// protecting the model call from pathologically wide rows.
	maxContextTokens = 4000
)

// Synthesizer converts raw result rows into a natural-language answer. Simple
// single-value and count shapes are formatted directly; everything else goes
// through one model call.
type Synthesizer struct {
	model ai.ModelClient
}

// NewSynthesizer creates a Synthesizer backed by the given model client.
func NewSynthesizer(model ai.ModelClient) *Synthesizer {
	return &Synthesizer{model: model}
}

// Synthesize produces the answer for a question given the executed query and
// its results. It never fails: a model error during synthesis degrades to a
// templated message reporting the row count and the error text.
func (s *Synthesizer) Synthesize(ctx context.Context, question, cypher string, results []map[string]any) string {
	if len(results) == 0 {
		return NoDataMessage
	}

	if len(results) == 1 {
		if answer, ok := formatSingleRow(results[0]); ok {
			return answer
		}
	}

	answer, err := s.synthesizeWithModel(ctx, question, cypher, results)
	if err != nil {
		logger.Error("Answer synthesis failed", "err", err, "rows", len(results))
		return fmt.Sprintf(
			"I found %d result(s) for your question but could not generate a summary (%s). The raw results are attached to this response.",
			len(results), err,
		)
	}
	return answer
}

// formatSingleRow handles the two trivial single-row shapes directly, without
// a model call: a count-style column, and a single scalar field.
func formatSingleRow(row map[string]any) (string, bool) {
	keys := make([]string, 0, len(row))
	for key := range row {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.Contains(strings.ToLower(key), "count") {
			return fmt.Sprintf("Found **%v** items matching your query.", row[key]), true
		}
	}

	if len(keys) == 1 {
		return fmt.Sprintf("The **%s** is: **%v**", fieldName(keys[0]), row[keys[0]]), true
	}

	return "", false
}

// fieldName reduces a column name to its last dot-separated segment, so
// "a.Display_Name" reads as "Display_Name".
func fieldName(column string) string {
	if idx := strings.LastIndex(column, "."); idx >= 0 {
		return column[idx+1:]
	}
	return column
}

func (s *Synthesizer) synthesizeWithModel(ctx context.Context, question, cypher string, results []map[string]any) (string, error) {
	rows := results
	if len(rows) > maxContextRows {
		rows = rows[:maxContextRows]
	}

	rowContext, err := stringifyRows(rows)
	if err != nil {
		return "", fmt.Errorf("could not render results: %w", err)
	}

	prompt := fmt.Sprintf(ai.AnswerPrompt, question, cypher, rowContext)
	answer, err := s.model.GenerateCompletion(ctx, prompt, ai.WithTemperature(0.2))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func stringifyRows(rows []map[string]any) (string, error) {
	rendered, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", err
	}
	text := string(rendered)

	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		// token counting is a guard, not a requirement
		logger.Warn("Token encoder unavailable, skipping context budget", "err", err)
		return text, nil
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) > maxContextTokens {
		text = enc.Decode(tokens[:maxContextTokens]) + "\n... (truncated)"
	}
	return text, nil
}
