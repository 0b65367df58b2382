package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgc-tools/metaquery/pkg/ai"
	"github.com/dgc-tools/metaquery/pkg/logger"
)

// ErrNoQuery reports that the model produced no usable query after
// sanitization.
var ErrNoQuery = errors.New("model produced no usable query")

// Generator turns a natural-language question into a single Cypher statement
// using the graph schema as grounding.
type Generator struct {
	model ai.ModelClient
}

// NewGenerator creates a Generator backed by the given model client.
func NewGenerator(model ai.ModelClient) *Generator {
	return &Generator{model: model}
}

// Generate renders the generation prompt from schema and question, invokes
// the model once, and sanitizes the raw response into an executable query.
// Transport and model errors, as well as an empty post-sanitization result,
// are generation failures.
func (g *Generator) Generate(ctx context.Context, question, schema string) (string, error) {
	prompt := fmt.Sprintf(ai.CypherPrompt, schema, question)

	raw, err := g.model.GenerateCompletion(ctx, prompt, ai.WithTemperature(0.0))
	if err != nil {
		return "", fmt.Errorf("cypher generation failed: %w", err)
	}

	cypher := SanitizeCypher(raw)
	if cypher == "" {
		logger.Warn("Model response contained no query", "raw_len", len(raw))
		return "", ErrNoQuery
	}

	logger.Debug("Generated Cypher", "query", cypher)
	return cypher, nil
}
