package query

import (
	"context"
	"fmt"

	"github.com/dgc-tools/metaquery/pkg/ai"
)

// Validator checks whether a generated query is syntactically sound without
// executing it. Verdicts are advisory: failures of the validator itself are
// reported as invalid verdicts, never as errors, and must never block
// execution.
type Validator interface {
	Validate(ctx context.Context, cypher string) ValidationResult
}

// Explainer is the dry-run capability a database client provides: plan the
// query without running it, returning the planner's complaint if any.
type Explainer interface {
	Explain(ctx context.Context, cypher string) error
}

// ExplainValidator validates queries through the database's EXPLAIN path.
type ExplainValidator struct {
	explainer Explainer
}

// NewExplainValidator creates a Validator backed by the database's own
// planning phase.
func NewExplainValidator(explainer Explainer) *ExplainValidator {
	return &ExplainValidator{explainer: explainer}
}

// Validate plans the query without executing it. Any failure, including the
// database being unreachable, is captured as an invalid verdict.
func (v *ExplainValidator) Validate(ctx context.Context, cypher string) ValidationResult {
	if err := v.explainer.Explain(ctx, cypher); err != nil {
		return ValidationResult{Valid: false, Message: err.Error()}
	}
	return ValidationResult{Valid: true}
}

// ModelValidator asks the language model for a structured syntax verdict.
// It serves deployments where the graph connection cannot EXPLAIN (e.g. a
// read-only proxy); the verdict is exactly as advisory as the EXPLAIN path.
type ModelValidator struct {
	model ai.ModelClient
}

// NewModelValidator creates a Validator backed by a language-model call.
func NewModelValidator(model ai.ModelClient) *ModelValidator {
	return &ModelValidator{model: model}
}

// Validate requests a {valid, message} verdict constrained by JSON schema.
// Model or parsing failures degrade to an invalid verdict carrying the error
// text.
func (v *ModelValidator) Validate(ctx context.Context, cypher string) ValidationResult {
	var verdict ValidationResult
	err := v.model.GenerateCompletionWithFormat(
		ctx,
		"cypher_syntax_verdict",
		"Verdict on whether a Cypher query is syntactically valid",
		fmt.Sprintf(ai.ValidatePrompt, cypher),
		&verdict,
	)
	if err != nil {
		return ValidationResult{Valid: false, Message: err.Error()}
	}
	return verdict
}
