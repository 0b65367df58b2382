package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/dgc-tools/metaquery/pkg/ai"
	"github.com/dgc-tools/metaquery/pkg/graph"
	"github.com/dgc-tools/metaquery/pkg/logger"
)

// GraphStore is the database capability the pipeline needs: schema
// introspection, bounded execution, pagination, dry-run planning, and
// connectivity facts. *graph.Client satisfies it.
type GraphStore interface {
	GetSchema(ctx context.Context) (string, error)
	RefreshSchema(ctx context.Context) (string, error)
	Execute(ctx context.Context, cypher string) []map[string]any
	ExecutePaginated(ctx context.Context, cypher string, pageSize, page int) graph.Page
	Explain(ctx context.Context, cypher string) error
	TestConnection(ctx context.Context) bool
	DatabaseInfo(ctx context.Context) (map[string]any, error)
}

// Client orchestrates the natural-language query pipeline: Cypher generation,
// advisory validation, bounded execution, answer synthesis, and outcome
// caching. It is the single owner of the outcome cache and the only type a
// presentation layer (HTTP handler, CLI) may call.
//
// A Client should be created using NewClient.
type Client struct {
	store GraphStore
	model ai.ModelClient

	generator   *Generator
	validator   Validator
	synthesizer *Synthesizer
	cache       *outcomeCache
}

// NewClientParams defines the configuration parameters for creating a new
// Client.
//
// Store provides database access; Model provides language-model access.
// Validator is optional: when nil, an ExplainValidator over Store is used.
type NewClientParams struct {
	Store     GraphStore
	Model     ai.ModelClient
	Validator Validator
}

// NewClient creates and returns a new pipeline Client.
func NewClient(params NewClientParams) *Client {
	validator := params.Validator
	if validator == nil {
		validator = NewExplainValidator(params.Store)
	}

	return &Client{
		store:       params.Store,
		model:       params.Model,
		generator:   NewGenerator(params.Model),
		validator:   validator,
		synthesizer: NewSynthesizer(params.Model),
		cache:       newOutcomeCache(),
	}
}

// QueryOptions holds per-call configuration for Query.
type QueryOptions struct {
	UseCache bool
	Page     int
	PageSize int
}

// QueryOption is a functional option for configuring a Query call.
type QueryOption func(*QueryOptions)

// WithoutCache returns a QueryOption that bypasses the outcome cache for
// both lookup and storage.
func WithoutCache() QueryOption {
	return func(o *QueryOptions) {
		o.UseCache = false
	}
}

// WithPagination returns a QueryOption that executes the generated query one
// page at a time instead of with the flat result ceiling. Paginated outcomes
// are not cached, since the same question maps to different pages.
func WithPagination(pageSize, page int) QueryOption {
	return func(o *QueryOptions) {
		o.PageSize = pageSize
		o.Page = page
	}
}

// Query processes a natural-language question end to end and always returns
// a well-formed outcome, never an error: every internal failure is converted
// to either a degraded success or an error outcome.
func (c *Client) Query(ctx context.Context, question string, opts ...QueryOption) (outcome Outcome) {
	options := QueryOptions{UseCache: true}
	for _, o := range opts {
		o(&options)
	}

	// the orchestrator is the single point that guarantees the caller a
	// well-formed outcome, so unexpected panics become error outcomes too
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Query pipeline panicked", "panic", r, "question", question)
			outcome = errorOutcome(question, fmt.Sprintf("%v", r))
		}
	}()

	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return errorOutcome(question, "question is empty")
	}

	cacheable := options.UseCache && options.PageSize <= 0
	if cacheable {
		if cached, ok := c.cache.Get(trimmed); ok {
			logger.Debug("Cache hit", "question", trimmed)
			return cached
		}
	}

	schema, err := c.store.GetSchema(ctx)
	if err != nil {
		return errorOutcome(trimmed, err.Error())
	}

	cypher, err := c.generator.Generate(ctx, trimmed, schema)
	if err != nil {
		return errorOutcome(trimmed, err.Error())
	}

	validation := c.validate(ctx, cypher)

	var results []map[string]any
	var page *graph.Page
	if options.PageSize > 0 {
		p := c.store.ExecutePaginated(ctx, cypher, options.PageSize, options.Page)
		page = &p
		results = p.Results
	} else {
		results = c.store.Execute(ctx, cypher)
	}

	answer := c.synthesizer.Synthesize(ctx, trimmed, cypher, results)

	outcome = Outcome{
		Question:     trimmed,
		CypherQuery:  cypher,
		QueryResults: results,
		Answer:       answer,
		Validation:   validation,
		Pagination:   page,
	}

	if cacheable {
		c.cache.Set(trimmed, outcome)
	}
	return outcome
}

func (c *Client) validate(ctx context.Context, cypher string) *ValidationResult {
	if c.validator == nil {
		return nil
	}
	result := c.validator.Validate(ctx, cypher)
	if !result.Valid {
		logger.Warn("Query failed validation, executing anyway", "message", result.Message, "query", cypher)
	}
	return &result
}

func errorOutcome(question, detail string) Outcome {
	return Outcome{
		Question:     strings.TrimSpace(question),
		QueryResults: []map[string]any{},
		Error:        "Error processing query: " + detail,
	}
}

// GetSchemaInfo returns the textual graph schema description.
func (c *Client) GetSchemaInfo(ctx context.Context) (string, error) {
	return c.store.GetSchema(ctx)
}

// RefreshSchema forces a refetch of the graph schema description.
func (c *Client) RefreshSchema(ctx context.Context) (string, error) {
	return c.store.RefreshSchema(ctx)
}

// GetDatabaseInfo returns version and size facts about the connected
// database.
func (c *Client) GetDatabaseInfo(ctx context.Context) (map[string]any, error) {
	return c.store.DatabaseInfo(ctx)
}

// TestConnection probes the database and reports reachability.
func (c *Client) TestConnection(ctx context.Context) bool {
	return c.store.TestConnection(ctx)
}

// ClearCache empties the outcome cache.
func (c *Client) ClearCache() {
	c.cache.Clear()
	logger.Info("Outcome cache cleared")
}

// GetCacheStats reports the outcome cache's size and keys.
func (c *Client) GetCacheStats() CacheStats {
	return c.cache.Stats()
}

// ModelMetrics returns the accumulated language-model usage metrics.
func (c *Client) ModelMetrics() ai.ModelMetrics {
	return c.model.GetMetrics()
}
