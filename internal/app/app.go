package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgc-tools/metaquery/internal/util"
	"github.com/dgc-tools/metaquery/pkg/ai"
	"github.com/dgc-tools/metaquery/pkg/ai/ollama"
	"github.com/dgc-tools/metaquery/pkg/ai/openai"
	"github.com/dgc-tools/metaquery/pkg/graph"
	"github.com/dgc-tools/metaquery/pkg/logger"
	"github.com/dgc-tools/metaquery/pkg/query"
)

// Pipeline bundles the assembled query client with the graph connection it
// owns, so callers can close the connection on shutdown.
type Pipeline struct {
	Query *query.Client
	Graph *graph.Client
}

// NewPipeline assembles the full question answering pipeline from
// environment configuration. Missing credentials are reported as one error
// naming every absent variable.
func NewPipeline(ctx context.Context) (*Pipeline, error) {
	creds, err := util.RequireEnv("NEO4J_URI", "NEO4J_USERNAME", "NEO4J_PASSWORD")
	if err != nil {
		return nil, err
	}

	graphClient, err := graph.NewClient(graph.NewClientParams{
		URI:        creds["NEO4J_URI"],
		Username:   creds["NEO4J_USERNAME"],
		Password:   creds["NEO4J_PASSWORD"],
		Database:   util.GetEnvString("NEO4J_DATABASE", "neo4j"),
		MaxResults: util.GetEnvInt("MAX_RESULTS", 100),
		Timeout:    time.Duration(util.GetEnvInt("QUERY_TIMEOUT_SECONDS", 30)) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	probeErr := util.RetryErrWithContext(ctx, 3, func(ctx context.Context) error {
		if !graphClient.TestConnection(ctx) {
			return errors.New("graph database unreachable")
		}
		return nil
	})
	if probeErr != nil {
		logger.Warn("Graph database is not reachable, queries will fail until it is", "err", probeErr)
	}

	model, err := newModelClient()
	if err != nil {
		closeErr := graphClient.Close(ctx)
		if closeErr != nil {
			logger.Warn("Failed to close graph connection", "err", closeErr)
		}
		return nil, err
	}

	queryClient := query.NewClient(query.NewClientParams{
		Store:     graphClient,
		Model:     model,
		Validator: newValidator(graphClient, model),
	})

	// warm the schema cache so the first question does not pay for
	// introspection
	if _, err := util.Retry(2, func() (string, error) {
		return queryClient.GetSchemaInfo(ctx)
	}); err != nil {
		logger.Warn("Schema warm-up failed", "err", err)
	}

	return &Pipeline{Query: queryClient, Graph: graphClient}, nil
}

// Close releases the pipeline's graph connection.
func (p *Pipeline) Close(ctx context.Context) error {
	return p.Graph.Close(ctx)
}

func newModelClient() (ai.ModelClient, error) {
	provider := util.GetEnvString("MODEL_PROVIDER", "openai")

	switch provider {
	case "ollama":
		return ollama.NewModelOllamaClient(ollama.NewModelOllamaClientParams{
			Model:                 util.GetEnvString("MODEL_NAME", "llama3.1"),
			BaseURL:               util.GetEnv("MODEL_BASE_URL"),
			APIKey:                util.GetEnv("MODEL_API_KEY"),
			MaxConcurrentRequests: int64(util.GetEnvInt("MODEL_MAX_CONCURRENT_REQUESTS", 2)),
		})
	case "openai":
		creds, err := util.RequireEnv("MODEL_API_KEY")
		if err != nil {
			return nil, err
		}
		return openai.NewModelOpenAIClient(openai.NewModelOpenAIClientParams{
			Model:   util.GetEnvString("MODEL_NAME", "llama-3.3-70b-versatile"),
			BaseURL: util.GetEnvString("MODEL_BASE_URL", "https://api.groq.com/openai/v1"),
			APIKey:  creds["MODEL_API_KEY"],
		}), nil
	default:
		return nil, fmt.Errorf("unknown MODEL_PROVIDER %q, expected openai or ollama", provider)
	}
}

func newValidator(graphClient *graph.Client, model ai.ModelClient) query.Validator {
	switch util.GetEnvString("QUERY_VALIDATOR", "explain") {
	case "model":
		return query.NewModelValidator(model)
	default:
		return query.NewExplainValidator(graphClient)
	}
}
