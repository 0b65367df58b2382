package openai

import (
	"sync"

	"github.com/dgc-tools/metaquery/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ModelOpenAIClient is a model client backed by an OpenAI-compatible
// chat-completions endpoint. Groq and other hosted providers expose the same
// API surface, so this client covers all of them via BaseURL.
//
// A ModelOpenAIClient should be created using NewModelOpenAIClient.
type ModelOpenAIClient struct {
	defaultModel string

	baseURL string
	apiKey  string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewModelOpenAIClientParams defines the configuration parameters for creating
// a new ModelOpenAIClient.
//
// Model is the default model identifier used when a request does not override it.
// BaseURL may be empty for the official OpenAI endpoint, or point at any
// compatible provider (e.g. https://api.groq.com/openai/v1).
type NewModelOpenAIClientParams struct {
	Model   string
	BaseURL string
	APIKey  string
}

// NewModelOpenAIClient creates and returns a new ModelOpenAIClient configured
// with the provided parameters.
//
// Example:
//
//	client := openai.NewModelOpenAIClient(openai.NewModelOpenAIClientParams{
//		Model:   "llama-3.3-70b-versatile",
//		BaseURL: "https://api.groq.com/openai/v1",
//		APIKey:  os.Getenv("MODEL_API_KEY"),
//	})
func NewModelOpenAIClient(
	params NewModelOpenAIClientParams,
) *ModelOpenAIClient {
	options := []option.RequestOption{
		option.WithAPIKey(params.APIKey),
	}
	if params.BaseURL != "" {
		options = append(options, option.WithBaseURL(params.BaseURL))
	}

	client := openai.NewClient(options...)

	return &ModelOpenAIClient{
		defaultModel: params.Model,
		baseURL:      params.BaseURL,
		apiKey:       params.APIKey,
		ChatClient:   &client,
	}
}

func (c *ModelOpenAIClient) modifyMetrics(metrics ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	c.metrics.InputTokens += metrics.InputTokens
	c.metrics.OutputTokens += metrics.OutputTokens
	c.metrics.TotalTokens += metrics.TotalTokens
	c.metrics.DurationMs += metrics.DurationMs
	c.metrics.Requests++
}

// ResetMetrics clears the accumulated usage metrics.
func (c *ModelOpenAIClient) ResetMetrics() {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.metrics = ai.ModelMetrics{}
}

// GetMetrics returns a snapshot of the accumulated usage metrics.
func (c *ModelOpenAIClient) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	return c.metrics
}
