package ollama

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/dgc-tools/metaquery/pkg/ai"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"
)

// ModelOllamaClient implements the ai.ModelClient interface using Ollama as
// the backend for locally-hosted models.
type ModelOllamaClient struct {
	defaultModel string

	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client

	Client *api.Client
}

// NewModelOllamaClientParams contains configuration options for creating a
// new ModelOllamaClient.
type NewModelOllamaClientParams struct {
	Model   string
	BaseURL string
	APIKey  string

	MaxConcurrentRequests int64
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewModelOllamaClient creates a new Ollama-based model client. It connects
// to the Ollama server at the given BaseURL (or http://localhost:11434 when
// empty) and uses Model for all generation requests by default.
func NewModelOllamaClient(
	params NewModelOllamaClientParams,
) (*ModelOllamaClient, error) {
	base := params.BaseURL
	if base == "" {
		base = "http://localhost:11434"
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url: %w", err)
	}

	httpClient := http.DefaultClient
	if params.APIKey != "" {
		httpClient = &http.Client{
			Transport: &headerTransport{
				headers: map[string]string{
					"Authorization": "Bearer " + params.APIKey,
				},
				rt: http.DefaultTransport,
			},
		}
	}

	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &ModelOllamaClient{
		defaultModel: params.Model,
		reqLock:      semaphore.NewWeighted(maxConcurrent),
		baseURL:      baseURL,
		apiKey:       params.APIKey,
		httpClient:   httpClient,
		Client:       api.NewClient(baseURL, httpClient),
	}, nil
}

func (c *ModelOllamaClient) modifyMetrics(metrics ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	c.metrics.InputTokens += metrics.InputTokens
	c.metrics.OutputTokens += metrics.OutputTokens
	c.metrics.TotalTokens += metrics.TotalTokens
	c.metrics.DurationMs += metrics.DurationMs
	c.metrics.Requests++
}

// ResetMetrics clears the accumulated usage metrics.
func (c *ModelOllamaClient) ResetMetrics() {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.metrics = ai.ModelMetrics{}
}

// GetMetrics returns a snapshot of the accumulated usage metrics.
func (c *ModelOllamaClient) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	return c.metrics
}
