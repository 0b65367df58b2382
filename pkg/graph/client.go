package graph

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/dgc-tools/metaquery/pkg/logger"
)

// Runner abstracts the execution of a single Cypher statement against the
// database, returning rows as maps from output-column name to value. It
// exists so the executor and schema logic can be tested against a fake
// backend.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// Client is a Neo4j-backed metadata graph client. It owns the driver
// connection, a cached textual schema description, and the result-size
// policy applied to every query it executes.
//
// A Client should be created using NewClient.
type Client struct {
	runner   Runner
	database string

	maxResults int
	timeout    time.Duration

	schemaLock sync.Mutex
	schema     string

	driver neo4j.DriverWithContext
}

// NewClientParams defines the configuration parameters for creating a new Client.
//
// URI, Username and Password configure the Neo4j connection.
// Database selects the target database (defaults to "neo4j").
// MaxResults bounds the number of rows any query may return (defaults to 100).
// Timeout bounds each database round trip (defaults to 30s).
type NewClientParams struct {
	URI      string
	Username string
	Password string
	Database string

	MaxResults int
	Timeout    time.Duration
}

// NewClient creates and returns a new Client connected to the configured
// Neo4j instance. The connection is lazy; use TestConnection to probe it.
//
// Example:
//
//	client, err := graph.NewClient(graph.NewClientParams{
//		URI:      "neo4j://localhost:7687",
//		Username: "neo4j",
//		Password: os.Getenv("NEO4J_PASSWORD"),
//	})
func NewClient(params NewClientParams) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(
		params.URI,
		neo4j.BasicAuth(params.Username, params.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	database := params.Database
	if database == "" {
		database = "neo4j"
	}
	maxResults := params.MaxResults
	if maxResults <= 0 {
		maxResults = 100
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		runner:     &neo4jRunner{driver: driver, database: database},
		database:   database,
		maxResults: maxResults,
		timeout:    timeout,
		driver:     driver,
	}, nil
}

// MaxResults returns the configured result-size ceiling.
func (c *Client) MaxResults() int {
	return c.maxResults
}

// TestConnection probes the database and returns whether it is reachable.
func (c *Client) TestConnection(ctx context.Context) bool {
	rows, err := c.run(ctx, "MATCH (n) RETURN count(n) AS node_count LIMIT 1", nil)
	if err != nil {
		logger.Warn("Graph connection test failed", "err", err)
		return false
	}
	logger.Info("Graph connection test successful", "rows", len(rows))
	return true
}

// Close releases the underlying driver resources.
func (c *Client) Close(ctx context.Context) error {
	if c.driver == nil {
		return nil
	}
	return c.driver.Close(ctx)
}

func (c *Client) run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.runner.Run(ctx, query, params)
}

// neo4jRunner implements Runner on the official driver using the managed
// ExecuteQuery path, which handles session and transaction lifecycle.
type neo4jRunner struct {
	driver   neo4j.DriverWithContext
	database string
}

func (r *neo4jRunner) Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		r.driver,
		query,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(r.database),
	)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]any, 0, len(result.Records))
	for _, record := range result.Records {
		row := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = normalizeValue(record.Values[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}
