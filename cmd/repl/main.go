package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dgc-tools/metaquery/internal/app"
	"github.com/dgc-tools/metaquery/internal/util"
	"github.com/dgc-tools/metaquery/pkg/logger"
	"github.com/dgc-tools/metaquery/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := app.NewPipeline(ctx)
	if err != nil {
		logger.Fatal("Failed to assemble query pipeline", "err", err)
	}
	defer func() {
		if err := pipeline.Close(context.Background()); err != nil {
			logger.Error("Failed to close graph connection", "err", err)
		}
	}()

	fmt.Println("Ask questions about the metadata graph in plain language.")
	fmt.Println("Commands: 'schema' prints the graph schema, 'quit' exits.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "q":
			return
		case "schema":
			schema, err := pipeline.Query.GetSchemaInfo(ctx)
			if err != nil {
				fmt.Printf("Could not load schema: %s\n", err)
				continue
			}
			fmt.Println(schema)
			continue
		}

		outcome := pipeline.Query.Query(ctx, line)
		if outcome.Error != "" {
			fmt.Println(outcome.Error)
			continue
		}

		fmt.Printf("\n%s\n", outcome.Answer)
		fmt.Printf("\nGenerated Cypher:\n%s\n", outcome.CypherQuery)

		if debug && len(outcome.QueryResults) > 0 {
			rows, err := json.MarshalIndent(outcome.QueryResults, "", "  ")
			if err == nil {
				fmt.Printf("\nRaw results:\n%s\n", rows)
			}
		}

		if ctx.Err() != nil {
			return
		}
	}
}
