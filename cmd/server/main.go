package main

import (
	"github.com/dgc-tools/metaquery/internal/server"
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

	server.Init()
}
