package main

import (
	"roamalto/config"
	"roamalto/di"
	"roamalto/shared/logger"
)

// @title Roamalto Marketing API
// @version 1.0
// @description Marketing backend for the Roamalto travel agency: lead capture, analytics ingestion, package catalog and booking workflow.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
