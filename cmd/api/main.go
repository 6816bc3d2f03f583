package main

import (
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/pkg/logger"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/server"
)

// @title University Work Analyzer API
// @version 1.0
// @description API for tracking university subjects, assignments and study notes

// @contact.name API Support
// @contact.email support@work-analyzer.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	// Run blocks until a shutdown signal is received
	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server execution failed or shutdown encountered errors")
	}

	logger.Info().Msg("Application finished gracefully.")
}
