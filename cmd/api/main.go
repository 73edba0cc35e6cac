package main

import (
	"os"

	"github.com/derin/notehub/internal/pkg/logger"
	"github.com/derin/notehub/internal/server"
)

// @title NoteHub API
// @version 1.0
// @description Student notes platform with a department/semester/subject/unit hierarchy, note uploads with thumbnails and collaborative live notes

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for the admin management endpoints

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
