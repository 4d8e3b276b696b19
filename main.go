package main

import (
	"esn-planner/core/logger"
	"esn-planner/core/server"
)

// @title ESN Planner API
// @version 1.0
// @description API de gestion du planning de présence des consultants
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@esn-planner.fr

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
