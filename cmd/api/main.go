package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/cors"

	"tickertag/api/router"
	"tickertag/config"
	"tickertag/db"
	"tickertag/logger"
)

// @title        tickertag API
// @version      1.0
// @description  Classification views, run audit trail, and override intake
// @BasePath     /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(context.Background()); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}

	r := router.New()

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.API.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	port := cfg.API.Port
	if port == 0 {
		port = 8080
	}
	addr := fmt.Sprintf(":%d", port)
	logger.Log.Infof("api listening on %s", addr)
	if err := http.ListenAndServe(addr, c.Handler(r)); err != nil {
		logger.Log.Errorf("api server stopped: %v", err)
		os.Exit(1)
	}
}
