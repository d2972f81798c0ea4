package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/csg33k/employee-intake/internal/adapters/filestore"
	sqliteadapter "github.com/csg33k/employee-intake/internal/adapters/sqlite"
	"github.com/csg33k/employee-intake/internal/config"
	"github.com/csg33k/employee-intake/internal/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	repo, err := sqliteadapter.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer repo.Close()

	resumes, err := filestore.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare uploads: %v", err)
	}

	h := handlers.New(repo, resumes, logger)

	logger.Info("employee intake running", "addr", "http://localhost:"+cfg.Port)
	logger.Info("storage", "db", cfg.DBPath, "uploads", cfg.UploadDir)
	if err := http.ListenAndServe(":"+cfg.Port, h.Routes(cfg.Limiter)); err != nil {
		log.Fatal(err)
	}
}
