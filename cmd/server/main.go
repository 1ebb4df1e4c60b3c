package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"archival-transform-service/internal/adapters/archivesspace"
	"archival-transform-service/internal/adapters/aurora"
	"archival-transform-service/internal/adapters/repositories"
	"archival-transform-service/internal/api"
	"archival-transform-service/internal/config"
	"archival-transform-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, ArchivesSpace, Aurora) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	port := config.Get("PORT", "8080")

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := repositories.InitSchema(conn); err != nil {
		log.Fatal(err)
	}

	description, err := archivesspace.NewClient(
		os.Getenv("ARCHIVESSPACE_BASEURL"),
		os.Getenv("ARCHIVESSPACE_USERNAME"),
		os.Getenv("ARCHIVESSPACE_PASSWORD"),
		config.Get("ARCHIVESSPACE_REPO_ID", "2"),
	)
	if err != nil {
		log.Fatal(err)
	}

	workflow, err := aurora.NewClient(
		os.Getenv("AURORA_BASEURL"),
		os.Getenv("AURORA_USERNAME"),
		os.Getenv("AURORA_PASSWORD"),
	)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewPostgresPackageRepository(conn)
	router := api.NewRouter(repo, description, workflow, conn)

	// Write timeout covers routines that fan out to external systems.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
