package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"archival-transform-service/internal/domain"
)

// Initialize the Postgres database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPackagesQuery := `
	CREATE TABLE IF NOT EXISTS packages (
		id UUID PRIMARY KEY,
		identifier TEXT NOT NULL,
		type TEXT NOT NULL,
		origin TEXT NOT NULL,
		process_status INTEGER NOT NULL,
		storage_uri TEXT NOT NULL DEFAULT '',
		data JSONB NOT NULL DEFAULT '{}'::jsonb,
		aurora_accession TEXT NOT NULL DEFAULT '',
		aurora_transfer TEXT NOT NULL DEFAULT '',
		archivesspace_accession TEXT NOT NULL DEFAULT '',
		archivesspace_group TEXT NOT NULL DEFAULT '',
		archivesspace_transfer TEXT NOT NULL DEFAULT '',
		archivesspace_digital_object TEXT NOT NULL DEFAULT '',
		created TIMESTAMPTZ NOT NULL,
		last_modified TIMESTAMPTZ NOT NULL
	);
	`

	createStatusIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_packages_process_status
	ON packages(process_status);
	`

	createIdentifierIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_packages_identifier
	ON packages(identifier);
	`

	statements := []string{
		createPackagesQuery,
		createStatusIndexQuery,
		createIdentifierIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type PackageSeed struct {
	Identifier  string         `json:"identifier"`
	PackageType string         `json:"package_type"`
	Origin      string         `json:"origin"`
	StorageURI  string         `json:"storage_uri"`
	Data        map[string]any `json:"data"`
}

// Populate the database with package data from a JSON file, for local
// runs against a fresh database.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed packages: read %q: %w", jsonPath, err)
	}

	var data []PackageSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed packages: parse json: %w", err)
	}

	repo := NewPostgresPackageRepository(db)

	for i, item := range data {
		identifier := strings.TrimSpace(item.Identifier)
		if identifier == "" {
			return fmt.Errorf("seed packages: item at index %d: identifier cannot be empty", i+1)
		}

		origin := item.Origin
		if origin == "" {
			origin = domain.OriginAurora
		}

		pkg := &domain.Package{
			Identifier:    identifier,
			Type:          item.PackageType,
			Origin:        origin,
			ProcessStatus: domain.InitialStatus(origin),
			StorageURI:    item.StorageURI,
			Data:          item.Data,
		}
		if pkg.Data != nil {
			pkg.AuroraAccession, _ = pkg.Data["accession"].(string)
			pkg.AuroraTransfer, _ = pkg.Data["url"].(string)
		}

		if err := repo.Save(context.Background(), pkg); err != nil {
			return fmt.Errorf("seed packages: insert identifier=%q: %w", identifier, err)
		}
	}

	return nil
}
