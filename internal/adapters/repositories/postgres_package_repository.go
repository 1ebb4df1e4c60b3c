package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"archival-transform-service/internal/domain"
	"archival-transform-service/internal/platform/obs"
	"archival-transform-service/internal/ports"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the PackageRepository port.
type PostgresPackageRepository struct{ DB *sql.DB }

func NewPostgresPackageRepository(db *sql.DB) *PostgresPackageRepository {
	return &PostgresPackageRepository{DB: db}
}

const packageColumns = `
	id,
	identifier,
	type,
	origin,
	process_status,
	storage_uri,
	data,
	aurora_accession,
	aurora_transfer,
	archivesspace_accession,
	archivesspace_group,
	archivesspace_transfer,
	archivesspace_digital_object,
	created,
	last_modified`

// Persist a new package, assigning its id and timestamps.
func (s *PostgresPackageRepository) Save(ctx context.Context, pkg *domain.Package) (err error) {
	defer obs.Time(ctx, "packages.Save")(&err)

	if s.DB == nil {
		return errors.New("postgres package repository: DB is nil")
	}

	data, err := json.Marshal(pkg.Data)
	if err != nil {
		return fmt.Errorf("save package: marshal data: %w", err)
	}

	now := time.Now().UTC()
	pkg.ID = uuid.NewString()
	pkg.Created = now
	pkg.LastModified = now

	query := `
	INSERT INTO packages (
		id,
		identifier,
		type,
		origin,
		process_status,
		storage_uri,
		data,
		aurora_accession,
		aurora_transfer,
		archivesspace_accession,
		archivesspace_group,
		archivesspace_transfer,
		archivesspace_digital_object,
		created,
		last_modified
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = s.DB.ExecContext(ctx, query,
		pkg.ID,
		pkg.Identifier,
		pkg.Type,
		pkg.Origin,
		int(pkg.ProcessStatus),
		pkg.StorageURI,
		data,
		pkg.AuroraAccession,
		pkg.AuroraTransfer,
		pkg.ArchivesSpaceAccession,
		pkg.ArchivesSpaceGroup,
		pkg.ArchivesSpaceTransfer,
		pkg.ArchivesSpaceDigitalObject,
		pkg.Created,
		pkg.LastModified,
	)
	if err != nil {
		return fmt.Errorf("save package identifier=%q: %w", pkg.Identifier, err)
	}

	return nil
}

// Fetch one package by id. Returns ports.ErrNotFound when absent.
func (s *PostgresPackageRepository) Get(ctx context.Context, id string) (*domain.Package, error) {
	if s.DB == nil {
		return nil, errors.New("postgres package repository: DB is nil")
	}

	query := `SELECT` + packageColumns + ` FROM packages WHERE id = $1;`

	pkg, err := scanPackage(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get package id=%q: %w", id, err)
	}

	return pkg, nil
}

// Retrieve all packages, newest first.
func (s *PostgresPackageRepository) List(ctx context.Context) ([]*domain.Package, error) {
	query := `SELECT` + packageColumns + ` FROM packages ORDER BY created DESC;`
	return s.queryPackages(ctx, "list packages", query)
}

// Retrieve packages sitting in one process status.
func (s *PostgresPackageRepository) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Package, error) {
	query := `SELECT` + packageColumns + ` FROM packages WHERE process_status = $1 ORDER BY created;`
	return s.queryPackages(ctx, "list packages by status", query, int(status))
}

// Retrieve packages sharing a bag identifier.
func (s *PostgresPackageRepository) ListByIdentifier(ctx context.Context, identifier string) ([]*domain.Package, error) {
	query := `SELECT` + packageColumns + ` FROM packages WHERE identifier = $1 ORDER BY created;`
	return s.queryPackages(ctx, "list packages by identifier", query, identifier)
}

// Retrieve packages belonging to one workflow-system accession.
func (s *PostgresPackageRepository) ListByAccession(ctx context.Context, auroraAccession string) ([]*domain.Package, error) {
	query := `SELECT` + packageColumns + ` FROM packages WHERE aurora_accession = $1 ORDER BY created;`
	return s.queryPackages(ctx, "list packages by accession", query, auroraAccession)
}

// Persist routine progress on an existing package.
func (s *PostgresPackageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	if s.DB == nil {
		return errors.New("postgres package repository: DB is nil")
	}

	data, err := json.Marshal(pkg.Data)
	if err != nil {
		return fmt.Errorf("update package: marshal data: %w", err)
	}

	pkg.LastModified = time.Now().UTC()

	query := `
	UPDATE packages SET
		process_status = $2,
		data = $3,
		aurora_accession = $4,
		aurora_transfer = $5,
		archivesspace_accession = $6,
		archivesspace_group = $7,
		archivesspace_transfer = $8,
		archivesspace_digital_object = $9,
		last_modified = $10
	WHERE id = $1;
	`
	res, err := s.DB.ExecContext(ctx, query,
		pkg.ID,
		int(pkg.ProcessStatus),
		data,
		pkg.AuroraAccession,
		pkg.AuroraTransfer,
		pkg.ArchivesSpaceAccession,
		pkg.ArchivesSpaceGroup,
		pkg.ArchivesSpaceTransfer,
		pkg.ArchivesSpaceDigitalObject,
		pkg.LastModified,
	)
	if err != nil {
		return fmt.Errorf("update package id=%q: %w", pkg.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update package id=%q: rows affected: %w", pkg.ID, err)
	}
	if affected == 0 {
		return ports.ErrNotFound
	}

	return nil
}

func (s *PostgresPackageRepository) queryPackages(ctx context.Context, op, query string, args ...any) (_ []*domain.Package, err error) {
	defer obs.Time(ctx, "packages."+op)(&err)

	if s.DB == nil {
		return nil, errors.New("postgres package repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query packages table: %w", op, err)
	}
	defer rows.Close()

	packages := make([]*domain.Package, 0, 16)
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: row iteration: %w", op, err)
	}

	return packages, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPackage(row rowScanner) (*domain.Package, error) {
	var pkg domain.Package
	var status int
	var data []byte

	err := row.Scan(
		&pkg.ID,
		&pkg.Identifier,
		&pkg.Type,
		&pkg.Origin,
		&status,
		&pkg.StorageURI,
		&data,
		&pkg.AuroraAccession,
		&pkg.AuroraTransfer,
		&pkg.ArchivesSpaceAccession,
		&pkg.ArchivesSpaceGroup,
		&pkg.ArchivesSpaceTransfer,
		&pkg.ArchivesSpaceDigitalObject,
		&pkg.Created,
		&pkg.LastModified,
	)
	if err != nil {
		return nil, err
	}

	pkg.ProcessStatus = domain.Status(status)

	if len(data) > 0 {
		if err := json.Unmarshal(data, &pkg.Data); err != nil {
			return nil, fmt.Errorf("unmarshal data column: %w", err)
		}
	}

	return &pkg, nil
}
