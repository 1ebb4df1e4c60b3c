package ports

import (
	"context"
	"errors"

	"archival-transform-service/internal/domain"
)

// ErrNotFound is returned when a package id has no stored record.
var ErrNotFound = errors.New("package not found")

// Port: a boundary for storing and retrieving Package records.
type PackageRepository interface {
	// Persist a new package, assigning its id and timestamps.
	Save(ctx context.Context, pkg *domain.Package) error

	// Fetch one package by id. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*domain.Package, error)

	// Retrieve all stored packages.
	List(ctx context.Context) ([]*domain.Package, error)

	// Retrieve packages sitting in one process status, the selection
	// unit of the transformation routines.
	ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Package, error)

	// Retrieve packages sharing a bag identifier (sibling AIP/DIP pairs).
	ListByIdentifier(ctx context.Context, identifier string) ([]*domain.Package, error)

	// Retrieve packages belonging to one workflow-system accession.
	ListByAccession(ctx context.Context, auroraAccession string) ([]*domain.Package, error)

	// Persist routine progress: process status and remote identifiers.
	Update(ctx context.Context, pkg *domain.Package) error
}
