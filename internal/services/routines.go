package services

import (
	"context"
	"fmt"
	"time"

	"archival-transform-service/internal/domain"
	"archival-transform-service/internal/ports"
	"archival-transform-service/internal/transform"
)

// RoutineResult summarizes one routine invocation.
type RoutineResult struct {
	Processed int
	Created   int
	Summary   string
}

// ProcessAccessions creates an accession record for every saved package
// that does not already have one. Packages belonging to the same
// workflow-system accession share a single record: the first package
// creates it and the URI is propagated to all siblings, so re-running
// the routine never duplicates remote records.
func ProcessAccessions(
	ctx context.Context,
	repo ports.PackageRepository,
	desc ports.DescriptionRepository,
) (RoutineResult, error) {
	pkgs, err := repo.ListByStatus(ctx, domain.StatusSaved)
	if err != nil {
		return RoutineResult{}, fmt.Errorf("process accessions: list packages: %w", err)
	}

	created := 0
	createdByAccession := make(map[string]string)

	for _, pkg := range pkgs {
		if pkg.ArchivesSpaceAccession == "" {
			uri, ok := createdByAccession[pkg.AuroraAccession]
			if !ok || pkg.AuroraAccession == "" {
				id0, id1, err := desc.NextAccessionNumber(ctx)
				if err != nil {
					return RoutineResult{}, fmt.Errorf("process accessions: next accession number: %w", err)
				}

				record, err := transform.MapAccession(pkg, id0, id1, time.Now())
				if err != nil {
					return RoutineResult{}, fmt.Errorf("process accessions: map package %q: %w", pkg.Identifier, err)
				}

				uri, err = desc.Create(ctx, ports.KindAccession, record)
				if err != nil {
					return RoutineResult{}, fmt.Errorf("process accessions: create record for %q: %w", pkg.Identifier, err)
				}

				created++
				if pkg.AuroraAccession != "" {
					createdByAccession[pkg.AuroraAccession] = uri
				}
			}

			pkg.ArchivesSpaceAccession = uri

			if err := propagateAccessionURI(ctx, repo, pkg.AuroraAccession, uri); err != nil {
				return RoutineResult{}, fmt.Errorf("process accessions: %w", err)
			}
		}

		pkg.ProcessStatus = domain.StatusAccessionCreated
		if err := repo.Update(ctx, pkg); err != nil {
			return RoutineResult{}, fmt.Errorf("process accessions: update package %q: %w", pkg.Identifier, err)
		}
	}

	return RoutineResult{
		Processed: len(pkgs),
		Created:   created,
		Summary:   fmt.Sprintf("%d accessions created", created),
	}, nil
}

// ProcessGroupingComponents creates the archival object grouping all
// transfers of an accession, once per accession.
func ProcessGroupingComponents(
	ctx context.Context,
	repo ports.PackageRepository,
	desc ports.DescriptionRepository,
) (RoutineResult, error) {
	pkgs, err := repo.ListByStatus(ctx, domain.StatusAccessionCreated)
	if err != nil {
		return RoutineResult{}, fmt.Errorf("process grouping components: list packages: %w", err)
	}

	created := 0
	createdByAccession := make(map[string]string)

	for _, pkg := range pkgs {
		if pkg.ArchivesSpaceGroup == "" {
			uri, ok := createdByAccession[pkg.AuroraAccession]
			if !ok || pkg.AuroraAccession == "" {
				record, err := transform.MapGroupingComponent(pkg)
				if err != nil {
					return RoutineResult{}, fmt.Errorf("process grouping components: map package %q: %w", pkg.Identifier, err)
				}

				uri, err = desc.Create(ctx, ports.KindComponent, record)
				if err != nil {
					return RoutineResult{}, fmt.Errorf("process grouping components: create record for %q: %w", pkg.Identifier, err)
				}

				created++
				if pkg.AuroraAccession != "" {
					createdByAccession[pkg.AuroraAccession] = uri
				}
			}

			pkg.ArchivesSpaceGroup = uri

			if err := propagateGroupURI(ctx, repo, pkg.AuroraAccession, uri); err != nil {
				return RoutineResult{}, fmt.Errorf("process grouping components: %w", err)
			}
		}

		pkg.ProcessStatus = domain.StatusGroupingComponentCreated
		if err := repo.Update(ctx, pkg); err != nil {
			return RoutineResult{}, fmt.Errorf("process grouping components: update package %q: %w", pkg.Identifier, err)
		}
	}

	return RoutineResult{
		Processed: len(pkgs),
		Created:   created,
		Summary:   fmt.Sprintf("%d grouping components created", created),
	}, nil
}

// ProcessTransferComponents creates the archival object for each
// transfer, filed under its grouping component. Sibling packages with
// the same bag identifier (AIP/DIP pairs) share one component.
func ProcessTransferComponents(
	ctx context.Context,
	repo ports.PackageRepository,
	desc ports.DescriptionRepository,
) (RoutineResult, error) {
	pkgs, err := repo.ListByStatus(ctx, domain.StatusGroupingComponentCreated)
	if err != nil {
		return RoutineResult{}, fmt.Errorf("process transfer components: list packages: %w", err)
	}

	created := 0
	createdByIdentifier := make(map[string]string)

	for _, pkg := range pkgs {
		if pkg.ArchivesSpaceTransfer == "" {
			uri, ok := createdByIdentifier[pkg.Identifier]
			if !ok {
				record, err := transform.MapTransferComponent(pkg, pkg.ArchivesSpaceGroup)
				if err != nil {
					return RoutineResult{}, fmt.Errorf("process transfer components: map package %q: %w", pkg.Identifier, err)
				}

				uri, err = desc.Create(ctx, ports.KindComponent, record)
				if err != nil {
					return RoutineResult{}, fmt.Errorf("process transfer components: create record for %q: %w", pkg.Identifier, err)
				}

				created++
				createdByIdentifier[pkg.Identifier] = uri
			}

			pkg.ArchivesSpaceTransfer = uri

			if err := propagateTransferURI(ctx, repo, pkg.Identifier, uri); err != nil {
				return RoutineResult{}, fmt.Errorf("process transfer components: %w", err)
			}
		}

		pkg.ProcessStatus = domain.StatusTransferComponentCreated
		if err := repo.Update(ctx, pkg); err != nil {
			return RoutineResult{}, fmt.Errorf("process transfer components: update package %q: %w", pkg.Identifier, err)
		}
	}

	return RoutineResult{
		Processed: len(pkgs),
		Created:   created,
		Summary:   fmt.Sprintf("%d transfer components created", created),
	}, nil
}

// ProcessDigitalObjects creates a digital object per package and links
// it as an instance on the package's transfer component.
func ProcessDigitalObjects(
	ctx context.Context,
	repo ports.PackageRepository,
	desc ports.DescriptionRepository,
) (RoutineResult, error) {
	pkgs, err := repo.ListByStatus(ctx, domain.StatusTransferComponentCreated)
	if err != nil {
		return RoutineResult{}, fmt.Errorf("process digital objects: list packages: %w", err)
	}

	created := 0

	for _, pkg := range pkgs {
		if pkg.ArchivesSpaceTransfer == "" {
			return RoutineResult{}, fmt.Errorf(
				"process digital objects: package %q has no transfer component",
				pkg.Identifier,
			)
		}

		record, err := transform.MapDigitalObject(pkg)
		if err != nil {
			return RoutineResult{}, fmt.Errorf("process digital objects: map package %q: %w", pkg.Identifier, err)
		}

		uri, err := desc.Create(ctx, ports.KindDigitalObject, record)
		if err != nil {
			return RoutineResult{}, fmt.Errorf("process digital objects: create record for %q: %w", pkg.Identifier, err)
		}

		pkg.ArchivesSpaceDigitalObject = uri
		created++

		if err := linkInstance(ctx, desc, pkg.ArchivesSpaceTransfer, uri); err != nil {
			return RoutineResult{}, fmt.Errorf("process digital objects: link instance for %q: %w", pkg.Identifier, err)
		}

		pkg.ProcessStatus = domain.StatusDigitalObjectCreated
		if err := repo.Update(ctx, pkg); err != nil {
			return RoutineResult{}, fmt.Errorf("process digital objects: update package %q: %w", pkg.Identifier, err)
		}
	}

	return RoutineResult{
		Processed: len(pkgs),
		Created:   created,
		Summary:   fmt.Sprintf("%d digital objects created", created),
	}, nil
}

// linkInstance appends a digital-object instance to an existing
// archival object.
func linkInstance(ctx context.Context, desc ports.DescriptionRepository, componentURI, digitalObjectURI string) error {
	component, err := desc.Get(ctx, componentURI)
	if err != nil {
		return fmt.Errorf("get component %q: %w", componentURI, err)
	}

	instances, _ := component["instances"].([]any)
	component["instances"] = append(instances, transform.MapDigitalObjectInstance(digitalObjectURI))

	if err := desc.Update(ctx, componentURI, component); err != nil {
		return fmt.Errorf("update component %q: %w", componentURI, err)
	}

	return nil
}

// Sibling propagation keeps the idempotency checks valid across
// routine invocations: once a shared record exists, every package it
// covers carries its URI.

func propagateAccessionURI(ctx context.Context, repo ports.PackageRepository, auroraAccession, uri string) error {
	return propagate(ctx, repo, auroraAccession, func(sibling *domain.Package) bool {
		if sibling.ArchivesSpaceAccession != "" {
			return false
		}
		sibling.ArchivesSpaceAccession = uri
		return true
	})
}

func propagateGroupURI(ctx context.Context, repo ports.PackageRepository, auroraAccession, uri string) error {
	return propagate(ctx, repo, auroraAccession, func(sibling *domain.Package) bool {
		if sibling.ArchivesSpaceGroup != "" {
			return false
		}
		sibling.ArchivesSpaceGroup = uri
		return true
	})
}

func propagate(ctx context.Context, repo ports.PackageRepository, auroraAccession string, apply func(*domain.Package) bool) error {
	if auroraAccession == "" {
		return nil
	}

	siblings, err := repo.ListByAccession(ctx, auroraAccession)
	if err != nil {
		return fmt.Errorf("list siblings of accession %q: %w", auroraAccession, err)
	}

	for _, sibling := range siblings {
		if !apply(sibling) {
			continue
		}
		if err := repo.Update(ctx, sibling); err != nil {
			return fmt.Errorf("update sibling %q: %w", sibling.Identifier, err)
		}
	}

	return nil
}

func propagateTransferURI(ctx context.Context, repo ports.PackageRepository, identifier, uri string) error {
	siblings, err := repo.ListByIdentifier(ctx, identifier)
	if err != nil {
		return fmt.Errorf("list siblings of %q: %w", identifier, err)
	}

	for _, sibling := range siblings {
		if sibling.ArchivesSpaceTransfer != "" {
			continue
		}
		sibling.ArchivesSpaceTransfer = uri
		if err := repo.Update(ctx, sibling); err != nil {
			return fmt.Errorf("update sibling %q: %w", sibling.Identifier, err)
		}
	}

	return nil
}
