package services

import (
	"context"
	"fmt"

	"archival-transform-service/internal/domain"
	"archival-transform-service/internal/ports"
)

// Process statuses recorded back on the workflow system's own records.
const (
	workflowTransferAccessioned = 90
	workflowAccessionComplete   = 30
)

// SendTransferUpdates reports completed transformations back to the
// workflow system, one update per transfer record. Packages without a
// workflow transfer URL (non-Aurora origins) advance without a call.
func SendTransferUpdates(
	ctx context.Context,
	repo ports.PackageRepository,
	workflow ports.WorkflowClient,
) (RoutineResult, error) {
	pkgs, err := repo.ListByStatus(ctx, domain.StatusDigitalObjectCreated)
	if err != nil {
		return RoutineResult{}, fmt.Errorf("send transfer updates: list packages: %w", err)
	}

	sent := 0

	for _, pkg := range pkgs {
		if pkg.AuroraTransfer != "" {
			payload := map[string]any{
				"process_status":           workflowTransferAccessioned,
				"archivesspace_identifier": pkg.ArchivesSpaceTransfer,
			}
			if err := workflow.UpdateRecord(ctx, pkg.AuroraTransfer, payload); err != nil {
				return RoutineResult{}, fmt.Errorf("send transfer updates: update %q: %w", pkg.Identifier, err)
			}
			sent++
		}

		pkg.ProcessStatus = domain.StatusUpdateSent
		if err := repo.Update(ctx, pkg); err != nil {
			return RoutineResult{}, fmt.Errorf("send transfer updates: update package %q: %w", pkg.Identifier, err)
		}
	}

	return RoutineResult{
		Processed: len(pkgs),
		Created:   sent,
		Summary:   fmt.Sprintf("%d transfer updates sent", sent),
	}, nil
}

// SendAccessionUpdates reports accession completion back to the
// workflow system.
func SendAccessionUpdates(
	ctx context.Context,
	repo ports.PackageRepository,
	workflow ports.WorkflowClient,
) (RoutineResult, error) {
	pkgs, err := repo.ListByStatus(ctx, domain.StatusUpdateSent)
	if err != nil {
		return RoutineResult{}, fmt.Errorf("send accession updates: list packages: %w", err)
	}

	sent := 0

	for _, pkg := range pkgs {
		if pkg.AuroraAccession != "" {
			payload := map[string]any{
				"process_status":           workflowAccessionComplete,
				"archivesspace_identifier": pkg.ArchivesSpaceAccession,
			}
			if err := workflow.UpdateRecord(ctx, pkg.AuroraAccession, payload); err != nil {
				return RoutineResult{}, fmt.Errorf("send accession updates: update %q: %w", pkg.Identifier, err)
			}
			sent++
		}

		pkg.ProcessStatus = domain.StatusAccessionUpdateSent
		if err := repo.Update(ctx, pkg); err != nil {
			return RoutineResult{}, fmt.Errorf("send accession updates: update package %q: %w", pkg.Identifier, err)
		}
	}

	return RoutineResult{
		Processed: len(pkgs),
		Created:   sent,
		Summary:   fmt.Sprintf("%d accession updates sent", sent),
	}, nil
}
