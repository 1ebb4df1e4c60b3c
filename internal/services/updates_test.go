package services

import (
	"context"
	"testing"

	"archival-transform-service/internal/adapters/aurora"
	"archival-transform-service/internal/adapters/repositories"
	"archival-transform-service/internal/domain"
)

func TestSendTransferUpdates(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryPackageRepository()
	workflow := aurora.NewMockClient()

	pkg := savedPackage("bag-1")
	pkg.ProcessStatus = domain.StatusDigitalObjectCreated
	pkg.ArchivesSpaceTransfer = "/repositories/2/archival_objects/7"
	if err := repo.Save(ctx, pkg); err != nil {
		t.Fatalf("save: %v", err)
	}

	result, err := SendTransferUpdates(ctx, repo, workflow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Created != 1 {
		t.Errorf("sent = %d, want 1", result.Created)
	}
	if len(workflow.Updates) != 1 {
		t.Fatalf("workflow updates = %d, want 1", len(workflow.Updates))
	}

	update := workflow.Updates[0]
	if update.URL != pkg.AuroraTransfer {
		t.Errorf("update url = %q, want %q", update.URL, pkg.AuroraTransfer)
	}
	if update.Payload["process_status"] != workflowTransferAccessioned {
		t.Errorf("process_status = %v, want %d", update.Payload["process_status"], workflowTransferAccessioned)
	}
	if update.Payload["archivesspace_identifier"] != "/repositories/2/archival_objects/7" {
		t.Errorf("archivesspace_identifier = %v", update.Payload["archivesspace_identifier"])
	}

	got, err := repo.Get(ctx, pkg.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ProcessStatus != domain.StatusUpdateSent {
		t.Errorf("status = %v, want %v", got.ProcessStatus, domain.StatusUpdateSent)
	}
}

func TestSendTransferUpdatesSkipsNonAuroraPackages(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryPackageRepository()
	workflow := aurora.NewMockClient()

	pkg := savedPackage("bag-1")
	pkg.Origin = domain.OriginDigitization
	pkg.ProcessStatus = domain.StatusDigitalObjectCreated
	pkg.AuroraTransfer = ""
	pkg.AuroraAccession = ""
	if err := repo.Save(ctx, pkg); err != nil {
		t.Fatalf("save: %v", err)
	}

	result, err := SendTransferUpdates(ctx, repo, workflow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Created != 0 {
		t.Errorf("sent = %d, want 0", result.Created)
	}
	if len(workflow.Updates) != 0 {
		t.Errorf("workflow updates = %d, want 0", len(workflow.Updates))
	}

	got, err := repo.Get(ctx, pkg.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ProcessStatus != domain.StatusUpdateSent {
		t.Errorf("status = %v, want %v (advances without a call)", got.ProcessStatus, domain.StatusUpdateSent)
	}
}

func TestSendAccessionUpdates(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryPackageRepository()
	workflow := aurora.NewMockClient()

	pkg := savedPackage("bag-1")
	pkg.ProcessStatus = domain.StatusUpdateSent
	pkg.ArchivesSpaceAccession = "/repositories/2/accessions/3"
	if err := repo.Save(ctx, pkg); err != nil {
		t.Fatalf("save: %v", err)
	}

	result, err := SendAccessionUpdates(ctx, repo, workflow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Created != 1 {
		t.Errorf("sent = %d, want 1", result.Created)
	}

	update := workflow.Updates[0]
	if update.URL != pkg.AuroraAccession {
		t.Errorf("update url = %q, want %q", update.URL, pkg.AuroraAccession)
	}
	if update.Payload["process_status"] != workflowAccessionComplete {
		t.Errorf("process_status = %v, want %d", update.Payload["process_status"], workflowAccessionComplete)
	}

	got, err := repo.Get(ctx, pkg.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ProcessStatus != domain.StatusAccessionUpdateSent {
		t.Errorf("status = %v, want %v", got.ProcessStatus, domain.StatusAccessionUpdateSent)
	}
}
