package transform

import (
	"errors"
	"testing"
	"time"

	"archival-transform-service/internal/domain"
)

func wellFormedPackage() *domain.Package {
	return &domain.Package{
		Identifier:      "3aai127e-ae8c-4f9b-a7e4-b9b1ad0e6c62",
		Type:            domain.TypeAIP,
		Origin:          domain.OriginAurora,
		StorageURI:      "https://storage.example.org/fedora/rest/3aai127e",
		AuroraAccession: "https://aurora.example.org/api/accessions/5/",
		AuroraTransfer:  "https://aurora.example.org/api/transfers/12/",
		Data: map[string]any{
			"url":                   "https://aurora.example.org/api/transfers/12/",
			"accession":             "https://aurora.example.org/api/accessions/5/",
			"resource":              "/repositories/2/resources/1",
			"accession_title":       "Grantee records",
			"accession_description": "Records documenting grantee activity",
			"metadata": map[string]any{
				"title":        "Transfer of grantee records",
				"date_start":   "2021-01-01",
				"date_end":     "2021-06-30",
				"language":     "eng",
				"payload_oxum": "49123.22",
			},
		},
	}
}

func TestMapAccession(t *testing.T) {
	pkg := wellFormedPackage()
	accessionDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	acc, err := MapAccession(pkg, "2026", "003", accessionDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if acc.Title != "Grantee records" {
		t.Errorf("title = %q, want %q", acc.Title, "Grantee records")
	}
	if acc.ID0 != "2026" || acc.ID1 != "003" {
		t.Errorf("accession number = %s-%s, want 2026-003", acc.ID0, acc.ID1)
	}
	if acc.AccessionDate != "2026-08-01" {
		t.Errorf("accession_date = %q, want 2026-08-01", acc.AccessionDate)
	}
	if acc.JSONModelType != "accession" {
		t.Errorf("jsonmodel_type = %q, want accession", acc.JSONModelType)
	}

	if len(acc.Dates) != 1 {
		t.Fatalf("expected 1 date, got %d", len(acc.Dates))
	}
	if acc.Dates[0].Begin != "2021-01-01" || acc.Dates[0].End != "2021-06-30" {
		t.Errorf("date range = %s..%s", acc.Dates[0].Begin, acc.Dates[0].End)
	}
	if acc.Dates[0].DateType != "inclusive" {
		t.Errorf("date_type = %q, want inclusive", acc.Dates[0].DateType)
	}

	if len(acc.Extents) != 2 {
		t.Fatalf("expected 2 extents, got %d", len(acc.Extents))
	}
	if acc.Extents[0].Number != "49123" || acc.Extents[0].ExtentType != "bytes" {
		t.Errorf("bytes extent = %+v", acc.Extents[0])
	}
	if acc.Extents[1].Number != "22" || acc.Extents[1].ExtentType != "files" {
		t.Errorf("files extent = %+v", acc.Extents[1])
	}

	if len(acc.ExternalIDs) != 1 || acc.ExternalIDs[0].Source != "aurora" {
		t.Errorf("external ids = %+v", acc.ExternalIDs)
	}
}

func TestMapAccessionMissingTitle(t *testing.T) {
	pkg := wellFormedPackage()
	delete(pkg.Data, "accession_title")
	delete(pkg.Data["metadata"].(map[string]any), "title")

	_, err := MapAccession(pkg, "2026", "001", time.Now())

	var mapErr *MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("expected *MappingError, got %v", err)
	}
	if mapErr.Field != "accession_title" {
		t.Errorf("field = %q, want accession_title", mapErr.Field)
	}
}

func TestMapAccessionMalformedOxum(t *testing.T) {
	pkg := wellFormedPackage()
	pkg.Data["metadata"].(map[string]any)["payload_oxum"] = "49123"

	_, err := MapAccession(pkg, "2026", "001", time.Now())

	var mapErr *MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("expected *MappingError, got %v", err)
	}
}

func TestMapGroupingComponent(t *testing.T) {
	pkg := wellFormedPackage()

	obj, err := MapGroupingComponent(pkg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if obj.Level != "recordgrp" {
		t.Errorf("level = %q, want recordgrp", obj.Level)
	}
	if obj.Resource.Ref != "/repositories/2/resources/1" {
		t.Errorf("resource = %q", obj.Resource.Ref)
	}
	if obj.Parent != nil {
		t.Errorf("grouping component should have no parent, got %v", obj.Parent)
	}
}

func TestMapGroupingComponentMissingResource(t *testing.T) {
	pkg := wellFormedPackage()
	delete(pkg.Data, "resource")

	_, err := MapGroupingComponent(pkg)

	var mapErr *MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("expected *MappingError, got %v", err)
	}
	if mapErr.Field != "resource" {
		t.Errorf("field = %q, want resource", mapErr.Field)
	}
}

func TestMapTransferComponent(t *testing.T) {
	pkg := wellFormedPackage()

	obj, err := MapTransferComponent(pkg, "/repositories/2/archival_objects/7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if obj.Level != "file" {
		t.Errorf("level = %q, want file", obj.Level)
	}
	if obj.Parent == nil || obj.Parent.Ref != "/repositories/2/archival_objects/7" {
		t.Errorf("parent = %v", obj.Parent)
	}
	if len(obj.LangMaterials) != 1 || obj.LangMaterials[0].Language != "eng" {
		t.Errorf("lang materials = %+v", obj.LangMaterials)
	}
	if len(obj.ExternalIDs) != 1 || obj.ExternalIDs[0].ExternalID != pkg.AuroraTransfer {
		t.Errorf("external ids = %+v", obj.ExternalIDs)
	}
}

func TestMapTransferComponentMissingParent(t *testing.T) {
	pkg := wellFormedPackage()

	_, err := MapTransferComponent(pkg, "")

	var mapErr *MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("expected *MappingError, got %v", err)
	}
}

func TestMapDigitalObject(t *testing.T) {
	pkg := wellFormedPackage()

	obj, err := MapDigitalObject(pkg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if obj.DigitalObjectID != pkg.Identifier {
		t.Errorf("digital_object_id = %q, want %q", obj.DigitalObjectID, pkg.Identifier)
	}
	if len(obj.FileVersions) != 1 {
		t.Fatalf("expected 1 file version, got %d", len(obj.FileVersions))
	}
	if obj.FileVersions[0].UseStatement != "master" {
		t.Errorf("use statement = %q, want master (aip)", obj.FileVersions[0].UseStatement)
	}

	pkg.Type = domain.TypeDIP
	obj, err = MapDigitalObject(pkg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj.FileVersions[0].UseStatement != "service-edited" {
		t.Errorf("use statement = %q, want service-edited (dip)", obj.FileVersions[0].UseStatement)
	}
}

func TestMapDigitalObjectMissingStorageURI(t *testing.T) {
	pkg := wellFormedPackage()
	pkg.StorageURI = ""

	_, err := MapDigitalObject(pkg)

	var mapErr *MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("expected *MappingError, got %v", err)
	}
	if mapErr.Field != "storage_uri" {
		t.Errorf("field = %q, want storage_uri", mapErr.Field)
	}
}

func TestMapDatesSingle(t *testing.T) {
	pkg := wellFormedPackage()
	pkg.Data["metadata"].(map[string]any)["date_end"] = "2021-01-01"

	acc, err := MapAccession(pkg, "2026", "001", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if acc.Dates[0].DateType != "single" {
		t.Errorf("date_type = %q, want single", acc.Dates[0].DateType)
	}
	if acc.Dates[0].End != "" {
		t.Errorf("single date should have no end, got %q", acc.Dates[0].End)
	}
}
