package transform

import (
	"fmt"
	"strings"
	"time"

	"archival-transform-service/internal/domain"
)

// Pure field mappers from stored packages to target record schemas.
// Each mapper is deterministic and side-effect free; anything the
// source payload cannot supply fails with *MappingError.

// MapAccession builds an accession record from a package payload. The
// accession number and date come from the caller so the mapping itself
// stays deterministic.
func MapAccession(pkg *domain.Package, id0, id1 string, accessionDate time.Time) (*Accession, error) {
	title := pkg.DataString("accession_title")
	if title == "" {
		title = metadataString(pkg, "title")
	}
	if title == "" {
		return nil, missingField("accession_title")
	}

	dates, err := mapDates(pkg)
	if err != nil {
		return nil, err
	}

	extents, err := mapExtents(pkg)
	if err != nil {
		return nil, err
	}

	acc := &Accession{
		Title:              title,
		Extents:            extents,
		Dates:              dates,
		ID0:                id0,
		ID1:                id1,
		AccessionDate:      accessionDate.Format("2006-01-02"),
		ContentDescription: pkg.DataString("accession_description"),
		Publish:            false,
		JSONModelType:      "accession",
	}

	if u := pkg.AuroraAccession; u != "" {
		acc.ExternalIDs = []ExternalID{{ExternalID: u, Source: "aurora"}}
	}

	return acc, nil
}

// MapGroupingComponent builds the archival object grouping all
// transfers of one accession.
func MapGroupingComponent(pkg *domain.Package) (*ArchivalObject, error) {
	title := pkg.DataString("accession_title")
	if title == "" {
		return nil, missingField("accession_title")
	}

	resource := pkg.DataString("resource")
	if resource == "" {
		return nil, missingField("resource")
	}

	dates, err := mapDates(pkg)
	if err != nil {
		return nil, err
	}

	obj := &ArchivalObject{
		Title:         title,
		Level:         "recordgrp",
		Dates:         dates,
		Resource:      Ref{Ref: resource},
		Publish:       false,
		JSONModelType: "archival_object",
	}

	if u := pkg.AuroraAccession; u != "" {
		obj.ExternalIDs = []ExternalID{{ExternalID: u, Source: "aurora"}}
	}

	return obj, nil
}

// MapTransferComponent builds the archival object for a single
// transfer, filed under its grouping component.
func MapTransferComponent(pkg *domain.Package, parentURI string) (*ArchivalObject, error) {
	title := metadataString(pkg, "title")
	if title == "" {
		return nil, missingField("metadata.title")
	}

	resource := pkg.DataString("resource")
	if resource == "" {
		return nil, missingField("resource")
	}

	if parentURI == "" {
		return nil, missingField("parent")
	}

	dates, err := mapDates(pkg)
	if err != nil {
		return nil, err
	}

	extents, err := mapExtents(pkg)
	if err != nil {
		return nil, err
	}

	obj := &ArchivalObject{
		Title:         title,
		Level:         "file",
		Dates:         dates,
		Extents:       extents,
		Resource:      Ref{Ref: resource},
		Parent:        &Ref{Ref: parentURI},
		Publish:       false,
		JSONModelType: "archival_object",
	}

	if lang := metadataString(pkg, "language"); lang != "" {
		obj.LangMaterials = []LangMaterial{{Language: lang}}
	}

	if u := pkg.AuroraTransfer; u != "" {
		obj.ExternalIDs = []ExternalID{{ExternalID: u, Source: "aurora"}}
	}

	return obj, nil
}

// MapDigitalObject builds the digital object pointing at the package's
// stored bits. The use statement depends on the package type.
func MapDigitalObject(pkg *domain.Package) (*DigitalObject, error) {
	title := metadataString(pkg, "title")
	if title == "" {
		return nil, missingField("metadata.title")
	}

	if pkg.StorageURI == "" {
		return nil, missingField("storage_uri")
	}

	return &DigitalObject{
		Title:           title,
		DigitalObjectID: pkg.Identifier,
		FileVersions: []FileVersion{{
			FileURI:      pkg.StorageURI,
			UseStatement: pkg.UseStatement(),
		}},
		Publish:       false,
		JSONModelType: "digital_object",
	}, nil
}

// MapDigitalObjectInstance builds the instance link appended to a
// transfer component once its digital object exists.
func MapDigitalObjectInstance(digitalObjectURI string) Instance {
	return Instance{
		InstanceType:  "digital_object",
		JSONModelType: "instance",
		DigitalObject: Ref{Ref: digitalObjectURI},
	}
}

func metadataString(pkg *domain.Package, key string) string {
	m := pkg.Metadata()
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func mapDates(pkg *domain.Package) ([]Date, error) {
	begin := metadataString(pkg, "date_start")
	if begin == "" {
		return nil, missingField("metadata.date_start")
	}

	end := metadataString(pkg, "date_end")

	d := Date{
		Begin:    begin,
		End:      end,
		DateType: "inclusive",
		Label:    "creation",
	}
	if end == "" || end == begin {
		d.DateType = "single"
		d.End = ""
	}

	return []Date{d}, nil
}

// mapExtents derives bytes and file-count extents from the payload
// oxum, which arrives as "bytes.files".
func mapExtents(pkg *domain.Package) ([]Extent, error) {
	oxum := metadataString(pkg, "payload_oxum")
	if oxum == "" {
		return nil, missingField("metadata.payload_oxum")
	}

	parts := strings.Split(oxum, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, &MappingError{
			Field:  "metadata.payload_oxum",
			Reason: fmt.Sprintf("expected bytes.files, got %q", oxum),
		}
	}

	return []Extent{
		{Number: parts[0], ExtentType: "bytes", Portion: "whole"},
		{Number: parts[1], ExtentType: "files", Portion: "whole"},
	}, nil
}
