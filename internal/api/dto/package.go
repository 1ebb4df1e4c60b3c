package dto

import "time"

// CreatePackageRequest is the payload the workflow system posts for
// each new package. Fields beyond these are carried opaquely in Data.
type CreatePackageRequest struct {
	Identifier       string         `json:"identifier"`
	PackageType      string         `json:"package_type"`
	Origin           string         `json:"origin"`
	StorageURI       string         `json:"storage_uri"`
	ArchivesSpaceURI string         `json:"archivesspace_uri"`
	Data             map[string]any `json:"data"`
}

type PackageResponse struct {
	ID                   string         `json:"id"`
	Identifier           string         `json:"identifier"`
	PackageType          string         `json:"package_type"`
	Origin               string         `json:"origin"`
	ProcessStatus        int            `json:"process_status"`
	ProcessStatusDisplay string         `json:"process_status_display"`
	StorageURI           string         `json:"storage_uri,omitempty"`
	Data                 map[string]any `json:"data"`

	AuroraAccession string `json:"aurora_accession,omitempty"`
	AuroraTransfer  string `json:"aurora_transfer,omitempty"`

	ArchivesSpaceAccession     string `json:"archivesspace_accession,omitempty"`
	ArchivesSpaceGroup         string `json:"archivesspace_group,omitempty"`
	ArchivesSpaceTransfer      string `json:"archivesspace_transfer,omitempty"`
	ArchivesSpaceDigitalObject string `json:"archivesspace_digital_object,omitempty"`

	Created      time.Time `json:"created"`
	LastModified time.Time `json:"last_modified"`
}

type ListPackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}
