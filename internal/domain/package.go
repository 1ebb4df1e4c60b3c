package domain

import "time"

// Package origins. Aurora packages walk the full transformation ladder;
// digitization and legacy digital packages arrive with an existing
// archival component and enter the ladder partway through.
const (
	OriginAurora        = "aurora"
	OriginDigitization  = "digitization"
	OriginLegacyDigital = "legacy_digital"
)

// Package types as assigned by the preservation system.
const (
	TypeAIP = "aip"
	TypeDIP = "dip"
)

// Represents a stored unit of archival metadata submitted by the
// workflow system. The raw payload is kept opaque in Data; the
// surrounding fields track where the package sits in the transformation
// ladder and which remote records it produced.
type Package struct {
	ID            string
	Identifier    string
	Type          string
	Origin        string
	ProcessStatus Status
	StorageURI    string
	Data          map[string]any

	AuroraAccession string
	AuroraTransfer  string

	ArchivesSpaceAccession     string
	ArchivesSpaceGroup         string
	ArchivesSpaceTransfer      string
	ArchivesSpaceDigitalObject string

	Created      time.Time
	LastModified time.Time
}

// UseStatement returns the file-version use statement for digital
// objects derived from this package. AIPs are preservation masters;
// everything else is an edited service copy.
func (p *Package) UseStatement() string {
	if p.Type == TypeAIP {
		return "master"
	}
	return "service-edited"
}

// Metadata returns the nested descriptive metadata block of the stored
// payload, or nil when absent.
func (p *Package) Metadata() map[string]any {
	if p.Data == nil {
		return nil
	}
	m, _ := p.Data["metadata"].(map[string]any)
	return m
}

// DataString returns a top-level string field of the stored payload.
func (p *Package) DataString(key string) string {
	if p.Data == nil {
		return ""
	}
	s, _ := p.Data[key].(string)
	return s
}
