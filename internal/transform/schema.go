package transform

// Target record schemas for the archival-description system. Field
// names follow its JSONModel types; only the fields this service
// populates are declared.

type Ref struct {
	Ref string `json:"ref"`
}

type ExternalID struct {
	ExternalID string `json:"external_id"`
	Source     string `json:"source"`
}

type Date struct {
	Begin      string `json:"begin"`
	End        string `json:"end,omitempty"`
	DateType   string `json:"date_type"`
	Label      string `json:"label"`
	Expression string `json:"expression,omitempty"`
}

type Extent struct {
	Number     string `json:"number"`
	ExtentType string `json:"extent_type"`
	Portion    string `json:"portion"`
}

type LangMaterial struct {
	Language string `json:"language"`
}

type Accession struct {
	Title              string       `json:"title"`
	ExternalIDs        []ExternalID `json:"external_ids,omitempty"`
	Extents            []Extent     `json:"extents"`
	Dates              []Date       `json:"dates"`
	ID0                string       `json:"id_0"`
	ID1                string       `json:"id_1"`
	AccessionDate      string       `json:"accession_date"`
	ContentDescription string       `json:"content_description,omitempty"`
	Publish            bool         `json:"publish"`
	JSONModelType      string       `json:"jsonmodel_type"`
}

type ArchivalObject struct {
	Title         string         `json:"title"`
	Level         string         `json:"level"`
	ExternalIDs   []ExternalID   `json:"external_ids,omitempty"`
	Dates         []Date         `json:"dates,omitempty"`
	Extents       []Extent       `json:"extents,omitempty"`
	LangMaterials []LangMaterial `json:"lang_materials,omitempty"`
	Resource      Ref            `json:"resource"`
	Parent        *Ref           `json:"parent,omitempty"`
	Publish       bool           `json:"publish"`
	JSONModelType string         `json:"jsonmodel_type"`
}

type FileVersion struct {
	FileURI      string `json:"file_uri"`
	UseStatement string `json:"use_statement"`
}

type DigitalObject struct {
	Title           string        `json:"title"`
	DigitalObjectID string        `json:"digital_object_id"`
	FileVersions    []FileVersion `json:"file_versions"`
	Publish         bool          `json:"publish"`
	JSONModelType   string        `json:"jsonmodel_type"`
}

// Instance links a digital object into an existing archival object.
type Instance struct {
	InstanceType  string `json:"instance_type"`
	JSONModelType string `json:"jsonmodel_type"`
	DigitalObject Ref    `json:"digital_object"`
}
