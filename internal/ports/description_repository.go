package ports

import "context"

// RecordKind selects the target record type in the archival-description
// system.
type RecordKind string

const (
	KindAccession     RecordKind = "accession"
	KindComponent     RecordKind = "component"
	KindDigitalObject RecordKind = "digital object"
)

// Port: a boundary for creating and updating records in the
// archival-description system. Non-2xx responses surface as *RemoteError;
// failures are terminal, nothing is retried.
type DescriptionRepository interface {
	// Create a record of the given kind and return its URI.
	Create(ctx context.Context, kind RecordKind, record any) (string, error)

	// Fetch a record by URI as a raw JSON object.
	Get(ctx context.Context, uri string) (map[string]any, error)

	// Replace a record at the given URI.
	Update(ctx context.Context, uri string, record any) error

	// Return the next free accession number as a (year, sequence) pair.
	NextAccessionNumber(ctx context.Context) (id0, id1 string, err error)
}
