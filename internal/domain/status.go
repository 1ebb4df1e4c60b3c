package domain

// Status tracks a package through the transformation ladder. Each
// routine consumes packages in one status and advances them to the
// next, so a package's position always records how far it got.
type Status int

const (
	StatusSaved                    Status = 10
	StatusAccessionCreated         Status = 20
	StatusGroupingComponentCreated Status = 30
	StatusTransferComponentCreated Status = 40
	StatusDigitalObjectCreated     Status = 50
	StatusUpdateSent               Status = 60
	StatusAccessionUpdateSent      Status = 70
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "Transfer saved"
	case StatusAccessionCreated:
		return "Accession record created"
	case StatusGroupingComponentCreated:
		return "Grouping component created"
	case StatusTransferComponentCreated:
		return "Transfer component created"
	case StatusDigitalObjectCreated:
		return "Digital object created"
	case StatusUpdateSent:
		return "Updated transfer data sent to workflow system"
	case StatusAccessionUpdateSent:
		return "Updated accession data sent to workflow system"
	default:
		return "Unknown"
	}
}

// InitialStatus returns the status a newly saved package enters the
// ladder with, based on its origin. Non-Aurora packages already have a
// described archival component, so they skip straight to the
// digital-object step.
func InitialStatus(origin string) Status {
	switch origin {
	case OriginDigitization, OriginLegacyDigital:
		return StatusTransferComponentCreated
	default:
		return StatusSaved
	}
}
