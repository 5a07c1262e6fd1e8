package persist

import "fmt"

type Status int

const (
	StatusSuccess Status = iota + 1
	StatusCancelled
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusCancelled:
		return "CANCELLED"
	case StatusFailure:
		return "FAILURE"
	default:
		return "UNKNOWN"
	}
}

// Tiers.
const (
	TierRemembered = 1
	TierPicker     = 2
	TierDownload   = 3
)

// Outcome is the single result of Selector.Save.
//
// Tier and Location are set for Success only. Reason is set for Failure.
// AuxiliaryRan and AuxiliaryErr describe the post-success export hook and
// never change Status.
type Outcome struct {
	Status   Status
	Tier     int
	Location string
	Reason   string

	AuxiliaryRan bool
	AuxiliaryErr error
}

func (o Outcome) String() string {
	switch o.Status {
	case StatusSuccess:
		return fmt.Sprintf("SUCCESS(tier:%d)", o.Tier)
	case StatusFailure:
		return fmt.Sprintf("FAILURE(%s)", o.Reason)
	default:
		return o.Status.String()
	}
}
