package vendorcomply

import (
	"fmt"
	"time"
)

// Period identifies one reporting period: a calendar year and month.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func (p Period) Validate() error {
	if p.Year < 2000 || p.Year > 2999 {
		return fmt.Errorf("year out of range: %d", p.Year)
	}
	if p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("month out of range: %d", p.Month)
	}
	return nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// ConsultantSnapshot is the assigned consultant captured at submission
// creation time. It is a copy, not a live reference, so it stays valid
// even if the consultant assignment changes later.
type ConsultantSnapshot struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Event kinds emitted by the workflow engine.
const (
	EventDocumentUploaded    = "document_uploaded"
	EventDocumentApproved    = "document_approved"
	EventDocumentRejected    = "document_rejected"
	EventDocumentResubmitted = "document_resubmitted"
	EventSubmissionSubmitted = "submission_submitted"
	EventSubmissionFinalized = "submission_finalized"
)

const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Event is the notification value handed to the dispatcher on every
// state transition. It is fire-and-forget: a failed dispatch never
// rolls back the transition that produced it.
type Event struct {
	Recipient string    `json:"recipient"`
	Kind      string    `json:"kind"`
	Resource  string    `json:"resource"`
	Summary   string    `json:"summary"`
	Priority  string    `json:"priority"`
	Timestamp time.Time `json:"timestamp"`
}

// NotifyChannel is the redis pub/sub channel carrying events for one
// recipient.
func NotifyChannel(recipient string) string {
	return "notify:" + recipient
}
