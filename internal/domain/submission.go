package domain

import (
	"time"

	"github.com/regulaworks/vendorcomply"
)

// RejectionRecord tracks the provenance of one rejection: which type it
// applies to and whether a resubmission has answered it. At most one
// open (unresolved) rejection exists per document type per submission.
type RejectionRecord struct {
	DocumentType  DocumentType `json:"documentType"`
	Reason        string       `json:"reason"`
	RejectedBy    string       `json:"rejectedBy"`
	RejectedAt    time.Time    `json:"rejectedAt"`
	Resubmitted   bool         `json:"resubmitted"`
	ResubmittedAt *time.Time   `json:"resubmittedAt,omitempty"`
}

// Submission is the aggregate for one vendor and one reporting period.
// Its Status field is always recomputable from the documents via
// AggregateStatus; the final-approval overlay is the only decision
// layered on top of it.
type Submission struct {
	ID         string                          `json:"id"`
	VendorID   string                          `json:"vendorId"`
	Period     vendorcomply.Period             `json:"period"`
	Consultant vendorcomply.ConsultantSnapshot `json:"consultant"`

	Documents  []DocumentRecord  `json:"documents"`
	Rejections []RejectionRecord `json:"rejections,omitempty"`

	Status SubmissionStatus `json:"status"`

	FinalDecision *FinalDecision `json:"finalDecision,omitempty"`
	FinalRemarks  *string        `json:"finalRemarks,omitempty"`
	FinalizedBy   *string        `json:"finalizedBy,omitempty"`
	FinalizedAt   *time.Time     `json:"finalizedAt,omitempty"`

	Revision  int64     `json:"revision"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Recompute refreshes the cached aggregate status from the documents.
// Called after every mutation to a contained document.
func (s *Submission) Recompute() {
	s.Status = AggregateStatus(s.Documents)
}

// Reopened reports whether a changes-required overlay has reopened the
// submission for resubmission despite all documents being approved.
func (s *Submission) Reopened() bool {
	return s.FinalDecision != nil && *s.FinalDecision == ChangesRequired
}

// Terminal reports whether the submission accepts no further uploads
// or deletions. A changes-required overlay reopens an otherwise
// fully-approved submission.
func (s *Submission) Terminal() bool {
	if s.Reopened() {
		return false
	}
	if s.FinalDecision != nil && *s.FinalDecision == FinalApproved {
		return true
	}
	return s.Status == SubFullyApproved
}

// DocumentByID returns the contained document with the given id.
func (s *Submission) DocumentByID(id string) *DocumentRecord {
	for i := range s.Documents {
		if s.Documents[i].ID == id {
			return &s.Documents[i]
		}
	}
	return nil
}

// DocumentByType returns the most recently uploaded document of the
// given type. Legacy callers address documents by type.
func (s *Submission) DocumentByType(t DocumentType) *DocumentRecord {
	var found *DocumentRecord
	for i := range s.Documents {
		d := &s.Documents[i]
		if d.Type != t {
			continue
		}
		if found == nil || d.UploadedAt.After(found.UploadedAt) {
			found = d
		}
	}
	return found
}

// PresentTypes lists the document types currently present.
func (s *Submission) PresentTypes() []DocumentType {
	out := make([]DocumentType, 0, len(s.Documents))
	for _, d := range s.Documents {
		out = append(out, d.Type)
	}
	return out
}

// AddDocument appends a new document record. Fails while the
// submission is terminal.
func (s *Submission) AddDocument(doc DocumentRecord) error {
	if s.Terminal() {
		return ValidationError{Reason: "submission is fully approved"}
	}
	s.Documents = append(s.Documents, doc)
	s.Recompute()
	return nil
}

// RemoveDocument removes the record with the given id. The artifact
// removal happens with it, atomically from the engine's perspective.
func (s *Submission) RemoveDocument(id string) error {
	if s.Terminal() {
		return InvalidStateError{Current: string(s.Status), Action: "delete"}
	}
	for i := range s.Documents {
		if s.Documents[i].ID == id {
			s.Documents = append(s.Documents[:i], s.Documents[i+1:]...)
			s.Recompute()
			return nil
		}
	}
	return NotFoundError{Resource: "document " + id}
}

// OpenRejection returns the open rejection for the given type, if any.
func (s *Submission) OpenRejection(t DocumentType) *RejectionRecord {
	for i := range s.Rejections {
		r := &s.Rejections[i]
		if r.DocumentType == t && !r.Resubmitted {
			return r
		}
	}
	return nil
}

// RecordRejection opens a rejection for the given type. A record still
// open for the type is superseded first: the vendor can upload a second
// document of an already-rejected type, and rejecting that one must not
// leave two open records. The newest rejection is the one a
// resubmission answers; a superseded record stays in the history but
// carries no resubmission stamp.
func (s *Submission) RecordRejection(t DocumentType, reason, rejectedBy string, at time.Time) {
	if open := s.OpenRejection(t); open != nil {
		open.Resubmitted = true
	}
	s.Rejections = append(s.Rejections, RejectionRecord{
		DocumentType: t,
		Reason:       reason,
		RejectedBy:   rejectedBy,
		RejectedAt:   at,
	})
}

// CloseRejection resolves the open rejection for the given type,
// stamping the resubmission time. Fails when none is open, which is
// how a double-resubmission attempt surfaces.
func (s *Submission) CloseRejection(t DocumentType, at time.Time) error {
	open := s.OpenRejection(t)
	if open == nil {
		return PreconditionError{Reason: "no open rejection for " + string(t)}
	}
	open.Resubmitted = true
	open.ResubmittedAt = &at
	return nil
}

// HasApprovedDocument reports whether any document has ever reached
// approved. Such submissions are part of the audit trail and must not
// be deleted.
func (s *Submission) HasApprovedDocument() bool {
	for _, d := range s.Documents {
		if d.Status == DocApproved {
			return true
		}
	}
	return false
}

// Finalize records the holistic overlay decision. Only permitted once
// every document is individually approved.
func (s *Submission) Finalize(decision FinalDecision, remarks, actorID string, now time.Time) error {
	if decision != FinalApproved && decision != ChangesRequired {
		return ValidationError{Reason: "unknown final decision: " + string(decision)}
	}
	if s.Status != SubFullyApproved {
		return InvalidStateError{Current: string(s.Status), Action: "finalize"}
	}
	s.FinalDecision = &decision
	s.FinalRemarks = &remarks
	s.FinalizedBy = &actorID
	s.FinalizedAt = &now
	return nil
}
