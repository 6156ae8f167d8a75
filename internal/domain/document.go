package domain

import (
	"time"
)

// DocumentStatus is the canonical per-document status. Legacy flat
// records use a different vocabulary; the reconciler maps it to this
// one at the store boundary so business logic never compares raw
// legacy strings.
type DocumentStatus string

const (
	DocUploaded    DocumentStatus = "uploaded"
	DocUnderReview DocumentStatus = "under_review"
	DocApproved    DocumentStatus = "approved"
	DocRejected    DocumentStatus = "rejected"
	DocResubmitted DocumentStatus = "resubmitted"
)

// ReviewDecision is a reviewer's verdict on one document.
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approved"
	DecisionReject  ReviewDecision = "rejected"
)

// DocumentRecord is one uploaded artifact and its review state.
type DocumentRecord struct {
	ID           string         `json:"id"`
	SubmissionID string         `json:"submissionId,omitempty"` // empty for legacy flat records
	Type         DocumentType   `json:"type"`
	DisplayName  string         `json:"displayName"`
	ArtifactRef  string         `json:"artifactRef"` // opaque storage key, never interpreted
	Mandatory    bool           `json:"mandatory"`
	Status       DocumentStatus `json:"status"`
	Remarks      []string       `json:"remarks,omitempty"` // reviewer remark history, append-only
	ReviewedBy   *string        `json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time     `json:"reviewedAt,omitempty"`
	UploadedAt   time.Time      `json:"uploadedAt"`
	Version      int            `json:"version"`
}

// Reviewable reports whether the document can receive a reviewer
// decision from its current status.
func (d *DocumentRecord) Reviewable() bool {
	switch d.Status {
	case DocUploaded, DocUnderReview, DocResubmitted:
		return true
	default:
		return false
	}
}

// Decide applies a reviewer verdict. Approved documents are terminal
// within their submission cycle and refuse further decisions.
func (d *DocumentRecord) Decide(decision ReviewDecision, remarks string, reviewerID string, now time.Time) error {
	if decision != DecisionApprove && decision != DecisionReject {
		return ValidationError{Reason: "unknown decision: " + string(decision)}
	}
	if !d.Reviewable() {
		return InvalidStateError{Current: string(d.Status), Action: "decide"}
	}

	switch decision {
	case DecisionApprove:
		d.Status = DocApproved
	case DecisionReject:
		d.Status = DocRejected
	}
	if remarks != "" {
		d.Remarks = append(d.Remarks, remarks)
	}
	d.ReviewedBy = &reviewerID
	d.ReviewedAt = &now
	return nil
}

// Resubmit replaces the artifact after a rejection (or after a
// changes-required overlay, in which case reopened is true) and puts
// the document back into the review queue. Prior reviewer remarks stay
// in the history so the reviewer can see what prompted the correction.
func (d *DocumentRecord) Resubmit(artifactRef string, now time.Time, reopened bool) error {
	if d.Status != DocRejected && !reopened {
		return InvalidStateError{Current: string(d.Status), Action: "resubmit"}
	}
	d.ArtifactRef = artifactRef
	d.Status = DocResubmitted
	d.Version++
	d.UploadedAt = now
	d.ReviewedBy = nil
	d.ReviewedAt = nil
	return nil
}
