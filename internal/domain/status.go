package domain

// SubmissionStatus is the submission-level status derived from the
// contained documents. It is a cache of AggregateStatus, never
// independent truth.
type SubmissionStatus string

const (
	SubDraft                SubmissionStatus = "draft"
	SubSubmitted            SubmissionStatus = "submitted"
	SubUnderReview          SubmissionStatus = "under_review"
	SubRequiresResubmission SubmissionStatus = "requires_resubmission"
	SubPartiallyApproved    SubmissionStatus = "partially_approved"
	SubFullyApproved        SubmissionStatus = "fully_approved"
)

// FinalDecision is the holistic overlay a final approver records on a
// fully-approved submission. It is explicit human judgment, not
// derivable from the document statuses.
type FinalDecision string

const (
	FinalApproved   FinalDecision = "final_approved"
	ChangesRequired FinalDecision = "changes_required"
)

// AggregateStatus derives the submission status from its documents.
// The tie-break order is significant: any rejection outranks documents
// mid-review, because a rejection is the most actionable signal for
// the vendor. The result is independent of document order.
func AggregateStatus(docs []DocumentRecord) SubmissionStatus {
	if len(docs) == 0 {
		return SubDraft
	}

	var approved, rejected, resubmitted, underReview, uploaded int
	for _, d := range docs {
		switch d.Status {
		case DocApproved:
			approved++
		case DocRejected:
			rejected++
		case DocResubmitted:
			resubmitted++
		case DocUnderReview:
			underReview++
		case DocUploaded:
			uploaded++
		}
	}

	switch {
	case approved == len(docs):
		return SubFullyApproved
	case rejected > 0 || resubmitted > 0:
		return SubRequiresResubmission
	case underReview > 0:
		return SubUnderReview
	case uploaded > 0:
		return SubSubmitted
	default:
		return SubPartiallyApproved
	}
}

// legacyStatusMap translates the flat-record status vocabulary into
// the canonical one. The two enums evolved independently; "pending"
// and "uploaded" are the same logical state.
var legacyStatusMap = map[string]DocumentStatus{
	"pending":   DocUploaded,
	"uploaded":  DocUploaded,
	"in_review": DocUnderReview,
	"approved":  DocApproved,
	"declined":  DocRejected,
	"rejected":  DocRejected,
	"corrected": DocResubmitted,
}

// CanonicalStatus maps a legacy flat-record status string to the
// canonical DocumentStatus. Unknown strings fail loudly rather than
// defaulting.
func CanonicalStatus(legacy string) (DocumentStatus, error) {
	s, ok := legacyStatusMap[legacy]
	if !ok {
		return "", ValidationError{Reason: "unknown legacy status: " + legacy}
	}
	return s, nil
}
