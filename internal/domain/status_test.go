package domain

import (
	"math/rand"
	"testing"
)

func docsWith(statuses ...DocumentStatus) []DocumentRecord {
	docs := make([]DocumentRecord, len(statuses))
	for i, s := range statuses {
		docs[i] = DocumentRecord{ID: string(rune('a' + i)), Status: s}
	}
	return docs
}

func TestAggregateStatusEmpty(t *testing.T) {
	if got := AggregateStatus(nil); got != SubDraft {
		t.Fatalf("expected draft got %s", got)
	}
}

func TestAggregateStatusAllApproved(t *testing.T) {
	got := AggregateStatus(docsWith(DocApproved, DocApproved, DocApproved))
	if got != SubFullyApproved {
		t.Fatalf("expected fully_approved got %s", got)
	}
}

func TestAggregateStatusRejectionOutranksEverything(t *testing.T) {
	// one rejected among approved majority still demands resubmission
	got := AggregateStatus(docsWith(DocApproved, DocApproved, DocRejected))
	if got != SubRequiresResubmission {
		t.Fatalf("expected requires_resubmission got %s", got)
	}

	got = AggregateStatus(docsWith(DocUnderReview, DocResubmitted, DocUploaded))
	if got != SubRequiresResubmission {
		t.Fatalf("expected requires_resubmission got %s", got)
	}
}

func TestAggregateStatusUnderReviewOutranksSubmitted(t *testing.T) {
	got := AggregateStatus(docsWith(DocUploaded, DocUnderReview, DocApproved))
	if got != SubUnderReview {
		t.Fatalf("expected under_review got %s", got)
	}
}

func TestAggregateStatusSubmitted(t *testing.T) {
	got := AggregateStatus(docsWith(DocUploaded, DocApproved))
	if got != SubSubmitted {
		t.Fatalf("expected submitted got %s", got)
	}
}

func TestAggregateStatusTotality(t *testing.T) {
	valid := map[SubmissionStatus]bool{
		SubDraft:                true,
		SubSubmitted:            true,
		SubUnderReview:          true,
		SubRequiresResubmission: true,
		SubPartiallyApproved:    true,
		SubFullyApproved:        true,
	}

	all := []DocumentStatus{DocUploaded, DocUnderReview, DocApproved, DocRejected, DocResubmitted}
	for _, a := range all {
		for _, b := range all {
			for _, c := range all {
				got := AggregateStatus(docsWith(a, b, c))
				if !valid[got] {
					t.Fatalf("aggregate(%s,%s,%s) = %q, not a defined status", a, b, c, got)
				}
			}
		}
	}
}

func TestAggregateStatusOrderIndependent(t *testing.T) {
	docs := docsWith(DocApproved, DocRejected, DocUnderReview, DocUploaded, DocResubmitted)
	want := AggregateStatus(docs)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		rng.Shuffle(len(docs), func(a, b int) {
			docs[a], docs[b] = docs[b], docs[a]
		})
		if got := AggregateStatus(docs); got != want {
			t.Fatalf("permutation changed result: %s != %s", got, want)
		}
	}
}

func TestCanonicalStatusMapping(t *testing.T) {
	cases := map[string]DocumentStatus{
		"pending":   DocUploaded,
		"uploaded":  DocUploaded,
		"in_review": DocUnderReview,
		"approved":  DocApproved,
		"declined":  DocRejected,
		"corrected": DocResubmitted,
	}
	for legacy, want := range cases {
		got, err := CanonicalStatus(legacy)
		if err != nil {
			t.Fatalf("map %s: %v", legacy, err)
		}
		if got != want {
			t.Fatalf("map %s: expected %s got %s", legacy, want, got)
		}
	}

	if _, err := CanonicalStatus("weird"); err == nil {
		t.Fatalf("expected error for unknown legacy status")
	}
}
