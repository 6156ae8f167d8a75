package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/regulaworks/vendorcomply"
	"github.com/regulaworks/vendorcomply/internal/domain"
)

func TestCreateSubmission(t *testing.T) {
	repo := newMockSubmissionRepo()
	uc := NewSubmissionUsecase(repo, &mockResolver{}, domain.NewRegistry(), &mockDispatcher{})

	period := vendorcomply.Period{Year: 2026, Month: time.March}
	consultant := vendorcomply.ConsultantSnapshot{Name: "Asha Raman", Email: "asha@consultancy.example"}

	sub, err := uc.Create(context.Background(), "vendor-1", period, consultant)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if sub.ID == "" || sub.Status != domain.SubDraft {
		t.Fatalf("expected draft submission with id, got %+v", sub)
	}
	if sub.Consultant != consultant {
		t.Fatalf("consultant snapshot not stored")
	}

	// one submission per vendor and period
	_, err = uc.Create(context.Background(), "vendor-1", period, consultant)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ValidationError for duplicate period got %v", err)
	}
}

func TestCreateSubmissionRejectsBadPeriod(t *testing.T) {
	repo := newMockSubmissionRepo()
	uc := NewSubmissionUsecase(repo, &mockResolver{}, domain.NewRegistry(), &mockDispatcher{})

	_, err := uc.Create(context.Background(), "vendor-1", vendorcomply.Period{Year: 2026, Month: 13}, vendorcomply.ConsultantSnapshot{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ValidationError got %v", err)
	}
}

func TestSubmitForReviewComplete(t *testing.T) {
	repo := newMockSubmissionRepo()
	dispatcher := &mockDispatcher{}
	uc := NewSubmissionUsecase(repo, &mockResolver{}, domain.NewRegistry(), dispatcher)

	seededSubmission(repo, fullMandatoryDocs(domain.DocUploaded)...)

	sub, err := uc.SubmitForReview(context.Background(), "sub-1", "vendor-1")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if sub.Status != domain.SubUnderReview {
		t.Fatalf("expected under_review got %s", sub.Status)
	}
	for _, d := range sub.Documents {
		if d.Status != domain.DocUnderReview {
			t.Fatalf("document %s not moved into review: %s", d.ID, d.Status)
		}
	}

	if len(dispatcher.events) != 1 || dispatcher.events[0].Kind != vendorcomply.EventSubmissionSubmitted {
		t.Fatalf("expected submission_submitted event got %+v", dispatcher.events)
	}
	if dispatcher.events[0].Recipient != "asha@consultancy.example" {
		t.Fatalf("event must address the assigned consultant")
	}
}

func TestSubmitForReviewReportsMissingTypes(t *testing.T) {
	repo := newMockSubmissionRepo()
	uc := NewSubmissionUsecase(repo, &mockResolver{}, domain.NewRegistry(), &mockDispatcher{})

	docs := fullMandatoryDocs(domain.DocUploaded)
	var withoutBank []domain.DocumentRecord
	for _, d := range docs {
		if d.Type != domain.TypeBankStatement {
			withoutBank = append(withoutBank, d)
		}
	}
	seededSubmission(repo, withoutBank...)

	_, err := uc.SubmitForReview(context.Background(), "sub-1", "vendor-1")

	var incomplete domain.IncompleteSubmissionError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteSubmissionError got %v", err)
	}
	if len(incomplete.MissingTypes) != 1 || incomplete.MissingTypes[0] != domain.TypeBankStatement {
		t.Fatalf("expected missing [BANK_STATEMENT] got %v", incomplete.MissingTypes)
	}
}

func TestSubmitForReviewOwnershipGuard(t *testing.T) {
	repo := newMockSubmissionRepo()
	uc := NewSubmissionUsecase(repo, &mockResolver{}, domain.NewRegistry(), &mockDispatcher{})

	seededSubmission(repo, fullMandatoryDocs(domain.DocUploaded)...)

	_, err := uc.SubmitForReview(context.Background(), "sub-1", "vendor-2")
	if !errors.Is(err, domain.ErrAuthorization) {
		t.Fatalf("expected AuthorizationError got %v", err)
	}
}

func TestFinalizeOverlay(t *testing.T) {
	repo := newMockSubmissionRepo()
	dispatcher := &mockDispatcher{}
	uc := NewSubmissionUsecase(repo, &mockResolver{}, domain.NewRegistry(), dispatcher)

	seededSubmission(repo, fullMandatoryDocs(domain.DocApproved)...)

	sub, err := uc.Finalize(context.Background(), "sub-1", domain.ChangesRequired, "totals disagree with GST return", "approver-1")
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if sub.FinalDecision == nil || *sub.FinalDecision != domain.ChangesRequired {
		t.Fatalf("overlay not recorded: %+v", sub)
	}
	if sub.Status != domain.SubFullyApproved {
		t.Fatalf("computed status must survive the overlay, got %s", sub.Status)
	}
	if sub.Terminal() {
		t.Fatalf("changes_required must reopen the submission")
	}

	if len(dispatcher.events) != 1 || dispatcher.events[0].Priority != vendorcomply.PriorityHigh {
		t.Fatalf("expected high-priority finalize event got %+v", dispatcher.events)
	}
}

func TestFinalizeRejectedBeforeFullApproval(t *testing.T) {
	repo := newMockSubmissionRepo()
	uc := NewSubmissionUsecase(repo, &mockResolver{}, domain.NewRegistry(), &mockDispatcher{})

	seededSubmission(repo, fullMandatoryDocs(domain.DocUnderReview)...)

	_, err := uc.Finalize(context.Background(), "sub-1", domain.FinalApproved, "", "approver-1")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected InvalidStateError got %v", err)
	}
}

func TestDispatchFailureDoesNotFailOperation(t *testing.T) {
	repo := newMockSubmissionRepo()
	dispatcher := &mockDispatcher{fail: errors.New("redis down")}
	uc := NewSubmissionUsecase(repo, &mockResolver{}, domain.NewRegistry(), dispatcher)

	seededSubmission(repo, fullMandatoryDocs(domain.DocUploaded)...)

	if _, err := uc.SubmitForReview(context.Background(), "sub-1", "vendor-1"); err != nil {
		t.Fatalf("dispatch failure must not fail the transition: %v", err)
	}
}

func TestConcurrentUpdateLoss(t *testing.T) {
	repo := newMockSubmissionRepo()
	uc := NewSubmissionUsecase(repo, &mockResolver{}, domain.NewRegistry(), &mockDispatcher{})

	seededSubmission(repo, fullMandatoryDocs(domain.DocApproved)...)
	repo.conflict = true

	_, err := uc.Finalize(context.Background(), "sub-1", domain.FinalApproved, "", "approver-1")
	if !errors.Is(err, domain.ErrConcurrentModification) {
		t.Fatalf("expected ConcurrentModificationError got %v", err)
	}
}

func TestDeleteDraftGuards(t *testing.T) {
	repo := newMockSubmissionRepo()
	uc := NewSubmissionUsecase(repo, &mockResolver{}, domain.NewRegistry(), &mockDispatcher{})

	seededSubmission(repo)

	if err := uc.DeleteDraft(context.Background(), "sub-1", "vendor-2"); !errors.Is(err, domain.ErrAuthorization) {
		t.Fatalf("expected AuthorizationError got %v", err)
	}
	if err := uc.DeleteDraft(context.Background(), "sub-1", "vendor-1"); err != nil {
		t.Fatalf("delete draft failed: %v", err)
	}

	// anything with documents is not a deletable draft
	seededSubmission(repo, fullMandatoryDocs(domain.DocUploaded)...)
	if err := uc.DeleteDraft(context.Background(), "sub-1", "vendor-1"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected InvalidStateError got %v", err)
	}
}
