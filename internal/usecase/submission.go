package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/regulaworks/vendorcomply"
	"github.com/regulaworks/vendorcomply/internal/domain"
)

type SubmissionUsecase struct {
	repo       SubmissionRepository
	resolver   DocumentResolver
	registry   *domain.Registry
	dispatcher Dispatcher
}

func NewSubmissionUsecase(
	repo SubmissionRepository,
	resolver DocumentResolver,
	registry *domain.Registry,
	dispatcher Dispatcher,
) *SubmissionUsecase {
	return &SubmissionUsecase{
		repo:       repo,
		resolver:   resolver,
		registry:   registry,
		dispatcher: dispatcher,
	}
}

// Create opens a new submission aggregate for one vendor and period.
func (uc *SubmissionUsecase) Create(ctx context.Context, vendorID string, period vendorcomply.Period, consultant vendorcomply.ConsultantSnapshot) (*domain.Submission, error) {
	if vendorID == "" {
		return nil, domain.ValidationError{Reason: "vendor id is required"}
	}
	if err := period.Validate(); err != nil {
		return nil, domain.ValidationError{Reason: err.Error()}
	}

	existing, err := uc.repo.GetByVendorPeriod(ctx, vendorID, period)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ValidationError{Reason: fmt.Sprintf("submission for %s already exists", period)}
	}

	now := time.Now().UTC()
	sub := &domain.Submission{
		ID:         uuid.New().String(),
		VendorID:   vendorID,
		Period:     period,
		Consultant: consultant,
		Status:     domain.SubDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// SubmitForReview checks mandatory completeness and moves the uploaded
// documents into review. The missing types are reported exactly so the
// caller can render a checklist.
func (uc *SubmissionUsecase) SubmitForReview(ctx context.Context, submissionID, actorID string) (*domain.Submission, error) {
	sub, err := uc.repo.Update(ctx, submissionID, func(s *domain.Submission) error {
		if s.VendorID != actorID {
			return domain.AuthorizationError{Reason: "only the owning vendor may submit for review"}
		}

		missing := uc.registry.MissingTypes(s.Period.Month, s.PresentTypes())
		if len(missing) > 0 {
			return domain.IncompleteSubmissionError{MissingTypes: missing}
		}

		for i := range s.Documents {
			if s.Documents[i].Status == domain.DocUploaded {
				s.Documents[i].Status = domain.DocUnderReview
			}
		}
		s.Recompute()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(ctx, []vendorcomply.Event{{
		Recipient: sub.Consultant.Email,
		Kind:      vendorcomply.EventSubmissionSubmitted,
		Resource:  sub.ID,
		Summary:   fmt.Sprintf("submission for %s is ready for review", sub.Period),
		Priority:  vendorcomply.PriorityNormal,
		Timestamp: time.Now().UTC(),
	}})

	return sub, nil
}

// Finalize records the holistic overlay decision of the final
// approver on a fully-approved submission.
func (uc *SubmissionUsecase) Finalize(ctx context.Context, submissionID string, decision domain.FinalDecision, remarks, actorID string) (*domain.Submission, error) {
	now := time.Now().UTC()

	sub, err := uc.repo.Update(ctx, submissionID, func(s *domain.Submission) error {
		return s.Finalize(decision, remarks, actorID, now)
	})
	if err != nil {
		return nil, err
	}

	priority := vendorcomply.PriorityNormal
	summary := fmt.Sprintf("submission for %s received final approval", sub.Period)
	if decision == domain.ChangesRequired {
		priority = vendorcomply.PriorityHigh
		summary = fmt.Sprintf("submission for %s needs changes: %s", sub.Period, remarks)
	}

	uc.dispatch(ctx, []vendorcomply.Event{{
		Recipient: sub.VendorID,
		Kind:      vendorcomply.EventSubmissionFinalized,
		Resource:  sub.ID,
		Summary:   summary,
		Priority:  priority,
		Timestamp: now,
	}})

	return sub, nil
}

// Get reads a submission through the reconciler, so ids naming either
// physical shape resolve to the same logical view.
func (uc *SubmissionUsecase) Get(ctx context.Context, id string) (*domain.Submission, error) {
	return uc.resolver.ResolveSubmission(ctx, id)
}

// List returns the vendor's submissions.
func (uc *SubmissionUsecase) List(ctx context.Context, vendorID string) ([]domain.Submission, error) {
	return uc.repo.List(ctx, vendorID)
}

// DeleteDraft removes an empty draft submission. Anything with an
// approved document stays forever as audit trail; the repo enforces
// the same rule on its side.
func (uc *SubmissionUsecase) DeleteDraft(ctx context.Context, id, actorID string) error {
	sub, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if sub.VendorID != actorID {
		return domain.AuthorizationError{Reason: "only the owning vendor may delete a draft"}
	}
	if sub.Status != domain.SubDraft || len(sub.Documents) > 0 {
		return domain.InvalidStateError{Current: string(sub.Status), Action: "delete"}
	}
	return uc.repo.Delete(ctx, id)
}

// dispatch is fire-and-forget: a failed notification is a soft
// warning, never an operation failure.
func (uc *SubmissionUsecase) dispatch(ctx context.Context, events []vendorcomply.Event) {
	if uc.dispatcher == nil || len(events) == 0 {
		return
	}
	if err := uc.dispatcher.Dispatch(ctx, events); err != nil {
		slog.WarnContext(ctx, "notification dispatch failed",
			slog.String("error", err.Error()),
			slog.String("module", "notify"),
		)
	}
}
