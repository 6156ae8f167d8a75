package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/regulaworks/vendorcomply"
	"github.com/regulaworks/vendorcomply/internal/domain"
)

// ResubmitInput names the target document either by id or, for legacy
// flat records, by type within the submission. SubmissionID may be
// empty when only a bare document id is known; the reconciler then
// resolves the owner.
type ResubmitInput struct {
	SubmissionID string
	DocumentID   string
	DocumentType domain.DocumentType
	ArtifactRef  string
	ActorID      string
}

type ResubmissionUsecase struct {
	repo       SubmissionRepository
	resolver   DocumentResolver
	dispatcher Dispatcher
}

func NewResubmissionUsecase(
	repo SubmissionRepository,
	resolver DocumentResolver,
	dispatcher Dispatcher,
) *ResubmissionUsecase {
	return &ResubmissionUsecase{
		repo:       repo,
		resolver:   resolver,
		dispatcher: dispatcher,
	}
}

// Resubmit answers a rejection with a corrected upload: the artifact
// reference is replaced, the version bumped, the open rejection closed
// and the document re-enters review. Prior reviewer remarks stay in
// the history. After a changes-required overlay the same path reopens
// approved documents without requiring a rejection.
func (uc *ResubmissionUsecase) Resubmit(ctx context.Context, input ResubmitInput) (*domain.DocumentRecord, error) {
	if input.ArtifactRef == "" {
		return nil, domain.ValidationError{Reason: "artifact reference is required"}
	}

	submissionID := input.SubmissionID
	if submissionID == "" {
		if input.DocumentID == "" {
			return nil, domain.ValidationError{Reason: "document id or submission id is required"}
		}
		owner, err := uc.resolver.OwningSubmission(ctx, input.DocumentID)
		if err != nil {
			return nil, err
		}
		submissionID = owner
	}

	now := time.Now().UTC()
	var resolvedID string

	sub, err := uc.repo.Update(ctx, submissionID, func(s *domain.Submission) error {
		if s.VendorID != input.ActorID {
			return domain.AuthorizationError{Reason: "only the owning vendor may resubmit"}
		}

		var doc *domain.DocumentRecord
		if input.DocumentID != "" {
			doc = s.DocumentByID(input.DocumentID)
		} else if input.DocumentType != "" {
			doc = s.DocumentByType(input.DocumentType)
		}
		if doc == nil {
			return domain.NotFoundError{Resource: "document"}
		}
		resolvedID = doc.ID

		reopened := s.Reopened()
		switch doc.Status {
		case domain.DocRejected:
			if err := s.CloseRejection(doc.Type, now); err != nil {
				return err
			}
		case domain.DocResubmitted, domain.DocUnderReview:
			// double-resubmission attempt: the prior rejection is
			// already answered
			if !reopened {
				return domain.PreconditionError{Reason: "no open rejection for " + string(doc.Type)}
			}
		default:
			if !reopened {
				return domain.InvalidStateError{Current: string(doc.Status), Action: "resubmit"}
			}
		}

		if err := doc.Resubmit(input.ArtifactRef, now, doc.Status != domain.DocRejected); err != nil {
			return err
		}
		s.Recompute()
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc := sub.DocumentByID(resolvedID)

	uc.dispatch(ctx, []vendorcomply.Event{{
		Recipient: sub.Consultant.Email,
		Kind:      vendorcomply.EventDocumentResubmitted,
		Resource:  doc.ID,
		Summary:   fmt.Sprintf("%s resubmitted for %s (v%d)", doc.Type, sub.Period, doc.Version),
		Priority:  vendorcomply.PriorityNormal,
		Timestamp: now,
	}})

	return doc, nil
}

// ResubmitByDocumentID handles the legacy entry point where the caller
// holds a bare document id and the two stores may disagree on the
// owner; the reconciler is consulted before failing with NotFound.
func (uc *ResubmissionUsecase) ResubmitByDocumentID(ctx context.Context, documentID, artifactRef, actorID string) (*domain.DocumentRecord, error) {
	doc, err := uc.resolver.ResolveDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.SubmissionID == "" {
		// flat legacy record with no owning aggregate: writes go
		// exclusively through the submission shape
		return nil, domain.NotFoundError{Resource: "submission for document " + documentID}
	}

	result, err := uc.Resubmit(ctx, ResubmitInput{
		SubmissionID: doc.SubmissionID,
		DocumentID:   documentID,
		ArtifactRef:  artifactRef,
		ActorID:      actorID,
	})
	if err != nil && errors.Is(err, domain.ErrNotFound) {
		// the stores disagree; fall back to type-addressed lookup
		return uc.Resubmit(ctx, ResubmitInput{
			SubmissionID: doc.SubmissionID,
			DocumentType: doc.Type,
			ArtifactRef:  artifactRef,
			ActorID:      actorID,
		})
	}
	return result, err
}

func (uc *ResubmissionUsecase) dispatch(ctx context.Context, events []vendorcomply.Event) {
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
