package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/regulaworks/vendorcomply"
	"github.com/regulaworks/vendorcomply/internal/domain"
)

type DocumentUsecase struct {
	repo       SubmissionRepository
	resolver   DocumentResolver
	registry   *domain.Registry
	dispatcher Dispatcher
}

func NewDocumentUsecase(
	repo SubmissionRepository,
	resolver DocumentResolver,
	registry *domain.Registry,
	dispatcher Dispatcher,
) *DocumentUsecase {
	return &DocumentUsecase{
		repo:       repo,
		resolver:   resolver,
		registry:   registry,
		dispatcher: dispatcher,
	}
}

// Upload adds a new document to the submission. Only the owning vendor
// may upload, and only while the submission is not terminal.
func (uc *DocumentUsecase) Upload(ctx context.Context, submissionID string, docType domain.DocumentType, displayName, artifactRef string, mandatory bool, actorID string) (*domain.DocumentRecord, error) {
	if !uc.registry.Known(docType) {
		return nil, domain.ValidationError{Reason: "unknown document type: " + string(docType)}
	}
	if artifactRef == "" {
		return nil, domain.ValidationError{Reason: "artifact reference is required"}
	}

	docID := uuid.New().String()
	now := time.Now().UTC()

	sub, err := uc.repo.Update(ctx, submissionID, func(s *domain.Submission) error {
		if s.VendorID != actorID {
			return domain.AuthorizationError{Reason: "only the owning vendor may upload"}
		}
		return s.AddDocument(domain.DocumentRecord{
			ID:           docID,
			SubmissionID: s.ID,
			Type:         docType,
			DisplayName:  displayName,
			ArtifactRef:  artifactRef,
			Mandatory:    mandatory,
			Status:       domain.DocUploaded,
			UploadedAt:   now,
			Version:      1,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(ctx, []vendorcomply.Event{{
		Recipient: sub.Consultant.Email,
		Kind:      vendorcomply.EventDocumentUploaded,
		Resource:  docID,
		Summary:   fmt.Sprintf("%s uploaded for %s", docType, sub.Period),
		Priority:  vendorcomply.PriorityNormal,
		Timestamp: now,
	}})

	return sub.DocumentByID(docID), nil
}

// Decide applies a reviewer verdict to one document and recomputes the
// aggregate. A rejection opens a RejectionRecord for the type.
func (uc *DocumentUsecase) Decide(ctx context.Context, submissionID, documentID string, decision domain.ReviewDecision, remarks, actorID string) (*domain.DocumentRecord, error) {
	now := time.Now().UTC()
	var docType domain.DocumentType

	sub, err := uc.repo.Update(ctx, submissionID, func(s *domain.Submission) error {
		doc := s.DocumentByID(documentID)
		if doc == nil {
			return domain.NotFoundError{Resource: "document " + documentID}
		}
		if err := doc.Decide(decision, remarks, actorID, now); err != nil {
			return err
		}
		docType = doc.Type
		if decision == domain.DecisionReject {
			s.RecordRejection(doc.Type, remarks, actorID, now)
		}
		s.Recompute()
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := vendorcomply.Event{
		Recipient: sub.VendorID,
		Resource:  documentID,
		Timestamp: now,
	}
	if decision == domain.DecisionReject {
		event.Kind = vendorcomply.EventDocumentRejected
		event.Summary = fmt.Sprintf("%s was rejected: %s", docType, remarks)
		event.Priority = vendorcomply.PriorityHigh
	} else {
		event.Kind = vendorcomply.EventDocumentApproved
		event.Summary = fmt.Sprintf("%s was approved", docType)
		event.Priority = vendorcomply.PriorityNormal
	}
	uc.dispatch(ctx, []vendorcomply.Event{event})

	return sub.DocumentByID(documentID), nil
}

// Delete removes a document and, from the engine's perspective, its
// stored artifact with it.
func (uc *DocumentUsecase) Delete(ctx context.Context, submissionID, documentID, actorID string) error {
	_, err := uc.repo.Update(ctx, submissionID, func(s *domain.Submission) error {
		if s.VendorID != actorID {
			return domain.AuthorizationError{Reason: "only the owning vendor may delete"}
		}
		return s.RemoveDocument(documentID)
	})
	return err
}

// Get resolves a document id through the reconciler, whichever
// physical store holds it.
func (uc *DocumentUsecase) Get(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	return uc.resolver.ResolveDocument(ctx, id)
}

func (uc *DocumentUsecase) dispatch(ctx context.Context, events []vendorcomply.Event) {
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
