package repository

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/regulaworks/vendorcomply"
	"github.com/regulaworks/vendorcomply/internal/domain"
	"github.com/regulaworks/vendorcomply/internal/infrastructure/database/models"
)

const (
	routeFlat   = "flat"
	routeSub    = "submission"
	routeNested = "nested"
)

// LegacyReconciler presents the flat legacy store and the grouped
// submission store as one logical view. Resolution order is fixed:
// flat record by id, submission by id, submission containing a nested
// document with that id. Ids are globally unique across stores, so the
// first match wins and resolution is stable; resolved routes are
// cached. All writes go through the submission shape only.
type LegacyReconciler struct {
	db     *gorm.DB
	routes *cache.Cache
}

func NewLegacyReconciler(db *gorm.DB) *LegacyReconciler {
	return &LegacyReconciler{
		db:     db,
		routes: cache.New(10*time.Minute, 15*time.Minute),
	}
}

// ResolveDocument returns the document-shaped view for an id held by
// either store. A submission id resolves to its primary (earliest
// uploaded) document.
func (r *LegacyReconciler) ResolveDocument(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	route, err := r.route(ctx, id)
	if err != nil {
		return nil, err
	}

	switch route {
	case routeFlat:
		var flat models.LegacyDocument
		if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&flat).Error; err != nil {
			return nil, translateNotFound(err, "document "+id)
		}
		return legacyToDomain(&flat)

	case routeSub:
		var doc models.SubmissionDocument
		err := r.db.WithContext(ctx).
			Where("submission_id = ?", id).
			Order("uploaded_at ASC").
			Take(&doc).Error
		if err != nil {
			return nil, translateNotFound(err, "document for submission "+id)
		}
		return documentToDomain(&doc), nil

	default:
		var doc models.SubmissionDocument
		if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&doc).Error; err != nil {
			return nil, translateNotFound(err, "document "+id)
		}
		return documentToDomain(&doc), nil
	}
}

// ResolveSubmission returns the submission-shaped view for an id held
// by either store. A flat record id yields a synthetic single-document
// view whose status is derived by the aggregator, so callers see one
// consistent shape regardless of the backing store.
func (r *LegacyReconciler) ResolveSubmission(ctx context.Context, id string) (*domain.Submission, error) {
	route, err := r.route(ctx, id)
	if err != nil {
		return nil, err
	}

	switch route {
	case routeFlat:
		var flat models.LegacyDocument
		if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&flat).Error; err != nil {
			return nil, translateNotFound(err, "submission "+id)
		}
		doc, err := legacyToDomain(&flat)
		if err != nil {
			return nil, err
		}
		sub := &domain.Submission{
			ID:        flat.ID,
			VendorID:  flat.VendorID,
			Period:    vendorcomply.Period{Year: flat.Year, Month: time.Month(flat.Month)},
			Documents: []domain.DocumentRecord{*doc},
			CreatedAt: flat.UploadedAt,
			UpdatedAt: flat.UploadedAt,
		}
		sub.Recompute()
		return sub, nil

	case routeSub:
		return r.loadSubmission(ctx, id)

	default:
		owner, err := r.OwningSubmission(ctx, id)
		if err != nil {
			return nil, err
		}
		return r.loadSubmission(ctx, owner)
	}
}

// OwningSubmission resolves which submission owns a bare document id.
func (r *LegacyReconciler) OwningSubmission(ctx context.Context, documentID string) (string, error) {
	var doc models.SubmissionDocument
	err := r.db.WithContext(ctx).
		Select("submission_id").
		Where("id = ?", documentID).
		Take(&doc).Error
	if err == nil {
		return doc.SubmissionID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	// the flat store may know the document while the grouped store
	// holds the vendor's aggregate for the same period
	var flat models.LegacyDocument
	err = r.db.WithContext(ctx).Where("id = ?", documentID).Take(&flat).Error
	if err != nil {
		return "", translateNotFound(err, "submission for document "+documentID)
	}

	var sub models.Submission
	err = r.db.WithContext(ctx).
		Select("id").
		Where("vendor_id = ? AND year = ? AND month = ?", flat.VendorID, flat.Year, flat.Month).
		Take(&sub).Error
	if err != nil {
		return "", translateNotFound(err, "submission for document "+documentID)
	}
	return sub.ID, nil
}

// route determines which store backs an id, in the fixed resolution
// order. The result is cached: resolving the same id twice always
// lands on the same store.
func (r *LegacyReconciler) route(ctx context.Context, id string) (string, error) {
	if cached, ok := r.routes.Get(id); ok {
		return cached.(string), nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.LegacyDocument{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		r.routes.SetDefault(id, routeFlat)
		return routeFlat, nil
	}

	if err := r.db.WithContext(ctx).Model(&models.Submission{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		r.routes.SetDefault(id, routeSub)
		return routeSub, nil
	}

	if err := r.db.WithContext(ctx).Model(&models.SubmissionDocument{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		r.routes.SetDefault(id, routeNested)
		return routeNested, nil
	}

	return "", domain.NotFoundError{Resource: id}
}

func (r *LegacyReconciler) loadSubmission(ctx context.Context, id string) (*domain.Submission, error) {
	var record models.Submission
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Preload("Rejections").
		Where("id = ?", id).
		Take(&record).Error
	if err != nil {
		return nil, translateNotFound(err, "submission "+id)
	}
	return submissionToDomain(&record), nil
}

func translateNotFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFoundError{Resource: resource}
	}
	return err
}
