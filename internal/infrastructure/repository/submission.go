package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/regulaworks/vendorcomply"
	"github.com/regulaworks/vendorcomply/internal/domain"
	"github.com/regulaworks/vendorcomply/internal/infrastructure/database/models"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, sub *domain.Submission) error {
	record := submissionToModel(sub)
	err := r.db.WithContext(ctx).Create(&record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ValidationError{Reason: "submission already exists for this vendor and period"}
	}
	return err
}

func (r *SubmissionRepository) Get(ctx context.Context, id string) (*domain.Submission, error) {
	var record models.Submission
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Preload("Rejections").
		Where("id = ?", id).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "submission " + id}
	}
	if err != nil {
		return nil, err
	}
	return submissionToDomain(&record), nil
}

func (r *SubmissionRepository) GetByVendorPeriod(ctx context.Context, vendorID string, period vendorcomply.Period) (*domain.Submission, error) {
	var record models.Submission
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Preload("Rejections").
		Where("vendor_id = ? AND year = ? AND month = ?", vendorID, period.Year, int(period.Month)).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "submission"}
	}
	if err != nil {
		return nil, err
	}
	return submissionToDomain(&record), nil
}

func (r *SubmissionRepository) List(ctx context.Context, vendorID string) ([]domain.Submission, error) {
	var records []models.Submission
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Preload("Rejections").
		Where("vendor_id = ?", vendorID).
		Order("year DESC, month DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Submission, len(records))
	for i := range records {
		out[i] = *submissionToDomain(&records[i])
	}
	return out, nil
}

// Update executes mutate against the freshly loaded aggregate under a
// row lock, then persists the whole aggregate with a revision check.
// A writer that lost the race gets ConcurrentModificationError.
func (r *SubmissionRepository) Update(ctx context.Context, id string, mutate func(*domain.Submission) error) (*domain.Submission, error) {
	var result *domain.Submission

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.Submission
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Documents").
			Preload("Rejections").
			Where("id = ?", id).
			Take(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFoundError{Resource: "submission " + id}
		}
		if err != nil {
			return err
		}

		sub := submissionToDomain(&record)
		loadedRevision := sub.Revision

		if err := mutate(sub); err != nil {
			return err
		}
		sub.Revision = loadedRevision + 1
		sub.UpdatedAt = time.Now().UTC()

		updated := submissionToModel(sub)
		res := tx.Model(&models.Submission{}).
			Where("id = ? AND revision = ?", id, loadedRevision).
			Select("vendor_id", "year", "month", "consultant_name", "consultant_email",
				"status", "final_decision", "final_remarks", "finalized_by", "finalized_at",
				"revision", "m_date").
			Updates(&updated)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ConcurrentModificationError{Resource: "submission " + id}
		}

		if err := syncDocuments(tx, sub); err != nil {
			return err
		}
		if err := syncRejections(tx, sub); err != nil {
			return err
		}

		result = sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", id).Delete(&models.SubmissionDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Where("submission_id = ?", id).Delete(&models.Rejection{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Submission{}, "id = ?", id).Error
	})
}

func syncDocuments(tx *gorm.DB, sub *domain.Submission) error {
	kept := make([]string, 0, len(sub.Documents))
	for i := range sub.Documents {
		doc := documentToModel(&sub.Documents[i], sub.ID)
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&doc).Error; err != nil {
			return err
		}
		kept = append(kept, doc.ID)
	}

	q := tx.Where("submission_id = ?", sub.ID)
	if len(kept) > 0 {
		q = q.Where("id NOT IN ?", kept)
	}
	return q.Delete(&models.SubmissionDocument{}).Error
}

func syncRejections(tx *gorm.DB, sub *domain.Submission) error {
	if err := tx.Where("submission_id = ?", sub.ID).Delete(&models.Rejection{}).Error; err != nil {
		return err
	}
	for _, rej := range sub.Rejections {
		record := models.Rejection{
			SubmissionID:  sub.ID,
			DocumentType:  string(rej.DocumentType),
			Reason:        rej.Reason,
			RejectedBy:    rej.RejectedBy,
			RejectedAt:    rej.RejectedAt,
			Resubmitted:   rej.Resubmitted,
			ResubmittedAt: rej.ResubmittedAt,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}
