package repository

import (
	"time"

	"github.com/regulaworks/vendorcomply"
	"github.com/regulaworks/vendorcomply/internal/domain"
	"github.com/regulaworks/vendorcomply/internal/infrastructure/database/models"
)

func submissionToDomain(record *models.Submission) *domain.Submission {
	sub := &domain.Submission{
		ID:       record.ID,
		VendorID: record.VendorID,
		Period:   vendorcomply.Period{Year: record.Year, Month: time.Month(record.Month)},
		Consultant: vendorcomply.ConsultantSnapshot{
			Name:  record.ConsultantName,
			Email: record.ConsultantEmail,
		},
		Status:       domain.SubmissionStatus(record.Status),
		FinalRemarks: record.FinalRemarks,
		FinalizedBy:  record.FinalizedBy,
		FinalizedAt:  record.FinalizedAt,
		Revision:     record.Revision,
		CreatedAt:    record.CDate,
		UpdatedAt:    record.MDate,
	}
	if record.FinalDecision != nil {
		d := domain.FinalDecision(*record.FinalDecision)
		sub.FinalDecision = &d
	}

	sub.Documents = make([]domain.DocumentRecord, len(record.Documents))
	for i := range record.Documents {
		sub.Documents[i] = *documentToDomain(&record.Documents[i])
	}

	sub.Rejections = make([]domain.RejectionRecord, len(record.Rejections))
	for i, rej := range record.Rejections {
		sub.Rejections[i] = domain.RejectionRecord{
			DocumentType:  domain.DocumentType(rej.DocumentType),
			Reason:        rej.Reason,
			RejectedBy:    rej.RejectedBy,
			RejectedAt:    rej.RejectedAt,
			Resubmitted:   rej.Resubmitted,
			ResubmittedAt: rej.ResubmittedAt,
		}
	}

	return sub
}

func submissionToModel(sub *domain.Submission) models.Submission {
	record := models.Submission{
		ID:              sub.ID,
		VendorID:        sub.VendorID,
		Year:            sub.Period.Year,
		Month:           int(sub.Period.Month),
		ConsultantName:  sub.Consultant.Name,
		ConsultantEmail: sub.Consultant.Email,
		Status:          string(sub.Status),
		FinalRemarks:    sub.FinalRemarks,
		FinalizedBy:     sub.FinalizedBy,
		FinalizedAt:     sub.FinalizedAt,
		Revision:        sub.Revision,
		MDate:           sub.UpdatedAt,
	}
	if record.MDate.IsZero() {
		record.MDate = time.Now().UTC()
	}
	if sub.FinalDecision != nil {
		d := string(*sub.FinalDecision)
		record.FinalDecision = &d
	}
	return record
}

func documentToDomain(record *models.SubmissionDocument) *domain.DocumentRecord {
	return &domain.DocumentRecord{
		ID:           record.ID,
		SubmissionID: record.SubmissionID,
		Type:         domain.DocumentType(record.Type),
		DisplayName:  record.DisplayName,
		ArtifactRef:  record.ArtifactRef,
		Mandatory:    record.Mandatory,
		Status:       domain.DocumentStatus(record.Status),
		Remarks:      record.Remarks,
		ReviewedBy:   record.ReviewedBy,
		ReviewedAt:   record.ReviewedAt,
		UploadedAt:   record.UploadedAt,
		Version:      record.Version,
	}
}

func documentToModel(doc *domain.DocumentRecord, submissionID string) models.SubmissionDocument {
	return models.SubmissionDocument{
		ID:           doc.ID,
		SubmissionID: submissionID,
		Type:         string(doc.Type),
		DisplayName:  doc.DisplayName,
		ArtifactRef:  doc.ArtifactRef,
		Mandatory:    doc.Mandatory,
		Status:       string(doc.Status),
		Remarks:      doc.Remarks,
		ReviewedBy:   doc.ReviewedBy,
		ReviewedAt:   doc.ReviewedAt,
		UploadedAt:   doc.UploadedAt,
		Version:      doc.Version,
	}
}

// legacyToDomain maps a flat record to the canonical document shape.
// The legacy status vocabulary goes through the mapping table; legacy
// remarks become a single-entry history.
func legacyToDomain(record *models.LegacyDocument) (*domain.DocumentRecord, error) {
	status, err := domain.CanonicalStatus(record.Status)
	if err != nil {
		return nil, err
	}

	var remarks []string
	if record.Remarks != "" {
		remarks = []string{record.Remarks}
	}

	return &domain.DocumentRecord{
		ID:          record.ID,
		Type:        domain.DocumentType(record.Type),
		DisplayName: record.DisplayName,
		ArtifactRef: record.ArtifactRef,
		Mandatory:   record.Mandatory,
		Status:      status,
		Remarks:     remarks,
		ReviewedBy:  record.ReviewedBy,
		ReviewedAt:  record.ReviewedAt,
		UploadedAt:  record.UploadedAt,
		Version:     1,
	}, nil
}
