package repository

import (
	"testing"
	"time"

	"github.com/regulaworks/vendorcomply/internal/domain"
	"github.com/regulaworks/vendorcomply/internal/infrastructure/database/models"
)

func TestLegacyToDomainMapsStatusVocabulary(t *testing.T) {
	reviewer := "consultant-1"
	reviewedAt := time.Now().UTC()

	flat := models.LegacyDocument{
		ID:          "legacy-1",
		VendorID:    "vendor-1",
		Year:        2024,
		Month:       7,
		Type:        "BANK_STATEMENT",
		ArtifactRef: "uploads/2024/07/bank.pdf",
		Status:      "declined",
		Remarks:     "wrong account number",
		ReviewedBy:  &reviewer,
		ReviewedAt:  &reviewedAt,
		UploadedAt:  time.Now().UTC(),
	}

	doc, err := legacyToDomain(&flat)
	if err != nil {
		t.Fatalf("map failed: %v", err)
	}
	if doc.Status != domain.DocRejected {
		t.Fatalf("expected canonical rejected got %s", doc.Status)
	}
	if len(doc.Remarks) != 1 || doc.Remarks[0] != "wrong account number" {
		t.Fatalf("legacy remarks must become history: %v", doc.Remarks)
	}
	if doc.SubmissionID != "" {
		t.Fatalf("flat records have no owning submission")
	}
}

func TestLegacyToDomainRejectsUnknownStatus(t *testing.T) {
	flat := models.LegacyDocument{ID: "legacy-2", Status: "limbo"}
	if _, err := legacyToDomain(&flat); err == nil {
		t.Fatalf("unknown legacy status must fail loudly")
	}
}

func TestSubmissionRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	decision := "changes_required"
	record := models.Submission{
		ID:              "sub-1",
		VendorID:        "vendor-1",
		Year:            2026,
		Month:           3,
		ConsultantName:  "Asha Raman",
		ConsultantEmail: "asha@consultancy.example",
		Status:          "fully_approved",
		FinalDecision:   &decision,
		Revision:        4,
		MDate:           now,
		Documents: []models.SubmissionDocument{
			{
				ID:           "doc-1",
				SubmissionID: "sub-1",
				Type:         "GST_RETURN",
				Status:       "approved",
				Remarks:      []string{"first pass", "ok"},
				Version:      2,
			},
		},
		Rejections: []models.Rejection{
			{SubmissionID: "sub-1", DocumentType: "GST_RETURN", Reason: "stale", Resubmitted: true},
		},
	}

	sub := submissionToDomain(&record)
	if sub.Period.Month != time.March || sub.Revision != 4 {
		t.Fatalf("header mapping wrong: %+v", sub)
	}
	if sub.FinalDecision == nil || *sub.FinalDecision != domain.ChangesRequired {
		t.Fatalf("overlay mapping wrong: %+v", sub.FinalDecision)
	}
	if len(sub.Documents) != 1 || len(sub.Documents[0].Remarks) != 2 {
		t.Fatalf("document mapping wrong: %+v", sub.Documents)
	}
	if sub.OpenRejection(domain.TypeGSTReturn) != nil {
		t.Fatalf("resolved rejection mapped as open")
	}

	back := submissionToModel(sub)
	if back.Year != record.Year || back.Month != record.Month || back.Status != record.Status {
		t.Fatalf("round trip drifted: %+v", back)
	}
	if back.FinalDecision == nil || *back.FinalDecision != decision {
		t.Fatalf("overlay lost on round trip")
	}
}
