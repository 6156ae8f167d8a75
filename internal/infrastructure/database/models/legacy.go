package models

import (
	"time"
)

// LegacyDocument is the historical flat per-document shape. It is a
// read-only compatibility surface: new writes go exclusively through
// Submission/SubmissionDocument. Its status column carries the legacy
// vocabulary ("pending", "declined", ...), mapped to the canonical
// enum at the reconciler boundary.
type LegacyDocument struct {
	ID       string `json:"id" gorm:"primaryKey;type:text"`
	VendorID string `json:"vendorId" gorm:"type:text;index"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`

	Type        string `json:"type" gorm:"type:text"`
	DisplayName string `json:"displayName" gorm:"type:text"`
	ArtifactRef string `json:"artifactRef" gorm:"type:text"`
	Mandatory   bool   `json:"mandatory"`
	Status      string `json:"status" gorm:"type:text"`

	Remarks    string     `json:"remarks" gorm:"type:text"`
	ReviewedBy *string    `json:"reviewedBy,omitempty" gorm:"type:text"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty" gorm:"type:timestamp with time zone"`

	UploadedAt time.Time `json:"uploadedAt" gorm:"type:timestamp with time zone"`
}
