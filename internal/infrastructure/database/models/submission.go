package models

import (
	"time"

	"github.com/lib/pq"
)

type Submission struct {
	ID       string `json:"id" gorm:"primaryKey;type:text"`
	VendorID string `json:"vendorId" gorm:"type:text;index;uniqueIndex:idx_vendor_period"`
	Year     int    `json:"year" gorm:"uniqueIndex:idx_vendor_period"`
	Month    int    `json:"month" gorm:"uniqueIndex:idx_vendor_period"`

	ConsultantName  string `json:"consultantName" gorm:"type:text"`
	ConsultantEmail string `json:"consultantEmail" gorm:"type:text"`

	Status string `json:"status" gorm:"type:text;index"`

	FinalDecision *string    `json:"finalDecision,omitempty" gorm:"type:text"`
	FinalRemarks  *string    `json:"finalRemarks,omitempty" gorm:"type:text"`
	FinalizedBy   *string    `json:"finalizedBy,omitempty" gorm:"type:text"`
	FinalizedAt   *time.Time `json:"finalizedAt,omitempty" gorm:"type:timestamp with time zone"`

	// bumped on every aggregate write; the optimistic-concurrency token
	Revision int64 `json:"revision" gorm:"not null;default:0"`

	Documents  []SubmissionDocument `json:"documents" gorm:"constraint:OnDelete:CASCADE;"`
	Rejections []Rejection          `json:"rejections" gorm:"constraint:OnDelete:CASCADE;"`

	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type SubmissionDocument struct {
	ID           string `json:"id" gorm:"primaryKey;type:text"`
	SubmissionID string `json:"submissionId" gorm:"type:text;index"`

	Type        string `json:"type" gorm:"type:text;index"`
	DisplayName string `json:"displayName" gorm:"type:text"`
	ArtifactRef string `json:"artifactRef" gorm:"type:text"`
	Mandatory   bool   `json:"mandatory"`
	Status      string `json:"status" gorm:"type:text"`

	Remarks    pq.StringArray `json:"remarks" gorm:"type:text[]"`
	ReviewedBy *string        `json:"reviewedBy,omitempty" gorm:"type:text"`
	ReviewedAt *time.Time     `json:"reviewedAt,omitempty" gorm:"type:timestamp with time zone"`

	UploadedAt time.Time `json:"uploadedAt" gorm:"type:timestamp with time zone"`
	Version    int       `json:"version" gorm:"not null;default:1"`
}

type Rejection struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	SubmissionID string `json:"submissionId" gorm:"type:text;index"`

	DocumentType  string     `json:"documentType" gorm:"type:text;index"`
	Reason        string     `json:"reason" gorm:"type:text"`
	RejectedBy    string     `json:"rejectedBy" gorm:"type:text"`
	RejectedAt    time.Time  `json:"rejectedAt" gorm:"type:timestamp with time zone"`
	Resubmitted   bool       `json:"resubmitted"`
	ResubmittedAt *time.Time `json:"resubmittedAt,omitempty" gorm:"type:timestamp with time zone"`
}
