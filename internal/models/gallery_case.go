package models

import "time"

// CaseStatus tracks where a before/after case sits in the review workflow.
type CaseStatus string

const (
	// CaseStatusPending marks freshly uploaded cases awaiting review.
	CaseStatusPending CaseStatus = "pending"
	// CaseStatusApproved marks cases cleared for the public gallery.
	CaseStatusApproved CaseStatus = "approved"
	// CaseStatusRejected marks cases reviewed and declined.
	CaseStatusRejected CaseStatus = "rejected"
)

// GalleryCase is a before/after treatment case shown in the clinic gallery.
// Image bytes live in the object store; only the keys are recorded here.
type GalleryCase struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	CaseID         string     `json:"case_id" gorm:"uniqueIndex"`
	Title          string     `json:"title"`
	Category       string     `json:"category" gorm:"index"`
	Description    string     `json:"description,omitempty"`
	TreatmentType  string     `json:"treatment_type,omitempty"`
	BeforeKey      string     `json:"before_key"`
	AfterKey       string     `json:"after_key"`
	Status         CaseStatus `json:"status" gorm:"index;default:'pending'"`
	UploadedBy     string     `json:"uploaded_by,omitempty"`
	PatientConsent bool       `json:"patient_consent"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	ApprovedBy     string     `json:"approved_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicView strips review-only fields for the unauthenticated gallery listing.
func (g GalleryCase) PublicView() map[string]interface{} {
	return map[string]interface{}{
		"id":             g.CaseID,
		"title":          g.Title,
		"category":       g.Category,
		"description":    g.Description,
		"treatment_type": g.TreatmentType,
		"before_image":   g.BeforeKey,
		"after_image":    g.AfterKey,
	}
}
