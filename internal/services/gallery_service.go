package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aziwar/dr-islam-website/backend/internal/imaging"
	"github.com/aziwar/dr-islam-website/backend/internal/logger"
	"github.com/aziwar/dr-islam-website/backend/internal/models"
	"github.com/aziwar/dr-islam-website/backend/internal/storage"
)

// Typed upload failures surfaced to the admin UI with specific codes.
var (
	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrMissingMetadata    = errors.New("missing required metadata")
	ErrPayloadTooLarge    = errors.New("payload too large")
	ErrStorageFailure     = errors.New("gallery storage unavailable")
	ErrCaseNotFound       = errors.New("case not found")
)

const (
	maxTitleLen       = 200
	maxCategoryLen    = 100
	maxDescriptionLen = 2000
)

// UploadCandidate carries one before/after pair plus metadata through
// request handling. It is never partially persisted: validation of both
// images and all metadata completes before the first write.
type UploadCandidate struct {
	Title          string
	Category       string
	Description    string
	TreatmentType  string
	UploadedBy     string
	PatientConsent bool
	BeforeImage    []byte
	AfterImage     []byte
}

// GalleryService manages before/after treatment cases: validation,
// atomic persistence to the object store plus SQLite, and the review
// workflow.
type GalleryService struct {
	db             *gorm.DB
	store          storage.ObjectStore
	maxUploadBytes int64
}

// NewGalleryService creates a gallery service instance.
func NewGalleryService(db *gorm.DB, store storage.ObjectStore, maxUploadBytes int64) *GalleryService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 * 1024 * 1024
	}
	return &GalleryService{db: db, store: store, maxUploadBytes: maxUploadBytes}
}

func contentTypeFor(kind imaging.Kind) string {
	switch kind {
	case imaging.KindPNG:
		return "image/png"
	case imaging.KindWebP:
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func (s *GalleryService) validateCandidate(cand UploadCandidate) (beforeKind, afterKind imaging.Kind, err error) {
	if cand.Title == "" || cand.Category == "" {
		return "", "", ErrMissingMetadata
	}
	if len(cand.Title) > maxTitleLen || len(cand.Category) > maxCategoryLen || len(cand.Description) > maxDescriptionLen {
		return "", "", ErrMissingMetadata
	}
	if len(cand.BeforeImage) == 0 || len(cand.AfterImage) == 0 {
		return "", "", ErrMissingMetadata
	}
	if int64(len(cand.BeforeImage)) > s.maxUploadBytes || int64(len(cand.AfterImage)) > s.maxUploadBytes {
		return "", "", ErrPayloadTooLarge
	}

	beforeKind, err = imaging.Validate(cand.BeforeImage)
	if err != nil {
		return "", "", fmt.Errorf("%w: before image: %v", ErrInvalidImageFormat, err)
	}
	afterKind, err = imaging.Validate(cand.AfterImage)
	if err != nil {
		return "", "", fmt.Errorf("%w: after image: %v", ErrInvalidImageFormat, err)
	}
	return beforeKind, afterKind, nil
}

// UploadCase validates and persists a before/after pair atomically: if
// anything fails, neither blob nor the metadata row survives. The second
// blob write failing triggers a best-effort delete of the first.
func (s *GalleryService) UploadCase(ctx context.Context, cand UploadCandidate) (*models.GalleryCase, error) {
	beforeKind, afterKind, err := s.validateCandidate(cand)
	if err != nil {
		return nil, err
	}

	caseID := fmt.Sprintf("case_%d_%s", time.Now().Unix(), uuid.New().String()[:8])
	beforeKey := fmt.Sprintf("assets/%s_before.%s", caseID, beforeKind)
	afterKey := fmt.Sprintf("assets/%s_after.%s", caseID, afterKind)

	if err := s.store.Put(ctx, beforeKey, contentTypeFor(beforeKind), cand.BeforeImage); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if err := s.store.Put(ctx, afterKey, contentTypeFor(afterKind), cand.AfterImage); err != nil {
		s.cleanupBlobs(beforeKey)
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	galleryCase := &models.GalleryCase{
		CaseID:         caseID,
		Title:          cand.Title,
		Category:       cand.Category,
		Description:    cand.Description,
		TreatmentType:  cand.TreatmentType,
		UploadedBy:     cand.UploadedBy,
		PatientConsent: cand.PatientConsent,
		BeforeKey:      beforeKey,
		AfterKey:       afterKey,
		Status:         models.CaseStatusPending,
	}

	if err := s.db.WithContext(ctx).Create(galleryCase).Error; err != nil {
		s.cleanupBlobs(beforeKey, afterKey)
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	logger.WithFields(map[string]interface{}{
		"case_id":     caseID,
		"category":    cand.Category,
		"uploaded_by": cand.UploadedBy,
	}).Info("gallery case uploaded, pending approval")

	return galleryCase, nil
}

// cleanupBlobs removes orphaned objects after a partial failure. Uses a
// background context so cleanup still runs when the request was aborted.
func (s *GalleryService) cleanupBlobs(keys ...string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			logger.WithFields(map[string]interface{}{"key": key}).
				WithError(err).Warn("failed to clean up orphaned gallery object")
		}
	}
}

// ListCases returns cases for the admin UI, optionally filtered by status.
func (s *GalleryService) ListCases(status string, limit, offset int) ([]models.GalleryCase, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := s.db.Model(&models.GalleryCase{})
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cases []models.GalleryCase
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&cases).Error; err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

// PublicGallery returns approved cases only, optionally by category.
func (s *GalleryService) PublicGallery(category string, limit int) ([]models.GalleryCase, error) {
	if limit <= 0 || limit > 50 {
		limit = 12
	}

	q := s.db.Where("status = ?", models.CaseStatusApproved)
	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}

	var cases []models.GalleryCase
	if err := q.Order("created_at desc").Limit(limit).Find(&cases).Error; err != nil {
		return nil, err
	}
	return cases, nil
}

// SetStatus transitions a case to approved or rejected.
func (s *GalleryService) SetStatus(caseID string, status models.CaseStatus, reviewedBy string) (*models.GalleryCase, error) {
	var galleryCase models.GalleryCase
	if err := s.db.Where("case_id = ?", caseID).First(&galleryCase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}

	galleryCase.Status = status
	if status == models.CaseStatusApproved {
		now := time.Now()
		galleryCase.ApprovedAt = &now
		galleryCase.ApprovedBy = reviewedBy
	}

	if err := s.db.Save(&galleryCase).Error; err != nil {
		return nil, err
	}
	return &galleryCase, nil
}

// DeleteCase removes the metadata row and both image blobs.
func (s *GalleryService) DeleteCase(ctx context.Context, caseID string) error {
	var galleryCase models.GalleryCase
	if err := s.db.Where("case_id = ?", caseID).First(&galleryCase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCaseNotFound
		}
		return err
	}

	if err := s.db.Delete(&galleryCase).Error; err != nil {
		return err
	}

	// Blob removal after the row delete: an orphaned blob is harmless,
	// a dangling row pointing at nothing is not.
	for _, key := range []string{galleryCase.BeforeKey, galleryCase.AfterKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			logger.WithFields(map[string]interface{}{"key": key}).
				WithError(err).Warn("failed to delete gallery object")
		}
	}
	return nil
}

// PendingCount reports how many cases await review.
func (s *GalleryService) PendingCount() (int64, error) {
	var n int64
	err := s.db.Model(&models.GalleryCase{}).Where("status = ?", models.CaseStatusPending).Count(&n).Error
	return n, err
}
