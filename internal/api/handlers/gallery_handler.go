package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aziwar/dr-islam-website/backend/internal/api/middleware"
	"github.com/aziwar/dr-islam-website/backend/internal/metrics"
	"github.com/aziwar/dr-islam-website/backend/internal/models"
	"github.com/aziwar/dr-islam-website/backend/internal/services"
	"github.com/aziwar/dr-islam-website/backend/internal/storage"
)

// GalleryHandler exposes the before/after case API: admin upload and
// review plus the public approved-case listing.
type GalleryHandler struct {
	service        *services.GalleryService
	store          storage.ObjectStore
	maxUploadBytes int64
}

// NewGalleryHandler creates a gallery handler.
func NewGalleryHandler(service *services.GalleryService, store storage.ObjectStore, maxUploadBytes int64) *GalleryHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 * 1024 * 1024
	}
	return &GalleryHandler{service: service, store: store, maxUploadBytes: maxUploadBytes}
}

func (h *GalleryHandler) readImage(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > h.maxUploadBytes {
		return nil, services.ErrPayloadTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// +1 so an underreported multipart size still trips the limit.
	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > h.maxUploadBytes {
		return nil, services.ErrPayloadTooLarge
	}
	return data, nil
}

func uploadErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidImageFormat):
		metrics.IncUpload("invalid_format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "InvalidImageFormat"})
	case errors.Is(err, services.ErrMissingMetadata):
		metrics.IncUpload("missing_metadata")
		c.JSON(http.StatusBadRequest, gin.H{"error": "MissingMetadata"})
	case errors.Is(err, services.ErrPayloadTooLarge):
		metrics.IncUpload("too_large")
		c.JSON(http.StatusBadRequest, gin.H{"error": "PayloadTooLarge"})
	default:
		// Storage failures are retryable by the caller; nothing was persisted.
		metrics.IncUpload("storage_failure")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "StorageFailure"})
	}
}

// Upload handles POST /api/gallery/upload. The caller is already
// authorized by the admin guard.
func (h *GalleryHandler) Upload(c *gin.Context) {
	beforeFile, err := c.FormFile("beforeImage")
	if err != nil {
		metrics.IncUpload("missing_metadata")
		c.JSON(http.StatusBadRequest, gin.H{"error": "MissingMetadata"})
		return
	}
	afterFile, err := c.FormFile("afterImage")
	if err != nil {
		metrics.IncUpload("missing_metadata")
		c.JSON(http.StatusBadRequest, gin.H{"error": "MissingMetadata"})
		return
	}

	beforeData, err := h.readImage(beforeFile)
	if err != nil {
		uploadErrorResponse(c, err)
		return
	}
	afterData, err := h.readImage(afterFile)
	if err != nil {
		uploadErrorResponse(c, err)
		return
	}

	cand := services.UploadCandidate{
		Title:          c.PostForm("title"),
		Category:       c.PostForm("category"),
		Description:    c.PostForm("description"),
		TreatmentType:  c.PostForm("treatmentType"),
		UploadedBy:     c.PostForm("uploadedBy"),
		PatientConsent: c.PostForm("patientConsent") == "true",
		BeforeImage:    beforeData,
		AfterImage:     afterData,
	}

	galleryCase, err := h.service.UploadCase(c.Request.Context(), cand)
	if err != nil {
		uploadErrorResponse(c, err)
		return
	}

	metrics.IncUpload("accepted")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"case_id": galleryCase.CaseID,
		"status":  galleryCase.Status,
		"message": "Case uploaded successfully and pending approval",
	})
}

// List handles GET /api/gallery/list for the admin UI.
func (h *GalleryHandler) List(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	cases, total, err := h.service.ListCases(status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cases": cases, "total": total})
}

// Public handles GET /api/gallery/public. No authentication: only
// approved cases are ever returned.
func (h *GalleryHandler) Public(c *gin.Context) {
	category := c.DefaultQuery("category", "all")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	cases, err := h.service.PublicGallery(category, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load gallery"})
		return
	}

	out := make([]map[string]interface{}, 0, len(cases))
	for _, gc := range cases {
		out = append(out, gc.PublicView())
	}
	c.JSON(http.StatusOK, gin.H{"cases": out, "total": len(out)})
}

// Approve handles POST /api/gallery/approve/:id.
func (h *GalleryHandler) Approve(c *gin.Context) {
	h.review(c, models.CaseStatusApproved)
}

// Reject handles POST /api/gallery/reject/:id.
func (h *GalleryHandler) Reject(c *gin.Context) {
	h.review(c, models.CaseStatusRejected)
}

func (h *GalleryHandler) review(c *gin.Context, status models.CaseStatus) {
	galleryCase, err := h.service.SetStatus(c.Param("id"), status, "admin")
	if err != nil {
		if errors.Is(err, services.ErrCaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update case"})
		return
	}

	middleware.GetRequestLogger(c).WithFields(map[string]interface{}{
		"case_id": galleryCase.CaseID,
		"status":  galleryCase.Status,
	}).Info("gallery case reviewed")

	c.JSON(http.StatusOK, gin.H{"success": true, "case_id": galleryCase.CaseID, "status": galleryCase.Status})
}

// Delete handles DELETE /api/gallery/delete/:id.
func (h *GalleryHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteCase(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrCaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete case"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Image streams a stored gallery object, GET /images/*key.
func (h *GalleryHandler) Image(c *gin.Context) {
	key := c.Param("key")
	if len(key) > 0 && key[0] == '/' {
		key = key[1:]
	}

	data, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "StorageFailure"})
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
