package handlers

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aziwar/dr-islam-website/backend/internal/services"
	"github.com/aziwar/dr-islam-website/backend/internal/storage"
)

func testPNG() []byte {
	b := make([]byte, 32)
	copy(b, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	copy(b[8:], []byte{0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R'})
	binary.BigEndian.PutUint32(b[16:20], 640)
	binary.BigEndian.PutUint32(b[20:24], 480)
	return b
}

func newGalleryRouter(t *testing.T) (*gin.Engine, *services.GalleryService, *storage.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := OpenTestDB(t)
	store := storage.NewMemoryStore()
	service := services.NewGalleryService(db, store, 1024*1024)
	handler := NewGalleryHandler(service, store, 1024*1024)

	r := gin.New()
	r.POST("/api/gallery/upload", handler.Upload)
	r.GET("/api/gallery/list", handler.List)
	r.GET("/api/gallery/public", handler.Public)
	r.POST("/api/gallery/approve/:id", handler.Approve)
	r.POST("/api/gallery/reject/:id", handler.Reject)
	r.DELETE("/api/gallery/delete/:id", handler.Delete)
	r.GET("/images/*key", handler.Image)
	return r, service, store
}

type filePart struct {
	field, name string
	data        []byte
}

func multipartBody(t *testing.T, fields map[string]string, files []filePart) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func uploadRequest(t *testing.T, r *gin.Engine, fields map[string]string, files []filePart) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, files)
	req, _ := http.NewRequest("POST", "/api/gallery/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGalleryHandler_Upload(t *testing.T) {
	r, _, store := newGalleryRouter(t)

	w := uploadRequest(t,
		r,
		map[string]string{"title": "Whitening", "category": "whitening"},
		[]filePart{
			{"beforeImage", "before.png", testPNG()},
			{"afterImage", "after.png", testPNG()},
		})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["case_id"])
	assert.Equal(t, "pending", resp["status"])
	assert.Equal(t, 2, store.Len())
}

func TestGalleryHandler_Upload_ScriptRenamedToJPEG(t *testing.T) {
	r, _, store := newGalleryRouter(t)

	// Text script bytes with a .jpg name and image content type: the
	// declared type is ignored, only the payload counts.
	w := uploadRequest(t,
		r,
		map[string]string{"title": "Evil", "category": "general"},
		[]filePart{
			{"beforeImage", "before.jpg", []byte("#!/bin/sh\necho pwned\n")},
			{"afterImage", "after.png", testPNG()},
		})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "InvalidImageFormat")
	assert.Equal(t, 0, store.Len())
}

func TestGalleryHandler_Upload_MissingFiles(t *testing.T) {
	r, _, _ := newGalleryRouter(t)

	w := uploadRequest(t, r,
		map[string]string{"title": "No images", "category": "general"},
		[]filePart{{"beforeImage", "before.png", testPNG()}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MissingMetadata")
}

func TestGalleryHandler_Upload_MissingTitle(t *testing.T) {
	r, _, _ := newGalleryRouter(t)

	w := uploadRequest(t, r,
		map[string]string{"category": "general"},
		[]filePart{
			{"beforeImage", "before.png", testPNG()},
			{"afterImage", "after.png", testPNG()},
		})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MissingMetadata")
}

func TestGalleryHandler_Upload_TooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := OpenTestDB(t)
	store := storage.NewMemoryStore()
	service := services.NewGalleryService(db, store, 64)
	handler := NewGalleryHandler(service, store, 64)

	r := gin.New()
	r.POST("/api/gallery/upload", handler.Upload)

	big := append(testPNG(), make([]byte, 256)...)
	w := uploadRequest(t, r,
		map[string]string{"title": "Big", "category": "general"},
		[]filePart{
			{"beforeImage", "before.png", big},
			{"afterImage", "after.png", testPNG()},
		})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PayloadTooLarge")
}

func TestGalleryHandler_Upload_StorageFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := OpenTestDB(t)
	store := storage.NewMemoryStore()
	store.FailPuts = context.DeadlineExceeded
	service := services.NewGalleryService(db, store, 1024*1024)
	handler := NewGalleryHandler(service, store, 1024*1024)

	r := gin.New()
	r.POST("/api/gallery/upload", handler.Upload)

	w := uploadRequest(t, r,
		map[string]string{"title": "T", "category": "general"},
		[]filePart{
			{"beforeImage", "before.png", testPNG()},
			{"afterImage", "after.png", testPNG()},
		})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "StorageFailure")
}

func TestGalleryHandler_ReviewFlow(t *testing.T) {
	r, service, _ := newGalleryRouter(t)

	gc, err := service.UploadCase(context.Background(), services.UploadCandidate{
		Title: "Case", Category: "general",
		BeforeImage: testPNG(), AfterImage: testPNG(),
	})
	require.NoError(t, err)

	// Public gallery is empty until approval.
	req, _ := http.NewRequest("GET", "/api/gallery/public", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)

	req, _ = http.NewRequest("POST", "/api/gallery/approve/"+gc.CaseID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/api/gallery/public", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), gc.CaseID)
	assert.NotContains(t, w.Body.String(), "uploaded_by", "review-only fields stay private")
}

func TestGalleryHandler_ApproveUnknownCase(t *testing.T) {
	r, _, _ := newGalleryRouter(t)

	req, _ := http.NewRequest("POST", "/api/gallery/approve/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGalleryHandler_DeleteRemovesImages(t *testing.T) {
	r, service, store := newGalleryRouter(t)

	gc, err := service.UploadCase(context.Background(), services.UploadCandidate{
		Title: "Case", Category: "general",
		BeforeImage: testPNG(), AfterImage: testPNG(),
	})
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	req, _ := http.NewRequest("DELETE", "/api/gallery/delete/"+gc.CaseID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, store.Len())
}

// readFailStore returns a fixed error from Get, shaped like the bucket
// client's wrapped errors.
type readFailStore struct {
	*storage.MemoryStore
	getErr error
}

func (s *readFailStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, s.getErr
}

func TestGalleryHandler_Image_BucketErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(getErr error) *gin.Engine {
		db := OpenTestDB(t)
		store := &readFailStore{MemoryStore: storage.NewMemoryStore(), getErr: getErr}
		service := services.NewGalleryService(db, store, 1024*1024)
		handler := NewGalleryHandler(service, store, 1024*1024)
		r := gin.New()
		r.GET("/images/*key", handler.Image)
		return r
	}

	// A missing key surfaces wrapped from the bucket client and must
	// still map to 404, not a retryable failure.
	r := newRouter(fmt.Errorf("get object assets/x.png: %w", storage.ErrNotFound))
	req, _ := http.NewRequest("GET", "/images/assets/x.png", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	r = newRouter(errors.New("connection reset"))
	req, _ = http.NewRequest("GET", "/images/assets/x.png", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "StorageFailure")
}

func TestGalleryHandler_Image(t *testing.T) {
	r, service, _ := newGalleryRouter(t)

	gc, err := service.UploadCase(context.Background(), services.UploadCandidate{
		Title: "Case", Category: "general",
		BeforeImage: testPNG(), AfterImage: testPNG(),
	})
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/images/"+gc.BeforeKey, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "immutable")

	req, _ = http.NewRequest("GET", "/images/assets/missing.png", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
