package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aziwar/dr-islam-website/backend/internal/models"
	"github.com/aziwar/dr-islam-website/backend/internal/services"
)

func newContactRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := OpenTestDB(t)
	service := services.NewContactService(db, nil)

	r := gin.New()
	r.POST("/api/contact", NewContactHandler(service).Submit)
	return r, db
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.9:12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestContactHandler_Submit(t *testing.T) {
	r, db := newContactRouter(t)

	w := postJSON(r, "/api/contact",
		`{"name":"Sara","email":"sara@example.com","message":"I would like to book a cleaning.","language":"ar"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"success":true`)

	var stored []models.ContactMessage
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "ar", stored[0].Language)
	assert.Equal(t, "10.0.0.9", stored[0].ClientIP)
}

func TestContactHandler_Submit_Invalid(t *testing.T) {
	r, _ := newContactRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `hello`},
		{"missing message", `{"name":"Sara","email":"sara@example.com"}`},
		{"bad email", `{"name":"Sara","email":"nope","message":"hi there doctor"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/api/contact", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid submission")
		})
	}
}
