package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aziwar/dr-islam-website/backend/internal/logger"
)

func TestRequestIDAddsHeaderAndLogger(t *testing.T) {
	logger.Init(true, &bytes.Buffer{})
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		_, ok := c.Get("logger")
		assert.True(t, ok, "request-scoped logger missing from context")
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDReusesProxyID(t *testing.T) {
	logger.Init(true, &bytes.Buffer{})
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	edgeID := "1b4e28ba-2fa1-11d2-883f-0016d3cca427"

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, edgeID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, edgeID, w.Header().Get(RequestIDHeader))

	// A junk inbound id is replaced, never echoed back.
	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "<script>alert(1)</script>")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	got := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, got)
	assert.NotContains(t, got, "<")
}
