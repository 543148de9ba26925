package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aziwar/dr-islam-website/backend/internal/site"
)

// PlaceholderHandler serves generated SVG placeholders for gallery slots
// that have no approved case yet, GET /api/placeholder/:slot.
func PlaceholderHandler(c *gin.Context) {
	width, _ := strconv.Atoi(c.DefaultQuery("w", "300"))
	height, _ := strconv.Atoi(c.DefaultQuery("h", "200"))

	svg := site.PlaceholderSVG(c.Param("slot"), width, height)

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}
