package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aziwar/dr-islam-website/backend/internal/auth"
)

// AdminHandler serves the gallery admin page and issues short-lived
// session tokens so the admin UI can drop the long-term secret after
// its first request.
type AdminHandler struct {
	sessions *auth.SessionIssuer
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(sessions *auth.SessionIssuer) *AdminHandler {
	return &AdminHandler{sessions: sessions}
}

// CreateSession handles POST /api/admin/session. The guard has already
// verified the bearer secret.
func (h *AdminHandler) CreateSession(c *gin.Context) {
	token, expires, err := h.sessions.Issue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expires,
	})
}

// GalleryPage handles GET /admin/gallery, the guarded review interface.
func (h *AdminHandler) GalleryPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(adminGalleryPage))
}

const adminGalleryPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Gallery Admin - Dr. Islam Elsagher</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; background: #F8F7F5; color: #333; }
        header { background: #BEB093; color: white; padding: 1rem 2rem; }
        main { max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
        .card { background: white; border-radius: 10px; padding: 1.5rem; margin-bottom: 1.5rem; box-shadow: 0 2px 10px rgba(0,0,0,0.08); }
        label { display: block; margin: 0.6rem 0 0.2rem; font-weight: bold; }
        input, select, textarea { width: 100%; padding: 0.5rem; border: 1px solid #ccc; border-radius: 5px; box-sizing: border-box; }
        button { background: #8B4513; color: white; border: none; padding: 0.6rem 1.4rem; border-radius: 5px; cursor: pointer; margin-top: 1rem; }
        #cases article { border-bottom: 1px solid #eee; padding: 0.8rem 0; }
        .status-pending { color: #B8860B; }
        .status-approved { color: #2E8B57; }
        .status-rejected { color: #B22222; }
    </style>
</head>
<body>
<header><h1>Before/After Gallery Admin</h1></header>
<main>
    <section class="card">
        <h2>Upload New Case</h2>
        <form id="upload-form">
            <label for="title">Title</label>
            <input id="title" name="title" required maxlength="200">
            <label for="category">Category</label>
            <select id="category" name="category">
                <option value="whitening">Whitening</option>
                <option value="alignment">Alignment</option>
                <option value="restoration">Restoration</option>
                <option value="implants">Implants</option>
                <option value="general">General</option>
            </select>
            <label for="beforeImage">Before Image</label>
            <input id="beforeImage" name="beforeImage" type="file" accept="image/jpeg,image/png,image/webp" required>
            <label for="afterImage">After Image</label>
            <input id="afterImage" name="afterImage" type="file" accept="image/jpeg,image/png,image/webp" required>
            <label for="description">Description</label>
            <textarea id="description" name="description" rows="3" maxlength="2000"></textarea>
            <button type="submit">Upload</button>
        </form>
        <p id="upload-status"></p>
    </section>
    <section class="card">
        <h2>Pending Cases</h2>
        <div id="cases">Loading…</div>
    </section>
</main>
<script src="/assets/gallery-admin.js"></script>
</body>
</html>`
