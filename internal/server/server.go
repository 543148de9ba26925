package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/aziwar/dr-islam-website/backend/internal/api/middleware"
	"github.com/aziwar/dr-islam-website/backend/internal/api/routes"
	"github.com/aziwar/dr-islam-website/backend/internal/config"
	"github.com/aziwar/dr-islam-website/backend/internal/site"
	"github.com/aziwar/dr-islam-website/backend/internal/storage"
)

// Server wraps the HTTP engine and shared dependencies for easier testing.
type Server struct {
	Engine    *gin.Engine
	cfg       config.Config
	scheduler *cron.Cron
}

// New wires up the HTTP router, middleware chain and routes.
func New(db *gorm.DB, store storage.ObjectStore, cfg config.Config) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Environment == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Recovery(cfg.Environment == "development"),
		middleware.SecurityHeaders(middleware.SecurityHeadersConfig{
			IsDevelopment: cfg.Environment == "development",
		}),
	)

	scheduler, err := routes.Register(router, db, store, cfg)
	if err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	attachSite(router, cfg.SiteDir)

	return &Server{Engine: router, cfg: cfg, scheduler: scheduler}, nil
}

// Close stops background maintenance jobs and waits for any running one
// to finish.
func (s *Server) Close() {
	if s.scheduler == nil {
		return
	}
	<-s.scheduler.Stop().Done()
}

// attachSite serves the bilingual static site with language routing:
// anything the API does not claim resolves through site.ResolvePath
// against the site directory, falling back to the branded 404 page.
func attachSite(router *gin.Engine, siteDir string) {
	if siteDir == "" {
		return
	}

	info, err := os.Stat(siteDir)
	if err != nil || !info.IsDir() {
		return
	}

	root, err := filepath.Abs(siteDir)
	if err != nil {
		return
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
			return
		}

		resolved := site.ResolvePath(c.Request.URL.Path)
		target := filepath.Join(root, filepath.FromSlash(resolved))

		// Joined path must stay inside the site directory.
		if !strings.HasPrefix(filepath.Clean(target), root+string(os.PathSeparator)) {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(site.NotFoundPage()))
			return
		}

		if fi, err := os.Stat(target); err != nil || fi.IsDir() {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(site.NotFoundPage()))
			return
		}

		c.Header("Content-Type", site.ContentType(resolved))
		c.Header("Cache-Control", site.CacheControl(resolved))
		c.File(target)
	})
}

// Run starts the HTTP server with proper shutdown semantics.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", s.cfg.HTTPPort),
		Handler: s.Engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	defer s.Close()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
