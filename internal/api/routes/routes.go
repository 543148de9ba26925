package routes

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/aziwar/dr-islam-website/backend/internal/api/handlers"
	"github.com/aziwar/dr-islam-website/backend/internal/api/middleware"
	"github.com/aziwar/dr-islam-website/backend/internal/auth"
	"github.com/aziwar/dr-islam-website/backend/internal/config"
	"github.com/aziwar/dr-islam-website/backend/internal/logger"
	"github.com/aziwar/dr-islam-website/backend/internal/metrics"
	"github.com/aziwar/dr-islam-website/backend/internal/models"
	"github.com/aziwar/dr-islam-website/backend/internal/services"
	"github.com/aziwar/dr-islam-website/backend/internal/storage"
)

// Register wires up API routes, performs automatic migrations and
// starts the maintenance scheduler. The returned scheduler must be
// stopped on shutdown.
func Register(router *gin.Engine, db *gorm.DB, store storage.ObjectStore, cfg config.Config) (*cron.Cron, error) {
	if err := db.AutoMigrate(
		&models.GalleryCase{},
		&models.ContactMessage{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	router.GET("/api/v1/health", handlers.HealthHandler)

	registry := prometheus.NewRegistry()
	metrics.Register(registry)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Admin auth building blocks.
	validator := auth.NewTokenValidator(cfg.AdminToken, cfg.AdminTokenHash)
	lockouts := auth.NewLockoutTracker(auth.LockoutPolicy{
		Threshold: cfg.LockoutThreshold,
		Window:    cfg.LockoutWindow,
		Duration:  cfg.LockoutDuration,
	})
	lockouts.OnLockout(func(identity string) {
		metrics.IncLockoutEngaged()
		logger.WithFields(map[string]interface{}{"client": identity}).
			Warn("admin client locked out after repeated failures")
	})

	sessions, err := auth.NewSessionIssuer(auth.DefaultSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("create session issuer: %w", err)
	}

	guard := middleware.NewAdminGuard(validator, lockouts, sessions)
	adminLimit := middleware.NewAdminRateLimiter(cfg.AdminRequestLimit, cfg.AdminRequestWindow)
	contactLimit := middleware.NewAdminRateLimiter(10, time.Hour)

	// Services and handlers.
	galleryService := services.NewGalleryService(db, store, cfg.MaxUploadBytes)
	galleryHandler := handlers.NewGalleryHandler(galleryService, store, cfg.MaxUploadBytes)
	contactService := services.NewContactService(db, cfg.NotifyURLs)
	contactHandler := handlers.NewContactHandler(contactService)
	adminHandler := handlers.NewAdminHandler(sessions)

	// Public surface.
	router.GET("/api/gallery/public", galleryHandler.Public)
	router.GET("/api/placeholder/:slot", handlers.PlaceholderHandler)
	router.GET("/images/*key", galleryHandler.Image)
	router.POST("/api/contact", contactLimit.Middleware(), contactHandler.Submit)

	// Protected admin surface. The guard decides; the rate limiter
	// bounds even authenticated traffic.
	protected := router.Group("/")
	protected.Use(adminLimit.Middleware(), guard.Middleware())
	{
		protected.GET("/admin/gallery", adminHandler.GalleryPage)
		protected.POST("/api/admin/session", adminHandler.CreateSession)

		protected.POST("/api/gallery/upload", galleryHandler.Upload)
		protected.GET("/api/gallery/list", galleryHandler.List)
		protected.POST("/api/gallery/approve/:id", galleryHandler.Approve)
		protected.POST("/api/gallery/reject/:id", galleryHandler.Reject)
		protected.DELETE("/api/gallery/delete/:id", galleryHandler.Delete)
	}

	// Background maintenance: reclaim idle lockout/limiter state and
	// remind reviewers about pending cases once a day.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("*/5 * * * *", func() {
		if n := lockouts.Sweep(); n > 0 {
			logger.WithFields(map[string]interface{}{"entries": n}).Debug("swept stale lockout entries")
		}
		adminLimit.Sweep(2 * cfg.AdminRequestWindow)
		contactLimit.Sweep(2 * time.Hour)
	}); err != nil {
		return nil, fmt.Errorf("schedule lockout sweep: %w", err)
	}
	if _, err := scheduler.AddFunc("0 8 * * *", func() {
		n, err := galleryService.PendingCount()
		if err != nil || n == 0 {
			return
		}
		contactService.Notify("Gallery review reminder",
			fmt.Sprintf("%d case(s) are waiting for approval at /admin/gallery", n))
	}); err != nil {
		return nil, fmt.Errorf("schedule review reminder: %w", err)
	}
	scheduler.Start()

	return scheduler, nil
}
