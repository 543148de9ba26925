package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aziwar/dr-islam-website/backend/internal/config"
	"github.com/aziwar/dr-islam-website/backend/internal/database"
	"github.com/aziwar/dr-islam-website/backend/internal/logger"
	"github.com/aziwar/dr-islam-website/backend/internal/server"
	"github.com/aziwar/dr-islam-website/backend/internal/storage"
	"github.com/aziwar/dr-islam-website/backend/internal/version"
)

func main() {
	// Setup logging with rotation
	logDir := "/app/data/logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		// Fallback to local directory if /app/data fails (e.g. local dev)
		logDir = "data/logs"
		_ = os.MkdirAll(logDir, 0755)
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "dri.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(cfg.Environment == "development", io.MultiWriter(os.Stdout, rotator))
	logger.Log().Infof("starting %s backend version %s", version.Name, version.Full())

	if !cfg.HasAdminSecret() {
		logger.Log().Warn("DRI_ADMIN_TOKEN not set; admin endpoints will reject every request")
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store storage.ObjectStore
	if cfg.S3Bucket != "" && cfg.S3AccessKey != "" {
		s3Store, err := storage.NewS3Store(ctx, storage.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			log.Fatalf("connect object store: %v", err)
		}
		store = s3Store
	} else {
		logger.Log().Warn("no S3 credentials configured; using in-memory gallery storage")
		store = storage.NewMemoryStore()
	}

	srv, err := server.New(db, store, cfg)
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	logger.Log().Infof("listening on :%s", cfg.HTTPPort)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
