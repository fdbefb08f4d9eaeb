package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/diewo77/jobboard/internal/config"
	"github.com/diewo77/jobboard/internal/db"
	"github.com/diewo77/jobboard/internal/lifecycle"
	"github.com/diewo77/jobboard/internal/notify"
	"github.com/diewo77/jobboard/internal/server"
	"github.com/diewo77/jobboard/internal/storage"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func newFileStore(ctx context.Context, cfg config.Config) (storage.FileStore, error) {
	if cfg.UploadBackend == "s3" {
		return storage.NewS3Store(ctx, storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	return storage.NewDiskStore(cfg.UploadDir)
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	cfg := config.Load()

	if *migrateOnlyFlag {
		if _, err := db.ConnectAndMigrate(cfg.DatabaseDSN); err != nil {
			log.Fatalf("migrate-only failed: %v", err)
		}
		log.Info("migrations completed; exiting as requested")
		return
	}

	dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.SeedAdmin(dbConn, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	files, err := newFileStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("file store init failed: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(redisOpts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis ping failed: %v", err)
		}
	}

	mailer := notify.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, log)
	engine := lifecycle.NewEngine(dbConn, mailer, log)

	handler := server.New(server.Options{
		DB:     dbConn,
		Engine: engine,
		Files:  files,
		Redis:  rdb,
		Log:    log,
		Cfg:    cfg,
	})

	log.WithFields(logrus.Fields{"env": cfg.Env, "port": cfg.Port}).Info("starting server")
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
	log.Info("server gracefully stopped")
}
