package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mverhoef/opvang/internal/backup"
	"github.com/mverhoef/opvang/internal/database"
	"github.com/mverhoef/opvang/internal/email"
	"github.com/mverhoef/opvang/internal/logging"
	"github.com/mverhoef/opvang/internal/server"
)

func main() {
	logger := logging.Setup(os.Getenv("OPVANG_LOG_LEVEL"))

	port := os.Getenv("OPVANG_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("OPVANG_DB_PATH")
	if dbPath == "" {
		dbPath = "opvang.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	backupCfg := backup.Config{
		S3: backup.S3Config{
			Endpoint:  os.Getenv("OPVANG_S3_ENDPOINT"),
			Bucket:    os.Getenv("OPVANG_S3_BUCKET"),
			Region:    os.Getenv("OPVANG_S3_REGION"),
			AccessKey: os.Getenv("OPVANG_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("OPVANG_S3_SECRET_KEY"),
		},
		DBPath:        dbPath,
		Passphrase:    os.Getenv("OPVANG_BACKUP_PASSPHRASE"),
		ScheduleHour:  envInt("OPVANG_BACKUP_HOUR", 3),
		RetentionDays: envInt("OPVANG_BACKUP_RETENTION_DAYS", 30),
	}

	emailClient := email.NewClient(
		os.Getenv("OPVANG_POSTMARK_TOKEN"),
		os.Getenv("OPVANG_POSTMARK_FROM"),
	)

	srv := server.New(db, emailClient, backupCfg, logger)

	backupCtx, cancelBackups := context.WithCancel(context.Background())
	srv.BackupManager().Start(backupCtx)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Opvang Register running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	cancelBackups()
	srv.BackupManager().Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
