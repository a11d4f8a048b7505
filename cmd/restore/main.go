// Command restore downloads an encrypted backup from S3, decrypts and
// validates it, and replaces the local database file. Run it while the
// server is stopped.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mverhoef/opvang/internal/backup"
	"github.com/mverhoef/opvang/internal/database"
	"github.com/mverhoef/opvang/internal/logging"
	"github.com/mverhoef/opvang/internal/store"
)

func main() {
	var (
		backupID = flag.Int64("id", 0, "backup id to restore (see the backups table)")
		list     = flag.Bool("list", false, "list backup history and exit")
	)
	flag.Parse()

	logger := logging.Setup(os.Getenv("OPVANG_LOG_LEVEL"))

	dbPath := os.Getenv("OPVANG_DB_PATH")
	if dbPath == "" {
		dbPath = "opvang.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	backupStore := store.NewBackupStore(db)

	if *list {
		backups, err := backupStore.List(50)
		if err != nil {
			log.Fatalf("list backups: %v", err)
		}
		for _, b := range backups {
			started := "-"
			if b.StartedAt != nil {
				started = b.StartedAt.Format("2006-01-02 15:04")
			}
			fmt.Printf("%d\t%s\t%s\t%s\n", b.ID, b.Filename, b.Status, started)
		}
		return
	}

	if *backupID == 0 {
		log.Fatal("missing -id flag; use -list to see available backups")
	}

	cfg := backup.Config{
		S3: backup.S3Config{
			Endpoint:  os.Getenv("OPVANG_S3_ENDPOINT"),
			Bucket:    os.Getenv("OPVANG_S3_BUCKET"),
			Region:    os.Getenv("OPVANG_S3_REGION"),
			AccessKey: os.Getenv("OPVANG_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("OPVANG_S3_SECRET_KEY"),
		},
		DBPath:     dbPath,
		Passphrase: os.Getenv("OPVANG_BACKUP_PASSPHRASE"),
	}

	mgr := backup.NewManager(cfg, db, backupStore, logger)
	if !mgr.Enabled() {
		log.Fatal("backup not configured: set OPVANG_S3_* and OPVANG_BACKUP_PASSPHRASE")
	}

	if err := mgr.Restore(context.Background(), *backupID, dbPath); err != nil {
		log.Fatalf("restore: %v", err)
	}

	fmt.Printf("Restored backup %d to %s\n", *backupID, dbPath)
}
