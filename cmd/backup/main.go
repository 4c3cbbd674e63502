package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"news-verifier/config"
	"news-verifier/storage"
)

const backupPrefix = "backups/"

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	logging.Info("Starte Backup-Prozess...")

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Fehler beim Laden der Konfiguration", zap.Error(err))
	}
	if !cfg.ArchiveEnabled() {
		logging.Fatal("ARCHIVE_S3_URL und ARCHIVE_S3_BUCKET müssen gesetzt sein")
	}
	ctx := context.Background()

	// 1. Datenbank-Dump erstellen
	dumpData, ext, err := createDump(cfg)
	if err != nil {
		logging.Fatal("Fehler beim Erstellen des DB-Dumps", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	// 2. S3-Client erstellen
	s3Client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		logging.Fatal("Fehler beim Erstellen des S3-Clients", zap.Error(err))
	}

	// 3. Backup nach S3 hochladen
	key := backupKey(time.Now(), ext)
	link, err := storage.UploadFile(ctx, s3Client, cfg.ArchiveS3URL, cfg.ArchiveS3Bucket, key, "application/gzip", dumpData)
	if err != nil {
		logging.Fatal("Fehler beim Hochladen nach S3", zap.Error(err))
	}
	logging.Info("Backup erfolgreich hochgeladen", zap.String("link", link), zap.Int("bytes", len(dumpData)))

	// 4. Alte Backups rotieren
	if err := rotateBackups(ctx, s3Client, cfg, logging); err != nil {
		logging.Fatal("Fehler bei der Rotation alter Backups", zap.Error(err))
	}

	logging.Info("Backup-Prozess erfolgreich abgeschlossen.")
}

func backupKey(now time.Time, ext string) string {
	return fmt.Sprintf("%sbackup-%s.%s.gz", backupPrefix, now.UTC().Format("2006-01-02T15-04-05Z"), ext)
}

// dumpCommand baut den Dump-Befehl für den Treiber. Passwörter gehen über die Umgebung.
func dumpCommand(cfg *config.Config) (*exec.Cmd, string, error) {
	switch cfg.DBDriver {
	case "postgres":
		var cmd *exec.Cmd
		if cfg.DatabaseURL != "" {
			cmd = exec.Command("pg_dump", "-d", cfg.DatabaseURL, "-w")
		} else {
			cmd = exec.Command("pg_dump",
				"-h", cfg.DBHost,
				"-p", strconv.Itoa(cfg.DBPort),
				"-U", cfg.DBUser,
				"-d", cfg.DBName,
				"-w",
			)
		}
		cmd.Env = append(os.Environ(), "PGPASSWORD="+cfg.DBPassword)
		return cmd, "sql", nil
	case "mysql":
		cmd := exec.Command("mysqldump",
			"-h", cfg.DBHost,
			"-P", strconv.Itoa(cfg.DBPort),
			"-u", cfg.DBUser,
			"--single-transaction",
			cfg.DBName,
		)
		cmd.Env = append(os.Environ(), "MYSQL_PWD="+cfg.DBPassword)
		return cmd, "sql", nil
	case "sqlite":
		return exec.Command("sqlite3", cfg.DSN(), ".dump"), "sql", nil
	}
	return nil, "", fmt.Errorf("no dump tool for driver %s", cfg.DBDriver)
}

func createDump(cfg *config.Config) ([]byte, string, error) {
	cmd, ext, err := dumpCommand(cfg)
	if err != nil {
		return nil, "", err
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, "", err
	}
	if err := cmd.Start(); err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if _, err := io.Copy(gzipWriter, stdout); err != nil {
		return nil, "", err
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, "", err
	}
	if err := cmd.Wait(); err != nil {
		return nil, "", fmt.Errorf("%s: %w: %s", cmd.Path, err, bytes.TrimSpace(stderr.Bytes()))
	}

	return buf.Bytes(), ext, nil
}

// expiredBackups liefert die Schlüssel aller Objekte jenseits der neuesten keep.
func expiredBackups(objects []types.Object, keep int) []string {
	if len(objects) <= keep {
		return nil
	}
	sorted := append([]types.Object(nil), objects...)
	sort.Slice(sorted, func(i, j int) bool {
		return aws.ToTime(sorted[i].LastModified).After(aws.ToTime(sorted[j].LastModified))
	})

	keys := make([]string, 0, len(sorted)-keep)
	for _, obj := range sorted[keep:] {
		keys = append(keys, aws.ToString(obj.Key))
	}
	return keys
}

func rotateBackups(ctx context.Context, client *s3.Client, cfg *config.Config, logging *zap.Logger) error {
	output, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(cfg.ArchiveS3Bucket),
		Prefix: aws.String(backupPrefix),
	})
	if err != nil {
		return err
	}

	expired := expiredBackups(output.Contents, cfg.BackupKeep)
	if len(expired) == 0 {
		logging.Info("Keine Rotation nötig", zap.Int("backups", len(output.Contents)), zap.Int("keep", cfg.BackupKeep))
		return nil
	}

	for _, key := range expired {
		logging.Info("Lösche altes Backup", zap.String("key", key))
		_, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(cfg.ArchiveS3Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			logging.Error("Fehler beim Löschen", zap.String("key", key), zap.Error(err))
		}
	}

	return nil
}
