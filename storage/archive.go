package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"news-verifier/models"
)

// VerdictDocument ist ein archivierter Bewertungsvorgang.
type VerdictDocument struct {
	Flow      string         `json:"flow"`
	Topic     string         `json:"topic,omitempty"`
	UserID    *uint          `json:"user_id,omitempty"`
	Article   models.Article `json:"article"`
	Verdict   models.Verdict `json:"verdict"`
	CreatedAt time.Time      `json:"created_at"`
}

// Archiver legt Verdict-Dokumente ab und gibt einen Link oder Schlüssel zurück.
type Archiver interface {
	StoreVerdict(ctx context.Context, doc VerdictDocument) (string, error)
}

// NopArchiver verwirft alle Dokumente.
type NopArchiver struct{}

func (NopArchiver) StoreVerdict(context.Context, VerdictDocument) (string, error) {
	return "", nil
}

// S3Archiver schreibt jedes Dokument als JSON-Objekt nach verdicts/<datum>/<uuid>.json.
type S3Archiver struct {
	Client   *s3.Client
	Endpoint string
	Bucket   string
}

// NewS3Archiver erstellt einen Archiver für den angegebenen Bucket.
func NewS3Archiver(client *s3.Client, endpoint, bucket string) *S3Archiver {
	return &S3Archiver{Client: client, Endpoint: endpoint, Bucket: bucket}
}

func (a *S3Archiver) StoreVerdict(ctx context.Context, doc VerdictDocument) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal verdict document: %w", err)
	}
	return UploadFile(ctx, a.Client, a.Endpoint, a.Bucket, VerdictKey(doc.CreatedAt, uuid.New()), "application/json", data)
}

// VerdictKey baut den Objektschlüssel für ein Dokument.
func VerdictKey(at time.Time, id uuid.UUID) string {
	return fmt.Sprintf("verdicts/%s/%s.json", at.UTC().Format("2006-01-02"), id)
}
