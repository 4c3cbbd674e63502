package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	// Datenbank: DATABASE_URL hat Vorrang vor den Einzelwerten.
	DBDriver    string `envconfig:"DB_DRIVER" default:"postgres"` // postgres, mysql, sqlite
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      int    `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"news_verifier"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"8000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Google Custom Search
	GoogleAPIKey   string        `envconfig:"GOOGLE_API_KEY"`
	GoogleCX       string        `envconfig:"GOOGLE_CX"`
	SearchBaseURL  string        `envconfig:"SEARCH_BASE_URL" default:"https://www.googleapis.com/customsearch/v1"`
	SearchTimeout  time.Duration `envconfig:"SEARCH_TIMEOUT" default:"60s"`
	SearchCacheTTL time.Duration `envconfig:"SEARCH_CACHE_TTL" default:"0s"`

	// Sprachmodell für Bewertung und Zusammenfassung
	JudgmentProvider  string        `envconfig:"JUDGMENT_PROVIDER" default:"openai"` // openai, anthropic
	JudgmentAPIKey    string        `envconfig:"JUDGMENT_API_KEY"`
	JudgmentModel     string        `envconfig:"JUDGMENT_MODEL"`
	JudgmentBaseURL   string        `envconfig:"JUDGMENT_BASE_URL"`
	JudgmentTimeout   time.Duration `envconfig:"JUDGMENT_TIMEOUT" default:"60s"`
	JudgmentMaxTokens int           `envconfig:"JUDGMENT_MAX_TOKENS" default:"1024"`
	JudgmentRPS       float64       `envconfig:"JUDGMENT_RPS" default:"0"`

	// Pipeline-Verhalten
	RetentionPolicy string `envconfig:"RETENTION_POLICY" default:"verbatim"` // verbatim, lenient
	ReputationFile  string `envconfig:"REPUTATION_FILE"`
	// Achtung: lädt jede eingereichte URL serverseitig, auch interne Adressen (SSRF).
	// Nur aktivieren, wenn der Server keine internen Dienste erreicht.
	FetchURLContent bool   `envconfig:"FETCH_URL_CONTENT" default:"false"`

	// Aufbewahrung der Historie (0 = deaktiviert)
	HistoryRetentionDays int    `envconfig:"HISTORY_RETENTION_DAYS" default:"0"`
	PruneSchedule        string `envconfig:"PRUNE_SCHEDULE" default:"0 3 * * *"`

	// S3-Archiv für Verdicts und Backups (optional)
	ArchiveS3URL    string `envconfig:"ARCHIVE_S3_URL"`
	ArchiveS3Region string `envconfig:"ARCHIVE_S3_REGION" default:"us-east-1"`
	ArchiveS3Key    string `envconfig:"ARCHIVE_S3_KEY"`
	ArchiveS3Secret string `envconfig:"ARCHIVE_S3_SECRET"`
	ArchiveS3Bucket string `envconfig:"ARCHIVE_S3_BUCKET"`
	BackupKeep      int    `envconfig:"BACKUP_KEEP" default:"4"`
}

// DSN gibt den Data Source Name für den konfigurierten Treiber zurück.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	case "sqlite":
		return c.DBName + ".db"
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	}
}

// ArchiveEnabled meldet, ob ein S3-Bucket für das Verdict-Archiv konfiguriert ist.
func (c *Config) ArchiveEnabled() bool {
	return c.ArchiveS3Bucket != "" && c.ArchiveS3URL != ""
}

// Validate prüft Werte, die envconfig nicht selbst prüfen kann.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (supported: postgres, mysql, sqlite)", c.DBDriver)
	}
	switch strings.ToLower(c.RetentionPolicy) {
	case "verbatim", "lenient":
	default:
		return fmt.Errorf("unknown RETENTION_POLICY %q (supported: verbatim, lenient)", c.RetentionPolicy)
	}
	if c.HistoryRetentionDays < 0 {
		return fmt.Errorf("HISTORY_RETENTION_DAYS must not be negative")
	}
	return nil
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return &c, err
	}
	return &c, c.Validate()
}
