package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"news-verifier/metrics"
	"news-verifier/models"
)

const defaultHistoryLimit = 10

// InteractionRecorder speichert Interaktionen und Nutzer über GORM.
type InteractionRecorder struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewInteractionRecorder erstellt einen neuen Recorder.
func NewInteractionRecorder(db *gorm.DB, logger *zap.Logger) *InteractionRecorder {
	return &InteractionRecorder{DB: db, Logger: logger}
}

// RecordInput fasst alles zusammen, was zu einer Interaktion gespeichert wird.
type RecordInput struct {
	UserID  *uint
	Type    string
	Topic   *string
	Article models.Article
	Verdict models.Verdict
	Summary string
}

// Record legt eine Interaktion an. Jeder Aufruf committet für sich.
func (r *InteractionRecorder) Record(ctx context.Context, in RecordInput) (*models.Interaction, error) {
	row := models.Interaction{
		UserID:     in.UserID,
		Type:       in.Type,
		Topic:      in.Topic,
		Title:      in.Article.Title,
		URL:        in.Article.URL,
		RawText:    in.Article.Content,
		Label:      in.Verdict.Label,
		Confidence: in.Verdict.Confidence,
		Summary:    in.Summary,
	}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("record %s interaction: %w", in.Type, err)
	}
	metrics.InteractionsRecorded.WithLabelValues(in.Type).Inc()
	r.Logger.Debug("Interaktion gespeichert", zap.Uint("id", row.ID), zap.String("type", row.Type))
	return &row, nil
}

// Recent liefert die neuesten Interaktionen eines Nutzers.
func (r *InteractionRecorder) Recent(ctx context.Context, userID uint, limit int) ([]models.Interaction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	var rows []models.Interaction
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load history for user %d: %w", userID, err)
	}
	return rows, nil
}

// Delete entfernt eine Interaktion. found ist false, wenn es keine Zeile mit der ID gab.
func (r *InteractionRecorder) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.DB.WithContext(ctx).Delete(&models.Interaction{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete interaction %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// CreateUser legt einen Nutzer an. email darf nil sein.
func (r *InteractionRecorder) CreateUser(ctx context.Context, name string, email *string) (*models.User, error) {
	user := models.User{Name: name, Email: email}
	if err := r.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	r.Logger.Info("Nutzer angelegt", zap.Uint("user_id", user.ID))
	return &user, nil
}

// Prune löscht alle Interaktionen, die vor olderThan angelegt wurden.
func (r *InteractionRecorder) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Where("created_at < ?", olderThan).Delete(&models.Interaction{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune interactions: %w", res.Error)
	}
	metrics.InteractionsPruned.Add(float64(res.RowsAffected))
	return res.RowsAffected, nil
}
