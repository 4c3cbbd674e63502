package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"news-verifier/services"
)

// historyEntry ist die Sicht auf eine Interaktion in der Historie.
type historyEntry struct {
	ID         uint      `json:"id"`
	Type       string    `json:"type"`
	Topic      *string   `json:"topic"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"created_at"`
}

// detached löst den Pipeline-Lauf vom Client-Abbruch.
func detached(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func setupHealthRoutes(router *gin.Engine, db *gorm.DB) {
	router.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func setupNewsRoutes(router *gin.Engine, pipeline *services.Pipeline, log *zap.Logger) {
	rg := router.Group("/api/news")

	rg.POST("/query", func(c *gin.Context) {
		var req struct {
			UserID *uint  `json:"user_id"`
			Query  string `json:"query" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		res, err := pipeline.SearchTopic(detached(c), req.UserID, req.Query)
		if err != nil {
			log.Error("Topic search failed", zap.String("query", req.Query), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	})

	rg.POST("/check", func(c *gin.Context) {
		var req struct {
			UserID *uint   `json:"user_id"`
			Title  *string `json:"title"`
			Text   *string `json:"text"`
			URL    *string `json:"url"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		res, err := pipeline.CheckSubmission(detached(c), services.CheckInput{
			UserID: req.UserID,
			Title:  deref(req.Title),
			Text:   deref(req.Text),
			URL:    deref(req.URL),
		})
		if err != nil {
			log.Error("Direct check failed", zap.String("url", deref(req.URL)), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	})

	rg.POST("/ask", func(c *gin.Context) {
		var req struct {
			UserID   *uint  `json:"user_id"`
			Question string `json:"question"`
			Topic    string `json:"topic"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		res, err := pipeline.Ask(detached(c), services.AskInput{UserID: req.UserID, Question: req.Question, Topic: req.Topic})
		if err != nil {
			if errors.Is(err, services.ErrEmptyQuestion) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log.Error("Question answering failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	})

	router.POST("/api/chat", func(c *gin.Context) {
		var req struct {
			UserID  *uint  `json:"user_id"`
			Message string `json:"message" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		res, err := pipeline.Dispatch(detached(c), req.UserID, req.Message)
		if err != nil {
			log.Error("Chat dispatch failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	})
}

func setupHistoryRoutes(router *gin.Engine, recorder *services.InteractionRecorder, log *zap.Logger) {
	rg := router.Group("/api/history")

	rg.GET("/:user_id", func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}

		rows, err := recorder.Recent(c.Request.Context(), uint(userID), 10)
		if err != nil {
			log.Error("History query failed", zap.Uint64("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}

		entries := make([]historyEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, historyEntry{
				ID:         row.ID,
				Type:       row.Type,
				Topic:      row.Topic,
				Title:      row.Title,
				URL:        row.URL,
				Label:      row.Label,
				Confidence: row.Confidence,
				Summary:    row.Summary,
				CreatedAt:  row.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, entries)
	})

	rg.DELETE("/delete/:interaction_id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("interaction_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interaction_id"})
			return
		}

		found, err := recorder.Delete(c.Request.Context(), uint(id))
		if err != nil {
			log.Error("Delete interaction failed", zap.Uint64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		if !found {
			c.JSON(http.StatusOK, gin.H{"status": "error", "message": "Interaction not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "deleted_id": id})
	})
}

func setupUserRoutes(router *gin.Engine, recorder *services.InteractionRecorder, log *zap.Logger) {
	router.POST("/api/users/create", func(c *gin.Context) {
		// name und email kommen aus dem Query-String oder optional aus dem JSON-Body
		var req struct {
			Name  string  `json:"name"`
			Email *string `json:"email"`
		}
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
				return
			}
		}
		if name := c.Query("name"); name != "" {
			req.Name = name
		}
		if email, ok := c.GetQuery("email"); ok && email != "" {
			req.Email = &email
		}
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		user, err := recorder.CreateUser(c.Request.Context(), req.Name, req.Email)
		if err != nil {
			log.Error("Create user failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "user_id": user.ID})
	})
}
