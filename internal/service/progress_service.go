package service

import (
	"fmt"

	"gorm.io/gorm"

	"gamifyiq-backend/internal/db"
	"gamifyiq-backend/internal/model"
)

// ProgressData holds the metrics for a user's progress report.
type ProgressData struct {
	GamesCompleted int                      `json:"games_completed"`
	GamesStarted   int                      `json:"games_started"`
	TotalScore     int                      `json:"total_score"`
	AverageScore   float64                  `json:"average_score"`
	Accuracy       float64                  `json:"accuracy"`
	Certificates   int                      `json:"certificates"`
	PerGame        []map[string]interface{} `json:"per_game"`
}

// GenerateProgressData computes the progress report for a given user.
func GenerateProgressData(conn *gorm.DB, userID uint) (*ProgressData, error) {
	var sessions []model.GameSession
	if err := conn.Where("user_id = ?", userID).Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}

	data := &ProgressData{GamesStarted: len(sessions)}
	for _, s := range sessions {
		if s.Status == model.SessionCompleted {
			data.GamesCompleted++
			data.TotalScore += s.Score
		}
	}
	if data.GamesCompleted > 0 {
		data.AverageScore = float64(data.TotalScore) / float64(data.GamesCompleted)
	}

	// Overall answer accuracy.
	var totalAnswers, correctAnswers int64
	if err := conn.Model(&model.AnswerRecord{}).
		Where("user_id = ?", userID).
		Count(&totalAnswers).Error; err != nil {
		return nil, fmt.Errorf("failed to count answers: %w", err)
	}
	if err := conn.Model(&model.AnswerRecord{}).
		Where("user_id = ? AND is_correct = ?", userID, true).
		Count(&correctAnswers).Error; err != nil {
		return nil, fmt.Errorf("failed to count correct answers: %w", err)
	}
	if totalAnswers > 0 {
		data.Accuracy = float64(correctAnswers) / float64(totalAnswers) * 100
	}

	var certificates int64
	if err := conn.Model(&model.Certificate{}).
		Where("user_id = ?", userID).
		Count(&certificates).Error; err != nil {
		return nil, fmt.Errorf("failed to count certificates: %w", err)
	}
	data.Certificates = int(certificates)

	// Per-game breakdown via raw aggregation.
	executor := db.NewQueryExecutor(conn)
	rows, err := executor.Select(`
		SELECT g.id AS game_id, g.title AS game_title,
		       COUNT(s.id) AS attempts,
		       MAX(s.score) AS best_score
		FROM game_sessions s
		JOIN games g ON g.id = s.game_id
		WHERE s.user_id = ?
		GROUP BY g.id, g.title
		ORDER BY g.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate per-game progress: %w", err)
	}
	data.PerGame = rows

	return data, nil
}
