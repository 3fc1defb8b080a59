package repository

import (
	"errors"
	"time"

	"gamifyiq-backend/internal/db"
	"gamifyiq-backend/internal/model"
)

type SessionRepository interface {
	CreateSession(session *model.GameSession) error
	GetSessionBySessionID(sessionID string) (*model.GameSession, error)
	SaveAnswer(answer *model.AnswerRecord) error
	HasAnswer(gameSessionID, scenarioID uint) (bool, error)
	CompleteSession(gameSessionID uint, score int, completedAt time.Time) error
	GetSessionsByUser(userID uint) ([]model.GameSession, error)
	SaveCertificate(certificate *model.Certificate) error
	GetCertificateBySession(gameSessionID uint) (*model.Certificate, error)
}

type sessionRepository struct{}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) CreateSession(session *model.GameSession) error {
	return db.GetDB().Create(session).Error
}

func (r *sessionRepository) GetSessionBySessionID(sessionID string) (*model.GameSession, error) {
	var session model.GameSession
	err := db.GetDB().Preload("Answers").Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, errors.New("session not found")
	}
	return &session, nil
}

func (r *sessionRepository) SaveAnswer(answer *model.AnswerRecord) error {
	return db.GetDB().Create(answer).Error
}

func (r *sessionRepository) HasAnswer(gameSessionID, scenarioID uint) (bool, error) {
	var count int64
	err := db.GetDB().Model(&model.AnswerRecord{}).
		Where("game_session_id = ? AND scenario_id = ?", gameSessionID, scenarioID).
		Count(&count).Error
	return count > 0, err
}

func (r *sessionRepository) CompleteSession(gameSessionID uint, score int, completedAt time.Time) error {
	return db.GetDB().Model(&model.GameSession{}).Where("id = ?", gameSessionID).Updates(map[string]interface{}{
		"status":       model.SessionCompleted,
		"score":        score,
		"completed_at": completedAt,
	}).Error
}

func (r *sessionRepository) GetSessionsByUser(userID uint) ([]model.GameSession, error) {
	var sessions []model.GameSession
	err := db.GetDB().Where("user_id = ?", userID).Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) SaveCertificate(certificate *model.Certificate) error {
	return db.GetDB().Create(certificate).Error
}

func (r *sessionRepository) GetCertificateBySession(gameSessionID uint) (*model.Certificate, error) {
	var certificate model.Certificate
	err := db.GetDB().Where("game_session_id = ?", gameSessionID).First(&certificate).Error
	if err != nil {
		return nil, errors.New("certificate not found")
	}
	return &certificate, nil
}
