package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"gamifyiq-backend/internal/model"
	"gamifyiq-backend/internal/repository"
	"gamifyiq-backend/utilities"
)

// AnswerResult is returned to the player after each submission.
type AnswerResult struct {
	Correct     bool   `json:"correct"`
	Points      int    `json:"points"`
	Explanation string `json:"explanation"`
}

// SessionSummary is returned when a session is completed.
type SessionSummary struct {
	SessionID      string    `json:"session_id"`
	FinalScore     int       `json:"final_score"`
	TotalPoints    int       `json:"total_points"`
	CorrectAnswers int       `json:"correct_answers"`
	TotalScenarios int       `json:"total_scenarios"`
	CompletedAt    time.Time `json:"completed_at"`
}

type SessionService interface {
	CreateSession(gameID, userID uint) (*model.GameSession, error)
	SubmitAnswer(sessionID string, scenarioID uint, selectedAnswer int, timeTakenMs int64) (*AnswerResult, error)
	CompleteSession(sessionID string) (*SessionSummary, error)
	GetSession(sessionID string) (*model.GameSession, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	gameRepo    repository.GameRepository
}

func NewSessionService(sessionRepo repository.SessionRepository, gameRepo repository.GameRepository) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		gameRepo:    gameRepo,
	}
}

func (s *sessionService) CreateSession(gameID, userID uint) (*model.GameSession, error) {
	game, err := s.gameRepo.GetGameByID(gameID)
	if err != nil {
		return nil, err
	}
	if game.Status != model.GameActive {
		return nil, errors.New("game is not active")
	}

	session := &model.GameSession{
		SessionID: uuid.New().String(),
		GameID:    game.ID,
		UserID:    userID,
		Status:    model.SessionActive,
		StartedAt: time.Now(),
	}
	if err := s.sessionRepo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitAnswer grades one answer server-side. Correctness and points come
// from the stored scenario row, never from the client.
func (s *sessionService) SubmitAnswer(sessionID string, scenarioID uint, selectedAnswer int, timeTakenMs int64) (*AnswerResult, error) {
	session, err := s.sessionRepo.GetSessionBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionActive {
		return nil, errors.New("session is not active")
	}

	scenario, err := s.gameRepo.GetScenarioByID(scenarioID)
	if err != nil {
		return nil, err
	}
	if scenario.GameID != session.GameID {
		return nil, errors.New("scenario does not belong to this game")
	}
	if selectedAnswer < 0 || selectedAnswer > 3 {
		return nil, errors.New("selected answer out of range")
	}

	answered, err := s.sessionRepo.HasAnswer(session.ID, scenario.ID)
	if err != nil {
		return nil, err
	}
	if answered {
		return nil, errors.New("scenario already answered in this session")
	}

	isCorrect := selectedAnswer == scenario.CorrectAnswer
	points := 0
	if isCorrect {
		points = scenario.Points
	}

	answer := &model.AnswerRecord{
		GameSessionID:  session.ID,
		ScenarioID:     scenario.ID,
		UserID:         session.UserID,
		SelectedAnswer: selectedAnswer,
		IsCorrect:      isCorrect,
		PointsAwarded:  points,
		TimeTakenMs:    timeTakenMs,
	}
	if err := s.sessionRepo.SaveAnswer(answer); err != nil {
		return nil, err
	}

	return &AnswerResult{
		Correct:     isCorrect,
		Points:      points,
		Explanation: scenario.Explanation,
	}, nil
}

// CompleteSession closes the session, computes the final score from the
// recorded answers, and publishes session_completed for certificate
// generation.
func (s *sessionService) CompleteSession(sessionID string) (*SessionSummary, error) {
	session, err := s.sessionRepo.GetSessionBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionActive {
		return nil, errors.New("session is not active")
	}

	game, err := s.gameRepo.GetGameByID(session.GameID)
	if err != nil {
		return nil, err
	}

	score := 0
	correct := 0
	for _, a := range session.Answers {
		score += a.PointsAwarded
		if a.IsCorrect {
			correct++
		}
	}

	completedAt := time.Now()
	if err := s.sessionRepo.CompleteSession(session.ID, score, completedAt); err != nil {
		return nil, err
	}

	utilities.GlobalEventBus.Publish(utilities.EventSessionCompleted, session.ID)

	return &SessionSummary{
		SessionID:      session.SessionID,
		FinalScore:     score,
		TotalPoints:    game.TotalPoints,
		CorrectAnswers: correct,
		TotalScenarios: len(game.Scenarios),
		CompletedAt:    completedAt,
	}, nil
}

func (s *sessionService) GetSession(sessionID string) (*model.GameSession, error) {
	return s.sessionRepo.GetSessionBySessionID(sessionID)
}
