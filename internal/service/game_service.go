package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gamifyiq-backend/internal/ai"
	"gamifyiq-backend/internal/model"
	"gamifyiq-backend/internal/repository"
	"gamifyiq-backend/utilities"
)

type GameService interface {
	GenerateGameFromDocument(documentID uint, opts ai.ProcessingOptions) (*model.Game, error)
	GetGames(status string) ([]model.Game, error)
	GetGameByID(gameID uint, includeAnswers bool) (*model.Game, error)
	GetGamesByDocument(documentID uint) ([]model.Game, error)
	ActivateGame(gameID uint) error
	ArchiveGame(gameID uint) error
}

type gameService struct {
	gameRepo     repository.GameRepository
	documentRepo repository.DocumentRepository
	generator    *ai.ScenarioGenerator
	defaults     ai.ProcessingOptions
}

func NewGameService(gameRepo repository.GameRepository, documentRepo repository.DocumentRepository, generator *ai.ScenarioGenerator, defaults ai.ProcessingOptions) GameService {
	return &gameService{
		gameRepo:     gameRepo,
		documentRepo: documentRepo,
		generator:    generator,
		defaults:     defaults,
	}
}

// InitGameEventListeners subscribes game generation to document uploads so
// the upload request returns immediately.
func InitGameEventListeners(gameSvc GameService) {
	utilities.GlobalEventBus.Subscribe(utilities.EventDocumentUploaded, func(data interface{}) {
		documentID, ok := data.(uint)
		if !ok {
			utilities.Error("invalid document ID received for game generation")
			return
		}

		utilities.Info("[Event] Document uploaded: generating game for document ID %d", documentID)
		if _, err := gameSvc.GenerateGameFromDocument(documentID, ai.ProcessingOptions{}); err != nil {
			utilities.Error("failed to generate game for document %d: %v", documentID, err)
		}
	})
}

// GenerateGameFromDocument runs the AI pipeline on the stored document and
// persists the resulting game and scenarios. The pipeline itself never
// fails; errors here come from persistence only.
func (s *gameService) GenerateGameFromDocument(documentID uint, opts ai.ProcessingOptions) (*model.Game, error) {
	document, err := s.documentRepo.GetDocumentByID(documentID)
	if err != nil {
		return nil, err
	}

	if opts.ScenarioCount <= 0 {
		opts.ScenarioCount = s.defaults.ScenarioCount
	}
	if opts.Difficulty == "" {
		opts.Difficulty = s.defaults.Difficulty
	}

	generated := s.generator.GenerateGame(
		fmt.Sprintf("%d", document.ID),
		document.Name,
		document.Content,
		opts,
	)

	game := &model.Game{
		GameKey:           uuid.New().String(),
		Title:             generated.Title,
		Description:       generated.Description,
		DocumentID:        document.ID,
		Status:            model.GameActive,
		Difficulty:        opts.Difficulty,
		TotalPoints:       generated.TotalPoints,
		EstimatedDuration: generated.EstimatedDuration,
		Source:            generated.Source,
	}
	for i, sc := range generated.Scenarios {
		optionsJSON, err := json.Marshal(sc.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to encode scenario options: %w", err)
		}
		game.Scenarios = append(game.Scenarios, model.Scenario{
			ScenarioKey:   sc.ID,
			Title:         sc.Title,
			Description:   sc.Description,
			Question:      sc.Question,
			Options:       string(optionsJSON),
			CorrectAnswer: sc.CorrectAnswer,
			Explanation:   sc.Explanation,
			Points:        sc.Points,
			Difficulty:    sc.Difficulty,
			Topic:         sc.Topic,
			Position:      i,
		})
	}

	if err := s.gameRepo.CreateGame(game); err != nil {
		_ = s.documentRepo.UpdateDocumentStatus(document.ID, model.DocumentFailed, nil)
		return nil, err
	}

	now := time.Now()
	if err := s.documentRepo.UpdateDocumentStatus(document.ID, model.DocumentProcessed, &now); err != nil {
		utilities.Warn("game %d created but document %d status update failed: %v", game.ID, document.ID, err)
	}

	utilities.Info("generated game %d (%s, %d scenarios, source=%s) from document %d",
		game.ID, game.Title, len(game.Scenarios), game.Source, document.ID)
	return game, nil
}

func (s *gameService) GetGames(status string) ([]model.Game, error) {
	return s.gameRepo.GetGames(status)
}

// GetGameByID fetches a game with ordered scenarios. When includeAnswers is
// false the correct answers and explanations are stripped, so the payload is
// safe to hand to a player.
func (s *gameService) GetGameByID(gameID uint, includeAnswers bool) (*model.Game, error) {
	game, err := s.gameRepo.GetGameByID(gameID)
	if err != nil {
		return nil, err
	}
	if !includeAnswers {
		for i := range game.Scenarios {
			game.Scenarios[i].CorrectAnswer = -1
			game.Scenarios[i].Explanation = ""
		}
	}
	return game, nil
}

func (s *gameService) GetGamesByDocument(documentID uint) ([]model.Game, error) {
	return s.gameRepo.GetGamesByDocument(documentID)
}

func (s *gameService) ActivateGame(gameID uint) error {
	return s.gameRepo.UpdateGameStatus(gameID, model.GameActive)
}

func (s *gameService) ArchiveGame(gameID uint) error {
	return s.gameRepo.UpdateGameStatus(gameID, model.GameArchived)
}
