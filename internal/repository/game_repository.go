package repository

import (
	"errors"

	"gorm.io/gorm"

	"gamifyiq-backend/internal/db"
	"gamifyiq-backend/internal/model"
)

type GameRepository interface {
	CreateGame(game *model.Game) error
	GetGames(status string) ([]model.Game, error)
	GetGameByID(gameID uint) (*model.Game, error)
	GetGamesByDocument(documentID uint) ([]model.Game, error)
	UpdateGameStatus(gameID uint, status string) error
	GetScenarioByID(scenarioID uint) (*model.Scenario, error)
	CountScenarios(gameID uint) (int64, error)
}

type gameRepository struct{}

func NewGameRepository() GameRepository {
	return &gameRepository{}
}

func (r *gameRepository) CreateGame(game *model.Game) error {
	return db.GetDB().Create(game).Error
}

func (r *gameRepository) GetGames(status string) ([]model.Game, error) {
	var games []model.Game
	q := db.GetDB()
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&games).Error
	return games, err
}

func (r *gameRepository) GetGameByID(gameID uint) (*model.Game, error) {
	var game model.Game
	err := db.GetDB().Preload("Scenarios", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Where("id = ?", gameID).First(&game).Error
	if err != nil {
		return nil, errors.New("game not found")
	}
	return &game, nil
}

func (r *gameRepository) GetGamesByDocument(documentID uint) ([]model.Game, error) {
	var games []model.Game
	err := db.GetDB().Where("document_id = ?", documentID).Find(&games).Error
	return games, err
}

func (r *gameRepository) UpdateGameStatus(gameID uint, status string) error {
	return db.GetDB().Model(&model.Game{}).Where("id = ?", gameID).Update("status", status).Error
}

func (r *gameRepository) GetScenarioByID(scenarioID uint) (*model.Scenario, error) {
	var scenario model.Scenario
	err := db.GetDB().Where("id = ?", scenarioID).First(&scenario).Error
	if err != nil {
		return nil, errors.New("scenario not found")
	}
	return &scenario, nil
}

func (r *gameRepository) CountScenarios(gameID uint) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.Scenario{}).Where("game_id = ?", gameID).Count(&count).Error
	return count, err
}
