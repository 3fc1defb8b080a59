package model

import "time"

// Role values for User.Role.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Document lifecycle states.
const (
	DocumentUploading  = "uploading"
	DocumentProcessing = "processing"
	DocumentProcessed  = "processed"
	DocumentFailed     = "failed"
)

// Game lifecycle states.
const (
	GameDraft    = "draft"
	GameActive   = "active"
	GameArchived = "archived"
)

// Session lifecycle states.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionAbandoned = "abandoned"
)

type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Email       string     `json:"email" gorm:"not null;unique"`
	Name        string     `json:"name"`
	Password    string     `json:"password,omitempty"` // Exclude from JSON responses
	Role        string     `json:"role" gorm:"default:'employee'"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Document struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	OriginalName string     `json:"original_name"`
	Content      string     `json:"content" gorm:"type:text"`
	MimeType     string     `json:"mime_type"`
	FileSize     int64      `json:"file_size"`
	Status       string     `json:"status" gorm:"default:'uploading'"` // uploading, processing, processed, failed
	UploadedByID uint       `json:"uploaded_by_id"`
	ProcessedAt  *time.Time `json:"processed_at"`
	Games        []Game     `json:"games,omitempty" gorm:"foreignKey:DocumentID"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Game struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	GameKey           string     `json:"game_key" gorm:"not null;unique"`
	Title             string     `json:"title" gorm:"not null"`
	Description       string     `json:"description"`
	DocumentID        uint       `json:"document_id" gorm:"not null"`
	Status            string     `json:"status" gorm:"default:'draft'"` // draft, active, archived
	Difficulty        string     `json:"difficulty" gorm:"default:'medium'"`
	TotalPoints       int        `json:"total_points"`
	EstimatedDuration int        `json:"estimated_duration"` // minutes
	Source            string     `json:"source"`             // llm or fallback
	Scenarios         []Scenario `json:"scenarios,omitempty" gorm:"foreignKey:GameID"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type Scenario struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	GameID        uint      `json:"game_id" gorm:"not null"`
	ScenarioKey   string    `json:"scenario_key"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Question      string    `json:"question" gorm:"not null"`
	Options       string    `json:"options" gorm:"type:text"` // JSON array of 4 choices
	CorrectAnswer int       `json:"correct_answer"`
	Explanation   string    `json:"explanation"`
	Points        int       `json:"points"`
	Difficulty    string    `json:"difficulty"`
	Topic         string    `json:"topic"`
	Position      int       `json:"position"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type GameSession struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	SessionID   string         `json:"session_id" gorm:"not null;unique"`
	GameID      uint           `json:"game_id" gorm:"not null"`
	UserID      uint           `json:"user_id"`
	Status      string         `json:"status" gorm:"default:'active'"` // active, completed, abandoned
	Score       int            `json:"score"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at"`
	Answers     []AnswerRecord `json:"answers,omitempty" gorm:"foreignKey:GameSessionID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type AnswerRecord struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	GameSessionID  uint      `json:"game_session_id" gorm:"not null"`
	ScenarioID     uint      `json:"scenario_id" gorm:"not null"`
	UserID         uint      `json:"user_id"`
	SelectedAnswer int       `json:"selected_answer"`
	IsCorrect      bool      `json:"is_correct"`
	PointsAwarded  int       `json:"points_awarded"`
	TimeTakenMs    int64     `json:"time_taken_ms"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Certificate struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	GameSessionID uint      `json:"game_session_id" gorm:"not null;unique"`
	UserID        uint      `json:"user_id"`
	Title         string    `json:"title"`
	FilePath      string    `json:"file_path"`
	DownloadURL   string    `json:"download_url"`
	IssuedAt      time.Time `json:"issued_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
