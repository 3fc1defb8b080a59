package ai

// Difficulty levels accepted by ProcessingOptions and carried on scenarios.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Generation sources recorded on GeneratedGame so callers can tell AI-written
// content apart from the degraded path.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// DocumentAnalysis is the structured result of analyzing one document.
// It is a transient computation result; only the scenario generator
// consumes it.
type DocumentAnalysis struct {
	KeyTopics        []string `json:"keyTopics"`
	Compliance       bool     `json:"compliance"`
	RiskLevel        string   `json:"riskLevel"` // low, medium, high
	RequiredTraining bool     `json:"requiredTraining"`
	Summary          string   `json:"summary"`
}

// GameScenario is a single multiple-choice training question.
// CorrectAnswer always indexes a valid element of Options, and Options
// always has exactly four entries.
type GameScenario struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points"`
	Difficulty    string   `json:"difficulty"`
	Topic         string   `json:"topic"`
}

// GeneratedGame bundles the scenarios generated from one document.
// Constructed fresh on every generation call; persistence is the
// caller's responsibility.
type GeneratedGame struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	DocumentID        string         `json:"documentId"`
	Scenarios         []GameScenario `json:"scenarios"`
	TotalPoints       int            `json:"totalPoints"`
	EstimatedDuration int            `json:"estimatedDuration"` // minutes
	Source            string         `json:"source"`            // llm or fallback
}

// ProcessingOptions configures one generation run. Zero values fall back to
// the documented defaults (medium difficulty, five scenarios).
type ProcessingOptions struct {
	Model         string  `json:"model,omitempty"`
	Temperature   float64 `json:"temperature,omitempty"`
	MaxTokens     int     `json:"max_tokens,omitempty"`
	Difficulty    string  `json:"difficulty,omitempty"`
	ScenarioCount int     `json:"scenario_count,omitempty"`
}
