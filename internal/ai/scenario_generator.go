package ai

import (
	"encoding/json"
	"fmt"
	"time"

	"gamifyiq-backend/internal/llm"
	"gamifyiq-backend/utilities"
)

const (
	defaultScenarioCount = 5
	scenarioContentLimit = 3000
	minutesPerScenario   = 2
)

// ScenarioGenerator builds complete training games from document text.
// Generation is stateless: every call owns its own prompts and parsed
// objects, so independent calls may run concurrently without coordination.
type ScenarioGenerator struct {
	client   llm.CompletionClient
	analyzer *DocumentAnalyzer
}

func NewScenarioGenerator(client llm.CompletionClient) *ScenarioGenerator {
	return &ScenarioGenerator{
		client:   client,
		analyzer: NewDocumentAnalyzer(client),
	}
}

// Analyzer exposes the generator's document analyzer for callers that need
// the narrower helpers.
func (g *ScenarioGenerator) Analyzer() *DocumentAnalyzer {
	return g.analyzer
}

// PointsForDifficulty is the single source of truth for scoring. It applies
// identically to LLM-generated and fallback scenarios; point values the LLM
// suggests are discarded.
func PointsForDifficulty(difficulty string) int {
	switch difficulty {
	case DifficultyEasy:
		return 50
	case DifficultyMedium:
		return 100
	case DifficultyHard:
		return 150
	default:
		return 100
	}
}

// GenerateGame runs the full pipeline: analyze the document, prompt for
// scenarios, normalize the result, and assemble the game. It never fails;
// when the LLM path breaks down the game is built from deterministic
// fallback scenarios instead (all-or-nothing, never a mix).
func (g *ScenarioGenerator) GenerateGame(documentID, documentTitle, documentContent string, opts ProcessingOptions) GeneratedGame {
	count := opts.ScenarioCount
	if count <= 0 {
		count = defaultScenarioCount
	}
	difficulty := opts.Difficulty
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		difficulty = DifficultyMedium
	}

	analysis := g.analyzer.AnalyzeDocument(documentContent)

	scenarios, source := g.generateScenarios(documentContent, analysis, count, difficulty)

	totalPoints := 0
	for _, s := range scenarios {
		totalPoints += s.Points
	}

	return GeneratedGame{
		ID:                fmt.Sprintf("game_%s_%d", documentID, time.Now().UnixMilli()),
		Title:             fmt.Sprintf("%s Training Game", documentTitle),
		Description:       fmt.Sprintf("Interactive training scenarios based on %s", documentTitle),
		DocumentID:        documentID,
		Scenarios:         scenarios,
		TotalPoints:       totalPoints,
		EstimatedDuration: len(scenarios) * minutesPerScenario,
		Source:            source,
	}
}

func (g *ScenarioGenerator) generateScenarios(content string, analysis DocumentAnalysis, count int, difficulty string) ([]GameScenario, string) {
	topic := "General"
	if len(analysis.KeyTopics) > 0 {
		topic = analysis.KeyTopics[0]
	}

	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return g.fallbackScenarios(count, difficulty, topic), SourceFallback
	}

	prompt := fmt.Sprintf(scenarioGenerationPrompt,
		string(analysisJSON),
		truncate(content, scenarioContentLimit),
		count,
	)

	response, err := g.client.GenerateResponse(prompt)
	if err != nil {
		utilities.Warn("scenario generation call failed, using fallback scenarios: %v", err)
		return g.fallbackScenarios(count, difficulty, topic), SourceFallback
	}

	var raw []rawScenario
	if err := json.Unmarshal([]byte(extractJSON(response)), &raw); err != nil || len(raw) == 0 {
		utilities.Warn("scenario generation response not parseable, using fallback scenarios")
		return g.fallbackScenarios(count, difficulty, topic), SourceFallback
	}

	scenarios := make([]GameScenario, 0, count)
	for i, r := range raw {
		if i >= count {
			break
		}
		scenarios = append(scenarios, normalizeScenario(r, i, difficulty, topic))
	}
	// Games never mix LLM and fallback scenarios, so a short LLM result
	// degrades the whole game rather than being topped up.
	if len(scenarios) < count {
		return g.fallbackScenarios(count, difficulty, topic), SourceFallback
	}
	return scenarios, SourceLLM
}

// rawScenario is the loosely-typed shape parsed from LLM output. Pointer
// fields distinguish absent values from zero values during normalization.
type rawScenario struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic"`
}

// normalizeScenario is a total function: every required field gets a
// documented default so untrusted LLM output can never produce an invalid
// scenario.
func normalizeScenario(r rawScenario, index int, difficulty, defaultTopic string) GameScenario {
	s := GameScenario{
		ID:          fmt.Sprintf("scenario_%d", index+1),
		Title:       r.Title,
		Description: r.Description,
		Question:    r.Question,
		Options:     r.Options,
		Explanation: r.Explanation,
		Points:      PointsForDifficulty(difficulty),
		Difficulty:  difficulty,
		Topic:       r.Topic,
	}
	if s.Title == "" {
		s.Title = fmt.Sprintf("Scenario %d", index+1)
	}
	if s.Description == "" {
		s.Description = "Training scenario"
	}
	if s.Question == "" {
		s.Question = "What should you do?"
	}
	if len(s.Options) != 4 {
		s.Options = []string{"Option A", "Option B", "Option C", "Option D"}
	}
	if r.CorrectAnswer != nil && *r.CorrectAnswer >= 0 && *r.CorrectAnswer < len(s.Options) {
		s.CorrectAnswer = *r.CorrectAnswer
	}
	if s.Explanation == "" {
		s.Explanation = "This is the correct approach."
	}
	if s.Topic == "" {
		s.Topic = defaultTopic
	}
	return s
}

// fallbackScenarios deterministically synthesizes count playable scenarios.
// Content is identical across calls for the same (count, difficulty, topic);
// only titles vary by index.
func (g *ScenarioGenerator) fallbackScenarios(count int, difficulty, topic string) []GameScenario {
	scenarios := make([]GameScenario, 0, count)
	for i := 0; i < count; i++ {
		scenarios = append(scenarios, GameScenario{
			ID:          fmt.Sprintf("fallback_scenario_%d", i+1),
			Title:       fmt.Sprintf("%s Scenario %d", topic, i+1),
			Description: fmt.Sprintf("You encounter a situation related to %s. Consider the appropriate response.", topic),
			Question:    "What is the most appropriate action to take?",
			Options: []string{
				"Follow established procedures",
				"Ask your supervisor for guidance",
				"Document the situation",
				"Ignore the situation",
			},
			CorrectAnswer: 0,
			Explanation:   "Following established procedures is typically the safest and most appropriate response.",
			Points:        PointsForDifficulty(difficulty),
			Difficulty:    difficulty,
			Topic:         topic,
		})
	}
	return scenarios
}

// RefineScenario asks the LLM to improve the wording of a single scenario.
// On any failure the input is returned unchanged; refinement is never
// destructive.
func (g *ScenarioGenerator) RefineScenario(scenario GameScenario) GameScenario {
	scenarioJSON, err := json.Marshal(scenario)
	if err != nil {
		return scenario
	}

	response, err := g.client.GenerateResponse(fmt.Sprintf(scenarioRefinementPrompt, string(scenarioJSON)))
	if err != nil {
		utilities.Warn("scenario refinement failed: %v", err)
		return scenario
	}

	var refined rawScenario
	if err := json.Unmarshal([]byte(extractJSON(response)), &refined); err != nil {
		return scenario
	}

	out := scenario
	if refined.Title != "" {
		out.Title = refined.Title
	}
	if refined.Description != "" {
		out.Description = refined.Description
	}
	if refined.Question != "" {
		out.Question = refined.Question
	}
	if len(refined.Options) == 4 {
		out.Options = refined.Options
		if refined.CorrectAnswer != nil && *refined.CorrectAnswer >= 0 && *refined.CorrectAnswer < 4 {
			out.CorrectAnswer = *refined.CorrectAnswer
		}
	}
	if refined.Explanation != "" {
		out.Explanation = refined.Explanation
	}
	return out
}

// GenerateAdditionalScenarios produces extra scenarios for an existing game.
// It currently serves them from the deterministic generator.
func (g *ScenarioGenerator) GenerateAdditionalScenarios(count int) []GameScenario {
	return g.fallbackScenarios(count, DifficultyMedium, "Additional Training")
}
