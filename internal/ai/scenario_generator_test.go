package ai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsForDifficulty(t *testing.T) {
	assert.Equal(t, 50, PointsForDifficulty(DifficultyEasy))
	assert.Equal(t, 100, PointsForDifficulty(DifficultyMedium))
	assert.Equal(t, 150, PointsForDifficulty(DifficultyHard))
	assert.Equal(t, 100, PointsForDifficulty("extreme"))
	assert.Equal(t, 100, PointsForDifficulty(""))
}

func TestGenerateGameFallbackWhenLLMUnavailable(t *testing.T) {
	gen := NewScenarioGenerator(&stubClient{err: errors.New("no LLM")})

	game := gen.GenerateGame("42", "Patient Privacy Policy",
		"This policy respects patient privacy at all times.",
		ProcessingOptions{ScenarioCount: 2, Difficulty: DifficultyHard})

	require.Len(t, game.Scenarios, 2)
	for _, s := range game.Scenarios {
		assert.Equal(t, 150, s.Points)
		assert.Len(t, s.Options, 4)
		assert.GreaterOrEqual(t, s.CorrectAnswer, 0)
		assert.Less(t, s.CorrectAnswer, 4)
	}
	assert.Equal(t, 300, game.TotalPoints)
	assert.Equal(t, 4, game.EstimatedDuration)
	assert.Equal(t, SourceFallback, game.Source)
	assert.Equal(t, "42", game.DocumentID)
	assert.Equal(t, "Patient Privacy Policy Training Game", game.Title)
}

func TestGenerateGameDefaults(t *testing.T) {
	gen := NewScenarioGenerator(&stubClient{err: errors.New("down")})

	game := gen.GenerateGame("1", "Doc", "content", ProcessingOptions{})

	require.Len(t, game.Scenarios, 5)
	assert.Equal(t, 500, game.TotalPoints) // 5 x medium
	assert.Equal(t, 10, game.EstimatedDuration)
	for _, s := range game.Scenarios {
		assert.Equal(t, DifficultyMedium, s.Difficulty)
	}
}

func TestGenerateGameNormalizesLLMScenarios(t *testing.T) {
	// First call answers the analysis prompt, second the scenario prompt.
	client := &sequenceClient{responses: []string{
		`{"keyTopics":["Data Handling"],"compliance":true,"riskLevel":"low","requiredTraining":true,"summary":"s"}`,
		`[
			{"question":"Q1?","options":["a","b","c","d"],"correctAnswer":2,"points":9999},
			{"title":"Named","options":["only","two"]},
			{"question":"Q3?","options":["w","x","y","z"],"correctAnswer":17}
		]`,
	}}
	gen := NewScenarioGenerator(client)

	game := gen.GenerateGame("7", "Handbook", "content", ProcessingOptions{ScenarioCount: 3, Difficulty: DifficultyEasy})

	require.Len(t, game.Scenarios, 3)
	assert.Equal(t, SourceLLM, game.Source)

	first := game.Scenarios[0]
	assert.Equal(t, "Scenario 1", first.Title) // missing title
	assert.Equal(t, "Training scenario", first.Description)
	assert.Equal(t, 2, first.CorrectAnswer)
	assert.Equal(t, 50, first.Points) // LLM-provided 9999 discarded
	assert.Equal(t, "Data Handling", first.Topic)

	second := game.Scenarios[1]
	assert.Equal(t, "Named", second.Title)
	assert.Equal(t, []string{"Option A", "Option B", "Option C", "Option D"}, second.Options)
	assert.Equal(t, 0, second.CorrectAnswer)
	assert.Equal(t, "What should you do?", second.Question)

	third := game.Scenarios[2]
	assert.Equal(t, 0, third.CorrectAnswer) // out-of-range index dropped

	total := 0
	for _, s := range game.Scenarios {
		assert.Len(t, s.Options, 4)
		assert.GreaterOrEqual(t, s.CorrectAnswer, 0)
		assert.Less(t, s.CorrectAnswer, 4)
		total += s.Points
	}
	assert.Equal(t, total, game.TotalPoints)
}

func TestGenerateGameNeverMixesOrigins(t *testing.T) {
	// LLM returns fewer scenarios than requested; the whole game degrades.
	client := &sequenceClient{responses: []string{
		`{"keyTopics":["Safety"],"compliance":true,"riskLevel":"low","requiredTraining":true,"summary":"s"}`,
		`[{"question":"Only one?","options":["a","b","c","d"],"correctAnswer":1}]`,
	}}
	gen := NewScenarioGenerator(client)

	game := gen.GenerateGame("9", "Doc", "content", ProcessingOptions{ScenarioCount: 4})

	require.Len(t, game.Scenarios, 4)
	assert.Equal(t, SourceFallback, game.Source)
	for _, s := range game.Scenarios {
		assert.Equal(t, "What is the most appropriate action to take?", s.Question)
	}
}

func TestFallbackScenariosAreDeterministic(t *testing.T) {
	gen := NewScenarioGenerator(&stubClient{err: errors.New("down")})

	a := gen.fallbackScenarios(3, DifficultyMedium, "Compliance")
	b := gen.fallbackScenarios(3, DifficultyMedium, "Compliance")

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Question, b[i].Question)
		assert.Equal(t, a[i].Options, b[i].Options)
		assert.Equal(t, a[i].CorrectAnswer, b[i].CorrectAnswer)
		assert.Equal(t, a[i].Explanation, b[i].Explanation)
		assert.Equal(t, fmt.Sprintf("Compliance Scenario %d", i+1), a[i].Title)
	}
}

func TestFallbackTopicFromAnalysis(t *testing.T) {
	// Analysis succeeds, scenario generation fails: fallback titles carry
	// the analysis topic.
	client := &sequenceClient{
		responses: []string{`{"keyTopics":["Fire Safety"],"compliance":true,"riskLevel":"high","requiredTraining":true,"summary":"s"}`},
		thenErr:   errors.New("scenario call failed"),
	}
	gen := NewScenarioGenerator(client)

	game := gen.GenerateGame("3", "Doc", "content", ProcessingOptions{ScenarioCount: 2})

	require.Len(t, game.Scenarios, 2)
	assert.Equal(t, "Fire Safety Scenario 1", game.Scenarios[0].Title)
	assert.Equal(t, "Fire Safety", game.Scenarios[0].Topic)
}

func TestRefineScenarioUnchangedOnFailure(t *testing.T) {
	gen := NewScenarioGenerator(&stubClient{err: errors.New("down")})
	original := GameScenario{
		ID:            "scenario_1",
		Title:         "Original",
		Question:      "Q?",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: 1,
		Explanation:   "because",
		Points:        100,
		Difficulty:    DifficultyMedium,
		Topic:         "General",
	}

	refined := gen.RefineScenario(original)

	assert.Equal(t, original, refined)
}

func TestRefineScenarioAppliesImprovements(t *testing.T) {
	gen := NewScenarioGenerator(&stubClient{response: `{"title":"Clearer Title","question":"Better question?"}`})
	original := GameScenario{Title: "Old", Question: "Q?", Options: []string{"a", "b", "c", "d"}, Points: 100}

	refined := gen.RefineScenario(original)

	assert.Equal(t, "Clearer Title", refined.Title)
	assert.Equal(t, "Better question?", refined.Question)
	assert.Equal(t, original.Options, refined.Options)
	assert.Equal(t, original.Points, refined.Points)
}

func TestGenerateAdditionalScenarios(t *testing.T) {
	gen := NewScenarioGenerator(&stubClient{})

	extra := gen.GenerateAdditionalScenarios(3)

	require.Len(t, extra, 3)
	for _, s := range extra {
		assert.Equal(t, 100, s.Points)
		assert.Equal(t, "Additional Training", s.Topic)
	}
}

// sequenceClient returns queued responses in order, then thenErr (or an
// error if the queue is exhausted).
type sequenceClient struct {
	responses []string
	thenErr   error
	calls     int
}

func (s *sequenceClient) GenerateResponse(prompt string) (string, error) {
	if s.calls < len(s.responses) {
		resp := s.responses[s.calls]
		s.calls++
		return resp, nil
	}
	s.calls++
	if s.thenErr != nil {
		return "", s.thenErr
	}
	return "", errors.New("no more responses queued")
}
