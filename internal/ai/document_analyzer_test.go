package ai

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient records prompts and returns a canned response or error.
type stubClient struct {
	response string
	err      error
	prompts  []string
}

func (s *stubClient) GenerateResponse(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestAnalyzeDocumentParsesResponse(t *testing.T) {
	client := &stubClient{response: `{
		"keyTopics": ["Data Privacy", "Incident Reporting"],
		"compliance": true,
		"riskLevel": "high",
		"requiredTraining": true,
		"summary": "Privacy handling rules."
	}`}
	analyzer := NewDocumentAnalyzer(client)

	analysis := analyzer.AnalyzeDocument("Employees must protect patient data.")

	assert.Equal(t, []string{"Data Privacy", "Incident Reporting"}, analysis.KeyTopics)
	assert.True(t, analysis.Compliance)
	assert.Equal(t, "high", analysis.RiskLevel)
	assert.True(t, analysis.RequiredTraining)
	assert.Equal(t, "Privacy handling rules.", analysis.Summary)
}

func TestAnalyzeDocumentFallbackOnTransportError(t *testing.T) {
	analyzer := NewDocumentAnalyzer(&stubClient{err: errors.New("connection refused")})

	analysis := analyzer.AnalyzeDocument("any content")

	assert.Equal(t, []string{"General Compliance"}, analysis.KeyTopics)
	assert.True(t, analysis.Compliance)
	assert.Equal(t, "medium", analysis.RiskLevel)
	assert.True(t, analysis.RequiredTraining)
	assert.NotEmpty(t, analysis.Summary)
}

func TestAnalyzeDocumentFallbackOnMalformedResponse(t *testing.T) {
	analyzer := NewDocumentAnalyzer(&stubClient{response: "I cannot produce JSON today."})

	analysis := analyzer.AnalyzeDocument("any content")

	assert.Equal(t, []string{"General Compliance"}, analysis.KeyTopics)
	assert.Equal(t, "medium", analysis.RiskLevel)
}

func TestAnalyzeDocumentDefaultsMissingFields(t *testing.T) {
	analyzer := NewDocumentAnalyzer(&stubClient{response: `{"keyTopics": []}`})

	analysis := analyzer.AnalyzeDocument("content")

	assert.Equal(t, []string{"General Compliance"}, analysis.KeyTopics)
	assert.Equal(t, "medium", analysis.RiskLevel)
	assert.True(t, analysis.RequiredTraining)
	assert.NotEmpty(t, analysis.Summary)
}

func TestAnalyzeDocumentRejectsUnknownRiskLevel(t *testing.T) {
	analyzer := NewDocumentAnalyzer(&stubClient{response: `{"keyTopics":["X"],"riskLevel":"catastrophic","summary":"s"}`})

	analysis := analyzer.AnalyzeDocument("content")

	assert.Equal(t, "medium", analysis.RiskLevel)
}

func TestAnalyzeDocumentHandlesFencedJSON(t *testing.T) {
	client := &stubClient{response: "Here you go:\n```json\n{\"keyTopics\":[\"Safety\"],\"compliance\":true,\"riskLevel\":\"low\",\"requiredTraining\":false,\"summary\":\"ok\"}\n```"}
	analyzer := NewDocumentAnalyzer(client)

	analysis := analyzer.AnalyzeDocument("content")

	assert.Equal(t, []string{"Safety"}, analysis.KeyTopics)
	assert.Equal(t, "low", analysis.RiskLevel)
	assert.False(t, analysis.RequiredTraining)
}

func TestExtractKeyTopicsTruncatesPromptContent(t *testing.T) {
	content := strings.Repeat("a", 1999) + "B" + strings.Repeat("c", 3000)
	client := &stubClient{response: `["Topic A"]`}
	analyzer := NewDocumentAnalyzer(client)

	topics := analyzer.ExtractKeyTopics(content)

	assert.Equal(t, []string{"Topic A"}, topics)
	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	// Exactly the first 2000 characters may appear; the 2001st must not.
	assert.Contains(t, prompt, content[:2000])
	assert.NotContains(t, prompt, content[:2001])
}

func TestExtractKeyTopicsFallback(t *testing.T) {
	analyzer := NewDocumentAnalyzer(&stubClient{err: errors.New("timeout")})

	topics := analyzer.ExtractKeyTopics("anything")

	assert.Equal(t, []string{"General Policy", "Compliance"}, topics)
}

func TestSummarizeDocumentFallback(t *testing.T) {
	analyzer := NewDocumentAnalyzer(&stubClient{err: errors.New("boom")})

	summary := analyzer.SummarizeDocument("anything", 200)

	assert.Equal(t, "This document contains important corporate policies and guidelines that employees should understand and follow.", summary)
}

func TestSummarizeDocumentTrimsResponse(t *testing.T) {
	analyzer := NewDocumentAnalyzer(&stubClient{response: "  A short summary.\n"})

	summary := analyzer.SummarizeDocument("anything", 50)

	assert.Equal(t, "A short summary.", summary)
}

func TestExtractJSONFromProse(t *testing.T) {
	got := extractJSON(`Sure! Here is the result: {"a":1} hope that helps`)
	assert.Equal(t, `{"a":1}`, got)

	got = extractJSON(`[1,2,3] trailing`)
	assert.Equal(t, `[1,2,3]`, got)
}
