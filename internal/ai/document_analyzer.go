package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"gamifyiq-backend/internal/llm"
	"gamifyiq-backend/utilities"
)

// Prompt truncation boundaries. The analysis cap bounds token usage on large
// uploads; the topics cap matches the original helper contract exactly.
const (
	analysisContentLimit = 6000
	topicsContentLimit   = 2000
)

// DocumentAnalyzer turns raw document text into a DocumentAnalysis by
// prompting an LLM. Every method recovers failures locally and returns a
// usable default, so callers never see an error from this component.
type DocumentAnalyzer struct {
	client llm.CompletionClient
}

func NewDocumentAnalyzer(client llm.CompletionClient) *DocumentAnalyzer {
	return &DocumentAnalyzer{client: client}
}

// fallbackAnalysis is returned whenever the LLM call or parse fails.
func fallbackAnalysis() DocumentAnalysis {
	return DocumentAnalysis{
		KeyTopics:        []string{"General Compliance"},
		Compliance:       true,
		RiskLevel:        "medium",
		RequiredTraining: true,
		Summary:          "This document contains important corporate policies and guidelines.",
	}
}

// AnalyzeDocument prompts the LLM for a structured analysis of the document.
// It never fails: any transport or parse error yields the fixed fallback
// analysis so downstream generation can always proceed.
func (a *DocumentAnalyzer) AnalyzeDocument(content string) DocumentAnalysis {
	prompt := fmt.Sprintf(documentAnalysisPrompt, truncate(content, analysisContentLimit))

	response, err := a.client.GenerateResponse(prompt)
	if err != nil {
		utilities.Warn("document analysis call failed, using fallback: %v", err)
		return fallbackAnalysis()
	}

	var parsed struct {
		KeyTopics        []string `json:"keyTopics"`
		Compliance       *bool    `json:"compliance"`
		RiskLevel        string   `json:"riskLevel"`
		RequiredTraining *bool    `json:"requiredTraining"`
		Summary          string   `json:"summary"`
	}
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil {
		utilities.Warn("document analysis response not parseable, using fallback: %v", err)
		return fallbackAnalysis()
	}

	analysis := DocumentAnalysis{
		KeyTopics:        parsed.KeyTopics,
		RiskLevel:        parsed.RiskLevel,
		Summary:          parsed.Summary,
		Compliance:       false,
		RequiredTraining: true,
	}
	if parsed.Compliance != nil {
		analysis.Compliance = *parsed.Compliance
	}
	if parsed.RequiredTraining != nil {
		analysis.RequiredTraining = *parsed.RequiredTraining
	}
	if len(analysis.KeyTopics) == 0 {
		analysis.KeyTopics = fallbackAnalysis().KeyTopics
	}
	switch analysis.RiskLevel {
	case "low", "medium", "high":
	default:
		analysis.RiskLevel = "medium"
	}
	if analysis.Summary == "" {
		analysis.Summary = "Document analysis summary"
	}
	return analysis
}

// ExtractKeyTopics asks the LLM for the document's main topics. The prompt
// contains at most the first 2000 characters of content.
func (a *DocumentAnalyzer) ExtractKeyTopics(content string) []string {
	prompt := fmt.Sprintf(keyTopicsPrompt, truncate(content, topicsContentLimit))

	response, err := a.client.GenerateResponse(prompt)
	if err != nil {
		utilities.Warn("topic extraction failed: %v", err)
		return []string{"General Policy", "Compliance"}
	}

	var topics []string
	if err := json.Unmarshal([]byte(extractJSON(response)), &topics); err != nil || len(topics) == 0 {
		return []string{"General Policy", "Compliance"}
	}
	return topics
}

// SummarizeDocument returns a summary of at most maxLength words.
func (a *DocumentAnalyzer) SummarizeDocument(content string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = 200
	}
	prompt := fmt.Sprintf(summaryPrompt, maxLength, content)

	response, err := a.client.GenerateResponse(prompt)
	if err != nil || strings.TrimSpace(response) == "" {
		return "This document contains important corporate policies and guidelines that employees should understand and follow."
	}
	return strings.TrimSpace(response)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

// extractJSON strips markdown code fences and surrounding prose that chat
// models commonly wrap around JSON payloads.
func extractJSON(response string) string {
	s := strings.TrimSpace(response)
	if start := strings.Index(s, "```"); start != -1 {
		s = s[start+3:]
		s = strings.TrimPrefix(s, "json")
		if end := strings.Index(s, "```"); end != -1 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}

	objStart := strings.IndexAny(s, "[{")
	if objStart == -1 {
		return s
	}
	var objEnd int
	if s[objStart] == '[' {
		objEnd = strings.LastIndex(s, "]")
	} else {
		objEnd = strings.LastIndex(s, "}")
	}
	if objEnd > objStart {
		return s[objStart : objEnd+1]
	}
	return s
}
