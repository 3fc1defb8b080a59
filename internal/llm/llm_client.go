package llm

// CompletionClient defines the interface for interacting with LLM services.
// Implementations send one prompt and return the raw completion text; callers
// own parsing and fallback handling.
type CompletionClient interface {
	GenerateResponse(prompt string) (string, error)
}

// Options holds the generation parameters shared by all providers.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// DefaultOptions returns the parameters used when the config leaves them unset.
func DefaultOptions() Options {
	return Options{
		Model:       "mistral",
		Temperature: 0.7,
		MaxTokens:   3000,
	}
}
