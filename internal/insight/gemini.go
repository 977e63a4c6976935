package insight

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"github.com/finsight-app/finsight/internal/domain"
)

// DefaultModelName is the Gemini model used for summaries unless overridden.
const DefaultModelName = "gemini-2.0-flash"

// GeminiSummarizer calls the Gemini API to produce the report summary.
type GeminiSummarizer struct {
	apiKey string
	model  string
}

// NewGeminiSummarizer builds a summarizer for the given credential. The key
// is validated on use, not here, so a misconfigured server still boots and
// reports the fault per request.
func NewGeminiSummarizer(apiKey, model string) *GeminiSummarizer {
	if model == "" {
		model = DefaultModelName
	}
	return &GeminiSummarizer{apiKey: apiKey, model: model}
}

// Summarize sends the prompt to Gemini and returns the first candidate's
// text. A missing credential fails before any network call; an API failure
// surfaces as an UpstreamError carrying the upstream diagnostic. An empty
// completion is not an error: it returns "" and the caller decides.
func (s *GeminiSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", &domain.ConfigError{Missing: "Gemini API key"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      s.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", &domain.UpstreamError{Service: "completion service", Body: err.Error()}
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &domain.UpstreamError{
				Service:    "completion service",
				StatusCode: apiErr.Code,
				Body:       apiErr.Message,
			}
		}
		return "", &domain.UpstreamError{Service: "completion service", Body: err.Error()}
	}

	return resp.Text(), nil
}
