package infrastructures

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type GeminiConfig struct {
	APIKey  string
	BaseURL string
}

type GeminiClient struct {
	HTTPClient *http.Client
	Config     *GeminiConfig
}

// NewGeminiClient creates a new Gemini HTTP client with configuration
func NewGeminiClient() *GeminiClient {
	config := &GeminiConfig{
		APIKey:  Config.GEMINI_API_KEY,
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
	}

	return &GeminiClient{
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		Config: config,
	}
}

// GetFullURL constructs the full generateContent URL for a model
func (c *GeminiClient) GetFullURL(model string) string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.Config.BaseURL, model, c.Config.APIKey)
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GeminiAPIError carries the HTTP status so callers can tell rate-limit
// failures apart from other provider errors.
type GeminiAPIError struct {
	StatusCode int
	Body       string
}

func (e *GeminiAPIError) Error() string {
	return fmt.Sprintf("gemini api error: status %d: %s", e.StatusCode, e.Body)
}

// IsRateLimited reports whether the error is a quota or rate-limit failure.
func (e *GeminiAPIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests || strings.Contains(e.Body, "quota")
}

// GenerateContent sends a single prompt to the given model and returns the
// concatenated text of the first candidate.
func (c *GeminiClient) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GetFullURL(model), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", &GeminiAPIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 {
		return "", &GeminiAPIError{StatusCode: resp.StatusCode, Body: "no candidates in response"}
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
