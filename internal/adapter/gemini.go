package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/amishk599/lexiroute/internal/model"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// geminiRequest mirrors the generateContent request body.
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// geminiResponse holds the fields we read from a generateContent response.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GeminiVariant talks to Google's generateContent REST endpoint. The API key
// travels as the "key" query parameter; the system instruction is prepended to
// the user prompt in a single text part.
func GeminiVariant() Variant {
	return Variant{
		Kind:           model.ProviderGemini,
		Name:           "Gemini",
		DefaultBaseURL: geminiBaseURL,
		DefaultModel:   "gemini-2.0-flash",
		Endpoint: func(baseURL, modelID, credential string) string {
			return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
				strings.TrimRight(baseURL, "/"), url.PathEscape(modelID), url.QueryEscape(credential))
		},
		Authorize: func(_ *http.Request, _ string) {},
		BuildBody: func(_, prompt string) any {
			return geminiRequest{
				Contents: []geminiContent{
					{Parts: []geminiPart{{Text: SystemInstruction + "\n\n" + prompt}}},
				},
				GenerationConfig: geminiGenerationConfig{
					Temperature:     temperature,
					MaxOutputTokens: maxOutputTokens,
				},
			}
		},
		ExtractText: func(body []byte) (string, error) {
			var resp geminiResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return "", fmt.Errorf("decode gemini response: %w", err)
			}
			if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
				return "", nil
			}
			return resp.Candidates[0].Content.Parts[0].Text, nil
		},
	}
}
