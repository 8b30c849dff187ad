package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// chatRequest mirrors the OpenAI-compatible /chat/completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse mirrors the relevant fields of a chat completion.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func chatEndpoint(baseURL, _, _ string) string {
	return strings.TrimRight(baseURL, "/") + "/chat/completions"
}

func bearerAuth(req *http.Request, credential string) {
	req.Header.Set("Authorization", "Bearer "+credential)
}

func buildChatBody(modelID, prompt string) any {
	return chatRequest{
		Model: modelID,
		Messages: []chatMessage{
			{Role: "system", Content: SystemInstruction},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxOutputTokens,
	}
}

func extractChatText(body []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
