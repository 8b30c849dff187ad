package model

import (
	"context"
	"time"
)

// MaxKeywords caps the number of keyword entries in an AnalysisResult.
const MaxKeywords = 5

// ProviderKind identifies one of the supported LLM vendors.
type ProviderKind string

const (
	ProviderGemini     ProviderKind = "gemini"
	ProviderDeepSeek   ProviderKind = "deepseek"
	ProviderOpenRouter ProviderKind = "openrouter"
)

// AnalysisRequest is the decoded body of a single analysis call.
type AnalysisRequest struct {
	Provider string `json:"provider"` // matched exactly against ProviderKind values
	Model    string `json:"model"`    // passed through to the vendor untouched
	APIKey   string `json:"apiKey"`   // caller-supplied credential, never logged
	Prompt   string `json:"prompt"`
}

// KeywordEntry describes one analysed word. All fields are always present.
type KeywordEntry struct {
	Word     string `json:"word"`
	Phonetic string `json:"phonetic"`
	Roots    string `json:"roots"`
	Origin   string `json:"origin"`
	Meaning  string `json:"meaning"`
}

// AnalysisResult is the canonical output every provider is normalized into.
type AnalysisResult struct {
	Translation string         `json:"translation"`
	Keywords    []KeywordEntry `json:"keywords"`
}

// ProviderAdapter performs one vendor call and returns the raw completion text.
type ProviderAdapter interface {
	Invoke(ctx context.Context, credential, modelID, prompt string) (string, error)
}

// Analyzer runs one end-to-end dispatch.
type Analyzer interface {
	Dispatch(ctx context.Context, req AnalysisRequest) (AnalysisResult, error)
}

// DispatchRecord is the metadata kept for one dispatch. It never holds the
// credential, the prompt or the result.
type DispatchRecord struct {
	ID        string
	Provider  string
	Model     string
	Outcome   string // "ok" or an ErrorKind value
	Message   string // error message, empty on success
	Duration  time.Duration
	CreatedAt time.Time
}

// DispatchLog stores dispatch metadata.
type DispatchLog interface {
	Record(ctx context.Context, rec DispatchRecord) error
	Recent(ctx context.Context, limit int) ([]DispatchRecord, error)
}
