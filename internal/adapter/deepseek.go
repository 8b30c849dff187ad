package adapter

import "github.com/amishk599/lexiroute/internal/model"

const deepSeekBaseURL = "https://api.deepseek.com"

// DeepSeekVariant talks to DeepSeek's OpenAI-compatible chat completions API
// with Bearer authentication.
func DeepSeekVariant() Variant {
	return Variant{
		Kind:           model.ProviderDeepSeek,
		Name:           "DeepSeek",
		DefaultBaseURL: deepSeekBaseURL,
		DefaultModel:   "deepseek-chat",
		Endpoint:       chatEndpoint,
		Authorize:      bearerAuth,
		BuildBody:      buildChatBody,
		ExtractText:    extractChatText,
	}
}
