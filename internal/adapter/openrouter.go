package adapter

import (
	"net/http"

	"github.com/amishk599/lexiroute/internal/model"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// Default attribution sent to OpenRouter to identify the calling application.
const (
	DefaultReferer = "https://lexiroute.app"
	DefaultTitle   = "LexiRoute"
)

// OpenRouterVariant talks to OpenRouter's chat completions API. Besides Bearer
// auth it sends the HTTP-Referer and X-Title attribution headers; empty values
// fall back to DefaultReferer and DefaultTitle.
func OpenRouterVariant(referer, title string) Variant {
	if referer == "" {
		referer = DefaultReferer
	}
	if title == "" {
		title = DefaultTitle
	}
	return Variant{
		Kind:           model.ProviderOpenRouter,
		Name:           "OpenRouter",
		DefaultBaseURL: openRouterBaseURL,
		DefaultModel:   "openai/gpt-4o-mini",
		Endpoint:       chatEndpoint,
		Authorize: func(req *http.Request, credential string) {
			bearerAuth(req, credential)
			req.Header.Set("HTTP-Referer", referer)
			req.Header.Set("X-Title", title)
		},
		BuildBody:   buildChatBody,
		ExtractText: extractChatText,
	}
}
