package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/amishk599/lexiroute/internal/model"
)

// Sampling configuration shared by every vendor.
const (
	temperature     = 0.3
	maxOutputTokens = 2048
)

// Variant is the data record describing one vendor: where to send the request,
// how to authenticate it, what body to send and where the completion text lives
// in the response envelope.
type Variant struct {
	Kind           model.ProviderKind
	Name           string // used in error messages, e.g. "Gemini"
	DefaultBaseURL string
	DefaultModel   string // suggested by the CLI; never applied to requests

	Endpoint    func(baseURL, modelID, credential string) string
	Authorize   func(req *http.Request, credential string)
	BuildBody   func(modelID, prompt string) any
	ExtractText func(body []byte) (string, error)
}

// Adapter executes a single Variant over HTTP. It holds no per-call state and is
// safe for concurrent use.
type Adapter struct {
	variant Variant
	baseURL string
	client  *http.Client
}

// NewAdapter binds a variant to a base URL and HTTP client. An empty baseURL
// selects the variant's default.
func NewAdapter(v Variant, baseURL string, client *http.Client) *Adapter {
	if baseURL == "" {
		baseURL = v.DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Adapter{
		variant: v,
		baseURL: baseURL,
		client:  client,
	}
}

// Kind returns the provider identifier this adapter serves.
func (a *Adapter) Kind() model.ProviderKind { return a.variant.Kind }

// Name returns the vendor display name.
func (a *Adapter) Name() string { return a.variant.Name }

// DefaultModel returns the model the CLI suggests for this vendor.
func (a *Adapter) DefaultModel() string { return a.variant.DefaultModel }

// BaseURL returns the base URL requests are sent to.
func (a *Adapter) BaseURL() string { return a.baseURL }

// Invoke performs exactly one outbound request and returns the raw completion
// text. Every failure is a *model.ProviderCallError.
func (a *Adapter) Invoke(ctx context.Context, credential, modelID, prompt string) (string, error) {
	body, err := json.Marshal(a.variant.BuildBody(modelID, prompt))
	if err != nil {
		return "", a.callError(0, fmt.Sprintf("marshal %s request: %v", a.variant.Name, err), err)
	}

	endpoint := a.variant.Endpoint(a.baseURL, modelID, credential)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", a.callError(0, fmt.Sprintf("create %s request: %v", a.variant.Name, redact(err)), err)
	}
	req.Header.Set("Content-Type", "application/json")
	a.variant.Authorize(req, credential)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", a.callError(0, fmt.Sprintf("%s API request failed: %v", a.variant.Name, redact(err)), err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", a.callError(resp.StatusCode, fmt.Sprintf("read %s response: %v", a.variant.Name, err), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", a.callError(resp.StatusCode, errorMessage(a.variant.Name, resp.StatusCode, respBytes), nil)
	}

	text, err := a.variant.ExtractText(respBytes)
	if err != nil || text == "" {
		return "", a.callError(resp.StatusCode, "No response from "+a.variant.Name, err)
	}
	return text, nil
}

func (a *Adapter) callError(status int, msg string, cause error) *model.ProviderCallError {
	return &model.ProviderCallError{
		Provider:   a.variant.Kind,
		StatusCode: status,
		Message:    msg,
		Err:        cause,
	}
}

// errorMessage picks the human-readable message for a non-2xx response:
// error.message from the body when present, a generic vendor message when the
// body is JSON without one, or the status code when the body is not JSON.
func errorMessage(name string, status int, body []byte) string {
	var envelope any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Sprintf("HTTP %d", status)
	}
	obj, _ := envelope.(map[string]any)
	errObj, _ := obj["error"].(map[string]any)
	if msg, _ := errObj["message"].(string); msg != "" {
		return msg
	}
	return name + " API request failed"
}

// redact drops the request URL from transport errors; Gemini carries the
// credential in the query string.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
