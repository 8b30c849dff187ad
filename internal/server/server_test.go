package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/lexiroute/internal/config"
	"github.com/amishk599/lexiroute/internal/model"
)

type stubAnalyzer struct {
	result model.AnalysisResult
	err    error
	calls  int
	got    model.AnalysisRequest
	panic  bool
}

func (s *stubAnalyzer) Dispatch(_ context.Context, req model.AnalysisRequest) (model.AnalysisResult, error) {
	s.calls++
	s.got = req
	if s.panic {
		panic("analyzer exploded")
	}
	return s.result, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() (config.ServerConfig, config.CORSConfig) {
	return config.ServerConfig{
			Addr:            "127.0.0.1:0",
			Path:            "/api/analyze",
			ShutdownTimeout: 2 * time.Second,
		}, config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         86400,
		}
}

func newTestHandler(a model.Analyzer) http.Handler {
	srvCfg, corsCfg := testConfig()
	return New(srvCfg, corsCfg, a, discardLogger()).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestAnalyze_Success(t *testing.T) {
	stub := &stubAnalyzer{result: model.AnalysisResult{
		Translation: "hello",
		Keywords:    []model.KeywordEntry{{Word: "hola", Meaning: "hello"}},
	}}
	h := newTestHandler(stub)

	rec := do(t, h, http.MethodPost, "/api/analyze",
		`{"provider":"gemini","model":"gemini-2.0-flash","apiKey":"k","prompt":"hola"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.JSONEq(t,
		`{"translation":"hello","keywords":[{"word":"hola","phonetic":"","roots":"","origin":"","meaning":"hello"}]}`,
		rec.Body.String())
	assert.Equal(t, model.AnalysisRequest{Provider: "gemini", Model: "gemini-2.0-flash", APIKey: "k", Prompt: "hola"}, stub.got)
}

func TestAnalyze_EmptyKeywordsSerializeAsArray(t *testing.T) {
	h := newTestHandler(&stubAnalyzer{result: model.AnalysisResult{Translation: "x"}})

	rec := do(t, h, http.MethodPost, "/api/analyze", `{"apiKey":"k","prompt":"p"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"translation":"x","keywords":[]}`, rec.Body.String())
}

func TestAnalyze_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", &model.ValidationError{Message: "API key is required"}, http.StatusBadRequest, "API key is required"},
		{"unknown provider", &model.UnknownProviderError{Provider: "openai"}, http.StatusBadRequest, "Unknown provider: openai"},
		{"provider call", &model.ProviderCallError{Message: "bad key", StatusCode: 401}, http.StatusInternalServerError, "bad key"},
		{"parse", &model.ParseError{Message: "Could not parse AI response as JSON"}, http.StatusInternalServerError, "Could not parse AI response as JSON"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "boom"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(&stubAnalyzer{err: tc.err})

			rec := do(t, h, http.MethodPost, "/api/analyze", `{"provider":"gemini","apiKey":"k","prompt":"p"}`)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantMsg, decodeError(t, rec))
		})
	}
}

func TestAnalyze_MalformedBody(t *testing.T) {
	stub := &stubAnalyzer{}
	h := newTestHandler(stub)

	rec := do(t, h, http.MethodPost, "/api/analyze", `{"provider":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON body", decodeError(t, rec))
	assert.Zero(t, stub.calls)
}

func TestAnalyze_BodyTooLarge(t *testing.T) {
	h := newTestHandler(&stubAnalyzer{})

	body := `{"prompt":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec := do(t, h, http.MethodPost, "/api/analyze", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Request body too large", decodeError(t, rec))
}

func TestAnalyze_MethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			stub := &stubAnalyzer{}
			h := newTestHandler(stub)

			rec := do(t, h, method, "/api/analyze", "")

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "Method not allowed", decodeError(t, rec))
			assert.Zero(t, stub.calls)
		})
	}
}

func TestAnalyze_Preflight(t *testing.T) {
	stub := &stubAnalyzer{}
	h := newTestHandler(stub)

	rec := do(t, h, http.MethodOptions, "/api/analyze", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Zero(t, stub.calls)
}

func TestAnalyze_PanicRecovered(t *testing.T) {
	h := newTestHandler(&stubAnalyzer{panic: true})

	rec := do(t, h, http.MethodPost, "/api/analyze", `{"apiKey":"k","prompt":"p"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeError(t, rec))
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(&stubAnalyzer{})

	rec := do(t, h, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthz_RejectsPost(t *testing.T) {
	h := newTestHandler(&stubAnalyzer{})

	rec := do(t, h, http.MethodPost, "/healthz", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
	assert.Equal(t, "Method not allowed", decodeError(t, rec))
}

func TestUnknownPath(t *testing.T) {
	h := newTestHandler(&stubAnalyzer{})

	rec := do(t, h, http.MethodPost, "/api/other", "{}")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServe_GracefulShutdown(t *testing.T) {
	srvCfg, corsCfg := testConfig()
	s := New(srvCfg, corsCfg, &stubAnalyzer{result: model.AnalysisResult{Translation: "ok"}}, discardLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Post("http://"+ln.Addr().String()+"/api/analyze", "application/json",
		strings.NewReader(`{"provider":"deepseek","apiKey":"k","prompt":"p"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStart_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srvCfg, corsCfg := testConfig()
	srvCfg.Addr = ln.Addr().String()
	s := New(srvCfg, corsCfg, &stubAnalyzer{}, discardLogger())

	err = s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on")
}
