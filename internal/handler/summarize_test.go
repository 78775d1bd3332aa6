package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aliwaqas-commits/QuickScribe-AI/internal/summarizer"
	"github.com/gin-gonic/gin"
)

type fakeSummarizer struct {
	summary    string
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeSummarizer) Summarize(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.summary, f.err
}

func newTestRouter(fake *fakeSummarizer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewSummarizeHandler(fake, "Summarize:\n\n", 50, 30000, log)

	router := gin.New()
	router.POST("/api/summarize", h.Summarize)
	return router
}

func postText(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/summarize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

func jsonText(t *testing.T, text string) string {
	t.Helper()

	raw, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	return string(raw)
}

func TestSummarizeRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing text", `{}`},
		{"wrong type", `{"text": 123}`},
		{"malformed json", `{"text": `},
		{"empty text", `{"text": ""}`},
		{"too short", jsonText(t, strings.Repeat("a", 49))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSummarizer{}
			router := newTestRouter(fake)

			w := postText(t, router, tt.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if got := decodeBody(t, w)["error"]; got != "Invalid text. Min 50 characters required." {
				t.Fatalf("unexpected error message: %q", got)
			}
			if fake.calls != 0 {
				t.Fatalf("expected no upstream call, got %d", fake.calls)
			}
		})
	}
}

func TestSummarizeRejectsOversizedText(t *testing.T) {
	fake := &fakeSummarizer{}
	router := newTestRouter(fake)

	w := postText(t, router, jsonText(t, strings.Repeat("a", 30001)))

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != "Text too large. Max 30,000 characters." {
		t.Fatalf("unexpected error message: %q", got)
	}
	if fake.calls != 0 {
		t.Fatalf("expected no upstream call, got %d", fake.calls)
	}
}

func TestSummarizeDelegatesWithPromptPrefix(t *testing.T) {
	fake := &fakeSummarizer{summary: "a short summary"}
	router := newTestRouter(fake)

	text := strings.Repeat("a", 50)
	w := postText(t, router, jsonText(t, text))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decodeBody(t, w)["summary"]; got != "a short summary" {
		t.Fatalf("unexpected summary: %q", got)
	}
	if fake.calls != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", fake.calls)
	}
	if fake.lastPrompt != "Summarize:\n\n"+text {
		t.Fatalf("expected prompt preamble before text, got %q", fake.lastPrompt)
	}
}

func TestSummarizeBoundaryLengthsCountRunes(t *testing.T) {
	// 50 multi-byte characters must pass the minimum gate.
	fake := &fakeSummarizer{summary: "ok"}
	router := newTestRouter(fake)

	w := postText(t, router, jsonText(t, strings.Repeat("é", 50)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for 50 runes, got %d", w.Code)
	}
}

func TestSummarizeMapsBlockedContent(t *testing.T) {
	fake := &fakeSummarizer{err: summarizer.ErrContentBlocked}
	router := newTestRouter(fake)

	w := postText(t, router, jsonText(t, strings.Repeat("a", 100)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != "Content was blocked by safety filters." {
		t.Fatalf("unexpected error message: %q", got)
	}
}

func TestSummarizeHidesUpstreamDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logged bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logged, nil))

	fake := &fakeSummarizer{err: errors.New("dial tcp: connection refused")}
	h := NewSummarizeHandler(fake, "Summarize:\n\n", 50, 30000, log)

	router := gin.New()
	router.POST("/api/summarize", h.Summarize)

	w := postText(t, router, jsonText(t, strings.Repeat("a", 100)))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != "Failed to generate summary." {
		t.Fatalf("unexpected error message: %q", got)
	}
	if strings.Contains(w.Body.String(), "connection refused") {
		t.Fatalf("upstream detail leaked to client: %q", w.Body.String())
	}
	if !strings.Contains(logged.String(), "connection refused") {
		t.Fatalf("expected upstream detail in server log, got %q", logged.String())
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{999, "999"},
		{1000, "1,000"},
		{30000, "30,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := groupDigits(tt.in); got != tt.want {
			t.Errorf("groupDigits(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
