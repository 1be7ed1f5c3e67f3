package vision_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/edgard/civilkabot/internal/config"
	"github.com/edgard/civilkabot/internal/vehicle"
	"github.com/edgard/civilkabot/internal/vision"
)

var (
	testImage = vision.Image{Data: []byte("fake-jpeg-bytes"), MIMEType: "image/jpeg"}

	documentReply    = `{"brand":"bmw","model":"x3","year":2015,"engine_volume_cc":1998,"fuel_type":"diesel","confidence":92,"error":""}`
	notDocumentReply = `{"brand":"","model":"","year":0,"engine_volume_cc":0,"fuel_type":"","confidence":0,"error":"На фото нет техпаспорта"}`

	wantDocument = vision.Result{
		Record:     vehicle.Record{Brand: "BMW", Model: "X3", Year: 2015, EngineVolumeCC: 1998, FuelType: vehicle.FuelDiesel},
		Confidence: 92,
	}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// backendServer answers every request with the given status and body and
// records the last request body.
type backendServer struct {
	status   int
	body     string
	hits     atomic.Int32
	lastBody atomic.Value
}

func (s *backendServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	s.lastBody.Store(string(raw))
	s.hits.Add(1)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.status)
	_, _ = io.WriteString(w, s.body)
}

func (s *backendServer) requestBody() string {
	v, _ := s.lastBody.Load().(string)
	return v
}

func openAIReply(t *testing.T, content string) string {
	t.Helper()
	reply := map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-test",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	}
	b, err := json.Marshal(reply)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	return string(b)
}

func geminiReply(t *testing.T, content string) string {
	t.Helper()
	reply := map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": content}},
			},
			"finishReason": "STOP",
		}},
	}
	b, err := json.Marshal(reply)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	return string(b)
}

func TestOpenAIAnalyzer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		status          int
		body            func(t *testing.T) string
		want            vision.Result
		wantReason      string
		wantUnavailable bool
	}{
		{
			name:   "document read",
			status: http.StatusOK,
			body:   func(t *testing.T) string { return openAIReply(t, documentReply) },
			want:   wantDocument,
		},
		{
			name:       "model reports no document",
			status:     http.StatusOK,
			body:       func(t *testing.T) string { return openAIReply(t, notDocumentReply) },
			wantReason: "На фото нет техпаспорта",
		},
		{
			name:            "no choices",
			status:          http.StatusOK,
			body:            func(*testing.T) string { return `{"id":"chatcmpl-1","object":"chat.completion","choices":[]}` },
			wantUnavailable: true,
		},
		{
			name:            "server error",
			status:          http.StatusInternalServerError,
			body:            func(*testing.T) string { return `{"error":{"message":"boom","type":"server_error"}}` },
			wantUnavailable: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			backend := &backendServer{status: tc.status, body: tc.body(t)}
			srv := httptest.NewServer(backend)
			defer srv.Close()

			a, err := vision.NewOpenAIAnalyzer(config.OpenAIConfig{APIKey: "test-key", Model: "gpt-test", BaseURL: srv.URL + "/v1"}, discardLogger())
			if err != nil {
				t.Fatalf("NewOpenAIAnalyzer() error = %v", err)
			}

			got, err := a.Analyze(context.Background(), testImage)
			checkBackendResult(t, got, err, tc.want, tc.wantReason, tc.wantUnavailable)

			body := backend.requestBody()
			for _, want := range []string{
				"data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(testImage.Data),
				`"json_object"`,
				`"gpt-test"`,
			} {
				if !strings.Contains(body, want) {
					t.Errorf("request body does not contain %s", want)
				}
			}
		})
	}
}

func TestGeminiAnalyzer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		status          int
		body            func(t *testing.T) string
		want            vision.Result
		wantReason      string
		wantUnavailable bool
	}{
		{
			name:   "document read",
			status: http.StatusOK,
			body:   func(t *testing.T) string { return geminiReply(t, documentReply) },
			want:   wantDocument,
		},
		{
			name:       "model reports no document",
			status:     http.StatusOK,
			body:       func(t *testing.T) string { return geminiReply(t, notDocumentReply) },
			wantReason: "На фото нет техпаспорта",
		},
		{
			name:       "blocked prompt",
			status:     http.StatusOK,
			body:       func(*testing.T) string { return `{"promptFeedback":{"blockReason":"SAFETY"}}` },
			wantReason: "Фото отклонено фильтром безопасности",
		},
		{
			name:            "no candidates",
			status:          http.StatusOK,
			body:            func(*testing.T) string { return `{"candidates":[]}` },
			wantUnavailable: true,
		},
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			body: func(*testing.T) string {
				return `{"error":{"code":400,"message":"bad image","status":"INVALID_ARGUMENT"}}`
			},
			wantUnavailable: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			backend := &backendServer{status: tc.status, body: tc.body(t)}
			srv := httptest.NewServer(backend)
			defer srv.Close()

			a, err := vision.NewGeminiAnalyzer(context.Background(), config.GeminiConfig{
				APIKey:    "test-key",
				ModelName: "gemini-test",
				BaseURL:   srv.URL,
			}, discardLogger())
			if err != nil {
				t.Fatalf("NewGeminiAnalyzer() error = %v", err)
			}

			got, err := a.Analyze(context.Background(), testImage)
			checkBackendResult(t, got, err, tc.want, tc.wantReason, tc.wantUnavailable)

			body := backend.requestBody()
			for _, want := range []string{base64.StdEncoding.EncodeToString(testImage.Data), "application/json"} {
				if !strings.Contains(body, want) {
					t.Errorf("request body does not contain %s", want)
				}
			}
			if got := backend.hits.Load(); got != 1 {
				t.Errorf("requests = %d, want 1", got)
			}
		})
	}
}

func TestGeminiAnalyzerRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	ok := geminiReply(t, documentReply)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`)
			return
		}
		_, _ = io.WriteString(w, ok)
	}))
	defer srv.Close()

	a, err := vision.NewGeminiAnalyzer(context.Background(), config.GeminiConfig{
		APIKey:     "test-key",
		ModelName:  "gemini-test",
		MaxRetries: 2,
		BaseURL:    srv.URL,
	}, discardLogger())
	if err != nil {
		t.Fatalf("NewGeminiAnalyzer() error = %v", err)
	}

	got, err := a.Analyze(context.Background(), testImage)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got != wantDocument {
		t.Errorf("Analyze() = %+v, want %+v", got, wantDocument)
	}
	if n := hits.Load(); n < 2 {
		t.Errorf("requests = %d, want at least 2", n)
	}
}

func checkBackendResult(t *testing.T, got vision.Result, err error, want vision.Result, wantReason string, wantUnavailable bool) {
	t.Helper()

	switch {
	case wantReason != "":
		var recErr *vision.RecognitionError
		if !errors.As(err, &recErr) {
			t.Fatalf("Analyze() error = %v, want RecognitionError", err)
		}
		if recErr.Reason != wantReason {
			t.Errorf("Reason = %q, want %q", recErr.Reason, wantReason)
		}
		if errors.Is(err, vision.ErrUnavailable) {
			t.Errorf("Analyze() error = %v, must not be ErrUnavailable", err)
		}
	case wantUnavailable:
		if !errors.Is(err, vision.ErrUnavailable) {
			t.Errorf("Analyze() error = %v, want ErrUnavailable", err)
		}
	default:
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if got != want {
			t.Errorf("Analyze() = %+v, want %+v", got, want)
		}
	}
}
