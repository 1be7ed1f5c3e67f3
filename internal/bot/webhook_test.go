package bot_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/civilkabot/internal/bot"
)

type recordingProcessor struct {
	mu      sync.Mutex
	updates []*models.Update
}

func (p *recordingProcessor) ProcessUpdate(_ context.Context, upd *models.Update) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, upd)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestWebhookRouter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		secret     string
		header     string
		body       string
		wantStatus int
		wantUpdate bool
	}{
		{name: "valid update", secret: "s3cret", header: "s3cret", body: `{"update_id":5,"message":{"message_id":1,"date":1,"chat":{"id":2,"type":"private"},"text":"BMW"}}`, wantStatus: http.StatusOK, wantUpdate: true},
		{name: "wrong secret", secret: "s3cret", header: "nope", body: `{"update_id":5}`, wantStatus: http.StatusUnauthorized},
		{name: "missing secret", secret: "s3cret", body: `{"update_id":5}`, wantStatus: http.StatusUnauthorized},
		{name: "no secret configured", body: `{"update_id":6}`, wantStatus: http.StatusOK, wantUpdate: true},
		{name: "bad json", secret: "s3cret", header: "s3cret", body: `{"update_id":`, wantStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			proc := &recordingProcessor{}
			router := bot.NewWebhookRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), "/webhook", tc.secret, proc, pinger{})

			req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(tc.body))
			if tc.header != "" {
				req.Header.Set(bot.SecretTokenHeader, tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if got := len(proc.updates) == 1; got != tc.wantUpdate {
				t.Errorf("update processed = %v, want %v", got, tc.wantUpdate)
			}
		})
	}
}

func TestWebhookRouterProcessesDecodedUpdate(t *testing.T) {
	t.Parallel()

	proc := &recordingProcessor{}
	router := bot.NewWebhookRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), "/hook", "", proc, pinger{})

	body := `{"update_id":9,"message":{"message_id":3,"date":1,"chat":{"id":77,"type":"private"},"from":{"id":77,"is_bot":false,"first_name":"A"},"text":"Toyota Camry 1800"}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(body)))

	if rec.Code != http.StatusOK || len(proc.updates) != 1 {
		t.Fatalf("status = %d, updates = %d", rec.Code, len(proc.updates))
	}
	upd := proc.updates[0]
	if upd.ID != 9 || upd.Message == nil || upd.Message.Chat.ID != 77 || upd.Message.Text != "Toyota Camry 1800" {
		t.Errorf("decoded update = %+v", upd)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		err  error
		want int
	}{
		"healthy":    {want: http.StatusOK},
		"db is down": {err: errors.New("closed"), want: http.StatusServiceUnavailable},
	}
	for name, tc := range testCases {
		router := bot.NewWebhookRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), "/webhook", "", &recordingProcessor{}, pinger{err: tc.err})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", name, rec.Code, tc.want)
		}
	}

	router := bot.NewWebhookRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), "/webhook", "", &recordingProcessor{}, pinger{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/webhook", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /webhook status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
