package logger_test

import (
	"log/slog"
	"testing"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/civilkabot/internal/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range testCases {
		if got := logger.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		in     string
		maxLen int
		want   string
	}{
		{in: "short", maxLen: 10, want: "short"},
		{in: "exactly10!", maxLen: 10, want: "exactly10!"},
		{in: "a longer message", maxLen: 10, want: "a longe..."},
		{in: "Привет, мир", maxLen: 8, want: "Приве..."},
		{in: "anything", maxLen: 2, want: "..."},
	}
	for _, tc := range testCases {
		if got := logger.Truncate(tc.in, tc.maxLen); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}

func TestUpdateAttrs(t *testing.T) {
	t.Parallel()

	update := &models.Update{
		ID: 7,
		Message: &models.Message{
			ID:           11,
			Chat:         models.Chat{ID: 42},
			From:         &models.User{ID: 99},
			Caption:      "BMW X3",
			MediaGroupID: "album",
			Photo:        []models.PhotoSize{{FileID: "a"}, {FileID: "b"}},
		},
	}

	attrs := attrMap(logger.UpdateAttrs(update))
	want := map[string]any{
		"update_id":       int64(7),
		"update_type":     "message",
		"message_id":      11,
		"chat_id":         int64(42),
		"user_id":         int64(99),
		"photo_sizes":     2,
		"caption_preview": "BMW X3",
		"media_group_id":  "album",
	}
	for key, value := range want {
		if attrs[key] != value {
			t.Errorf("UpdateAttrs()[%q] = %v (%T), want %v (%T)", key, attrs[key], attrs[key], value, value)
		}
	}
	if _, ok := attrs["text_preview"]; ok {
		t.Error("UpdateAttrs() has text_preview for a photo message")
	}

	other := attrMap(logger.UpdateAttrs(&models.Update{ID: 8}))
	if other["update_type"] != "other" {
		t.Errorf("UpdateAttrs() update_type = %v, want other", other["update_type"])
	}
}

func attrMap(attrs []any) map[string]any {
	m := make(map[string]any, len(attrs)/2)
	for i := 0; i+1 < len(attrs); i += 2 {
		m[attrs[i].(string)] = attrs[i+1]
	}
	return m
}
