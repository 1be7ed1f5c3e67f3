package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/civilkabot/internal/database"
	"github.com/edgard/civilkabot/internal/quote"
)

const (
	photoDownloadTimeout = 30 * time.Second
	sendMessageTimeout   = 10 * time.Second
	dbSaveTimeout        = 5 * time.Second
	dbReadTimeout        = 5 * time.Second

	maxPhotoBytes = 10 * 1024 * 1024
)

// fileURLBase is the Telegram file download endpoint; tests point it at a
// local server.
var fileURLBase = "https://api.telegram.org/file/bot"

// DownloadPhoto fetches a Telegram file and sniffs its MIME type.
func DownloadPhoto(ctx context.Context, b *bot.Bot, token, fileID string) (data []byte, mimeType string, err error) {
	if token == "" {
		return nil, "", errors.New("empty token provided")
	}
	if fileID == "" {
		return nil, "", errors.New("empty fileID provided")
	}

	downloadCtx, cancel := context.WithTimeout(ctx, photoDownloadTimeout)
	defer cancel()

	fileObj, err := b.GetFile(downloadCtx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get file: %w", err)
	}
	if fileObj.FilePath == "" {
		return nil, "", errors.New("empty file path returned from Telegram")
	}

	return fetchFile(downloadCtx, fileURLBase+token+"/"+fileObj.FilePath)
}

func fetchFile(ctx context.Context, url string) (data []byte, mimeType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download file: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}
	data, err = io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file data: %w", err)
	}
	if len(data) == 0 {
		return nil, "", errors.New("received empty file data")
	}
	return data, http.DetectContentType(data), nil
}

// largestPhoto returns the file id of the biggest size Telegram offers.
func largestPhoto(sizes []models.PhotoSize) string {
	var best models.PhotoSize
	for _, p := range sizes {
		if p.Width*p.Height >= best.Width*best.Height {
			best = p
		}
	}
	return best.FileID
}

// imageFileID returns the file to analyze from a photo or an image sent as
// a document, or "".
func imageFileID(msg *models.Message) string {
	if len(msg.Photo) > 0 {
		return largestPhoto(msg.Photo)
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID
	}
	return ""
}

// commandArgs returns what follows the command word, e.g. "мотоцикл" for
// "/tariffs@civilkabot мотоцикл".
func commandArgs(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	_, args, _ := strings.Cut(text, " ")
	return strings.TrimSpace(args)
}

// sendText sends text to chatID and returns the sent message id, 0 on failure.
func sendText(ctx context.Context, b *bot.Bot, deps HandlerDeps, chatID int64, text string) int {
	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()

	sent, err := b.SendMessage(sendCtx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", chatID)
		return 0
	}
	return sent.ID
}

// editOrSend replaces the placeholder message with text, falling back to a
// new message when there is no placeholder or the edit fails.
func editOrSend(ctx context.Context, b *bot.Bot, deps HandlerDeps, chatID int64, messageID int, text string) {
	if messageID != 0 {
		editCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
		_, err := b.EditMessageText(editCtx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: messageID,
			Text:      text,
		})
		cancel()
		if err == nil {
			return
		}
		deps.Logger.WarnContext(ctx, "Failed to edit placeholder, sending new message", "error", err, "chat_id", chatID)
	}
	sendText(ctx, b, deps, chatID, text)
}

// SaveQuoteWithRetry journals a quote, retrying with linear backoff. Errors
// are only logged.
func SaveQuoteWithRetry(ctx context.Context, deps HandlerDeps, chatID, userID int64, q *quote.Quote, source string) {
	if q == nil || deps.Store == nil {
		return
	}
	log := deps.Logger.With("component", "journal")

	entry := &database.Quote{
		ChatID:         chatID,
		UserID:         userID,
		Brand:          q.Record.Brand,
		Model:          q.Record.Model,
		Year:           q.Record.Year,
		EngineVolumeCC: q.Record.EngineVolumeCC,
		FuelType:       string(q.Record.FuelType),
		Category:       q.Category,
		Price:          q.Price,
		Source:         source,
	}

	const maxRetries = 3
	var err error
	for i := range maxRetries {
		if ctx.Err() != nil {
			log.WarnContext(ctx, "Context cancelled, aborting quote save", "error", ctx.Err(), "attempt", i+1)
			return
		}

		dbCtx, cancel := context.WithTimeout(ctx, dbSaveTimeout)
		err = deps.Store.SaveQuote(dbCtx, entry)
		cancel()
		if err == nil {
			return
		}

		log.WarnContext(ctx, "Failed to save quote, retrying", "error", err, "user_id", userID, "attempt", i+1)
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(500*(i+1)) * time.Millisecond):
		}
	}
	log.ErrorContext(ctx, "Failed to save quote", "error", err, "user_id", userID, "attempts", maxRetries)
}
