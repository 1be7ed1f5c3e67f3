package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/civilkabot/internal/database"
	"github.com/edgard/civilkabot/internal/dialogue"
	"github.com/edgard/civilkabot/internal/vision"
)

const batchProcessingTimeout = 3 * time.Minute

// NewMessageHandler returns the default handler for everything that is not
// a command: vehicle descriptions, answers to follow-up questions and
// document photos.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	h := &messageHandler{deps: deps}
	h.batcher = NewPhotoBatcher(deps.Config.Dialogue.MediaGroupDebounce, deps.Config.Vision.MaxImages, h.processBatch)
	return h.Handle
}

type messageHandler struct {
	deps    HandlerDeps
	batcher *PhotoBatcher
}

func (h *messageHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "message")

	msg := update.Message
	if msg == nil || msg.From == nil {
		log.DebugContext(ctx, "Ignoring update without message or sender", "update_id", update.ID)
		return
	}
	chatID, userID := msg.Chat.ID, msg.From.ID

	if fileID := imageFileID(msg); fileID != "" {
		if !h.batcher.Add(ctx, b, batchKey(msg), chatID, userID, fileID, msg.Caption) {
			log.InfoContext(ctx, "Photo batch full, dropping photo", "chat_id", chatID, "max_images", h.deps.Config.Vision.MaxImages)
		}
		return
	}

	if strings.TrimSpace(msg.Text) == "" {
		sendText(ctx, b, h.deps, chatID, h.deps.Config.Messages.UnsupportedMsg)
		return
	}

	reply := h.deps.Engine.Handle(ctx, dialogue.Turn{UserID: userID, Text: msg.Text})
	sendText(ctx, b, h.deps, chatID, reply.Text)
	SaveQuoteWithRetry(ctx, h.deps, chatID, userID, reply.Quote, database.SourceText)
}

func (h *messageHandler) processBatch(batch PhotoBatch) {
	ctx, cancel := context.WithTimeout(batch.ctx, batchProcessingTimeout)
	defer cancel()

	log := h.deps.Logger.With("handler", "message", "chat_id", batch.ChatID, "user_id", batch.UserID)
	log.InfoContext(ctx, "Processing photo batch", "photos", len(batch.FileIDs), "has_caption", batch.Caption != "")

	placeholder := sendText(ctx, batch.bot, h.deps, batch.ChatID, h.deps.Config.Messages.Analyzing)

	analyses := h.analyze(ctx, batch.bot, batch.FileIDs)
	reply := h.deps.Engine.Handle(ctx, dialogue.Turn{
		UserID: batch.UserID,
		Text:   batch.Caption,
		Images: analyses,
	})

	editOrSend(ctx, batch.bot, h.deps, batch.ChatID, placeholder, reply.Text)
	SaveQuoteWithRetry(ctx, h.deps, batch.ChatID, batch.UserID, reply.Quote, database.SourcePhoto)
}

// analyze downloads and recognizes every photo, one Analysis per file id.
// Download failures count as the analyzer being unavailable for that photo.
func (h *messageHandler) analyze(ctx context.Context, b *bot.Bot, fileIDs []string) []vision.Analysis {
	out := make([]vision.Analysis, len(fileIDs))
	if h.deps.Vision == nil {
		for i := range out {
			out[i].Err = vision.ErrUnavailable
		}
		return out
	}

	images := make([]vision.Image, 0, len(fileIDs))
	slots := make([]int, 0, len(fileIDs))
	for i, fileID := range fileIDs {
		data, mimeType, err := DownloadPhoto(ctx, b, h.deps.Config.Telegram.Token, fileID)
		if err != nil {
			h.deps.Logger.WarnContext(ctx, "Photo download failed", "error", err, "file_id", fileID)
			out[i].Err = fmt.Errorf("%w: %w", vision.ErrUnavailable, err)
			continue
		}
		images = append(images, vision.Image{Data: data, MIMEType: mimeType})
		slots = append(slots, i)
	}

	cfg := h.deps.Config.Vision
	for j, a := range vision.AnalyzeAll(ctx, h.deps.Vision, images, cfg.Concurrency, cfg.Timeout) {
		out[slots[j]] = a
		if a.Err != nil {
			h.deps.Logger.InfoContext(ctx, "Photo not recognized", "analyzer", h.deps.Vision.Name(), "error", a.Err)
		}
	}
	return out
}

// batchKey groups album photos by media group and loose photos by sender.
func batchKey(msg *models.Message) string {
	if msg.MediaGroupID != "" {
		return "group:" + msg.MediaGroupID
	}
	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}
	return fmt.Sprintf("chat:%d:%d", msg.Chat.ID, userID)
}
