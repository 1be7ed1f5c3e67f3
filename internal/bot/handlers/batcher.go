package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/go-telegram/bot"
)

// PhotoBatch is a set of photos answered as a single turn.
type PhotoBatch struct {
	ChatID  int64
	UserID  int64
	FileIDs []string
	Caption string

	ctx context.Context
	bot *bot.Bot
}

// PhotoBatcher collects photos per key until none has arrived for the
// debounce delay, then hands the batch to flush on its own goroutine.
type PhotoBatcher struct {
	mu      sync.Mutex
	pending map[string]*pendingBatch
	delay   time.Duration
	limit   int
	flush   func(PhotoBatch)
}

type pendingBatch struct {
	batch PhotoBatch
	timer *time.Timer
}

// NewPhotoBatcher creates a batcher holding at most limit photos per batch.
func NewPhotoBatcher(delay time.Duration, limit int, flush func(PhotoBatch)) *PhotoBatcher {
	if limit <= 0 {
		limit = 1
	}
	return &PhotoBatcher{
		pending: make(map[string]*pendingBatch),
		delay:   delay,
		limit:   limit,
		flush:   flush,
	}
}

// Add appends a photo to the batch for key and restarts its timer. It
// reports false when the batch is already full and the photo was dropped.
// The batch keeps ctx values but not its cancellation, since a webhook
// request ends long before the batch is processed.
func (p *PhotoBatcher) Add(ctx context.Context, b *bot.Bot, key string, chatID, userID int64, fileID, caption string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	pb, ok := p.pending[key]
	if !ok {
		pb = &pendingBatch{batch: PhotoBatch{
			ChatID: chatID,
			UserID: userID,
			ctx:    context.WithoutCancel(ctx),
			bot:    b,
		}}
		p.pending[key] = pb
		pb.timer = time.AfterFunc(p.delay, func() { p.fire(key, pb) })
	} else {
		pb.timer.Reset(p.delay)
	}

	if pb.batch.Caption == "" {
		pb.batch.Caption = caption
	}
	if len(pb.batch.FileIDs) >= p.limit {
		return false
	}
	pb.batch.FileIDs = append(pb.batch.FileIDs, fileID)
	return true
}

// Pending returns the number of batches waiting for their timer.
func (p *PhotoBatcher) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

func (p *PhotoBatcher) fire(key string, pb *pendingBatch) {
	p.mu.Lock()
	// a Reset racing with an expired timer fires twice
	if p.pending[key] != pb {
		p.mu.Unlock()
		return
	}
	delete(p.pending, key)
	batch := pb.batch
	p.mu.Unlock()

	p.flush(batch)
}
