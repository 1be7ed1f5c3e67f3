// Package vision reads vehicle registration documents from photos using an
// external multimodal model.
package vision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/edgard/civilkabot/internal/config"
	"github.com/edgard/civilkabot/internal/vehicle"
)

// Provider names accepted in configuration.
const (
	ProviderNone   = "none"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var (
	// ErrUnavailable means no analyzer is configured or the provider could not be reached.
	ErrUnavailable = errors.New("vision analyzer unavailable")
	// ErrNotRecognized means the model answered but found no vehicle document.
	ErrNotRecognized = errors.New("vehicle document not recognized")
)

// RecognitionError carries the model's own explanation of why a photo could
// not be read. It matches ErrNotRecognized with errors.Is.
type RecognitionError struct {
	Reason string
}

func (e *RecognitionError) Error() string {
	return ErrNotRecognized.Error() + ": " + e.Reason
}

// Is reports whether target is ErrNotRecognized.
func (e *RecognitionError) Is(target error) bool {
	return target == ErrNotRecognized
}

// Image is a downloaded photo.
type Image struct {
	Data     []byte
	MIMEType string
}

// Result is what a model read from one photo. Confidence is 0..100.
type Result struct {
	Record     vehicle.Record
	Confidence int
}

// Analysis pairs the outcome of one image with its error.
type Analysis struct {
	Result Result
	Err    error
}

// Analyzer extracts vehicle data from a single image.
type Analyzer interface {
	Analyze(ctx context.Context, img Image) (Result, error)
	Name() string
}

// New builds the analyzer selected by cfg.Provider. It returns a nil Analyzer
// and no error when vision is disabled.
func New(ctx context.Context, cfg config.VisionConfig, log *slog.Logger) (Analyzer, error) {
	var (
		a   Analyzer
		err error
	)
	switch cfg.Provider {
	case "", ProviderNone:
		log.Info("Vision analyzer disabled")
		return nil, nil
	case ProviderGemini:
		a, err = NewGeminiAnalyzer(ctx, cfg.Gemini, log)
	case ProviderOpenAI:
		a, err = NewOpenAIAnalyzer(cfg.OpenAI, log)
	default:
		return nil, fmt.Errorf("unknown vision provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return WithBreaker(a, cfg.BreakerFailures, cfg.BreakerCooldown, log), nil
}

// AnalyzeAll runs the analyzer over images with at most limit calls in
// flight and returns one Analysis per image in input order. A nil analyzer
// yields ErrUnavailable for every image. timeout bounds each call when positive.
func AnalyzeAll(ctx context.Context, a Analyzer, images []Image, limit int, timeout time.Duration) []Analysis {
	out := make([]Analysis, len(images))
	if a == nil {
		for i := range out {
			out[i].Err = ErrUnavailable
		}
		return out
	}
	if limit <= 0 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, img := range images {
		g.Go(func() error {
			callCtx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			res, err := a.Analyze(callCtx, img)
			out[i] = Analysis{Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
