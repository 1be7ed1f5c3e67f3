package dialogue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/edgard/civilkabot/internal/quote"
	"github.com/edgard/civilkabot/internal/vehicle"
	"github.com/edgard/civilkabot/internal/vision"
)

// Outcome classifies what a turn did.
type Outcome int

const (
	OutcomeQuoted Outcome = iota
	OutcomeNeedVolume
	OutcomeAcknowledged
	OutcomeReset
	OutcomeNotUnderstood
	OutcomeVisionUnavailable
	OutcomeNotRecognized
	OutcomePricingFailed
)

var outcomeNames = map[Outcome]string{
	OutcomeQuoted:            "quoted",
	OutcomeNeedVolume:        "need_volume",
	OutcomeAcknowledged:      "acknowledged",
	OutcomeReset:             "reset",
	OutcomeNotUnderstood:     "not_understood",
	OutcomeVisionUnavailable: "vision_unavailable",
	OutcomeNotRecognized:     "not_recognized",
	OutcomePricingFailed:     "pricing_failed",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "outcome(" + strconv.Itoa(int(o)) + ")"
}

// Turn is one inbound user message, already stripped of transport details.
// Images holds the vision results for attached photos, in the order sent.
type Turn struct {
	UserID int64
	Text   string
	Images []vision.Analysis
}

// Reply is the engine's answer to a turn. Quote is set when the turn
// produced a price.
type Reply struct {
	Text    string
	Outcome Outcome
	Quote   *quote.Quote
}

// Engine applies turns to per-user conversation state.
type Engine struct {
	store     *Store
	formatter *quote.Formatter
	log       *slog.Logger
}

// NewEngine creates an Engine. A nil logger discards output.
func NewEngine(store *Store, formatter *quote.Formatter, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		store:     store,
		formatter: formatter,
		log:       logger.With("component", "dialogue"),
	}
}

// Handle processes a turn and returns the text to send back.
func (e *Engine) Handle(ctx context.Context, turn Turn) Reply {
	var reply Reply
	var phase Phase
	e.store.With(turn.UserID, func(st *State) {
		if len(turn.Images) > 0 {
			reply = e.handleImages(st, turn)
		} else {
			reply = e.handleText(st, turn.Text)
		}
		phase = st.Phase
	})
	e.log.DebugContext(ctx, "Dialogue turn handled",
		"user_id", turn.UserID, "outcome", reply.Outcome.String(), "phase", phase.String(), "images", len(turn.Images))
	return reply
}

// StartOver resets the user's conversation and asks for a vehicle.
func (e *Engine) StartOver(userID int64) Reply {
	e.store.Reset(userID)
	return Reply{Text: msgNewCalculation, Outcome: OutcomeReset}
}

func (e *Engine) handleText(st *State, text string) Reply {
	text = strings.TrimSpace(text)

	switch detectPoliteness(text) {
	case intentThanks:
		st.Reset()
		return Reply{Text: msgThanks, Outcome: OutcomeReset}
	case intentOK:
		if st.WaitingFor != FieldNone {
			return Reply{Text: msgWaitingForData, Outcome: OutcomeAcknowledged}
		}
		return Reply{Text: msgWhatToCalculate, Outcome: OutcomeAcknowledged}
	case intentYes:
		return Reply{Text: msgContinue, Outcome: OutcomeAcknowledged}
	case intentNo:
		return Reply{Text: msgWhatIsWrong, Outcome: OutcomeAcknowledged}
	}

	if isNewCalculation(text) {
		st.Reset()
		return Reply{Text: msgNewCalculation, Outcome: OutcomeReset}
	}

	wasIdle := st.Phase == PhaseIdle
	st.Record.Merge(vehicle.Extract(text))

	if st.Record.Priceable() {
		return e.quote(st, "")
	}
	if st.Record.IsEmpty() {
		return Reply{Text: msgNotUnderstood, Outcome: OutcomeNotUnderstood}
	}

	st.Phase = PhaseCollecting
	st.WaitingFor = FieldEngineVolume

	if wasIdle {
		if ack := recognized(st.Record); ack != "" {
			return Reply{Text: ack + "\n\n" + msgAskVolume, Outcome: OutcomeNeedVolume}
		}
		return Reply{Text: msgAskVolume, Outcome: OutcomeNeedVolume}
	}
	ack := msgUnderstood
	if name := st.Record.Name(); name != "" {
		ack += ", " + name
	}
	return Reply{Text: ack + ".\n\n" + msgAskVolume, Outcome: OutcomeNeedVolume}
}

func (e *Engine) handleImages(st *State, turn Turn) Reply {
	caption := vehicle.Extract(turn.Text)

	best, err := BestOf(turn.Images)
	if err != nil {
		if !caption.IsEmpty() {
			// The photos were useless but the caption was not.
			reply := e.handleText(st, turn.Text)
			reply.Text = failureNotice(err) + "\n\n" + reply.Text
			return reply
		}
		var recErr *vision.RecognitionError
		if errors.As(err, &recErr) {
			return Reply{Text: fmt.Sprintf(msgPhotoFailed, recErr.Reason), Outcome: OutcomeNotRecognized}
		}
		return Reply{Text: msgVisionOff, Outcome: OutcomeVisionUnavailable}
	}

	st.Record.Merge(best.Record)
	st.Record.Merge(caption)
	if st.Record.IsEmpty() {
		return Reply{Text: fmt.Sprintf(msgPhotoFailed, "Не удалось извлечь данные о транспортном средстве."), Outcome: OutcomeNotRecognized}
	}

	ack := recognized(st.Record)
	if st.Record.Priceable() {
		return e.quote(st, ack)
	}

	st.Phase = PhaseCollecting
	st.WaitingFor = FieldEngineVolume
	if ack == "" {
		return Reply{Text: msgAskVolume, Outcome: OutcomeNeedVolume}
	}
	return Reply{Text: ack + "\n\n" + msgAskVolume, Outcome: OutcomeNeedVolume}
}

// quote prices the record and resets the state whatever the result.
func (e *Engine) quote(st *State, prefix string) Reply {
	record := st.Record
	st.Reset()

	q, err := e.formatter.Price(record)
	if err != nil {
		e.log.Warn("Could not price vehicle", "engine_volume_cc", record.EngineVolumeCC, "error", err)
		return Reply{Text: msgPricingFailed, Outcome: OutcomePricingFailed}
	}
	text := q.Text()
	if prefix != "" {
		text = prefix + "\n\n" + text
	}
	return Reply{Text: text, Outcome: OutcomeQuoted, Quote: &q}
}

// recognized renders the acknowledgement line for what is known so far.
func recognized(r vehicle.Record) string {
	if desc := r.Describe(); desc != "" {
		return fmt.Sprintf(msgRecognizedData, desc)
	}
	if r.EngineVolumeCC != 0 {
		return fmt.Sprintf(msgRecognizedCC, r.EngineVolumeCC)
	}
	return ""
}

func failureNotice(err error) string {
	var recErr *vision.RecognitionError
	if errors.As(err, &recErr) {
		return "😔 " + recErr.Reason
	}
	return "📷 Распознавание фото сейчас недоступно."
}
