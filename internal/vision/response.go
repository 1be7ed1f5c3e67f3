package vision

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/edgard/civilkabot/internal/vehicle"
)

// documentReply is the JSON object both providers are asked to return.
type documentReply struct {
	Brand          string  `json:"brand"`
	Model          string  `json:"model"`
	Year           int     `json:"year"`
	EngineVolumeCC int     `json:"engine_volume_cc"`
	FuelType       string  `json:"fuel_type"`
	Confidence     float64 `json:"confidence"`
	Error          string  `json:"error"`
}

// ParseResponse decodes a model reply into a Result. A non-empty "error"
// field, or a reply with neither brand nor engine volume, becomes a
// *RecognitionError. now bounds the accepted model year.
func ParseResponse(text string, now time.Time) (Result, error) {
	raw := stripCodeFence(text)
	if raw == "" {
		return Result{}, fmt.Errorf("empty model response")
	}

	var reply documentReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return Result{}, fmt.Errorf("invalid model response JSON: %w", err)
	}

	if reason := strings.TrimSpace(reply.Error); reason != "" {
		return Result{}, &RecognitionError{Reason: reason}
	}

	record := vehicle.Record{
		Brand:          reply.Brand,
		Model:          reply.Model,
		Year:           reply.Year,
		EngineVolumeCC: reply.EngineVolumeCC,
		FuelType:       vehicle.ParseFuelType(reply.FuelType),
	}.Normalize(now)

	if record.Brand == "" && record.EngineVolumeCC == 0 {
		return Result{}, &RecognitionError{Reason: "Не удалось извлечь данные о транспортном средстве"}
	}

	return Result{Record: record, Confidence: clampConfidence(reply.Confidence)}, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add despite
// being asked for bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func clampConfidence(c float64) int {
	switch {
	case c < 0:
		return 0
	case c > 100:
		return 100
	default:
		return int(c + 0.5)
	}
}
