package dialogue

import (
	"errors"

	"github.com/edgard/civilkabot/internal/vision"
)

// BestOf combines per-image analyses into one result. The successful result
// with the highest confidence is the base (the earliest wins a tie) and its
// empty fields are filled from the other successes in order.
//
// When every analysis failed the returned error is the first recognition
// failure if there is one, so its reason can be shown to the user, and the
// first error otherwise.
func BestOf(analyses []vision.Analysis) (vision.Result, error) {
	best := -1
	for i, a := range analyses {
		if a.Err != nil {
			continue
		}
		if best < 0 || a.Result.Confidence > analyses[best].Result.Confidence {
			best = i
		}
	}
	if best < 0 {
		return vision.Result{}, firstFailure(analyses)
	}

	res := analyses[best].Result
	for i, a := range analyses {
		if i == best || a.Err != nil {
			continue
		}
		res.Record.FillMissing(a.Result.Record)
	}
	return res, nil
}

func firstFailure(analyses []vision.Analysis) error {
	var first error
	for _, a := range analyses {
		if a.Err == nil {
			continue
		}
		if errors.Is(a.Err, vision.ErrNotRecognized) {
			return a.Err
		}
		if first == nil {
			first = a.Err
		}
	}
	if first == nil {
		return vision.ErrUnavailable
	}
	return first
}
