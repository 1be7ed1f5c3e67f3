// Package dialogue runs the per-user conversation that collects vehicle data
// until a quote can be produced.
package dialogue

import "github.com/edgard/civilkabot/internal/vehicle"

// Phase is the coarse conversation state.
type Phase int

const (
	// PhaseIdle means nothing has been collected in the current session.
	PhaseIdle Phase = iota
	// PhaseCollecting means some data is known but the quote is still pending.
	PhaseCollecting
)

func (p Phase) String() string {
	if p == PhaseCollecting {
		return "collecting"
	}
	return "idle"
}

// Field names a record field the bot can ask for.
type Field string

const (
	FieldNone         Field = ""
	FieldEngineVolume Field = "engine_volume_cc"
)

// State is one user's conversation.
type State struct {
	Record     vehicle.Record
	WaitingFor Field
	Phase      Phase
}

// Reset clears the state back to idle.
func (s *State) Reset() {
	*s = State{}
}
