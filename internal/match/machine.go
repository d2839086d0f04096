package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrIllegalTransition is returned when a status change violates the
// transition table.
var ErrIllegalTransition = errors.New("illegal match status transition")

// Half identifies one of the two playing periods.
type Half int

const (
	HalfFirst  Half = 1
	HalfSecond Half = 2
)

// ClockControl is what the machine needs from the match clock. Implemented
// by the clock store; side effects fire as halves are entered and left.
type ClockControl interface {
	StartHalf(ctx context.Context, half Half) error
	PauseHalf(ctx context.Context, half Half) error
	SetStatus(ctx context.Context, status string) error
}

// legalTransitions lists the forward transitions of the match lifecycle.
// Terminated is only reachable once regulation play completes; a match cut
// short during the first half goes through Suspended instead, which together
// with Postponed is reachable from any pre-Finished state and handled
// separately in CanTransition.
var legalTransitions = map[Status][]Status{
	StatusScheduled:  {StatusFirstHalf},
	StatusFirstHalf:  {StatusHalfTime},
	StatusHalfTime:   {StatusSecondHalf},
	StatusSecondHalf: {StatusTerminated},
	StatusTerminated: {StatusFinished},
}

// Machine mirrors the authoritative match state. Transitions are applied
// only after the corresponding remote call has succeeded, so the mirror
// never runs ahead of the league's record.
type Machine struct {
	matchID string
	status  Status
	clock   ClockControl
}

// NewMachine builds a machine for one match starting from the given status.
func NewMachine(matchID string, initial Status, clock ClockControl) *Machine {
	if initial == "" {
		initial = StatusUnknown
	}
	return &Machine{matchID: matchID, status: initial, clock: clock}
}

// Status returns the current mirrored status.
func (m *Machine) Status() Status { return m.status }

// CanTransition reports whether moving from the current status to the given
// one is legal.
func (m *Machine) CanTransition(to Status) bool {
	from := m.status
	if from == to {
		return false
	}
	if from.Terminal() {
		return false
	}
	// Defensive: recover from an unrecognized status by accepting whatever
	// the server confirmed.
	if from == StatusUnknown || to == StatusUnknown {
		return true
	}
	if to == StatusSuspended || to == StatusPostponed {
		return from != StatusFinished
	}
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Apply moves the machine to the confirmed status and drives the clock:
// leaving a half pauses it, entering a half starts it, and the status mirror
// in the persisted snapshot is updated last.
func (m *Machine) Apply(ctx context.Context, to Status) error {
	from := m.status
	if !m.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	// from == to never reaches here; CanTransition rejects it.
	if from.IsRunningHalf() {
		if err := m.clock.PauseHalf(ctx, halfFor(from)); err != nil {
			return fmt.Errorf("pause %s: %w", from, err)
		}
	}
	if to.IsRunningHalf() {
		if err := m.clock.StartHalf(ctx, halfFor(to)); err != nil {
			return fmt.Errorf("start %s: %w", to, err)
		}
	}

	m.status = to
	if err := m.clock.SetStatus(ctx, string(to)); err != nil {
		return fmt.Errorf("persist status mirror: %w", err)
	}

	log.Ctx(ctx).Info().
		Str("match_id", m.matchID).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("Match status transition applied")
	return nil
}

func halfFor(s Status) Half {
	if s == StatusSecondHalf {
		return HalfSecond
	}
	return HalfFirst
}
