package clock

import (
	"fmt"

	"github.com/golazoapp/golazo/internal/match"
)

// Projection is the view of the running clock rendered on each tick. Base
// time freezes at the regulation length of the half; anything beyond is
// reported separately as extra time.
type Projection struct {
	FormattedTime string `json:"formatted_time"`
	ExtraMinutes  int    `json:"extra_minutes"`
	IsInExtraTime bool   `json:"is_in_extra_time"`
	PhaseLabel    string `json:"phase_label"`
}

// Project converts elapsed minutes into the display view. It is a pure
// synchronous read; the periodic tick that calls it lives in Runner.
func Project(elapsedMinutes float64, minutesPerHalf int, phaseLabel string) Projection {
	elapsedSeconds := int(elapsedMinutes * 60)
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	allowedSeconds := minutesPerHalf * 60

	if elapsedSeconds >= allowedSeconds {
		return Projection{
			FormattedTime: formatSeconds(allowedSeconds),
			ExtraMinutes:  (elapsedSeconds - allowedSeconds) / 60,
			IsInExtraTime: elapsedSeconds > allowedSeconds,
			PhaseLabel:    phaseLabel,
		}
	}
	return Projection{
		FormattedTime: formatSeconds(elapsedSeconds),
		PhaseLabel:    phaseLabel,
	}
}

// Project renders the clock for the phase the store's status mirror is in.
func (s *Store) Project() Projection {
	state := s.Snapshot()
	status := match.Status(state.Status)
	half := halfForStatus(status)
	return Project(s.ElapsedMinutes(half), state.MinutesPerHalf, phaseLabel(status))
}

func halfForStatus(status match.Status) match.Half {
	switch status {
	case match.StatusSecondHalf, match.StatusTerminated, match.StatusFinished:
		return match.HalfSecond
	}
	return match.HalfFirst
}

func phaseLabel(status match.Status) string {
	switch status {
	case match.StatusScheduled:
		return "Kick-off pending"
	case match.StatusFirstHalf:
		return "First half"
	case match.StatusHalfTime:
		return "Half-time"
	case match.StatusSecondHalf:
		return "Second half"
	case match.StatusTerminated, match.StatusFinished:
		return "Full-time"
	case match.StatusSuspended:
		return "Suspended"
	case match.StatusPostponed:
		return "Postponed"
	}
	return "Unknown"
}

func formatSeconds(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
