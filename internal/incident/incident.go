// Package incident models the discrete events recorded during a live match
// and the aggregates derived from them. The ledger is the single source of
// truth: score and disciplinary state are always recomputed from its
// contents, never stored alongside them.
package incident

import (
	"strings"

	"github.com/google/uuid"
)

// Kind discriminates incident variants.
type Kind string

const (
	KindGoal         Kind = "goal"
	KindAssist       Kind = "assist"
	KindCard         Kind = "card"
	KindSubstitution Kind = "substitution"
)

// CardColor identifies the sanction a card incident carries.
type CardColor string

const (
	CardYellow CardColor = "yellow"
	CardRed    CardColor = "red"
	// CardDoubleYellow is a server-recorded second-yellow ejection. A pair of
	// plain yellow cards for one player implies the same sanction without a
	// stored double-yellow incident; see PairSecondYellows.
	CardDoubleYellow CardColor = "double_yellow"
)

// Meta carries the fields shared by every incident kind. TeamID and PlayerID
// may be empty for substitutions that have not been resolved to a roster yet.
type Meta struct {
	ID       string
	TeamID   string
	PlayerID string
	Minute   int
}

// Common returns the shared fields of the incident.
func (m Meta) Common() Meta { return m }

func (Meta) isIncident() {}

// Incident is the closed set of recordable match events. All variants are
// value types, so copying a slice of Incident values deep-copies the ledger.
type Incident interface {
	Kind() Kind
	Common() Meta
	isIncident()
}

// Goal records a goal. An own goal credits the opposing team in the derived
// score. AssistID links the assist incident recorded with the goal, if any.
type Goal struct {
	Meta
	IsPenalty bool
	IsOwnGoal bool
	AssistID  string
}

func (Goal) Kind() Kind { return KindGoal }

// Assist records the pass leading to a goal. GoalID references the goal it
// belongs to; grouping folds the assist into the goal's display row.
type Assist struct {
	Meta
	GoalID string
}

func (Assist) Kind() Kind { return KindAssist }

// Card records a disciplinary sanction.
type Card struct {
	Meta
	Color CardColor
}

func (Card) Kind() Kind { return KindCard }

// Substitution records a player swap. Meta.PlayerID is unused; the players
// involved are PlayerOutID and PlayerInID.
type Substitution struct {
	Meta
	PlayerOutID string
	PlayerInID  string
}

func (Substitution) Kind() Kind { return KindSubstitution }

const tempIDPrefix = "tmp-"

// TempID returns a client-side identifier for an optimistic incident that has
// not been confirmed by the server yet.
func TempID() string {
	return tempIDPrefix + uuid.NewString()
}

// IsTempID reports whether id marks an unconfirmed optimistic incident.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, tempIDPrefix)
}
