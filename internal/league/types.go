package league

import (
	"fmt"
	"time"

	"github.com/golazoapp/golazo/internal/incident"
	"github.com/golazoapp/golazo/internal/match"
)

// Team identifies one side of a match.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Match is the league API's match entity. StatusCode uses the wire codes
// (P, C1, E, C2, T, F, S, A).
type Match struct {
	ID                      string    `json:"id"`
	StatusCode              string    `json:"status"`
	HomeTeam                Team      `json:"home_team"`
	AwayTeam                Team      `json:"away_team"`
	KickoffAt               time.Time `json:"kickoff_at"`
	MinutesPerHalf          int       `json:"minutes_per_half"`
	MinutesHalftime         int       `json:"minutes_halftime"`
	RequiresShootoutDecider bool      `json:"requires_shootout_decider"`
	PenaltiesHome           *int      `json:"penalties_home,omitempty"`
	PenaltiesAway           *int      `json:"penalties_away,omitempty"`
}

// Status maps the wire code to the domain status.
func (m Match) Status() match.Status {
	return match.StatusFromCode(m.StatusCode)
}

// Incident is the league API's incident record, discriminated by Kind.
type Incident struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	TeamID   string `json:"team_id"`
	PlayerID string `json:"player_id,omitempty"`
	Minute   int    `json:"minute"`

	// Goal fields.
	IsPenalty bool   `json:"is_penalty,omitempty"`
	IsOwnGoal bool   `json:"is_own_goal,omitempty"`
	AssistID  string `json:"assist_id,omitempty"`

	// Assist fields.
	GoalID string `json:"goal_id,omitempty"`

	// Card fields.
	CardColor string `json:"card_color,omitempty"`

	// Substitution fields.
	PlayerOutID string `json:"player_out_id,omitempty"`
	PlayerInID  string `json:"player_in_id,omitempty"`
}

// ToDomain converts the wire record to its typed incident variant.
func (d Incident) ToDomain() (incident.Incident, error) {
	meta := incident.Meta{
		ID:       d.ID,
		TeamID:   d.TeamID,
		PlayerID: d.PlayerID,
		Minute:   d.Minute,
	}
	switch incident.Kind(d.Kind) {
	case incident.KindGoal:
		return incident.Goal{
			Meta:      meta,
			IsPenalty: d.IsPenalty,
			IsOwnGoal: d.IsOwnGoal,
			AssistID:  d.AssistID,
		}, nil
	case incident.KindAssist:
		return incident.Assist{Meta: meta, GoalID: d.GoalID}, nil
	case incident.KindCard:
		return incident.Card{Meta: meta, Color: incident.CardColor(d.CardColor)}, nil
	case incident.KindSubstitution:
		return incident.Substitution{
			Meta:        meta,
			PlayerOutID: d.PlayerOutID,
			PlayerInID:  d.PlayerInID,
		}, nil
	}
	return nil, fmt.Errorf("unknown incident kind %q", d.Kind)
}

// ToDomainIncidents converts a fetched ledger, preserving order.
func ToDomainIncidents(records []Incident) ([]incident.Incident, error) {
	out := make([]incident.Incident, 0, len(records))
	for _, record := range records {
		converted, err := record.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

// RosterPlayer is a roster entry used read-only to resolve player names and
// jersey numbers on the console.
type RosterPlayer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Jersey string `json:"jersey"`
}

// GoalRequest creates or edits a goal. AssistPlayerID, when set, has the
// server record the linked assist incident alongside the goal.
type GoalRequest struct {
	TeamID         string `json:"team_id"`
	PlayerID       string `json:"player_id"`
	Minute         int    `json:"minute"`
	IsPenalty      bool   `json:"is_penalty"`
	IsOwnGoal      bool   `json:"is_own_goal"`
	AssistPlayerID string `json:"assist_player_id,omitempty"`
}

// CardRequest creates or edits a card.
type CardRequest struct {
	TeamID   string `json:"team_id"`
	PlayerID string `json:"player_id"`
	Minute   int    `json:"minute"`
	Color    string `json:"color"`
}

// SubstitutionRequest creates a substitution.
type SubstitutionRequest struct {
	TeamID      string `json:"team_id"`
	Minute      int    `json:"minute"`
	PlayerOutID string `json:"player_out_id"`
	PlayerInID  string `json:"player_in_id"`
}

// SuspendRequest suspends a match with an optional reason.
type SuspendRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ShootoutRequest registers a penalty-shootout result. The counts must
// differ; the console validates that before calling.
type ShootoutRequest struct {
	HomeGoals int `json:"home_goals"`
	AwayGoals int `json:"away_goals"`
}
