package scorer

import (
	"context"
	"time"

	"github.com/golazoapp/golazo/internal/clock"
	"github.com/golazoapp/golazo/internal/incident"
	"github.com/golazoapp/golazo/internal/league"
)

// MatchView is the scoreboard: the mirrored status, the derived score and the
// projected clock. The score is always recomputed from the visible ledger.
type MatchView struct {
	MatchID                 string           `json:"match_id"`
	Status                  string           `json:"status"`
	HomeTeam                league.Team      `json:"home_team"`
	AwayTeam                league.Team      `json:"away_team"`
	Score                   incident.Score   `json:"score"`
	PenaltiesHome           *int             `json:"penalties_home,omitempty"`
	PenaltiesAway           *int             `json:"penalties_away,omitempty"`
	RequiresShootoutDecider bool             `json:"requires_shootout_decider"`
	KickoffAt               time.Time        `json:"kickoff_at"`
	Clock                   clock.Projection `json:"clock"`
}

// EventView is one incident rendered for the console, with player ids
// resolved to roster names where known. Pending marks optimistic entries the
// server has not confirmed yet.
type EventView struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	TeamID      string `json:"team_id"`
	Minute      int    `json:"minute"`
	PlayerID    string `json:"player_id,omitempty"`
	PlayerName  string `json:"player_name,omitempty"`
	IsPenalty   bool   `json:"is_penalty,omitempty"`
	IsOwnGoal   bool   `json:"is_own_goal,omitempty"`
	CardColor   string `json:"card_color,omitempty"`
	PlayerOut   string `json:"player_out,omitempty"`
	PlayerIn    string `json:"player_in,omitempty"`
	PlayerOutID string `json:"player_out_id,omitempty"`
	PlayerInID  string `json:"player_in_id,omitempty"`
	Pending     bool   `json:"pending,omitempty"`
}

// TimelineRow is one display row: a goal with its assist folded in, a second
// yellow with the first folded in, or a standalone incident.
type TimelineRow struct {
	Primary EventView   `json:"primary"`
	Linked  []EventView `json:"linked,omitempty"`
	SendOff bool        `json:"send_off,omitempty"`
}

// Scoreboard returns the match view for a mounted session.
func (s *Service) Scoreboard(matchID string) (MatchView, error) {
	sess, err := s.session(matchID)
	if err != nil {
		return MatchView{}, err
	}
	return s.viewOf(sess), nil
}

// Clock returns the projected clock for a mounted session.
func (s *Service) Clock(matchID string) (clock.Projection, error) {
	sess, err := s.session(matchID)
	if err != nil {
		return clock.Projection{}, err
	}
	return sess.store.Project(), nil
}

// Timeline returns the grouped incident rows for a mounted session, ordered
// by minute.
func (s *Service) Timeline(matchID string) ([]TimelineRow, error) {
	sess, err := s.session(matchID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	entries := sess.ledger.Incidents()
	rosters := sess.rosters
	sess.mu.Unlock()

	groups := incident.GroupForDisplay(entries)
	rows := make([]TimelineRow, 0, len(groups))
	for _, group := range groups {
		row := TimelineRow{
			Primary: eventView(group.Primary, rosters),
			SendOff: group.SendOff,
		}
		for _, linked := range group.Linked {
			row.Linked = append(row.Linked, eventView(linked, rosters))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Observations returns the scorer's free-text notes for a match. They are
// local to this console and never sent to the league.
func (s *Service) Observations(ctx context.Context, matchID string) (string, error) {
	if _, err := s.session(matchID); err != nil {
		return "", err
	}
	return s.store.GetObservations(ctx, matchID)
}

// SaveObservations stores the scorer's notes for a match.
func (s *Service) SaveObservations(ctx context.Context, matchID, body string) error {
	if _, err := s.session(matchID); err != nil {
		return err
	}
	return s.store.SaveObservations(ctx, matchID, body, s.clock.Now().UTC())
}

func (s *Service) viewOf(sess *session) MatchView {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.viewOfLocked(sess)
}

func (s *Service) viewOfLocked(sess *session) MatchView {
	remote := sess.remote
	return MatchView{
		MatchID:                 sess.matchID,
		Status:                  string(sess.machine.Status()),
		HomeTeam:                remote.HomeTeam,
		AwayTeam:                remote.AwayTeam,
		Score:                   incident.DeriveScore(sess.ledger.Incidents(), remote.HomeTeam.ID, remote.AwayTeam.ID),
		PenaltiesHome:           remote.PenaltiesHome,
		PenaltiesAway:           remote.PenaltiesAway,
		RequiresShootoutDecider: remote.RequiresShootoutDecider,
		KickoffAt:               remote.KickoffAt,
		Clock:                   sess.store.Project(),
	}
}

func eventView(in incident.Incident, rosters map[string]league.RosterPlayer) EventView {
	meta := in.Common()
	view := EventView{
		ID:         meta.ID,
		Kind:       string(in.Kind()),
		TeamID:     meta.TeamID,
		Minute:     meta.Minute,
		PlayerID:   meta.PlayerID,
		PlayerName: playerName(rosters, meta.PlayerID),
		Pending:    incident.IsTempID(meta.ID),
	}
	switch v := in.(type) {
	case incident.Goal:
		view.IsPenalty = v.IsPenalty
		view.IsOwnGoal = v.IsOwnGoal
	case incident.Card:
		view.CardColor = string(v.Color)
	case incident.Substitution:
		view.PlayerOutID = v.PlayerOutID
		view.PlayerInID = v.PlayerInID
		view.PlayerOut = playerName(rosters, v.PlayerOutID)
		view.PlayerIn = playerName(rosters, v.PlayerInID)
	}
	return view
}

func playerName(rosters map[string]league.RosterPlayer, playerID string) string {
	if player, ok := rosters[playerID]; ok {
		return player.Name
	}
	return ""
}
