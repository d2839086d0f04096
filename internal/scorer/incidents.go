package scorer

import (
	"context"

	"github.com/golazoapp/golazo/internal/incident"
	"github.com/golazoapp/golazo/internal/league"
)

// GoalInput is the console's goal form. AssistPlayerID, when set, records a
// linked assist alongside the goal.
type GoalInput struct {
	TeamID         string `json:"team_id"`
	PlayerID       string `json:"player_id"`
	Minute         int    `json:"minute"`
	IsPenalty      bool   `json:"is_penalty"`
	IsOwnGoal      bool   `json:"is_own_goal"`
	AssistPlayerID string `json:"assist_player_id,omitempty"`
}

// CardInput is the console's card form.
type CardInput struct {
	TeamID   string `json:"team_id"`
	PlayerID string `json:"player_id"`
	Minute   int    `json:"minute"`
	Color    string `json:"color"`
}

// SubstitutionInput is the console's substitution form.
type SubstitutionInput struct {
	TeamID      string `json:"team_id"`
	Minute      int    `json:"minute"`
	PlayerOutID string `json:"player_out_id"`
	PlayerInID  string `json:"player_in_id"`
}

// RecordGoal records a goal optimistically: the ledger shows it (and its
// assist, if any) under temporary ids immediately, and the server's shape
// replaces the prediction once the create is confirmed.
func (s *Service) RecordGoal(ctx context.Context, matchID string, in GoalInput) error {
	sess, err := s.editableSession(matchID)
	if err != nil {
		return err
	}
	if err := sess.validateGoal(in); err != nil {
		return err
	}

	return s.engine.Do(ctx, matchID,
		func(ctx context.Context) error {
			goal := incident.Goal{
				Meta: incident.Meta{
					ID:       incident.TempID(),
					TeamID:   in.TeamID,
					PlayerID: in.PlayerID,
					Minute:   in.Minute,
				},
				IsPenalty: in.IsPenalty,
				IsOwnGoal: in.IsOwnGoal,
			}
			sess.mu.Lock()
			defer sess.mu.Unlock()
			if in.AssistPlayerID != "" {
				assist := incident.Assist{
					Meta: incident.Meta{
						ID:       incident.TempID(),
						TeamID:   in.TeamID,
						PlayerID: in.AssistPlayerID,
						Minute:   in.Minute,
					},
					GoalID: goal.ID,
				}
				goal.AssistID = assist.ID
				if err := sess.ledger.Insert(assist); err != nil {
					return err
				}
			}
			return sess.ledger.Insert(goal)
		},
		func(ctx context.Context) error {
			_, err := s.api.CreateGoal(ctx, matchID, goalRequest(in))
			return err
		},
	)
}

// UpdateGoal edits a confirmed goal.
func (s *Service) UpdateGoal(ctx context.Context, matchID, goalID string, in GoalInput) error {
	sess, err := s.editableSession(matchID)
	if err != nil {
		return err
	}
	if err := confirmedID("goal", goalID); err != nil {
		return err
	}
	if err := sess.validateGoal(in); err != nil {
		return err
	}

	return s.engine.Do(ctx, matchID,
		func(ctx context.Context) error {
			sess.mu.Lock()
			defer sess.mu.Unlock()
			existing, ok := sess.ledger.Get(goalID)
			if !ok {
				return ValidationError{Field: "goal", Reason: "not in the ledger"}
			}
			goal, ok := existing.(incident.Goal)
			if !ok {
				return ValidationError{Field: "goal", Reason: "incident is not a goal"}
			}
			goal.TeamID = in.TeamID
			goal.PlayerID = in.PlayerID
			goal.Minute = in.Minute
			goal.IsPenalty = in.IsPenalty
			goal.IsOwnGoal = in.IsOwnGoal
			return sess.ledger.Replace(goalID, goal)
		},
		func(ctx context.Context) error {
			_, err := s.api.UpdateGoal(ctx, matchID, goalID, goalRequest(in))
			return err
		},
	)
}

// DeleteGoal removes a goal and its linked assist.
func (s *Service) DeleteGoal(ctx context.Context, matchID, goalID string) error {
	sess, err := s.editableSession(matchID)
	if err != nil {
		return err
	}
	if err := confirmedID("goal", goalID); err != nil {
		return err
	}

	return s.engine.Do(ctx, matchID,
		func(ctx context.Context) error {
			sess.mu.Lock()
			defer sess.mu.Unlock()
			existing, ok := sess.ledger.Get(goalID)
			if ok {
				if goal, isGoal := existing.(incident.Goal); isGoal && goal.AssistID != "" {
					// The server deletes the assist with the goal; mirror that.
					_ = sess.ledger.Remove(goal.AssistID)
				}
			}
			return sess.ledger.Remove(goalID)
		},
		func(ctx context.Context) error {
			return s.api.DeleteGoal(ctx, matchID, goalID)
		},
	)
}

// RecordCard records a disciplinary card optimistically.
func (s *Service) RecordCard(ctx context.Context, matchID string, in CardInput) error {
	sess, err := s.editableSession(matchID)
	if err != nil {
		return err
	}
	if err := sess.validateCard(in); err != nil {
		return err
	}

	return s.engine.Do(ctx, matchID,
		func(ctx context.Context) error {
			card := incident.Card{
				Meta: incident.Meta{
					ID:       incident.TempID(),
					TeamID:   in.TeamID,
					PlayerID: in.PlayerID,
					Minute:   in.Minute,
				},
				Color: incident.CardColor(in.Color),
			}
			sess.mu.Lock()
			defer sess.mu.Unlock()
			return sess.ledger.Insert(card)
		},
		func(ctx context.Context) error {
			_, err := s.api.CreateCard(ctx, matchID, cardRequest(in))
			return err
		},
	)
}

// UpdateCard edits a confirmed card.
func (s *Service) UpdateCard(ctx context.Context, matchID, cardID string, in CardInput) error {
	sess, err := s.editableSession(matchID)
	if err != nil {
		return err
	}
	if err := confirmedID("card", cardID); err != nil {
		return err
	}
	if err := sess.validateCard(in); err != nil {
		return err
	}

	return s.engine.Do(ctx, matchID,
		func(ctx context.Context) error {
			sess.mu.Lock()
			defer sess.mu.Unlock()
			existing, ok := sess.ledger.Get(cardID)
			if !ok {
				return ValidationError{Field: "card", Reason: "not in the ledger"}
			}
			card, ok := existing.(incident.Card)
			if !ok {
				return ValidationError{Field: "card", Reason: "incident is not a card"}
			}
			card.TeamID = in.TeamID
			card.PlayerID = in.PlayerID
			card.Minute = in.Minute
			card.Color = incident.CardColor(in.Color)
			return sess.ledger.Replace(cardID, card)
		},
		func(ctx context.Context) error {
			_, err := s.api.UpdateCard(ctx, matchID, cardID, cardRequest(in))
			return err
		},
	)
}

// DeleteCard removes a card.
func (s *Service) DeleteCard(ctx context.Context, matchID, cardID string) error {
	sess, err := s.editableSession(matchID)
	if err != nil {
		return err
	}
	if err := confirmedID("card", cardID); err != nil {
		return err
	}

	return s.engine.Do(ctx, matchID,
		func(ctx context.Context) error {
			sess.mu.Lock()
			defer sess.mu.Unlock()
			return sess.ledger.Remove(cardID)
		},
		func(ctx context.Context) error {
			return s.api.DeleteCard(ctx, matchID, cardID)
		},
	)
}

// RecordSubstitution records a player swap optimistically.
func (s *Service) RecordSubstitution(ctx context.Context, matchID string, in SubstitutionInput) error {
	sess, err := s.editableSession(matchID)
	if err != nil {
		return err
	}
	if err := sess.validateSubstitution(in); err != nil {
		return err
	}

	return s.engine.Do(ctx, matchID,
		func(ctx context.Context) error {
			sub := incident.Substitution{
				Meta: incident.Meta{
					ID:     incident.TempID(),
					TeamID: in.TeamID,
					Minute: in.Minute,
				},
				PlayerOutID: in.PlayerOutID,
				PlayerInID:  in.PlayerInID,
			}
			sess.mu.Lock()
			defer sess.mu.Unlock()
			return sess.ledger.Insert(sub)
		},
		func(ctx context.Context) error {
			_, err := s.api.CreateSubstitution(ctx, matchID, league.SubstitutionRequest{
				TeamID:      in.TeamID,
				Minute:      in.Minute,
				PlayerOutID: in.PlayerOutID,
				PlayerInID:  in.PlayerInID,
			})
			return err
		},
	)
}

// DeleteSubstitution removes a substitution.
func (s *Service) DeleteSubstitution(ctx context.Context, matchID, substitutionID string) error {
	sess, err := s.editableSession(matchID)
	if err != nil {
		return err
	}
	if err := confirmedID("substitution", substitutionID); err != nil {
		return err
	}

	return s.engine.Do(ctx, matchID,
		func(ctx context.Context) error {
			sess.mu.Lock()
			defer sess.mu.Unlock()
			return sess.ledger.Remove(substitutionID)
		},
		func(ctx context.Context) error {
			return s.api.DeleteSubstitution(ctx, matchID, substitutionID)
		},
	)
}

// editableSession returns the mounted session if its status permits incident
// edits, so illegal edits never reach the network.
func (s *Service) editableSession(matchID string) (*session, error) {
	sess, err := s.session(matchID)
	if err != nil {
		return nil, err
	}
	if status := sess.status(); !status.AllowsIncidentEdits() {
		return nil, stateViolation("incidents are locked in status %s", status)
	}
	return sess, nil
}

// confirmedID rejects edits targeting an optimistic entry the server has not
// confirmed yet; there is nothing remote to address the call to.
func confirmedID(field, id string) error {
	if incident.IsTempID(id) {
		return ValidationError{Field: field, Reason: "incident is awaiting server confirmation"}
	}
	return nil
}

func (sess *session) validateGoal(in GoalInput) error {
	if err := sess.validateTeam(in.TeamID); err != nil {
		return err
	}
	if in.PlayerID == "" {
		return ValidationError{Field: "player_id", Reason: "required"}
	}
	if in.Minute < 0 {
		return ValidationError{Field: "minute", Reason: "must be non-negative"}
	}
	if in.AssistPlayerID == in.PlayerID && in.AssistPlayerID != "" {
		return ValidationError{Field: "assist_player_id", Reason: "scorer cannot assist their own goal"}
	}
	return nil
}

func (sess *session) validateCard(in CardInput) error {
	if err := sess.validateTeam(in.TeamID); err != nil {
		return err
	}
	if in.PlayerID == "" {
		return ValidationError{Field: "player_id", Reason: "required"}
	}
	if in.Minute < 0 {
		return ValidationError{Field: "minute", Reason: "must be non-negative"}
	}
	switch incident.CardColor(in.Color) {
	case incident.CardYellow, incident.CardRed, incident.CardDoubleYellow:
		return nil
	}
	return ValidationError{Field: "color", Reason: "unknown card color"}
}

func (sess *session) validateSubstitution(in SubstitutionInput) error {
	if err := sess.validateTeam(in.TeamID); err != nil {
		return err
	}
	if in.Minute < 0 {
		return ValidationError{Field: "minute", Reason: "must be non-negative"}
	}
	if in.PlayerOutID == "" || in.PlayerInID == "" {
		return ValidationError{Field: "players", Reason: "both players are required"}
	}
	if in.PlayerOutID == in.PlayerInID {
		return ValidationError{Field: "players", Reason: "a player cannot replace themselves"}
	}
	return nil
}

func (sess *session) validateTeam(teamID string) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if teamID == sess.remote.HomeTeam.ID || teamID == sess.remote.AwayTeam.ID {
		return nil
	}
	return ValidationError{Field: "team_id", Reason: "team is not playing this match"}
}

func goalRequest(in GoalInput) league.GoalRequest {
	return league.GoalRequest{
		TeamID:         in.TeamID,
		PlayerID:       in.PlayerID,
		Minute:         in.Minute,
		IsPenalty:      in.IsPenalty,
		IsOwnGoal:      in.IsOwnGoal,
		AssistPlayerID: in.AssistPlayerID,
	}
}

func cardRequest(in CardInput) league.CardRequest {
	return league.CardRequest{
		TeamID:   in.TeamID,
		PlayerID: in.PlayerID,
		Minute:   in.Minute,
		Color:    in.Color,
	}
}
