package league

import (
	"context"
	"fmt"
)

// ListIncidents fetches the authoritative incident ledger for a match, in
// the server's order.
func (c *Client) ListIncidents(ctx context.Context, matchID string) ([]Incident, error) {
	var out struct {
		Incidents []Incident `json:"incidents"`
	}
	if err := c.get(ctx, fmt.Sprintf(incidentsEndpoint, matchID), &out); err != nil {
		return nil, fmt.Errorf("list incidents %s: %w", matchID, err)
	}
	return out.Incidents, nil
}

// CreateGoal records a goal; the response carries the server-assigned id and
// the linked assist, if one was requested.
func (c *Client) CreateGoal(ctx context.Context, matchID string, req GoalRequest) (*Incident, error) {
	var out Incident
	if err := c.post(ctx, fmt.Sprintf(goalsEndpoint, matchID), req, &out); err != nil {
		return nil, fmt.Errorf("create goal %s: %w", matchID, err)
	}
	return &out, nil
}

// UpdateGoal edits an existing goal.
func (c *Client) UpdateGoal(ctx context.Context, matchID, goalID string, req GoalRequest) (*Incident, error) {
	var out Incident
	if err := c.put(ctx, fmt.Sprintf(goalEndpoint, matchID, goalID), req, &out); err != nil {
		return nil, fmt.Errorf("update goal %s: %w", goalID, err)
	}
	return &out, nil
}

// DeleteGoal removes a goal and any linked assist.
func (c *Client) DeleteGoal(ctx context.Context, matchID, goalID string) error {
	if err := c.delete(ctx, fmt.Sprintf(goalEndpoint, matchID, goalID)); err != nil {
		return fmt.Errorf("delete goal %s: %w", goalID, err)
	}
	return nil
}

// CreateCard records a disciplinary card.
func (c *Client) CreateCard(ctx context.Context, matchID string, req CardRequest) (*Incident, error) {
	var out Incident
	if err := c.post(ctx, fmt.Sprintf(cardsEndpoint, matchID), req, &out); err != nil {
		return nil, fmt.Errorf("create card %s: %w", matchID, err)
	}
	return &out, nil
}

// UpdateCard edits an existing card.
func (c *Client) UpdateCard(ctx context.Context, matchID, cardID string, req CardRequest) (*Incident, error) {
	var out Incident
	if err := c.put(ctx, fmt.Sprintf(cardEndpoint, matchID, cardID), req, &out); err != nil {
		return nil, fmt.Errorf("update card %s: %w", cardID, err)
	}
	return &out, nil
}

// DeleteCard removes a card.
func (c *Client) DeleteCard(ctx context.Context, matchID, cardID string) error {
	if err := c.delete(ctx, fmt.Sprintf(cardEndpoint, matchID, cardID)); err != nil {
		return fmt.Errorf("delete card %s: %w", cardID, err)
	}
	return nil
}

// CreateSubstitution records a player swap.
func (c *Client) CreateSubstitution(ctx context.Context, matchID string, req SubstitutionRequest) (*Incident, error) {
	var out Incident
	if err := c.post(ctx, fmt.Sprintf(substitutionsEndpoint, matchID), req, &out); err != nil {
		return nil, fmt.Errorf("create substitution %s: %w", matchID, err)
	}
	return &out, nil
}

// DeleteSubstitution removes a substitution.
func (c *Client) DeleteSubstitution(ctx context.Context, matchID, substitutionID string) error {
	if err := c.delete(ctx, fmt.Sprintf(substitutionEndpoint, matchID, substitutionID)); err != nil {
		return fmt.Errorf("delete substitution %s: %w", substitutionID, err)
	}
	return nil
}
