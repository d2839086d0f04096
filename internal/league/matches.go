package league

import (
	"context"
	"fmt"
)

// GetMatch fetches the authoritative match entity.
func (c *Client) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	var out Match
	if err := c.get(ctx, fmt.Sprintf(matchEndpoint, matchID), &out); err != nil {
		return nil, fmt.Errorf("get match %s: %w", matchID, err)
	}
	return &out, nil
}

// StartMatch kicks off the first half. The returned entity carries the
// confirmed status the console mirrors.
func (c *Client) StartMatch(ctx context.Context, matchID string) (*Match, error) {
	var out Match
	if err := c.post(ctx, fmt.Sprintf(startMatchEndpoint, matchID), nil, &out); err != nil {
		return nil, fmt.Errorf("start match %s: %w", matchID, err)
	}
	return &out, nil
}

// EndFirstHalf moves the match into half-time.
func (c *Client) EndFirstHalf(ctx context.Context, matchID string) (*Match, error) {
	var out Match
	if err := c.post(ctx, fmt.Sprintf(endFirstHalfEndpoint, matchID), nil, &out); err != nil {
		return nil, fmt.Errorf("end first half %s: %w", matchID, err)
	}
	return &out, nil
}

// StartSecondHalf resumes play after the break.
func (c *Client) StartSecondHalf(ctx context.Context, matchID string) (*Match, error) {
	var out Match
	if err := c.post(ctx, fmt.Sprintf(startSecondHalfEndpoint, matchID), nil, &out); err != nil {
		return nil, fmt.Errorf("start second half %s: %w", matchID, err)
	}
	return &out, nil
}

// FinalizeMatch ends regulation play.
func (c *Client) FinalizeMatch(ctx context.Context, matchID string) (*Match, error) {
	var out Match
	if err := c.post(ctx, fmt.Sprintf(finalizeMatchEndpoint, matchID), nil, &out); err != nil {
		return nil, fmt.Errorf("finalize match %s: %w", matchID, err)
	}
	return &out, nil
}

// SuspendMatch suspends the match, optionally recording why.
func (c *Client) SuspendMatch(ctx context.Context, matchID, reason string) (*Match, error) {
	var out Match
	if err := c.post(ctx, fmt.Sprintf(suspendMatchEndpoint, matchID), SuspendRequest{Reason: reason}, &out); err != nil {
		return nil, fmt.Errorf("suspend match %s: %w", matchID, err)
	}
	return &out, nil
}

// RegisterShootout records the penalty-shootout result of a tied match.
func (c *Client) RegisterShootout(ctx context.Context, matchID string, req ShootoutRequest) (*Match, error) {
	var out Match
	if err := c.post(ctx, fmt.Sprintf(shootoutEndpoint, matchID), req, &out); err != nil {
		return nil, fmt.Errorf("register shootout %s: %w", matchID, err)
	}
	return &out, nil
}

// GetRoster fetches a team's roster, used read-only to resolve player names.
func (c *Client) GetRoster(ctx context.Context, teamID string) ([]RosterPlayer, error) {
	var out struct {
		Players []RosterPlayer `json:"players"`
	}
	if err := c.get(ctx, fmt.Sprintf(rosterEndpoint, teamID), &out); err != nil {
		return nil, fmt.Errorf("get roster %s: %w", teamID, err)
	}
	return out.Players, nil
}
