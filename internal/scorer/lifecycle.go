package scorer

import (
	"context"

	"github.com/golazoapp/golazo/internal/incident"
	"github.com/golazoapp/golazo/internal/league"
	"github.com/golazoapp/golazo/internal/match"
)

// StartMatch kicks off the first half.
func (s *Service) StartMatch(ctx context.Context, matchID string) (MatchView, error) {
	return s.transition(ctx, matchID, match.StatusFirstHalf, s.api.StartMatch)
}

// EndFirstHalf moves the match into half-time.
func (s *Service) EndFirstHalf(ctx context.Context, matchID string) (MatchView, error) {
	return s.transition(ctx, matchID, match.StatusHalfTime, s.api.EndFirstHalf)
}

// StartSecondHalf resumes play after the break.
func (s *Service) StartSecondHalf(ctx context.Context, matchID string) (MatchView, error) {
	return s.transition(ctx, matchID, match.StatusSecondHalf, s.api.StartSecondHalf)
}

// FinalizeMatch ends regulation play. The match lands in Terminated, where a
// shootout may still be registered before the record closes.
func (s *Service) FinalizeMatch(ctx context.Context, matchID string) (MatchView, error) {
	return s.transition(ctx, matchID, match.StatusTerminated, s.api.FinalizeMatch)
}

// SuspendMatch suspends the match, optionally recording why.
func (s *Service) SuspendMatch(ctx context.Context, matchID, reason string) (MatchView, error) {
	return s.transition(ctx, matchID, match.StatusSuspended, func(ctx context.Context, id string) (*league.Match, error) {
		return s.api.SuspendMatch(ctx, id, reason)
	})
}

// RegisterShootout records the penalty-shootout result of a tied, terminated
// match whose competition format requires a decider. All three conditions and
// the differing-counts rule are checked before any network call.
func (s *Service) RegisterShootout(ctx context.Context, matchID string, homeGoals, awayGoals int) (MatchView, error) {
	sess, err := s.session(matchID)
	if err != nil {
		return MatchView{}, err
	}

	sess.mu.Lock()
	status := sess.machine.Status()
	requiresDecider := sess.remote.RequiresShootoutDecider
	score := incident.DeriveScore(sess.ledger.Incidents(), sess.remote.HomeTeam.ID, sess.remote.AwayTeam.ID)
	sess.mu.Unlock()

	if !status.AllowsShootout() {
		return MatchView{}, stateViolation("shootout cannot be registered in status %s", status)
	}
	if !requiresDecider {
		return MatchView{}, stateViolation("competition format does not use a shootout decider")
	}
	if !score.Tied() {
		return MatchView{}, stateViolation("score %d-%d is not tied", score.Home, score.Away)
	}
	if homeGoals < 0 || awayGoals < 0 {
		return MatchView{}, ValidationError{Field: "shootout", Reason: "goal counts must be non-negative"}
	}
	if homeGoals == awayGoals {
		return MatchView{}, ValidationError{Field: "shootout", Reason: "goal counts must differ"}
	}

	remote, err := s.api.RegisterShootout(ctx, matchID, league.ShootoutRequest{
		HomeGoals: homeGoals,
		AwayGoals: awayGoals,
	})
	if err != nil {
		return MatchView{}, err
	}
	return s.applyConfirmed(ctx, sess, remote)
}

// SyncMatch refetches the authoritative match entity and mirrors any status
// change the league made out of band, such as closing a terminated record.
func (s *Service) SyncMatch(ctx context.Context, matchID string) (MatchView, error) {
	sess, err := s.session(matchID)
	if err != nil {
		return MatchView{}, err
	}
	remote, err := s.api.GetMatch(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}
	return s.applyConfirmed(ctx, sess, remote)
}

// transition runs one lifecycle call: reject locally if the target is not
// reachable, then call the league, then mirror the confirmed status and its
// clock side effects.
func (s *Service) transition(ctx context.Context, matchID string, target match.Status, call func(ctx context.Context, matchID string) (*league.Match, error)) (MatchView, error) {
	sess, err := s.session(matchID)
	if err != nil {
		return MatchView{}, err
	}

	sess.mu.Lock()
	current := sess.machine.Status()
	allowed := sess.machine.CanTransition(target)
	sess.mu.Unlock()
	if !allowed {
		return MatchView{}, stateViolation("cannot move from %s to %s", current, target)
	}

	remote, err := call(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}
	return s.applyConfirmed(ctx, sess, remote)
}

func (s *Service) applyConfirmed(ctx context.Context, sess *session, remote *league.Match) (MatchView, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.remote = *remote
	confirmed := remote.Status()
	if confirmed != sess.machine.Status() {
		if err := sess.machine.Apply(ctx, confirmed); err != nil {
			return MatchView{}, err
		}
	}
	return s.viewOfLocked(sess), nil
}
