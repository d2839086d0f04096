// Package scorer is the console's session layer: one mounted session per
// live match, combining the mirrored state machine, the persisted clock, the
// cached incident ledger and the optimistic mutation engine over the league
// API client.
package scorer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/golazoapp/golazo/internal/clock"
	"github.com/golazoapp/golazo/internal/incident"
	"github.com/golazoapp/golazo/internal/league"
	"github.com/golazoapp/golazo/internal/match"
	"github.com/golazoapp/golazo/internal/optimistic"
)

// LeagueAPI is what the service needs from the league client. The remote
// side is authoritative for lifecycle and incident records; every mutation
// here ends in one of these calls.
type LeagueAPI interface {
	GetMatch(ctx context.Context, matchID string) (*league.Match, error)
	StartMatch(ctx context.Context, matchID string) (*league.Match, error)
	EndFirstHalf(ctx context.Context, matchID string) (*league.Match, error)
	StartSecondHalf(ctx context.Context, matchID string) (*league.Match, error)
	FinalizeMatch(ctx context.Context, matchID string) (*league.Match, error)
	SuspendMatch(ctx context.Context, matchID, reason string) (*league.Match, error)
	RegisterShootout(ctx context.Context, matchID string, req league.ShootoutRequest) (*league.Match, error)
	GetRoster(ctx context.Context, teamID string) ([]league.RosterPlayer, error)

	ListIncidents(ctx context.Context, matchID string) ([]league.Incident, error)
	CreateGoal(ctx context.Context, matchID string, req league.GoalRequest) (*league.Incident, error)
	UpdateGoal(ctx context.Context, matchID, goalID string, req league.GoalRequest) (*league.Incident, error)
	DeleteGoal(ctx context.Context, matchID, goalID string) error
	CreateCard(ctx context.Context, matchID string, req league.CardRequest) (*league.Incident, error)
	UpdateCard(ctx context.Context, matchID, cardID string, req league.CardRequest) (*league.Incident, error)
	DeleteCard(ctx context.Context, matchID, cardID string) error
	CreateSubstitution(ctx context.Context, matchID string, req league.SubstitutionRequest) (*league.Incident, error)
	DeleteSubstitution(ctx context.Context, matchID, substitutionID string) error
}

// Store is the local persistence the service needs: clock snapshots plus the
// scorer's free-text observations.
type Store interface {
	clock.Repository
	GetObservations(ctx context.Context, matchID string) (string, error)
	SaveObservations(ctx context.Context, matchID, body string, updatedAt time.Time) error
}

// Config holds scorer service configuration. Zero values fall back to the
// clock package defaults.
type Config struct {
	MinutesPerHalf  int
	MinutesHalftime int
	StaleAfter      time.Duration
	PersistInterval time.Duration

	// Clock for testing (nil uses the real clock).
	Clock clockwork.Clock
}

// Service owns the mounted match sessions. It is handed its collaborators
// explicitly and carries no package-level state.
type Service struct {
	api    LeagueAPI
	store  Store
	cfg    Config
	clock  clockwork.Clock
	engine *optimistic.Engine[*incident.Ledger]

	mu       sync.Mutex
	sessions map[string]*session
}

// session is the live state of one mounted match. mu guards everything but
// the clock store and runner, which synchronize internally.
type session struct {
	matchID string

	mu      sync.Mutex
	remote  league.Match
	machine *match.Machine
	store   *clock.Store
	runner  *clock.Runner
	ledger  *incident.Ledger
	rosters map[string]league.RosterPlayer
}

// NewService builds the scorer service.
func NewService(api LeagueAPI, store Store, cfg Config) *Service {
	clk := cfg.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	s := &Service{
		api:      api,
		store:    store,
		cfg:      cfg,
		clock:    clk,
		sessions: make(map[string]*session),
	}
	s.engine = optimistic.New[*incident.Ledger](ledgerCache{svc: s})
	return s
}

// Mount opens (or returns the already-open) session for a match: fetches the
// authoritative match and ledger, restores the persisted clock snapshot and
// starts the tick runner. The server's status wins over whatever an old
// snapshot mirrored.
func (s *Service) Mount(ctx context.Context, matchID string) (MatchView, error) {
	s.mu.Lock()
	if sess, ok := s.sessions[matchID]; ok {
		s.mu.Unlock()
		return s.viewOf(sess), nil
	}
	s.mu.Unlock()

	remote, err := s.api.GetMatch(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}
	records, err := s.api.ListIncidents(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}
	entries, err := league.ToDomainIncidents(records)
	if err != nil {
		return MatchView{}, err
	}
	ledger, err := incident.NewLedger(entries...)
	if err != nil {
		return MatchView{}, err
	}

	minutesPerHalf := remote.MinutesPerHalf
	if minutesPerHalf <= 0 {
		minutesPerHalf = s.cfg.MinutesPerHalf
	}
	minutesHalftime := remote.MinutesHalftime
	if minutesHalftime <= 0 {
		minutesHalftime = s.cfg.MinutesHalftime
	}
	store := clock.NewStore(matchID, s.store, clock.Config{
		MinutesPerHalf:  minutesPerHalf,
		MinutesHalftime: minutesHalftime,
		StaleAfter:      s.cfg.StaleAfter,
		Clock:           s.clock,
	})
	if err := store.Restore(ctx); err != nil {
		return MatchView{}, err
	}
	if match.Status(store.Snapshot().Status) != remote.Status() {
		if err := store.SetStatus(ctx, string(remote.Status())); err != nil {
			return MatchView{}, err
		}
	}

	sess := &session{
		matchID: matchID,
		remote:  *remote,
		machine: match.NewMachine(matchID, remote.Status(), store),
		store:   store,
		ledger:  ledger,
		rosters: s.loadRosters(ctx, remote),
	}
	sess.runner = clock.NewRunner(store, s.cfg.PersistInterval)

	s.mu.Lock()
	if existing, ok := s.sessions[matchID]; ok {
		// Lost a mount race; keep the winner.
		s.mu.Unlock()
		return s.viewOf(existing), nil
	}
	s.sessions[matchID] = sess
	s.mu.Unlock()

	sess.runner.Start(context.WithoutCancel(ctx))
	log.Ctx(ctx).Info().
		Str("match_id", matchID).
		Str("status", string(remote.Status())).
		Int("incidents", ledger.Len()).
		Msg("Match session mounted")
	return s.viewOf(sess), nil
}

// Unmount closes the session: stops the tick runner and persists a final
// snapshot, or deletes it when the match has reached a terminal status.
// Unmounting a match that is not mounted is a no-op.
func (s *Service) Unmount(ctx context.Context, matchID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[matchID]
	if ok {
		delete(s.sessions, matchID)
	}
	s.mu.Unlock()
	if !ok {
		return nil
	}

	sess.runner.Stop()
	log.Ctx(ctx).Info().Str("match_id", matchID).Msg("Match session unmounted")
	if sess.status().Terminal() {
		return sess.store.Reset(ctx)
	}
	return sess.store.Persist(ctx)
}

// MountedMatches lists the ids of currently mounted sessions.
func (s *Service) MountedMatches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// RefreshLedger refetches the authoritative ledger and replaces the cached
// one. The refetch holds the engine's per-match lock, so the background poll
// can never land between a mutation's prediction and its reconciliation.
func (s *Service) RefreshLedger(ctx context.Context, matchID string) error {
	return s.engine.Refresh(ctx, matchID, func(ctx context.Context) error {
		return s.refetchLedger(ctx, matchID)
	})
}

// refetchLedger swaps in the server's ledger shape. Callers must hold the
// engine's lock for matchID; reconciliation inside a mutation already does.
func (s *Service) refetchLedger(ctx context.Context, matchID string) error {
	sess, err := s.session(matchID)
	if err != nil {
		return err
	}
	records, err := s.api.ListIncidents(ctx, matchID)
	if err != nil {
		return err
	}
	entries, err := league.ToDomainIncidents(records)
	if err != nil {
		return err
	}
	ledger, err := incident.NewLedger(entries...)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	sess.ledger = ledger
	sess.mu.Unlock()
	return nil
}

func (s *Service) session(matchID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[matchID]
	if !ok {
		return nil, ErrNotMounted
	}
	return sess, nil
}

func (s *Service) loadRosters(ctx context.Context, remote *league.Match) map[string]league.RosterPlayer {
	rosters := make(map[string]league.RosterPlayer)
	for _, team := range []league.Team{remote.HomeTeam, remote.AwayTeam} {
		if team.ID == "" {
			continue
		}
		players, err := s.api.GetRoster(ctx, team.ID)
		if err != nil {
			// Names degrade to ids on the console; not worth failing the mount.
			log.Ctx(ctx).Warn().
				Err(err).
				Str("team_id", team.ID).
				Msg("Roster fetch failed")
			continue
		}
		for _, player := range players {
			rosters[player.ID] = player
		}
	}
	return rosters
}

func (sess *session) status() match.Status {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.machine.Status()
}

// ledgerCache adapts the mounted sessions to the optimistic engine. All three
// operations are no-ops for a key whose session was unmounted mid-mutation.
type ledgerCache struct {
	svc *Service
}

func (c ledgerCache) Snapshot(ctx context.Context, key string) (*incident.Ledger, error) {
	sess, err := c.svc.session(key)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.ledger.Clone(), nil
}

func (c ledgerCache) Restore(ctx context.Context, key string, snap *incident.Ledger) {
	sess, err := c.svc.session(key)
	if err != nil {
		return
	}
	sess.mu.Lock()
	sess.ledger = snap
	sess.mu.Unlock()
}

func (c ledgerCache) Invalidate(ctx context.Context, key string) {
	// Invalidate runs inside Do, which already holds the key lock, so this
	// must take the lock-free refetch path.
	if err := c.svc.refetchLedger(ctx, key); err != nil && !errors.Is(err, ErrNotMounted) {
		// The prediction stays visible until the next poll succeeds.
		log.Ctx(ctx).Warn().
			Err(err).
			Str("match_id", key).
			Msg("Ledger refetch after mutation failed")
	}
}
