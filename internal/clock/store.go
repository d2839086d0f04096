// Package clock owns the durable match clock: a per-match snapshot of phase
// timing that survives reloads and brief disconnects, plus the pure
// projection that turns it into displayable time.
package clock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/golazoapp/golazo/internal/match"
)

const (
	// DefaultMinutesPerHalf is the regulation length of one half.
	DefaultMinutesPerHalf = 25
	// DefaultMinutesHalftime is the scheduled break between halves.
	DefaultMinutesHalftime = 5
	// DefaultStaleAfter is how old a persisted snapshot may be before it is
	// discarded on restore instead of resuming a long-dead session.
	DefaultStaleAfter = 4 * time.Hour
)

// ErrHalfAlreadyRunning is returned when StartHalf is called while a half is
// running.
var ErrHalfAlreadyRunning = errors.New("a half is already running")

// State is the serialized snapshot of match-phase timing. At most one half
// is actively running at a time; the other half's accumulated minutes are
// frozen. Start timestamps survive a pause so the console can keep showing
// the "paused at" time.
type State struct {
	Status                       string     `json:"status"`
	FirstHalfStartedAt           *time.Time `json:"first_half_started_at,omitempty"`
	SecondHalfStartedAt          *time.Time `json:"second_half_started_at,omitempty"`
	AccumulatedFirstHalfMinutes  float64    `json:"accumulated_first_half_minutes"`
	AccumulatedSecondHalfMinutes float64    `json:"accumulated_second_half_minutes"`
	MinutesPerHalf               int        `json:"minutes_per_half"`
	MinutesHalftime              int        `json:"minutes_halftime"`
	RunningHalf                  match.Half `json:"running_half,omitempty"`
	SnapshotTakenAt              time.Time  `json:"snapshot_taken_at"`
}

// Repository persists one snapshot blob per match.
type Repository interface {
	LoadSnapshot(ctx context.Context, matchID string) ([]byte, bool, error)
	SaveSnapshot(ctx context.Context, matchID string, payload []byte, takenAt time.Time) error
	DeleteSnapshot(ctx context.Context, matchID string) error
}

// Config holds clock store configuration.
type Config struct {
	MinutesPerHalf  int
	MinutesHalftime int
	StaleAfter      time.Duration

	// Clock for testing (nil uses the real clock).
	Clock clockwork.Clock
}

// Store is the persisted clock for one match. It is an explicitly owned
// object handed to its callers, not a package-level singleton; the scorer
// session creates one per mounted match and tears it down on unmount.
type Store struct {
	matchID    string
	repo       Repository
	clock      clockwork.Clock
	staleAfter time.Duration

	mu    sync.Mutex
	state State
}

var _ match.ClockControl = (*Store)(nil)

// NewStore builds a clock store for one match. Call Restore before reading
// from it so a prior session's snapshot is picked up.
func NewStore(matchID string, repo Repository, cfg Config) *Store {
	if cfg.MinutesPerHalf <= 0 {
		cfg.MinutesPerHalf = DefaultMinutesPerHalf
	}
	if cfg.MinutesHalftime <= 0 {
		cfg.MinutesHalftime = DefaultMinutesHalftime
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultStaleAfter
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Store{
		matchID:    matchID,
		repo:       repo,
		clock:      clk,
		staleAfter: cfg.StaleAfter,
		state:      defaultState(cfg),
	}
}

func defaultState(cfg Config) State {
	return State{
		Status:          string(match.StatusScheduled),
		MinutesPerHalf:  cfg.MinutesPerHalf,
		MinutesHalftime: cfg.MinutesHalftime,
	}
}

// Restore rehydrates the store from the persisted snapshot. A snapshot older
// than the staleness threshold is discarded and deleted; that path recovers
// silently to defaults and is never surfaced to the scorer.
func (s *Store) Restore(ctx context.Context) error {
	payload, found, err := s.repo.LoadSnapshot(ctx, s.matchID)
	if err != nil {
		return fmt.Errorf("load clock snapshot: %w", err)
	}
	if !found {
		return nil
	}

	var restored State
	if err := json.Unmarshal(payload, &restored); err != nil {
		return fmt.Errorf("decode clock snapshot: %w", err)
	}

	if s.clock.Now().Sub(restored.SnapshotTakenAt) > s.staleAfter {
		log.Ctx(ctx).Debug().
			Str("match_id", s.matchID).
			Time("taken_at", restored.SnapshotTakenAt).
			Msg("Discarding stale clock snapshot")
		if err := s.repo.DeleteSnapshot(ctx, s.matchID); err != nil {
			return fmt.Errorf("delete stale clock snapshot: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	s.state = restored
	s.mu.Unlock()
	return nil
}

// StartHalf records now as the half's start timestamp and persists
// immediately. It fails if any half is already running.
func (s *Store) StartHalf(ctx context.Context, half match.Half) error {
	s.mu.Lock()
	if s.state.RunningHalf != 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: half %d", ErrHalfAlreadyRunning, s.state.RunningHalf)
	}
	now := s.clock.Now().UTC()
	switch half {
	case match.HalfFirst:
		s.state.FirstHalfStartedAt = &now
	case match.HalfSecond:
		s.state.SecondHalfStartedAt = &now
	default:
		s.mu.Unlock()
		return fmt.Errorf("unknown half %d", half)
	}
	s.state.RunningHalf = half
	s.mu.Unlock()

	return s.Persist(ctx)
}

// PauseHalf banks the whole minutes elapsed since the half started and stops
// the running interval. The start timestamp is kept so the console can keep
// showing when play paused. Calling it again without an intervening
// StartHalf is a no-op.
func (s *Store) PauseHalf(ctx context.Context, half match.Half) error {
	s.mu.Lock()
	if s.state.RunningHalf != half {
		s.mu.Unlock()
		return nil
	}
	startedAt := s.startedAtLocked(half)
	if startedAt != nil {
		elapsed := s.clock.Now().Sub(*startedAt).Minutes()
		banked := math.Floor(elapsed)
		if banked > 0 {
			switch half {
			case match.HalfFirst:
				s.state.AccumulatedFirstHalfMinutes += banked
			case match.HalfSecond:
				s.state.AccumulatedSecondHalfMinutes += banked
			}
		}
	}
	s.state.RunningHalf = 0
	s.mu.Unlock()

	return s.Persist(ctx)
}

// SetStatus updates the status mirror and persists.
func (s *Store) SetStatus(ctx context.Context, status string) error {
	s.mu.Lock()
	s.state.Status = status
	s.mu.Unlock()
	return s.Persist(ctx)
}

// ElapsedMinutes returns the minutes played in the half, monotone
// non-decreasing while the half runs and frozen at the banked value while
// paused.
func (s *Store) ElapsedMinutes(half match.Half) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked(half)
}

// RemainingMinutes returns the regulation minutes left in the half, clamped
// at zero once play runs over.
func (s *Store) RemainingMinutes(half match.Half) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return math.Max(0, float64(s.state.MinutesPerHalf)-s.elapsedLocked(half))
}

// Running reports whether a half is actively running.
func (s *Store) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.RunningHalf != 0
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Persist writes the snapshot through to durable storage, stamping
// SnapshotTakenAt with the current time.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	s.state.SnapshotTakenAt = s.clock.Now().UTC()
	state := s.state
	s.mu.Unlock()

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode clock snapshot: %w", err)
	}
	if err := s.repo.SaveSnapshot(ctx, s.matchID, payload, state.SnapshotTakenAt); err != nil {
		return fmt.Errorf("save clock snapshot: %w", err)
	}
	return nil
}

// Reset clears the state back to defaults and deletes the persisted
// snapshot. Called on logout or an explicit match reset.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.state = defaultState(Config{
		MinutesPerHalf:  s.state.MinutesPerHalf,
		MinutesHalftime: s.state.MinutesHalftime,
	})
	s.mu.Unlock()

	if err := s.repo.DeleteSnapshot(ctx, s.matchID); err != nil {
		return fmt.Errorf("delete clock snapshot: %w", err)
	}
	return nil
}

func (s *Store) startedAtLocked(half match.Half) *time.Time {
	if half == match.HalfSecond {
		return s.state.SecondHalfStartedAt
	}
	return s.state.FirstHalfStartedAt
}

func (s *Store) elapsedLocked(half match.Half) float64 {
	var accumulated float64
	switch half {
	case match.HalfFirst:
		accumulated = s.state.AccumulatedFirstHalfMinutes
	case match.HalfSecond:
		accumulated = s.state.AccumulatedSecondHalfMinutes
	}
	if s.state.RunningHalf != half {
		return accumulated
	}
	startedAt := s.startedAtLocked(half)
	if startedAt == nil {
		return accumulated
	}
	return accumulated + s.clock.Now().Sub(*startedAt).Minutes()
}
