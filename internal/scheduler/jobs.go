package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/golazoapp/golazo/internal/db"
	"github.com/golazoapp/golazo/internal/scorer"
)

// JobsConfig configures the console's background jobs.
type JobsConfig struct {
	StaleAfter       time.Duration
	EvictionInterval time.Duration
	RefreshInterval  time.Duration
}

// RegisterConsoleJobs wires the two recurring jobs: eviction of stale clock
// snapshot rows at rest, and the ledger poll that keeps mounted sessions
// converged with the league between mutations.
func RegisterConsoleJobs(s *Service, console *scorer.Service, database *db.DB, cfg JobsConfig) error {
	if _, err := s.AddIntervalJob("evict-stale-clock-snapshots", cfg.EvictionInterval, func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-cfg.StaleAfter)
		evicted, err := database.DeleteStaleSnapshots(ctx, cutoff)
		if err != nil {
			log.Error().Err(err).Msg("Stale snapshot eviction failed")
			return
		}
		if evicted > 0 {
			log.Info().Int64("evicted", evicted).Msg("Evicted stale clock snapshots")
		}
	}); err != nil {
		return err
	}

	if _, err := s.AddIntervalJob("refresh-mounted-ledgers", cfg.RefreshInterval, func() {
		ctx := context.Background()
		for _, matchID := range console.MountedMatches() {
			if err := console.RefreshLedger(ctx, matchID); err != nil {
				log.Warn().Err(err).Str("match_id", matchID).Msg("Ledger poll failed")
			}
		}
	}); err != nil {
		return err
	}

	return nil
}
