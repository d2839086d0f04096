package incident

// Score is the scoreboard derived from a ledger.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Tied reports whether both sides have the same goal count.
func (s Score) Tied() bool { return s.Home == s.Away }

// DeriveScore recomputes the scoreboard from the ledger contents. A goal
// scored by a team counts for that team unless it is marked an own goal, in
// which case it credits the opponent. Goals attributed to neither team are
// ignored. The result depends only on the set of goal incidents, not on
// their order.
func DeriveScore(entries []Incident, homeTeamID, awayTeamID string) Score {
	var score Score
	for _, in := range entries {
		goal, ok := in.(Goal)
		if !ok {
			continue
		}
		credited := goal.TeamID
		if goal.IsOwnGoal {
			switch goal.TeamID {
			case homeTeamID:
				credited = awayTeamID
			case awayTeamID:
				credited = homeTeamID
			default:
				continue
			}
		}
		switch credited {
		case homeTeamID:
			score.Home++
		case awayTeamID:
			score.Away++
		}
	}
	return score
}
