package incident

import "testing"

const (
	homeID = "team-home"
	awayID = "team-away"
)

func goalAt(id, teamID string, minute int, ownGoal bool) Goal {
	return Goal{
		Meta:      Meta{ID: id, TeamID: teamID, PlayerID: "p-" + id, Minute: minute},
		IsOwnGoal: ownGoal,
	}
}

func TestDeriveScoreCountsGoalsPerTeam(t *testing.T) {
	entries := []Incident{
		goalAt("g1", homeID, 5, false),
		goalAt("g2", awayID, 12, false),
		goalAt("g3", homeID, 40, false),
		Card{Meta: Meta{ID: "c1", TeamID: homeID, PlayerID: "p9", Minute: 20}, Color: CardYellow},
	}

	score := DeriveScore(entries, homeID, awayID)
	if score.Home != 2 || score.Away != 1 {
		t.Fatalf("expected 2-1, got %d-%d", score.Home, score.Away)
	}
}

func TestDeriveScoreOwnGoalCreditsOpponent(t *testing.T) {
	entries := []Incident{
		goalAt("g1", homeID, 10, false),
		// Own goal by a home player counts for the away side.
		goalAt("g2", homeID, 30, true),
	}

	score := DeriveScore(entries, homeID, awayID)
	if score.Home != 1 || score.Away != 1 {
		t.Fatalf("expected 1-1, got %d-%d", score.Home, score.Away)
	}
	if !score.Tied() {
		t.Fatal("expected tied score")
	}
}

func TestDeriveScoreOrderIndependent(t *testing.T) {
	forward := []Incident{
		goalAt("g1", homeID, 5, false),
		goalAt("g2", awayID, 15, true),
		goalAt("g3", awayID, 60, false),
	}
	reversed := []Incident{forward[2], forward[1], forward[0]}

	a := DeriveScore(forward, homeID, awayID)
	b := DeriveScore(reversed, homeID, awayID)
	if a != b {
		t.Fatalf("score depends on order: %+v vs %+v", a, b)
	}
	if a.Home != 2 || a.Away != 1 {
		t.Fatalf("expected 2-1, got %d-%d", a.Home, a.Away)
	}
}

func TestDeriveScoreIgnoresGoalsForUnknownTeams(t *testing.T) {
	entries := []Incident{
		goalAt("g1", "team-other", 5, false),
		goalAt("g2", "team-other", 8, true),
	}

	score := DeriveScore(entries, homeID, awayID)
	if score.Home != 0 || score.Away != 0 {
		t.Fatalf("expected 0-0, got %d-%d", score.Home, score.Away)
	}
}
