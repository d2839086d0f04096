package scorer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/golazoapp/golazo/internal/league"
	"github.com/golazoapp/golazo/internal/match"
)

var testEpoch = time.Date(2025, 6, 14, 16, 0, 0, 0, time.UTC)

const (
	testMatchID = "m1"
	homeID      = "team-home"
	awayID      = "team-away"
)

// fakeLeague is an in-memory stand-in for the league API. Lifecycle calls
// move the match to the status the real server would confirm.
type fakeLeague struct {
	mu        sync.Mutex
	match     league.Match
	incidents []league.Incident
	nextID    int

	createGoalErr error
	createGoalCalls,
	createCardCalls,
	shootoutCalls,
	lifecycleCalls int

	// When set, CreateGoal signals goalCommitStarted and parks until
	// goalCommitRelease is closed, holding the mutation mid-commit.
	goalCommitStarted chan struct{}
	goalCommitRelease chan struct{}
}

func newFakeLeague(statusCode string) *fakeLeague {
	return &fakeLeague{
		match: league.Match{
			ID:         testMatchID,
			StatusCode: statusCode,
			HomeTeam:   league.Team{ID: homeID, Name: "Boca Amateurs"},
			AwayTeam:   league.Team{ID: awayID, Name: "River Casuals"},
			KickoffAt:  testEpoch,
		},
	}
}

func (f *fakeLeague) GetMatch(ctx context.Context, matchID string) (*league.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.match
	return &m, nil
}

func (f *fakeLeague) confirm(code string) (*league.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lifecycleCalls++
	f.match.StatusCode = code
	m := f.match
	return &m, nil
}

func (f *fakeLeague) StartMatch(ctx context.Context, matchID string) (*league.Match, error) {
	return f.confirm("C1")
}

func (f *fakeLeague) EndFirstHalf(ctx context.Context, matchID string) (*league.Match, error) {
	return f.confirm("E")
}

func (f *fakeLeague) StartSecondHalf(ctx context.Context, matchID string) (*league.Match, error) {
	return f.confirm("C2")
}

func (f *fakeLeague) FinalizeMatch(ctx context.Context, matchID string) (*league.Match, error) {
	return f.confirm("T")
}

func (f *fakeLeague) SuspendMatch(ctx context.Context, matchID, reason string) (*league.Match, error) {
	return f.confirm("S")
}

func (f *fakeLeague) RegisterShootout(ctx context.Context, matchID string, req league.ShootoutRequest) (*league.Match, error) {
	f.mu.Lock()
	f.shootoutCalls++
	f.mu.Unlock()
	m, err := f.confirm("F")
	if err != nil {
		return nil, err
	}
	m.PenaltiesHome = &req.HomeGoals
	m.PenaltiesAway = &req.AwayGoals
	return m, nil
}

func (f *fakeLeague) GetRoster(ctx context.Context, teamID string) ([]league.RosterPlayer, error) {
	if teamID == homeID {
		return []league.RosterPlayer{{ID: "p9", Name: "Nine", Jersey: "9"}, {ID: "p10", Name: "Ten", Jersey: "10"}}, nil
	}
	return []league.RosterPlayer{{ID: "p4", Name: "Four", Jersey: "4"}}, nil
}

func (f *fakeLeague) ListIncidents(ctx context.Context, matchID string) ([]league.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]league.Incident, len(f.incidents))
	copy(out, f.incidents)
	return out, nil
}

func (f *fakeLeague) CreateGoal(ctx context.Context, matchID string, req league.GoalRequest) (*league.Incident, error) {
	if f.goalCommitStarted != nil {
		close(f.goalCommitStarted)
		<-f.goalCommitRelease
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createGoalCalls++
	if f.createGoalErr != nil {
		return nil, f.createGoalErr
	}
	f.nextID++
	record := league.Incident{
		ID:        fmt.Sprintf("g%d", f.nextID),
		Kind:      "goal",
		TeamID:    req.TeamID,
		PlayerID:  req.PlayerID,
		Minute:    req.Minute,
		IsPenalty: req.IsPenalty,
		IsOwnGoal: req.IsOwnGoal,
	}
	if req.AssistPlayerID != "" {
		f.nextID++
		assist := league.Incident{
			ID:       fmt.Sprintf("a%d", f.nextID),
			Kind:     "assist",
			TeamID:   req.TeamID,
			PlayerID: req.AssistPlayerID,
			Minute:   req.Minute,
			GoalID:   record.ID,
		}
		record.AssistID = assist.ID
		f.incidents = append(f.incidents, assist)
	}
	f.incidents = append(f.incidents, record)
	return &record, nil
}

func (f *fakeLeague) UpdateGoal(ctx context.Context, matchID, goalID string, req league.GoalRequest) (*league.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, record := range f.incidents {
		if record.ID == goalID {
			f.incidents[i].Minute = req.Minute
			f.incidents[i].PlayerID = req.PlayerID
			record = f.incidents[i]
			return &record, nil
		}
	}
	return nil, &league.RemoteError{StatusCode: 404, Message: "goal not found"}
}

func (f *fakeLeague) DeleteGoal(ctx context.Context, matchID, goalID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, record := range f.incidents {
		if record.ID == goalID {
			f.incidents = append(f.incidents[:i], f.incidents[i+1:]...)
			return nil
		}
	}
	return &league.RemoteError{StatusCode: 404, Message: "goal not found"}
}

func (f *fakeLeague) CreateCard(ctx context.Context, matchID string, req league.CardRequest) (*league.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCardCalls++
	f.nextID++
	record := league.Incident{
		ID:        fmt.Sprintf("c%d", f.nextID),
		Kind:      "card",
		TeamID:    req.TeamID,
		PlayerID:  req.PlayerID,
		Minute:    req.Minute,
		CardColor: req.Color,
	}
	f.incidents = append(f.incidents, record)
	return &record, nil
}

func (f *fakeLeague) UpdateCard(ctx context.Context, matchID, cardID string, req league.CardRequest) (*league.Incident, error) {
	return nil, &league.RemoteError{StatusCode: 404, Message: "card not found"}
}

func (f *fakeLeague) DeleteCard(ctx context.Context, matchID, cardID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, record := range f.incidents {
		if record.ID == cardID {
			f.incidents = append(f.incidents[:i], f.incidents[i+1:]...)
			return nil
		}
	}
	return &league.RemoteError{StatusCode: 404, Message: "card not found"}
}

func (f *fakeLeague) CreateSubstitution(ctx context.Context, matchID string, req league.SubstitutionRequest) (*league.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	record := league.Incident{
		ID:          fmt.Sprintf("s%d", f.nextID),
		Kind:        "substitution",
		TeamID:      req.TeamID,
		Minute:      req.Minute,
		PlayerOutID: req.PlayerOutID,
		PlayerInID:  req.PlayerInID,
	}
	f.incidents = append(f.incidents, record)
	return &record, nil
}

func (f *fakeLeague) DeleteSubstitution(ctx context.Context, matchID, substitutionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, record := range f.incidents {
		if record.ID == substitutionID {
			f.incidents = append(f.incidents[:i], f.incidents[i+1:]...)
			return nil
		}
	}
	return &league.RemoteError{StatusCode: 404, Message: "substitution not found"}
}

// memStore is an in-memory stand-in for the sqlite-backed store.
type memStore struct {
	mu           sync.Mutex
	snapshots    map[string][]byte
	observations map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		snapshots:    make(map[string][]byte),
		observations: make(map[string]string),
	}
}

func (m *memStore) LoadSnapshot(ctx context.Context, matchID string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.snapshots[matchID]
	return payload, ok, nil
}

func (m *memStore) SaveSnapshot(ctx context.Context, matchID string, payload []byte, takenAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[matchID] = payload
	return nil
}

func (m *memStore) DeleteSnapshot(ctx context.Context, matchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, matchID)
	return nil
}

func (m *memStore) GetObservations(ctx context.Context, matchID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.observations[matchID], nil
}

func (m *memStore) SaveObservations(ctx context.Context, matchID, body string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observations[matchID] = body
	return nil
}

func (m *memStore) hasSnapshot(matchID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.snapshots[matchID]
	return ok
}

func newTestService(t *testing.T, api *fakeLeague) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	svc := NewService(api, store, Config{
		Clock: clockwork.NewFakeClockAt(testEpoch),
	})
	return svc, store
}

func mount(t *testing.T, svc *Service) MatchView {
	t.Helper()
	view, err := svc.Mount(context.Background(), testMatchID)
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	t.Cleanup(func() {
		_ = svc.Unmount(context.Background(), testMatchID)
	})
	return view
}

func TestMountBuildsScoreboard(t *testing.T) {
	api := newFakeLeague("C1")
	api.incidents = []league.Incident{
		{ID: "g1", Kind: "goal", TeamID: homeID, PlayerID: "p9", Minute: 7},
	}
	svc, _ := newTestService(t, api)

	view := mount(t, svc)

	if view.Status != string(match.StatusFirstHalf) {
		t.Errorf("status = %s, want first_half", view.Status)
	}
	if view.Score.Home != 1 || view.Score.Away != 0 {
		t.Errorf("score = %d-%d, want 1-0", view.Score.Home, view.Score.Away)
	}
	if view.HomeTeam.Name != "Boca Amateurs" {
		t.Errorf("unexpected home team %q", view.HomeTeam.Name)
	}
}

func TestMountIsIdempotent(t *testing.T) {
	api := newFakeLeague("P")
	svc, _ := newTestService(t, api)

	mount(t, svc)
	if _, err := svc.Mount(context.Background(), testMatchID); err != nil {
		t.Fatalf("second mount: %v", err)
	}
	if got := len(svc.MountedMatches()); got != 1 {
		t.Errorf("mounted sessions = %d, want 1", got)
	}
}

func TestLifecycleMirrorsConfirmedStatus(t *testing.T) {
	api := newFakeLeague("P")
	svc, _ := newTestService(t, api)
	mount(t, svc)
	ctx := context.Background()

	view, err := svc.StartMatch(ctx, testMatchID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if view.Status != string(match.StatusFirstHalf) {
		t.Errorf("status = %s, want first_half", view.Status)
	}
	if view.Clock.PhaseLabel != "First half" {
		t.Errorf("phase label = %q", view.Clock.PhaseLabel)
	}

	if _, err := svc.EndFirstHalf(ctx, testMatchID); err != nil {
		t.Fatalf("end first half: %v", err)
	}
	if _, err := svc.StartSecondHalf(ctx, testMatchID); err != nil {
		t.Fatalf("start second half: %v", err)
	}
	view, err = svc.FinalizeMatch(ctx, testMatchID)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if view.Status != string(match.StatusTerminated) {
		t.Errorf("status = %s, want terminated", view.Status)
	}
}

func TestLifecycleRejectedLocallyBeforeNetwork(t *testing.T) {
	api := newFakeLeague("P")
	svc, _ := newTestService(t, api)
	mount(t, svc)

	_, err := svc.StartSecondHalf(context.Background(), testMatchID)
	if !errors.Is(err, ErrStateViolation) {
		t.Fatalf("err = %v, want ErrStateViolation", err)
	}
	if api.lifecycleCalls != 0 {
		t.Errorf("lifecycle calls = %d, want 0", api.lifecycleCalls)
	}
}

func TestRecordGoalConfirmedByServer(t *testing.T) {
	api := newFakeLeague("C1")
	svc, _ := newTestService(t, api)
	mount(t, svc)
	ctx := context.Background()

	err := svc.RecordGoal(ctx, testMatchID, GoalInput{TeamID: homeID, PlayerID: "p9", Minute: 12})
	if err != nil {
		t.Fatalf("record goal: %v", err)
	}

	view, err := svc.Scoreboard(testMatchID)
	if err != nil {
		t.Fatalf("scoreboard: %v", err)
	}
	if view.Score.Home != 1 || view.Score.Away != 0 {
		t.Errorf("score = %d-%d, want 1-0", view.Score.Home, view.Score.Away)
	}

	rows, err := svc.Timeline(testMatchID)
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("timeline rows = %d, want 1", len(rows))
	}
	// Reconciliation replaced the optimistic entry with the server's record.
	if rows[0].Primary.Pending {
		t.Error("confirmed goal still marked pending")
	}
	if rows[0].Primary.PlayerName != "Nine" {
		t.Errorf("player name = %q, want Nine", rows[0].Primary.PlayerName)
	}
}

func TestRecordGoalRevertsOnRemoteRejection(t *testing.T) {
	api := newFakeLeague("C1")
	api.createGoalErr = &league.RemoteError{StatusCode: 409, Message: "player is suspended"}
	svc, _ := newTestService(t, api)
	mount(t, svc)

	err := svc.RecordGoal(context.Background(), testMatchID, GoalInput{TeamID: homeID, PlayerID: "p9", Minute: 12})
	var remoteErr *league.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if api.createGoalCalls != 1 {
		t.Errorf("create goal calls = %d, want 1", api.createGoalCalls)
	}

	// The optimistic entry was rolled back exactly.
	view, _ := svc.Scoreboard(testMatchID)
	if view.Score.Home != 0 || view.Score.Away != 0 {
		t.Errorf("score = %d-%d, want 0-0 after rollback", view.Score.Home, view.Score.Away)
	}
	rows, _ := svc.Timeline(testMatchID)
	if len(rows) != 0 {
		t.Errorf("timeline rows = %d, want 0 after rollback", len(rows))
	}
}

func TestBackgroundRefreshWaitsForPendingMutation(t *testing.T) {
	api := newFakeLeague("C1")
	api.goalCommitStarted = make(chan struct{})
	api.goalCommitRelease = make(chan struct{})
	svc, _ := newTestService(t, api)
	mount(t, svc)
	ctx := context.Background()

	goalDone := make(chan error, 1)
	go func() {
		goalDone <- svc.RecordGoal(ctx, testMatchID, GoalInput{TeamID: homeID, PlayerID: "p9", Minute: 12})
	}()
	<-api.goalCommitStarted

	// The poll fires while the goal is still awaiting confirmation. It must
	// park on the session's mutation lock instead of replacing the ledger
	// with the server's pre-goal shape.
	refreshDone := make(chan error, 1)
	go func() {
		refreshDone <- svc.RefreshLedger(ctx, testMatchID)
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-refreshDone:
		t.Fatal("refresh completed while a mutation was unreconciled")
	default:
	}
	view, err := svc.Scoreboard(testMatchID)
	if err != nil {
		t.Fatalf("scoreboard: %v", err)
	}
	if view.Score.Home != 1 || view.Score.Away != 0 {
		t.Fatalf("score = %d-%d, want predicted 1-0", view.Score.Home, view.Score.Away)
	}

	close(api.goalCommitRelease)
	if err := <-goalDone; err != nil {
		t.Fatalf("record goal: %v", err)
	}
	if err := <-refreshDone; err != nil {
		t.Fatalf("refresh: %v", err)
	}

	view, _ = svc.Scoreboard(testMatchID)
	if view.Score.Home != 1 || view.Score.Away != 0 {
		t.Errorf("score = %d-%d, want 1-0", view.Score.Home, view.Score.Away)
	}
	rows, _ := svc.Timeline(testMatchID)
	if len(rows) != 1 {
		t.Fatalf("timeline rows = %d, want 1", len(rows))
	}
	if rows[0].Primary.Pending {
		t.Error("confirmed goal still marked pending after refresh")
	}
}

func TestGoalWithAssistGroupsInTimeline(t *testing.T) {
	api := newFakeLeague("C1")
	svc, _ := newTestService(t, api)
	mount(t, svc)
	ctx := context.Background()

	if err := svc.RecordGoal(ctx, testMatchID, GoalInput{
		TeamID:         homeID,
		PlayerID:       "p9",
		Minute:         31,
		AssistPlayerID: "p10",
	}); err != nil {
		t.Fatalf("record goal: %v", err)
	}

	rows, err := svc.Timeline(testMatchID)
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("timeline rows = %d, want 1", len(rows))
	}
	if len(rows[0].Linked) != 1 {
		t.Fatalf("linked entries = %d, want 1", len(rows[0].Linked))
	}
	if rows[0].Linked[0].PlayerName != "Ten" {
		t.Errorf("assist player = %q, want Ten", rows[0].Linked[0].PlayerName)
	}
}

func TestIncidentEditsLockedOutsideEditWindow(t *testing.T) {
	api := newFakeLeague("P")
	svc, _ := newTestService(t, api)
	mount(t, svc)

	err := svc.RecordCard(context.Background(), testMatchID, CardInput{
		TeamID: homeID, PlayerID: "p9", Minute: 3, Color: "yellow",
	})
	if !errors.Is(err, ErrStateViolation) {
		t.Fatalf("err = %v, want ErrStateViolation", err)
	}
	if api.createCardCalls != 0 {
		t.Errorf("create card calls = %d, want 0", api.createCardCalls)
	}
}

func TestValidationRejectedBeforeNetwork(t *testing.T) {
	api := newFakeLeague("C1")
	svc, _ := newTestService(t, api)
	mount(t, svc)
	ctx := context.Background()

	var validationErr ValidationError

	err := svc.RecordGoal(ctx, testMatchID, GoalInput{TeamID: "not-playing", PlayerID: "p9", Minute: 5})
	if !errors.As(err, &validationErr) {
		t.Fatalf("unknown team: err = %v, want ValidationError", err)
	}
	err = svc.RecordCard(ctx, testMatchID, CardInput{TeamID: homeID, PlayerID: "p9", Minute: 5, Color: "blue"})
	if !errors.As(err, &validationErr) {
		t.Fatalf("bad card color: err = %v, want ValidationError", err)
	}
	err = svc.RecordSubstitution(ctx, testMatchID, SubstitutionInput{
		TeamID: homeID, Minute: 60, PlayerOutID: "p9", PlayerInID: "p9",
	})
	if !errors.As(err, &validationErr) {
		t.Fatalf("self substitution: err = %v, want ValidationError", err)
	}
	if api.createGoalCalls != 0 || api.createCardCalls != 0 {
		t.Error("validation failures reached the network")
	}
}

func TestUpdateRejectsUnconfirmedIncident(t *testing.T) {
	api := newFakeLeague("C1")
	svc, _ := newTestService(t, api)
	mount(t, svc)

	err := svc.UpdateGoal(context.Background(), testMatchID, "tmp-abc", GoalInput{
		TeamID: homeID, PlayerID: "p9", Minute: 5,
	})
	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestDeleteGoalRemovesLinkedAssist(t *testing.T) {
	api := newFakeLeague("C1")
	api.incidents = []league.Incident{
		{ID: "g1", Kind: "goal", TeamID: homeID, PlayerID: "p9", Minute: 7, AssistID: "a1"},
		{ID: "a1", Kind: "assist", TeamID: homeID, PlayerID: "p10", Minute: 7, GoalID: "g1"},
	}
	svc, _ := newTestService(t, api)
	mount(t, svc)

	if err := svc.DeleteGoal(context.Background(), testMatchID, "g1"); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	view, _ := svc.Scoreboard(testMatchID)
	if view.Score.Home != 0 {
		t.Errorf("home score = %d, want 0", view.Score.Home)
	}
}

func TestShootoutGuards(t *testing.T) {
	api := newFakeLeague("T")
	api.match.RequiresShootoutDecider = true
	api.incidents = []league.Incident{
		{ID: "g1", Kind: "goal", TeamID: homeID, PlayerID: "p9", Minute: 10},
		{ID: "g2", Kind: "goal", TeamID: awayID, PlayerID: "p4", Minute: 40},
	}
	svc, _ := newTestService(t, api)
	mount(t, svc)
	ctx := context.Background()

	// Equal counts are rejected before any network call.
	_, err := svc.RegisterShootout(ctx, testMatchID, 4, 4)
	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("equal counts: err = %v, want ValidationError", err)
	}
	if api.shootoutCalls != 0 {
		t.Fatalf("shootout calls = %d, want 0", api.shootoutCalls)
	}

	view, err := svc.RegisterShootout(ctx, testMatchID, 5, 4)
	if err != nil {
		t.Fatalf("register shootout: %v", err)
	}
	if view.Status != string(match.StatusFinished) {
		t.Errorf("status = %s, want finished", view.Status)
	}
	if view.PenaltiesHome == nil || *view.PenaltiesHome != 5 {
		t.Errorf("penalties home = %v, want 5", view.PenaltiesHome)
	}
}

func TestShootoutRejectedWhenNotTied(t *testing.T) {
	api := newFakeLeague("T")
	api.match.RequiresShootoutDecider = true
	api.incidents = []league.Incident{
		{ID: "g1", Kind: "goal", TeamID: homeID, PlayerID: "p9", Minute: 10},
	}
	svc, _ := newTestService(t, api)
	mount(t, svc)

	_, err := svc.RegisterShootout(context.Background(), testMatchID, 5, 4)
	if !errors.Is(err, ErrStateViolation) {
		t.Fatalf("err = %v, want ErrStateViolation", err)
	}
	if api.shootoutCalls != 0 {
		t.Errorf("shootout calls = %d, want 0", api.shootoutCalls)
	}
}

func TestShootoutRejectedWithoutDeciderFormat(t *testing.T) {
	api := newFakeLeague("T")
	svc, _ := newTestService(t, api)
	mount(t, svc)

	_, err := svc.RegisterShootout(context.Background(), testMatchID, 5, 4)
	if !errors.Is(err, ErrStateViolation) {
		t.Fatalf("err = %v, want ErrStateViolation", err)
	}
}

func TestObservationsRoundTrip(t *testing.T) {
	api := newFakeLeague("C1")
	svc, _ := newTestService(t, api)
	mount(t, svc)
	ctx := context.Background()

	if err := svc.SaveObservations(ctx, testMatchID, "floodlights flickered in minute 20"); err != nil {
		t.Fatalf("save: %v", err)
	}
	body, err := svc.Observations(ctx, testMatchID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if body != "floodlights flickered in minute 20" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestUnmountKeepsSnapshotForLiveMatch(t *testing.T) {
	api := newFakeLeague("C1")
	svc, store := newTestService(t, api)
	mount(t, svc)

	if err := svc.Unmount(context.Background(), testMatchID); err != nil {
		t.Fatalf("unmount: %v", err)
	}
	if !store.hasSnapshot(testMatchID) {
		t.Error("live match snapshot deleted on unmount")
	}
}

func TestUnmountResetsSnapshotForFinishedMatch(t *testing.T) {
	api := newFakeLeague("F")
	svc, store := newTestService(t, api)
	mount(t, svc)

	if err := svc.Unmount(context.Background(), testMatchID); err != nil {
		t.Fatalf("unmount: %v", err)
	}
	if store.hasSnapshot(testMatchID) {
		t.Error("finished match snapshot kept on unmount")
	}
}

func TestOperationsRequireMountedSession(t *testing.T) {
	api := newFakeLeague("C1")
	svc, _ := newTestService(t, api)

	if _, err := svc.Scoreboard("nope"); !errors.Is(err, ErrNotMounted) {
		t.Errorf("scoreboard err = %v, want ErrNotMounted", err)
	}
	err := svc.RecordGoal(context.Background(), "nope", GoalInput{TeamID: homeID, PlayerID: "p9"})
	if !errors.Is(err, ErrNotMounted) {
		t.Errorf("record goal err = %v, want ErrNotMounted", err)
	}
}
