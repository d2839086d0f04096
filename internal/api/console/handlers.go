// internal/api/console/handlers.go
package console

import (
	"context"
	"net/http"
	"sync"

	"github.com/golazoapp/golazo/internal/api/apiutil"
	"github.com/golazoapp/golazo/internal/scorer"
)

var (
	service     *scorer.Service
	serviceOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *scorer.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

type suspendRequest struct {
	Reason string `json:"reason,omitempty"`
}

type shootoutRequest struct {
	HomeGoals int `json:"home_goals"`
	AwayGoals int `json:"away_goals"`
}

type observationsRequest struct {
	Body string `json:"body"`
}

type observationsResponse struct {
	Body string `json:"body"`
}

func HandleMount(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	view, err := service.Mount(r.Context(), r.PathValue("id"))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, view)
}

func HandleUnmount(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	if err := service.Unmount(r.Context(), r.PathValue("id")); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func HandleScoreboard(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	view, err := service.Scoreboard(r.PathValue("id"))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, view)
}

func HandleClock(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	projection, err := service.Clock(r.PathValue("id"))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, projection)
}

func HandleTimeline(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	rows, err := service.Timeline(r.PathValue("id"))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, rows)
}

func HandleStartMatch(w http.ResponseWriter, r *http.Request) {
	handleLifecycle(w, r, service.StartMatch)
}

func HandleEndFirstHalf(w http.ResponseWriter, r *http.Request) {
	handleLifecycle(w, r, service.EndFirstHalf)
}

func HandleStartSecondHalf(w http.ResponseWriter, r *http.Request) {
	handleLifecycle(w, r, service.StartSecondHalf)
}

func HandleFinalizeMatch(w http.ResponseWriter, r *http.Request) {
	handleLifecycle(w, r, service.FinalizeMatch)
}

func HandleSyncMatch(w http.ResponseWriter, r *http.Request) {
	handleLifecycle(w, r, service.SyncMatch)
}

func HandleSuspendMatch(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	var req suspendRequest
	if r.ContentLength > 0 {
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			apiutil.WriteError(w, r, scorer.ValidationError{Field: "body", Reason: err.Error()})
			return
		}
	}
	view, err := service.SuspendMatch(r.Context(), r.PathValue("id"), req.Reason)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, view)
}

func HandleShootout(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	var req shootoutRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, scorer.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	view, err := service.RegisterShootout(r.Context(), r.PathValue("id"), req.HomeGoals, req.AwayGoals)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, view)
}

func HandleCreateGoal(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	var in scorer.GoalInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		apiutil.WriteError(w, r, scorer.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	if err := service.RecordGoal(r.Context(), r.PathValue("id"), in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	writeScoreboard(w, r)
}

func HandleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	var in scorer.GoalInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		apiutil.WriteError(w, r, scorer.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	if err := service.UpdateGoal(r.Context(), r.PathValue("id"), r.PathValue("goalID"), in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	writeScoreboard(w, r)
}

func HandleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	if err := service.DeleteGoal(r.Context(), r.PathValue("id"), r.PathValue("goalID")); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	writeScoreboard(w, r)
}

func HandleCreateCard(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	var in scorer.CardInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		apiutil.WriteError(w, r, scorer.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	if err := service.RecordCard(r.Context(), r.PathValue("id"), in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	writeScoreboard(w, r)
}

func HandleUpdateCard(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	var in scorer.CardInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		apiutil.WriteError(w, r, scorer.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	if err := service.UpdateCard(r.Context(), r.PathValue("id"), r.PathValue("cardID"), in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	writeScoreboard(w, r)
}

func HandleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	if err := service.DeleteCard(r.Context(), r.PathValue("id"), r.PathValue("cardID")); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	writeScoreboard(w, r)
}

func HandleCreateSubstitution(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	var in scorer.SubstitutionInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		apiutil.WriteError(w, r, scorer.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	if err := service.RecordSubstitution(r.Context(), r.PathValue("id"), in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	writeScoreboard(w, r)
}

func HandleDeleteSubstitution(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	if err := service.DeleteSubstitution(r.Context(), r.PathValue("id"), r.PathValue("substitutionID")); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	writeScoreboard(w, r)
}

func HandleGetObservations(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	body, err := service.Observations(r.Context(), r.PathValue("id"))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, observationsResponse{Body: body})
}

func HandleSaveObservations(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	var req observationsRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, scorer.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	if err := service.SaveObservations(r.Context(), r.PathValue("id"), req.Body); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleLifecycle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, matchID string) (scorer.MatchView, error)) {
	if !apiutil.RequireScorer(w, r) {
		return
	}
	view, err := op(r.Context(), r.PathValue("id"))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, view)
}

func writeScoreboard(w http.ResponseWriter, r *http.Request) {
	view, err := service.Scoreboard(r.PathValue("id"))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, view)
}
