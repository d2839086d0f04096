package authz

import (
	"context"
	"errors"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// Scorer is the authenticated console identity: the bearer token the browser
// presented, which the league API is the real judge of.
type Scorer struct {
	Token string
}

type scorerContextKey struct{}

func ContextWithScorer(ctx context.Context, scorer *Scorer) context.Context {
	return context.WithValue(ctx, scorerContextKey{}, scorer)
}

// ScorerFromContext retrieves the Scorer stored in ctx. It returns nil if ctx
// is nil, if no scorer is stored, or if the stored value has a different type.
func ScorerFromContext(ctx context.Context) *Scorer {
	if ctx == nil {
		return nil
	}
	scorer, ok := ctx.Value(scorerContextKey{}).(*Scorer)
	if !ok {
		return nil
	}
	return scorer
}

// RequireScorer returns ErrUnauthenticated when no scorer identity is in ctx.
func RequireScorer(ctx context.Context) error {
	if ScorerFromContext(ctx) == nil {
		return ErrUnauthenticated
	}
	return nil
}
