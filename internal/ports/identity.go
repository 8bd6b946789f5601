package ports

import "context"

// Identity is what the identity collaborator hands to the core per call.
type Identity struct {
	EvaluatorID string
	IsAdmin     bool
	IsChercheur bool
}

type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (Identity, error)
}
