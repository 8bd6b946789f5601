package domain

import (
	"fmt"

	"github.com/Vovarama1992/ambiance/internal/ports"
)

// Rule is a pure predicate over the role flags supplied by the identity collaborator.
type Rule func(id ports.Identity) bool

func IsEvaluator(id ports.Identity) bool {
	return id.EvaluatorID != "" && !id.IsAdmin
}

func IsAuthenticated(id ports.Identity) bool {
	return id.EvaluatorID != ""
}

func IsAdminOrChercheur(id ports.Identity) bool {
	return id.EvaluatorID != "" && (id.IsAdmin || id.IsChercheur)
}

func IsAdmin(id ports.Identity) bool {
	return id.EvaluatorID != "" && id.IsAdmin
}

// Authorize evaluates rule before a core operation runs.
func Authorize(id ports.Identity, rule Rule) error {
	if rule(id) {
		return nil
	}
	return fmt.Errorf("caller %q: %w", id.EvaluatorID, ports.ErrForbidden)
}
