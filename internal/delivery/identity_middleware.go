package delivery

import (
	"context"
	"net/http"

	"github.com/Vovarama1992/ambiance/internal/ports"
)

type identityKey struct{}

func WithIdentity(ctx context.Context, id ports.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) ports.Identity {
	id, _ := ctx.Value(identityKey{}).(ports.Identity)
	return id
}

// IdentityMiddleware resolves the X-Auth token into the caller identity.
// It authenticates nothing itself; the resolver is the identity collaborator.
func IdentityMiddleware(resolver ports.IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			token := r.Header.Get("X-Auth")
			if token == "" {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: "missing token"})
				return
			}

			id, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: "invalid token"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
