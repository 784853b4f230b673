package http

import (
	"net/http"

	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
	"github.com/secmon-lab/caseflow/pkg/utils/logging"
)

const (
	// HeaderRole carries the acting role: client, okw or cdd
	HeaderRole = "X-Caseflow-Role"
	// HeaderClient carries the client reference of a client actor
	HeaderClient = "X-Caseflow-Client"
)

// actorMiddleware binds the actor named by the request headers to the context.
// Authenticating the caller is left to the proxy in front of the server.
func actorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawRole := r.Header.Get(HeaderRole)
		if rawRole == "" {
			http.Error(w, "Actor role is required", http.StatusUnauthorized)
			return
		}

		role, err := types.ParseRole(rawRole)
		if err != nil {
			http.Error(w, "Unknown actor role", http.StatusBadRequest)
			return
		}

		actor := model.Actor{Role: role, ClientRef: r.Header.Get(HeaderClient)}
		ctx := model.ContextWithActor(r.Context(), actor)
		ctx = logging.With(ctx, logging.From(ctx).With("role", role))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireReviewer restricts a route to the OKW and CDD teams
func requireReviewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := model.ActorFromContext(r.Context())
		if err != nil || !actor.Role.IsReviewer() {
			http.Error(w, "Reviewer role is required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
