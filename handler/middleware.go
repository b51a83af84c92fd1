package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/lordvidex/errs/v2"
	"github.com/lordvidex/x/auth"

	"github.com/kodekulture/contexto-server/game"
)

const authHeaderKey = "Authorization"

type contextKey struct {
	name string
}

var playerKey = &contextKey{"player"}

// Errors
var (
	ErrUnauthenticated = errs.B().Code(errs.Unauthenticated).Msg("user is unauthenticated").Err()
)

// Player returns the authenticated player stored in the request context.
func Player(ctx context.Context) *game.Player {
	v, _ := ctx.Value(playerKey).(*game.Player)
	return v
}

// authMiddleware extracts the token from the authorization header of the
// request, validates it, and injects the decoded player into the request
// context. The injected player can be read with Player.
func (h *Handler) authMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			tk, err := decodeHeader(r.Header.Get(authHeaderKey))
			if err != nil {
				writeError(w, err)
				return
			}
			player, err := h.token.Validate(ctx, auth.Token(tk))
			if err != nil {
				writeError(w, ErrUnauthenticated)
				return
			}
			ctx = context.WithValue(ctx, playerKey, &player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func decodeHeader(auth string) (string, error) {
	spl := strings.Split(auth, " ")
	switch len(spl) {
	case 1:
		return spl[0], nil
	case 2:
		if strings.ToLower(spl[0]) != "bearer" {
			return "", ErrUnauthenticated
		}
		return spl[1], nil
	default:
		return "", ErrUnauthenticated
	}
}
