package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
	"github.com/ccis-arch/avacc/internal/platform/logger"
	"github.com/ccis-arch/avacc/internal/ports/auth"
)

// SignIn persiste la identidad verificada y devuelve el actor (users.Service).
type SignIn interface {
	SignIn(ctx context.Context, c auth.Claims) (auth.Actor, error)
}

// AuthContext:
// - Si verifier != nil y viene Bearer token => intenta Verify() y hace sign-in.
// - Si verifier == nil => modo dev: X-Debug-User-ID (+ Name/Email opcionales).
// - Sin identidad el request sigue sin actor; el gate decide 401.
// - Si el sign-in falla por el store => 503, no se sigue sin actor.
// - Token rechazado => sin actor; proveedor caído (ErrUnavailable) => 503.
func AuthContext(verifier auth.AuthVerifier, users SignIn, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok, err := identify(r, verifier, log)
			if err != nil {
				log.Warn("identity provider unavailable", map[string]any{"error": err})
				httpx.WriteError(w, err)
				return
			}
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := users.SignIn(r.Context(), claims)
			if err != nil {
				log.Error("sign-in failed", map[string]any{"subject": claims.Subject, "error": err})
				httpx.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	}
}

func identify(r *http.Request, verifier auth.AuthVerifier, log logger.Logger) (auth.Claims, bool, error) {
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID"))
		if uid == "" {
			return auth.Claims{}, false, nil
		}
		return auth.Claims{
			Subject: uid,
			Name:    strings.TrimSpace(r.Header.Get("X-Debug-User-Name")),
			Email:   strings.TrimSpace(r.Header.Get("X-Debug-User-Email")),
		}, true, nil
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false, nil
	}
	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		if errors.Is(err, apperr.ErrUnavailable) {
			return auth.Claims{}, false, err
		}
		log.Debug("token rejected", map[string]any{"error": err})
		return auth.Claims{}, false, nil
	}
	return claims, true, nil
}

// GetActor devuelve el actor que dejó AuthContext.
func GetActor(ctx context.Context) (auth.Actor, bool) {
	return auth.ActorFrom(ctx)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
