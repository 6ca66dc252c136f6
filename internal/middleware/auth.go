package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/Certs365/auth-service/internal/session"
)

// unexported, collision-proof context key
type principalContextKeyType struct{}

var principalKey = principalContextKeyType{}

// Principal is the authenticated actor attached to the request context
// once the session gate has passed.
type Principal struct {
	UserID    string
	SourceApp string
}

// PrincipalFromContext extracts the authenticated principal from context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// AuthMiddleware is the session gate: it answers, per request, whether
// the caller is authenticated against the server-side session store.
type AuthMiddleware struct {
	Store session.Store

	// LoginPath is where unauthenticated browser navigation is sent
	// instead of a bare 401.
	LoginPath string
}

func NewAuthMiddleware(store session.Store, loginPath string) *AuthMiddleware {
	if loginPath == "" {
		loginPath = "/login"
	}
	return &AuthMiddleware{Store: store, LoginPath: loginPath}
}

// RequireSession gates browser-navigated routes. Anything that is not
// an authenticated session redirects to the login entry point.
func (a *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session cookie
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, a.LoginPath, http.StatusFound)
			return
		}

		sessionID := cookie.Value

		// 2. Load session
		sess, err := a.Store.Get(r.Context(), sessionID)
		if err != nil || sess == nil {
			http.Redirect(w, r, a.LoginPath, http.StatusFound)
			return
		}

		// 3. Enforce session expiry
		if time.Now().After(sess.ExpiresAt) {
			_ = a.Store.Delete(r.Context(), sessionID)
			http.Redirect(w, r, a.LoginPath, http.StatusFound)
			return
		}

		// 4. Attach the principal to context
		ctx := context.WithValue(r.Context(), principalKey, Principal{
			UserID:    sess.UserID,
			SourceApp: sess.SourceApp,
		})

		// 5. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
