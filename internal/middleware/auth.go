package middleware

import (
	"net/http"

	"blogcms-be/internal/auth"
	"blogcms-be/internal/logger"

	"go.uber.org/zap"
)

// Auth attaches JWT claims to the request context when a valid token is
// present. Missing or unverifiable tokens pass through anonymously; admin
// routes enforce authentication themselves. A stale access_token cookie is
// expired so the browser stops sending it.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Info("ignoring invalid access token",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				if cookie, cerr := r.Cookie(auth.AccessTokenCookie); cerr == nil && cookie.Value == tokenStr {
					http.SetCookie(w, &http.Cookie{
						Name:     auth.AccessTokenCookie,
						Value:    "",
						Path:     "/",
						MaxAge:   -1,
						HttpOnly: true,
						SameSite: http.SameSiteLaxMode,
					})
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.WithClaims(r.Context(), claims)
			ctx = logger.WithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
