package middlewares

import (
	"context"
	"net/http"
)

// HijackedConnectionCloser cancels the request context once the server context
// is done. http.Server.Shutdown does not track hijacked connections, so
// websocket handlers rely on it to finish.
func HijackedConnectionCloser(ctx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqCtx, cancel := context.WithCancel(r.Context())
			defer cancel()

			stop := context.AfterFunc(ctx, cancel)
			defer stop()

			next.ServeHTTP(w, r.WithContext(reqCtx))
		})
	}
}
