package tallyhttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-Id"

// withRequestID tags each request with a ULID and a logger carrying it.
func withRequestID(log *zerolog.Logger) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			id := ulid.Make().String()
			rw.Header().Set(RequestIDHeader, id)

			l := log.With().Str("request_id", id).Logger()
			h.ServeHTTP(rw, r.WithContext(l.WithContext(r.Context())))
		})
	}
}

func withLogging(h http.Handler) http.Handler {
	logFn := func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()

		uri := r.RequestURI
		method := r.Method
		ww := middleware.NewWrapResponseWriter(rw, r.ProtoMajor)
		h.ServeHTTP(ww, r)

		zerolog.Ctx(r.Context()).Debug().
			Str("uri", uri).
			Str("method", method).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
	return http.HandlerFunc(logFn)
}
