package api

import (
	"net/http"
	"runtime/debug"
	"time"

	"team-maker/api/apiutil"

	"github.com/rs/zerolog/log"
)

type Middleware func(http.Handler) http.Handler

// ChainMiddleware aplica os middlewares de fora pra dentro:
// o primeiro da lista é o primeiro a ver a request
func ChainMiddleware(handler http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("elapsed", time.Since(start)).
			Msg("request atendida")
	})
}

func WithRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Msg("panic atendendo a request")

				apiutil.WriteError(w, http.StatusInternalServerError, apiutil.ErrorCodeInternal, "internal server error", nil)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
