package middleware

import (
	"log"
	"net/http"
	"runtime/debug"
	"strings"

	"algorithm_guessr/internal/common"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Recoverer turns a handler panic into the generic JSON 500.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.Printf("ERROR: panic serving %s %s [%s]: %v\n%s",
				r.Method, r.URL.Path, chiMiddleware.GetReqID(r.Context()), rec, debug.Stack())
			common.RespondWithError(w, http.StatusInternalServerError, common.MsgInternal)
		}()
		next.ServeHTTP(w, r)
	})
}

// Preflight answers every OPTIONS request with 204 before routing.
func Preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CORSDefaults stamps the permissive CORS headers on every response. The cors
// handler that follows overwrites them for requests that carry an Origin.
func CORSDefaults(methods, headers []string) func(http.Handler) http.Handler {
	allowMethods := strings.Join(methods, ", ")
	allowHeaders := strings.Join(headers, ", ")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			next.ServeHTTP(w, r)
		})
	}
}
