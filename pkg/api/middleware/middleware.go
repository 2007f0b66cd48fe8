package middleware

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cbodonnell/digipet/pkg/log"
	"github.com/google/uuid"
)

type ContextKey int

const (
	// RequestIDContextKey is the key used to store the request ID in the request context
	RequestIDContextKey ContextKey = iota
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// NewRequestIDMiddleware reuses a valid incoming request ID or generates a new one,
// echoes it in the response and stores it in the request context.
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID, err := uuid.Parse(r.Header.Get(RequestIDHeader))
			if err != nil {
				requestID = uuid.New()
			}
			w.Header().Set(RequestIDHeader, requestID.String())
			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestID returns the request ID stored by NewRequestIDMiddleware, if any.
func RequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDContextKey).(string)
	return requestID
}

// NewCORSMiddleware sets the CORS headers on every response and answers preflight requests.
func NewCORSMiddleware(allowOrigin string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", RequestIDHeader)
			w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewLoggingMiddleware logs every request once it has been served.
func NewLoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			log.Debug("%s %s %d %s request_id=%s", r.Method, r.URL.RequestURI(), recorder.status, time.Since(start), RequestID(r.Context()))
		})
	}
}

// statusRecorder captures the response status. It passes Hijack through so
// websocket upgrades still work behind the middleware.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
