// Package middleware holds the HTTP interceptors applied around every
// request: request id tagging, response timing, and the admin guard.
package middleware

import (
	"fmt"
	"net/http"
	"time"
)

// ProcessTimeHeader reports the wall-clock time spent producing the
// response, in milliseconds with two decimals and a literal "ms" suffix.
const ProcessTimeHeader = "X-Process-Time"

// Timing stamps every response with the X-Process-Time header,
// including short-circuited responses from downstream middleware.
func Timing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&timingWriter{ResponseWriter: w, start: time.Now()}, r)
	})
}

// timingWriter injects the header just before the status line is
// written, the last point at which headers can still change.
type timingWriter struct {
	http.ResponseWriter
	start       time.Time
	wroteHeader bool
}

func (tw *timingWriter) WriteHeader(code int) {
	if !tw.wroteHeader {
		tw.wroteHeader = true
		elapsed := float64(time.Since(tw.start)) / float64(time.Millisecond)
		tw.Header().Set(ProcessTimeHeader, fmt.Sprintf("%.2fms", elapsed))
	}
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timingWriter) Write(b []byte) (int, error) {
	if !tw.wroteHeader {
		tw.WriteHeader(http.StatusOK)
	}
	return tw.ResponseWriter.Write(b)
}
