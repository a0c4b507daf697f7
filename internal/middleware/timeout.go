package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type TimeoutConfig struct {
	Duration time.Duration
}

// Timeout bounds the handler chain. The handler goroutine writes into a
// buffer rather than the wire, so when the deadline fires the client gets
// a clean 504 and whatever the late handler still produces is discarded.
func Timeout(config TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), config.Duration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		w := &timeoutWriter{ResponseWriter: c.Writer, headers: make(http.Header)}
		c.Writer = w

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Next()
		}()

		select {
		case <-done:
			w.flush()
		case <-ctx.Done():
			w.discard()
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				rw := w.ResponseWriter
				rw.Header().Set("Content-Type", "application/json; charset=utf-8")
				rw.WriteHeader(http.StatusGatewayTimeout)
				json.NewEncoder(rw).Encode(ErrorResponse{
					Code:    http.StatusGatewayTimeout,
					Message: "request timeout",
					TraceID: c.GetString(ContextRequestID),
				})
			}
		}
	}
}

// timeoutWriter buffers the handler's response. flush and discard are
// called by the middleware goroutine; everything else by the handler's.
type timeoutWriter struct {
	gin.ResponseWriter

	mu          sync.Mutex
	headers     http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
	timedOut    bool
}

func (w *timeoutWriter) Header() http.Header { return w.headers }

func (w *timeoutWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut || w.wroteHeader {
		return
	}
	w.status = code
	w.wroteHeader = true
}

// WriteHeaderNow is a no-op; the status goes out when flush runs.
func (w *timeoutWriter) WriteHeaderNow() {}

func (w *timeoutWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return 0, nil
	}
	return w.body.Write(b)
}

func (w *timeoutWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *timeoutWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wroteHeader || w.body.Len() > 0
}

func (w *timeoutWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return http.StatusGatewayTimeout
	}
	if w.wroteHeader {
		return w.status
	}
	return w.ResponseWriter.Status()
}

func (w *timeoutWriter) Size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.body.Len()
}

func (w *timeoutWriter) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}

	dst := w.ResponseWriter.Header()
	for k, v := range w.headers {
		dst[k] = v
	}
	if w.wroteHeader {
		w.ResponseWriter.WriteHeader(w.status)
	}
	w.ResponseWriter.Write(w.body.Bytes())
}

func (w *timeoutWriter) discard() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.timedOut = true
}
