// Package responsewriter provides an http.ResponseWriter wrapper that records
// the response status code and body size for logging and metrics middleware.
package responsewriter

import "net/http"

// Wrapper wraps http.ResponseWriter and records status and bytes written.
type Wrapper struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	wroteHeader  bool
}

// Wrap wraps the given ResponseWriter. The status defaults to 200 until
// WriteHeader is called.
func Wrap(w http.ResponseWriter) *Wrapper {
	return &Wrapper{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader records the status code and forwards it once.
func (w *Wrapper) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Write forwards the body bytes and records their size.
func (w *Wrapper) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

// StatusCode returns the recorded status code.
func (w *Wrapper) StatusCode() int { return w.statusCode }

// BytesWritten returns the number of body bytes written.
func (w *Wrapper) BytesWritten() int { return w.bytesWritten }
