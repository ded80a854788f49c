// internal/app/features/errors/logger.go
package errors

import (
	"fmt"
	"html"
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with user-facing error responses
// so handlers can report a failure in one call.
type ErrorLogger struct {
	logger *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger backed by the given zap logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{logger: logger}
}

// LogServerError logs err at error level and shows the user a friendly
// error page with userMsg and a link back to fallbackURL.
func (l *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, fallbackURL string) {
	l.log(r, logMsg, err)
	w.WriteHeader(http.StatusInternalServerError)
	RenderForbidden(w, r, userMsg, fallbackURL)
}

// LogBadRequest logs a client error at warn level and shows the user a
// friendly error page with userMsg and a link back to fallbackURL.
func (l *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, fallbackURL string) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.logger.Warn(logMsg, fields...)
	w.WriteHeader(http.StatusBadRequest)
	RenderForbidden(w, r, userMsg, fallbackURL)
}

// LogForbidden logs a denied action at warn level and shows the user the
// access-denied page with userMsg and a link back to fallbackURL.
func (l *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, logMsg, userMsg, fallbackURL string) {
	l.logger.Warn(logMsg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	w.WriteHeader(http.StatusForbidden)
	RenderForbidden(w, r, userMsg, fallbackURL)
}

// HTMXLogServerError logs err at error level and returns a small HTML
// fragment suitable for swapping into an HTMX target.
func (l *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, fallbackURL string) {
	l.log(r, logMsg, err)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintf(w, `<div class="error-banner" role="alert">%s <a href="%s">Go back</a></div>`,
		html.EscapeString(userMsg), html.EscapeString(fallbackURL))
}

func (l *ErrorLogger) log(r *http.Request, logMsg string, err error) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.logger.Error(logMsg, fields...)
}
