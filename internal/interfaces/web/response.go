package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rahmatrdn/uclboard/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type mappedError struct {
	HTTPStatus int
	// Message is what the page shows; backend validation messages pass
	// through verbatim, everything else gets a generic line.
	Message  string
	NotAdmin bool
}

// renderPage executes the named page template into a buffer first so a
// template failure can still produce a clean error page.
func renderPage(ctx context.Context, w http.ResponseWriter, status int, name string, data any) {
	ctx, span := startSpan(ctx, "web.renderPage")
	defer span.End()

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		writeInternalError(ctx, w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "web.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	_, span := startSpan(ctx, "web.writeInternalError")
	defer span.End()

	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// mapError converts a usecase error into page state. Not-found is
// deliberately absent: handlers render their own "no players found" pages
// instead of an error page.
func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{
			HTTPStatus: http.StatusForbidden,
			Message:    "You are not an admin. This action needs admin access.",
			NotAdmin:   true,
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Message:    "Your session has expired. Please sign in again.",
		}
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrConfirmationRequired):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Message:    trimSentinel(err),
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Message:    "No players found.",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusBadGateway,
			Message:    "Failed to load data. Please refresh the page.",
		}
	}
}

// trimSentinel strips the sentinel text and any wrapping prefixes
// ("create player: invalid input: ...") so the page shows only the human
// part of the message.
func trimSentinel(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{usecase.ErrInvalidInput, usecase.ErrConfirmationRequired} {
		marker := sentinel.Error() + ": "
		if idx := strings.LastIndex(msg, marker); idx >= 0 {
			return msg[idx+len(marker):]
		}
	}
	return msg
}
