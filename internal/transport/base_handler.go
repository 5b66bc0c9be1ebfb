package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string                     `json:"error"`
	Details []internal.ValidationError `json:"details,omitempty"`
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes {"error": message}.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.writeError(w, status, ErrorResponse{Error: message})
}

func (h *BaseHandler) writeError(w http.ResponseWriter, status int, body ErrorResponse) {
	if status >= http.StatusInternalServerError {
		h.Logger.Error("http error", "status", status, "message", body.Error)
	} else {
		h.Logger.Warn("http error", "status", status, "message", body.Error)
	}
	h.WriteJSON(w, status, body)
}

// HandleServiceError maps an error returned by a service to a response.
// Anything that is not an AppError, and every 5xx, reaches the client as a
// generic message; the cause is only logged.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		logger.From(r.Context()).ErrorContext(r.Context(), "unhandled service error",
			"method", r.Method, "path", r.URL.Path, "error", err)
		h.WriteError(w, http.StatusInternalServerError, internal.MsgInternalServerError)
		return
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.From(r.Context()).ErrorContext(r.Context(), "internal error",
			"method", r.Method, "path", r.URL.Path, "message", appErr.Message, "error", appErr.Cause)
		h.WriteError(w, appErr.StatusCode, internal.MsgInternalServerError)
		return
	}

	body := ErrorResponse{Error: appErr.Message}
	if details, ok := appErr.Details.(internal.ValidationErrors); ok && len(details.Errors) > 0 {
		body.Error = appErr.GetDetailedMessage()
		body.Details = details.Errors
	}
	h.writeError(w, appErr.StatusCode, body)
}

// DecodeJSON decodes the request body into dst. An empty body is not an
// error so that optional-body endpoints can fall back to query parameters.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return internal.NewValidationError("invalid request body", internal.ErrCodeInvalidRequestBody).WithCause(err)
}

// LookupParam reads a lookup key from the query string, falling back to a
// string field of the same name in a JSON body. It returns "" when neither
// carries a non-empty value.
func (h *BaseHandler) LookupParam(r *http.Request, name string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(name)); v != "" {
		return v
	}
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return ""
	}
	if v, ok := body[name].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// ExtractBearerFromHeader returns the Authorization header when it starts
// with "Bearer ", or "" otherwise. An empty credential after the prefix is
// left for token verification to reject.
func (h *BaseHandler) ExtractBearerFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return authHeader
}
