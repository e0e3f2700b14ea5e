package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON or writeError so that success
// bodies are wrapped in a named key ({"article": ...}) and every failure,
// whatever its status, has the shape {"msg": "..."}.

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sakif/nc-news/internal/apperror"
)

// MsgInternal is all a client learns about a 5xx.
const MsgInternal = "Internal server error"

// ErrResponse is the body of every error reply.
type ErrResponse struct {
	HTTPStatusCode int    `json:"-"`
	Msg            string `json:"msg"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// writeJSON sends v as JSON with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// writeError maps an error kind to an HTTP status. This is the only place
// that knows about both apperror and status codes.
//
//	ErrValidation, ErrInvalidType -> 400
//	ErrNotFound                   -> 404
//	ErrConflict                   -> 409
//	anything else                 -> 500, logged, message hidden
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		logger.Error("unhandled error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		renderError(w, r, http.StatusInternalServerError, MsgInternal)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrInvalidType):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		status = http.StatusConflict
	}
	renderError(w, r, status, appErr.Message)
}

func renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if err := render.Render(w, r, &ErrResponse{HTTPStatusCode: status, Msg: msg}); err != nil {
		http.Error(w, msg, status)
	}
}

// NotFound and MethodNotAllowed replace chi's plain-text defaults.
func NotFound(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusNotFound, "Route not found")
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}

// pathID reads a numeric path parameter. Anything that is not a base-10
// integer is an InvalidType error, never a 500.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, apperror.InvalidType(name)
	}
	return id, nil
}

// voteRequest is the body of both PATCH endpoints. IncVotes stays raw so
// a missing or null value can be told apart from a wrongly typed one.
type voteRequest struct {
	IncVotes json.RawMessage `json:"inc_votes"`
}

// decodeVotes returns the vote delta from the request body. An empty body,
// a missing key or null all mean 0. A non-integer is InvalidType.
func decodeVotes(r *http.Request) (int, error) {
	var req voteRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		return 0, apperror.ValidationFailed("body", "Request body must be valid JSON")
	}
	if len(req.IncVotes) == 0 || string(req.IncVotes) == "null" {
		return 0, nil
	}

	var delta int
	if err := json.Unmarshal(req.IncVotes, &delta); err != nil {
		return 0, apperror.InvalidType("inc_votes")
	}
	return delta, nil
}
