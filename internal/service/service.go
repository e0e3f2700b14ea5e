// Package service holds the business rules of the news API.
//
// Handler (HTTP)   -> parses requests, writes responses
// Service (rules)  -> validates options, decides outcomes, logs mutations
// Repository (SQL) -> runs the parameterised queries
//
// Services take repository interfaces, never a concrete store, so the
// same code runs over SQLite, PostgreSQL or the in-memory mocks in the
// tests. They return *apperror.AppError values and know nothing of HTTP.
package service

import (
	"errors"
	"log/slog"

	"github.com/sakif/nc-news/internal/apperror"
)

// Sort directions accepted by every listing.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

func validOrder(order string) bool {
	return order == OrderAsc || order == OrderDesc
}

// logFailure logs err at error level unless it is a client error that the
// handler will report as 4xx.
func logFailure(logger *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return
	}
	args := make([]any, 0, len(attrs)+1)
	for _, a := range attrs {
		args = append(args, a)
	}
	args = append(args, slog.String("error", err.Error()))
	logger.Error(msg, args...)
}
