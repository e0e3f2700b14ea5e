package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// endpointDocs describes each route in the GET /api index. Routes missing
// here are still listed, with an empty description.
var endpointDocs = map[string]string{
	"GET /api":                                 "Serves this list of every available endpoint",
	"GET /api/topics":                          "Serves all topics",
	"GET /api/topics/{slug}":                   "Serves one topic",
	"GET /api/articles":                        "Serves a page of articles. Queries: sort_by, order, author, topic, limit, p",
	"GET /api/articles/{article_id}":           "Serves one article with its comment_count",
	"PATCH /api/articles/{article_id}":         "Adds inc_votes to an article's votes and serves the updated article",
	"GET /api/articles/{article_id}/comments":  "Serves the comments on an article. Queries: sort_by, order",
	"POST /api/articles/{article_id}/comments": "Posts a comment {created_by, body} and serves it",
	"PATCH /api/comments/{comment_id}":         "Adds inc_votes to a comment's votes and serves the updated comment",
	"DELETE /api/comments/{comment_id}":        "Deletes a comment. Responds 204 with no body",
	"GET /api/users":                           "Serves all users",
	"GET /api/users/{username}":                "Serves one user",
}

type endpoint struct {
	Description string `json:"description"`
}

// APIIndex serves {"endpoints": {"GET /api/topics": {...}, ...}} built by
// walking the mounted router, so the index cannot drift from the routes.
func APIIndex(routes chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		endpoints, err := Endpoints(routes)
		if err != nil {
			renderError(w, r, http.StatusInternalServerError, MsgInternal)
			return
		}
		writeJSON(w, r, http.StatusOK, struct {
			Endpoints map[string]endpoint `json:"endpoints"`
		}{endpoints})
	}
}

// Endpoints lists every "METHOD /path" the router answers.
func Endpoints(routes chi.Routes) (map[string]endpoint, error) {
	endpoints := make(map[string]endpoint)
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.ReplaceAll(route, "/*/", "/")
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		key := method + " " + route
		endpoints[key] = endpoint{Description: endpointDocs[key]}
		return nil
	})
	return endpoints, err
}
