// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data, with `json:"..."` struct tags
// controlling how encoding/json names each field on the wire.
package model

import "time"

// Article is a news article joined with its live comment count.
//
// CommentCount is never stored: every query that returns an Article computes
// it with LEFT JOIN comments ... COUNT(comment_id) GROUP BY article_id.
type Article struct {
	ArticleID    int64     `json:"article_id"    db:"article_id"`
	Title        string    `json:"title"         db:"title"`
	Body         string    `json:"body"          db:"body"`
	Topic        string    `json:"topic"         db:"topic"`  // Topic.Slug
	Author       string    `json:"author"        db:"author"` // User.Username
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
	Votes        int       `json:"votes"         db:"votes"`
	CommentCount int       `json:"comment_count" db:"comment_count"`
}
