package repository

import "fmt"

// ORDER BY cannot take placeholders, so the column and direction are
// interpolated. Only names present in these maps ever reach the SQL text.

var articleSortExpr = map[string]string{
	"title":         "a.title",
	"article_id":    "a.article_id",
	"author":        "a.author",
	"topic":         "a.topic",
	"body":          "a.body",
	"created_at":    "a.created_at",
	"votes":         "a.votes",
	"comment_count": "comment_count",
}

var commentSortExpr = map[string]string{
	"comment_id": "comment_id",
	"votes":      "votes",
	"created_at": "created_at",
	"author":     "author",
	"body":       "body",
}

func direction(order string) (string, error) {
	switch order {
	case "asc":
		return "ASC", nil
	case "desc":
		return "DESC", nil
	}
	return "", fmt.Errorf("unsupported sort order %q", order)
}

// ArticleOrderBy renders the ORDER BY list for an article listing. The
// article_id tiebreaker keeps pages disjoint when the sort column has ties.
func ArticleOrderBy(sortBy, order string) (string, error) {
	expr, ok := articleSortExpr[sortBy]
	if !ok {
		return "", fmt.Errorf("unsupported article sort column %q", sortBy)
	}
	dir, err := direction(order)
	if err != nil {
		return "", err
	}
	if sortBy == "article_id" {
		return expr + " " + dir, nil
	}
	return fmt.Sprintf("%s %s, a.article_id %s", expr, dir, dir), nil
}

// CommentOrderBy renders the ORDER BY list for a comment listing.
func CommentOrderBy(sortBy, order string) (string, error) {
	expr, ok := commentSortExpr[sortBy]
	if !ok {
		return "", fmt.Errorf("unsupported comment sort column %q", sortBy)
	}
	dir, err := direction(order)
	if err != nil {
		return "", err
	}
	if sortBy == "comment_id" {
		return expr + " " + dir, nil
	}
	return fmt.Sprintf("%s %s, comment_id %s", expr, dir, dir), nil
}
