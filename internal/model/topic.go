package model

type Topic struct {
	Slug        string `json:"slug"        db:"slug"`
	Description string `json:"description" db:"description"`
}
