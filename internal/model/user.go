package model

// User is a public author profile. Username is the primary identity; articles
// and comments reference it directly.
type User struct {
	Username  string `json:"username"   db:"username"`
	Name      string `json:"name"       db:"name"`
	AvatarURL string `json:"avatar_url" db:"avatar_url"`
}
