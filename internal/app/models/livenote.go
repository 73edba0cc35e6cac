package models

import "time"

// LiveNote is a collaboratively edited rich-text document. It lives outside
// the hierarchy with an optional unit association. ActiveEditors mirrors
// the realtime room membership and is overwritten by the broker on every
// join and leave.
type LiveNote struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	UnitID        *int64    `json:"unit_id"`
	ViewCount     int64     `json:"view_count"`
	ActiveEditors int       `json:"active_editors"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
