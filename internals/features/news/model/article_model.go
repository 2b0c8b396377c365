package model

import "time"

// Article adalah satu item RSS yang sudah dirapikan.
type Article struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	TimeAgo     string    `json:"time_ago,omitempty"`
}
