package domain

import "time"

// GalleryItem is one image in the public gallery. SortOrder is a dense
// 1-based ranking; the repository keeps it free of duplicates and gaps.
type GalleryItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption,omitempty"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
