package models

import (
	"encoding/json"
	"time"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

func (t MediaType) Valid() bool {
	return t == MediaImage || t == MediaVideo
}

type MediaItem struct {
	ID          string          `db:"id" json:"id"`
	Year        int             `db:"year" json:"year"`
	SquareIndex int             `db:"square_index" json:"square_index"`
	Place       string          `db:"place" json:"place"`
	Description string          `db:"description" json:"description"`
	Type        MediaType       `db:"media_type" json:"media_type"`
	URL         string          `db:"url" json:"url"`
	Caption     string          `db:"caption" json:"caption"`
	Coords      json.RawMessage `db:"coords" json:"coords"` // opaque geometry, may be nil
	Deleted     bool            `db:"deleted" json:"deleted"`
	CreatedAt   time.Time       `db:"created_at" json:"-"`
}

// MediaFilter is an exact-match filter over the catalog. Zero values mean "any".
type MediaFilter struct {
	Type           MediaType
	Year           *int
	SquareIndex    *int
	IncludeDeleted bool
}

func (f MediaFilter) Match(m *MediaItem) bool {
	if !f.IncludeDeleted && m.Deleted {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.Year != nil && m.Year != *f.Year {
		return false
	}
	if f.SquareIndex != nil && m.SquareIndex != *f.SquareIndex {
		return false
	}
	return true
}
