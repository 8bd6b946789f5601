package models

import "encoding/json"

type CompositeCell struct {
	Score  float64         `json:"score"`
	Coords json.RawMessage `json:"coords"`
}

// CompositeMap is keyed by square index.
type CompositeMap map[int]CompositeCell
