package eudr

import (
	"context"
	"encoding/json"

	"github.com/paulmach/orb"
)

const (
	// Cutoff is the EUDR reference date separating historical from recent imagery.
	Cutoff = "2020-12-31"

	DateFormat = "2006-01-02"
)

// SceneQuery is one catalog search: the least cloudy scenes over Bound
// within Datetime ("start/end" or "../end").
type SceneQuery struct {
	Collections []string
	Bound       orb.Bound
	Datetime    string
	MaxCloud    float64
	Limit       int
}

// Scene is a catalog item reduced to what the selector needs.
type Scene struct {
	ID         string
	Collection string
	Datetime   *string
	CloudCover *float64
	Href       string
}

// Catalog searches an imagery catalog. Implementations return items in
// catalog order.
type Catalog interface {
	Search(ctx context.Context, q *SceneQuery) ([]*Scene, error)
}

// TileRenderer returns a renderable tile descriptor for an item asset.
type TileRenderer interface {
	TileJSON(ctx context.Context, itemHref, asset string) (json.RawMessage, error)
}

type DateWindow struct {
	Cutoff      string `json:"eudr_cutoff"`
	RecentStart string `json:"recent_start"`
	RecentEnd   string `json:"recent_end"`
}

type SceneMatch struct {
	ID       string          `json:"id"`
	Datetime *string         `json:"datetime"`
	Cloud    float64         `json:"cloud"`
	Tile     json.RawMessage `json:"tile"`
}

// TileURL returns the first XYZ template of the tile descriptor, or "".
func (m *SceneMatch) TileURL() string {
	if m == nil {
		return ""
	}
	var tj struct {
		Tiles []string `json:"tiles"`
	}
	if err := json.Unmarshal(m.Tile, &tj); err != nil || len(tj.Tiles) == 0 {
		return ""
	}
	return tj.Tiles[0]
}

type Images struct {
	Pre2021 *SceneMatch
	Recent  *SceneMatch
}

type CheckResult struct {
	Pre2021      *SceneMatch `json:"pre2021,omitempty"`
	Recent       *SceneMatch `json:"recent,omitempty"`
	Centroid     [2]float64  `json:"centroid"`
	BBox         [4]float64  `json:"bbox"`
	Windows      DateWindow  `json:"windows"`
	GoogleStatic *string     `json:"google_static"`
}
