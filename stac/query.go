package stac

import (
	"eudr-checker/eudr"

	"github.com/paulmach/orb"
)

func bbox(b orb.Bound) []float64 {
	return []float64{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()}
}

// RequestRegion builds a search for the least cloudy items over bound within
// datetime, keeping only items with cloud cover strictly below maxCloud.
func RequestRegion(collections []string, bound orb.Bound, datetime string, maxCloud float64, limit int) *SearchRequest {
	lt := maxCloud
	return &SearchRequest{
		Collections: collections,
		BBox:        bbox(bound),
		Datetime:    datetime,
		Query: map[string]Comparison{
			CloudCoverField: {Lt: &lt},
		},
		SortBy: []SortBy{
			{Field: "properties." + CloudCoverField, Direction: "asc"},
		},
		Limit: limit,
	}
}

func requestFromQuery(q *eudr.SceneQuery) *SearchRequest {
	return RequestRegion(q.Collections, q.Bound, q.Datetime, q.MaxCloud, q.Limit)
}
