package stac

// CloudCoverField is the eo extension property used for filtering and sorting.
const CloudCoverField = "eo:cloud_cover"

// Comparison is a query extension predicate, e.g. {"lt": 20}.
type Comparison struct {
	Lt  *float64 `json:"lt,omitempty"`
	Lte *float64 `json:"lte,omitempty"`
	Gt  *float64 `json:"gt,omitempty"`
	Gte *float64 `json:"gte,omitempty"`
}

type SortBy struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Collections []string              `json:"collections,omitempty"`
	BBox        []float64             `json:"bbox,omitempty"`
	Datetime    string                `json:"datetime,omitempty"`
	Query       map[string]Comparison `json:"query,omitempty"`
	SortBy      []SortBy              `json:"sortby,omitempty"`
	Limit       int                   `json:"limit,omitempty"`
}

type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
	Type string `json:"type,omitempty"`
}

type Properties struct {
	Datetime   *string  `json:"datetime"`
	CloudCover *float64 `json:"eo:cloud_cover"`
}

type Item struct {
	ID         string      `json:"id"`
	Collection string      `json:"collection"`
	BBox       []float64   `json:"bbox"`
	Properties *Properties `json:"properties"`
	Links      []*Link     `json:"links"`
}

// SelfHref returns the item's rel=self link, or "".
func (i *Item) SelfHref() string {
	for _, l := range i.Links {
		if l != nil && l.Rel == "self" {
			return l.Href
		}
	}
	return ""
}

type SearchResponse struct {
	Type     string  `json:"type"`
	Features []*Item `json:"features"`
	Links    []*Link `json:"links"`
}
