// Package parcel turns an uploaded GeoJSON document into the geometry, centroid
// and bounding box used to search for imagery.
package parcel

import (
	"encoding/json"
	"errors"
	"fmt"

	"eudr-checker/eudr"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ErrNoGeometry is returned for a Feature or FeatureCollection that carries
// no usable geometry, and for a geometry without coordinates. It is not an
// input validation error.
var ErrNoGeometry = errors.New("parcel: no geometry found")

type Parcel struct {
	Geometry orb.Geometry
	Centroid orb.Point
	Bound    orb.Bound

	// Raw is the document as uploaded.
	Raw json.RawMessage
}

func invalid(reason string, err error) error {
	return &eudr.InvalidInputError{Reason: reason, Err: err}
}

// Parse decodes a bare geometry, a Feature or a FeatureCollection. For a
// collection the first feature with a non-null geometry is used.
func Parse(data []byte) (*Parcel, error) {
	var head struct {
		Type     string          `json:"type"`
		Geometry json.RawMessage `json:"geometry"`
		Features []struct {
			Geometry json.RawMessage `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, invalid("", err)
	}

	// raw is the JSON of the chosen geometry.
	var (
		g   orb.Geometry
		raw json.RawMessage
	)
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, invalid("feature collection", err)
		}
		for i, f := range fc.Features {
			if f != nil && f.Geometry != nil {
				g = f.Geometry
				if i < len(head.Features) {
					raw = head.Features[i].Geometry
				}
				break
			}
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, invalid("feature", err)
		}
		g, raw = f.Geometry, head.Geometry
	case "":
		return nil, invalid("missing type member", nil)
	default:
		gj, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, invalid(fmt.Sprintf("geometry of type %q", head.Type), err)
		}
		g, raw = gj.Geometry(), data
	}
	if g == nil {
		return nil, ErrNoGeometry
	}
	if _, ok := g.(orb.Point); ok {
		if err := checkPoint(raw); err != nil {
			return nil, err
		}
	}
	if g.Bound().IsEmpty() {
		return nil, ErrNoGeometry
	}

	return &Parcel{
		Geometry: g,
		Centroid: Centroid(g),
		Bound:    g.Bound(),
		Raw:      json.RawMessage(data),
	}, nil
}

// checkPoint rejects a Point whose coordinates decoded to the zero value
// because they were empty or short.
func checkPoint(raw json.RawMessage) error {
	var pt struct {
		Coordinates []float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &pt); err != nil {
		return invalid("point coordinates", err)
	}
	switch len(pt.Coordinates) {
	case 0:
		return ErrNoGeometry
	case 1:
		return invalid("point needs at least two coordinates", nil)
	}
	return nil
}

// Centroid is the point itself for a Point and the planar centroid otherwise.
func Centroid(g orb.Geometry) orb.Point {
	if p, ok := g.(orb.Point); ok {
		return p
	}
	c, _ := planar.CentroidArea(g)
	return c
}
