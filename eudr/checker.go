// Package eudr selects the imagery used to compare a parcel before the EUDR
// cutoff with its recent state.
package eudr

import (
	"context"
	"fmt"
	"time"

	"eudr-checker/metrics"

	"github.com/paulmach/orb"
	log "github.com/sirupsen/logrus"
)

// Checker is built once at startup and is safe for concurrent use; none of
// its fields are modified after construction.
type Checker struct {
	Catalog Catalog
	Tiles   TileRenderer

	Collections []string
	MaxCloud    float64
	Asset       string
	RecentDays  int
	StaticMap   StaticMapOptions

	Location *time.Location
	Now      func() time.Time
}

func (c *Checker) today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	if c.Location != nil {
		return now().In(c.Location)
	}
	return now()
}

// Windows returns the date window for a check made now.
func (c *Checker) Windows() DateWindow {
	return Windows(c.today(), c.RecentDays)
}

func (c *Checker) search(ctx context.Context, bound orb.Bound, datetime string) ([]*Scene, error) {
	return c.Catalog.Search(ctx, &SceneQuery{
		Collections: c.Collections,
		Bound:       bound,
		Datetime:    datetime,
		MaxCloud:    c.MaxCloud,
		Limit:       1,
	})
}

// best picks the least cloudy scene strictly under the threshold. Equal
// cloud cover keeps catalog order.
func (c *Checker) best(scenes []*Scene) *Scene {
	var best *Scene
	for _, s := range scenes {
		if s == nil || s.CloudCover == nil || *s.CloudCover >= c.MaxCloud {
			continue
		}
		if best == nil || *s.CloudCover < *best.CloudCover {
			best = s
		}
	}
	return best
}

func (c *Checker) match(ctx context.Context, s *Scene) (*SceneMatch, error) {
	tile, err := c.Tiles.TileJSON(ctx, s.Href, c.Asset)
	if err != nil {
		return nil, fmt.Errorf("tilejson for %q: %w", s.ID, err)
	}
	return &SceneMatch{
		ID:       s.ID,
		Datetime: s.Datetime,
		Cloud:    *s.CloudCover,
		Tile:     tile,
	}, nil
}

func countLookup(name string, s *Scene) {
	result := "found"
	if s == nil {
		result = "none"
	}
	metrics.SceneLookups.WithLabelValues(name, result).Inc()
}

// FindBestImages runs the pre-cutoff and recent searches over bound and
// resolves a tile descriptor for each scene found. Any upstream failure
// aborts the whole lookup.
func (c *Checker) FindBestImages(ctx context.Context, bound orb.Bound, w DateWindow) (*Images, error) {
	preScenes, err := c.search(ctx, bound, w.PreCutoffRange())
	if err != nil {
		return nil, fmt.Errorf("pre-cutoff search: %w", err)
	}
	recentScenes, err := c.search(ctx, bound, w.RecentRange())
	if err != nil {
		return nil, fmt.Errorf("recent search: %w", err)
	}

	pre, recent := c.best(preScenes), c.best(recentScenes)
	countLookup("pre2021", pre)
	countLookup("recent", recent)

	out := &Images{}
	if pre != nil {
		log.Debugf("Pre-cutoff scene %q, cloud %.2f", pre.ID, *pre.CloudCover)
		if out.Pre2021, err = c.match(ctx, pre); err != nil {
			return nil, err
		}
	}
	if recent != nil {
		log.Debugf("Recent scene %q, cloud %.2f", recent.ID, *recent.CloudCover)
		if out.Recent, err = c.match(ctx, recent); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Check runs the full lookup for a parcel given its centroid and bound.
func (c *Checker) Check(ctx context.Context, centroid orb.Point, bound orb.Bound) (*CheckResult, error) {
	w := c.Windows()

	t := time.Now()
	images, err := c.FindBestImages(ctx, bound, w)
	if err != nil {
		return nil, err
	}
	log.Debugf("Image lookup in %v", time.Since(t))

	res := &CheckResult{
		Pre2021:  images.Pre2021,
		Recent:   images.Recent,
		Centroid: [2]float64{centroid.Lon(), centroid.Lat()},
		BBox:     [4]float64{bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat()},
		Windows:  w,
	}
	if u, ok := StaticMapURL(centroid.Lon(), centroid.Lat(), c.StaticMap); ok {
		res.GoogleStatic = &u
	}
	return res, nil
}
