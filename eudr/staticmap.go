package eudr

import (
	"fmt"
	"net/url"
	"strconv"
)

const staticMapBase = "https://maps.googleapis.com/maps/api/staticmap"

type StaticMapOptions struct {
	Key  string
	Zoom int
	Size string
}

// StaticMapURL builds a Google Static Maps satellite link centered on
// (lon, lat). It reports false when no API key is configured.
func StaticMapURL(lon, lat float64, opts StaticMapOptions) (string, bool) {
	if opts.Key == "" {
		return "", false
	}
	center := strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
	return fmt.Sprintf("%s?center=%s&zoom=%d&size=%s&maptype=satellite&key=%s",
		staticMapBase, center, opts.Zoom, url.QueryEscape(opts.Size), url.QueryEscape(opts.Key)), true
}
