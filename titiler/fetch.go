// Package titiler requests TileJSON descriptors for STAC items from a TiTiler
// deployment.
package titiler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"eudr-checker/eudr"
	"eudr-checker/metrics"
	"eudr-checker/util"

	"github.com/hashicorp/go-retryablehttp"
	log "github.com/sirupsen/logrus"
)

const service = "titiler"

type Client struct {
	Endpoint string

	http *retryablehttp.Client
}

func New(endpoint string, httpClient *retryablehttp.Client) *Client {
	if httpClient == nil {
		httpClient = util.NewHTTPClient(60 * time.Second)
	}
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		http:     httpClient,
	}
}

// TileJSONURL is the TiTiler STAC endpoint for one asset of an item.
func (c *Client) TileJSONURL(itemHref, asset string) string {
	v := make(url.Values)
	v.Set("url", itemHref)
	v.Set("asset", asset)
	return c.Endpoint + "/stac/tilejson.json?" + v.Encode()
}

// TileJSON fetches the descriptor for asset of the item at itemHref.
// Non-2xx responses are failures.
func (c *Client) TileJSON(ctx context.Context, itemHref, asset string) (tj json.RawMessage, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(service, start, err) }()

	u := c.TileJSONURL(itemHref, asset)
	log.Debugf("Fetching tilejson %q", u)

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, &eudr.UpstreamError{Service: service, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return nil, &eudr.UpstreamError{Service: service, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		buf := new(strings.Builder)
		io.Copy(buf, io.LimitReader(res.Body, 4096))
		return nil, &eudr.UpstreamError{Service: service, StatusCode: res.StatusCode, Body: buf.String()}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &eudr.UpstreamError{Service: service, Err: err}
	}
	if !json.Valid(body) {
		return nil, &eudr.UpstreamError{Service: service, Err: fmt.Errorf("tilejson for %q is not JSON", itemHref)}
	}
	return json.RawMessage(body), nil
}
