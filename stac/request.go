package stac

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"eudr-checker/eudr"
	"eudr-checker/metrics"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-retryablehttp"
	log "github.com/sirupsen/logrus"
)

const service = "catalog"

func upstream(err error) error {
	return &eudr.UpstreamError{Service: service, Err: err}
}

// ItemSearch posts req to the /search endpoint and decodes the first page.
func (c *Client) ItemSearch(ctx context.Context, req *SearchRequest) (resp *SearchResponse, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(service, start, err) }()

	j, err := json.Marshal(req)
	if err != nil {
		return nil, upstream(fmt.Errorf("encode search request: %w", err))
	}
	if log.GetLevel() >= log.DebugLevel {
		log.Debugf("Catalog search %s", spew.Sdump(req))
	}

	r, err := retryablehttp.NewRequestWithContext(ctx, "POST", c.Endpoint+"/search", bytes.NewReader(j))
	if err != nil {
		return nil, upstream(err)
	}
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "application/geo+json")

	res, err := c.http.Do(r)
	if err != nil {
		return nil, upstream(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		buf := new(strings.Builder)
		io.Copy(buf, io.LimitReader(res.Body, 4096))
		return nil, &eudr.UpstreamError{Service: service, StatusCode: res.StatusCode, Body: buf.String()}
	}

	resp = &SearchResponse{}
	if err := json.NewDecoder(res.Body).Decode(resp); err != nil {
		return nil, upstream(fmt.Errorf("decode search response: %w", err))
	}
	log.Debugf("Catalog returned %d items in %v", len(resp.Features), time.Since(start))
	return resp, nil
}

// Search implements eudr.Catalog.
func (c *Client) Search(ctx context.Context, q *eudr.SceneQuery) ([]*eudr.Scene, error) {
	resp, err := c.ItemSearch(ctx, requestFromQuery(q))
	if err != nil {
		return nil, err
	}
	scenes := make([]*eudr.Scene, 0, len(resp.Features))
	for _, it := range resp.Features {
		if it == nil {
			continue
		}
		s := &eudr.Scene{
			ID:         it.ID,
			Collection: it.Collection,
			Href:       it.SelfHref(),
		}
		if s.Href == "" {
			s.Href = c.itemHref(it)
		}
		if it.Properties != nil {
			s.Datetime = it.Properties.Datetime
			s.CloudCover = it.Properties.CloudCover
		}
		scenes = append(scenes, s)
	}
	return scenes, nil
}
