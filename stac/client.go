// Package stac is a minimal STAC API item-search client.
package stac

import (
	"strings"

	"eudr-checker/util"

	"github.com/hashicorp/go-retryablehttp"
)

type Client struct {
	Endpoint string

	http *retryablehttp.Client
}

// New returns a catalog client for the STAC API rooted at endpoint.
func New(endpoint string, httpClient *retryablehttp.Client) *Client {
	if httpClient == nil {
		httpClient = util.NewHTTPClient(0)
	}
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		http:     httpClient,
	}
}

// itemHref is the canonical item URL, used when an item has no self link.
func (c *Client) itemHref(it *Item) string {
	return c.Endpoint + "/collections/" + it.Collection + "/items/" + it.ID
}
