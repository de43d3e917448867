package util

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	log "github.com/sirupsen/logrus"
)

// NewHTTPClient returns the outbound client used for catalog and tile calls.
// Upstream failures are never retried. A zero timeout leaves deadlines to the
// request context.
func NewHTTPClient(timeout time.Duration) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.HTTPClient = &http.Client{Timeout: timeout}
	client.Logger = nil
	if log.GetLevel() >= log.DebugLevel {
		client.Logger = log.StandardLogger()
	}
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return client
}
