package core

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const UserAgent = "launchwiz/launchwiz"

// NewHTTPClient builds the client shared by every pipeline stage. Retries are handled
// here and nowhere else.
func NewHTTPClient(timeout time.Duration, retries int) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("User-Agent", UserAgent)
}
