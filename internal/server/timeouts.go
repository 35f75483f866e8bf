// internal/server/timeouts.go
//
// HTTP server helper with timeouts.
//
//   • ReadTimeout   – abort slow-loris headers (10 s)
//   • WriteTimeout  – cap total response time; a page load makes two
//     sequential game API calls, so it covers twice the upstream timeout
//   • IdleTimeout   – close keep-alives on idle clients (60 s)

package server

import (
	"net/http"
	"time"
)

const (
	writeSlack      = 5 * time.Second  // added on top of the upstream budget
	defaultUpstream = 10 * time.Second // matches the game client default
	upstreamCalls   = 2
)

// New constructs an *http.Server.  upstream is the game API timeout.
func New(addr string, handler http.Handler, upstream time.Duration) *http.Server {
	if upstream <= 0 {
		upstream = defaultUpstream
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      upstreamCalls*upstream + writeSlack,
		IdleTimeout:       60 * time.Second,
	}
}
