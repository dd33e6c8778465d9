// Package geo resolves a visitor's approximate coordinates from their IP address.
package geo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rabie-karouia/EasyDinar/internal/metrics"
	"github.com/tidwall/gjson"
)

// ErrNoLocation is returned when the service answers without usable coordinates.
var ErrNoLocation = errors.New("geolocation response has no loc")

// Point is a latitude/longitude pair.
type Point struct {
	Lat float64
	Lon float64
}

// Valid reports whether p is a finite point on the globe.
func (p Point) Valid() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Lon) &&
		p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Locator resolves an IP address to a Point.
type Locator interface {
	Locate(ctx context.Context, ip string) (Point, error)
}

// IPInfo talks to an ipinfo.io compatible service (GET /{ip}/json → {"loc":"lat,lon"}).
type IPInfo struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
}

// NewIPInfo creates a locator for the service at baseURL.
func NewIPInfo(baseURL, token string, timeout time.Duration) *IPInfo {
	return &IPInfo{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		timeout: timeout,
		http:    &http.Client{},
	}
}

// Locate looks up ip. Loopback and private addresses are resolved from the service's
// view of the caller instead, which is what a local deployment needs.
func (s *IPInfo) Locate(ctx context.Context, ip string) (Point, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	path := "/json"
	if parsed := net.ParseIP(ip); parsed != nil && !parsed.IsLoopback() && !parsed.IsPrivate() {
		path = "/" + parsed.String() + "/json"
	}
	target := s.baseURL + path
	if s.token != "" {
		target += "?" + url.Values{"token": {s.token}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Point{}, fmt.Errorf("build geolocation request: %w", err)
	}

	start := time.Now()
	resp, err := s.http.Do(req)
	if err != nil {
		metrics.ObserveBackendCall("geolocation", 0, time.Since(start))
		return Point{}, fmt.Errorf("geolocation request: %w", err)
	}
	defer resp.Body.Close()
	metrics.ObserveBackendCall("geolocation", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return Point{}, fmt.Errorf("geolocation service returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return Point{}, fmt.Errorf("read geolocation response: %w", err)
	}
	return ParseLoc(gjson.GetBytes(body, "loc").String())
}

// ParseLoc parses a "lat,lon" string.
func ParseLoc(loc string) (Point, error) {
	latStr, lonStr, ok := strings.Cut(loc, ",")
	if !ok {
		return Point{}, ErrNoLocation
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: latitude %q", ErrNoLocation, latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: longitude %q", ErrNoLocation, lonStr)
	}
	p := Point{Lat: lat, Lon: lon}
	if !p.Valid() {
		return Point{}, fmt.Errorf("%w: %q is out of range", ErrNoLocation, loc)
	}
	return p, nil
}
