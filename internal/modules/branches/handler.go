package branches

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/dashboard"
	"github.com/rabie-karouia/EasyDinar/internal/geo"
	"github.com/rabie-karouia/EasyDinar/internal/middleware"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
	cmp "maragu.dev/gomponents"
)

// DefaultCenter is where the map opens when the visitor cannot be located (Tunis).
var DefaultCenter = geo.Point{Lat: 36.8065, Lon: 10.1815}

const (
	msgLocationsFailed = "Failed to fetch locations."
	msgNearbyFailed    = "Failed to fetch nearby locations."
	msgNoUserLocation  = "Unable to determine your location for nearby services."
)

// Handler serves the map section.
type Handler struct {
	api      API
	locator  geo.Locator
	renderer rendering.Renderer
	radius   string
}

// NewHandler creates a new Handler. locator may be nil, in which case the visitor is
// never located.
func NewHandler(api API, locator geo.Locator, renderer rendering.Renderer, radius string) *Handler {
	return &Handler{api: api, locator: locator, renderer: renderer, radius: radius}
}

func (h *Handler) Section() dashboard.Section { return dashboard.Bills }
func (h *Handler) Title() string              { return "Find Branch/ATM" }

// snapshot is what the two concurrent lookups produced. Each goroutine owns its fields.
type snapshot struct {
	locations []bankapi.Location
	locErr    error

	user   *geo.Point
	geoErr error
}

// Render fetches the locations and the visitor's coordinates at the same time. Either
// may fail without affecting the other.
func (h *Handler) Render(c echo.Context) (cmp.Node, error) {
	ctx := c.Request().Context()
	snap := h.load(ctx, c.RealIP())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := middleware.FromContext(ctx)
	if snap.locErr != nil {
		logger.Warn("Listing branches and ATMs failed", "error", snap.locErr)
	}
	if snap.geoErr != nil {
		logger.Info("Visitor geolocation unavailable", "error", snap.geoErr)
	}

	errMsg := ""
	if snap.locErr != nil {
		errMsg = bankapi.UserMessage(snap.locErr, msgLocationsFailed)
	}
	return Panel(NewMapData(snap.locations, snap.user), errMsg), nil
}

func (h *Handler) load(ctx context.Context, ip string) snapshot {
	var (
		snap snapshot
		wg   sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		snap.locations, snap.locErr = h.api.ListLocations(ctx)
	}()

	if h.locator != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := h.locator.Locate(ctx, ip)
			if err != nil {
				snap.geoErr = err
				return
			}
			snap.user = &p
		}()
	} else {
		snap.geoErr = errors.New("no locator configured")
	}

	wg.Wait()
	return snap
}

// Nearby handles GET /dashboard/bills/nearby?lat=&lon=. Without usable coordinates the
// visitor is located again from their address.
func (h *Handler) Nearby(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := pointFromQuery(c)
	if !ok && h.locator != nil {
		if p, err := h.locator.Locate(ctx, c.RealIP()); err == nil {
			user, ok = p, true
		} else {
			middleware.FromContext(ctx).Info("Visitor geolocation unavailable", "error", err)
		}
	}
	if !ok {
		locations, err := h.api.ListLocations(ctx)
		if err != nil {
			return h.renderer.RenderPage(c, bankapi.ResponseStatus(err), Panel(NewMapData(nil, nil), bankapi.UserMessage(err, msgLocationsFailed)))
		}
		return h.renderer.RenderPage(c, http.StatusOK, Panel(NewMapData(locations, nil), msgNoUserLocation))
	}

	locations, err := h.api.NearbyLocations(ctx, user.Lat, user.Lon, h.radius)
	if err != nil {
		middleware.FromContext(ctx).Warn("Nearby lookup failed", "error", err)
		return h.renderer.RenderPage(c, bankapi.ResponseStatus(err), Panel(NewMapData(nil, &user), bankapi.UserMessage(err, msgNearbyFailed)))
	}
	return h.renderer.RenderPage(c, http.StatusOK, Panel(NewMapData(locations, &user).Nearby(), ""))
}

// All handles GET /dashboard/bills/all, restoring the unfiltered set. The user marker
// is kept when the page still knows it.
func (h *Handler) All(c echo.Context) error {
	var user *geo.Point
	if p, ok := pointFromQuery(c); ok {
		user = &p
	}

	locations, err := h.api.ListLocations(c.Request().Context())
	if err != nil {
		return h.renderer.RenderPage(c, bankapi.ResponseStatus(err), Panel(NewMapData(nil, user), bankapi.UserMessage(err, msgLocationsFailed)))
	}
	return h.renderer.RenderPage(c, http.StatusOK, Panel(NewMapData(locations, user), ""))
}

func pointFromQuery(c echo.Context) (geo.Point, bool) {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return geo.Point{}, false
	}
	lon, err := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if err != nil {
		return geo.Point{}, false
	}
	p := geo.Point{Lat: lat, Lon: lon}
	return p, p.Valid()
}
