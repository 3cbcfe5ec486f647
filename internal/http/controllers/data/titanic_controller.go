// Package data contains the controllers for the read-only data views
// proxied from the gateway.
package data

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kjunlab/authfront/internal/gateway"
	httperrors "github.com/kjunlab/authfront/internal/http/errors"
	"github.com/kjunlab/authfront/internal/http/helpers"
	"github.com/kjunlab/authfront/internal/observability/logger"
)

const (
	titanicCacheKey = "titanic:top10"
	titanicCacheTTL = 30 * time.Second
)

// TitanicFetcher is the gateway dependency of the titanic view.
type TitanicFetcher interface {
	TitanicTop10(ctx context.Context) ([]gateway.Passenger, error)
}

// TitanicController serves the titanic top-10 view with a short local
// cache so page reloads do not hammer the gateway.
type TitanicController struct {
	gw    TitanicFetcher
	cache *gocache.Cache
}

// NewTitanicController creates a new TitanicController.
func NewTitanicController(gw TitanicFetcher) *TitanicController {
	return &TitanicController{
		gw:    gw,
		cache: gocache.New(titanicCacheTTL, 2*titanicCacheTTL),
	}
}

type titanicResponse struct {
	Success bool                `json:"success"`
	Data    []gateway.Passenger `json:"data"`
}

// Top10 handles GET /api/titanic/top10.
func (c *TitanicController) Top10(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("TitanicController.Top10"))

	if v, ok := c.cache.Get(titanicCacheKey); ok {
		if rows, ok := v.([]gateway.Passenger); ok {
			helpers.WriteJSON(w, http.StatusOK, titanicResponse{Success: true, Data: rows})
			return
		}
	}

	rows, err := c.gw.TitanicTop10(ctx)
	if err != nil {
		log.Warn("titanic fetch failed", logger.Err(err))
		httperrors.WriteError(w, classifyUpstream(err))
		return
	}

	c.cache.Set(titanicCacheKey, rows, gocache.DefaultExpiration)
	helpers.WriteJSON(w, http.StatusOK, titanicResponse{Success: true, Data: rows})
}

// classifyUpstream traduce fallos del gateway en esta vista de datos.
// Aquí no hay semántica de login: todo es 502 con el mensaje visible.
func classifyUpstream(err error) *httperrors.AppError {
	var gerr *gateway.Error
	if stderrors.As(err, &gerr) {
		code := "UPSTREAM_ERROR"
		if gerr.Kind == gateway.KindNetworkUnreachable {
			code = "NETWORK_UNREACHABLE"
		}
		return httperrors.New(http.StatusBadGateway, code, gerr.Message).WithCause(err)
	}
	return httperrors.FromError(err)
}
