// Package health expone el endpoint de liveness.
package health

import (
	"net/http"

	"github.com/kjunlab/authfront/internal/http/helpers"
)

// Controller responde el health check.
type Controller struct {
	version string
}

// NewController creates a new health Controller.
func NewController(version string) *Controller {
	return &Controller{version: version}
}

// Health handles GET /healthz.
func (c *Controller) Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": c.version,
	})
}
