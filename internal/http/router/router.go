// Package router arma el chi.Mux con todas las rutas del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httpx "github.com/kjunlab/authfront/internal/http"
	authctrl "github.com/kjunlab/authfront/internal/http/controllers/auth"
	datactrl "github.com/kjunlab/authfront/internal/http/controllers/data"
	healthctrl "github.com/kjunlab/authfront/internal/http/controllers/health"
	sessionctrl "github.com/kjunlab/authfront/internal/http/controllers/session"
	httperrors "github.com/kjunlab/authfront/internal/http/errors"
	"github.com/kjunlab/authfront/internal/http/middlewares"
)

// Deps agrupa los controladores y opciones que el router necesita.
type Deps struct {
	Login   *authctrl.LoginController
	Landing *authctrl.LandingController
	Session *sessionctrl.Controller
	Titanic *datactrl.TitanicController
	Health  *healthctrl.Controller

	// Metrics es el handler de /metrics; nil lo deshabilita.
	Metrics http.Handler

	CORSAllowedOrigins []string
}

// New construye el handler HTTP completo.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middlewares.WithRequestID(),
		middlewares.WithLogging(),
		httpx.WithMetrics(),
		middlewares.WithRecover(),
		middlewares.WithCORS(deps.CORSAllowedOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	// Pipeline de login.
	r.Post("/api/auth/{provider}/login", deps.Login.Login)
	r.Get("/auth/{provider}/success", deps.Landing.Success)

	// Vistas de sesión.
	r.Get("/api/session", deps.Session.Get)
	r.Post("/api/logout", deps.Session.Logout)
	r.Get("/api/login/state", deps.Session.State)

	// Vistas de datos.
	r.Get("/api/titanic/top10", deps.Titanic.Top10)

	r.Get("/healthz", deps.Health.Health)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	return r
}
