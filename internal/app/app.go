// Package app cablea las dependencias del servicio: configuración,
// backend de sesión, cliente del gateway, orquestador y router HTTP.
package app

import (
	"fmt"
	"net/http"

	"github.com/kjunlab/authfront/internal/config"
	"github.com/kjunlab/authfront/internal/gateway"
	httpx "github.com/kjunlab/authfront/internal/http"
	authctrl "github.com/kjunlab/authfront/internal/http/controllers/auth"
	datactrl "github.com/kjunlab/authfront/internal/http/controllers/data"
	healthctrl "github.com/kjunlab/authfront/internal/http/controllers/health"
	sessionctrl "github.com/kjunlab/authfront/internal/http/controllers/session"
	"github.com/kjunlab/authfront/internal/http/router"
	"github.com/kjunlab/authfront/internal/kv"
	kvfile "github.com/kjunlab/authfront/internal/kv/file"
	kvmemory "github.com/kjunlab/authfront/internal/kv/memory"
	kvredis "github.com/kjunlab/authfront/internal/kv/redis"
	"github.com/kjunlab/authfront/internal/login"
	"github.com/kjunlab/authfront/internal/observability/logger"
	"github.com/kjunlab/authfront/internal/session"
)

// Version del servicio; se expone en /healthz y en el CLI.
const Version = "0.1.0"

// App contiene las dependencias ya cableadas.
type App struct {
	Config       *config.Config
	Store        *session.Store
	Gateway      *gateway.Client
	Orchestrator *login.Orchestrator
	Handler      http.Handler
}

// New construye la aplicación completa a partir de la configuración.
func New(cfg *config.Config) (*App, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}

	store := session.New(backend)
	gw := gateway.New(cfg.Gateway.BaseURL)
	orch := login.NewOrchestrator(gw, store)
	landing := login.NewLandingHandler(store)

	metricsHandler, err := httpx.RegisterMetrics(nil)
	if err != nil {
		logger.L().Warn("metrics registration failed, /metrics disabled", logger.Err(err))
		metricsHandler = nil
	}

	handler := router.New(router.Deps{
		Login:              authctrl.NewLoginController(orch),
		Landing:            authctrl.NewLandingController(landing),
		Session:            sessionctrl.NewController(store, orch),
		Titanic:            datactrl.NewTitanicController(gw),
		Health:             healthctrl.NewController(Version),
		Metrics:            metricsHandler,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	return &App{
		Config:       cfg,
		Store:        store,
		Gateway:      gw,
		Orchestrator: orch,
		Handler:      handler,
	}, nil
}

// NewBackend selecciona el backend de persistencia de sesión según la
// configuración. Lo usan también los subcomandos de sesión del CLI, que
// acceden al store sin levantar el servidor.
func NewBackend(cfg *config.Config) (kv.Store, error) {
	switch cfg.Storage.Kind {
	case "file":
		return kvfile.New(cfg.Storage.File.Dir), nil
	case "memory":
		return kvmemory.New(), nil
	case "redis":
		return kvredis.New(cfg.Storage.Redis.Addr, cfg.Storage.Redis.DB, cfg.Storage.Redis.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q", cfg.Storage.Kind)
	}
}
