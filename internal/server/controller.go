// Package server exposes the race-history dataset and the computed
// window summaries, overlay paths, and climatology over HTTP for the
// rendering frontend.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/marathonwx/raceday/internal/dataset"
	"github.com/marathonwx/raceday/internal/log"
	"github.com/marathonwx/raceday/pkg/config"
)

// Controller represents the REST server controller
type Controller struct {
	ctx            context.Context
	wg             *sync.WaitGroup
	configProvider config.ConfigProvider
	serverConfig   config.ServerData
	Server         http.Server
	Dataset        *dataset.Dataset
	Races          []config.RaceData
	logger         *zap.SugaredLogger
	handlers       *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, sc config.ServerData, ds *dataset.Dataset, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:            ctx,
		wg:             wg,
		configProvider: configProvider,
		serverConfig:   sc,
		Dataset:        ds,
		logger:         logger,
	}

	races, err := configProvider.GetRaces()
	if err != nil {
		return nil, fmt.Errorf("error loading race metadata: %v", err)
	}
	ctrl.Races = races

	// Every configured race must exist in the dataset; a typo'd ID
	// would otherwise surface as 404s at request time.
	for _, race := range races {
		if ds.Race(race.ID) == nil {
			return nil, fmt.Errorf("race %q is configured but absent from the dataset", race.ID)
		}
	}

	if sc.ListenAddr == "" {
		logger.Info("server.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		sc.ListenAddr = "0.0.0.0"
	}
	if sc.HTTPPort == 0 {
		logger.Info("server.http_port not provided; defaulting to 8080")
		sc.HTTPPort = 8080
	}
	ctrl.serverConfig = sc

	ctrl.handlers = NewHandlers(ctrl)

	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", sc.ListenAddr, sc.HTTPPort)
	ctrl.Server.Handler = handlers.CompressHandler(router)

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()
		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(c.loggingMiddleware)

	router.HandleFunc("/api/races", c.handlers.ListRaces)
	router.HandleFunc("/api/races/{id}", c.handlers.GetRace)
	router.HandleFunc("/api/races/{id}/window", c.handlers.GetWindow)
	router.HandleFunc("/api/races/{id}/paths", c.handlers.GetPaths)
	router.HandleFunc("/api/races/{id}/climatology", c.handlers.GetClimatology)

	return router
}

// loggingMiddleware logs each request with its status and duration
func (c *Controller) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		c.logger.Debugf("%s %s %d %v", r.Method, r.URL.Path, sw.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// raceMetadata returns the configured metadata record for a race ID,
// or nil when the race is served with dataset defaults only.
func (c *Controller) raceMetadata(id string) *config.RaceData {
	for i := range c.Races {
		if c.Races[i].ID == id {
			return &c.Races[i]
		}
	}
	return nil
}
