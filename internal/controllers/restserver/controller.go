// Package restserver serves the read-only status API.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/chrissnell/humifix/internal/status"
	"github.com/chrissnell/humifix/pkg/config"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller represents the REST server controller
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	Server   http.Server
	logger   *zap.SugaredLogger
	handlers *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, rc config.RESTServerData, board *status.Board, logger *zap.SugaredLogger) *Controller {
	c := &Controller{
		ctx:      ctx,
		wg:       wg,
		logger:   logger,
		handlers: NewHandlers(board, logger),
	}

	if rc.ListenAddr == "" {
		logger.Info("rest.listen-addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		rc.ListenAddr = "0.0.0.0"
	}
	if rc.Port == 0 {
		logger.Info("rest.port not provided; defaulting to 8080")
		rc.Port = 8080
	}

	c.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.Port)
	c.Server.Handler = c.setupRouter()
	c.Server.ReadHeaderTimeout = 10 * time.Second

	return c
}

// StartController starts the REST server and shuts it down when ctx ends
func (c *Controller) StartController() {
	c.logger.Infof("starting REST server on %s", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()
		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			c.logger.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		c.logger.Info("shutting down the REST server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Server.Shutdown(ctx)
	}()
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/status", c.handlers.GetStatus).Methods(http.MethodGet)
	router.HandleFunc("/cycles/latest", c.handlers.GetLatestCycle).Methods(http.MethodGet)
	router.HandleFunc("/summaries/latest", c.handlers.GetLatestSummary).Methods(http.MethodGet)
	return router
}
