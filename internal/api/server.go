package api

import (
	"context"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/recruit-agent/internal/config"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
}

func NewServer(cfg config.ServerConfig, api *API) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(RequestLogger())
	engine.Use(MaxBodySize(cfg.MaxUploadBytes()))
	engine.Use(CORS(cfg.CORSOrigins))

	registerRoutes(engine, api)

	return &Server{
		engine: engine,
		httpServer: &http.Server{
			Addr:              cfg.Address(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled and then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("http server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Info("shutting down http server")
	return s.httpServer.Shutdown(shutdownCtx)
}
