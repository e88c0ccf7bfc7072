package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"idb-monitor/internal/config"
	"idb-monitor/internal/dashboard"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

// Server serves the dashboard engine over HTTP. It keeps no per-client state:
// every request carries its filters in the query string.
type Server struct {
	cfg    *config.AppConfig
	holder *dashboard.Holder
	router *gin.Engine
}

// NewServer builds the router over holder.
func NewServer(cfg *config.AppConfig, holder *dashboard.Holder) *Server {
	s := &Server{cfg: cfg, holder: holder}
	s.router = s.newRouter()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) newRouter() *gin.Engine {
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowMethods("GET", "POST", "OPTIONS")
	corsConfig.AddExposeHeaders("Content-Disposition")
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/refresh", s.handleRefresh)

	data := api.Group("", s.requireDataset())
	data.GET("/options", s.handleOptions)
	data.GET("/records", s.handleRecords)
	data.GET("/overview", s.handleOverview)
	data.GET("/breakdown/:dimension", s.handleBreakdown)
	data.GET("/reconciliation", s.handleReconciliation)
	data.GET("/variance", s.handleVariance)
	data.GET("/recommendations", s.handleRecommendations)
	data.GET("/map", s.handleMap)
	data.GET("/export/reconciliation.csv", s.handleExportReconciliationCSV)
	data.GET("/export/reconciliation.xlsx", s.handleExportReconciliationXLSX)
	data.GET("/export/assets.xlsx", s.handleExportAssetsXLSX)

	return r
}

// Run listens on the configured address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.HTTPAddr).Msg("HTTP API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info().Msg("HTTP API shutting down")
	return srv.Shutdown(shutdownCtx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ev := log.Debug()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("HTTP request")
	}
}
