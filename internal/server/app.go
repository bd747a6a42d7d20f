package server

import (
	"context"
	"net/http"
	"os"

	"github.com/labstack/echo/v5"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"legislativo/internal/handlers"
	"legislativo/internal/storage"
)

// NewApp creates the PocketBase application hosting the dashboard
func (s *Server) NewApp() *pocketbase.PocketBase {
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: s.cfg.DataDir,
	})
	app.RootCmd.Short = "Legislative voting dashboard"
	app.RootCmd.AddCommand(s.Commands()...)

	app.OnBeforeServe().Add(s.onBeforeServe)
	app.OnTerminate().Add(func(e *core.TerminateEvent) error {
		s.Close()
		return nil
	})
	return app
}

func (s *Server) onBeforeServe(e *core.ServeEvent) error {
	store, err := storage.NewBuildStore(e.App)
	if err != nil {
		s.logger.Warn("Build history disabled", zap.Error(err))
	} else {
		s.setHistory(store)
	}

	if err := s.Rebuild(context.Background()); err != nil {
		s.logger.Error("Initial build failed", zap.Error(err))
	}

	s.registerRoutes(e.Router)
	return nil
}

func (s *Server) registerRoutes(router *echo.Echo) {
	h := handlers.NewDashboardHandler(s, s.buildHistory(), s.logger)

	router.GET("/health", wrap(h.HandleHealth))
	router.GET("/api/dashboard", wrap(h.HandleGetDashboard))
	router.POST("/api/dashboard/rebuild", wrap(h.HandleRebuild), apis.RequireAdminAuth())
	router.GET("/api/builds", wrap(h.HandleGetBuilds), apis.RequireAdminAuth())
	router.GET("/*", apis.StaticDirectoryHandler(os.DirFS(s.cfg.OutputDir), false))
}

func wrap(fn http.HandlerFunc) echo.HandlerFunc {
	return echo.WrapHandler(fn)
}
