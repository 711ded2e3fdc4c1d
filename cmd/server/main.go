package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/janisto/trail-profiles/internal/config"
	"github.com/janisto/trail-profiles/internal/http/health"
	"github.com/janisto/trail-profiles/internal/http/v1/routes"
	"github.com/janisto/trail-profiles/internal/platform/database"
	applog "github.com/janisto/trail-profiles/internal/platform/logging"
	"github.com/janisto/trail-profiles/internal/platform/metrics"
	appmiddleware "github.com/janisto/trail-profiles/internal/platform/middleware"
	"github.com/janisto/trail-profiles/internal/platform/respond"
	"github.com/janisto/trail-profiles/internal/service/activity"
	"github.com/janisto/trail-profiles/internal/service/authgw"
	"github.com/janisto/trail-profiles/internal/service/bookmark"
	"github.com/janisto/trail-profiles/internal/service/profile"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	docsPath        = "/api-docs"
	maxBodyBytes    = 1 << 20 // 1 MB
	shutdownTimeout = 10 * time.Second
)

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		applog.LogError(context.Background(), "server failed", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			applog.LogError(context.Background(), "database close error", err)
		}
	}()

	if cfg.SkipDBInit {
		applog.LogInfo(ctx, "skipping schema migration")
	} else if err := database.Migrate(db); err != nil {
		return err
	}

	gateway := authgw.NewClient(nil, authgw.WithURL(cfg.AuthURL), authgw.WithTimeout(cfg.AuthTimeout))
	router, _ := newRouter(db, gateway, cfg.AllowedOrigins)
	srv := newServer(cfg.Addr(), router)

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	applog.LogInfo(ctx, "server listening",
		zap.String("addr", srv.Addr),
		zap.String("version", Version),
		zap.String("database", cfg.DatabaseDriver),
	)
	return serve(ctx, srv, ln)
}

// newRouter assembles the middleware stack, the huma API and every route.
func newRouter(db *gorm.DB, gateway authgw.Gateway, origins []string) (chi.Router, huma.API) {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(origins...),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP and X-Forwarded-For. Only deploy behind a
		// proxy that sets them.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(maxBodyBytes),
		appmiddleware.Metrics(),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.NewHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}))
	router.Handle("/metrics", metrics.Handler())

	cfg := huma.DefaultConfig("Trail Profiles API", Version)
	cfg.DocsPath = docsPath
	api := humachi.New(router, cfg)
	addCBORContent(api)

	routes.Register(api, routes.Services{
		Profiles:   profile.NewGormStore(db, gateway),
		Activities: activity.NewGormStore(db),
		Bookmarks:  bookmark.NewGormStore(db),
	})
	return router, api
}

// addCBORContent documents application/cbor next to every JSON body.
func addCBORContent(api huma.API) {
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		// Leaves room for the auth gateway timeout on profile creation.
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 64 << 10, // 64 KB
	}
}

// serve runs srv on ln until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	listenErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	applog.LogInfo(context.Background(), "server exited")
	return <-listenErr
}
