package cli

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/AAliKKhan/PassMeterX/pkg/config"
	"github.com/AAliKKhan/PassMeterX/pkg/metrics"
	urfave "github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const (
	serverMaxHeaderBytes = 20
	maxBodyBytes         = 64 << 10
)

var (
	//go:embed assets/* templates/*
	embedFS embed.FS

	hostFlag = &urfave.StringFlag{
		Name:    "host",
		Usage:   "Address on which the server will listen",
		Sources: urfave.EnvVars(envPrefix + "HOST"),
	}

	portFlag = &urfave.IntFlag{
		Name:    "port",
		Usage:   "Port on which the server will listen",
		Sources: urfave.EnvVars(envPrefix + "PORT"),
	}

	noBrowserFlag = &urfave.BoolFlag{
		Name:    "no-browser",
		Aliases: []string{"nb"},
		Usage:   "Do not open browser automatically",
		Sources: urfave.EnvVars(envPrefix + "NO_BROWSER"),
	}

	metricsFlag = &urfave.BoolFlag{
		Name:    "metrics",
		Usage:   "Expose Prometheus metrics on /metrics",
		Sources: urfave.EnvVars(envPrefix + "METRICS"),
	}

	serveCmd = &urfave.Command{
		Name:            "serve",
		Aliases:         []string{"server"},
		Usage:           "Start local HTTP server with the password meter UI",
		HideHelpCommand: true,
		Action:          cmdStartServer,
		Flags: []urfave.Flag{
			hostFlag,
			portFlag,
			noBrowserFlag,
			metricsFlag,
		},
	}
)

func cmdStartServer(ctx context.Context, cmd *urfave.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s := newServer(cfg)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var ready func(string)
	if cfg.Server.OpenBrowser {
		ready = openBrowser
	}
	return runServer(ctx, s, cfg.Server.ShutdownWait, ready)
}

func newServer(cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:           cfg.Address(),
		Handler:        makeRouter(cfg),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}
}

// runServer serves until ctx is done, then shuts down within wait.
// ready is called with the server URL once the listener is open.
func runServer(ctx context.Context, s *http.Server, wait time.Duration, ready func(string)) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.Addr, err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error serving: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), wait)
		defer cancel()
		if err := s.Shutdown(sctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error shutting down server: %w", err)
		}
		slog.Info("server stopped")
		return nil
	})

	url := fmt.Sprintf("http://%s", ln.Addr())
	slog.Info("server started", "address", url)
	if ready != nil {
		ready(url)
	}

	return g.Wait()
}

func makeRouter(cfg *config.Config) *http.ServeMux {
	tmpl := template.Must(template.New("").ParseFS(embedFS, "templates/*.html"))

	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, accessLog(pattern, metrics.Instrument(pattern, h)))
	}

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(embedFS)))
	mux.HandleFunc("GET /favicon.ico", faviconHandler)

	// Views
	handle("GET /{$}", homeViewHandler(tmpl))
	handle("POST /{$}", scanViewHandler(tmpl))

	// API
	handle("POST /api/v1/score", scoreAPIHandler)
	handle("GET /healthz", healthAPIHandler)

	if cfg.Metrics.Enabled {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	return mux
}

// accessLog logs the route and outcome of each request. Bodies are never logged.
func accessLog(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.StatusRecorder{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(rec, r)

		slog.Debug("request served",
			"route", route,
			"status", rec.Status,
			"duration", time.Since(start).String(),
		)
	})
}

func openBrowser(url string) {
	var cmd string
	args := make([]string, 0, 1)

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
	case "linux":
		cmd = "xdg-open"
	default: // windows
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler"}
	}

	args = append(args, url)
	if err := exec.Command(cmd, args...).Start(); err != nil {
		slog.Error("failed to open browser", "error", err)
	}
}
