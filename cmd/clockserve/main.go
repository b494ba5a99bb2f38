// Command clockserve serves the WebAssembly build of the clock together with
// the shader sources it fetches at startup.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kjkrol/glclock/assets"
	"github.com/kjkrol/glclock/internal/config"
	"github.com/kjkrol/glclock/internal/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr     string
		webDir   string
		logLevel string
	)
	cmd := &cobra.Command{
		Use:          "clockserve",
		Short:        "Serve the WebAssembly clock and its shaders",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logCfg := config.Default().Log
			if logLevel != "" {
				logCfg.Level = logLevel
			}
			logger := logging.New(logCfg, os.Stderr)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, addr, newHandler(webDir, logger), logger)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", ":8080", "listen address")
	flags.StringVar(&webDir, "dir", "web", "directory holding index.html, main.wasm and wasm_exec.js")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	return cmd
}

// newHandler serves the page files from dir and the embedded shaders under
// /shaders/.
func newHandler(dir string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	files := http.FileServer(http.Dir(dir))

	mux.Handle("/shaders/", http.FileServer(http.FS(assets.FS)))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		files.ServeHTTP(w, r)
	})
	return logRequests(mux, logger)
}

func serve(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: h}

	errc := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			logger.Error("listen", "err", err)
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(h http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		h.ServeHTTP(rec, r)
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "dur", time.Since(start))
	})
}
