package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/libpanel/internal/metrics"
	"github.com/matzehuels/libpanel/pkg/buildinfo"
	"github.com/matzehuels/libpanel/pkg/detail"
	perrors "github.com/matzehuels/libpanel/pkg/errors"
	"github.com/matzehuels/libpanel/pkg/library"
	"github.com/matzehuels/libpanel/pkg/registry"
)

const (
	maxRecordSize   = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// serveOptions holds flags for the serve command.
type serveOptions struct {
	addr    string
	noCache bool
}

// serveCommand creates the serve command that exposes panels over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve library panels and author lookups over HTTP",
		Long: `Serve library panels and author lookups over HTTP.

Endpoints:
  GET  /healthz                      liveness probe
  GET  /v1/packages/{pkg}/author     author lookup result
  POST /v1/panel                     library record in, panel JSON out
  GET  /metrics                      Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the registry cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	cfg, client, cc, err := c.newRegistryClient(ctx, registryOptions{noCache: opts.noCache})
	if err != nil {
		return err
	}
	defer cc.Close()

	addr := opts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	reg := prometheus.NewRegistry()
	metrics.New(reg).Install()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(client, cfg.detailOptions(), c.Logger, reg).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr, "registry", client.BaseURL())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

// =============================================================================
// HTTP handlers
// =============================================================================

// server holds the dependencies of the HTTP handlers.
type server struct {
	fetcher  registry.Fetcher
	opts     detail.Options
	logger   *log.Logger
	gatherer prometheus.Gatherer
}

func newServer(f registry.Fetcher, opts detail.Options, logger *log.Logger, g prometheus.Gatherer) *server {
	return &server{fetcher: f, opts: opts, logger: logger, gatherer: g}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/packages/*", s.handleAuthor)
		r.Post("/panel", s.handlePanel)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

// handleAuthor serves GET /v1/packages/{pkg}/author. Scoped names contain a
// slash, so the package is everything between the prefix and "/author".
func (s *server) handleAuthor(w http.ResponseWriter, r *http.Request) {
	rest, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, perrors.Wrap(perrors.ErrCodeInvalidPackage, err, "malformed package path"))
		return
	}
	pkg, ok := strings.CutSuffix(rest, "/author")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := perrors.ValidatePackageName(pkg); err != nil {
		writeError(w, err)
		return
	}
	st := registry.Resolve(r.Context(), s.fetcher, pkg, r.URL.Query().Has("refresh"))
	if st.Status == registry.StatusFailed {
		s.logger.Warn("author lookup failed", "pkg", pkg, "err", st.Err)
		writeJSON(w, http.StatusBadGateway, st.Result())
		return
	}
	writeJSON(w, http.StatusOK, st.Result())
}

// panelResponse is a panel plus the outcome of its author lookup.
type panelResponse struct {
	detail.Panel
	AuthorError string `json:"authorError,omitempty"`
}

func (s *server) handlePanel(w http.ResponseWriter, r *http.Request) {
	lib, err := library.Decode(io.LimitReader(r.Body, maxRecordSize))
	if err != nil {
		writeError(w, err)
		return
	}
	st := registry.Resolve(r.Context(), s.fetcher, lib.NpmPkg, false)
	resp := panelResponse{Panel: detail.NewPanel(lib, st.AuthorName(), s.opts)}
	if st.Status == registry.StatusFailed {
		resp.AuthorError = perrors.UserMessage(st.Err)
	}
	writeJSON(w, http.StatusOK, resp)
}

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Code    perrors.Code `json:"code"`
	Message string       `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, perrors.HTTPStatus(err), errorResponse{Code: perrors.GetCode(err), Message: perrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
