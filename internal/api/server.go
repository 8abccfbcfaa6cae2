package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rusenback/docker-gateway/internal/config"
	"github.com/rusenback/docker-gateway/internal/docker"
	"github.com/rusenback/docker-gateway/internal/model"
)

// Recorder receives the outcome of every start and stop request
type Recorder interface {
	Record(entry model.AuditEntry)
}

// ServerOptions configures the HTTP server.
type ServerOptions struct {
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	Logger            *slog.Logger
	Audit             Recorder // optional
}

// Server hosts the gateway API. Configuration and the runtime handle are fixed
// at construction and shared read-only by all requests.
type Server struct {
	http    *http.Server
	handler http.Handler
	runtime docker.Runtime
	cfg     config.Config
	logger  *slog.Logger
	opts    ServerOptions
}

// NewServer wires routes and middleware. The server does not listen until Start is called.
func NewServer(runtime docker.Runtime, cfg config.Config, opts ServerOptions) *Server {
	if runtime == nil {
		panic("api.NewServer: runtime is nil")
	}
	cfg.LogTailLines = config.ClampTail(cfg.LogTailLines)
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = config.DefaultConfig().ListenAddr
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 5 * time.Second
	}
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 2 * time.Second
	}
	if opts.WriteTimeout == 0 {
		// stop waits for the grace period on top of the Docker timeout
		opts.WriteTimeout = cfg.DockerTimeout + 20*time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		runtime: runtime,
		cfg:     cfg,
		logger:  opts.Logger,
		opts:    opts,
	}

	router := s.routes()

	var h http.Handler = router
	h = stripPrefix(cfg.RootPath, h)
	h = trustedHosts(cfg.AllowedHosts, h)
	h = corsPolicy(cfg.AllowedOrigins, h)
	h = securityHeaders(h)
	h = accessLog(h)
	h = requestID(opts.Logger, h)
	s.handler = h

	s.http = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(opts.Logger.Handler(), slog.LevelWarn),
		BaseContext: func(l net.Listener) context.Context {
			return context.Background()
		},
	}

	return s
}

// routes registers the API, docs and static routes
func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/containers", s.handleListContainers).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/containers/{id}/start", s.handleStartContainer).Methods(http.MethodPost)
	r.HandleFunc("/containers/{id}/stop", s.handleStopContainer).Methods(http.MethodPost)
	r.HandleFunc("/containers/{id}/logs", s.handleContainerLogs).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/config.js", s.handleConfigJS).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	// Disabled docs are not registered at all, so they 404 like any unknown path
	if s.cfg.OpenAPI {
		r.HandleFunc("/openapi.json", s.handleOpenAPI).Methods(http.MethodGet)
	}
	if s.cfg.SwaggerUI {
		r.HandleFunc("/docs", s.handleSwaggerUI).Methods(http.MethodGet)
	}
	if s.cfg.ReDoc {
		r.HandleFunc("/redoc", s.handleReDoc).Methods(http.MethodGet)
	}

	if spa, ok := newSPAHandler(s.cfg.FrontendDir); ok {
		r.PathPrefix("/").Handler(spa).Methods(http.MethodGet, http.MethodHead)
		s.logger.Info("serving front end", "dir", s.cfg.FrontendDir)
	} else if s.cfg.FrontendDir != "" {
		s.logger.Info("front-end bundle not found, API only", "dir", s.cfg.FrontendDir)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, msgRouteNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	return r
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins serving HTTP in a background goroutine.
// It returns immediately; use Stop for graceful shutdown. The returned
// channel yields the error if the listener fails.
func (s *Server) Start() <-chan error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("api: listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	return errc
}

// Stop gracefully shuts down the server, waiting up to ShutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	timeout := s.opts.ShutdownTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.http.Shutdown(ctx)
}
