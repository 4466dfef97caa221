// Package server serves the site: the rendered page, its embedded assets,
// the wasm runtime, the WhatsApp redirect and the client error sink.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/goliatone/go-hafriyat/internal/logging"
	"github.com/goliatone/go-hafriyat/pkg/deeplink"
	"github.com/goliatone/go-hafriyat/pkg/effects"
	"github.com/goliatone/go-hafriyat/pkg/ratelimit"
)

const tracerName = "github.com/goliatone/go-hafriyat/internal/server"

// DefaultErrorWindow is how long an identical client error stays muted
// after it was logged.
const DefaultErrorWindow = time.Minute

// Config holds server configuration.
type Config struct {
	Addr              string
	AllowAllOrigins   bool          // allow all CORS origins (dev mode)
	WasmDir           string        // directory with hafriyat.wasm and wasm_exec.js
	ShutdownTimeout   time.Duration // grace period for in-flight requests
	WhatsAppRecipient string
	WhatsAppMessage   string
	ErrorWindow       time.Duration
}

// PageRenderer produces the site page.
type PageRenderer interface {
	RenderPage(ctx context.Context) ([]byte, error)
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger used for requests and client errors.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces the clock behind the client error throttle.
func WithClock(clock ratelimit.Clock) Option {
	return func(s *Server) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithTracer sets the tracer for request spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Server) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// Server is the site HTTP server.
type Server struct {
	cfg        Config
	pages      PageRenderer
	assets     fs.FS
	logger     *zap.Logger
	tracer     trace.Tracer
	clock      ratelimit.Clock
	reports    *ratelimit.KeyedThrottle
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. The WhatsApp recipient is validated up front.
func New(cfg Config, pages PageRenderer, assets fs.FS, opts ...Option) (*Server, error) {
	if pages == nil {
		return nil, errors.New("server: page renderer is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.ErrorWindow <= 0 {
		cfg.ErrorWindow = DefaultErrorWindow
	}
	if cfg.WhatsAppRecipient == "" {
		cfg.WhatsAppRecipient = deeplink.PlaceholderRecipient
	}
	if _, err := deeplink.NormalizeRecipient(cfg.WhatsAppRecipient); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		pages:  pages,
		assets: assets,
		logger: zap.NewNop(),
		clock:  ratelimit.SystemClock(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	s.reports = ratelimit.NewKeyedThrottle(cfg.ErrorWindow, s.clock)

	if deeplink.IsPlaceholder(cfg.WhatsAppRecipient) {
		s.logger.Warn("whatsapp recipient is the placeholder number, set whatsapp.recipient",
			zap.String("recipient", cfg.WhatsAppRecipient))
	}

	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(s.traceRequests)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/", s.handlePage)
	r.Get("/whatsapp", s.handleWhatsApp)
	r.Post(effects.DefaultErrorEndpoint, s.handleClientError)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	if s.assets != nil {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(s.assets))))
	}
	if s.cfg.WasmDir != "" {
		r.Handle("/app/*", http.StripPrefix("/app/", wasmHeaders(http.FileServer(http.Dir(s.cfg.WasmDir)))))
	}

	return r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Start listens on the configured address. A graceful shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("hafriyat server listening", zap.String("addr", s.cfg.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down within the configured
// timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return <-errCh
}

func (s *Server) traceRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := s.tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			))
		defer span.End()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.pages.RenderPage(r.Context())
	if err != nil {
		s.logger.Error("render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

func (s *Server) handleWhatsApp(w http.ResponseWriter, r *http.Request) {
	message := s.cfg.WhatsAppMessage
	if text := r.URL.Query().Get("text"); text != "" {
		message = text
	}
	link, err := deeplink.WhatsApp(s.cfg.WhatsAppRecipient, message)
	if err != nil {
		s.logger.Error("build whatsapp link", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, link, http.StatusFound)
}

// wasmHeaders makes sure the binary is served with the type
// WebAssembly.instantiateStreaming requires.
func wasmHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".wasm") {
			w.Header().Set("Content-Type", "application/wasm")
		}
		next.ServeHTTP(w, r)
	})
}
