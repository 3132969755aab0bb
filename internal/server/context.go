package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/teemow/agenda/internal/caldav"
	"github.com/teemow/agenda/internal/config"
	"github.com/teemow/agenda/internal/gcal"
	"github.com/teemow/agenda/internal/instrumentation"
	"github.com/teemow/agenda/internal/render"
	"github.com/teemow/agenda/internal/store"
)

// ServerContext holds the shared state of the MCP server: configuration,
// the calendar store, and the renderer. The store is built lazily on
// first use because construction blocks on backend authorization.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config.Config
	log    *slog.Logger

	mu       sync.RWMutex
	store    *store.Store
	renderer *render.Renderer
	metrics  *instrumentation.Metrics
	audit    *instrumentation.AuditLogger
	shutdown bool
}

// NewServerContext creates a new server context around the configuration.
func NewServerContext(ctx context.Context, cfg *config.Config, log *slog.Logger) (*ServerContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if log == nil {
		log = slog.Default()
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		cfg:    cfg,
		log:    log,
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the loaded configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.log
}

// Store returns the calendar store, building it on first use. The first
// call blocks until backend authorization resolves or times out; later
// calls reuse the same store.
func (sc *ServerContext) Store() (*store.Store, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.store != nil {
		return sc.store, nil
	}

	backend, err := sc.newBackend()
	if err != nil {
		return nil, err
	}

	sc.store = store.New(backend, store.WithLogger(sc.log))
	return sc.store, nil
}

// SetStore sets the calendar store, bypassing lazy construction.
func (sc *ServerContext) SetStore(st *store.Store) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.store = st
}

// newBackend builds the backend named by the configuration. Callers hold
// sc.mu.
func (sc *ServerContext) newBackend() (store.Backend, error) {
	switch sc.cfg.Backend {
	case config.BackendGoogle:
		return gcal.New(sc.ctx, sc.cfg.Google, gcal.WithLogger(sc.log))
	case config.BackendCalDAV:
		return caldav.New(sc.ctx, sc.cfg.CalDAV, caldav.WithLogger(sc.log))
	default:
		return nil, fmt.Errorf("unknown backend %q", sc.cfg.Backend)
	}
}

// Renderer returns the text renderer, building it on first use.
func (sc *ServerContext) Renderer() *render.Renderer {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.renderer == nil {
		sc.renderer = render.New(render.WithLogger(sc.log))
	}
	return sc.renderer
}

// Metrics returns the tool metrics recorder, or nil when
// instrumentation is disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the tool metrics recorder.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// AuditLogger returns the audit logger, or nil when auditing is disabled.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.audit
}

// SetAuditLogger sets the audit logger.
func (sc *ServerContext) SetAuditLogger(audit *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.audit = audit
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
