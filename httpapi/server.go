package httpapi

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/One-com/gone/http/graceful"
	"github.com/One-com/gone/log"

	"github.com/jovermann/pvview/configstore"
	"github.com/jovermann/pvview/query"
)

// Server serves the JSON query API over a daily-file Query Engine and a
// Store of opaque dashboard/settings blobs.
type Server struct {
	Engine *query.Engine
	Store  *configstore.Store
	Log    *log.Logger

	srv *graceful.Server
}

// NewServer builds a Server with its routes wired, ready for Serve.
func NewServer(engine *query.Engine, store *configstore.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{Engine: engine, Store: store, Log: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /series", s.handleListSeries)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /dashboards", s.handleDashboards)
	mux.HandleFunc("PUT /dashboards", s.handleDashboards)
	mux.HandleFunc("GET /dashboards/{name}", s.handleDashboardByName)
	mux.HandleFunc("PUT /dashboards/{name}", s.handleDashboardByName)
	mux.HandleFunc("GET /settings", s.handleSettings)
	mux.HandleFunc("PUT /settings", s.handleSettings)

	s.srv = &graceful.Server{
		Server:  &http.Server{Handler: s.logged(mux)},
		Timeout: 10 * time.Second,
	}
	return s
}

// Serve accepts connections on addr and blocks until the server shuts down.
func (s *Server) Serve(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.Log.INFO("httpapi: listening", "addr", addr)
	return s.srv.Serve(l)
}

// Shutdown signals the server to stop accepting new connections and drain
// the ones it has, per graceful.Server's own semantics.
func (s *Server) Shutdown(ctx context.Context) {
	s.srv.Shutdown()
	done := make(chan struct{})
	go func() {
		s.srv.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (s *Server) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.Log.DEBUG("request",
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start),
		)
	})
}
