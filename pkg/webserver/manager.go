package webserver

import (
	"bufio"
	"context"
	"dopingscatter/pkg/resources"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

const shutdownTimeout = 10 * time.Second

type Manager struct {
	addr      string
	r         *mux.Router
	logger    *slog.Logger
	resources *resources.Set
}

func NewManager(addr string, logger *slog.Logger, set *resources.Set) *Manager {
	m := &Manager{
		addr:      addr,
		r:         mux.NewRouter(),
		logger:    logger,
		resources: set,
	}

	m.r.Use(m.logRequests)
	m.rootHandlers()
	return m
}

// Router is where other components mount their handlers.
func (m *Manager) Router() *mux.Router {
	return m.r
}

func (m *Manager) rootHandlers() {
	m.r.HandleFunc("/resources/{name}", m.resourceHandler).Methods(http.MethodGet)
	m.r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
}

func (m *Manager) resourceHandler(w http.ResponseWriter, r *http.Request) {
	res, err := m.resources.Get(mux.Vars(r)["name"])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", res.ContentType())
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(res.Data())
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Hijack keeps websocket upgrades working behind the logger.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	s.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (m *Manager) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed", time.Since(start),
		)
	})
}

// Debug logs every registered route.
func (m *Manager) Debug() {
	_ = m.r.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		attrs := []any{}
		if pathTemplate, err := route.GetPathTemplate(); err == nil {
			attrs = append(attrs, "template", pathTemplate)
		}
		if pathRegexp, err := route.GetPathRegexp(); err == nil {
			attrs = append(attrs, "regexp", pathRegexp)
		}
		if methods, err := route.GetMethods(); err == nil {
			attrs = append(attrs, "methods", strings.Join(methods, ","))
		}
		m.logger.Debug("route", attrs...)
		return nil
	})
}

// Serve blocks until ctx is done, then shuts the server down.
func (m *Manager) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         m.addr,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.r,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errc := make(chan error, 1)
	go func() {
		m.logger.Info("webserver listening", "addr", m.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return errors.Wrap(err, "webserver")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	m.logger.Info("webserver shutting down")
	return errors.Wrap(srv.Shutdown(shutdownCtx), "webserver shutdown")
}
