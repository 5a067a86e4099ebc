// Package server exposes topology graphs to renderers over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/labfabric/topoviz/internal/topology"
)

// VisualizePath is the route renderers request a topology document from.
const VisualizePath = "GET /api/v1/namespaces/{namespace}/topologies/{name}/visualize"

const shutdownTimeout = 10 * time.Second

// Visualizer produces the graph for one topology.
type Visualizer interface {
	Visualize(ctx context.Context, namespace, name string) (topology.Graph, error)
}

// Server serves topology documents. It implements manager.Runnable and
// manager.LeaderElectionRunnable so it can be added to a controller-runtime manager.
type Server struct {
	Addr       string
	Visualizer Visualizer
	Logger     logr.Logger
}

func New(addr string, v Visualizer, logger logr.Logger) *Server {
	return &Server{Addr: addr, Visualizer: v, Logger: logger}
}

// Handler returns the routes served by s.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(VisualizePath, s.handleVisualize)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("serving topology api", "addr", s.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// NeedLeaderElection is false: every replica serves reads.
func (s *Server) NeedLeaderElection() bool {
	return false
}

func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	namespace := r.PathValue("namespace")
	name := r.PathValue("name")

	logger := s.Logger.WithValues("namespace", namespace, "topology", name)
	ctx := log.IntoContext(r.Context(), logger)

	format, err := topology.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := s.Visualizer.Visualize(ctx, namespace, name)
	if err != nil {
		logger.Error(err, "failed to visualize topology")
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	out, err := topology.Marshal(g, format)
	if err != nil {
		logger.Error(err, "failed to encode topology")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func statusFor(err error) int {
	switch {
	case apierrors.IsNotFound(err):
		return http.StatusNotFound
	case apierrors.IsForbidden(err):
		return http.StatusForbidden
	case apierrors.IsUnauthorized(err):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
