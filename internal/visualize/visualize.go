// Package visualize is the entry point renderers and controllers call to get a topology graph.
package visualize

import (
	"context"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/labfabric/topoviz/internal/source"
	"github.com/labfabric/topoviz/internal/topology"
)

// Visualizer fetches one topology's resources and builds its graph.
//
// Fetch failures are returned exactly as the source produced them. Nothing is retried and
// nothing is cached.
type Visualizer struct {
	Source source.Source
}

func New(src source.Source) *Visualizer {
	return &Visualizer{Source: src}
}

func (v *Visualizer) Visualize(ctx context.Context, namespace, name string) (topology.Graph, error) {
	logger := log.FromContext(ctx).WithValues("namespace", namespace, "topology", name)

	start := time.Now()
	defer func() {
		visualizeDuration.Observe(time.Since(start).Seconds())
	}()

	deployments, err := v.Source.DeploymentsByOwner(ctx, namespace, name)
	if err != nil {
		visualizeRequestsTotal.WithLabelValues(resultError).Inc()
		return topology.Graph{}, err
	}

	services, err := v.Source.ServicesByOwner(ctx, namespace, name)
	if err != nil {
		visualizeRequestsTotal.WithLabelValues(resultError).Inc()
		return topology.Graph{}, err
	}

	conn, err := v.Source.Connectivity(ctx, namespace, name)
	if err != nil {
		visualizeRequestsTotal.WithLabelValues(resultError).Inc()
		return topology.Graph{}, err
	}

	g := topology.Build(name, deployments, services, conn.Spec.PointToPointTunnels)
	visualizeRequestsTotal.WithLabelValues(resultSuccess).Inc()

	logger.V(1).Info("built topology graph",
		"deployments", len(deployments),
		"services", len(services),
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
	)

	return g, nil
}
