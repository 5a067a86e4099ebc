package controllers

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	topovizControllerReconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "topoviz_controller_reconcile_total",
			Help: "Number of reconciliations by controller.",
		},
		[]string{"controller"},
	)
	topovizControllerReconcileErrorTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "topoviz_controller_reconcile_error_total",
			Help: "Number of reconciliation errors by controller.",
		},
		[]string{"controller"},
	)

	topologyGraphNodes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "topoviz_topology_graph_nodes",
			Help: "Number of nodes in the last graph built for a topology.",
		},
		[]string{"namespace", "topology"},
	)
	topologyGraphEdges = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "topoviz_topology_graph_edges",
			Help: "Number of edges in the last graph built for a topology.",
		},
		[]string{"namespace", "topology"},
	)
	topologyGraphDanglingEdges = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "topoviz_topology_graph_dangling_edges",
			Help: "Number of edges referencing a node missing from the last graph built for a topology.",
		},
		[]string{"namespace", "topology"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		topovizControllerReconcileTotal,
		topovizControllerReconcileErrorTotal,
		topologyGraphNodes,
		topologyGraphEdges,
		topologyGraphDanglingEdges,
	)
}

func observeTopologyGraph(namespace, name string, nodes, edges, dangling int) {
	topologyGraphNodes.WithLabelValues(namespace, name).Set(float64(nodes))
	topologyGraphEdges.WithLabelValues(namespace, name).Set(float64(edges))
	topologyGraphDanglingEdges.WithLabelValues(namespace, name).Set(float64(dangling))
}

func forgetTopologyGraph(namespace, name string) {
	topologyGraphNodes.DeleteLabelValues(namespace, name)
	topologyGraphEdges.DeleteLabelValues(namespace, name)
	topologyGraphDanglingEdges.DeleteLabelValues(namespace, name)
}
