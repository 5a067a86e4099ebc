package controllers

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/predicate"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	clabv1alpha1 "github.com/labfabric/topoviz/api/v1alpha1"
	"github.com/labfabric/topoviz/internal/topology"
)

const controllerTopologyGraph = "TopologyGraph"

// Visualizer produces the graph for one topology.
type Visualizer interface {
	Visualize(ctx context.Context, namespace, name string) (topology.Graph, error)
}

// TopologyGraphReconciler rebuilds a topology's graph whenever its Connectivity or one of its
// owned Deployments or Services changes, and publishes the graph's size. It writes nothing back
// to the cluster besides events.
//
// RBAC:
// +kubebuilder:rbac:groups=clabernetes.containerlab.dev,resources=connectivities,verbs=get;list;watch
// +kubebuilder:rbac:groups=apps,resources=deployments,verbs=get;list;watch
// +kubebuilder:rbac:groups="",resources=services,verbs=get;list;watch
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch;update
type TopologyGraphReconciler struct {
	client.Client
	Scheme     *runtime.Scheme
	Recorder   record.EventRecorder
	Visualizer Visualizer
}

func (r *TopologyGraphReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx).WithValues(
		"controller", controllerTopologyGraph,
		"namespace", req.Namespace,
		"topology", req.Name,
	)
	ctx = log.IntoContext(ctx, logger)

	topovizControllerReconcileTotal.WithLabelValues(controllerTopologyGraph).Inc()

	var conn clabv1alpha1.Connectivity
	if err := r.Get(ctx, req.NamespacedName, &conn); err != nil {
		if client.IgnoreNotFound(err) == nil {
			forgetTopologyGraph(req.Namespace, req.Name)
			return ctrl.Result{}, nil
		}
		topovizControllerReconcileErrorTotal.WithLabelValues(controllerTopologyGraph).Inc()
		return ctrl.Result{}, err
	}

	g, err := r.Visualizer.Visualize(ctx, req.Namespace, req.Name)
	if err != nil {
		topovizControllerReconcileErrorTotal.WithLabelValues(controllerTopologyGraph).Inc()
		logger.Error(err, "failed to build topology graph")
		return ctrl.Result{}, err
	}

	dangling := g.DanglingEdges()
	observeTopologyGraph(req.Namespace, req.Name, len(g.Nodes), len(g.Edges), len(dangling))

	r.recordEventf(&conn, corev1.EventTypeNormal, "GraphBuilt", "Built topology graph with %d nodes and %d edges", len(g.Nodes), len(g.Edges))
	if len(dangling) > 0 {
		r.recordEventf(&conn, corev1.EventTypeWarning, "DanglingEdges", "%d edges reference nodes missing from the graph, first: %s", len(dangling), dangling[0].ID)
	}

	logger.Info("reconciled topology graph", "nodes", len(g.Nodes), "edges", len(g.Edges), "dangling", len(dangling))

	return ctrl.Result{}, nil
}

func (r *TopologyGraphReconciler) recordEventf(obj client.Object, eventType, reason, messageFmt string, args ...any) {
	if r.Recorder == nil || obj == nil {
		return
	}
	r.Recorder.Eventf(obj, eventType, reason, messageFmt, args...)
}

func (r *TopologyGraphReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&clabv1alpha1.Connectivity{}).
		Watches(&appsv1.Deployment{},
			handler.EnqueueRequestsFromMapFunc(requestForOwner),
			builder.WithPredicates(ownedResourceChanged),
		).
		Watches(&corev1.Service{},
			handler.EnqueueRequestsFromMapFunc(requestForOwner),
			builder.WithPredicates(ownedResourceChanged),
		).
		Complete(r)
}

// ownedResourceChanged drops status-only updates; the graph reads only labels and names.
var ownedResourceChanged = predicate.Or[client.Object](
	predicate.GenerationChangedPredicate{},
	predicate.LabelChangedPredicate{},
)

// requestForOwner maps a clabernetes-owned resource to the Connectivity sharing its topology's
// name.
func requestForOwner(_ context.Context, obj client.Object) []reconcile.Request {
	owner := obj.GetLabels()[topology.LabelTopologyOwner]
	if owner == "" {
		return nil
	}
	return []reconcile.Request{{
		NamespacedName: types.NamespacedName{Namespace: obj.GetNamespace(), Name: owner},
	}}
}
