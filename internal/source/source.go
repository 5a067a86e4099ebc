// Package source reads the Kubernetes resources clabernetes creates for a topology.
//
// Every method returns the API error unchanged so callers can inspect it with apierrors.
package source

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	clabv1alpha1 "github.com/labfabric/topoviz/api/v1alpha1"
	"github.com/labfabric/topoviz/internal/topology"
)

// Source fetches the inputs for one topology graph.
type Source interface {
	DeploymentsByOwner(ctx context.Context, namespace, owner string) ([]appsv1.Deployment, error)
	ServicesByOwner(ctx context.Context, namespace, owner string) ([]corev1.Service, error)
	Connectivity(ctx context.Context, namespace, name string) (*clabv1alpha1.Connectivity, error)
}

// KubeSource implements Source on top of a controller-runtime reader. Pass the manager's API
// reader to bypass the informer cache.
type KubeSource struct {
	Reader client.Reader
}

func NewKubeSource(reader client.Reader) *KubeSource {
	return &KubeSource{Reader: reader}
}

func (s *KubeSource) DeploymentsByOwner(ctx context.Context, namespace, owner string) ([]appsv1.Deployment, error) {
	var list appsv1.DeploymentList
	if err := s.Reader.List(ctx, &list,
		client.InNamespace(namespace),
		client.MatchingLabels(topology.OwnerSelector(owner)),
	); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (s *KubeSource) ServicesByOwner(ctx context.Context, namespace, owner string) ([]corev1.Service, error) {
	var list corev1.ServiceList
	if err := s.Reader.List(ctx, &list,
		client.InNamespace(namespace),
		client.MatchingLabels(topology.OwnerSelector(owner)),
	); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (s *KubeSource) Connectivity(ctx context.Context, namespace, name string) (*clabv1alpha1.Connectivity, error) {
	var conn clabv1alpha1.Connectivity
	if err := s.Reader.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, &conn); err != nil {
		return nil, err
	}
	return &conn, nil
}
