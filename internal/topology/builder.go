// Package topology turns the resources clabernetes creates for one topology into a node/edge
// graph for renderers.
package topology

import (
	"sort"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"

	clabv1alpha1 "github.com/labfabric/topoviz/api/v1alpha1"
)

// Build converts one topology's deployments, services and tunnel groups into a Graph.
//
// Missing labels default to "" and never cause an error. Tunnels are deduplicated by tunnel id
// alone; when two definitions share an id the first one encountered wins. Group keys are
// visited in sorted order so the output is stable for identical input.
//
// Build holds no state between calls and is safe for concurrent use.
func Build(
	rootName string,
	deployments []appsv1.Deployment,
	services []corev1.Service,
	tunnelGroups map[string][]*clabv1alpha1.PointToPointTunnel,
) Graph {
	g := Graph{
		Edges: make([]Edge, 0, len(deployments)+len(services)),
		Nodes: make([]Node, 0, 1+len(deployments)+len(services)),
	}

	g.Nodes = append(g.Nodes, newNode(
		rootName,
		NodeTypeTopology,
		NodeData{Label: rootName, ResourceName: rootName},
		DefaultLayoutHint,
	))

	computeIDs := make(map[string]string, len(deployments))

	for i := range deployments {
		d := &deployments[i]
		name := labelValue(d.Labels, LabelName)
		nodeName := labelValue(d.Labels, LabelTopologyNode)

		computeIDs[name] = name

		g.Nodes = append(g.Nodes, newNode(
			name,
			NodeTypeDeployment,
			NodeData{Label: nodeName, ResourceName: d.Name},
			DefaultLayoutHint,
		))
		g.Edges = append(g.Edges, newEdge(rootName, name))
	}

	for i := range services {
		s := &services[i]
		owner := labelValue(s.Labels, LabelName)
		nodeName := labelValue(s.Labels, LabelTopologyNode)
		serviceType := labelValue(s.Labels, LabelTopologyServiceType)

		serviceID := ServiceID(nodeName, serviceType)

		computeID, ok := computeIDs[owner]
		if !ok {
			// No deployment seen for this owner; the label is still the id it would have had.
			computeID = owner
		}

		g.Nodes = append(g.Nodes, newNode(
			serviceID,
			NodeTypeService,
			NodeData{
				Label:        nodeName + "-" + serviceType,
				ResourceName: s.Name,
				ServiceKind:  &serviceType,
			},
			DefaultLayoutHint,
		))
		g.Edges = append(g.Edges, newEdge(computeID, serviceID))
	}

	seen := newTunnelSet()

	for _, group := range sortedGroupKeys(tunnelGroups) {
		for _, tunnel := range tunnelGroups[group] {
			if tunnel == nil || !seen.add(tunnel.TunnelID) {
				continue
			}

			localFabric := ServiceID(tunnel.LocalNode, ServiceTypeFabric)
			remoteFabric := ServiceID(tunnel.RemoteNode, ServiceTypeFabric)
			localInterface := InterfaceID(tunnel.LocalNode, tunnel.LocalInterface)
			remoteInterface := InterfaceID(tunnel.RemoteNode, tunnel.RemoteInterface)

			g.Nodes = append(g.Nodes,
				newNode(
					localInterface,
					NodeTypeInterface,
					NodeData{Label: localInterface, OwningNode: tunnel.LocalNode},
					InterfaceLayoutHint,
				),
				newNode(
					remoteInterface,
					NodeTypeInterface,
					NodeData{Label: remoteInterface, OwningNode: tunnel.RemoteNode},
					InterfaceLayoutHint,
				),
			)
			g.Edges = append(g.Edges,
				newEdge(localFabric, localInterface),
				newEdge(remoteFabric, remoteInterface),
				newEdge(localInterface, remoteInterface),
			)
		}
	}

	return g
}

// ServiceID is the node id of a topology node's service of the given type.
func ServiceID(nodeName, serviceType string) string {
	id := "svc/" + nodeName
	if serviceType == ServiceTypeFabric {
		id += "-vx"
	}
	return id
}

// InterfaceID is the node id of one end of a tunnel.
func InterfaceID(nodeName, interfaceName string) string {
	return nodeName + "-" + interfaceName
}

// tunnelSet records tunnel ids already turned into graph elements.
type tunnelSet map[int]struct{}

func newTunnelSet() tunnelSet {
	return tunnelSet{}
}

// add inserts id and reports whether it was absent.
func (s tunnelSet) add(id int) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

func sortedGroupKeys(groups map[string][]*clabv1alpha1.PointToPointTunnel) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
