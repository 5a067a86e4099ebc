package topology

// Label keys written by clabernetes onto the Deployments and Services it owns.
const (
	LabelTopologyOwner       = "clabernetes/topologyOwner"
	LabelName                = "clabernetes/name"
	LabelTopologyNode        = "clabernetes/topologyNode"
	LabelTopologyServiceType = "clabernetes/topologyServiceType"
)

// ServiceTypeFabric marks the service carrying inter-node tunnel traffic.
const ServiceTypeFabric = "fabric"

// OwnerSelector returns the label set selecting every resource owned by the named topology.
func OwnerSelector(topologyName string) map[string]string {
	return map[string]string{LabelTopologyOwner: topologyName}
}

// labelValue reads key from labels, "" when absent or when labels is nil.
func labelValue(labels map[string]string, key string) string {
	return labels[key]
}
