package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Connectivity holds the tunnel layout of one topology. It shares its name with the owning
// Topology.
//
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Namespaced,shortName=conn
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`
type Connectivity struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ConnectivitySpec   `json:"spec,omitempty"`
	Status ConnectivityStatus `json:"status,omitempty"`
}

type ConnectivitySpec struct {
	// PointToPointTunnels maps an arbitrary group key (usually the node name) to the tunnels
	// listed from that side. A tunnel is typically present twice, once from each end.
	PointToPointTunnels map[string][]*PointToPointTunnel `json:"pointToPointTunnels,omitempty"`
}

// PointToPointTunnel is one side's view of a tunnel between two node interfaces.
type PointToPointTunnel struct {
	// TunnelID is shared by both directions of the same tunnel.
	TunnelID int `json:"tunnelID"`
	// Destination is the address the local side connects to.
	Destination     string `json:"destination,omitempty"`
	LocalNode       string `json:"localNode"`
	LocalInterface  string `json:"localInterface"`
	RemoteNode      string `json:"remoteNode"`
	RemoteInterface string `json:"remoteInterface"`
}

type ConnectivityStatus struct{}

// +kubebuilder:object:root=true
type ConnectivityList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Connectivity `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Connectivity{}, &ConnectivityList{})
}
