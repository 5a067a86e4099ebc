package topology

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	clabv1alpha1 "github.com/labfabric/topoviz/api/v1alpha1"
)

func deployment(name string, labels map[string]string) appsv1.Deployment {
	return appsv1.Deployment{ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "ns", Labels: labels}}
}

func service(name string, labels map[string]string) corev1.Service {
	return corev1.Service{ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "ns", Labels: labels}}
}

func tunnel(id int, localNode, localIface, remoteNode, remoteIface string) *clabv1alpha1.PointToPointTunnel {
	return &clabv1alpha1.PointToPointTunnel{
		TunnelID:        id,
		LocalNode:       localNode,
		LocalInterface:  localIface,
		RemoteNode:      remoteNode,
		RemoteInterface: remoteIface,
	}
}

func countType(g Graph, t NodeType) int {
	n := 0
	for _, node := range g.Nodes {
		if node.Type == t {
			n++
		}
	}
	return n
}

func TestBuild_EmptyTopology(t *testing.T) {
	g := Build("demo", nil, nil, map[string][]*clabv1alpha1.PointToPointTunnel{})

	want := Graph{
		Edges: []Edge{},
		Nodes: []Node{{
			Data:     NodeData{Label: "demo", ResourceName: "demo"},
			ID:       "demo",
			Position: Position{X: 0, Y: 0},
			Style:    Size{Height: 90, Width: 150},
			Type:     NodeTypeTopology,
		}},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Fatalf("unexpected graph (-want +got):\n%s", diff)
	}

	out, err := Marshal(g, FormatJSON)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.HasPrefix(string(out), `{"edges":[],"nodes":[{`) {
		t.Fatalf("expected empty edges array first, got %s", out)
	}
}

func TestBuild_NilTunnelGroups(t *testing.T) {
	g := Build("demo", nil, nil, nil)
	if len(g.Nodes) != 1 || g.Nodes[0].ID != "demo" {
		t.Fatalf("expected only the root node, got %+v", g.Nodes)
	}
	if g.Edges == nil || len(g.Edges) != 0 {
		t.Fatalf("expected non-nil empty edges, got %#v", g.Edges)
	}
}

func TestBuild_OneDeploymentNoServices(t *testing.T) {
	g := Build("demo", []appsv1.Deployment{
		deployment("demo-r1", map[string]string{LabelName: "demo-r1", LabelTopologyNode: "r1"}),
	}, nil, nil)

	if len(g.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(g.Nodes))
	}
	if g.Nodes[0].ID != "demo" || g.Nodes[1].ID != "demo-r1" {
		t.Fatalf("unexpected node ids: %q, %q", g.Nodes[0].ID, g.Nodes[1].ID)
	}
	wantNode := Node{
		Data:  NodeData{Label: "r1", ResourceName: "demo-r1"},
		ID:    "demo-r1",
		Style: Size{Height: 90, Width: 150},
		Type:  NodeTypeDeployment,
	}
	if diff := cmp.Diff(wantNode, g.Nodes[1]); diff != "" {
		t.Fatalf("unexpected deployment node (-want +got):\n%s", diff)
	}

	wantEdges := []Edge{{ID: "demo / demo-r1", Source: "demo", Target: "demo-r1"}}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Fatalf("unexpected edges (-want +got):\n%s", diff)
	}
}

func TestBuild_FabricService(t *testing.T) {
	g := Build("demo",
		[]appsv1.Deployment{
			deployment("demo-r1", map[string]string{LabelName: "demo-r1", LabelTopologyNode: "r1"}),
		},
		[]corev1.Service{
			service("demo-r1-vx", map[string]string{
				LabelName:                "demo-r1",
				LabelTopologyNode:        "r1",
				LabelTopologyServiceType: ServiceTypeFabric,
			}),
		},
		nil,
	)

	node, ok := g.NodeByID("svc/r1-vx")
	if !ok {
		t.Fatalf("expected service node svc/r1-vx, got %+v", g.Nodes)
	}
	if node.Type != NodeTypeService || node.Data.Kind() != "fabric" || node.Data.Label != "r1-fabric" {
		t.Fatalf("unexpected service node: %+v", node)
	}
	if node.Data.ResourceName != "demo-r1-vx" {
		t.Fatalf("expected resourceName demo-r1-vx, got %q", node.Data.ResourceName)
	}

	last := g.Edges[len(g.Edges)-1]
	if last != (Edge{ID: "demo-r1 / svc/r1-vx", Source: "demo-r1", Target: "svc/r1-vx"}) {
		t.Fatalf("unexpected service edge: %+v", last)
	}
	if dangling := g.DanglingEdges(); len(dangling) != 0 {
		t.Fatalf("expected no dangling edges, got %+v", dangling)
	}
}

func TestBuild_FabricSuffixOnlyForFabric(t *testing.T) {
	kinds := []string{"fabric", "expose", "", "Fabric", "fabric-x"}

	services := make([]corev1.Service, 0, len(kinds))
	for i, kind := range kinds {
		services = append(services, service("s", map[string]string{
			LabelName:                "demo-r",
			LabelTopologyNode:        "r" + string(rune('a'+i)),
			LabelTopologyServiceType: kind,
		}))
	}

	g := Build("demo", nil, services, nil)

	for _, node := range g.Nodes {
		if node.Type != NodeTypeService {
			continue
		}
		hasSuffix := strings.HasSuffix(node.ID, "-vx")
		if node.Data.Kind() == ServiceTypeFabric && !hasSuffix {
			t.Fatalf("fabric service %q missing -vx suffix", node.ID)
		}
		if node.Data.Kind() != ServiceTypeFabric && hasSuffix {
			t.Fatalf("non-fabric service %q (kind %q) has -vx suffix", node.ID, node.Data.Kind())
		}
	}
	if got := countType(g, NodeTypeService); got != len(kinds) {
		t.Fatalf("expected %d service nodes, got %d", len(kinds), got)
	}
}

func TestBuild_MissingLabelsDegradeToEmpty(t *testing.T) {
	g := Build("demo",
		[]appsv1.Deployment{deployment("bare", nil)},
		[]corev1.Service{service("bare-svc", nil)},
		nil,
	)

	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(g.Nodes))
	}
	if g.Nodes[1].ID != "" || g.Nodes[1].Data.Label != "" || g.Nodes[1].Data.ResourceName != "bare" {
		t.Fatalf("unexpected degraded deployment node: %+v", g.Nodes[1])
	}
	if g.Nodes[2].ID != "svc/" || g.Nodes[2].Data.Label != "-" {
		t.Fatalf("unexpected degraded service node: %+v", g.Nodes[2])
	}
	wantEdges := []Edge{
		{ID: "demo / ", Source: "demo", Target: ""},
		{ID: " / svc/", Source: "", Target: "svc/"},
	}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Fatalf("unexpected edges (-want +got):\n%s", diff)
	}
}

func TestBuild_EveryDeploymentHasOneNodeAndOneRootEdge(t *testing.T) {
	deployments := []appsv1.Deployment{
		deployment("demo-r1", map[string]string{LabelName: "demo-r1", LabelTopologyNode: "r1"}),
		deployment("demo-r2", map[string]string{LabelName: "demo-r2", LabelTopologyNode: "r2"}),
		deployment("demo-r3", map[string]string{LabelName: "demo-r3", LabelTopologyNode: "r3"}),
	}
	g := Build("demo", deployments, nil, nil)

	for _, d := range deployments {
		id := d.Labels[LabelName]
		nodes, edges := 0, 0
		for _, n := range g.Nodes {
			if n.ID == id {
				nodes++
			}
		}
		for _, e := range g.Edges {
			if e.Source == "demo" && e.Target == id {
				edges++
			}
		}
		if nodes != 1 || edges != 1 {
			t.Fatalf("deployment %q: expected 1 node and 1 root edge, got %d and %d", id, nodes, edges)
		}
	}
	for i, d := range deployments {
		if g.Nodes[i+1].ID != d.Labels[LabelName] {
			t.Fatalf("expected input order preserved at %d, got %q", i, g.Nodes[i+1].ID)
		}
	}
}

func TestBuild_ServiceWithoutDeploymentUsesOwnerLabel(t *testing.T) {
	g := Build("demo", nil, []corev1.Service{
		service("demo-r9", map[string]string{LabelName: "demo-r9", LabelTopologyNode: "r9", LabelTopologyServiceType: "expose"}),
	}, nil)

	want := Edge{ID: "demo-r9 / svc/r9", Source: "demo-r9", Target: "svc/r9"}
	if g.Edges[0] != want {
		t.Fatalf("expected %+v, got %+v", want, g.Edges[0])
	}
	if dangling := g.DanglingEdges(); len(dangling) != 1 || dangling[0] != want {
		t.Fatalf("expected the owner edge to dangle, got %+v", dangling)
	}
}

func TestBuild_TunnelDedupBothDirections(t *testing.T) {
	forward := tunnel(7, "r1", "eth1", "r2", "eth1")
	reverse := tunnel(7, "r2", "eth1", "r1", "eth1")

	cases := map[string]map[string][]*clabv1alpha1.PointToPointTunnel{
		"forward first": {"a": {forward}, "b": {reverse}},
		"reverse first": {"a": {reverse}, "b": {forward}},
		"same group":    {"r1": {forward, reverse}},
	}

	for name, groups := range cases {
		t.Run(name, func(t *testing.T) {
			g := Build("demo", nil, nil, groups)

			if got := countType(g, NodeTypeInterface); got != 2 {
				t.Fatalf("expected 2 interface nodes, got %d", got)
			}
			if len(g.Edges) != 3 {
				t.Fatalf("expected 3 edges, got %d: %+v", len(g.Edges), g.Edges)
			}
			for _, id := range []string{"r1-eth1", "r2-eth1"} {
				node, ok := g.NodeByID(id)
				if !ok {
					t.Fatalf("missing interface node %q", id)
				}
				if node.Style != (Size{Height: 50, Width: 150}) {
					t.Fatalf("interface %q: unexpected size %+v", id, node.Style)
				}
				if node.Data.Label != id || node.Data.OwningNode != strings.TrimSuffix(id, "-eth1") {
					t.Fatalf("interface %q: unexpected data %+v", id, node.Data)
				}
			}
		})
	}
}

func TestBuild_TunnelEdgeShape(t *testing.T) {
	g := Build("demo", nil, nil, map[string][]*clabv1alpha1.PointToPointTunnel{
		"r1": {tunnel(1, "r1", "eth1", "r2", "eth2")},
	})

	wantNodes := []string{"demo", "r1-eth1", "r2-eth2"}
	for i, id := range wantNodes {
		if g.Nodes[i].ID != id {
			t.Fatalf("node %d: expected %q, got %q", i, id, g.Nodes[i].ID)
		}
	}
	wantEdges := []Edge{
		{ID: "svc/r1-vx / r1-eth1", Source: "svc/r1-vx", Target: "r1-eth1"},
		{ID: "svc/r2-vx / r2-eth2", Source: "svc/r2-vx", Target: "r2-eth2"},
		{ID: "r1-eth1 / r2-eth2", Source: "r1-eth1", Target: "r2-eth2"},
	}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Fatalf("unexpected edges (-want +got):\n%s", diff)
	}
}

func TestBuild_DuplicateIDKeepsFirst(t *testing.T) {
	g := Build("demo", nil, nil, map[string][]*clabv1alpha1.PointToPointTunnel{
		"a": {tunnel(3, "r1", "eth1", "r2", "eth1")},
		"b": {tunnel(3, "r5", "eth9", "r6", "eth9"), nil},
	})

	if _, ok := g.NodeByID("r5-eth9"); ok {
		t.Fatalf("expected later tunnel with a reused id to be dropped")
	}
	if _, ok := g.NodeByID("r1-eth1"); !ok {
		t.Fatalf("expected first tunnel to survive")
	}
}

func TestBuild_Idempotent(t *testing.T) {
	deployments := []appsv1.Deployment{
		deployment("demo-r1", map[string]string{LabelName: "demo-r1", LabelTopologyNode: "r1"}),
		deployment("demo-r2", map[string]string{LabelName: "demo-r2", LabelTopologyNode: "r2"}),
	}
	services := []corev1.Service{
		service("demo-r1-vx", map[string]string{LabelName: "demo-r1", LabelTopologyNode: "r1", LabelTopologyServiceType: "fabric"}),
		service("demo-r2-vx", map[string]string{LabelName: "demo-r2", LabelTopologyNode: "r2", LabelTopologyServiceType: "fabric"}),
	}
	groups := map[string][]*clabv1alpha1.PointToPointTunnel{}
	for i := 0; i < 16; i++ {
		key := string(rune('a' + i))
		groups[key] = []*clabv1alpha1.PointToPointTunnel{
			tunnel(i, "r1", "eth"+key, "r2", "eth"+key),
		}
	}

	first, err := Marshal(Build("demo", deployments, services, groups), FormatJSON)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := Marshal(Build("demo", deployments, services, groups), FormatJSON)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("output differs between identical invocations:\n%s\n%s", first, again)
		}
	}
}

func TestBuild_FullTopologyHasNoDanglingEdges(t *testing.T) {
	g := Build("demo",
		[]appsv1.Deployment{
			deployment("demo-r1", map[string]string{LabelName: "demo-r1", LabelTopologyNode: "r1"}),
			deployment("demo-r2", map[string]string{LabelName: "demo-r2", LabelTopologyNode: "r2"}),
		},
		[]corev1.Service{
			service("demo-r1-vx", map[string]string{LabelName: "demo-r1", LabelTopologyNode: "r1", LabelTopologyServiceType: "fabric"}),
			service("demo-r2-vx", map[string]string{LabelName: "demo-r2", LabelTopologyNode: "r2", LabelTopologyServiceType: "fabric"}),
			service("demo-r1", map[string]string{LabelName: "demo-r1", LabelTopologyNode: "r1", LabelTopologyServiceType: "expose"}),
		},
		map[string][]*clabv1alpha1.PointToPointTunnel{
			"r1": {tunnel(1, "r1", "eth1", "r2", "eth1")},
			"r2": {tunnel(1, "r2", "eth1", "r1", "eth1")},
		},
	)

	if g.Nodes[0].ID != "demo" {
		t.Fatalf("root must be first, got %q", g.Nodes[0].ID)
	}
	if len(g.Nodes) != 8 {
		t.Fatalf("expected 8 nodes, got %d", len(g.Nodes))
	}
	if len(g.Edges) != 8 {
		t.Fatalf("expected 8 edges, got %d", len(g.Edges))
	}
	if dangling := g.DanglingEdges(); len(dangling) != 0 {
		t.Fatalf("expected no dangling edges, got %+v", dangling)
	}
}

func TestBuild_ServiceWithoutKindStillCarriesServiceKind(t *testing.T) {
	g := Build("demo", nil, []corev1.Service{
		service("s", map[string]string{LabelName: "demo-r1", LabelTopologyNode: "r1"}),
	}, nil)

	node, ok := g.NodeByID("svc/r1")
	if !ok {
		t.Fatalf("expected service node svc/r1, got %+v", g.Nodes)
	}
	if node.Data.ServiceKind == nil || *node.Data.ServiceKind != "" {
		t.Fatalf("expected empty serviceKind to be set, got %+v", node.Data)
	}

	out, err := Marshal(g, FormatJSON)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `"data":{"label":"r1-","resourceName":"s","serviceKind":""},"id":"svc/r1"`) {
		t.Fatalf("expected service node to carry an empty serviceKind, got %s", out)
	}
	if strings.Count(string(out), `"serviceKind"`) != 1 {
		t.Fatalf("expected serviceKind only on the service node, got %s", out)
	}
}
