package topology

// NodeType tags the kind of resource a node stands for. Renderers switch on it.
type NodeType string

const (
	NodeTypeTopology   NodeType = "topology"
	NodeTypeDeployment NodeType = "deployment"
	NodeTypeService    NodeType = "service"
	NodeTypeInterface  NodeType = "interface"
)

// Position is a node's top-left corner in renderer coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a node's box.
type Size struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
}

// LayoutHint is placeholder geometry. Nothing here is computed; a downstream layout pass is
// expected to overwrite it.
type LayoutHint struct {
	Position Position
	Size     Size
}

var (
	// DefaultLayoutHint applies to topology, deployment and service nodes.
	DefaultLayoutHint = LayoutHint{Size: Size{Height: 90, Width: 150}}
	// InterfaceLayoutHint applies to interface nodes.
	InterfaceLayoutHint = LayoutHint{Size: Size{Height: 50, Width: 150}}
)

// NodeData is the renderer-facing payload of a node.
//
// ServiceKind is set on every service node, including when the kind label is missing, and only
// on service nodes.
type NodeData struct {
	Label        string  `json:"label"`
	ResourceName string  `json:"resourceName,omitempty"`
	ServiceKind  *string `json:"serviceKind,omitempty"`
	OwningNode   string  `json:"owningNode,omitempty"`
}

// Kind returns the service kind, "" for nodes that are not services.
func (d NodeData) Kind() string {
	if d.ServiceKind == nil {
		return ""
	}
	return *d.ServiceKind
}

// Node is one vertex of the rendered topology.
type Node struct {
	Data     NodeData `json:"data"`
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Style    Size     `json:"style"`
	Type     NodeType `json:"type"`
}

// Edge is a directed link between two node ids.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the full wire document handed to renderers.
type Graph struct {
	Edges []Edge `json:"edges"`
	Nodes []Node `json:"nodes"`
}

func newNode(id string, nodeType NodeType, data NodeData, hint LayoutHint) Node {
	return Node{
		Data:     data,
		ID:       id,
		Position: hint.Position,
		Style:    hint.Size,
		Type:     nodeType,
	}
}

// EdgeID joins two node identifiers into an edge identifier.
func EdgeID(source, target string) string {
	return source + " / " + target
}

func newEdge(source, target string) Edge {
	return Edge{ID: EdgeID(source, target), Source: source, Target: target}
}

// NodeByID returns the first node with the given id.
func (g Graph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// DanglingEdges returns edges whose source or target is not a node in g.
//
// The builder does not enforce referential integrity while it runs; inputs with missing
// services or deployments produce dangling edges, and callers can use this to surface them.
func (g Graph) DanglingEdges() []Edge {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	var out []Edge
	for _, e := range g.Edges {
		_, okSource := ids[e.Source]
		_, okTarget := ids[e.Target]
		if !okSource || !okTarget {
			out = append(out, e)
		}
	}
	return out
}
