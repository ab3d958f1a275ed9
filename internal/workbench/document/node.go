package document

// node is the ordered document tree shared by the writer and the reader.
type node struct {
	kind  nodeKind
	keys  []string
	vals  []*node
	items []*node
	value string
}

type nodeKind int

const (
	scalarNode nodeKind = iota
	mappingNode
	sequenceNode
)

func scalar(v string) *node { return &node{kind: scalarNode, value: v} }

func mapping() *node { return &node{kind: mappingNode} }

func sequence() *node { return &node{kind: sequenceNode} }

func (n *node) set(key string, v *node) *node {
	n.keys = append(n.keys, key)
	n.vals = append(n.vals, v)
	return n
}

func (n *node) append(v *node) *node {
	n.items = append(n.items, v)
	return n
}

// get returns the value for key in a mapping. Later duplicates win, like
// most YAML loaders.
func (n *node) get(key string) (*node, bool) {
	if n == nil || n.kind != mappingNode {
		return nil, false
	}
	for i := len(n.keys) - 1; i >= 0; i-- {
		if n.keys[i] == key {
			return n.vals[i], true
		}
	}
	return nil, false
}

// text returns a scalar's raw text, or "" for anything else.
func (n *node) text() string {
	if n == nil || n.kind != scalarNode {
		return ""
	}
	return n.value
}

func (n *node) empty() bool {
	return n == nil || (n.kind == mappingNode && len(n.keys) == 0)
}
