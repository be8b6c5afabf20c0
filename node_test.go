package bem

// testNode is an in-memory element used across the package tests.
type testNode struct {
	class    string
	children []*testNode
}

func el(class string, children ...*testNode) *testNode {
	return &testNode{class, children}
}

func (n *testNode) ClassName() string         { return n.class }
func (n *testNode) SetClassName(class string) { n.class = class }

func (n *testNode) Find(class string) []Node {
	var res []Node
	for _, c := range n.children {
		if HasClass(c.class, class) {
			res = append(res, c)
		}
		res = append(res, c.Find(class)...)
	}
	return res
}
