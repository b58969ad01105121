// Package scene is the in-memory scene graph that loaders build and the
// host engine renders.
package scene

import "github.com/binzume/gltfscene/geom"

// Node is an element of the scene graph.
type Node interface {
	Name() string
	SetName(name string)
	Accept(v Visitor)
}

// Parent is a node that owns children.
type Parent interface {
	Node
	AddChild(child Node) bool
	NumChildren() int
	Child(i int) Node
}

type nodeBase struct {
	name string
}

func (n *nodeBase) Name() string {
	return n.name
}

func (n *nodeBase) SetName(name string) {
	n.name = name
}

// Group aggregates child nodes without transforming them.
type Group struct {
	nodeBase
	children []Node
}

func NewGroup() *Group {
	return &Group{}
}

// AddChild appends child. nil children are rejected.
func (g *Group) AddChild(child Node) bool {
	if child == nil {
		return false
	}
	g.children = append(g.children, child)
	return true
}

func (g *Group) NumChildren() int {
	return len(g.children)
}

func (g *Group) Child(i int) Node {
	return g.children[i]
}

func (g *Group) Children() []Node {
	return g.children
}

func (g *Group) Accept(v Visitor) {
	v.ApplyGroup(g)
}

// MatrixTransform is a group whose children are placed by Matrix.
type MatrixTransform struct {
	Group
	matrix geom.Matrix4
}

func NewMatrixTransform() *MatrixTransform {
	return &MatrixTransform{matrix: *geom.NewMatrix4()}
}

func (t *MatrixTransform) SetMatrix(m *geom.Matrix4) {
	t.matrix = *m
}

func (t *MatrixTransform) Matrix() *geom.Matrix4 {
	m := t.matrix
	return &m
}

func (t *MatrixTransform) Accept(v Visitor) {
	v.ApplyTransform(t)
}
