package scene

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/binzume/gltfscene/geom"
)

// Visitor receives nodes through Node.Accept. Implementations call
// Traverse to descend into children.
type Visitor interface {
	ApplyGroup(g *Group)
	ApplyTransform(t *MatrixTransform)
	ApplyGeometry(g *Geometry)
}

// Traverse visits every child of p.
func Traverse(v Visitor, p Parent) {
	for i := 0; i < p.NumChildren(); i++ {
		p.Child(i).Accept(v)
	}
}

type walker struct {
	fn    func(n Node, depth int) bool
	depth int
}

func (w *walker) visit(n Node, p Parent) {
	if !w.fn(n, w.depth) || p == nil {
		return
	}
	w.depth++
	Traverse(w, p)
	w.depth--
}

func (w *walker) ApplyGroup(g *Group)               { w.visit(g, g) }
func (w *walker) ApplyTransform(t *MatrixTransform) { w.visit(t, t) }
func (w *walker) ApplyGeometry(g *Geometry)         { w.visit(g, nil) }

// Walk calls fn for n and its descendants in depth-first order.
// Children are skipped when fn returns false.
func Walk(n Node, fn func(n Node, depth int) bool) {
	n.Accept(&walker{fn: fn})
}

// Geometries returns all geometry leaves below n.
func Geometries(n Node) []*Geometry {
	var result []*Geometry
	Walk(n, func(n Node, depth int) bool {
		if g, ok := n.(*Geometry); ok {
			result = append(result, g)
		}
		return true
	})
	return result
}

type boundsVisitor struct {
	matrix *geom.Matrix4
	min    *geom.Vector3
	max    *geom.Vector3
}

func (b *boundsVisitor) ApplyGroup(g *Group) {
	Traverse(b, g)
}

func (b *boundsVisitor) ApplyTransform(t *MatrixTransform) {
	parent := b.matrix
	b.matrix = parent.Mul(t.Matrix())
	Traverse(b, t)
	b.matrix = parent
}

func (b *boundsVisitor) ApplyGeometry(g *Geometry) {
	for i := range g.Vertices {
		v := b.matrix.ApplyTo(&g.Vertices[i])
		if b.min == nil {
			b.min, b.max = v, v
			continue
		}
		b.min = b.min.Min(v)
		b.max = b.max.Max(v)
	}
}

// BoundingBox returns the world space extents of all vertices below n.
// ok is false when there are no vertices.
func BoundingBox(n Node) (min, max *geom.Vector3, ok bool) {
	b := &boundsVisitor{matrix: geom.NewMatrix4()}
	n.Accept(b)
	if b.min == nil {
		return nil, nil, false
	}
	return b.min, b.max, true
}

// Dump writes a human readable outline of the tree.
func Dump(w io.Writer, n Node) error {
	var err error
	Walk(n, func(n Node, depth int) bool {
		if err != nil {
			return false
		}
		_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describe(n))
		return true
	})
	return err
}

func describe(n Node) string {
	switch n := n.(type) {
	case *MatrixTransform:
		pos, rot, scale := n.Matrix().Decompose()
		e := rot.EulerXYZ()
		return fmt.Sprintf("MatrixTransform %q t=(%g,%g,%g) r=(%.1f,%.1f,%.1f) s=(%g,%g,%g)", n.Name(),
			pos.X, pos.Y, pos.Z, deg(e.X), deg(e.Y), deg(e.Z), scale.X, scale.Y, scale.Z)
	case *Group:
		return fmt.Sprintf("Group %q children=%d", n.Name(), n.NumChildren())
	case *Geometry:
		s := fmt.Sprintf("Geometry %q vertices=%d normals=%d texcoords=%d", n.Name(),
			len(n.Vertices), len(n.Normals), len(n.TexCoordArray(0)))
		for _, p := range n.PrimitiveSets() {
			s += fmt.Sprintf(" %v/%v*%d", p.Mode(), p.IndexType(), p.NumIndices())
		}
		if ss := n.StateSet(); ss != nil {
			if tex := ss.TextureAttribute(0); tex != nil && tex.Image != nil {
				s += fmt.Sprintf(" texture=%dx%d %v", tex.Image.Width, tex.Image.Height, tex.Image.Format)
			}
		}
		return s
	}
	return fmt.Sprintf("%T %q", n, n.Name())
}

func deg(rad float32) float64 {
	return float64(rad) * 180 / math.Pi
}
