package scene

import "github.com/binzume/gltfscene/geom"

// Binding tells how an attribute array maps onto vertices.
type Binding int

const (
	BindOff Binding = iota
	BindOverall
	BindPerPrimitiveSet
	BindPerVertex
)

// Geometry is a drawable leaf: vertex attribute arrays plus primitive sets
// indexing into them.
type Geometry struct {
	nodeBase

	Vertices      []geom.Vector3
	Normals       []geom.Vector3
	NormalBinding Binding
	Colors        []geom.Vector4
	ColorBinding  Binding

	texCoords     map[int][]geom.Vector2
	primitiveSets []PrimitiveSet
	stateSet      *StateSet
}

func NewGeometry() *Geometry {
	return &Geometry{}
}

func (g *Geometry) SetVertexArray(v []geom.Vector3) {
	g.Vertices = v
}

func (g *Geometry) SetNormalArray(n []geom.Vector3, binding Binding) {
	g.Normals = n
	g.NormalBinding = binding
}

func (g *Geometry) SetColorArray(c []geom.Vector4, binding Binding) {
	g.Colors = c
	g.ColorBinding = binding
}

// SetTexCoordArray sets per-vertex texture coordinates for a texture unit.
func (g *Geometry) SetTexCoordArray(unit int, tc []geom.Vector2) {
	if g.texCoords == nil {
		g.texCoords = map[int][]geom.Vector2{}
	}
	g.texCoords[unit] = tc
}

func (g *Geometry) TexCoordArray(unit int) []geom.Vector2 {
	return g.texCoords[unit]
}

func (g *Geometry) AddPrimitiveSet(p PrimitiveSet) {
	g.primitiveSets = append(g.primitiveSets, p)
}

func (g *Geometry) PrimitiveSets() []PrimitiveSet {
	return g.primitiveSets
}

func (g *Geometry) StateSet() *StateSet {
	return g.stateSet
}

func (g *Geometry) GetOrCreateStateSet() *StateSet {
	if g.stateSet == nil {
		g.stateSet = NewStateSet()
	}
	return g.stateSet
}

func (g *Geometry) Accept(v Visitor) {
	v.ApplyGeometry(g)
}
