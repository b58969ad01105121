package converter

import (
	"fmt"

	"github.com/binzume/gltfscene/geom"
	"github.com/binzume/gltfscene/gltfutil"
	"github.com/binzume/gltfscene/registry"
	"github.com/binzume/gltfscene/scene"
	"github.com/qmuntal/gltf"
)

var primitiveModes = map[gltf.PrimitiveMode]scene.PrimitiveMode{
	gltf.PrimitivePoints:        scene.Points,
	gltf.PrimitiveLines:         scene.Lines,
	gltf.PrimitiveLineLoop:      scene.LineLoop,
	gltf.PrimitiveLineStrip:     scene.LineStrip,
	gltf.PrimitiveTriangles:     scene.Triangles,
	gltf.PrimitiveTriangleStrip: scene.TriangleStrip,
	gltf.PrimitiveTriangleFan:   scene.TriangleFan,
}

// convertMesh returns one geometry per primitive. A mesh with any
// non-indexed primitive converts to nothing.
func (c *gltfToSceneState) convertMesh(mesh *gltf.Mesh) ([]*scene.Geometry, error) {
	for _, p := range mesh.Primitives {
		if p.Indices == nil {
			registry.Notify(registry.Notice).Printf("gltf: mesh %q: primitive without indices, mesh skipped", mesh.Name)
			return nil, nil
		}
	}

	var geoms []*scene.Geometry
	for i, p := range mesh.Primitives {
		g, err := c.convertPrimitive(p)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
		}
		g.SetName(mesh.Name)
		geoms = append(geoms, g)
	}
	return geoms, nil
}

func (c *gltfToSceneState) convertPrimitive(p *gltf.Primitive) (*scene.Geometry, error) {
	g := scene.NewGeometry()
	col := c.DefaultColor
	g.SetColorArray([]geom.Vector4{{X: col[0], Y: col[1], Z: col[2], W: col[3]}}, scene.BindOverall)

	if index, ok := p.Attributes[gltf.POSITION]; ok {
		v, err := c.vec3Attribute(gltf.POSITION, index)
		if err != nil {
			return nil, err
		}
		g.SetVertexArray(v)
	}
	if index, ok := p.Attributes[gltf.NORMAL]; ok {
		n, err := c.vec3Attribute(gltf.NORMAL, index)
		if err != nil {
			return nil, err
		}
		if n != nil {
			g.SetNormalArray(n, scene.BindPerVertex)
		}
	}
	if index, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		tc, err := c.vec2Attribute(gltf.TEXCOORD_0, index)
		if err != nil {
			return nil, err
		}
		if tc != nil {
			g.SetTexCoordArray(0, tc)
		}
	}

	ps, err := c.primitiveSet(p)
	if err != nil {
		return nil, err
	}
	g.AddPrimitiveSet(ps)

	if p.Material != nil && !c.NoTextures {
		if tex := c.baseColorTexture(*p.Material); tex != nil {
			g.GetOrCreateStateSet().SetTextureAttributeAndModes(0, tex, scene.On)
		}
	}
	return g, nil
}

func (c *gltfToSceneState) attributeView(name string, index uint32, t gltf.AccessorType) (*gltfutil.AccessorView, error) {
	v, err := gltfutil.NewAccessorView(c.src, index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if v.Accessor.Type != t {
		registry.Notify(registry.Notice).Printf("gltf: %s accessor %d is %v, ignored", name, index, v.Accessor.Type)
		return nil, nil
	}
	return v, nil
}

func (c *gltfToSceneState) vec3Attribute(name string, index uint32) ([]geom.Vector3, error) {
	v, err := c.attributeView(name, index, gltf.AccessorVec3)
	if v == nil {
		return nil, err
	}
	data, err := v.Floats3()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	r := make([]geom.Vector3, len(data))
	for i, d := range data {
		r[i] = geom.Vector3{X: d[0], Y: d[1], Z: d[2]}
	}
	return r, nil
}

func (c *gltfToSceneState) vec2Attribute(name string, index uint32) ([]geom.Vector2, error) {
	v, err := c.attributeView(name, index, gltf.AccessorVec2)
	if v == nil {
		return nil, err
	}
	data, err := v.Floats2()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	r := make([]geom.Vector2, len(data))
	for i, d := range data {
		r[i] = geom.Vector2{X: d[0], Y: d[1]}
	}
	return r, nil
}

func (c *gltfToSceneState) primitiveSet(p *gltf.Primitive) (scene.PrimitiveSet, error) {
	mode, ok := primitiveModes[p.Mode]
	if !ok {
		return nil, fmt.Errorf("unknown primitive mode %d", p.Mode)
	}
	v, err := gltfutil.NewAccessorView(c.src, *p.Indices)
	if err != nil {
		return nil, fmt.Errorf("indices: %w", err)
	}
	indices, err := v.Indices()
	if err != nil {
		return nil, fmt.Errorf("indices: %w", err)
	}
	switch indices.Type {
	case gltf.ComponentUbyte:
		return scene.NewDrawElementsUByte(mode, indices.U8), nil
	case gltf.ComponentUshort:
		return scene.NewDrawElementsUShort(mode, indices.U16), nil
	}
	return scene.NewDrawElementsUInt(mode, indices.U32), nil
}
