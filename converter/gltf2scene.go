package converter

import (
	"github.com/binzume/gltfscene/geom"
	"github.com/binzume/gltfscene/registry"
	"github.com/binzume/gltfscene/scene"
	"github.com/qmuntal/gltf"
)

type GLTFToSceneOption struct {
	NoTextures     bool       `yaml:"noTextures"`
	MaxTextureSize int        `yaml:"maxTextureSize"` // 0: unlimited
	DefaultColor   [4]float32 `yaml:"defaultColor"`   // overall geometry color. Default: white
	NotifyLevel    string     `yaml:"notifyLevel"`
}

type GLTFToSceneConverter struct {
	options *GLTFToSceneOption
}

type gltfToSceneState struct {
	GLTFToSceneOption
	src      *gltf.Document
	srcDir   string
	meshes   map[uint32][]*scene.Geometry
	textures map[uint32]*scene.Texture2D
}

func NewGLTFToSceneConverter(options *GLTFToSceneOption) *GLTFToSceneConverter {
	var opt GLTFToSceneOption
	if options != nil {
		opt = *options
	}
	if opt.DefaultColor == [4]float32{} {
		opt.DefaultColor = [4]float32{1, 1, 1, 1}
	}
	return &GLTFToSceneConverter{
		options: &opt,
	}
}

// Convert builds a group holding one transform per root node of the first
// scene. srcDir is used to resolve external image files.
func (conv *GLTFToSceneConverter) Convert(doc *gltf.Document, srcDir string) (*scene.Group, error) {
	c := &gltfToSceneState{
		GLTFToSceneOption: *conv.options,
		src:               doc,
		srcDir:            srcDir,
		meshes:            map[uint32][]*scene.Geometry{},
		textures:          map[uint32]*scene.Texture2D{},
	}

	group := scene.NewGroup()
	if len(doc.Scenes) == 0 {
		registry.Notify(registry.Notice).Print("gltf: document has no scene")
		return group, nil
	}

	// TODO: read all the scenes, not only the first one.
	s := doc.Scenes[0]
	group.SetName(s.Name)
	for _, index := range s.Nodes {
		if int(index) >= len(doc.Nodes) {
			registry.Notify(registry.Warn).Printf("gltf: scene node %d out of range", index)
			continue
		}
		node, err := c.convertNode(index, map[uint32]bool{})
		if err != nil {
			return nil, err
		}
		group.AddChild(node)
	}
	return group, nil
}

// convertNode converts a node and its subtree. ancestors holds the nodes on
// the current path; a child that is already on it closes a cycle and is skipped.
func (c *gltfToSceneState) convertNode(index uint32, ancestors map[uint32]bool) (scene.Node, error) {
	n := c.src.Nodes[index]
	mt := scene.NewMatrixTransform()
	mt.SetName(n.Name)
	mt.SetMatrix(nodeMatrix(n))

	if n.Mesh != nil {
		geoms, err := c.mesh(*n.Mesh)
		if err != nil {
			return nil, err
		}
		for _, g := range geoms {
			mt.AddChild(g)
		}
	}

	ancestors[index] = true
	defer delete(ancestors, index)
	for _, child := range n.Children {
		if int(child) >= len(c.src.Nodes) {
			registry.Notify(registry.Warn).Printf("gltf: node %d: child %d out of range", index, child)
			continue
		}
		if ancestors[child] {
			registry.Notify(registry.Warn).Printf("gltf: node %d: child %d forms a cycle, skipped", index, child)
			continue
		}
		cn, err := c.convertNode(child, ancestors)
		if err != nil {
			return nil, err
		}
		mt.AddChild(cn)
	}
	return mt, nil
}

// nodeMatrix returns the explicit matrix when present, otherwise scale,
// then rotation, then translation.
//
// Scale is used as stored: the decoder fills an absent scale with ones, so a
// zero scale here was written by the document. Nodes built in code must set
// Scale themselves.
func nodeMatrix(n *gltf.Node) *geom.Matrix4 {
	if m := n.MatrixOrDefault(); m != gltf.DefaultMatrix {
		return geom.NewMatrix4FromSlice(m[:])
	}
	return geom.NewTRSMatrix4(
		geom.NewVector3FromArray(n.Translation),
		geom.NewQuaternionFromArray(n.RotationOrDefault()),
		geom.NewVector3FromArray(n.Scale))
}

func (c *gltfToSceneState) mesh(index uint32) ([]*scene.Geometry, error) {
	if geoms, ok := c.meshes[index]; ok {
		return geoms, nil
	}
	if int(index) >= len(c.src.Meshes) {
		registry.Notify(registry.Warn).Printf("gltf: mesh %d out of range", index)
		return nil, nil
	}
	geoms, err := c.convertMesh(c.src.Meshes[index])
	if err != nil {
		return nil, err
	}
	c.meshes[index] = geoms
	return geoms, nil
}
