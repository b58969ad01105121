package gltfreader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/binzume/gltfscene/registry"
	"github.com/binzume/gltfscene/scene"
	"github.com/qmuntal/gltf"
)

func quadDocument() *gltf.Document {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})
	binary.Write(&buf, binary.LittleEndian, []uint16{0, 1, 2, 0, 2, 3})
	return &gltf.Document{
		Asset:   gltf.Asset{Version: "2.0"},
		Buffers: []*gltf.Buffer{{ByteLength: uint32(buf.Len()), Data: buf.Bytes()}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 48},
			{Buffer: 0, ByteOffset: 48, ByteLength: 12},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat, Count: 4},
			{BufferView: gltf.Index(1), Type: gltf.AccessorScalar, ComponentType: gltf.ComponentUshort, Count: 6},
		},
		Meshes: []*gltf.Mesh{{Name: "quad", Primitives: []*gltf.Primitive{{
			Attributes: map[string]uint32{gltf.POSITION: 0},
			Indices:    gltf.Index(1),
		}}}},
		Nodes: []*gltf.Node{
			{Name: "root", Children: []uint32{1}, Translation: [3]float32{0, 0, -1}},
			{Name: "mesh", Mesh: gltf.Index(0), Scale: [3]float32{2, 2, 2}},
		},
		Scenes: []*gltf.Scene{{Nodes: []uint32{0}}},
		Scene:  gltf.Index(0),
	}
}

func checkQuad(t *testing.T, n scene.Node) {
	t.Helper()
	geoms := scene.Geometries(n)
	if len(geoms) != 1 || len(geoms[0].Vertices) != 4 || geoms[0].PrimitiveSets()[0].NumIndices() != 6 {
		t.Fatal("geometries: ", geoms)
	}
	min, max, ok := scene.BoundingBox(n)
	if !ok || min.X != 0 || max.X != 2 || max.Y != 2 || min.Z != -1 {
		t.Error("bbox: ", min, max)
	}
}

func TestReadGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.glb")
	if err := gltf.SaveBinary(quadDocument(), path); err != nil {
		t.Fatal(err)
	}

	res := New(nil).ReadNode(path, nil)
	if !res.Success() {
		t.Fatal(res.Status, res.Message)
	}
	checkQuad(t, res.Node)
}

func TestReadGLTF(t *testing.T) {
	doc := quadDocument()
	doc.Buffers[0].EmbeddedResource()
	path := filepath.Join(t.TempDir(), "quad.gltf")
	if err := gltf.Save(doc, path); err != nil {
		t.Fatal(err)
	}

	node, err := registry.ReadNodeFile(path, registry.NewOptions("noTextures maxTextureSize=64"))
	if err != nil {
		t.Fatal(err)
	}
	checkQuad(t, node)
}

func TestReadZeroScale(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	binary.Write(&buf, binary.LittleEndian, []uint16{0, 1, 2})
	src := fmt.Sprintf(`{
	"asset": {"version": "2.0"},
	"scene": 0,
	"scenes": [{"nodes": [0]}],
	"nodes": [{"mesh": 0, "translation": [1, 2, 3], "scale": [0, 0, 0]}],
	"meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}],
	"accessors": [
		{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
		{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
	],
	"bufferViews": [
		{"buffer": 0, "byteOffset": 0, "byteLength": 36},
		{"buffer": 0, "byteOffset": 36, "byteLength": 6}
	],
	"buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}]
}`, buf.Len(), base64.StdEncoding.EncodeToString(buf.Bytes()))
	path := filepath.Join(t.TempDir(), "flat.gltf")
	os.WriteFile(path, []byte(src), 0644)

	res := New(nil).ReadNode(path, nil)
	if !res.Success() {
		t.Fatal(res.Status, res.Message)
	}
	min, max, ok := scene.BoundingBox(res.Node)
	if !ok || *min != *max || min.X != 1 || min.Y != 2 || min.Z != 3 {
		t.Error("bbox: ", min, max)
	}
}

func TestReadErrors(t *testing.T) {
	rw := New(nil)
	dir := t.TempDir()

	if res := rw.ReadNode(filepath.Join(dir, "model.obj"), nil); res.Status != registry.FileNotHandled {
		t.Error("unknown extension: ", res.Status)
	}
	if res := rw.ReadNode(filepath.Join(dir, "missing.gltf"), nil); res.Status != registry.FileNotFound {
		t.Error("missing file: ", res.Status)
	}

	broken := filepath.Join(dir, "broken.glb")
	os.WriteFile(broken, []byte(`{"asset":{"version":"2.0"}}`), 0644)
	res := rw.ReadNode(broken, nil)
	if res.Status != registry.ErrorInReadingFile || res.Message == "" {
		t.Error("broken file: ", res.Status, res.Message)
	}

	doc := quadDocument()
	doc.Accessors[0].Count = 100
	bad := filepath.Join(dir, "bad.glb")
	if err := gltf.SaveBinary(doc, bad); err != nil {
		t.Fatal(err)
	}
	if res := rw.ReadObject(bad, nil); res.Status != registry.ErrorInReadingFile {
		t.Error("out of bounds: ", res.Status)
	}

	_, err := registry.ReadNodeFile(filepath.Join(dir, "model.obj"), nil)
	if !errors.Is(err, registry.ErrNoReaderWriter) {
		t.Error("err: ", err)
	}
}

func TestRegistered(t *testing.T) {
	for _, ext := range []string{"gltf", "GLB"} {
		rw := registry.Default().ReaderWriterForExtension(ext)
		if rw == nil || rw.ClassName() != ClassName {
			t.Error("not registered: ", ext)
		}
	}
	desc := New(nil).SupportedExtensions()
	if desc["gltf"] != "glTF ascii loader" || desc["glb"] != "glTF binary loader" {
		t.Error("extensions: ", desc)
	}
}

func TestOptions(t *testing.T) {
	rw := New(nil)
	opt := rw.options(registry.NewOptions("noTextures maxTextureSize=128"))
	if !opt.NoTextures || opt.MaxTextureSize != 128 {
		t.Error("options: ", opt)
	}
	opt = rw.options(nil)
	if opt.NoTextures || opt.MaxTextureSize != 0 {
		t.Error("options: ", opt)
	}
}
