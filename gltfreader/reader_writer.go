// Package gltfreader is the glTF 2.0 loader plugin. Importing it registers
// the loader for .gltf and .glb files with the default registry.
package gltfreader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/gltfscene/converter"
	"github.com/binzume/gltfscene/gltfutil"
	"github.com/binzume/gltfscene/registry"
	"github.com/qmuntal/gltf"
)

const ClassName = "glTF Loader"

type ReaderWriterGLTF struct {
	registry.ExtensionSet
	option converter.GLTFToSceneOption
}

// New returns a loader using opt as the base options. Tokens in the options
// string passed to ReadNode override them.
func New(opt *converter.GLTFToSceneOption) *ReaderWriterGLTF {
	rw := &ReaderWriterGLTF{}
	if opt != nil {
		rw.option = *opt
	}
	rw.SupportsExtension("gltf", "glTF ascii loader")
	rw.SupportsExtension("glb", "glTF binary loader")
	return rw
}

func init() {
	registry.RegisterReaderWriter(New(nil))
}

func (rw *ReaderWriterGLTF) ClassName() string {
	return ClassName
}

func (rw *ReaderWriterGLTF) ReadObject(fileName string, opts *registry.Options) registry.ReadResult {
	return rw.ReadNode(fileName, opts)
}

func (rw *ReaderWriterGLTF) ReadNode(fileName string, opts *registry.Options) registry.ReadResult {
	ext := strings.ToLower(registry.FileExtension(fileName))
	if !rw.AcceptsExtension(ext) {
		return registry.NotHandled()
	}
	if _, err := os.Stat(fileName); err != nil {
		return registry.NotFound(fileName)
	}

	var doc *gltf.Document
	var err error
	if ext == "glb" {
		doc, err = gltfutil.LoadBinary(fileName)
	} else {
		doc, err = gltfutil.LoadASCII(fileName)
	}
	if err != nil {
		registry.Notify(registry.Notice).Printf("gltf Error loading %s", fileName)
		registry.Notify(registry.Warn).Print(err)
		return registry.ReadError(err.Error())
	}

	conv := converter.NewGLTFToSceneConverter(rw.options(opts))
	group, err := conv.Convert(doc, filepath.Dir(fileName))
	if err != nil {
		registry.Notify(registry.Warn).Printf("gltf %s: %v", fileName, err)
		return registry.ReadError(err.Error())
	}
	return registry.Loaded(group)
}

func (rw *ReaderWriterGLTF) options(opts *registry.Options) *converter.GLTFToSceneOption {
	opt := rw.option
	if opts.Has("noTextures") {
		opt.NoTextures = true
	}
	opt.MaxTextureSize = opts.Int("maxTextureSize", opt.MaxTextureSize)
	return &opt
}
