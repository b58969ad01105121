package gltfutil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
)

var (
	ErrNotBinary = errors.New("not a binary glTF file")
	ErrNotJSON   = errors.New("not a glTF JSON file")
	ErrNoImage   = errors.New("image has no data source")
)

const (
	glbMagic = "glTF"
	utf8BOM  = "\xef\xbb\xbf"
)

// Load parses path as binary glTF when the extension is .glb, as JSON otherwise.
func Load(path string) (*gltf.Document, error) {
	if strings.ToLower(filepath.Ext(path)) == ".glb" {
		return LoadBinary(path)
	}
	return LoadASCII(path)
}

// LoadASCII parses a JSON glTF file. External buffers are resolved relative to the file.
func LoadASCII(path string) (*gltf.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	if b, err := r.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		r.Discard(len(utf8BOM))
	}
	for {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, ErrNotJSON
			}
			return nil, err
		}
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			continue
		}
		r.UnreadByte()
		if c != '{' {
			return nil, ErrNotJSON
		}
		break
	}
	return decode(r, filepath.Dir(path))
}

// LoadBinary parses a GLB container.
func LoadBinary(path string) (*gltf.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	magic, err := r.Peek(len(glbMagic))
	if err != nil || string(magic) != glbMagic {
		return nil, ErrNotBinary
	}
	return decode(r, filepath.Dir(path))
}

func decode(r io.Reader, dir string) (*gltf.Document, error) {
	var doc gltf.Document
	dec := gltf.NewDecoderFS(r, os.DirFS(dir))
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ImageData returns the encoded bytes of an image: from its buffer view,
// its data URI, or a file relative to srcDir.
func ImageData(doc *gltf.Document, img *gltf.Image, srcDir string) ([]byte, error) {
	if img.BufferView != nil {
		return BufferViewBytes(doc, *img.BufferView)
	}
	if img.IsEmbeddedResource() {
		return img.MarshalData()
	}
	if img.URI == "" {
		return nil, ErrNoImage
	}
	name, err := url.PathUnescape(img.URI)
	if err != nil {
		name = img.URI
	}
	data, err := os.ReadFile(filepath.Join(srcDir, filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", img.URI, err)
	}
	return data, nil
}
