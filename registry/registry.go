// Package registry dispatches file loading to ReaderWriter plugins by file extension.
package registry

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/binzume/gltfscene/scene"
)

// ReaderWriter is implemented by file format plugins.
type ReaderWriter interface {
	ClassName() string
	AcceptsExtension(ext string) bool
	ReadNode(fileName string, opts *Options) ReadResult
	ReadObject(fileName string, opts *Options) ReadResult
}

// ExtensionSet implements AcceptsExtension for embedding in plugins.
type ExtensionSet struct {
	exts map[string]string
}

func (s *ExtensionSet) SupportsExtension(ext, description string) {
	if s.exts == nil {
		s.exts = map[string]string{}
	}
	s.exts[strings.ToLower(ext)] = description
}

func (s *ExtensionSet) AcceptsExtension(ext string) bool {
	_, ok := s.exts[strings.ToLower(ext)]
	return ok
}

// SupportedExtensions returns extension -> description.
func (s *ExtensionSet) SupportedExtensions() map[string]string {
	m := make(map[string]string, len(s.exts))
	for k, v := range s.exts {
		m[k] = v
	}
	return m
}

// FileExtension returns the extension of path without the leading dot.
func FileExtension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

type Registry struct {
	mu  sync.RWMutex
	rws []ReaderWriter
}

func New() *Registry {
	return &Registry{}
}

var defaultRegistry = New()

// Default returns the process wide registry plugins register with from init().
func Default() *Registry {
	return defaultRegistry
}

func (r *Registry) Register(rw ReaderWriter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rws = append(r.rws, rw)
}

func (r *Registry) Unregister(rw ReaderWriter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, v := range r.rws {
		if v == rw {
			r.rws = append(r.rws[:i], r.rws[i+1:]...)
			return
		}
	}
}

func (r *Registry) ReaderWriters() []ReaderWriter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]ReaderWriter(nil), r.rws...)
}

// ReaderWriterForExtension returns the first plugin accepting ext, or nil.
func (r *Registry) ReaderWriterForExtension(ext string) ReaderWriter {
	for _, rw := range r.ReaderWriters() {
		if rw.AcceptsExtension(ext) {
			return rw
		}
	}
	return nil
}

// Extensions lists every extension some plugin accepts, for help output.
func (r *Registry) Extensions() []string {
	var exts []string
	for _, rw := range r.ReaderWriters() {
		if s, ok := rw.(interface{ SupportedExtensions() map[string]string }); ok {
			for ext := range s.SupportedExtensions() {
				exts = append(exts, ext)
			}
		}
	}
	sort.Strings(exts)
	return exts
}

// ReadNode asks each plugin accepting the extension in turn until one
// returns something other than FileNotHandled.
func (r *Registry) ReadNode(fileName string, opts *Options) ReadResult {
	ext := FileExtension(fileName)
	for _, rw := range r.ReaderWriters() {
		if !rw.AcceptsExtension(ext) {
			continue
		}
		res := rw.ReadNode(fileName, opts)
		if res.Status != FileNotHandled {
			return res
		}
	}
	return NotHandled()
}

func (r *Registry) ReadNodeFile(fileName string, opts *Options) (scene.Node, error) {
	res := r.ReadNode(fileName, opts)
	switch {
	case res.Success():
		return res.Node, nil
	case res.Status == FileNotHandled:
		return nil, fmt.Errorf("%w: %s", ErrNoReaderWriter, fileName)
	}
	Notify(Warn).Printf("cannot read %s: %v", fileName, res.Status)
	return nil, res.Err()
}

func RegisterReaderWriter(rw ReaderWriter) {
	defaultRegistry.Register(rw)
}

func ReadNodeFile(fileName string, opts *Options) (scene.Node, error) {
	return defaultRegistry.ReadNodeFile(fileName, opts)
}
