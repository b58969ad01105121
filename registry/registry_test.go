package registry

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/binzume/gltfscene/scene"
)

type fakeReader struct {
	ExtensionSet
	name   string
	status ReadStatus
	calls  int
}

func newFakeReader(name string, status ReadStatus, exts ...string) *fakeReader {
	rw := &fakeReader{name: name, status: status}
	for _, ext := range exts {
		rw.SupportsExtension(ext, name)
	}
	return rw
}

func (rw *fakeReader) ClassName() string { return rw.name }

func (rw *fakeReader) ReadNode(fileName string, opts *Options) ReadResult {
	rw.calls++
	switch rw.status {
	case FileLoaded:
		g := scene.NewGroup()
		g.SetName(rw.name)
		return Loaded(g)
	case FileNotFound:
		return NotFound(fileName)
	case ErrorInReadingFile:
		return ReadError("broken")
	}
	return NotHandled()
}

func (rw *fakeReader) ReadObject(fileName string, opts *Options) ReadResult {
	return rw.ReadNode(fileName, opts)
}

func TestRegistryDispatch(t *testing.T) {
	r := New()
	skip := newFakeReader("skip", FileNotHandled, "abc")
	load := newFakeReader("load", FileLoaded, "abc", "def")
	other := newFakeReader("other", FileLoaded, "xyz")
	r.Register(skip)
	r.Register(load)
	r.Register(other)

	node, err := r.ReadNodeFile("dir/model.ABC", nil)
	if err != nil {
		t.Fatal(err)
	}
	if node.Name() != "load" || skip.calls != 1 || other.calls != 0 {
		t.Error("dispatch: ", node.Name(), skip.calls, other.calls)
	}

	if _, err := r.ReadNodeFile("model.obj", nil); !errors.Is(err, ErrNoReaderWriter) {
		t.Error("err: ", err)
	}

	r.Unregister(load)
	if r.ReaderWriterForExtension("def") != nil {
		t.Error("unregister failed")
	}
	if exts := r.Extensions(); strings.Join(exts, ",") != "abc,xyz" {
		t.Error("extensions: ", exts)
	}
}

func TestRegistryErrors(t *testing.T) {
	r := New()
	r.Register(newFakeReader("missing", FileNotFound, "nf"))
	r.Register(newFakeReader("broken", ErrorInReadingFile, "err"))

	var log bytes.Buffer
	SetNotifyOutput(&log)
	defer SetNotifyOutput(nil)

	_, err := r.ReadNodeFile("a.nf", nil)
	if !errors.Is(err, ErrFileNotFound) {
		t.Error("err: ", err)
	}
	_, err = r.ReadNodeFile("a.err", nil)
	if !errors.Is(err, ErrReadingFile) || !strings.Contains(err.Error(), "broken") {
		t.Error("err: ", err)
	}
	if !strings.Contains(log.String(), "a.err") {
		t.Error("warning not logged: ", log.String())
	}
}

func TestFileExtension(t *testing.T) {
	for path, ext := range map[string]string{
		"a/b/model.glb": "glb",
		"model.GLTF":    "GLTF",
		"noext":         "",
		"dir.v1/noext":  "",
	} {
		if e := FileExtension(path); e != ext {
			t.Error(path, ": ", e)
		}
	}
}

func TestOptions(t *testing.T) {
	opts := NewOptions("noTextures  MaxTextureSize=256 bad=x")
	if !opts.Has("notextures") || opts.Has("other") {
		t.Error("Has")
	}
	if v := opts.Int("maxTextureSize", 0); v != 256 {
		t.Error("Int: ", v)
	}
	if v := opts.Int("bad", 7); v != 7 {
		t.Error("Int: ", v)
	}
	var nilOpts *Options
	if nilOpts.Has("noTextures") || nilOpts.Int("maxTextureSize", 3) != 3 {
		t.Error("nil options")
	}
}

func TestNotifyLevel(t *testing.T) {
	defer SetNotifyLevel(NotifyLevel())

	var log bytes.Buffer
	SetNotifyOutput(&log)
	defer SetNotifyOutput(nil)

	SetNotifyLevel(Warn)
	Notify(Notice).Print("hidden")
	Notify(Warn).Print("shown")
	if strings.Contains(log.String(), "hidden") || !strings.Contains(log.String(), "shown") {
		t.Error("notify: ", log.String())
	}

	if lv, ok := ParseSeverity("debug"); !ok || lv != Debug {
		t.Error("ParseSeverity: ", lv, ok)
	}
	if _, ok := ParseSeverity("loud"); ok {
		t.Error("ParseSeverity accepted unknown level")
	}
}
