package registry

import (
	"errors"
	"fmt"

	"github.com/binzume/gltfscene/scene"
)

type ReadStatus int

const (
	FileNotHandled ReadStatus = iota
	FileNotFound
	ErrorInReadingFile
	FileLoaded
)

func (s ReadStatus) String() string {
	switch s {
	case FileNotHandled:
		return "file not handled"
	case FileNotFound:
		return "file not found"
	case ErrorInReadingFile:
		return "error reading file"
	case FileLoaded:
		return "file loaded"
	}
	return fmt.Sprintf("ReadStatus(%d)", int(s))
}

var (
	ErrNotHandled     = errors.New("file not handled")
	ErrFileNotFound   = errors.New("file not found")
	ErrReadingFile    = errors.New("error reading file")
	ErrNoReaderWriter = errors.New("no reader/writer for file")
)

// ReadResult is returned by ReaderWriter.ReadNode.
type ReadResult struct {
	Status  ReadStatus
	Node    scene.Node
	Message string
}

func Loaded(n scene.Node) ReadResult {
	return ReadResult{Status: FileLoaded, Node: n}
}

func NotHandled() ReadResult {
	return ReadResult{Status: FileNotHandled}
}

func NotFound(fileName string) ReadResult {
	return ReadResult{Status: FileNotFound, Message: fileName}
}

func ReadError(msg string) ReadResult {
	return ReadResult{Status: ErrorInReadingFile, Message: msg}
}

func (r ReadResult) Success() bool {
	return r.Status == FileLoaded
}

// Err converts a non-successful result into an error matching one of the
// sentinel errors above.
func (r ReadResult) Err() error {
	var base error
	switch r.Status {
	case FileLoaded:
		return nil
	case FileNotHandled:
		base = ErrNotHandled
	case FileNotFound:
		base = ErrFileNotFound
	default:
		base = ErrReadingFile
	}
	if r.Message == "" {
		return base
	}
	return fmt.Errorf("%w: %s", base, r.Message)
}
