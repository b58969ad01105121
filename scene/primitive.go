package scene

import "fmt"

type PrimitiveMode int

const (
	Points PrimitiveMode = iota
	Lines
	LineLoop
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
)

func (m PrimitiveMode) String() string {
	switch m {
	case Points:
		return "POINTS"
	case Lines:
		return "LINES"
	case LineLoop:
		return "LINE_LOOP"
	case LineStrip:
		return "LINE_STRIP"
	case Triangles:
		return "TRIANGLES"
	case TriangleStrip:
		return "TRIANGLE_STRIP"
	case TriangleFan:
		return "TRIANGLE_FAN"
	}
	return fmt.Sprintf("PrimitiveMode(%d)", int(m))
}

// IndexType is the storage width of a DrawElements index.
type IndexType int

const (
	IndexUByte IndexType = iota
	IndexUShort
	IndexUInt
)

func (t IndexType) String() string {
	switch t {
	case IndexUByte:
		return "ubyte"
	case IndexUShort:
		return "ushort"
	case IndexUInt:
		return "uint"
	}
	return fmt.Sprintf("IndexType(%d)", int(t))
}

// PrimitiveSet is an indexed draw command over the vertex arrays of a Geometry.
type PrimitiveSet interface {
	Mode() PrimitiveMode
	IndexType() IndexType
	NumIndices() int
	Index(i int) uint32
}

type DrawElementsUByte struct {
	mode    PrimitiveMode
	Indices []uint8
}

func NewDrawElementsUByte(mode PrimitiveMode, indices []uint8) *DrawElementsUByte {
	return &DrawElementsUByte{mode: mode, Indices: indices}
}

func (d *DrawElementsUByte) Mode() PrimitiveMode  { return d.mode }
func (d *DrawElementsUByte) IndexType() IndexType { return IndexUByte }
func (d *DrawElementsUByte) NumIndices() int      { return len(d.Indices) }
func (d *DrawElementsUByte) Index(i int) uint32   { return uint32(d.Indices[i]) }

type DrawElementsUShort struct {
	mode    PrimitiveMode
	Indices []uint16
}

func NewDrawElementsUShort(mode PrimitiveMode, indices []uint16) *DrawElementsUShort {
	return &DrawElementsUShort{mode: mode, Indices: indices}
}

func (d *DrawElementsUShort) Mode() PrimitiveMode  { return d.mode }
func (d *DrawElementsUShort) IndexType() IndexType { return IndexUShort }
func (d *DrawElementsUShort) NumIndices() int      { return len(d.Indices) }
func (d *DrawElementsUShort) Index(i int) uint32   { return uint32(d.Indices[i]) }

type DrawElementsUInt struct {
	mode    PrimitiveMode
	Indices []uint32
}

func NewDrawElementsUInt(mode PrimitiveMode, indices []uint32) *DrawElementsUInt {
	return &DrawElementsUInt{mode: mode, Indices: indices}
}

func (d *DrawElementsUInt) Mode() PrimitiveMode  { return d.mode }
func (d *DrawElementsUInt) IndexType() IndexType { return IndexUInt }
func (d *DrawElementsUInt) NumIndices() int      { return len(d.Indices) }
func (d *DrawElementsUInt) Index(i int) uint32   { return d.Indices[i] }
