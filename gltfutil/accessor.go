package gltfutil

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	gltfbinary "github.com/qmuntal/gltf/binary"
)

var (
	ErrIndexOutOfRange          = errors.New("index out of range")
	ErrUnsupportedAccessorType  = errors.New("unsupported accessor type")
	ErrUnsupportedComponentType = errors.New("unsupported component type")
	ErrSparseAccessor           = errors.New("sparse accessors are not supported")
	ErrEmptyBuffer              = errors.New("buffer has no data")
	ErrInvalidStride            = errors.New("byte stride smaller than element")
	ErrOutOfBounds              = errors.New("accessor reads outside of buffer")
	ErrAccessorTooLarge         = errors.New("accessor count too large")
)

// MaxZeroFilledCount limits accessors without a buffer view, which decode to
// Count zero elements.
const MaxZeroFilledCount = 1 << 24

// AccessorView is a bounds checked, strided window over the elements of an accessor.
type AccessorView struct {
	Accessor *gltf.Accessor
	Count    int
	Stride   int
	ElemSize int

	// data starts at the first element; nil when the accessor has no buffer view.
	data []byte
}

// NewAccessorView resolves accessor -> buffer view -> buffer and validates
// that every element lies inside both the view and the buffer data.
func NewAccessorView(doc *gltf.Document, index uint32) (*AccessorView, error) {
	if int(index) >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d: %w", index, ErrIndexOutOfRange)
	}
	acc := doc.Accessors[index]
	if acc.Sparse != nil {
		return nil, fmt.Errorf("accessor %d: %w", index, ErrSparseAccessor)
	}
	switch acc.Type {
	case gltf.AccessorScalar, gltf.AccessorVec2, gltf.AccessorVec3, gltf.AccessorVec4:
	default:
		return nil, fmt.Errorf("accessor %d: %w: %v", index, ErrUnsupportedAccessorType, acc.Type)
	}
	if componentSize(acc.ComponentType) == 0 {
		return nil, fmt.Errorf("accessor %d: %w: %v", index, ErrUnsupportedComponentType, acc.ComponentType)
	}

	v := &AccessorView{
		Accessor: acc,
		Count:    int(acc.Count),
		ElemSize: componentSize(acc.ComponentType) * components(acc.Type),
	}
	v.Stride = v.ElemSize
	if acc.BufferView == nil {
		// All zeros per glTF.
		if v.Count > MaxZeroFilledCount {
			return nil, fmt.Errorf("accessor %d: %w: %d", index, ErrAccessorTooLarge, v.Count)
		}
		return v, nil
	}

	if int(*acc.BufferView) >= len(doc.BufferViews) {
		return nil, fmt.Errorf("accessor %d: bufferView %d: %w", index, *acc.BufferView, ErrIndexOutOfRange)
	}
	view := doc.BufferViews[*acc.BufferView]
	if int(view.Buffer) >= len(doc.Buffers) {
		return nil, fmt.Errorf("accessor %d: buffer %d: %w", index, view.Buffer, ErrIndexOutOfRange)
	}
	buf := doc.Buffers[view.Buffer]
	if len(buf.Data) == 0 {
		return nil, fmt.Errorf("accessor %d: buffer %d: %w", index, view.Buffer, ErrEmptyBuffer)
	}
	if view.ByteStride != 0 {
		v.Stride = int(view.ByteStride)
		if v.Stride < v.ElemSize {
			return nil, fmt.Errorf("accessor %d: %w (%d < %d)", index, ErrInvalidStride, v.Stride, v.ElemSize)
		}
	}

	viewEnd := uint64(view.ByteOffset) + uint64(view.ByteLength)
	if view.ByteLength == 0 || viewEnd > uint64(len(buf.Data)) {
		viewEnd = uint64(len(buf.Data))
	}
	start := uint64(view.ByteOffset) + uint64(acc.ByteOffset)
	end := start
	if v.Count > 0 {
		end = start + uint64(v.Count-1)*uint64(v.Stride) + uint64(v.ElemSize)
	}
	if start > viewEnd || end > viewEnd {
		return nil, fmt.Errorf("accessor %d: %w: bytes [%d,%d) of %d", index, ErrOutOfBounds, start, end, viewEnd)
	}
	v.data = buf.Data[start:end]
	return v, nil
}

func (v *AccessorView) checkType(t gltf.AccessorType) error {
	if v.Accessor.Type != t {
		return fmt.Errorf("%w: %v, want %v", ErrUnsupportedAccessorType, v.Accessor.Type, t)
	}
	return nil
}

// read decodes every element into dst, a slice of Count typed rows.
func (v *AccessorView) read(dst interface{}) error {
	if v.Count == 0 || v.data == nil {
		return nil
	}
	b, stride := v.data, v.Stride
	if v.ElemSize == 1 {
		// binary.Read ignores the stride of byte scalars.
		b = make([]byte, v.Count)
		for i := range b {
			b[i] = v.data[i*v.Stride]
		}
		stride = 1
	} else if n := v.Count * v.Stride; len(b) < n {
		// binary.Read wants whole strides, and padded element sizes for
		// byte/short vectors. The last element may end before both.
		b = make([]byte, n)
		copy(b, v.data)
	}
	return gltfbinary.Read(b, uint32(stride), dst)
}

type intComponent interface {
	int8 | uint8 | int16 | uint16
}

// toFloat converts integer components by value, or per glTF rules when normalized.
func toFloat[E intComponent](normalized bool, denormalize func(E) float32) func(E) float32 {
	if normalized {
		return denormalize
	}
	return func(e E) float32 { return float32(e) }
}

func rows2[E intComponent](v *AccessorView, conv func(E) float32) ([][2]float32, error) {
	src := make([][2]E, v.Count)
	if err := v.read(src); err != nil {
		return nil, err
	}
	dst := make([][2]float32, len(src))
	for i, e := range src {
		dst[i] = [2]float32{conv(e[0]), conv(e[1])}
	}
	return dst, nil
}

func rows3[E intComponent](v *AccessorView, conv func(E) float32) ([][3]float32, error) {
	src := make([][3]E, v.Count)
	if err := v.read(src); err != nil {
		return nil, err
	}
	dst := make([][3]float32, len(src))
	for i, e := range src {
		dst[i] = [3]float32{conv(e[0]), conv(e[1]), conv(e[2])}
	}
	return dst, nil
}

func rows4[E intComponent](v *AccessorView, conv func(E) float32) ([][4]float32, error) {
	src := make([][4]E, v.Count)
	if err := v.read(src); err != nil {
		return nil, err
	}
	dst := make([][4]float32, len(src))
	for i, e := range src {
		dst[i] = [4]float32{conv(e[0]), conv(e[1]), conv(e[2]), conv(e[3])}
	}
	return dst, nil
}

func (v *AccessorView) unsupportedFloat() error {
	return fmt.Errorf("%w for float attribute: %v", ErrUnsupportedComponentType, v.Accessor.ComponentType)
}

// Floats2 decodes a VEC2 accessor.
func (v *AccessorView) Floats2() ([][2]float32, error) {
	if err := v.checkType(gltf.AccessorVec2); err != nil {
		return nil, err
	}
	n := v.Accessor.Normalized
	switch v.Accessor.ComponentType {
	case gltf.ComponentFloat:
		dst := make([][2]float32, v.Count)
		return dst, v.read(dst)
	case gltf.ComponentByte:
		return rows2(v, toFloat(n, gltf.DenormalizeByte))
	case gltf.ComponentUbyte:
		return rows2(v, toFloat(n, gltf.DenormalizeUbyte))
	case gltf.ComponentShort:
		return rows2(v, toFloat(n, gltf.DenormalizeShort))
	case gltf.ComponentUshort:
		return rows2(v, toFloat(n, gltf.DenormalizeUshort))
	}
	return nil, v.unsupportedFloat()
}

// Floats3 decodes a VEC3 accessor.
func (v *AccessorView) Floats3() ([][3]float32, error) {
	if err := v.checkType(gltf.AccessorVec3); err != nil {
		return nil, err
	}
	n := v.Accessor.Normalized
	switch v.Accessor.ComponentType {
	case gltf.ComponentFloat:
		dst := make([][3]float32, v.Count)
		return dst, v.read(dst)
	case gltf.ComponentByte:
		return rows3(v, toFloat(n, gltf.DenormalizeByte))
	case gltf.ComponentUbyte:
		return rows3(v, toFloat(n, gltf.DenormalizeUbyte))
	case gltf.ComponentShort:
		return rows3(v, toFloat(n, gltf.DenormalizeShort))
	case gltf.ComponentUshort:
		return rows3(v, toFloat(n, gltf.DenormalizeUshort))
	}
	return nil, v.unsupportedFloat()
}

// Floats4 decodes a VEC4 accessor.
func (v *AccessorView) Floats4() ([][4]float32, error) {
	if err := v.checkType(gltf.AccessorVec4); err != nil {
		return nil, err
	}
	n := v.Accessor.Normalized
	switch v.Accessor.ComponentType {
	case gltf.ComponentFloat:
		dst := make([][4]float32, v.Count)
		return dst, v.read(dst)
	case gltf.ComponentByte:
		return rows4(v, toFloat(n, gltf.DenormalizeByte))
	case gltf.ComponentUbyte:
		return rows4(v, toFloat(n, gltf.DenormalizeUbyte))
	case gltf.ComponentShort:
		return rows4(v, toFloat(n, gltf.DenormalizeShort))
	case gltf.ComponentUshort:
		return rows4(v, toFloat(n, gltf.DenormalizeUshort))
	}
	return nil, v.unsupportedFloat()
}

// IndexData holds decoded indices in their source width. Exactly one of
// U8, U16, U32 is set, selected by Type.
type IndexData struct {
	Type gltf.ComponentType
	U8   []uint8
	U16  []uint16
	U32  []uint32
}

func (d *IndexData) Len() int {
	switch d.Type {
	case gltf.ComponentUbyte:
		return len(d.U8)
	case gltf.ComponentUshort:
		return len(d.U16)
	}
	return len(d.U32)
}

// Indices decodes a SCALAR accessor of unsigned byte, short or int.
func (v *AccessorView) Indices() (*IndexData, error) {
	if err := v.checkType(gltf.AccessorScalar); err != nil {
		return nil, err
	}
	d := &IndexData{Type: v.Accessor.ComponentType}
	var dst interface{}
	switch d.Type {
	case gltf.ComponentUbyte:
		d.U8 = make([]uint8, v.Count)
		dst = d.U8
	case gltf.ComponentUshort:
		d.U16 = make([]uint16, v.Count)
		dst = d.U16
	case gltf.ComponentUint:
		d.U32 = make([]uint32, v.Count)
		dst = d.U32
	default:
		return nil, fmt.Errorf("%w for indices: %v", ErrUnsupportedComponentType, d.Type)
	}
	return d, v.read(dst)
}

// BufferViewBytes returns a copy of the bytes covered by a buffer view.
func BufferViewBytes(doc *gltf.Document, index uint32) ([]byte, error) {
	if int(index) >= len(doc.BufferViews) {
		return nil, fmt.Errorf("bufferView %d: %w", index, ErrIndexOutOfRange)
	}
	view := doc.BufferViews[index]
	if int(view.Buffer) >= len(doc.Buffers) {
		return nil, fmt.Errorf("bufferView %d: buffer %d: %w", index, view.Buffer, ErrIndexOutOfRange)
	}
	data := doc.Buffers[view.Buffer].Data
	if len(data) == 0 {
		return nil, fmt.Errorf("bufferView %d: %w", index, ErrEmptyBuffer)
	}
	end := uint64(view.ByteOffset) + uint64(view.ByteLength)
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("bufferView %d: %w", index, ErrOutOfBounds)
	}
	b := make([]byte, view.ByteLength)
	copy(b, data[view.ByteOffset:end])
	return b, nil
}

func components(t gltf.AccessorType) int {
	switch t {
	case gltf.AccessorScalar:
		return 1
	case gltf.AccessorVec2:
		return 2
	case gltf.AccessorVec3:
		return 3
	case gltf.AccessorVec4:
		return 4
	}
	return 0
}

func componentSize(c gltf.ComponentType) int {
	switch c {
	case gltf.ComponentByte, gltf.ComponentUbyte:
		return 1
	case gltf.ComponentShort, gltf.ComponentUshort:
		return 2
	case gltf.ComponentUint, gltf.ComponentFloat:
		return 4
	}
	return 0
}
