package scenegraph

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Scalar is the closed set of element scalar types a primvar may carry.
type Scalar interface {
	constraints.Float | ~int32
}

/** @brief The runtime element type of a primvar value. */
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindFloat
	KindDouble
	KindInt
)

/**
 * @brief A runtime-tagged attribute array: scalar, 2, 3 or 4 component
 * elements of float32, float64 or int32. The renderer stores everything as
 * float32 lanes, so values flatten with numeric narrowing.
 */
type Value struct {
	kind  ValueKind
	width int
	len   int
	data  interface{}
}

func kindOf(v interface{}) ValueKind {
	switch v.(type) {
	case []float32, [][2]float32, [][3]float32, [][4]float32:
		return KindFloat
	case []float64, [][2]float64, [][3]float64, [][4]float64:
		return KindDouble
	case []int32, [][2]int32, [][3]int32, [][4]int32:
		return KindInt
	}
	return KindInvalid
}

func FromScalars[T Scalar](data []T) Value {
	return Value{kind: kindOf(any(data)), width: 1, len: len(data), data: data}
}

func FromVec2[T Scalar](data [][2]T) Value {
	return Value{kind: kindOf(any(data)), width: 2, len: len(data), data: data}
}

func FromVec3[T Scalar](data [][3]T) Value {
	return Value{kind: kindOf(any(data)), width: 3, len: len(data), data: data}
}

func FromVec4[T Scalar](data [][4]T) Value {
	return Value{kind: kindOf(any(data)), width: 4, len: len(data), data: data}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

// Width is the number of components per element.
func (v Value) Width() int {
	return v.width
}

// Len is the element count.
func (v Value) Len() int {
	return v.len
}

func (v Value) IsEmpty() bool {
	return v.kind == KindInvalid || v.len == 0
}

func flattenScalars[T Scalar](data []T) []float32 {
	out := make([]float32, len(data))
	for i, e := range data {
		out[i] = float32(e)
	}
	return out
}

func flattenVec2[T Scalar](data [][2]T) []float32 {
	out := make([]float32, 0, len(data)*2)
	for _, e := range data {
		out = append(out, float32(e[0]), float32(e[1]))
	}
	return out
}

func flattenVec3[T Scalar](data [][3]T) []float32 {
	out := make([]float32, 0, len(data)*3)
	for _, e := range data {
		out = append(out, float32(e[0]), float32(e[1]), float32(e[2]))
	}
	return out
}

func flattenVec4[T Scalar](data [][4]T) []float32 {
	out := make([]float32, 0, len(data)*4)
	for _, e := range data {
		out = append(out, float32(e[0]), float32(e[1]), float32(e[2]), float32(e[3]))
	}
	return out
}

// Flatten narrows the value to float32 lanes, Width() lanes per element.
func (v Value) Flatten() ([]float32, error) {
	switch data := v.data.(type) {
	case []float32:
		out := make([]float32, len(data))
		copy(out, data)
		return out, nil
	case []float64:
		return flattenScalars(data), nil
	case []int32:
		return flattenScalars(data), nil
	case [][2]float32:
		return flattenVec2(data), nil
	case [][3]float32:
		return flattenVec3(data), nil
	case [][4]float32:
		return flattenVec4(data), nil
	case [][2]float64:
		return flattenVec2(data), nil
	case [][3]float64:
		return flattenVec3(data), nil
	case [][4]float64:
		return flattenVec4(data), nil
	case [][2]int32:
		return flattenVec2(data), nil
	case [][3]int32:
		return flattenVec3(data), nil
	case [][4]int32:
		return flattenVec4(data), nil
	}
	return nil, fmt.Errorf("value holds no recognised array type")
}

// FromFlat wraps float32 lanes produced by Flatten back into a Value with
// the given element width.
func FromFlat(lanes []float32, width int) Value {
	switch width {
	case 1:
		return FromScalars(lanes)
	case 2:
		out := make([][2]float32, len(lanes)/2)
		for i := range out {
			out[i] = [2]float32{lanes[i*2], lanes[i*2+1]}
		}
		return FromVec2(out)
	case 3:
		out := make([][3]float32, len(lanes)/3)
		for i := range out {
			out[i] = [3]float32{lanes[i*3], lanes[i*3+1], lanes[i*3+2]}
		}
		return FromVec3(out)
	case 4:
		out := make([][4]float32, len(lanes)/4)
		for i := range out {
			out[i] = [4]float32{lanes[i*4], lanes[i*4+1], lanes[i*4+2], lanes[i*4+3]}
		}
		return FromVec4(out)
	}
	return Value{}
}

// AsVec3f returns the value as 3-component float32 elements when it holds
// exactly that type, e.g. for position data.
func (v Value) AsVec3f() ([][3]float32, bool) {
	data, ok := v.data.([][3]float32)
	return data, ok
}

// AsInts returns the value as an int32 array when it holds one.
func (v Value) AsInts() ([]int32, bool) {
	data, ok := v.data.([]int32)
	return data, ok
}
