package pulse

import "unsafe"

// AsByteSlice views the memory of value as bytes, e.g. to upload a uniform
// struct. The slice aliases value and must not outlive it.
func AsByteSlice[T any](value *T) []byte {
	ptr := (*byte)(unsafe.Pointer(value))
	return unsafe.Slice(ptr, unsafe.Sizeof(*value))
}
