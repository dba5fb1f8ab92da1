package arena

import "unsafe"

func sizeOf[T any](v T) uintptr  { return unsafe.Sizeof(v) }
func alignOf[T any](v T) int     { return int(unsafe.Alignof(v)) }

func bytesToPointer(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

func sliceFromBytes[T any](b []byte, n int) []T {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(bytesToPointer(b)), n)
}
